// Package gamepb encodes and decodes the game server's protobuf messages using
// the low-level protowire API. Only the fields the farm engine reads or sends
// are modelled; unknown fields are skipped.
package gamepb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/utils"
)

// field is one decoded wire field. Varint holds the raw value for varint and
// fixed types, Bytes the payload for length-delimited ones.
type field struct {
	Num    protowire.Number
	Type   protowire.Type
	Varint uint64
	Bytes  []byte
}

// Int64 interprets a varint field as a signed int64
func (f field) Int64() int64 {
	return utils.ToInt64(f.Varint)
}

// Bool interprets a varint field as a bool
func (f field) Bool() bool {
	return f.Varint != 0
}

// walk calls fn for every top-level field in b
func walk(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return malformed(protowire.ParseError(n))
		}
		b = b[n:]

		f := field{Num: num, Type: typ}
		switch typ {
		case protowire.VarintType:
			f.Varint, n = protowire.ConsumeVarint(b)
		case protowire.Fixed64Type:
			f.Varint, n = protowire.ConsumeFixed64(b)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(b)
			f.Varint = uint64(v)
		case protowire.BytesType:
			f.Bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return malformed(protowire.ParseError(n))
		}
		b = b[n:]

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// int64s decodes a repeated int64 field that may arrive packed or unpacked
func int64s(dst []int64, f field) ([]int64, error) {
	if f.Type == protowire.VarintType {
		return append(dst, f.Int64()), nil
	}
	if f.Type != protowire.BytesType {
		return dst, malformed(fmt.Errorf("field %d: unexpected wire type %d", f.Num, f.Type))
	}
	b := f.Bytes
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return dst, malformed(protowire.ParseError(n))
		}
		dst = append(dst, utils.ToInt64(v))
		b = b[n:]
	}
	return dst, nil
}

func malformed(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrMalformedReply, err)
}

// encoder appends fields in ascending order; zero scalars are omitted as in proto3
type encoder struct {
	buf []byte
}

func (e *encoder) putInt64(num protowire.Number, v int64) {
	if v == 0 {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, uint64(v))
}

func (e *encoder) putBool(num protowire.Number, v bool) {
	if !v {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, 1)
}

func (e *encoder) putString(num protowire.Number, v string) {
	if v == "" {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendString(e.buf, v)
}

// putBytes always emits the field, even when empty
func (e *encoder) putBytes(num protowire.Number, v []byte) {
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, v)
}

func (e *encoder) putMessage(num protowire.Number, m []byte) {
	e.putBytes(num, m)
}

func (e *encoder) putPacked(num protowire.Number, vs []int64) {
	if len(vs) == 0 {
		return
	}
	var inner []byte
	for _, v := range vs {
		inner = protowire.AppendVarint(inner, uint64(v))
	}
	e.putBytes(num, inner)
}

func (e *encoder) Bytes() []byte {
	return e.buf
}
