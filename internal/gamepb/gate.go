package gamepb

import (
	"errors"
	"fmt"

	"github.com/blz111/qq-farm-bot/internal/domain"
)

// Meta is the routing header of every gate frame
type Meta struct {
	Service      string
	Method       string
	Type         MessageType
	ClientSeq    int64
	ServerSeq    int64
	ErrorCode    int64
	ErrorMessage string
}

// Message is a gate frame: a Meta header and an opaque body
type Message struct {
	Meta Meta
	Body []byte
}

// EventMessage is the body of a notify frame
type EventMessage struct {
	Type string
	Body []byte
}

// EncodeMessage serializes a gate frame
func EncodeMessage(m Message) []byte {
	var meta encoder
	meta.putString(fieldMetaService, m.Meta.Service)
	meta.putString(fieldMetaMethod, m.Meta.Method)
	meta.putInt64(fieldMetaType, int64(m.Meta.Type))
	meta.putInt64(fieldMetaClientSeq, m.Meta.ClientSeq)
	meta.putInt64(fieldMetaServerSeq, m.Meta.ServerSeq)
	meta.putInt64(fieldMetaErrorCode, m.Meta.ErrorCode)
	meta.putString(fieldMetaErrorMessage, m.Meta.ErrorMessage)

	var e encoder
	e.putMessage(fieldMessageMeta, meta.Bytes())
	e.putBytes(fieldMessageBody, m.Body)
	return e.Bytes()
}

// DecodeMessage parses a gate frame
func DecodeMessage(b []byte) (Message, error) {
	var m Message
	err := walk(b, func(f field) error {
		switch f.Num {
		case fieldMessageMeta:
			meta, err := decodeMeta(f.Bytes)
			if err != nil {
				return err
			}
			m.Meta = meta
		case fieldMessageBody:
			m.Body = f.Bytes
		}
		return nil
	})
	return m, err
}

func decodeMeta(b []byte) (Meta, error) {
	var m Meta
	err := walk(b, func(f field) error {
		switch f.Num {
		case fieldMetaService:
			m.Service = string(f.Bytes)
		case fieldMetaMethod:
			m.Method = string(f.Bytes)
		case fieldMetaType:
			m.Type = MessageType(f.Int64())
		case fieldMetaClientSeq:
			m.ClientSeq = f.Int64()
		case fieldMetaServerSeq:
			m.ServerSeq = f.Int64()
		case fieldMetaErrorCode:
			m.ErrorCode = f.Int64()
		case fieldMetaErrorMessage:
			m.ErrorMessage = string(f.Bytes)
		}
		return nil
	})
	return m, err
}

// EncodeEvent serializes a notify body
func EncodeEvent(ev EventMessage) []byte {
	var e encoder
	e.putString(fieldEventType, ev.Type)
	e.putBytes(fieldEventBody, ev.Body)
	return e.Bytes()
}

// DecodeEvent parses a notify body
func DecodeEvent(b []byte) (EventMessage, error) {
	var ev EventMessage
	err := walk(b, func(f field) error {
		switch f.Num {
		case fieldEventType:
			ev.Type = string(f.Bytes)
		case fieldEventBody:
			ev.Body = f.Bytes
		}
		return nil
	})
	return ev, err
}

// RemoteError is a non-zero error code returned in a response header
type RemoteError struct {
	Service string
	Method  string
	Code    int64
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s.%s: code %d: %s", domain.ErrMsgRemote, e.Service, e.Method, e.Code, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return domain.ErrRemote
}

// ResponseError returns a *RemoteError when meta carries an error code
func ResponseError(meta Meta) error {
	if meta.ErrorCode == 0 {
		return nil
	}
	return &RemoteError{
		Service: meta.Service,
		Method:  meta.Method,
		Code:    meta.ErrorCode,
		Message: meta.ErrorMessage,
	}
}

// RemoteCode extracts the remote error code from err, if any
func RemoteCode(err error) (int64, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Code, true
	}
	return 0, false
}
