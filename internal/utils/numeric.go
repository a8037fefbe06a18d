package utils

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToInt64 decodes a remote numeric field. Signed and unsigned integers are
// converted directly (unsigned wire values keep their two's complement
// meaning), floats are truncated, numeric strings are parsed. Non-finite,
// unparsable or unsupported values decode to 0.
func ToInt64(v any) int64 {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case json.Number:
		return stringToInt64(string(n))
	case string:
		return stringToInt64(n)
	default:
		return 0
	}
}

// ToInt decodes a remote numeric field into an int
func ToInt(v any) int {
	return int(ToInt64(v))
}

func floatToInt64(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	if f <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(f)
}

func stringToInt64(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return floatToInt64(f)
}

// FlexInt is an integer that unmarshals from JSON numbers, numeric strings
// or null. Anything that does not decode to a finite number becomes 0.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexInt(stringToInt64(s))
		return nil
	}
	*f = FlexInt(stringToInt64(string(data)))
	return nil
}

// Int64 returns the decoded value
func (f FlexInt) Int64() int64 { return int64(f) }
