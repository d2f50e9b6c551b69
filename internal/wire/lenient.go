package wire

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number decodes a JSON number or numeric string. Anything else, including
// null, NaN and infinities, decodes to 0 without failing the enclosing value.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = 0
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = Number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*n = Number(f)
	return nil
}

func (n Number) Float() float64 { return float64(n) }

// Text decodes a JSON string; any other value decodes to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	*t = ""
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(s)
	}
	return nil
}

func (t Text) String() string { return string(t) }

// List decodes a JSON array element by element, dropping elements that fail
// to decode. A non-array value decodes to an empty list.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(b []byte) error {
	*l = nil
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil
	}
	out := make(List[T], 0, len(raws))
	for _, r := range raws {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// IsNull reports whether raw is absent or the JSON literal null.
func IsNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

func firstString(m map[string]json.RawMessage, keys ...string) *string {
	for _, k := range keys {
		raw, ok := m[k]
		if !ok {
			continue
		}
		var t Text
		_ = t.UnmarshalJSON(raw)
		if t != "" {
			s := string(t)
			return &s
		}
	}
	return nil
}

// firstNumber returns the first non-zero value among keys.
func firstNumber(m map[string]json.RawMessage, keys ...string) float64 {
	for _, k := range keys {
		raw, ok := m[k]
		if !ok {
			continue
		}
		var n Number
		_ = n.UnmarshalJSON(raw)
		if n != 0 {
			return float64(n)
		}
	}
	return 0
}
