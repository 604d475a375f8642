package decode

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
)

// The lenient value types below never fail to unmarshal. A value of the wrong
// JSON type is kept in Raw and reported as not Valid, so one bad optional field
// cannot fail the whole record.

var jsonNull = []byte("null")

// decodeObject unmarshals b into v when b is a JSON object. Any other value
// is returned as received for the caller to report; null counts as absent.
func decodeObject(b []byte, v any) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return ""
	}
	if b[0] == '{' && json.Unmarshal(b, v) == nil {
		return ""
	}
	return string(b)
}

// Number is a lenient JSON number that also accepts numeric strings
// such as "12.99", "12,99" or "1.299,00 kr".
type Number struct {
	Value float64
	Valid bool
	Raw   string
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return nil
	}
	n.Raw = string(b)

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		n.Raw = s
		if v, err := ParseAmount(s); err == nil {
			n.Value, n.Valid = v, true
		}
		return nil
	}

	v, err := strconv.ParseFloat(string(b), 64)
	if err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		n.Value, n.Valid = v, true
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}

// JSONSchema describes the accepted wire shapes
func (Number) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "number"},
			{Type: "string"},
			{Type: "null"},
		},
	}
}

// Present reports whether upstream sent a non-null value
func (n Number) Present() bool {
	return n.Valid || n.Raw != ""
}

// Or returns the value, or fallback when it is absent or unusable
func (n Number) Or(fallback float64) float64 {
	if n.Valid {
		return n.Value
	}
	return fallback
}

// Int returns the value as an int; ok is false unless it is a whole number
func (n Number) Int() (int, bool) {
	if !n.Valid || n.Value != math.Trunc(n.Value) || math.Abs(n.Value) > math.MaxInt32 {
		return 0, false
	}
	return int(n.Value), true
}

// NumberOf returns a valid Number holding v
func NumberOf(v float64) Number {
	return Number{Value: v, Valid: true, Raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

// Text is a lenient JSON string
type Text struct {
	Value string
	Valid bool
	Raw   string
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(b []byte) error {
	*t = Text{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return nil
	}
	t.Raw = string(b)

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		t.Value, t.Valid, t.Raw = s, true, s
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return jsonNull, nil
	}
	return json.Marshal(t.Value)
}

// JSONSchema describes the accepted wire shapes
func (Text) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "null"},
		},
	}
}

// Present reports whether upstream sent a non-empty value.
// An empty string counts as absent.
func (t Text) Present() bool {
	if t.Valid {
		return strings.TrimSpace(t.Value) != ""
	}
	return t.Raw != ""
}

// TextOf returns a valid Text holding s
func TextOf(s string) Text {
	return Text{Value: s, Valid: true, Raw: s}
}

// Flag is a lenient JSON boolean that also accepts "true"/"false" and 1/0
type Flag struct {
	Value bool
	Valid bool
	Raw   string
}

// UnmarshalJSON implements json.Unmarshaler
func (f *Flag) UnmarshalJSON(b []byte) error {
	*f = Flag{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return nil
	}
	f.Raw = string(b)

	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		f.Raw = s
	}
	if v, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
		f.Value, f.Valid = v, true
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (f Flag) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return jsonNull, nil
	}
	return json.Marshal(f.Value)
}

// JSONSchema describes the accepted wire shapes
func (Flag) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "boolean"},
			{Type: "string"},
			{Type: "integer"},
			{Type: "null"},
		},
	}
}

// Present reports whether upstream sent a non-null value
func (f Flag) Present() bool {
	return f.Valid || f.Raw != ""
}

// Or returns the value, or fallback when it is absent or unusable
func (f Flag) Or(fallback bool) bool {
	if f.Valid {
		return f.Value
	}
	return fallback
}

// FlagOf returns a valid Flag holding v
func FlagOf(v bool) Flag {
	return Flag{Value: v, Valid: true, Raw: strconv.FormatBool(v)}
}
