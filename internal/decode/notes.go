package decode

import (
	"strings"

	"github.com/kosarica/catalog-service/internal/types"
)

// notes collects soft decode problems. A nil *notes discards them, which is
// what the single-record entry points use.
type notes struct {
	warnings []types.DecodeWarning
}

func (n *notes) add(field, message, value string) {
	if n == nil {
		return
	}
	w := types.DecodeWarning{Field: field, Message: message}
	if value != "" {
		w.Value = types.StringPtr(value)
	}
	n.warnings = append(n.warnings, w)
}

// number returns the value of v, or fallback when it is absent or unusable
func (n *notes) number(v Number, fallback float64, field string) float64 {
	if v.Valid {
		return v.Value
	}
	if v.Present() {
		n.add(field, "unparseable number, using default", v.Raw)
	}
	return fallback
}

// count returns v as a whole number, or fallback
func (n *notes) count(v Number, fallback int, field string) int {
	if c, ok := v.Int(); ok {
		return c
	}
	if v.Present() {
		n.add(field, "not a whole number, using default", v.Raw)
	}
	return fallback
}

// flag returns the value of v, or fallback
func (n *notes) flag(v Flag, fallback bool, field string) bool {
	if v.Valid {
		return v.Value
	}
	if v.Present() {
		n.add(field, "not a boolean, using default", v.Raw)
	}
	return fallback
}

// text returns the string value of v, or "" when it is absent or not a string
func (n *notes) text(v Text, field string) string {
	if v.Valid {
		return strings.TrimSpace(v.Value)
	}
	if v.Raw != "" {
		n.add(field, "not a string, ignored", v.Raw)
	}
	return ""
}

// optionalText is text for nullable fields: nil unless upstream sent a string
func (n *notes) optionalText(v Text, field string) *string {
	if v.Valid {
		return types.StringPtr(v.Value)
	}
	if v.Raw != "" {
		n.add(field, "not a string, using null", v.Raw)
	}
	return nil
}

// object reports whether a nested object arrived as a JSON object. invalid is
// the raw value kept by the lenient unmarshaler when it did not.
func (n *notes) object(invalid, field string) bool {
	if invalid == "" {
		return true
	}
	n.add(field, "not an object, using default", invalid)
	return false
}
