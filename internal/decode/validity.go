package decode

import (
	"strings"
	"time"

	"github.com/kosarica/catalog-service/internal/types"
)

// APIDateLayout is the date format used by the catalog API, e.g. "2013-03-03T13:37:00+0000"
const APIDateLayout = "2006-01-02T15:04:05-0700"

// dateLayouts are tried in order; the first match wins
var dateLayouts = []string{
	APIDateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseValidityDate parses an upstream date string. Results are in UTC.
func ParseValidityDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ReconcileValidity builds a run date range from two optional bounds.
// Missing or unparseable bounds fall back to DistantPast / DistantFuture,
// and swapped bounds are reordered, so the result is never inverted.
func ReconcileValidity(from, till *string) types.ValidityPeriod {
	return reconcileValidity(textOf(from), textOf(till), "run_from", "run_till", nil)
}

func reconcileValidity(from, till Text, fromField, tillField string, n *notes) types.ValidityPeriod {
	fromDate := dateOr(from, types.DistantPast, fromField, n)
	tillDate := dateOr(till, types.DistantFuture, tillField, n)
	return types.NewValidityPeriod(fromDate, tillDate)
}

// dateOr parses t or returns fallback, noting values that were present but unusable
func dateOr(t Text, fallback time.Time, field string, n *notes) time.Time {
	if !t.Present() {
		return fallback
	}
	if t.Valid {
		if d, ok := ParseValidityDate(t.Value); ok {
			return d
		}
	}
	n.add(field, "unparseable date, using default", t.Raw)
	return fallback
}

func textOf(s *string) Text {
	if s == nil {
		return Text{}
	}
	return Text{Value: *s, Valid: true, Raw: *s}
}
