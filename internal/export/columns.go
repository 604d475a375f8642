package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/kosarica/catalog-service/internal/types"
)

// Column describes one exported field of a record
type Column[T any] struct {
	Header string
	Value  func(T) any
}

// OfferColumns are the columns written for decoded offers
var OfferColumns = []Column[types.Offer]{
	{"ID", func(o types.Offer) any { return o.ID }},
	{"Heading", func(o types.Offer) any { return o.Heading }},
	{"Price", func(o types.Offer) any { return o.Price }},
	{"Savings", func(o types.Offer) any { return o.Savings }},
	{"Currency", func(o types.Offer) any { return o.Currency }},
	{"Size", func(o types.Offer) any { return formatRange(o.UnitSize) }},
	{"Unit", func(o types.Offer) any { return string(o.UnitSymbol) }},
	{"Pieces", func(o types.Offer) any { return formatRange(o.PieceCount) }},
	{"Runs From", func(o types.Offer) any { return o.RunDateRange.From }},
	{"Runs Till", func(o types.Offer) any { return o.RunDateRange.Till }},
	{"Dealer", func(o types.Offer) any { return o.BusinessID }},
	{"Publication", func(o types.Offer) any { return o.PublicationInfo.PublicationID }},
	{"Page", func(o types.Offer) any { return o.PublicationInfo.PagedPublicationPage }},
}

// PublicationColumns are the columns written for decoded publications
var PublicationColumns = []Column[types.Publication]{
	{"ID", func(p types.Publication) any { return p.ID }},
	{"Label", func(p types.Publication) any { return p.Label }},
	{"Dealer", func(p types.Publication) any { return p.BusinessID }},
	{"Branding", func(p types.Publication) any { return p.Branding.Name }},
	{"Pages", func(p types.Publication) any { return p.PageCount }},
	{"Offers", func(p types.Publication) any { return p.OfferCount }},
	{"Runs From", func(p types.Publication) any { return p.RunDateRange.From }},
	{"Runs Till", func(p types.Publication) any { return p.RunDateRange.Till }},
	{"Aspect Ratio", func(p types.Publication) any { return p.AspectRatio }},
	{"Types", func(p types.Publication) any { return p.Types }},
	{"All Stores", func(p types.Publication) any { return p.IsAvailableInAllStores }},
	{"Store", func(p types.Publication) any { return p.StoreID }},
}

// cellValue flattens a column value into something both writers understand.
// Numbers and booleans are kept so spreadsheets can sort them.
func cellValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return formatDate(val)
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case []types.PublicationType:
		parts := make([]string, len(val))
		for i, t := range val {
			parts[i] = string(t)
		}
		return strings.Join(parts, ",")
	}
	return v
}

// formatDate renders a date; the unbounded sentinels render empty
func formatDate(t time.Time) string {
	if t.Equal(types.DistantPast) || t.Equal(types.DistantFuture) {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatRange(r types.Range) string {
	from := strconv.FormatFloat(r.From, 'f', -1, 64)
	if r.From == r.To {
		return from
	}
	return from + "-" + strconv.FormatFloat(r.To, 'f', -1, 64)
}

func formatCell(v any) string {
	switch val := cellValue(v).(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}
