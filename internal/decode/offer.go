package decode

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kosarica/catalog-service/internal/types"
)

const opOffer = "decode.offer"

// UnmarshalOffer decodes one raw offer JSON object. It fails only when the
// payload is not a JSON object.
func UnmarshalOffer(data []byte) (types.Offer, error) {
	return unmarshalOffer(data, nil)
}

// OfferFromRaw normalizes a raw offer. Offers have no required fields:
// anything missing keeps the default from types.DefaultOffer.
func OfferFromRaw(raw RawOffer) types.Offer {
	return offerFromRaw(&raw, nil)
}

func unmarshalOffer(data []byte, n *notes) (types.Offer, error) {
	var raw RawOffer
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.Offer{}, malformed(opOffer, err)
	}
	return offerFromRaw(&raw, n), nil
}

func offerFromRaw(raw *RawOffer, n *notes) types.Offer {
	o := types.DefaultOffer()

	o.ID = n.text(raw.ID, "id")
	o.Heading = n.text(raw.Heading, "heading")
	o.Description = n.text(raw.Description, "description")
	o.WebshopURL = n.text(raw.WebshopURL, "webshop_url")
	if l := raw.Links; o.WebshopURL == "" && l != nil && n.object(l.Invalid, "links") {
		o.WebshopURL = n.text(l.Webshop, "links.webshop")
	}

	o.RunDateRange = reconcileValidity(raw.RunFrom, raw.RunTill, "run_from", "run_till", n)
	if raw.Publish.Present() {
		o.VisibleFrom = dateOr(raw.Publish, types.DistantPast, "publish", n)
	} else {
		o.VisibleFrom = dateOr(raw.VisibleFrom, types.DistantPast, "visible_from", n)
	}

	if p := raw.Pricing; p != nil && n.object(p.Invalid, "pricing") {
		o.Price = n.number(p.Price, 0, "pricing.price")
		o.Currency = strings.ToUpper(n.text(p.Currency, "pricing.currency"))
		if p.PrePrice.Valid {
			o.Savings = savings(p.PrePrice.Value, o.Price)
		} else if p.PrePrice.Present() {
			n.add("pricing.pre_price", "unparseable number, no savings computed", p.PrePrice.Raw)
		}
	}

	if q := raw.Quantity; q != nil && n.object(q.Invalid, "quantity") {
		o.PieceCount = rangeOr(q.Pieces, o.PieceCount, "quantity.pieces", n)
		o.UnitSize = rangeOr(q.Size, o.UnitSize, "quantity.size", n)
		if u := q.Unit; u != nil && n.object(u.Invalid, "quantity.unit") {
			symbol := n.text(u.Symbol, "quantity.unit.symbol")
			if unit, ok := types.ParseQuantityUnit(symbol); ok {
				o.UnitSymbol = unit
			} else if symbol != "" {
				n.add("quantity.unit.symbol", "unknown unit, using piece", symbol)
			}
		}
	}

	o.Branding = branding(raw.Branding, n)
	o.BusinessID = firstNonEmpty(n.text(raw.DealerID, "dealer_id"), n.text(raw.BusinessID, "business_id"))
	o.StoreID = n.text(raw.StoreID, "store_id")

	page := raw.CatalogPage
	pageField := "catalog_page"
	if !page.Present() {
		page, pageField = raw.Page, "page"
	}
	o.PublicationInfo = types.PublicationInfo{
		PublicationID:        firstNonEmpty(n.text(raw.CatalogID, "catalog_id"), n.text(raw.PubID, "publication_id")),
		PagedPublicationPage: n.count(page, 0, pageField),
		IncitoViewID:         firstNonEmpty(n.text(raw.CatalogView, "catalog_view_id"), n.text(raw.IncitoView, "incito_view_id")),
	}

	o.ImageURLs = imageURLs(raw.Images, "images", n)
	return o
}

// savings is the discount in decimal arithmetic, so 19.95 - 12.95 is exactly 7
func savings(prePrice, price float64) float64 {
	return decimal.NewFromFloat(prePrice).Sub(decimal.NewFromFloat(price)).InexactFloat64()
}

// rangeOr resolves an inclusive range. A single usable bound is used for
// both ends; swapped bounds are reordered.
func rangeOr(r *RawRange, fallback types.Range, field string, n *notes) types.Range {
	if r == nil || !n.object(r.Invalid, field) {
		return fallback
	}
	from, to := r.From, r.To
	if !from.Valid && from.Present() {
		n.add(field+".from", "unparseable number, ignored", from.Raw)
	}
	if !to.Valid && to.Present() {
		n.add(field+".to", "unparseable number, ignored", to.Raw)
	}

	switch {
	case from.Valid && to.Valid:
		return types.NewRange(from.Value, to.Value)
	case from.Valid:
		return types.Single(from.Value)
	case to.Valid:
		return types.Single(to.Value)
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
