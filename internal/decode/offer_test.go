package decode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosarica/catalog-service/internal/types"
)

func TestUnmarshalOfferFullPayload(t *testing.T) {
	payload := `{
		"id": " offer-1 ",
		"heading": "Bananas",
		"description": "Fairtrade, 1 kg",
		"webshop_url": "https://shop.example/bananas",
		"run_from": "2024-03-04T00:00:00+0000",
		"run_till": "2024-03-10T23:59:59+0000",
		"publish": "2024-03-01T12:00:00+0000",
		"pricing": {"price": 12.95, "pre_price": 19.95, "currency": "dkk"},
		"quantity": {
			"unit": {"symbol": "kg"},
			"size": {"from": 1, "to": 1},
			"pieces": {"from": 1, "to": 1}
		},
		"branding": {"name": " Netto ", "color": "FFD700"},
		"dealer_id": "dealer-9",
		"store_id": "store-1",
		"catalog_id": "cat-4",
		"catalog_page": 7,
		"catalog_view_id": "view-2",
		"images": {"thumb": "t.jpg", "view": "v.jpg", "zoom": "z.jpg"}
	}`

	o, err := UnmarshalOffer([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "offer-1", o.ID)
	assert.Equal(t, "Bananas", o.Heading)
	assert.Equal(t, "Fairtrade, 1 kg", o.Description)
	assert.Equal(t, "https://shop.example/bananas", o.WebshopURL)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), o.RunDateRange.From)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC), o.RunDateRange.Till)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), o.VisibleFrom)
	assert.Equal(t, 12.95, o.Price)
	assert.Equal(t, "DKK", o.Currency)
	assert.Equal(t, 7.0, o.Savings)
	assert.Equal(t, types.Single(1), o.UnitSize)
	assert.Equal(t, types.Single(1), o.PieceCount)
	assert.Equal(t, types.UnitKilogram, o.UnitSymbol)
	assert.Equal(t, "Netto", o.Branding.Name)
	assert.Equal(t, "#ffd700", o.Branding.Color)
	assert.Equal(t, "dealer-9", o.BusinessID)
	assert.Equal(t, "store-1", o.StoreID)
	assert.Equal(t, types.PublicationInfo{
		PublicationID:        "cat-4",
		PagedPublicationPage: 7,
		IncitoViewID:         "view-2",
	}, o.PublicationInfo)
	assert.Equal(t, types.ImageURLs{Thumb: "t.jpg", View: "v.jpg", Zoom: "z.jpg"}, o.ImageURLs)
}

func TestUnmarshalOfferDefaults(t *testing.T) {
	o, err := UnmarshalOffer([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, types.DefaultOffer(), o)
	assert.True(t, o.RunDateRange.IsUnbounded())
	assert.Equal(t, types.DistantPast, o.VisibleFrom)
	assert.Equal(t, types.UnitPiece, o.UnitSymbol)
}

func TestUnmarshalOfferAlternateKeys(t *testing.T) {
	payload := `{
		"links": {"webshop": "https://shop.example/alt"},
		"visible_from": "2024-02-01",
		"business_id": "biz-1",
		"publication_id": "pub-7",
		"page": 3,
		"incito_view_id": "incito-1"
	}`

	o, err := UnmarshalOffer([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example/alt", o.WebshopURL)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), o.VisibleFrom)
	assert.Equal(t, "biz-1", o.BusinessID)
	assert.Equal(t, "pub-7", o.PublicationInfo.PublicationID)
	assert.Equal(t, 3, o.PublicationInfo.PagedPublicationPage)
	assert.Equal(t, "incito-1", o.PublicationInfo.IncitoViewID)
}

func TestUnmarshalOfferPrimaryKeysWin(t *testing.T) {
	payload := `{
		"webshop_url": "https://primary",
		"links": {"webshop": "https://secondary"},
		"publish": "2024-02-02",
		"visible_from": "2024-01-01",
		"dealer_id": "dealer",
		"business_id": "business",
		"catalog_id": "catalog",
		"publication_id": "publication",
		"catalog_page": 4,
		"page": 9,
		"catalog_view_id": "catalog-view",
		"incito_view_id": "incito-view"
	}`

	o, err := UnmarshalOffer([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "https://primary", o.WebshopURL)
	assert.Equal(t, time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), o.VisibleFrom)
	assert.Equal(t, "dealer", o.BusinessID)
	assert.Equal(t, "catalog", o.PublicationInfo.PublicationID)
	assert.Equal(t, 4, o.PublicationInfo.PagedPublicationPage)
	assert.Equal(t, "catalog-view", o.PublicationInfo.IncitoViewID)
}

func TestUnmarshalOfferPricing(t *testing.T) {
	tests := []struct {
		name     string
		pricing  string
		price    float64
		savings  float64
		currency string
	}{
		{"numbers", `{"price":10,"pre_price":15,"currency":"EUR"}`, 10, 5, "EUR"},
		{"european strings", `{"price":"12,95","pre_price":"19,95 kr","currency":" sek "}`, 12.95, 7, "SEK"},
		{"no pre price", `{"price":4.5}`, 4.5, 0, ""},
		{"unparseable price", `{"price":"call us","pre_price":3}`, 0, 3, ""},
		{"null price", `{"price":null}`, 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := UnmarshalOffer([]byte(`{"pricing":` + tt.pricing + `}`))
			require.NoError(t, err)
			assert.InDelta(t, tt.price, o.Price, 1e-9)
			assert.InDelta(t, tt.savings, o.Savings, 1e-9)
			assert.Equal(t, tt.currency, o.Currency)
		})
	}
}

func TestUnmarshalOfferQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		size     types.Range
		pieces   types.Range
		unit     types.QuantityUnit
	}{
		{
			name:     "swapped size",
			quantity: `{"unit":{"symbol":"g"},"size":{"from":500,"to":400}}`,
			size:     types.Range{From: 400, To: 500},
			pieces:   types.Single(1),
			unit:     types.UnitGram,
		},
		{
			name:     "single bound",
			quantity: `{"unit":{"symbol":"ml"},"size":{"to":250},"pieces":{"from":6}}`,
			size:     types.Single(250),
			pieces:   types.Single(6),
			unit:     types.UnitMillilitre,
		},
		{
			name:     "string bounds",
			quantity: `{"unit":{"symbol":"L"},"size":{"from":"1,5","to":"2"}}`,
			size:     types.Range{From: 1.5, To: 2},
			pieces:   types.Single(1),
			unit:     types.UnitLitre,
		},
		{
			name:     "garbage bounds keep defaults",
			quantity: `{"size":{"from":"lots"},"pieces":{"from":null,"to":null}}`,
			size:     types.Single(0),
			pieces:   types.Single(1),
			unit:     types.UnitPiece,
		},
		{
			name:     "unknown unit",
			quantity: `{"unit":{"symbol":"bushel"},"size":{"from":2,"to":2}}`,
			size:     types.Single(2),
			pieces:   types.Single(1),
			unit:     types.UnitPiece,
		},
		{
			name:     "spaced symbol",
			quantity: `{"unit":{"symbol":" fl oz "}}`,
			size:     types.Single(0),
			pieces:   types.Single(1),
			unit:     types.UnitFluidOunce,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := UnmarshalOffer([]byte(`{"quantity":` + tt.quantity + `}`))
			require.NoError(t, err)
			assert.Equal(t, tt.size, o.UnitSize)
			assert.Equal(t, tt.pieces, o.PieceCount)
			assert.Equal(t, tt.unit, o.UnitSymbol)
			assert.LessOrEqual(t, o.UnitSize.From, o.UnitSize.To)
			assert.LessOrEqual(t, o.PieceCount.From, o.PieceCount.To)
		})
	}
}

func TestUnmarshalOfferDates(t *testing.T) {
	payload := `{"run_from":"2024-05-31T00:00:00+0000","run_till":"2024-05-01T00:00:00+0000","publish":"soon"}`

	o, err := UnmarshalOffer([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), o.RunDateRange.From)
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), o.RunDateRange.Till)
	assert.Equal(t, types.DistantPast, o.VisibleFrom)
}

func TestUnmarshalOfferPageIsWholeNumber(t *testing.T) {
	tests := []struct {
		payload  string
		expected int
	}{
		{`{"catalog_page":"3"}`, 3},
		{`{"catalog_page":2.5}`, 0},
		{`{"catalog_page":null,"page":5}`, 5},
		{`{"page":"first"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			o, err := UnmarshalOffer([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, o.PublicationInfo.PagedPublicationPage)
		})
	}
}

func TestUnmarshalOfferMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{"truncated", `{"id":"o`, ""},
		{"not an object", `"offer"`, ""},
		{"list of offers", `[{"id":"o"}]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalOffer([]byte(tt.payload))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedPayload)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestUnmarshalOfferWrongTypedFieldsSelfHeal(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		field   string
		check   func(t *testing.T, o types.Offer)
	}{
		{
			name:    "pricing is a list",
			payload: `{"id":"o","pricing":[1,2]}`,
			field:   "pricing",
			check: func(t *testing.T, o types.Offer) {
				assert.Equal(t, 0.0, o.Price)
				assert.Equal(t, "", o.Currency)
			},
		},
		{
			name:    "numeric heading",
			payload: `{"id":"o","heading":12}`,
			field:   "heading",
			check: func(t *testing.T, o types.Offer) {
				assert.Equal(t, "", o.Heading)
			},
		},
		{
			name:    "quantity is a string",
			payload: `{"id":"o","quantity":"2 pcs"}`,
			field:   "quantity",
			check: func(t *testing.T, o types.Offer) {
				assert.Equal(t, types.Single(1), o.PieceCount)
				assert.Equal(t, types.UnitPiece, o.UnitSymbol)
			},
		},
		{
			name:    "pieces is a number",
			payload: `{"id":"o","quantity":{"pieces":4}}`,
			field:   "quantity.pieces",
			check: func(t *testing.T, o types.Offer) {
				assert.Equal(t, types.Single(1), o.PieceCount)
			},
		},
		{
			name:    "links is a string",
			payload: `{"id":"o","links":"https://shop"}`,
			field:   "links",
			check: func(t *testing.T, o types.Offer) {
				assert.Equal(t, "", o.WebshopURL)
			},
		},
		{
			name:    "branding is a string",
			payload: `{"id":"o","branding":"Netto"}`,
			field:   "branding",
			check: func(t *testing.T, o types.Offer) {
				assert.Equal(t, types.Branding{}, o.Branding)
			},
		},
		{
			name:    "numeric dealer id",
			payload: `{"id":"o","dealer_id":42,"business_id":"biz"}`,
			field:   "dealer_id",
			check: func(t *testing.T, o types.Offer) {
				assert.Equal(t, "biz", o.BusinessID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := UnmarshalOffer([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, "o", o.ID)
			tt.check(t, o)

			n := &notes{}
			_, err = unmarshalOffer([]byte(tt.payload), n)
			require.NoError(t, err)
			require.Len(t, n.warnings, 1)
			assert.Equal(t, tt.field, n.warnings[0].Field)
		})
	}
}

func TestOfferFromRaw(t *testing.T) {
	raw := RawOffer{
		ID:         TextOf("o-2"),
		BusinessID: TextOf("biz"),
		Pricing:    &RawPricing{Price: NumberOf(5), PrePrice: NumberOf(8), Currency: TextOf("nok")},
		Quantity:   &RawQuantity{Pieces: &RawRange{From: NumberOf(3), To: NumberOf(2)}},
		RunFrom:    TextOf("2024-06-01"),
	}

	o := OfferFromRaw(raw)
	assert.Equal(t, "o-2", o.ID)
	assert.Equal(t, "biz", o.BusinessID)
	assert.Equal(t, "NOK", o.Currency)
	assert.Equal(t, 3.0, o.Savings)
	assert.Equal(t, types.Range{From: 2, To: 3}, o.PieceCount)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), o.RunDateRange.From)
	assert.Equal(t, types.DistantFuture, o.RunDateRange.Till)
}
