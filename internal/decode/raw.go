package decode

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
)

// RawPublication is a version 2 publication as received from the catalog API.
// Everything except id, dealer_id and branding may be absent or null, and an
// optional field of the wrong JSON type is treated as absent.
type RawPublication struct {
	ID         string         `json:"id" validate:"required" jsonschema:"required"`
	Label      Text           `json:"label"`
	PageCount  Number         `json:"page_count"`
	OfferCount Number         `json:"offer_count"`
	RunFrom    Text           `json:"run_from"`
	RunTill    Text           `json:"run_till"`
	BusinessID string         `json:"dealer_id" validate:"required" jsonschema:"required"`
	StoreID    Text           `json:"store_id"`
	AllStores  Flag           `json:"all_stores"`
	Types      RawTypes       `json:"types"`
	Branding   *RawBranding   `json:"branding" validate:"required" jsonschema:"required"`
	Dimensions *RawDimensions `json:"dimensions,omitempty"`
	Images     *RawImageURLs  `json:"images,omitempty"`
}

// RawTypes is the publication type list. Entries are kept raw so a single
// bad entry does not fail the record. Items is nil when the list was absent
// or null; Invalid holds a value that was not a list.
type RawTypes struct {
	Items   []json.RawMessage
	Invalid string
}

// UnmarshalJSON implements json.Unmarshaler
func (t *RawTypes) UnmarshalJSON(b []byte) error {
	*t = RawTypes{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return nil
	}
	if b[0] != '[' || json.Unmarshal(b, &t.Items) != nil {
		t.Items, t.Invalid = nil, string(b)
		return nil
	}
	if t.Items == nil {
		t.Items = []json.RawMessage{}
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (t RawTypes) MarshalJSON() ([]byte, error) {
	if t.Items == nil {
		return jsonNull, nil
	}
	return json.Marshal(t.Items)
}

// JSONSchema describes the accepted wire shape
func (RawTypes) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:  "array",
		Items: &jsonschema.Schema{Type: "string", Enum: []any{"paged", "incito"}},
	}
}

// TypesOf returns a RawTypes holding the given type names
func TypesOf(names ...string) RawTypes {
	t := RawTypes{Items: make([]json.RawMessage, 0, len(names))}
	for _, name := range names {
		b, _ := json.Marshal(name)
		t.Items = append(t.Items, b)
	}
	return t
}

// The nested objects below keep a value that was not a JSON object in
// Invalid instead of failing the record. Invalid is never serialized.

// RawBranding is the dealer branding object shared by offers and publications
type RawBranding struct {
	Name        Text             `json:"name"`
	Website     Text             `json:"website"`
	Description Text             `json:"description"`
	Logo        Text             `json:"logo"`
	Color       Text             `json:"color"`
	Pageflip    *RawPageflipLook `json:"pageflip,omitempty"`
	Invalid     string           `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *RawBranding) UnmarshalJSON(b []byte) error {
	type plain RawBranding
	var p plain
	invalid := decodeObject(b, &p)
	*r = RawBranding(p)
	r.Invalid = invalid
	return nil
}

// RawPageflipLook holds the branding overrides used by the paged viewer
type RawPageflipLook struct {
	Logo    Text   `json:"logo"`
	Color   Text   `json:"color"`
	Invalid string `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *RawPageflipLook) UnmarshalJSON(b []byte) error {
	type plain RawPageflipLook
	var p plain
	invalid := decodeObject(b, &p)
	*r = RawPageflipLook(p)
	r.Invalid = invalid
	return nil
}

// RawDimensions is the cover image size; either axis may be missing
type RawDimensions struct {
	Width   Number `json:"width"`
	Height  Number `json:"height"`
	Invalid string `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *RawDimensions) UnmarshalJSON(b []byte) error {
	type plain RawDimensions
	var p plain
	invalid := decodeObject(b, &p)
	*r = RawDimensions(p)
	r.Invalid = invalid
	return nil
}

// RawImageURLs is the image rendition set
type RawImageURLs struct {
	Thumb   Text   `json:"thumb"`
	View    Text   `json:"view"`
	Zoom    Text   `json:"zoom"`
	Invalid string `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *RawImageURLs) UnmarshalJSON(b []byte) error {
	type plain RawImageURLs
	var p plain
	invalid := decodeObject(b, &p)
	*r = RawImageURLs(p)
	r.Invalid = invalid
	return nil
}

// RawOffer is an offer as received from the catalog API. Several fields
// arrive under an alternate key depending on the endpoint; both are kept
// and resolved in OfferFromRaw. No field is required.
type RawOffer struct {
	ID          Text           `json:"id"`
	Heading     Text           `json:"heading"`
	Description Text           `json:"description"`
	WebshopURL  Text           `json:"webshop_url"`
	Links       *RawOfferLinks `json:"links,omitempty"`
	RunFrom     Text           `json:"run_from"`
	RunTill     Text           `json:"run_till"`
	Publish     Text           `json:"publish"`
	VisibleFrom Text           `json:"visible_from"`
	Pricing     *RawPricing    `json:"pricing,omitempty"`
	Quantity    *RawQuantity   `json:"quantity,omitempty"`
	Branding    *RawBranding   `json:"branding,omitempty"`
	DealerID    Text           `json:"dealer_id"`
	BusinessID  Text           `json:"business_id"`
	StoreID     Text           `json:"store_id"`
	CatalogID   Text           `json:"catalog_id"`
	PubID       Text           `json:"publication_id"`
	CatalogPage Number         `json:"catalog_page"`
	Page        Number         `json:"page"`
	CatalogView Text           `json:"catalog_view_id"`
	IncitoView  Text           `json:"incito_view_id"`
	Images      *RawImageURLs  `json:"images,omitempty"`
}

// RawOfferLinks holds the outbound links of an offer
type RawOfferLinks struct {
	Webshop Text   `json:"webshop"`
	Invalid string `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *RawOfferLinks) UnmarshalJSON(b []byte) error {
	type plain RawOfferLinks
	var p plain
	invalid := decodeObject(b, &p)
	*r = RawOfferLinks(p)
	r.Invalid = invalid
	return nil
}

// RawPricing holds the offer price and the price before the discount
type RawPricing struct {
	Price    Number `json:"price"`
	PrePrice Number `json:"pre_price"`
	Currency Text   `json:"currency"`
	Invalid  string `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *RawPricing) UnmarshalJSON(b []byte) error {
	type plain RawPricing
	var p plain
	invalid := decodeObject(b, &p)
	*r = RawPricing(p)
	r.Invalid = invalid
	return nil
}

// RawQuantity describes how much product the offer covers
type RawQuantity struct {
	Unit    *RawUnit  `json:"unit,omitempty"`
	Size    *RawRange `json:"size,omitempty"`
	Pieces  *RawRange `json:"pieces,omitempty"`
	Invalid string    `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *RawQuantity) UnmarshalJSON(b []byte) error {
	type plain RawQuantity
	var p plain
	invalid := decodeObject(b, &p)
	*r = RawQuantity(p)
	r.Invalid = invalid
	return nil
}

// RawUnit is the unit of measure of RawQuantity.Size
type RawUnit struct {
	Symbol  Text   `json:"symbol"`
	Invalid string `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *RawUnit) UnmarshalJSON(b []byte) error {
	type plain RawUnit
	var p plain
	invalid := decodeObject(b, &p)
	*r = RawUnit(p)
	r.Invalid = invalid
	return nil
}

// RawRange is an inclusive range; either bound may be missing
type RawRange struct {
	From    Number `json:"from"`
	To      Number `json:"to"`
	Invalid string `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *RawRange) UnmarshalJSON(b []byte) error {
	type plain RawRange
	var p plain
	invalid := decodeObject(b, &p)
	*r = RawRange(p)
	r.Invalid = invalid
	return nil
}

// validate is safe for concurrent use once configured
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report wire names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkRequired returns a FieldError for the first required field that is missing
func checkRequired(op string, raw any) error {
	err := validate.Struct(raw)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return missingField(op, verrs[0].Field())
	}
	return malformed(op, err)
}
