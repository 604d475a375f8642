package types

import (
	"slices"
	"time"
)

// Sentinel bounds for validity periods without an upstream date.
var (
	DistantPast   = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	DistantFuture = time.Date(4001, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// ValidityPeriod is an inclusive date interval. From is never after Till.
type ValidityPeriod struct {
	From time.Time `json:"from"`
	Till time.Time `json:"till"`
}

// UnboundedPeriod returns the period covering DistantPast..DistantFuture
func UnboundedPeriod() ValidityPeriod {
	return ValidityPeriod{From: DistantPast, Till: DistantFuture}
}

// NewValidityPeriod builds a period from two bounds in either order
func NewValidityPeriod(a, b time.Time) ValidityPeriod {
	if b.Before(a) {
		a, b = b, a
	}
	return ValidityPeriod{From: a, Till: b}
}

// Contains reports whether t lies inside the period, bounds included
func (p ValidityPeriod) Contains(t time.Time) bool {
	return !t.Before(p.From) && !t.After(p.Till)
}

// IsUnbounded reports whether neither bound came from upstream data
func (p ValidityPeriod) IsUnbounded() bool {
	return p.From.Equal(DistantPast) && p.Till.Equal(DistantFuture)
}

// Range is an inclusive numeric range, e.g. "2-3 pieces" or "400-500 g"
type Range struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// NewRange builds a range from two bounds in either order
func NewRange(a, b float64) Range {
	if b < a {
		a, b = b, a
	}
	return Range{From: a, To: b}
}

// Single returns a range holding exactly one value
func Single(v float64) Range {
	return Range{From: v, To: v}
}

// Branding holds the dealer branding shown with offers and publications
type Branding struct {
	Name        string `json:"name"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
	Color       string `json:"color,omitempty"`
}

// ImageURLs holds the thumb/view/zoom renditions of one image
type ImageURLs struct {
	Thumb string `json:"thumb"`
	View  string `json:"view"`
	Zoom  string `json:"zoom"`
}

// PublicationInfo locates an offer inside its publication.
// PagedPublicationPage is 0 for incito publications.
type PublicationInfo struct {
	PublicationID        string `json:"publicationId"`
	PagedPublicationPage int    `json:"pagedPublicationPage"`
	IncitoViewID         string `json:"incitoViewId"`
}

// Offer represents a single discounted product listing
type Offer struct {
	ID              string          `json:"id"`
	Heading         string          `json:"heading"`
	Description     string          `json:"description"`
	WebshopURL      string          `json:"webshopUrl"`
	RunDateRange    ValidityPeriod  `json:"runDateRange"`
	VisibleFrom     time.Time       `json:"visibleFrom"`
	Price           float64         `json:"price"`
	Currency        string          `json:"currency"`
	Savings         float64         `json:"savings"`
	PieceCount      Range           `json:"pieceCount"`
	UnitSize        Range           `json:"unitSize"`
	UnitSymbol      QuantityUnit    `json:"unitSymbol"`
	Branding        Branding        `json:"branding"`
	BusinessID      string          `json:"businessId"`
	StoreID         string          `json:"storeId"`
	PublicationInfo PublicationInfo `json:"publicationInfo"`
	ImageURLs       ImageURLs       `json:"imageUrls"`
}

// DefaultOffer returns an Offer with every field at its documented default
func DefaultOffer() Offer {
	return Offer{
		RunDateRange: UnboundedPeriod(),
		VisibleFrom:  DistantPast,
		PieceCount:   Single(1),
		UnitSize:     Single(0),
		UnitSymbol:   UnitPiece,
	}
}

// IsActive reports whether the offer runs at t
func (o Offer) IsActive(t time.Time) bool {
	return o.RunDateRange.Contains(t)
}

// IsVisible reports whether the offer may be shown at t, even if not yet running
func (o Offer) IsVisible(t time.Time) bool {
	return !t.Before(o.VisibleFrom) && !t.After(o.RunDateRange.Till)
}

// PublicationType is a view kind a publication can be opened with
type PublicationType string

const (
	PublicationTypePaged  PublicationType = "paged"
	PublicationTypeIncito PublicationType = "incito"
)

// PublicationTypes contains all known publication types
var PublicationTypes = []PublicationType{
	PublicationTypePaged,
	PublicationTypeIncito,
}

// IsValid reports whether t is a known publication type
func (t PublicationType) IsValid() bool {
	return slices.Contains(PublicationTypes, t)
}

// Publication represents a multi-page catalog (wire version 2)
type Publication struct {
	ID                     string            `json:"id"`
	Label                  *string           `json:"label"`
	PageCount              int               `json:"pageCount"`
	OfferCount             int               `json:"offerCount"`
	RunDateRange           ValidityPeriod    `json:"runDateRange"`
	AspectRatio            float64           `json:"aspectRatio"`
	Branding               Branding          `json:"branding"`
	FrontPageImages        ImageURLs         `json:"frontPageImages"`
	IsAvailableInAllStores bool              `json:"isAvailableInAllStores"`
	BusinessID             string            `json:"businessId"`
	StoreID                *string           `json:"storeId"`
	Types                  []PublicationType `json:"types"`

	// Derived from Types in NewPublication, never set directly.
	IsOnlyIncitoPublication bool `json:"isOnlyIncitoPublication"`
	HasIncitoPublication    bool `json:"hasIncitoPublication"`
	HasPagedPublication     bool `json:"hasPagedPublication"`
}

// NewPublication fills the capability flags of p from p.Types.
// A nil Types slice means the upstream sent nothing and defaults to paged.
func NewPublication(p Publication) Publication {
	if p.Types == nil {
		p.Types = []PublicationType{PublicationTypePaged}
	} else {
		p.Types = slices.Clone(p.Types)
	}
	p.HasIncitoPublication = slices.Contains(p.Types, PublicationTypeIncito)
	p.HasPagedPublication = slices.Contains(p.Types, PublicationTypePaged)
	p.IsOnlyIncitoPublication = len(p.Types) == 1 && p.HasIncitoPublication
	return p
}

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to the given int
func IntPtr(i int) *int {
	return &i
}
