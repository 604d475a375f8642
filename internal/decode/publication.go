package decode

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/kosarica/catalog-service/internal/types"
)

const opPublication = "decode.publication"

// UnmarshalPublication decodes one raw publication JSON object
func UnmarshalPublication(data []byte) (types.Publication, error) {
	return unmarshalPublication(data, nil)
}

// PublicationFromRaw normalizes a raw publication into a Publication.
// Only a missing id, dealer_id or branding is an error; every other field
// falls back to its default.
func PublicationFromRaw(raw RawPublication) (types.Publication, error) {
	return publicationFromRaw(&raw, nil)
}

func unmarshalPublication(data []byte, n *notes) (types.Publication, error) {
	var raw RawPublication
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.Publication{}, malformed(opPublication, err)
	}
	return publicationFromRaw(&raw, n)
}

func publicationFromRaw(raw *RawPublication, n *notes) (types.Publication, error) {
	if err := checkRequired(opPublication, raw); err != nil {
		return types.Publication{}, err
	}
	if raw.Branding.Invalid != "" {
		return types.Publication{}, malformedField(opPublication, "branding", raw.Branding.Invalid)
	}

	return types.NewPublication(types.Publication{
		ID:                     raw.ID,
		Label:                  n.optionalText(raw.Label, "label"),
		PageCount:              n.count(raw.PageCount, 0, "page_count"),
		OfferCount:             n.count(raw.OfferCount, 0, "offer_count"),
		RunDateRange:           reconcileValidity(raw.RunFrom, raw.RunTill, "run_from", "run_till", n),
		AspectRatio:            aspectRatio(raw.Dimensions, n),
		Branding:               branding(raw.Branding, n),
		FrontPageImages:        imageURLs(raw.Images, "images", n),
		IsAvailableInAllStores: n.flag(raw.AllStores, true, "all_stores"),
		BusinessID:             raw.BusinessID,
		StoreID:                n.optionalText(raw.StoreID, "store_id"),
		Types:                  publicationTypes(raw.Types, n),
	}), nil
}

// aspectRatio is width/height of the cover, each axis defaulting to 1.0.
// A non-positive axis is treated as missing so the ratio stays finite and positive.
func aspectRatio(dims *RawDimensions, n *notes) float64 {
	if dims == nil || !n.object(dims.Invalid, "dimensions") {
		return 1.0
	}
	width := dimension(dims.Width, "dimensions.width", n)
	height := dimension(dims.Height, "dimensions.height", n)
	return width / height
}

func dimension(v Number, field string, n *notes) float64 {
	size := n.number(v, 1.0, field)
	if size <= 0 {
		n.add(field, "non-positive size, using default", v.Raw)
		return 1.0
	}
	return size
}

// publicationTypes returns nil when upstream sent no list, so NewPublication
// applies the paged default. Unknown and duplicate entries are dropped.
func publicationTypes(raw RawTypes, n *notes) []types.PublicationType {
	if raw.Invalid != "" {
		n.add("types", "not a list, using default", raw.Invalid)
		return nil
	}
	if raw.Items == nil {
		return nil
	}
	result := make([]types.PublicationType, 0, len(raw.Items))
	for _, item := range raw.Items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			n.add("types", "publication type is not a string, dropped", string(item))
			continue
		}
		t := types.PublicationType(strings.ToLower(strings.TrimSpace(s)))
		if !t.IsValid() {
			n.add("types", "unknown publication type, dropped", s)
			continue
		}
		if !slices.Contains(result, t) {
			result = append(result, t)
		}
	}
	return result
}

func branding(raw *RawBranding, n *notes) types.Branding {
	if raw == nil || !n.object(raw.Invalid, "branding") {
		return types.Branding{}
	}
	b := types.Branding{
		Name:        n.text(raw.Name, "branding.name"),
		Website:     n.text(raw.Website, "branding.website"),
		Description: n.text(raw.Description, "branding.description"),
		LogoURL:     n.text(raw.Logo, "branding.logo"),
		Color:       normalizeColor(n.text(raw.Color, "branding.color")),
	}
	// The pageflip look only fills in what the top level left empty
	if pf := raw.Pageflip; pf != nil && n.object(pf.Invalid, "branding.pageflip") {
		if b.LogoURL == "" {
			b.LogoURL = n.text(pf.Logo, "branding.pageflip.logo")
		}
		if b.Color == "" {
			b.Color = normalizeColor(n.text(pf.Color, "branding.pageflip.color"))
		}
	}
	return b
}

// normalizeColor turns "FFAA00" or "#ffaa00" into "#ffaa00". Anything that is
// not a 3 or 6 digit hex color is returned trimmed but otherwise untouched.
func normalizeColor(c string) string {
	c = strings.TrimSpace(c)
	hex := strings.TrimPrefix(c, "#")
	if len(hex) != 3 && len(hex) != 6 {
		return c
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return c
		}
	}
	return "#" + strings.ToLower(hex)
}

func imageURLs(raw *RawImageURLs, field string, n *notes) types.ImageURLs {
	if raw == nil || !n.object(raw.Invalid, field) {
		return types.ImageURLs{}
	}
	return types.ImageURLs{
		Thumb: n.text(raw.Thumb, field+".thumb"),
		View:  n.text(raw.View, field+".view"),
		Zoom:  n.text(raw.Zoom, field+".zoom"),
	}
}
