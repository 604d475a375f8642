package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewValidityPeriod(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, NewValidityPeriod(a, b), NewValidityPeriod(b, a))

	p := NewValidityPeriod(b, a)
	assert.Equal(t, a, p.From)
	assert.Equal(t, b, p.Till)
	assert.True(t, p.Contains(a))
	assert.True(t, p.Contains(b))
	assert.False(t, p.Contains(b.Add(time.Second)))
	assert.False(t, p.IsUnbounded())
	assert.True(t, UnboundedPeriod().IsUnbounded())
	assert.True(t, UnboundedPeriod().Contains(time.Now()))
}

func TestNewRange(t *testing.T) {
	assert.Equal(t, Range{From: 1, To: 3}, NewRange(3, 1))
	assert.Equal(t, Range{From: 1, To: 3}, NewRange(1, 3))
	assert.Equal(t, Range{From: 2, To: 2}, Single(2))
}

func TestOfferActivity(t *testing.T) {
	o := DefaultOffer()
	o.RunDateRange = NewValidityPeriod(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	)
	o.VisibleFrom = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	preview := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	running := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	expired := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	assert.False(t, o.IsActive(preview))
	assert.True(t, o.IsVisible(preview))
	assert.True(t, o.IsActive(running))
	assert.True(t, o.IsVisible(running))
	assert.False(t, o.IsActive(expired))
	assert.False(t, o.IsVisible(expired))
}

func TestNewPublication(t *testing.T) {
	tests := []struct {
		name       string
		types      []PublicationType
		want       []PublicationType
		onlyIncito bool
		hasIncito  bool
		hasPaged   bool
	}{
		{"nil defaults to paged", nil, []PublicationType{PublicationTypePaged}, false, false, true},
		{"empty stays empty", []PublicationType{}, []PublicationType{}, false, false, false},
		{"incito", []PublicationType{PublicationTypeIncito}, []PublicationType{PublicationTypeIncito}, true, true, false},
		{
			"both",
			[]PublicationType{PublicationTypeIncito, PublicationTypePaged},
			[]PublicationType{PublicationTypeIncito, PublicationTypePaged},
			false, true, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPublication(Publication{ID: "p", Types: tt.types})
			assert.Equal(t, tt.want, p.Types)
			assert.Equal(t, tt.onlyIncito, p.IsOnlyIncitoPublication)
			assert.Equal(t, tt.hasIncito, p.HasIncitoPublication)
			assert.Equal(t, tt.hasPaged, p.HasPagedPublication)
		})
	}
}

func TestNewPublicationCopiesTypes(t *testing.T) {
	in := []PublicationType{PublicationTypeIncito}
	p := NewPublication(Publication{Types: in})
	in[0] = PublicationTypePaged

	assert.Equal(t, PublicationTypeIncito, p.Types[0])
	assert.True(t, p.IsOnlyIncitoPublication)
}

func TestPublicationTypeIsValid(t *testing.T) {
	assert.True(t, PublicationTypePaged.IsValid())
	assert.True(t, PublicationTypeIncito.IsValid())
	assert.False(t, PublicationType("Paged").IsValid())
	assert.False(t, PublicationType("").IsValid())
}
