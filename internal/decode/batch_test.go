package decode

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosarica/catalog-service/internal/types"
)

func TestDecoderPublicationsIsolatesFailures(t *testing.T) {
	payload := `[
		{"id":"p1","dealer_id":"d","branding":{}},
		{"dealer_id":"d","branding":{}},
		{"id":42,"dealer_id":"d","branding":{}},
		{"id":"p4","dealer_id":"d","branding":{},"types":["incito"]}
	]`

	result, err := NewDecoder().Publications(context.Background(), []byte(payload))
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalRecords)
	assert.Equal(t, 2, result.ValidRecords)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "p1", result.Records[0].ID)
	assert.Equal(t, "p4", result.Records[1].ID)
	assert.True(t, result.Records[1].IsOnlyIncitoPublication)

	require.Len(t, result.Errors, 2)

	missing := result.Errors[0]
	require.NotNil(t, missing.Index)
	assert.Equal(t, 1, *missing.Index)
	assert.Equal(t, string(KindMissingField), missing.Kind)
	require.NotNil(t, missing.Field)
	assert.Equal(t, "id", *missing.Field)

	bad := result.Errors[1]
	require.NotNil(t, bad.Index)
	assert.Equal(t, 2, *bad.Index)
	assert.Equal(t, string(KindMalformed), bad.Kind)
	assert.Empty(t, bad.RecordID)
}

func TestDecoderCollectsWarnings(t *testing.T) {
	payload := `[
		{"id":"clean","dealer_id":"d","branding":{}},
		{"id":"messy","dealer_id":"d","branding":{},"page_count":"x","run_till":"garbage","types":["hologram"]}
	]`

	result, err := NewDecoder().Publications(context.Background(), []byte(payload))
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Empty(t, result.Errors)

	fields := make(map[string]types.DecodeWarning)
	for _, w := range result.Warnings {
		require.NotNil(t, w.Index)
		assert.Equal(t, 1, *w.Index)
		assert.Equal(t, "messy", w.RecordID)
		fields[w.Field] = w
	}
	assert.Contains(t, fields, "page_count")
	assert.Contains(t, fields, "run_till")
	assert.Contains(t, fields, "types")
	require.NotNil(t, fields["run_till"].Value)
	assert.Equal(t, "garbage", *fields["run_till"].Value)

	messy := result.Records[1]
	assert.Equal(t, 0, messy.PageCount)
	assert.Equal(t, types.DistantFuture, messy.RunDateRange.Till)
	assert.Empty(t, messy.Types)
}

func TestDecoderOffersPreservesOrder(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`{"offers":[`)
	for i := 0; i < 50; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"id":"o%d","pricing":{"price":%d}}`, i, i)
	}
	sb.WriteString(`]}`)

	logger := zerolog.Nop()
	decoder := NewDecoder(WithWorkers(3), WithLogger(&logger))

	result, err := decoder.Offers(context.Background(), []byte(sb.String()))
	require.NoError(t, err)
	require.Len(t, result.Records, 50)
	for i, o := range result.Records {
		assert.Equal(t, fmt.Sprintf("o%d", i), o.ID)
		assert.Equal(t, float64(i), o.Price)
	}
}

func TestDecoderOffersRecordErrors(t *testing.T) {
	result, err := NewDecoder().Offers(context.Background(), []byte(`[{"id":"ok"}, 1, "x"]`))
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalRecords)
	assert.Equal(t, 1, result.ValidRecords)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 1, *result.Errors[0].Index)
	assert.Equal(t, 2, *result.Errors[1].Index)
}

func TestDecoderEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		kind    ErrorKind
		total   int
	}{
		{name: "bare array", payload: `[{"id":"p","dealer_id":"d","branding":{}}]`, total: 1},
		{name: "wrapped array", payload: `{"publications":[{"id":"p","dealer_id":"d","branding":{}}]}`, total: 1},
		{name: "empty array", payload: `[]`, total: 0},
		{name: "wrong key", payload: `{"offers":[]}`, kind: KindMissingField},
		{name: "wrapped non-array", payload: `{"publications":{"id":"p"}}`, kind: KindMalformed},
		{name: "scalar", payload: `"publications"`, kind: KindMalformed},
		{name: "empty", payload: `  `, kind: KindMalformed},
		{name: "truncated", payload: `[{"id":"p"`, kind: KindMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewDecoder().Publications(context.Background(), []byte(tt.payload))
			if tt.kind != "" {
				require.Error(t, err)
				assert.True(t, IsKind(err, tt.kind), "got %v", err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.total, result.TotalRecords)
			assert.NotNil(t, result.Records)
		})
	}
}

func TestDecoderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDecoder().Offers(ctx, []byte(`[{"id":"a"},{"id":"b"}]`))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
