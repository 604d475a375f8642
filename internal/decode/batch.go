package decode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kosarica/catalog-service/internal/types"
)

// OpBatch is the Op of errors about the batch envelope rather than a record
const OpBatch = "decode.batch"

// Decoder decodes batches of raw records. Records are independent: a record
// that fails is reported in the result and does not affect its siblings.
type Decoder struct {
	logger  *zerolog.Logger
	workers int
	metrics *MetricsRecorder
}

// Option configures a Decoder
type Option func(*Decoder)

// WithLogger sets the logger used for warnings and failed records
func WithLogger(logger *zerolog.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithWorkers bounds the number of records decoded in parallel
func WithWorkers(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.workers = n
		}
	}
}

// NewDecoder creates a batch decoder
func NewDecoder(opts ...Option) *Decoder {
	nop := zerolog.Nop()
	d := &Decoder{
		logger:  &nop,
		workers: runtime.GOMAXPROCS(0),
		metrics: NewMetricsRecorder(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Publications decodes a JSON array of raw publications, or an object
// holding one under "publications".
func (d *Decoder) Publications(ctx context.Context, data []byte) (*types.DecodeResult[types.Publication], error) {
	return decodeBatch(ctx, d, types.KindPublication, data, unmarshalPublication)
}

// Offers decodes a JSON array of raw offers, or an object holding one under "offers".
func (d *Decoder) Offers(ctx context.Context, data []byte) (*types.DecodeResult[types.Offer], error) {
	return decodeBatch(ctx, d, types.KindOffer, data, unmarshalOffer)
}

type outcome[T any] struct {
	record   T
	warnings []types.DecodeWarning
	err      error
}

func decodeBatch[T any](ctx context.Context, d *Decoder, kind types.RecordKind, data []byte, fn func(data []byte, n *notes) (T, error)) (*types.DecodeResult[T], error) {
	start := time.Now()

	records, err := splitRecords(data, string(kind)+"s")
	if err != nil {
		return nil, err
	}

	outcomes := make([]outcome[T], len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n := &notes{}
			record, err := fn(rec, n)
			outcomes[i] = outcome[T]{record: record, warnings: n.warnings, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("decode %s batch: %w", kind, err)
	}

	result := &types.DecodeResult[T]{
		Records:      make([]T, 0, len(records)),
		TotalRecords: len(records),
	}
	for i, out := range outcomes {
		var recordID string
		if out.err != nil || len(out.warnings) > 0 {
			recordID = peekID(records[i])
		}

		for _, w := range out.warnings {
			w.Index = types.IntPtr(i)
			w.RecordID = recordID
			result.Warnings = append(result.Warnings, w)
			d.metrics.RecordWarning(string(kind), w.Field)
			d.logger.Debug().
				Str("kind", string(kind)).
				Int("index", i).
				Str("id", recordID).
				Str("field", w.Field).
				Msg(w.Message)
		}

		if out.err != nil {
			result.Errors = append(result.Errors, toDecodeError(i, recordID, out.err))
			d.metrics.RecordRecord(string(kind), errorOutcome(out.err))
			d.logger.Warn().
				Err(out.err).
				Str("kind", string(kind)).
				Int("index", i).
				Str("id", recordID).
				Msg("Skipping record")
			continue
		}

		result.Records = append(result.Records, out.record)
		d.metrics.RecordRecord(string(kind), "ok")
	}
	result.ValidRecords = len(result.Records)

	d.metrics.RecordBatch(string(kind), len(records), time.Since(start))
	d.logger.Info().
		Str("kind", string(kind)).
		Int("total", result.TotalRecords).
		Int("valid", result.ValidRecords).
		Int("warnings", len(result.Warnings)).
		Dur("took", time.Since(start)).
		Msg("Decoded batch")

	return result, nil
}

// splitRecords accepts either a bare array or an object wrapping one under key
func splitRecords(data []byte, key string) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &FieldError{Op: OpBatch, Kind: KindMalformed, Err: errors.New("empty payload")}
	}

	var records []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, malformed(OpBatch, err)
		}
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, malformed(OpBatch, err)
		}
		inner, ok := envelope[key]
		if !ok {
			return nil, &FieldError{Op: OpBatch, Kind: KindMissingField, Field: key, Err: fmt.Errorf("%s is required", key)}
		}
		if err := json.Unmarshal(inner, &records); err != nil {
			return nil, malformed(OpBatch, err)
		}
	default:
		return nil, &FieldError{Op: OpBatch, Kind: KindMalformed, Err: errors.New("expected a JSON array or object")}
	}
	return records, nil
}

// peekID extracts a string id from a raw record for error reporting
func peekID(raw json.RawMessage) string {
	var head struct {
		ID any `json:"id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return ""
	}
	if id, ok := head.ID.(string); ok {
		return id
	}
	return ""
}

func toDecodeError(index int, recordID string, err error) types.DecodeError {
	de := types.DecodeError{
		Index:    types.IntPtr(index),
		RecordID: recordID,
		Kind:     string(KindMalformed),
		Message:  err.Error(),
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		de.Kind = string(fe.Kind)
		if fe.Field != "" {
			de.Field = types.StringPtr(fe.Field)
		}
	}
	return de
}

func errorOutcome(err error) string {
	if IsKind(err, KindMissingField) {
		return string(KindMissingField)
	}
	return string(KindMalformed)
}
