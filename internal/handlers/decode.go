package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kosarica/catalog-service/internal/decode"
	"github.com/kosarica/catalog-service/internal/telemetry"
)

// ============================================================================
// Decode Endpoints
// ============================================================================

// ErrorResponse is returned for requests that could not be decoded
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// DecodeHandler serves the stateless decode endpoints
type DecodeHandler struct {
	decoder      *decode.Decoder
	maxBodyBytes int64
	tracer       trace.Tracer
}

// NewDecodeHandler creates a handler. maxBodyBytes bounds the request body.
func NewDecodeHandler(decoder *decode.Decoder, maxBodyBytes int64) *DecodeHandler {
	return &DecodeHandler{
		decoder:      decoder,
		maxBodyBytes: maxBodyBytes,
		tracer:       telemetry.Tracer("catalog-service/handlers"),
	}
}

// Register mounts the decode routes on group
func (h *DecodeHandler) Register(group *gin.RouterGroup) {
	group.POST("/publications", h.DecodePublications)
	group.POST("/publication", h.DecodePublication)
	group.POST("/offers", h.DecodeOffers)
	group.POST("/offer", h.DecodeOffer)
}

// DecodePublications decodes a batch of raw publications
func (h *DecodeHandler) DecodePublications(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "decode.publications")
	defer span.End()

	result, err := h.decoder.Publications(ctx, body)
	if err != nil {
		failSpan(span, err)
		respondError(c, err)
		return
	}
	annotateBatch(span, result.TotalRecords, result.ValidRecords, len(result.Warnings))
	c.JSON(http.StatusOK, result)
}

// DecodeOffers decodes a batch of raw offers
func (h *DecodeHandler) DecodeOffers(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "decode.offers")
	defer span.End()

	result, err := h.decoder.Offers(ctx, body)
	if err != nil {
		failSpan(span, err)
		respondError(c, err)
		return
	}
	annotateBatch(span, result.TotalRecords, result.ValidRecords, len(result.Warnings))
	c.JSON(http.StatusOK, result)
}

// DecodePublication decodes a single raw publication. A missing required
// field is a 422, a payload that is not a publication object is a 400.
func (h *DecodeHandler) DecodePublication(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	_, span := h.tracer.Start(c.Request.Context(), "decode.publication")
	defer span.End()

	publication, err := decode.UnmarshalPublication(body)
	if err != nil {
		failSpan(span, err)
		respondError(c, err)
		return
	}
	span.SetAttributes(attribute.String("publication.id", publication.ID))
	c.JSON(http.StatusOK, publication)
}

// DecodeOffer decodes a single raw offer
func (h *DecodeHandler) DecodeOffer(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	_, span := h.tracer.Start(c.Request.Context(), "decode.offer")
	defer span.End()

	offer, err := decode.UnmarshalOffer(body)
	if err != nil {
		failSpan(span, err)
		respondError(c, err)
		return
	}
	span.SetAttributes(attribute.String("offer.id", offer.ID))
	c.JSON(http.StatusOK, offer)
}

func (h *DecodeHandler) readBody(c *gin.Context) ([]byte, bool) {
	reader := c.Request.Body
	if h.maxBodyBytes > 0 {
		reader = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil, false
	}
	return body, true
}

// respondError maps decode errors to status codes. A record missing a
// required field is a 422; any other FieldError means the body was unusable.
func respondError(c *gin.Context, err error) {
	resp := ErrorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var fe *decode.FieldError
	if errors.As(err, &fe) {
		resp.Field = fe.Field
		resp.Kind = string(fe.Kind)
		status = http.StatusBadRequest
		if fe.Kind == decode.KindMissingField && fe.Op != decode.OpBatch {
			status = http.StatusUnprocessableEntity
		}
	}
	c.JSON(status, resp)
}

func annotateBatch(span trace.Span, total, valid, warnings int) {
	span.SetAttributes(
		attribute.Int("records.total", total),
		attribute.Int("records.valid", valid),
		attribute.Int("records.warnings", warnings),
	)
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
