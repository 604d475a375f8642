package types

// RecordKind names the kind of record a payload holds
type RecordKind string

const (
	KindPublication RecordKind = "publication"
	KindOffer       RecordKind = "offer"
)

// DecodeWarning represents a value that was replaced by its default during decoding
type DecodeWarning struct {
	Index    *int    `json:"index,omitempty"`
	RecordID string  `json:"recordId,omitempty"`
	Field    string  `json:"field"`
	Message  string  `json:"message"`
	Value    *string `json:"value,omitempty"`
}

// DecodeError represents a record that could not be decoded
type DecodeError struct {
	Index    *int    `json:"index,omitempty"`
	RecordID string  `json:"recordId,omitempty"`
	Field    *string `json:"field,omitempty"`
	Kind     string  `json:"kind"`
	Message  string  `json:"message"`
}

// DecodeResult represents the result of decoding a batch of raw records.
// Records keeps input order; failed records are left out and reported in Errors.
type DecodeResult[T any] struct {
	Records      []T             `json:"records"`
	Errors       []DecodeError   `json:"errors,omitempty"`
	Warnings     []DecodeWarning `json:"warnings,omitempty"`
	TotalRecords int             `json:"totalRecords"`
	ValidRecords int             `json:"validRecords"`
}
