package domain

import "errors"

// Error kinds surfaced by the retrieval core. Callers dispatch with
// errors.Is: provider faults are retryable, dimension and parse faults
// are not.
var (
	// ErrDimensionMismatch indicates a query or stored vector whose length
	// disagrees with the store's configured embedding dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingUnavailable indicates the embedding provider could not be
	// reached or returned an error.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrStorage indicates a read or write failure against the segment store.
	ErrStorage = errors.New("segment storage failure")

	// ErrTimestampParse indicates a malformed mm.ss timing value.
	ErrTimestampParse = errors.New("malformed timestamp")
)
