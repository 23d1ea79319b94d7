package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input, rejected
	// before any I/O is attempted.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimited indicates a provider throttled the request.
	// Callers retry with bounded exponential backoff.
	ErrRateLimited = errors.New("rate limited")

	// ErrProviderUnavailable indicates a backend failed hard (auth,
	// 5xx, malformed response). Not retried; the chain advances.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrDimensionMismatch indicates an embedding with the wrong
	// vector length. The vector is discarded, never stored malformed.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingUnavailable indicates no embedding provider is
	// configured. Indexing stores chunks text-only.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")

	// ErrCompletionExhausted indicates every completion backend failed.
	// The chain falls through to the rule-based responder, so callers
	// of AnswerQuestion never see this error.
	ErrCompletionExhausted = errors.New("all completion backends exhausted")
)
