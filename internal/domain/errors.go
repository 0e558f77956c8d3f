package domain

import "errors"

// Error taxonomy. Callers distinguish failure kinds with errors.Is; the HTTP
// boundary collapses all of them to a generic failure response.
var (
	// ErrMalformedInput marks a raw item missing a field its source type
	// requires. Counted and skipped during batch ingestion, never propagated
	// past the ingester boundary.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUpstreamUnavailable marks an unreachable or erroring external
	// content source. Aborts the current ingestion invocation.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrStoreUnavailable marks a transport failure talking to the feed
	// engine.
	ErrStoreUnavailable = errors.New("feed store unavailable")

	// ErrInvalidFeedKey marks a malformed feed key. Config or programmer
	// error, not retried.
	ErrInvalidFeedKey = errors.New("invalid feed key")

	// ErrRegistrationIncomplete marks a registration whose follow edges were
	// not all established. Retrying is safe: every registration step is
	// idempotent.
	ErrRegistrationIncomplete = errors.New("registration incomplete")
)
