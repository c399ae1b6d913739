// Package clients provides the outbound HTTP client used for remote
// quote-source fetches and cast-channel deliveries.
package clients

import "errors"

// Client errors represent failures in the HTTP client layer.
// These are infrastructure failures; callers translate them into their
// own contracts (the quote-source fetcher collapses all of them into a
// single "absent" outcome).
var (
	// ErrCircuitOpen is returned when the circuit breaker is open and
	// requests are being blocked.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrAttemptsExhausted is returned after every configured attempt
	// has failed. The last underlying error is wrapped for context.
	ErrAttemptsExhausted = errors.New("attempts exhausted")
)
