// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Methods represent business operations, not CRUD operations
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/basedfin/quotecast/internal/domain"
)

// QuoteStore is durable local persistence for the quote list and the
// admin secret. Implementations fail soft on reads: anything unusable
// (missing key, malformed payload, empty list) is reported as absent,
// never as an error. Write failures are returned so callers can decide
// whether to surface them; per the persistence contract they are logged
// and swallowed, leaving in-memory state authoritative for the session.
type QuoteStore interface {
	// Load returns the stored quote list. ok is false when nothing
	// usable is stored, which callers must treat identically to
	// "never set".
	Load(ctx context.Context) (list domain.QuoteList, ok bool)

	// Save persists the quote list, replacing any previous value.
	Save(ctx context.Context, list domain.QuoteList) error

	// LoadSecret returns the stored admin secret, or
	// domain.DefaultAdminSecret when none has been set.
	LoadSecret(ctx context.Context) string

	// SaveSecret persists a new admin secret.
	SaveSecret(ctx context.Context, secret string) error
}

// QuoteSource is a best-effort remote provider of a quote list.
// A single attempt, no retries: any transport failure, non-success
// status, or malformed/empty payload is reported as absent. Callers
// cannot and must not distinguish between those failure modes.
type QuoteSource interface {
	// Fetch retrieves the remote quote list. ok is false when nothing
	// usable was obtained.
	Fetch(ctx context.Context) (list domain.QuoteList, ok bool)
}

// CastChannel is one mechanism for delivering a quote to an external
// composer. Channels are tried in a fixed order by the dispatcher; a
// channel that cannot or did not handle the cast returns handled=false
// so the next channel is tried.
type CastChannel interface {
	// Name identifies the channel in dispatch results and logs.
	Name() string

	// TryDispatch attempts to deliver text through this channel.
	// notice carries a user-facing message (e.g. "copied to clipboard")
	// and may be empty when no user action is needed.
	TryDispatch(ctx context.Context, text string) (handled bool, notice string)
}
