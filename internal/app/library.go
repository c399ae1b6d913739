package app

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/basedfin/quotecast/internal/domain"
	"github.com/basedfin/quotecast/internal/ports"
)

// Library owns the in-memory quote list for the running session and
// mirrors every mutation into the store. The in-memory list stays
// authoritative even when a write fails; the accepted risk is that such
// edits do not survive a restart.
type Library struct {
	mu     sync.RWMutex
	quotes domain.QuoteList
	store  ports.QuoteStore
	logger *slog.Logger
}

// LibraryConfig contains configuration for the library.
type LibraryConfig struct {
	Store  ports.QuoteStore
	Logger *slog.Logger
}

// NewLibrary creates an empty library. Seed it with the resolver's result
// before serving quotes. Panics if Store is nil.
func NewLibrary(cfg LibraryConfig) *Library {
	if cfg.Store == nil {
		panic("Library: Store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Library{
		store:  cfg.Store,
		logger: logger,
	}
}

// Seed replaces the working list without persisting. Used once at startup
// with the resolver's result.
func (l *Library) Seed(list domain.QuoteList) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.quotes = list.Clone()
}

// Quotes returns a copy of the current working list.
func (l *Library) Quotes() domain.QuoteList {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.quotes.Clone()
}

// Count returns the number of quotes in the working list.
func (l *Library) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.quotes)
}

// Add trims text and prepends it to the list, then persists.
// Empty text after trimming is rejected with no mutation.
func (l *Library) Add(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.NewValidationError("text", "quote text must not be empty")
	}

	l.mu.Lock()
	l.quotes = append(domain.QuoteList{domain.Quote(trimmed)}, l.quotes...)
	snapshot := l.quotes.Clone()
	l.mu.Unlock()

	l.persist(ctx, snapshot)

	return nil
}

// Delete removes the quote at index, then persists.
func (l *Library) Delete(ctx context.Context, index int) error {
	l.mu.Lock()

	if index < 0 || index >= len(l.quotes) {
		l.mu.Unlock()
		return domain.NewNotFoundError("quote", index)
	}

	l.quotes = slices.Delete(l.quotes.Clone(), index, index+1)
	snapshot := l.quotes.Clone()
	l.mu.Unlock()

	l.persist(ctx, snapshot)

	return nil
}

// Reset overwrites the list with the built-in defaults, then persists.
// After a reset the defaults count as local curation: they take precedence
// over remote content on the next resolve.
func (l *Library) Reset(ctx context.Context) error {
	l.mu.Lock()
	l.quotes = domain.DefaultQuotes()
	snapshot := l.quotes.Clone()
	l.mu.Unlock()

	l.persist(ctx, snapshot)

	return nil
}

// persist mirrors the list to the store, fail-soft. Write failures are
// logged and swallowed per the persistence contract.
func (l *Library) persist(ctx context.Context, list domain.QuoteList) {
	if err := l.store.Save(ctx, list); err != nil {
		l.logger.WarnContext(ctx, "quote list not persisted, in-memory state remains authoritative",
			slog.Any("error", err),
		)
	}
}
