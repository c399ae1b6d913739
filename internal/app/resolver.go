// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"

	"github.com/basedfin/quotecast/internal/domain"
	"github.com/basedfin/quotecast/internal/ports"
)

// Resolver decides which quote source is authoritative for a session.
// Precedence is strict and short-circuiting: the local store wins over the
// remote source, and the remote source wins over the built-in defaults.
// Local curation is therefore never silently overwritten by remote content.
type Resolver struct {
	store  ports.QuoteStore
	source ports.QuoteSource
	logger *slog.Logger
}

// ResolverConfig contains configuration for the resolver.
type ResolverConfig struct {
	Store  ports.QuoteStore
	Source ports.QuoteSource
	Logger *slog.Logger
}

// NewResolver creates a resolver with the provided dependencies.
// Panics if Store or Source is nil.
func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.Store == nil {
		panic("Resolver: Store is required")
	}

	if cfg.Source == nil {
		panic("Resolver: Source is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		store:  cfg.Store,
		source: cfg.Source,
		logger: logger,
	}
}

// Resolve returns the authoritative quote list, trying in order:
//
//  1. The local store. A non-empty stored list wins outright and no
//     network request is made.
//  2. The remote source. A usable remote list wins and is mirrored into
//     the store so subsequent sessions skip the network.
//  3. The built-in defaults. These are never persisted here: persistence
//     only happens on explicit mutation, so a later session with no
//     network falls through the same three steps again.
//
// If ctx is cancelled at a suspension point the partial result is
// discarded and the context error is returned.
func (r *Resolver) Resolve(ctx context.Context) (domain.QuoteList, error) {
	if list, ok := r.store.Load(ctx); ok {
		r.logger.InfoContext(ctx, "resolved quote list from store",
			slog.Int("count", len(list)),
		)

		return list, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if list, ok := r.source.Fetch(ctx); ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Mirror so the next session skips the network. The fetched list
		// stays authoritative for this session even if the write fails.
		if err := r.store.Save(ctx, list); err != nil {
			r.logger.WarnContext(ctx, "failed to mirror remote quote list",
				slog.Any("error", err),
			)
		}

		r.logger.InfoContext(ctx, "resolved quote list from remote source",
			slog.Int("count", len(list)),
		)

		return list, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "resolved quote list from built-in defaults")

	return domain.DefaultQuotes(), nil
}
