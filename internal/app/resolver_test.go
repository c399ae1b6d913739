package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basedfin/quotecast/internal/domain"
)

func TestNewResolver_PanicsWithoutDeps(t *testing.T) {
	assert.Panics(t, func() {
		NewResolver(ResolverConfig{Source: &fakeSource{}, Logger: discardLogger()})
	})
	assert.Panics(t, func() {
		NewResolver(ResolverConfig{Store: &memStore{}, Logger: discardLogger()})
	})
}

func TestResolver_StoredListWins(t *testing.T) {
	stored := domain.QuoteList{"local one", "local two"}
	store := &memStore{list: stored, hasList: true}
	source := &fakeSource{list: domain.QuoteList{"remote"}, ok: true}

	r := NewResolver(ResolverConfig{Store: store, Source: source, Logger: discardLogger()})

	list, err := r.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, stored, list)
	assert.Zero(t, source.calls, "stored list must short-circuit the network")
	assert.Zero(t, store.saveCalls)
}

func TestResolver_RemoteAdoptedAndMirrored(t *testing.T) {
	remote := domain.QuoteList{"remote one", "remote two", "remote three"}
	store := &memStore{}
	source := &fakeSource{list: remote, ok: true}

	r := NewResolver(ResolverConfig{Store: store, Source: source, Logger: discardLogger()})

	list, err := r.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, remote, list)
	assert.Equal(t, 1, source.calls)

	mirrored, ok := store.Load(context.Background())
	require.True(t, ok, "remote list must be mirrored into the store")
	assert.Equal(t, remote, mirrored)
}

func TestResolver_DefaultsNotPersisted(t *testing.T) {
	store := &memStore{}
	source := &fakeSource{ok: false}

	r := NewResolver(ResolverConfig{Store: store, Source: source, Logger: discardLogger()})

	list, err := r.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultQuotes(), list)
	assert.Zero(t, store.saveCalls, "falling back to defaults must not adopt them as stored")

	// A second resolve with the network still down walks the same path.
	again, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultQuotes(), again)
	assert.Equal(t, 2, source.calls)
}

func TestResolver_MirrorFailureIsSwallowed(t *testing.T) {
	remote := domain.QuoteList{"remote"}
	store := &memStore{saveErr: errDiskFull}
	source := &fakeSource{list: remote, ok: true}

	r := NewResolver(ResolverConfig{Store: store, Source: source, Logger: discardLogger()})

	list, err := r.Resolve(context.Background())
	require.NoError(t, err, "persistence failure must not surface")
	assert.Equal(t, remote, list)
}

func TestResolver_CancelledDuringFetchDiscardsResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	store := &memStore{}
	source := &fakeSource{list: domain.QuoteList{"remote"}, ok: true}
	source.onFetch = cancel // teardown races the in-flight fetch

	r := NewResolver(ResolverConfig{Store: store, Source: source, Logger: discardLogger()})

	list, err := r.Resolve(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, list)
	assert.Zero(t, store.saveCalls, "discarded results must not be persisted")
}

func TestResolver_CancelledBeforeFetch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &memStore{}
	source := &fakeSource{list: domain.QuoteList{"remote"}, ok: true}

	r := NewResolver(ResolverConfig{Store: store, Source: source, Logger: discardLogger()})

	_, err := r.Resolve(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, source.calls)
}
