package acl

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basedfin/quotecast/internal/adapters/clients"
	"github.com/basedfin/quotecast/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *QuoteListClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := clients.New(&clients.Config{
		BaseURL:     srv.URL,
		ServiceName: "quote-source",
		Timeout:     2 * time.Second,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return NewQuoteListClient(QuoteListClientConfig{
		Client: client,
		Path:   "/quotes.json",
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestQuoteListClient_FetchSuccess(t *testing.T) {
	var gotCacheControl, gotPragma string

	source := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCacheControl = r.Header.Get("Cache-Control")
		gotPragma = r.Header.Get("Pragma")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["first quote", "second quote"]`))
	}))

	list, ok := source.Fetch(context.Background())
	require.True(t, ok)
	assert.Equal(t, domain.QuoteList{"first quote", "second quote"}, list)

	assert.Equal(t, "no-cache", gotCacheControl, "fetch must bypass intermediate caches")
	assert.Equal(t, "no-cache", gotPragma)
}

func TestQuoteListClient_FetchAbsentOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>maintenance</html>"))
			},
		},
		{
			name: "wrong shape",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"quotes": ["nested"]}`))
			},
		},
		{
			name: "empty array",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
		},
		{
			name: "blank entry",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`["ok", "   "]`))
			},
		},
		{
			name: "mixed types",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`["ok", 42]`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := newTestClient(t, tt.handler)

			list, ok := source.Fetch(context.Background())
			assert.False(t, ok, "every failure mode must collapse into absent")
			assert.Nil(t, list)
		})
	}
}

func TestQuoteListClient_FetchUnreachableHost(t *testing.T) {
	client, err := clients.New(&clients.Config{
		BaseURL:     "http://127.0.0.1:1",
		ServiceName: "quote-source",
		Timeout:     500 * time.Millisecond,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	source := NewQuoteListClient(QuoteListClientConfig{Client: client})

	list, ok := source.Fetch(context.Background())
	assert.False(t, ok)
	assert.Nil(t, list)
}

func TestQuoteListClient_SingleAttempt(t *testing.T) {
	var calls int

	source := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, ok := source.Fetch(context.Background())
	assert.False(t, ok)
	assert.Equal(t, 1, calls, "fetch is a single best-effort attempt")
}

func TestQuoteListClient_HealthCheck(t *testing.T) {
	source := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`["q"]`))
	}))

	assert.Equal(t, "quote-source", source.Name())
	assert.NoError(t, source.Check(context.Background()))
}

func TestQuoteListClient_RequiresClient(t *testing.T) {
	assert.Panics(t, func() {
		NewQuoteListClient(QuoteListClientConfig{})
	})
}
