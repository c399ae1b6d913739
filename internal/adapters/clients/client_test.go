package clients

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

	"github.com/basedfin/quotecast/internal/platform/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Config{})
	assert.Error(t, err, "service name is required")
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/things", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := New(&Config{
		BaseURL:     srv.URL,
		ServiceName: "downstream",
		Timeout:     time.Second,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), "/things")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := New(&Config{
		BaseURL:     srv.URL,
		ServiceName: "downstream",
		Timeout:     time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
			Multiplier:      2.0,
		},
		Logger: discardLogger(),
	})
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), "/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, calls)
}

func TestClient_SingleAttemptDoesNotRetry(t *testing.T) {
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := New(&Config{
		BaseURL:     srv.URL,
		ServiceName: "downstream",
		Timeout:     time.Second,
		Retry:       config.RetryConfig{MaxAttempts: 1},
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), "/")
	require.NoError(t, err, "a 5xx on the final attempt is returned, not retried")
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestClient_CircuitOpensAndBlocks(t *testing.T) {
	client, err := New(&Config{
		BaseURL:     "http://127.0.0.1:1",
		ServiceName: "downstream",
		Timeout:     200 * time.Millisecond,
		Circuit: config.CircuitBreakerConfig{
			MaxFailures: 2,
			Timeout:     time.Minute,
		},
		Logger: discardLogger(),
	})
	require.NoError(t, err)

	ctx := context.Background()

	_, err = client.Get(ctx, "/")
	require.Error(t, err)
	_, err = client.Get(ctx, "/")
	require.Error(t, err)

	assert.Equal(t, StateOpen, client.CircuitState())

	_, err = client.Get(ctx, "/")
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestClient_BuildURL(t *testing.T) {
	client, err := New(&Config{
		BaseURL:     "http://example.test/",
		ServiceName: "downstream",
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, "http://example.test/a", client.BuildURL("/a"))
	assert.Equal(t, "http://example.test/a", client.BuildURL("a"))
}

func TestClient_CalculateBackoffBounded(t *testing.T) {
	client, err := New(&Config{
		ServiceName: "downstream",
		Retry: config.RetryConfig{
			MaxAttempts:     5,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     time.Second,
			Multiplier:      2.0,
		},
		Logger: discardLogger(),
	})
	require.NoError(t, err)

	for attempt := 1; attempt <= 10; attempt++ {
		backoff := client.calculateBackoff(attempt)
		assert.GreaterOrEqual(t, backoff, time.Duration(0))
		assert.LessOrEqual(t, backoff, 1250*time.Millisecond, "jitter must stay within 25%% of the cap")
	}
}
