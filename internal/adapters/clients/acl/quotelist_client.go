// Package acl implements the Anti-Corruption Layer pattern for external
// services: adapters here translate between external payloads and domain
// types so the domain never sees a foreign shape.
package acl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/basedfin/quotecast/internal/adapters/clients"
	"github.com/basedfin/quotecast/internal/domain"
)

// QuoteListClient implements ports.QuoteSource against the fixed remote
// quote list location.
//
// The fetch is a single best-effort attempt, always fresh (intermediate
// caches are bypassed). A result is accepted only when the transport
// succeeded, the status was 2xx, and the body decoded to a non-empty JSON
// array of non-empty strings. Every violation collapses into the same
// "absent" outcome; callers cannot tell a dead network from a malformed
// payload, and that merging is deliberate. The concrete cause is logged
// at debug level for operators only.
type QuoteListClient struct {
	client *clients.Client
	path   string
	logger *slog.Logger
}

// QuoteListClientConfig contains configuration for the quote list client.
type QuoteListClientConfig struct {
	// Client is the HTTP client to use; its BaseURL must point at the
	// quote list host.
	Client *clients.Client

	// Path is the request path of the quote list document.
	Path string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// NewQuoteListClient creates a new quote list source adapter.
// Panics if Client is nil.
func NewQuoteListClient(cfg QuoteListClientConfig) *QuoteListClient {
	if cfg.Client == nil {
		panic("QuoteListClient: Client is required")
	}

	path := cfg.Path
	if path == "" {
		path = "/quotes.json"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteListClient{
		client: cfg.Client,
		path:   path,
		logger: logger,
	}
}

// Fetch retrieves the remote quote list.
// Implements ports.QuoteSource.
func (c *QuoteListClient) Fetch(ctx context.Context) (domain.QuoteList, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.client.BuildURL(c.path), http.NoBody)
	if err != nil {
		c.logger.DebugContext(ctx, "quote source request construction failed",
			slog.Any("error", err),
		)

		return nil, false
	}

	// Always fetch fresh.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		c.logger.DebugContext(ctx, "quote source unreachable",
			slog.Any("error", err),
		)

		return nil, false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.DebugContext(ctx, "quote source returned non-success status",
			slog.Int("status", resp.StatusCode),
		)

		return nil, false
	}

	return c.decodeList(ctx, resp.Body)
}

// decodeList translates the external payload to a domain QuoteList,
// rejecting anything that is not a non-empty array of usable strings.
func (c *QuoteListClient) decodeList(ctx context.Context, body io.Reader) (domain.QuoteList, bool) {
	var raw []string

	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		c.logger.DebugContext(ctx, "quote source payload malformed",
			slog.Any("error", err),
		)

		return nil, false
	}

	list := domain.QuoteListFromStrings(raw)
	if !list.Valid() {
		c.logger.DebugContext(ctx, "quote source payload unusable",
			slog.Int("count", len(list)),
		)

		return nil, false
	}

	return list, true
}

// Name returns the health check name for this source.
// Implements ports.HealthChecker.
func (c *QuoteListClient) Name() string {
	return "quote-source"
}

// Check reports the circuit state without touching the network; the
// source is best-effort, so readiness only degrades once the breaker has
// given up on it.
// Implements ports.HealthChecker.
func (c *QuoteListClient) Check(_ context.Context) error {
	if c.client.CircuitState() == clients.StateOpen {
		return domain.NewUnavailableError("quote-source", "circuit open")
	}

	return nil
}
