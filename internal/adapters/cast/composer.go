// Package cast implements the outbound cast channels. Each channel is a
// ports.CastChannel; the dispatcher walks them in a fixed order and the
// first one that reports handled wins.
package cast

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/basedfin/quotecast/internal/adapters/clients"
)

// HostComposer opens the host platform's native post composer with the
// quote prefilled. It is the preferred channel and is only wired into the
// dispatcher when a composer endpoint is configured, so presence in the
// channel list already encodes capability.
type HostComposer struct {
	client *clients.Client
	path   string
	logger *slog.Logger
}

// HostComposerConfig contains configuration for the host composer channel.
type HostComposerConfig struct {
	// Client is the HTTP client pointed at the composer host.
	Client *clients.Client

	// Path is the composer endpoint path.
	Path string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// NewHostComposer creates the host composer channel.
// Panics if Client is nil.
func NewHostComposer(cfg HostComposerConfig) *HostComposer {
	if cfg.Client == nil {
		panic("HostComposer: Client is required")
	}

	path := cfg.Path
	if path == "" {
		path = "/composer/open"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &HostComposer{
		client: cfg.Client,
		path:   path,
		logger: logger,
	}
}

// Name implements ports.CastChannel.
func (h *HostComposer) Name() string {
	return "host-composer"
}

// TryDispatch hands the text to the host composer. The composer opening
// is an acknowledgement in itself, so any accepted delivery counts as
// handled; only a failure to reach the host falls through to the next
// channel.
func (h *HostComposer) TryDispatch(ctx context.Context, text string) (bool, string) {
	payload, err := json.Marshal(composerRequest{Text: text})
	if err != nil {
		h.logger.WarnContext(ctx, "composer payload encoding failed", slog.Any("error", err))

		return false, ""
	}

	resp, err := h.client.Post(ctx, h.path, bytes.NewReader(payload))
	if err != nil {
		h.logger.DebugContext(ctx, "host composer unreachable, falling through",
			slog.Any("error", err),
		)

		return false, ""
	}
	defer func() { _ = resp.Body.Close() }()

	h.logger.InfoContext(ctx, "cast handed to host composer",
		slog.Int("status", resp.StatusCode),
	)

	return true, "opened in composer"
}

type composerRequest struct {
	Text string `json:"text"`
}
