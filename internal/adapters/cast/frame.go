package cast

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/basedfin/quotecast/internal/adapters/clients"
)

// frameMessageType identifies a composer-open request on the frame bridge.
const frameMessageType = "OPEN_COMPOSER"

// FrameMessenger posts a structured composer-open message to the embedding
// frame bridge. Delivery is fire-and-forget: the bridge does not confirm
// that anything listened, so a sent message counts as handled. Only a
// failure to send at all falls through.
type FrameMessenger struct {
	client *clients.Client
	path   string
	source string
	logger *slog.Logger
}

// FrameMessengerConfig contains configuration for the frame channel.
type FrameMessengerConfig struct {
	// Client is the HTTP client pointed at the frame bridge.
	Client *clients.Client

	// Path is the bridge message endpoint path.
	Path string

	// Source is the message source identifier receivers filter on.
	Source string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// NewFrameMessenger creates the frame bridge channel.
// Panics if Client is nil.
func NewFrameMessenger(cfg FrameMessengerConfig) *FrameMessenger {
	if cfg.Client == nil {
		panic("FrameMessenger: Client is required")
	}

	path := cfg.Path
	if path == "" {
		path = "/bridge/message"
	}

	source := cfg.Source
	if source == "" {
		source = "quotecast"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &FrameMessenger{
		client: cfg.Client,
		path:   path,
		source: source,
		logger: logger,
	}
}

// Name implements ports.CastChannel.
func (f *FrameMessenger) Name() string {
	return "frame-message"
}

// TryDispatch sends the composer-open message to the bridge.
func (f *FrameMessenger) TryDispatch(ctx context.Context, text string) (bool, string) {
	payload, err := json.Marshal(frameMessage{
		Source: f.source,
		Type:   frameMessageType,
		Text:   text,
	})
	if err != nil {
		f.logger.WarnContext(ctx, "frame message encoding failed", slog.Any("error", err))

		return false, ""
	}

	resp, err := f.client.Post(ctx, f.path, bytes.NewReader(payload))
	if err != nil {
		f.logger.DebugContext(ctx, "frame bridge unreachable, falling through",
			slog.Any("error", err),
		)

		return false, ""
	}
	defer func() { _ = resp.Body.Close() }()

	f.logger.InfoContext(ctx, "cast message sent to frame bridge",
		slog.Int("status", resp.StatusCode),
	)

	return true, "sent to composer"
}

type frameMessage struct {
	Source string `json:"source"`
	Type   string `json:"type"`
	Text   string `json:"text"`
}
