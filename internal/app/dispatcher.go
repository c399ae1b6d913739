package app

import (
	"context"
	"log/slog"

	"github.com/basedfin/quotecast/internal/ports"
)

// CastResult reports how a cast was delivered.
type CastResult struct {
	// Channel is the name of the channel that handled the cast.
	Channel string `json:"channel"`

	// Notice is a user-facing message, set when the user must act
	// (e.g. paste from the clipboard or copy the text manually).
	Notice string `json:"notice,omitempty"`
}

// Dispatcher delivers a quote to an external composer through an ordered
// list of fallback channels. The first channel that handles the cast wins;
// the rest are never consulted. Dispatch itself never fails: the terminal
// manual-prompt channel accepts any text, so the worst case is a notice
// asking the user to copy the quote by hand.
type Dispatcher struct {
	channels []ports.CastChannel
	logger   *slog.Logger
}

// DispatcherConfig contains configuration for the dispatcher.
type DispatcherConfig struct {
	// Channels are tried in slice order. Order is a contract, not a hint.
	Channels []ports.CastChannel
	Logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given channels.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		channels: cfg.Channels,
		logger:   logger,
	}
}

// Dispatch delivers text through the first channel that handles it and
// reports which channel that was.
func (d *Dispatcher) Dispatch(ctx context.Context, text string) CastResult {
	for _, ch := range d.channels {
		handled, notice := ch.TryDispatch(ctx, text)
		if handled {
			d.logger.InfoContext(ctx, "cast dispatched",
				slog.String("channel", ch.Name()),
			)

			return CastResult{Channel: ch.Name(), Notice: notice}
		}

		d.logger.DebugContext(ctx, "cast channel did not handle, falling through",
			slog.String("channel", ch.Name()),
		)
	}

	// Reachable only with an empty channel list.
	d.logger.WarnContext(ctx, "no cast channel handled the quote")

	return CastResult{}
}
