package cast

import (
	"context"
	"log/slog"

	"github.com/atotto/clipboard"
)

// ClipboardWriter copies the quote to the system clipboard so the user can
// paste it into a composer themselves. Fails through on headless systems
// where no clipboard utility is available.
type ClipboardWriter struct {
	write  func(string) error
	logger *slog.Logger
}

// NewClipboardWriter creates the clipboard channel.
func NewClipboardWriter(logger *slog.Logger) *ClipboardWriter {
	if logger == nil {
		logger = slog.Default()
	}

	return &ClipboardWriter{
		write:  clipboard.WriteAll,
		logger: logger,
	}
}

// Name implements ports.CastChannel.
func (c *ClipboardWriter) Name() string {
	return "clipboard"
}

// TryDispatch writes the text to the clipboard.
func (c *ClipboardWriter) TryDispatch(ctx context.Context, text string) (bool, string) {
	if err := c.write(text); err != nil {
		c.logger.DebugContext(ctx, "clipboard unavailable, falling through",
			slog.Any("error", err),
		)

		return false, ""
	}

	c.logger.InfoContext(ctx, "cast text copied to clipboard")

	return true, "copied to clipboard, paste it into your composer"
}
