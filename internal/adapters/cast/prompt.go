package cast

import (
	"context"
	"fmt"
	"log/slog"
)

// ManualPrompt is the terminal channel: it surfaces the text itself so the
// user can copy it by hand. It always handles the cast, which is what makes
// dispatch as a whole infallible.
type ManualPrompt struct {
	logger *slog.Logger
}

// NewManualPrompt creates the manual prompt channel.
func NewManualPrompt(logger *slog.Logger) *ManualPrompt {
	if logger == nil {
		logger = slog.Default()
	}

	return &ManualPrompt{logger: logger}
}

// Name implements ports.CastChannel.
func (m *ManualPrompt) Name() string {
	return "manual-prompt"
}

// TryDispatch always succeeds.
func (m *ManualPrompt) TryDispatch(ctx context.Context, text string) (bool, string) {
	m.logger.InfoContext(ctx, "cast fell through to manual prompt")

	return true, fmt.Sprintf("copy your cast manually: %s", text)
}
