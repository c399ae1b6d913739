package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_NilContext(t *testing.T) {
	logger := FromContext(nil) //nolint:staticcheck // Testing nil guard intentionally
	assert.NotNil(t, logger)
	assert.Equal(t, defaultLogger, logger)
}

func TestFromContext_NoLogger(t *testing.T) {
	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
	assert.Equal(t, defaultLogger, logger)
}

func TestWithContext(t *testing.T) {
	customLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithContext(context.Background(), customLogger)
	assert.Equal(t, customLogger, FromContext(ctx))
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithContext(context.Background(), logger)
	ctx = WithRequestID(ctx, "req-123")

	FromContext(ctx).Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{
		Level:   "info",
		Format:  "json",
		Service: "quotecast",
		Version: "1.0.0",
	}

	logger := NewWithWriter(cfg, &buf)
	require.NotNil(t, logger)

	logger.Info("test message", slog.String("key", "value"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "quotecast", entry["service_name"])
	assert.Equal(t, "1.0.0", entry["service_version"])
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{
		Level:   "debug",
		Format:  "text",
		Service: "quotecast",
		Version: "1.0.0",
	}

	logger := NewWithWriter(cfg, &buf)
	logger.Debug("debug message")

	assert.Contains(t, buf.String(), "debug message")
}

func TestNewWithWriter_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{
		Level:   "info",
		Format:  "pretty",
		Service: "quotecast",
		Version: "1.0.0",
	}

	logger := NewWithWriter(cfg, &buf)
	logger.Info("pretty message")

	assert.Contains(t, buf.String(), "pretty message")
}

func TestNewWithWriter_WithFileSink(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")

	var buf bytes.Buffer
	cfg := &Config{
		Level:   "info",
		Format:  "json",
		Service: "quotecast",
		Version: "1.0.0",
		File: FileConfig{
			Enabled:   true,
			Path:      logFile,
			MaxSizeMB: 1,
		},
	}

	logger := NewWithWriter(cfg, &buf)
	logger.Info("test message to file")

	assert.Contains(t, buf.String(), "test message to file")

	require.FileExists(t, logFile)
	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "test message to file")
}

func TestRedaction_SecretsNeverLogged(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{
		Level:   "info",
		Format:  "json",
		Service: "quotecast",
		Version: "1.0.0",
	}

	logger := NewWithWriter(cfg, &buf)

	logger.Info("unlock attempt",
		slog.String("password", "basedfin"),
		slog.String("secret", "hunter22"),
		slog.String("authorization", "Bearer abc-token"),
	)

	output := buf.String()
	assert.NotContains(t, output, "basedfin")
	assert.NotContains(t, output, "hunter22")
	assert.NotContains(t, output, "abc-token")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "info", expected: slog.LevelInfo},
		{input: "warn", expected: slog.LevelWarn},
		{input: "warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "unknown", expected: slog.LevelInfo},
		{input: "", expected: slog.LevelInfo},
		{input: "DEBUG", expected: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run("level "+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestMultiHandler_FansOut(t *testing.T) {
	var first, second bytes.Buffer

	handler := NewMultiHandler(
		slog.NewJSONHandler(&first, nil),
		slog.NewTextHandler(&second, nil),
	)

	logger := slog.New(handler)
	logger.Info("fan out")

	assert.Contains(t, first.String(), "fan out")
	assert.Contains(t, second.String(), "fan out")
}

func TestMultiHandler_RespectsLevels(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer

	handler := NewMultiHandler(
		slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	logger := slog.New(handler)
	logger.Debug("only for debug sink")

	assert.Contains(t, debugBuf.String(), "only for debug sink")
	assert.Empty(t, errorBuf.String())
}
