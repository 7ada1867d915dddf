package handler

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleHandler_PrefixAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With("module", "chat", "component", "orchestrator")

	logger.Info("turn completed", "web_access", true)

	out := buf.String()
	assert.Contains(t, out, "[chat/orchestrator]")
	assert.Contains(t, out, "turn completed")
	assert.Contains(t, out, "web_access=true")
	assert.NotContains(t, out, "module=chat")
}

func TestConsoleHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConsoleHandler_Group(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, nil)).WithGroup("upstream")

	logger.Info("call", "status", 404)

	assert.Contains(t, buf.String(), "upstream.status=404")
}
