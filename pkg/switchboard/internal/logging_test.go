package internal

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseLevel(raw), "ParseLevel(%q)", raw)
	}
}

func TestSetRawLogLevel(t *testing.T) {
	defer SetLogLevel(slog.LevelInfo)

	SetRawLogLevel("debug")
	assert.True(t, GetLogger().Enabled(context.Background(), slog.LevelDebug))

	SetRawLogLevel("error")
	assert.False(t, GetLogger().Enabled(context.Background(), slog.LevelWarn))
}
