package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"traductor/backend/internal/logger"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		require.Equal(t, want, logger.ParseLevel(in), "level %q", in)
	}
}

func TestNew_JSONLowercasesLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, slog.LevelDebug, logger.FormatJSON)

	log.Warn("translation failed", "module", "service")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "warn", line["level"])
	require.Equal(t, "translation failed", line["msg"])
	require.Equal(t, "service", line["module"])
}

func TestNew_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, slog.LevelWarn, "text")

	log.Info("hidden")
	require.Empty(t, buf.String())

	log.Error("shown")
	require.Contains(t, buf.String(), "level=error")
	require.Contains(t, buf.String(), "msg=shown")
}
