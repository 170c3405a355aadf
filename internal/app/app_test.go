package app_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"traductor/backend/internal/app"
	"traductor/backend/internal/config"
	"traductor/backend/internal/service/ai"
	"traductor/backend/internal/tracking"
)

func baseConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		AIProvider:         ai.ProviderCompatible,
		AIAPIKey:           "test-key",
		AIBaseURL:          config.DefaultGeminiOpenAI,
		AIModel:            config.DefaultModel,
		AIRateLimit:        5,
		TrackingBackend:    tracking.BackendMLflow,
		TrackingURI:        config.DefaultTrackingURI,
		TrackingExperiment: config.DefaultExperiment,
		DBPath:             filepath.Join(t.TempDir(), "tracking.db"),
		HTTPTimeout:        time.Second,
	}
}

func TestNew_MLflowBackend(t *testing.T) {
	a, err := app.New(baseConfig(t))
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, ai.ProviderCompatible, a.Provider.Name())
	require.Equal(t, config.DefaultModel, a.Provider.Model())
	require.IsType(t, &tracking.MLflowRecorder{}, a.Recorder)
	require.NotNil(t, a.Translation)
	require.NotNil(t, a.Health)

	_, err = a.Runs()
	require.ErrorIs(t, err, app.ErrRunsUnavailable)
}

func TestNew_SQLiteBackend(t *testing.T) {
	cfg := baseConfig(t)
	cfg.TrackingBackend = tracking.BackendSQLite

	a, err := app.New(cfg)
	require.NoError(t, err)
	defer a.Close()

	require.IsType(t, &tracking.SQLiteRecorder{}, a.Recorder)
	runs, err := a.Runs()
	require.NoError(t, err)
	require.NotNil(t, runs)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := baseConfig(t)
	cfg.AIProvider = "deepl"
	_, err := app.New(cfg)
	require.ErrorIs(t, err, ai.ErrInvalidProvider)

	cfg = baseConfig(t)
	cfg.TrackingBackend = "wandb"
	_, err = app.New(cfg)
	require.ErrorIs(t, err, tracking.ErrInvalidBackend)
}
