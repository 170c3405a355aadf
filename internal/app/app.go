// Package app wires the translation stack from configuration. Both the
// server and the CLI build their dependencies through it.
package app

import (
	"database/sql"
	"errors"
	"fmt"

	"traductor/backend/internal/config"
	"traductor/backend/internal/db"
	"traductor/backend/internal/logger"
	"traductor/backend/internal/network"
	"traductor/backend/internal/repository"
	"traductor/backend/internal/service"
	"traductor/backend/internal/service/ai"
	"traductor/backend/internal/tracking"
)

// ErrRunsUnavailable is returned when runs are listed without the SQLite backend.
var ErrRunsUnavailable = errors.New("run listing requires the sqlite tracking backend")

// App holds the wired services.
type App struct {
	Config      config.Config
	Provider    ai.Provider
	Recorder    tracking.Recorder
	RateLimiter *ai.RateLimiter
	Translation service.TranslationService
	Health      service.HealthService

	runs repository.RunRepository
	db   *sql.DB
}

// New builds the provider, the tracking recorder and the services for cfg.
func New(cfg config.Config) (*App, error) {
	clients := network.NewClientFactory(cfg.ProxyURL)
	httpClient := clients.NewHTTPClient(cfg.HTTPTimeout)

	provider, err := ai.NewProvider(ai.Config{
		Provider: cfg.AIProvider,
		APIKey:   cfg.AIAPIKey,
		BaseURL:  cfg.AIBaseURL,
		Model:    cfg.AIModel,
	}, httpClient)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	a := &App{Config: cfg, Provider: provider}

	if cfg.TrackingBackend == tracking.BackendSQLite {
		a.db, err = db.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		a.runs = repository.NewRunRepository(a.db)
	}

	a.Recorder, err = tracking.NewRecorder(tracking.Config{
		Backend:     cfg.TrackingBackend,
		TrackingURI: cfg.TrackingURI,
		Experiment:  cfg.TrackingExperiment,
		Runs:        a.runs,
	}, httpClient)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("create recorder: %w", err)
	}

	a.RateLimiter = ai.NewRateLimiter(cfg.AIRateLimit)
	a.Translation = service.NewTranslationService(provider, a.Recorder, a.RateLimiter)
	a.Health = service.NewHealthService(a.Recorder)

	logger.Info("app initialized", "module", "app", "action", "init", "resource", "app", "result", "ok",
		"provider", provider.Name(), "model", provider.Model(),
		"tracking_backend", cfg.TrackingBackend, "proxy", clients.ProxyURL() != "")
	return a, nil
}

// Runs returns the local run store, or ErrRunsUnavailable for remote backends.
func (a *App) Runs() (repository.RunRepository, error) {
	if a.runs == nil {
		return nil, ErrRunsUnavailable
	}
	return a.runs, nil
}

// Close releases the database, if one was opened.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
