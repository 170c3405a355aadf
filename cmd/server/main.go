package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"traductor/backend/internal/app"
	"traductor/backend/internal/config"
	"traductor/backend/internal/handler"
	transport "traductor/backend/internal/http"
	"traductor/backend/internal/logger"
	"traductor/backend/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

// @title Traductor Gen-AI API
// @version 1.0
// @description Translate text with an LLM provider and record every call as a tracking run.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Init(logger.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("init app: %v", err)
	}
	defer a.Close()

	router := transport.NewRouter(
		handler.NewTranslateHandler(a.Translation),
		handler.NewHealthHandler(a.Health),
	)

	var sched *scheduler.Scheduler
	if cfg.HealthInterval > 0 {
		sched = scheduler.New(a.Health, cfg.HealthInterval)
		sched.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "module", "http", "action", "start", "resource", "http", "result", "ok", "addr", cfg.Addr)
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down", "module", "http", "action", "stop", "resource", "http", "result", "ok")
		if sched != nil {
			sched.Stop()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "module", "http", "action", "stop", "resource", "http", "result", "failed", "error", err)
		_ = a.Close()
		os.Exit(1)
	}
}
