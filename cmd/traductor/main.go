package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"traductor/backend/internal/app"
	"traductor/backend/internal/cli"
	"traductor/backend/internal/config"
	"traductor/backend/internal/logger"
	"traductor/backend/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCommand(load)
	if err := root.ExecuteContext(ctx); err != nil {
		var resultErr *service.ResultErr
		if !errors.As(err, &resultErr) {
			fmt.Fprintln(os.Stderr, "traductor:", err)
		}
		stop()
		os.Exit(1)
	}
}

func load() (*cli.Deps, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	// stdout carries the translation; logs go to stderr, warnings and up.
	level := logger.ParseLevel(cfg.LogLevel)
	if level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	logger.InitWithWriter(os.Stderr, level, cfg.LogFormat)

	a, err := app.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return &cli.Deps{Translation: a.Translation, Runs: a.Runs}, func() { _ = a.Close() }, nil
}
