package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platefeed/platefeed/internal/api"
	"github.com/platefeed/platefeed/internal/config"
	"github.com/platefeed/platefeed/internal/env"
	"github.com/platefeed/platefeed/internal/http"
	"github.com/platefeed/platefeed/internal/log"
	"github.com/platefeed/platefeed/internal/setup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	const setupTime = 30 * time.Second
	setupCtx, cancel := context.WithTimeout(ctx, setupTime)
	defer cancel()

	logger := log.New(nil)

	httpConfig := http.DefaultConfig()
	httpClient := http.New(httpConfig)

	conf, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	fs, err := setup.FileStore(conf)
	if err != nil {
		logger.Error("failed to setup file store", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := setup.Database(setupCtx, conf)
	if err != nil {
		logger.Error("failed to setup database", slog.Any("error", err))
		os.Exit(1)
	}

	tokens, err := setup.TokenStore(setupCtx, conf)
	if err != nil {
		logger.Error("failed to setup token store", slog.Any("error", err))
		os.Exit(1)
	}

	env := &env.Env{
		Logger:    logger,
		FileStore: fs,
		Database:  db,
		Tokens:    tokens,
		SMTP:      setup.SMTP(conf),
		Config:    conf,
	}

	logger.DebugContext(ctx, "setting up admin")
	if err := setup.Admin(setupCtx, env); err != nil {
		logger.Error("failed to setup admin", slog.Any("error", err))
		os.Exit(1)
	}

	logger.DebugContext(ctx, "seeding catalogs")
	if err := setup.Catalog(setupCtx, env, httpClient); err != nil {
		logger.Error("failed to seed catalogs", slog.Any("error", err))
		os.Exit(1)
	}

	if err := api.Start(env); err != nil {
		env.Logger.Error("API Failed", slog.Any("error", err))
		os.Exit(1)
	}
}
