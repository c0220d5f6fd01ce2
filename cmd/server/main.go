package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zorgnet/care-access/internal/api"
	"github.com/zorgnet/care-access/internal/infrastructure/config"
	"github.com/zorgnet/care-access/internal/infrastructure/db/sqlite"
	"github.com/zorgnet/care-access/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	db, err := sqlite.Connect(ctx, sqlite.Config{Path: cfg.SQLite.Path})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open directory store")
	}
	defer db.Close()

	if err := sqlite.Bootstrap(ctx, db, cfg.SQLite.Seed, log); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap directory store")
	}

	e := api.NewRouter(db, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Bool("demo_mode", cfg.DemoMode).Msg("care-access api started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
