// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

/*
Package main is the entry point for the Mirador server.

Mirador learns a user's content preferences from like/dislike feedback
and ranks incoming items into a personalized feed and a scheduled
digest. The server runs under a Suture v4 supervision tree:

	RootSupervisor ("mirador")
	├── DataSupervisor ("data-layer")
	│   └── Badger value-log GC
	├── JobsSupervisor ("jobs-layer")
	│   └── Digest scheduler (cron, optional)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, YAML file, and MIRADOR_* env
 2. Logging: zerolog with JSON/console output modes
 3. Store: BadgerDB key-value storage for features, preferences,
    profiles, and event dedup markers
 4. Preference model, feedback processor, and scoring engine
 5. Digest builder and scheduler
 6. HTTP API: chi router with CORS, rate limiting, and Prometheus
    metrics
 7. Supervisor tree and signal-driven graceful shutdown

The server handles SIGINT and SIGTERM: it stops accepting connections,
drains in-flight requests within the shutdown timeout, and closes the
store last.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tovren/mirador/internal/api"
	"github.com/tovren/mirador/internal/config"
	"github.com/tovren/mirador/internal/digest"
	"github.com/tovren/mirador/internal/logging"
	"github.com/tovren/mirador/internal/prefs"
	"github.com/tovren/mirador/internal/store"
	"github.com/tovren/mirador/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("storage_path", cfg.Storage.Path).
		Str("user_id", cfg.Prefs.DefaultUserID).
		Bool("digest_enabled", cfg.Digest.Enabled).
		Msg("Starting Mirador")

	db, err := store.Open(store.Config{
		Path:           cfg.Storage.Path,
		GCDiscardRatio: cfg.Storage.GCDiscardRatio,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	pcfg := prefs.Config{
		LikeWeight:    cfg.Prefs.LikeWeight,
		DislikeWeight: cfg.Prefs.DislikeWeight,
		VectorWeight:  cfg.Prefs.VectorWeight,
		UserID:        cfg.Prefs.DefaultUserID,
		EventTTL:      cfg.Storage.EventTTL,
	}
	if err := pcfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("Invalid preference configuration")
	}

	model := prefs.NewModel(db)
	processor := prefs.NewProcessor(pcfg, model, db, db, db)
	engine := prefs.NewEngine(pcfg, model, db, db)
	builder := digest.NewBuilder(cfg.Digest.TopN, engine, db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(
		logging.NewSlogLogger(logging.WithComponent("supervisor")),
		supervisor.TreeConfig{ShutdownTimeout: cfg.Server.ShutdownTimeout},
	)

	tree.AddDataService(supervisor.NewGCService(db, cfg.Storage.GCInterval))

	if cfg.Digest.Enabled {
		scheduler, err := digest.NewScheduler(cfg.Digest.Schedule, builder, digest.NewLogDeliverer())
		if err != nil {
			logging.Fatal().Err(err).Msg("Invalid digest schedule")
		}
		tree.AddJobService(scheduler)
		logging.Info().Str("schedule", cfg.Digest.Schedule).Msg("Digest scheduler enabled")
	}

	apiCfg := api.Config{
		CORSOrigins:     cfg.API.CORSOrigins,
		RateLimitReqs:   cfg.API.RateLimitReqs,
		RateLimitWindow: cfg.API.RateLimitWindow,
		MaxBatchSize:    cfg.API.MaxBatchSize,
		MaxFeedItems:    cfg.API.MaxFeedItems,
	}
	handlers := api.NewHandlers(apiCfg, processor, engine, model, db, builder)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(apiCfg, handlers),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Mirador stopped gracefully")
}
