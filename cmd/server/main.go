// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/tomtom215/feedrank/internal/api"
	"github.com/tomtom215/feedrank/internal/config"
	"github.com/tomtom215/feedrank/internal/dataset"
	"github.com/tomtom215/feedrank/internal/logging"
	"github.com/tomtom215/feedrank/internal/recommend"
	"github.com/tomtom215/feedrank/internal/supervisor"
	"github.com/tomtom215/feedrank/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.ToLogging())
	logging.Info().Str("version", version).Msg("Starting Feedrank with supervisor tree")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loc, err := cfg.Data.LoadLocation()
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid data location")
	}

	src, err := buildSource(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open dataset source")
	}
	src = dataset.NewBreakerSource(src, cfg.Data.Breaker)

	store := dataset.NewStore(src, cfg.Data.Schema, logging.Logger(), dataset.WithLocation(loc))
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing dataset source")
		}
	}()

	engine, err := recommend.NewEngine(&cfg.Recommend, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid recommendation configuration")
	}
	// Feed caches are keyed per snapshot; drop them as soon as a new one lands.
	store.OnSwap(func(*dataset.Snapshot) { engine.Invalidate() })

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// === DATA LAYER ===

	refresher := services.NewSnapshotService(store, services.SnapshotServiceConfig{
		RefreshInterval: cfg.Data.RefreshInterval,
		ReloadInterval:  cfg.Security.ReloadInterval,
		ReloadBurst:     cfg.Security.ReloadBurst,
		LoadTimeout:     loadTimeout(cfg),
	}, logging.Logger())
	tree.AddDataService(refresher)

	if cfg.Data.Watch {
		watcher := dataset.NewWatcher(cfg.Data.Paths, cfg.Data.WatchDebounce, func(context.Context) {
			refresher.Trigger(services.TriggerWatch)
		}, logging.Logger())
		if watcher != nil {
			tree.AddDataService(watcher)
			logging.Info().Strs("files", watcher.Files()).Msg("Dataset file watcher added to supervisor tree")
		} else {
			logging.Warn().Msg("DATA_WATCH is set but no local dataset files are configured")
		}
	}

	// === MESSAGING LAYER ===

	initNotifier(cfg, refresher, tree)

	// === API LAYER ===

	handler := api.NewHandler(store, engine, refresher, cfg, version)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(cfg.Security), logging.Logger())

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (RATE_LIMIT_DISABLED=true)")
	}
	if cfg.Security.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*)")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))

	if path := config.ConfigFile(); path != "" {
		watchLogLevel(path)
	}

	// === START SUPERVISOR TREE ===

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// The tree returns once ctx is cancelled and every layer has stopped, or
	// earlier if the root supervisor itself gives up.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}
	cancel()

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Feedrank stopped")
}

// watchLogLevel applies log level changes from the config file without a
// restart. Other settings still need one.
func watchLogLevel(path string) {
	err := config.WatchConfigFile(path, func() {
		newCfg, err := config.LoadWithKoanf()
		if err != nil {
			logging.Warn().Err(err).Msg("Config reload failed")
			return
		}
		logging.SetLevelString(newCfg.Logging.Level)
		logging.Info().Str("level", newCfg.Logging.Level).Msg("Log level updated from config file")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watch unavailable")
	}
}
