// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/feedrank/internal/dataset"
	"github.com/tomtom215/feedrank/internal/metrics"
)

// Reload triggers, used as the "trigger" metric label.
const (
	TriggerStartup  = "startup"
	TriggerInterval = "interval"
	TriggerAPI      = "api"
	TriggerWatch    = "watch"
	TriggerNATS     = "nats"
)

// ErrReloadThrottled is returned by RequestReload when the request arrives
// faster than the configured reload rate.
var ErrReloadThrottled = errors.New("reload throttled")

// SnapshotReloader rebuilds the active dataset snapshot.
// Satisfied by *dataset.Store.
type SnapshotReloader interface {
	Reload(ctx context.Context) (*dataset.Snapshot, error)
}

// SnapshotServiceConfig controls when reloads happen.
type SnapshotServiceConfig struct {
	// RefreshInterval is the periodic reload cadence. Zero disables it.
	RefreshInterval time.Duration

	// ReloadInterval is the minimum spacing of accepted on-demand requests.
	// Zero disables throttling.
	ReloadInterval time.Duration

	// ReloadBurst is how many on-demand requests may arrive back to back.
	ReloadBurst int

	// LoadTimeout bounds a single reload. Zero means no bound beyond the
	// service context.
	LoadTimeout time.Duration
}

// SnapshotService keeps the dataset snapshot current. It loads once when
// started, then on every RefreshInterval tick and on request. Requests that
// arrive while a reload is pending are coalesced into it.
//
// A failed reload is logged and the previous snapshot keeps serving; the
// service itself does not fail, so suture never restarts it for a bad file.
type SnapshotService struct {
	store   SnapshotReloader
	config  SnapshotServiceConfig
	limiter *rate.Limiter
	pending chan string
	logger  zerolog.Logger
}

// NewSnapshotService creates the refresher.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSnapshotService(store SnapshotReloader, cfg SnapshotServiceConfig, logger zerolog.Logger) *SnapshotService {
	limit := rate.Inf
	if cfg.ReloadInterval > 0 {
		limit = rate.Every(cfg.ReloadInterval)
	}
	if cfg.ReloadBurst < 1 {
		cfg.ReloadBurst = 1
	}
	return &SnapshotService{
		store:   store,
		config:  cfg,
		limiter: rate.NewLimiter(limit, cfg.ReloadBurst),
		pending: make(chan string, 1),
		logger:  logger.With().Str("service", "snapshot").Logger(),
	}
}

// RequestReload asks for an immediate reload. It returns ErrReloadThrottled
// when the request exceeds the reload rate; otherwise the reload is queued
// and RequestReload returns without waiting for it.
func (s *SnapshotService) RequestReload(trigger string) error {
	if !s.limiter.Allow() {
		metrics.RecordReloadRequest(trigger, false)
		s.logger.Debug().Str("trigger", trigger).Msg("reload request throttled")
		return ErrReloadThrottled
	}
	metrics.RecordReloadRequest(trigger, true)
	s.enqueue(trigger)
	return nil
}

// Trigger queues a reload without rate limiting. The file watcher uses it,
// since its events are already debounced and dropping one would leave a
// stale snapshot.
func (s *SnapshotService) Trigger(trigger string) {
	metrics.RecordReloadRequest(trigger, true)
	s.enqueue(trigger)
}

func (s *SnapshotService) enqueue(trigger string) {
	select {
	case s.pending <- trigger:
	default:
		// A reload is already queued.
	}
}

// Serve implements suture.Service.
func (s *SnapshotService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("refresh_interval", s.config.RefreshInterval).
		Dur("reload_interval", s.config.ReloadInterval).
		Msg("snapshot service starting")

	s.reload(ctx, TriggerStartup)

	var tick <-chan time.Time
	if s.config.RefreshInterval > 0 {
		ticker := time.NewTicker(s.config.RefreshInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("snapshot service stopping")
			return ctx.Err()
		case <-tick:
			metrics.RecordReloadRequest(TriggerInterval, true)
			s.reload(ctx, TriggerInterval)
		case trigger := <-s.pending:
			s.reload(ctx, trigger)
		}
	}
}

func (s *SnapshotService) reload(ctx context.Context, trigger string) {
	if s.config.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.LoadTimeout)
		defer cancel()
	}
	snap, err := s.store.Reload(ctx)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			return
		}
		s.logger.Warn().Err(err).Str("trigger", trigger).Msg("snapshot reload failed, previous snapshot kept")
		return
	}
	s.logger.Debug().Str("trigger", trigger).Uint64("version", snap.Version).Msg("snapshot reloaded")
}

// String implements fmt.Stringer for suture's logs.
func (s *SnapshotService) String() string {
	return "snapshot-refresher"
}
