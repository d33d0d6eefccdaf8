// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package api

import (
	"context"
	"time"

	"github.com/tomtom215/feedrank/internal/config"
	"github.com/tomtom215/feedrank/internal/dataset"
	"github.com/tomtom215/feedrank/internal/logging"
	"github.com/tomtom215/feedrank/internal/recommend"
)

// DefaultRequestTimeout applies when the configuration leaves it unset.
const DefaultRequestTimeout = 10 * time.Second

// SnapshotStore exposes the active dataset snapshot. Satisfied by
// *dataset.Store.
type SnapshotStore interface {
	Current() *dataset.Snapshot
	Status() dataset.Status
	LastError() error
}

// Recommender ranks feeds. Satisfied by *recommend.Engine.
type Recommender interface {
	Recommend(ctx context.Context, snap *dataset.Snapshot, userID int64, limit int) (*recommend.Response, error)
	Interests(ctx context.Context, snap *dataset.Snapshot, userID int64) (recommend.InterestSet, error)
	Stats() recommend.Stats
}

// ReloadRequester queues snapshot reloads. Satisfied by
// *services.SnapshotService.
type ReloadRequester interface {
	RequestReload(trigger string) error
}

// Handler holds the dependencies of the HTTP handlers:
//   - handlers_recommend.go: feed and interest endpoints
//   - handlers_dataset.go: snapshot status and reload
//   - handlers_health.go: health, liveness and readiness
type Handler struct {
	store          SnapshotStore
	engine         Recommender
	reloader       ReloadRequester
	audit          *logging.AuditLogger
	requestTimeout time.Duration
	version        string
	startTime      time.Time
}

// NewHandler creates the API handler. reloader may be nil, in which case the
// reload endpoint reports the dataset as unavailable for reloads.
func NewHandler(store SnapshotStore, engine Recommender, reloader ReloadRequester, cfg *config.Config, version string) *Handler {
	timeout := DefaultRequestTimeout
	if cfg != nil && cfg.Server.RequestTimeout > 0 {
		timeout = cfg.Server.RequestTimeout
	}
	if version == "" {
		version = "dev"
	}
	return &Handler{
		store:          store,
		engine:         engine,
		reloader:       reloader,
		audit:          logging.NewAuditLogger(),
		requestTimeout: timeout,
		version:        version,
		startTime:      time.Now(),
	}
}
