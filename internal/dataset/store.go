// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/feedrank/internal/logging"
	"github.com/tomtom215/feedrank/internal/metrics"
)

// Store owns the active snapshot. Readers call Current, which is a single
// atomic load; Reload builds a new snapshot off to the side and swaps it in
// only on success, so a failed refresh keeps the previous data serving.
type Store struct {
	src    Source
	schema Schema
	loc    *time.Location
	logger zerolog.Logger
	now    func() time.Time

	current atomic.Pointer[Snapshot]
	version atomic.Uint64 // version of the last successful load

	reloadMu sync.Mutex // serializes Reload

	statusMu    sync.RWMutex
	lastAttempt time.Time
	lastErr     error
	onSwap      []func(*Snapshot)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLocation sets the zone for timestamps without an offset.
func WithLocation(loc *time.Location) StoreOption {
	return func(s *Store) { s.loc = loc }
}

// WithStoreClock overrides time.Now, for tests.
func WithStoreClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store that loads from src. No load happens until
// Reload is called.
//
//nolint:gocritic // hugeParam: schema is copied once at construction
func NewStore(src Source, schema Schema, logger zerolog.Logger, opts ...StoreOption) *Store {
	s := &Store{
		src:    src,
		schema: schema.WithDefaults(),
		loc:    time.Local,
		logger: logger.With().Str("component", "dataset").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnSwap registers a callback run after each successful swap. Callbacks run
// synchronously inside Reload and must not call Reload.
func (s *Store) OnSwap(fn func(*Snapshot)) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.onSwap = append(s.onSwap, fn)
}

// Current returns the active snapshot, or nil before the first successful load.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Reload loads all tables and swaps in a new snapshot.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	ctx = logging.ContextWithNewCorrelationID(ctx)
	logger := s.logger.With().Str("correlation_id", logging.CorrelationIDFromContext(ctx)).Logger()
	start := s.now()

	snap, err := s.build(ctx, start)
	duration := time.Since(start)
	metrics.RecordSnapshotLoad(duration, err)

	s.statusMu.Lock()
	s.lastAttempt = start
	s.lastErr = err
	callbacks := append([]func(*Snapshot){}, s.onSwap...)
	s.statusMu.Unlock()

	if err != nil {
		logger.Error().Err(err).Dur("duration", duration).Msg("dataset reload failed")
		return nil, err
	}

	s.version.Store(snap.Version)
	s.current.Store(snap)
	metrics.RecordActiveSnapshot(snap.Version, snap.LoadedAt, snap.Rows())
	for _, fn := range callbacks {
		fn(snap)
	}

	logger.Info().
		Uint64("version", snap.Version).
		Str("snapshot_id", snap.ID).
		Int("posts", len(snap.Posts)).
		Int("labels", len(snap.InterestRanking())).
		Dur("duration", duration).
		Msg("dataset snapshot loaded")
	return snap, nil
}

func (s *Store) build(ctx context.Context, loadedAt time.Time) (*Snapshot, error) {
	tables, err := LoadTables(ctx, s.src)
	if err != nil {
		return nil, err
	}
	return Build(tables, BuildOptions{
		Schema:   s.schema,
		Location: s.loc,
		Version:  s.version.Load() + 1,
		LoadedAt: loadedAt,
	})
}

// Status describes the active snapshot and the most recent load attempt.
type Status struct {
	Loaded      bool             `json:"loaded"`
	Version     uint64           `json:"version,omitempty"`
	SnapshotID  string           `json:"snapshot_id,omitempty"`
	LoadedAt    *time.Time       `json:"loaded_at,omitempty"`
	LastAttempt *time.Time       `json:"last_attempt,omitempty"`
	LastError   string           `json:"last_error,omitempty"`
	Rows        map[string]int   `json:"rows,omitempty"`
	Columns     *ResolvedColumns `json:"columns,omitempty"`
	Labels      []string         `json:"labels,omitempty"`
}

// ResolvedColumns reports which source column backs each logical field.
type ResolvedColumns struct {
	Posts     PostColumns     `json:"posts"`
	Interests InterestColumns `json:"interests"`
	Likes     LikeColumns     `json:"likes"`
}

// Status returns a point-in-time description of the store.
func (s *Store) Status() Status {
	s.statusMu.RLock()
	lastAttempt, lastErr := s.lastAttempt, s.lastErr
	s.statusMu.RUnlock()

	st := Status{}
	if !lastAttempt.IsZero() {
		st.LastAttempt = &lastAttempt
	}
	if lastErr != nil {
		st.LastError = logging.SanitizeError(lastErr.Error())
	}

	snap := s.Current()
	if snap == nil {
		return st
	}
	loadedAt := snap.LoadedAt
	st.Loaded = true
	st.Version = snap.Version
	st.SnapshotID = snap.ID
	st.LoadedAt = &loadedAt
	st.Rows = snap.Rows()
	st.Columns = &ResolvedColumns{
		Posts:     snap.PostColumns,
		Interests: snap.InterestColumns,
		Likes:     snap.LikeColumns,
	}
	st.Labels = append([]string(nil), snap.InterestRanking()...)
	return st
}

// LastError returns the error of the most recent load attempt, if any.
func (s *Store) LastError() error {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.lastErr
}

// Close closes the underlying source.
func (s *Store) Close() error {
	return s.src.Close()
}
