// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package recommend

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/feedrank/internal/cache"
	"github.com/tomtom215/feedrank/internal/dataset"
	"github.com/tomtom215/feedrank/internal/logging"
	"github.com/tomtom215/feedrank/internal/metrics"
)

// Engine produces ranked feeds from dataset snapshots. It holds no per-user
// state; everything a request reads comes from the snapshot it is handed,
// so it is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
	now    func() time.Time

	// Full (untruncated) responses keyed by snapshot ID and user.
	cache *cache.LRU[*Response]

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
}

// Stats is a point-in-time view of engine counters.
type Stats struct {
	Requests    int64 `json:"requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	CacheSize   int   `json:"cache_size"`
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		now:    time.Now,
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[*Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// WithClock replaces time.Now as the source of the request clock. It returns
// e for chaining and must be called before the engine is shared.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	if e.cache != nil {
		e.cache.WithClock(now)
	}
	return e
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend runs the full pipeline for userID. limit caps the number of
// recommendations; zero or anything above MaxResults means MaxResults.
//
// Dataset problems never surface here: load and parse failures happen when
// the snapshot is built. A nil snapshot returns ErrNoSnapshot.
func (e *Engine) Recommend(ctx context.Context, snap *dataset.Snapshot, userID int64, limit int) (*Response, error) {
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > e.config.Limits.MaxResults {
		limit = e.config.Limits.MaxResults
	}

	start := time.Now()
	e.requestCount.Add(1)
	logger := e.requestLogger(ctx, snap, userID)

	key := cacheKey(snap, userID)
	if resp, ok := e.lookup(key); ok {
		logger.Debug().Msg("cache hit")
		out := resp.Truncate(limit)
		out.CacheHit = true
		return out, nil
	}

	now := e.now()
	interests := e.RefineInterests(snap, userID, e.InferInterests(snap, userID), now)
	interestPool, matched := e.BuildInterestPool(snap, interests, now)
	viralPool := e.BuildViralPool(snap, now)
	ranked, path := e.Merge(snap, interests, interestPool, matched, viralPool)

	resp := e.Format(userID, interests, ranked)
	resp.Path = path
	resp.SnapshotVersion = snap.Version
	e.store(key, resp)

	duration := time.Since(start)
	metrics.RecordRecommendation(path == PathPersonalized, len(interestPool), len(viralPool), duration)

	logger.Debug().
		Strs("interests", interests).
		Int("matched", matched).
		Int("interest_pool", len(interestPool)).
		Int("viral_pool", len(viralPool)).
		Str("path", string(path)).
		Int("count", resp.Count).
		Dur("duration", duration).
		Msg("recommendation complete")

	return resp.Truncate(limit), nil
}

// Interests returns the refined InterestSet for userID without ranking posts.
func (e *Engine) Interests(ctx context.Context, snap *dataset.Snapshot, userID int64) (InterestSet, error) {
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.RefineInterests(snap, userID, e.InferInterests(snap, userID), e.now()), nil
}

// Invalidate drops every cached response. It is registered as a snapshot
// swap callback; keys also carry the snapshot ID, so stale entries can never
// be served even without it.
func (e *Engine) Invalidate() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// Stats returns engine counters.
func (e *Engine) Stats() Stats {
	st := Stats{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
	}
	if e.cache != nil {
		st.CacheSize = e.cache.Len()
	}
	return st
}

func (e *Engine) requestLogger(ctx context.Context, snap *dataset.Snapshot, userID int64) zerolog.Logger {
	lc := e.logger.With().
		Int64("user_id", userID).
		Uint64("snapshot_version", snap.Version)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	return lc.Logger()
}

func (e *Engine) lookup(key string) (*Response, bool) {
	if e.cache == nil {
		return nil, false
	}
	resp, ok := e.cache.Get(key)
	metrics.RecordCacheLookup(ok)
	if ok {
		e.cacheHits.Add(1)
	} else {
		e.cacheMisses.Add(1)
	}
	return resp, ok
}

func (e *Engine) store(key string, resp *Response) {
	if e.cache != nil {
		e.cache.Add(key, resp)
	}
}

func cacheKey(snap *dataset.Snapshot, userID int64) string {
	return snap.ID + ":" + strconv.FormatInt(userID, 10)
}
