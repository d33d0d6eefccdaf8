// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/feedrank/internal/config"
	"github.com/tomtom215/feedrank/internal/dataset"
	"github.com/tomtom215/feedrank/internal/logging"
)

// tableCount is the number of tables read per reload.
const tableCount = 3

// buildSource opens the configured dataset source.
func buildSource(ctx context.Context, cfg *config.Config) (dataset.Source, error) {
	switch cfg.Data.Source {
	case config.SourcePostgres:
		src, err := dataset.NewSQLSource(ctx, "pgx", cfg.Data.DatabaseURL, cfg.Data.Tables)
		if err != nil {
			return nil, err
		}
		logging.Info().
			Str("posts", cfg.Data.Tables.Posts).
			Str("interests", cfg.Data.Tables.Interests).
			Str("likes", cfg.Data.Tables.Likes).
			Msg("Dataset source: PostgreSQL")
		return src, nil

	case config.SourceCSV, "":
		opts := []dataset.DuckDBOption{dataset.WithQueryTimeout(cfg.Data.QueryTimeout)}
		if cfg.Data.Paths.HasRemote() {
			fetcher, err := dataset.NewFetcher(cfg.Data.CacheDir, cfg.Data.RemoteTimeout)
			if err != nil {
				return nil, err
			}
			opts = append(opts, dataset.WithFetcher(fetcher))
		}
		src, err := dataset.NewDuckDBSource(cfg.Data.Paths, opts...)
		if err != nil {
			return nil, err
		}
		logging.Info().
			Str("posts", cfg.Data.Paths.Posts).
			Str("interests", cfg.Data.Paths.Interests).
			Str("likes", cfg.Data.Paths.Likes).
			Msg("Dataset source: CSV via DuckDB")
		return src, nil

	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}

// loadTimeout bounds one full reload: every table may need a download and
// a query. Zero leaves reloads unbounded.
func loadTimeout(cfg *config.Config) time.Duration {
	if cfg.Data.QueryTimeout <= 0 {
		return 0
	}
	per := cfg.Data.QueryTimeout
	if cfg.Data.Source != config.SourcePostgres && cfg.Data.Paths.HasRemote() {
		per += cfg.Data.RemoteTimeout
	}
	return tableCount * per
}
