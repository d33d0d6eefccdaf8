// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver
)

// Paths maps each logical table to a CSV location (file path or http(s) URL).
type Paths struct {
	Posts     string `koanf:"posts"`
	Interests string `koanf:"interests"`
	Likes     string `koanf:"likes"`
}

// For returns the location configured for a logical table.
func (p Paths) For(table string) string {
	switch table {
	case TablePosts:
		return p.Posts
	case TableInterests:
		return p.Interests
	case TableLikes:
		return p.Likes
	}
	return ""
}

// DuckDBSource reads CSV files through an in-memory DuckDB instance. Every
// column is read as VARCHAR so parsing rules live in one place (parse.go)
// rather than in DuckDB's type sniffer.
type DuckDBSource struct {
	db      *sql.DB
	paths   Paths
	fetcher *Fetcher
	timeout time.Duration
}

// DuckDBOption configures a DuckDBSource.
type DuckDBOption func(*DuckDBSource)

// WithFetcher enables http(s) paths, downloaded before reading.
func WithFetcher(f *Fetcher) DuckDBOption {
	return func(s *DuckDBSource) { s.fetcher = f }
}

// WithQueryTimeout bounds each read_csv query. Zero disables the bound.
func WithQueryTimeout(d time.Duration) DuckDBOption {
	return func(s *DuckDBSource) { s.timeout = d }
}

// NewDuckDBSource opens an in-memory DuckDB database.
func NewDuckDBSource(paths Paths, opts ...DuckDBOption) (*DuckDBSource, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	// A single connection keeps the in-memory catalog consistent.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}

	s := &DuckDBSource{db: db, paths: paths}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load reads the CSV configured for table.
func (s *DuckDBSource) Load(ctx context.Context, table string) (*Table, error) {
	location := s.paths.For(table)
	if location == "" {
		return nil, loadErrorf("no path configured for table %s", table)
	}

	path, err := s.localPath(ctx, location)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, loadErrorf("%s: file does not exist", path)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", ErrLoad, path, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	query := fmt.Sprintf("SELECT * FROM read_csv(%s, header = true, all_varchar = true)", quoteLiteral(path))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: read_csv %s: %v", ErrLoad, path, err)
	}
	defer rows.Close()

	return scanTable(rows, table)
}

func (s *DuckDBSource) localPath(ctx context.Context, location string) (string, error) {
	if !isRemote(location) {
		return location, nil
	}
	if s.fetcher == nil {
		return "", loadErrorf("%s: remote paths require a fetcher", location)
	}
	return s.fetcher.Fetch(ctx, location)
}

// Close releases the DuckDB handle and the fetcher, if any.
func (s *DuckDBSource) Close() error {
	err := s.db.Close()
	if s.fetcher != nil {
		err = errors.Join(err, s.fetcher.Close())
	}
	return err
}

// HasRemote reports whether any table is located by an http(s) URL.
func (p Paths) HasRemote() bool {
	return isRemote(p.Posts) || isRemote(p.Interests) || isRemote(p.Likes)
}

func isRemote(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}
