// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
)

// TableNames maps each logical table to a (possibly schema-qualified) SQL table.
type TableNames struct {
	Posts     string `koanf:"posts"`
	Interests string `koanf:"interests"`
	Likes     string `koanf:"likes"`
}

// DefaultTableNames matches the CSV file stems written by the generators.
func DefaultTableNames() TableNames {
	return TableNames{
		Posts:     "posts",
		Interests: "users_has_interests",
		Likes:     "posts_has_likes",
	}
}

// For returns the SQL table backing a logical table.
func (n TableNames) For(table string) string {
	switch table {
	case TablePosts:
		return n.Posts
	case TableInterests:
		return n.Interests
	case TableLikes:
		return n.Likes
	}
	return ""
}

// SQLSource reads tables with SELECT * through database/sql. It is used with
// the pgx driver for PostgreSQL-hosted datasets.
type SQLSource struct {
	db     *sql.DB
	tables TableNames
}

// NewSQLSource opens driver/dsn and verifies connectivity.
func NewSQLSource(ctx context.Context, driver, dsn string, tables TableNames) (*SQLSource, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	db.SetMaxOpenConns(3)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrLoad, driver, err)
	}
	return newSQLSourceFromDB(db, tables), nil
}

func newSQLSourceFromDB(db *sql.DB, tables TableNames) *SQLSource {
	return &SQLSource{db: db, tables: tables}
}

// Load reads every row of the table backing the logical table, in physical
// order. The datasets carry no ordering column, so insertion order stands in
// for CSV row order.
func (s *SQLSource) Load(ctx context.Context, table string) (*Table, error) {
	name := s.tables.For(table)
	if name == "" {
		return nil, loadErrorf("no SQL table configured for %s", table)
	}
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(name))
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrLoad, name, err)
	}
	defer rows.Close()
	return scanTable(rows, table)
}

// Close releases the connection pool.
func (s *SQLSource) Close() error {
	return s.db.Close()
}
