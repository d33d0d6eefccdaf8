// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

// Package dataset loads the posts, user-interest and like-event tables and
// turns them into immutable, indexed snapshots for the ranking engine.
//
// # Loading
//
// A Source returns raw string tables. DuckDBSource reads CSV files through
// DuckDB's read_csv (optionally downloading http(s) paths first with a
// Fetcher); SQLSource reads tables from PostgreSQL through pgx. Sources can
// be wrapped in a BreakerSource so a persistently failing backend is not
// hammered by the refresh loop.
//
// # Schema tolerance
//
// The producing datasets evolve independently, so columns are located with
// Table.Resolve: the first column whose name contains a candidate name,
// case-insensitively, wins. Resolution happens once per table when a
// Snapshot is built; typed records carry Field values that distinguish an
// unresolvable column from an empty cell.
//
// # Errors
//
// ErrLoad covers absent, unreadable and malformed tables. ErrTimestampParse
// is returned when any non-empty cell of a timestamp column cannot be
// parsed; rows are never silently skipped.
package dataset

import "strings"

// Column locates a column inside a Table. Index is -1 when unresolved.
type Column struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

// Unresolved is the zero locator returned when no column matches.
var Unresolved = Column{Index: -1}

// Resolved reports whether the locator points at a real column.
func (c Column) Resolved() bool {
	return c.Index >= 0
}

// Table is a raw, all-string table as read from a Source. Empty cells and
// SQL NULLs are both stored as "".
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Resolve returns the first column whose name contains any candidate as a
// case-insensitive substring. Candidates are tried in priority order and,
// for each candidate, columns in their natural order. A miss is not an
// error; callers degrade the dependent feature instead.
func (t *Table) Resolve(candidates ...string) (Column, bool) {
	if t == nil {
		return Unresolved, false
	}
	lowered := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		lowered[i] = strings.ToLower(c)
	}
	for _, cand := range candidates {
		cand = strings.ToLower(strings.TrimSpace(cand))
		if cand == "" {
			continue
		}
		for i, col := range lowered {
			if strings.Contains(col, cand) {
				return Column{Name: t.Columns[i], Index: i}, true
			}
		}
	}
	return Unresolved, false
}

// Cell returns the trimmed value at (row, col), or "" when the column is
// unresolved or the row is short.
func (t *Table) Cell(row int, col Column) string {
	if !col.Resolved() || row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col.Index >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col.Index])
}
