// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Source reads one logical table (TablePosts, TableInterests, TableLikes).
type Source interface {
	Load(ctx context.Context, table string) (*Table, error)
	Close() error
}

// LoadTables reads all three tables from src. Any failure aborts the load.
func LoadTables(ctx context.Context, src Source) (Tables, error) {
	var out Tables
	for _, spec := range []struct {
		name string
		dst  **Table
	}{
		{TablePosts, &out.Posts},
		{TableInterests, &out.Interests},
		{TableLikes, &out.Likes},
	} {
		t, err := src.Load(ctx, spec.name)
		if err != nil {
			return Tables{}, fmt.Errorf("load %s: %w", spec.name, err)
		}
		*spec.dst = t
	}
	return out, nil
}

// scanTable drains rows into an all-string Table. Both DuckDB (with
// all_varchar) and pgx go through here; database/sql converts non-string
// driver values (ints, bools, time.Time as RFC3339Nano) into the string.
func scanTable(rows *sql.Rows, name string) (*Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: read columns of %s: %v", ErrLoad, name, err)
	}
	if len(cols) == 0 {
		return nil, loadErrorf("table %s has no columns", name)
	}

	t := &Table{Name: name, Columns: cols}
	cells := make([]sql.NullString, len(cols))
	dest := make([]interface{}, len(cols))
	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scan %s row %d: %v", ErrLoad, name, len(t.Rows)+1, err)
		}
		row := make([]string, len(cols))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrLoad, name, err)
	}
	return t, nil
}

// quoteLiteral renders s as a single-quoted SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteIdent renders a possibly schema-qualified identifier with each part
// double-quoted.
func quoteIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}
