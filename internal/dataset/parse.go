// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order. They cover Python's str(datetime),
// ISO 8601 with and without offsets, and database/sql's RFC3339Nano rendering
// of timestamptz values.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses a timestamp cell. Values without an offset are
// interpreted in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format %q", s)
}

// ParseCount parses an integer counter. Integral floats ("12.0") are accepted
// because pandas writes integer columns containing NaN as floats.
func ParseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int64(f), nil
}

// ParseFlag parses 0/1 and true/false style booleans.
func ParseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1.0", "true", "t", "yes", "y":
		return true, nil
	case "0", "0.0", "false", "f", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

// cellReader turns cells of one table into typed fields, recording the
// first failure so row loops stay linear.
type cellReader struct {
	table *Table
	loc   *time.Location
	err   error
}

func (r *cellReader) fail(row int, col Column, value string, err error) {
	if r.err != nil {
		return
	}
	r.err = &CellError{Table: r.table.Name, Column: col.Name, Row: row + 1, Value: value, Err: err}
}

func (r *cellReader) text(row int, col Column) Field[string] {
	if !col.Resolved() {
		return Field[string]{}
	}
	v := r.table.Cell(row, col)
	if v == "" {
		return Field[string]{State: Missing}
	}
	return Some(v)
}

func (r *cellReader) count(row int, col Column) Field[int64] {
	if !col.Resolved() {
		return Field[int64]{}
	}
	v := r.table.Cell(row, col)
	if v == "" {
		return Field[int64]{State: Missing}
	}
	n, err := ParseCount(v)
	if err != nil {
		r.fail(row, col, v, fmt.Errorf("%w: %v", ErrLoad, err))
		return Field[int64]{State: Missing}
	}
	return Some(n)
}

func (r *cellReader) flag(row int, col Column) Field[bool] {
	if !col.Resolved() {
		return Field[bool]{}
	}
	v := r.table.Cell(row, col)
	if v == "" {
		return Field[bool]{State: Missing}
	}
	b, err := ParseFlag(v)
	if err != nil {
		r.fail(row, col, v, fmt.Errorf("%w: %v", ErrLoad, err))
		return Field[bool]{State: Missing}
	}
	return Some(b)
}

func (r *cellReader) timestamp(row int, col Column) Field[time.Time] {
	if !col.Resolved() {
		return Field[time.Time]{}
	}
	v := r.table.Cell(row, col)
	if v == "" {
		return Field[time.Time]{State: Missing}
	}
	ts, err := ParseTimestamp(v, r.loc)
	if err != nil {
		r.fail(row, col, v, fmt.Errorf("%w: %v", ErrTimestampParse, err))
		return Field[time.Time]{State: Missing}
	}
	return Some(ts)
}
