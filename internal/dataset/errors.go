// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad is returned when a table is absent, unreadable or malformed.
	ErrLoad = errors.New("dataset load failed")

	// ErrTimestampParse is returned when a timestamp cell cannot be parsed.
	ErrTimestampParse = errors.New("timestamp parse failed")
)

// CellError describes the offending cell of a failed parse.
type CellError struct {
	Table  string
	Column string
	Row    int // 1-based data row, header excluded
	Value  string
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%s.%s row %d: cannot parse %q: %v", e.Table, e.Column, e.Row, e.Value, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// loadErrorf wraps a formatted message around ErrLoad.
func loadErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrLoad, fmt.Sprintf(format, args...))
}
