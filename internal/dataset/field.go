// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

// FieldState tells apart the three ways a record field can turn out.
type FieldState uint8

const (
	// Unresolvable means the table has no column for the field.
	Unresolvable FieldState = iota
	// Missing means the column exists but the cell is empty or NULL.
	Missing
	// Present means the cell held a parsed value.
	Present
)

// String returns the state name.
func (s FieldState) String() string {
	switch s {
	case Unresolvable:
		return "unresolvable"
	case Missing:
		return "missing"
	case Present:
		return "present"
	default:
		return "unknown"
	}
}

// Field is an optional record value together with how it was obtained.
type Field[T any] struct {
	State FieldState
	Value T
}

// Some returns a present field.
func Some[T any](v T) Field[T] {
	return Field[T]{State: Present, Value: v}
}

// Valid reports whether the field holds a value.
func (f Field[T]) Valid() bool {
	return f.State == Present
}

// Or returns the value when present and def otherwise.
func (f Field[T]) Or(def T) T {
	if f.State == Present {
		return f.Value
	}
	return def
}
