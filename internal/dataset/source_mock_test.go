// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

import (
	"context"
	"sync"
)

// mockSource serves fixed tables and can be told to fail.
type mockSource struct {
	mu     sync.Mutex
	tables Tables
	err    error
	loads  int
	closed bool
}

func newMockSource(tables Tables) *mockSource {
	return &mockSource{tables: tables}
}

func (m *mockSource) Load(_ context.Context, table string) (*Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	switch table {
	case TablePosts:
		return m.tables.Posts, nil
	case TableInterests:
		return m.tables.Interests, nil
	case TableLikes:
		return m.tables.Likes, nil
	}
	return nil, loadErrorf("unknown table %s", table)
}

func (m *mockSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockSource) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *mockSource) setTables(tables Tables) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = tables
}

func (m *mockSource) loadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}
