// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"resty.dev/v3"

	"github.com/tomtom215/feedrank/internal/metrics"
)

// Fetcher downloads remote CSV files into a local cache directory so DuckDB
// can read them like any other file.
type Fetcher struct {
	client *resty.Client
	dir    string
}

// NewFetcher creates a fetcher writing into dir (created if needed).
func NewFetcher(dir string, timeout time.Duration) (*Fetcher, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "feedrank-cache")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &Fetcher{client: client, dir: dir}, nil
}

// Fetch downloads url and returns the local path. The file is written
// atomically so a concurrent reader never sees a partial CSV.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	resp, err := f.client.R().WithContext(ctx).Get(url)
	if err != nil {
		metrics.RemoteFetchDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return "", fmt.Errorf("%w: download %s: %v", ErrLoad, url, err)
	}
	status := strconv.Itoa(resp.StatusCode())
	metrics.RemoteFetchDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	if resp.IsError() {
		return "", loadErrorf("download %s: HTTP %s", url, status)
	}

	target := filepath.Join(f.dir, cacheName(url))
	tmp, err := os.CreateTemp(f.dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", ErrLoad, err)
	}
	if _, err := tmp.WriteString(resp.String()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: write %s: %v", ErrLoad, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: close %s: %v", ErrLoad, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: rename download: %v", ErrLoad, err)
	}
	return target, nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	return f.client.Close()
}

// cacheName derives a stable file name from the URL, keeping the base name
// readable for operators.
func cacheName(url string) string {
	sum := sha256.Sum256([]byte(url))
	base := path.Base(url)
	if base == "" || base == "/" || base == "." {
		base = "table.csv"
	}
	return hex.EncodeToString(sum[:6]) + "-" + base
}
