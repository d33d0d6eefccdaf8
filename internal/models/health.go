// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package models

import "time"

// HealthStatus is returned by GET /api/v1/health.
type HealthStatus struct {
	Status          string     `json:"status"` // "healthy", "degraded" or "unavailable"
	Version         string     `json:"version"`
	DatasetLoaded   bool       `json:"dataset_loaded"`
	SnapshotVersion uint64     `json:"snapshot_version,omitempty"`
	LoadedAt        *time.Time `json:"loaded_at,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
	Uptime          float64    `json:"uptime_seconds"`
}

// ReloadAccepted is returned by POST /api/v1/dataset/reload.
type ReloadAccepted struct {
	Accepted bool   `json:"accepted"`
	Trigger  string `json:"trigger"`
	Reason   string `json:"reason,omitempty"`
}

// InterestsResponse is returned by the interests-only endpoint.
type InterestsResponse struct {
	UserID    int64    `json:"user_id"`
	Interests []string `json:"interests"`
	Count     int      `json:"count"`
}
