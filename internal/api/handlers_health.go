// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/feedrank/internal/logging"
	"github.com/tomtom215/feedrank/internal/models"
)

// Health handles GET /api/v1/health. The status is "healthy" when a snapshot
// is serving and the last load succeeded, "degraded" when a refresh failed
// but an older snapshot is serving, and "unavailable" before any load.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	start := time.Now()

	health := models.HealthStatus{
		Status:  "unavailable",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}
	if err := h.store.LastError(); err != nil {
		health.LastError = logging.SanitizeError(err.Error())
	}
	if snap := h.store.Current(); snap != nil {
		loadedAt := snap.LoadedAt
		health.DatasetLoaded = true
		health.SnapshotVersion = snap.Version
		health.LoadedAt = &loadedAt
		health.Status = "healthy"
		if health.LastError != "" {
			health.Status = "degraded"
		}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: successMetadata(r, start),
	})
}

// HealthLive handles GET /api/v1/health/live. It answers 200 while the
// process is serving HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles GET /api/v1/health/ready: 200 once a snapshot is
// loaded, 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	snap := h.store.Current()
	ready := snap != nil

	statusCode := http.StatusOK
	status := "ready"
	data := map[string]interface{}{
		"dataset_loaded": ready,
		"uptime":         time.Since(h.startTime).Seconds(),
	}
	if ready {
		data["snapshot_version"] = snap.Version
	} else {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
		if err := h.store.LastError(); err != nil {
			data["last_error"] = logging.SanitizeError(err.Error())
		}
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status:   status,
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
