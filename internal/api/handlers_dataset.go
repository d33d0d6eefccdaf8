// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/feedrank/internal/dataset"
	"github.com/tomtom215/feedrank/internal/models"
	"github.com/tomtom215/feedrank/internal/recommend"
	"github.com/tomtom215/feedrank/internal/supervisor/services"
	"github.com/tomtom215/feedrank/internal/validation"
)

// maxReloadBody bounds the optional reload request body.
const maxReloadBody = 4 << 10

// DatasetStatusResponse is the body of GET /api/v1/dataset/status.
type DatasetStatusResponse struct {
	Dataset dataset.Status  `json:"dataset"`
	Cache   recommend.Stats `json:"cache"`
}

// DatasetStatus handles GET /api/v1/dataset/status. It always answers 200;
// whether a snapshot is loaded is part of the body.
func (h *Handler) DatasetStatus(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	start := time.Now()

	st := h.store.Status()
	meta := successMetadata(r, start)
	meta.SnapshotVersion = st.Version
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: DatasetStatusResponse{
			Dataset: st,
			Cache:   h.engine.Stats(),
		},
		Metadata: meta,
	})
}

// DatasetReload handles POST /api/v1/dataset/reload. The reload runs in the
// background; 202 means it was queued, 429 that it was throttled.
//
// Body (optional): {"reason": "..."}
func (h *Handler) DatasetReload(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	start := time.Now()

	var req validation.ReloadRequest
	body := http.MaxBytesReader(w, r.Body, maxReloadBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	if h.reloader == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeDatasetUnavailable, "reloads are not available", nil)
		return
	}
	err := h.reloader.RequestReload(services.TriggerAPI)
	h.audit.LogReloadRequested(services.TriggerAPI, r.RemoteAddr, r.UserAgent(), sanitizeLogValue(req.Reason), err)
	if err != nil {
		if errors.Is(err, services.ErrReloadThrottled) {
			respondError(w, http.StatusTooManyRequests, ErrCodeRateLimited, "reload requested too recently, try again later", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to queue reload", err)
		return
	}

	respondJSON(w, http.StatusAccepted, &models.APIResponse{
		Status: "success",
		Data: models.ReloadAccepted{
			Accepted: true,
			Trigger:  services.TriggerAPI,
			Reason:   req.Reason,
		},
		Metadata: successMetadata(r, start),
	})
}
