// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/feedrank/internal/dataset"
	"github.com/tomtom215/feedrank/internal/logging"
	"github.com/tomtom215/feedrank/internal/models"
	"github.com/tomtom215/feedrank/internal/recommend"
	"github.com/tomtom215/feedrank/internal/validation"
)

// Recommendations handles GET /api/v1/recommendations/user/{userID}.
//
// Query parameters:
//   - limit: number of posts to return, 1-100; 0 or absent means 100
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	start := time.Now()

	limit, apiErr := parseLimit(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	req := validation.RecommendRequest{
		UserID: chi.URLParam(r, "userID"),
		Limit:  limit,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	userID, err := validation.ParseUserID(req.UserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidUserID, err.Error(), nil)
		return
	}

	snap := h.store.Current()
	if snap == nil {
		h.respondUnavailable(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, snap, userID, req.Limit)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}

	meta := successMetadata(r, start)
	meta.Cached = resp.CacheHit
	meta.SnapshotVersion = resp.SnapshotVersion
	meta.Path = string(resp.Path)
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     resp,
		Metadata: meta,
	})
}

// Interests handles GET /api/v1/recommendations/user/{userID}/interests and
// returns the refined interest set the feed would be built from.
func (h *Handler) Interests(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	start := time.Now()

	req := validation.InterestsRequest{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	userID, err := validation.ParseUserID(req.UserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidUserID, err.Error(), nil)
		return
	}

	snap := h.store.Current()
	if snap == nil {
		h.respondUnavailable(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	interests, err := h.engine.Interests(ctx, snap, userID)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	if interests == nil {
		interests = recommend.InterestSet{}
	}

	meta := successMetadata(r, start)
	meta.SnapshotVersion = snap.Version
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.InterestsResponse{
			UserID:    userID,
			Interests: interests,
			Count:     len(interests),
		},
		Metadata: meta,
	})
}

// respondUnavailable reports that no snapshot is loaded, including why the
// last load failed when known.
func (h *Handler) respondUnavailable(w http.ResponseWriter) {
	message := "dataset not loaded"
	var details map[string]interface{}
	if err := h.store.LastError(); err != nil {
		lastErr := logging.SanitizeError(err.Error())
		message += ": " + lastErr
		details = map[string]interface{}{"last_error": lastErr}
	}
	respondAPIError(w, http.StatusServiceUnavailable, &models.APIError{
		Code:    ErrCodeDatasetUnavailable,
		Message: message,
		Details: details,
	}, nil)
}

func (h *Handler) respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrNoSnapshot):
		h.respondUnavailable(w)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, ErrCodeTimeout, "recommendation timed out", err)
	case errors.Is(err, context.Canceled):
		// Client went away; nobody is reading the response.
		respondError(w, http.StatusServiceUnavailable, ErrCodeTimeout, "request cancelled", nil)
	case errors.Is(err, dataset.ErrLoad):
		respondError(w, http.StatusServiceUnavailable, ErrCodeDatasetUnavailable, logging.SanitizeError(err.Error()), err)
	default:
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to build recommendations", err)
	}
}
