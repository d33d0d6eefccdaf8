// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package validation

// RecommendRequest is the validated form of a feed request. Limit 0 means
// the configured maximum.
type RecommendRequest struct {
	UserID string `validate:"userid"`
	Limit  int    `validate:"min=0,max=100"`
}

// InterestsRequest is the validated form of an interests-only request.
type InterestsRequest struct {
	UserID string `validate:"userid"`
}

// ReloadRequest is the optional body of a manual reload.
type ReloadRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=200"`
}
