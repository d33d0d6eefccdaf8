// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package models

import (
	"time"
)

// APIResponse is the envelope of every HTTP response.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"user_id": 7, "interests": ["Music"], "recommendations": [...], "count": 12},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z", "query_time_ms": 3, "snapshot_version": 4}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "DATASET_UNAVAILABLE", "message": "no dataset snapshot loaded"},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
//
// Fields:
//   - Timestamp: server time when the response was generated
//   - QueryTimeMS: time spent computing the response
//   - Cached: the response came from the per-snapshot cache
//   - SnapshotVersion: version of the dataset snapshot that produced the data
//   - Path: personalized or viral_only, for feed responses
type Metadata struct {
	Timestamp       time.Time `json:"timestamp"`
	QueryTimeMS     int64     `json:"query_time_ms,omitempty"`
	Cached          bool      `json:"cached,omitempty"`
	SnapshotVersion uint64    `json:"snapshot_version,omitempty"`
	Path            string    `json:"path,omitempty"`
	RequestID       string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Error codes:
//   - DATASET_UNAVAILABLE: no snapshot has been loaded yet
//   - INVALID_USER_ID: the user path segment is not an integer
//   - VALIDATION_ERROR: invalid query parameters
//   - TIMEOUT: the request deadline passed
//   - RATE_LIMITED: too many requests or reloads
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
