// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

/*
Package api serves feedrank over HTTP with chi.

Every response uses the models.APIResponse envelope:

	{"status": "success", "data": {...}, "metadata": {"timestamp": ..., "query_time_ms": 3}}
	{"status": "error", "data": null, "error": {"code": "INVALID_USER_ID", "message": "..."}, "metadata": {...}}

Error codes:

	DATASET_UNAVAILABLE  503  no snapshot loaded (message carries the load error)
	INVALID_USER_ID      400  user ID is not a non-negative 64-bit integer
	VALIDATION_ERROR     400  bad limit or reload body
	TIMEOUT              504  request exceeded server.request_timeout
	RATE_LIMITED         429  per-IP limit or reload throttle exceeded
	INTERNAL_ERROR       500
	METHOD_NOT_ALLOWED   405
	NOT_FOUND            404

An empty feed is not an error: it is 200 with "count": 0.

The handlers depend on small interfaces (SnapshotStore, Recommender,
ReloadRequester) rather than concrete types so they can be tested with
hand-written fakes.
*/
package api
