// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

/*
Package middleware provides HTTP middleware shared by the API router.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: X-Request-ID propagation and logging context
  - AccessLog: one zerolog line per request, warn on slow, error on 5xx
  - PrometheusMetrics: request count, latency and in-flight gauge,
    labelled by chi route pattern
  - Compression: gzip for clients that accept it

Typical order:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger, time.Second))
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
