// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

// Package logging provides centralized zerolog-based structured logging for Feedrank.
//
// # Quick Start
//
//	import "github.com/tomtom215/feedrank/internal/logging"
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Uint64("version", snap.Version).Msg("dataset snapshot loaded")
//	logging.Error().Err(err).Msg("dataset reload failed")
//
// # Configuration
//
// Environment variables, mapped through the config package:
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// The level can be changed at runtime with SetLevelString; cmd/server does
// this when the config file changes.
//
// # Component Loggers
//
//	logger := logging.WithComponent("dataset")
//	logger.Info().Msg("watching dataset files")
//
// # Context-Aware Logging
//
// Request and correlation IDs travel on the context. The request ID is set
// by the HTTP middleware; each snapshot reload gets a fresh correlation ID.
//
//	logging.Ctx(ctx).Info().Msg("serving feed")
//
// # slog Adapter
//
// Suture v4 reports supervisor events through slog. NewSlogLogger bridges
// those onto the global zerolog logger.
//
// # Audit Logging
//
// AuditLogger records control-plane actions (reload requests from HTTP or
// NATS, rate-limited clients). SanitizeError strips URL passwords and query
// strings so a PostgreSQL DSN or a signed download URL never reaches logs or
// API responses.
//
// # Testing
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
package logging
