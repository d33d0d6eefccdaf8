// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// isRemotePath reports whether a dataset path is an http(s) URL.
func isRemotePath(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// validateDatasetURL validates a remote CSV location. Unlike a service base
// URL, a path and query string are expected.
func validateDatasetURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	return nil
}

// validateNATSURL validates that the NATS URL is properly formatted.
// Supports: nats://, tls://, and ws:// schemes with optional ports.
func validateNATSURL(rawURL string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	validSchemes := map[string]bool{"nats": true, "tls": true, "ws": true, "wss": true}
	if !validSchemes[parsedURL.Scheme] {
		return fmt.Errorf("scheme must be nats, tls, ws, or wss, got: %s", parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("host is required (e.g., localhost:4222, nats.example.com)")
	}

	return nil
}

// validatePostgresDSN accepts URL-form DSNs (postgres://) and keyword/value
// DSNs (host=... dbname=...), which pgx both understand.
func validatePostgresDSN(dsn string) error {
	if strings.Contains(dsn, "://") {
		parsedURL, err := url.Parse(dsn)
		if err != nil {
			return fmt.Errorf("failed to parse URL: %w", err)
		}
		if parsedURL.Scheme != "postgres" && parsedURL.Scheme != "postgresql" {
			return fmt.Errorf("scheme must be postgres or postgresql, got: %s", parsedURL.Scheme)
		}
		return nil
	}
	if !strings.Contains(dsn, "=") {
		return fmt.Errorf("expected a postgres:// URL or key=value pairs")
	}
	return nil
}
