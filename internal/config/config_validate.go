// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/feedrank/internal/validation"
)

// Validate checks that the configuration is complete and consistent.
// Struct tags are checked first, then the cross-field rules below.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %s", verr.Error())
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	if err := c.validateNATS(); err != nil {
		return err
	}

	return c.validateSecurity()
}

// validateServer validates HTTP server timeouts
func (c *Config) validateServer() error {
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.read_timeout and server.write_timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	return nil
}

// validateData validates the dataset source for the selected kind
func (c *Config) validateData() error {
	switch c.Data.Source {
	case SourceCSV:
		if err := c.validateDataPaths(); err != nil {
			return err
		}
	case SourcePostgres:
		if err := c.validateDataPostgres(); err != nil {
			return err
		}
	}

	if _, err := c.Data.LoadLocation(); err != nil {
		return err
	}
	if c.Data.RefreshInterval < 0 {
		return fmt.Errorf("data.refresh_interval must be >= 0 (0 disables periodic refresh)")
	}
	if c.Data.WatchDebounce < 0 {
		return fmt.Errorf("data.watch_debounce must be >= 0")
	}
	if c.Data.RemoteTimeout <= 0 {
		return fmt.Errorf("data.remote_timeout must be positive")
	}
	if c.Data.QueryTimeout <= 0 {
		return fmt.Errorf("data.query_timeout must be positive")
	}
	return c.validateBreaker()
}

// validateDataPaths requires all three CSV locations
func (c *Config) validateDataPaths() error {
	paths := []struct{ field, path string }{
		{"data.paths.posts (POSTS_PATH)", c.Data.Paths.Posts},
		{"data.paths.interests (INTERESTS_PATH)", c.Data.Paths.Interests},
		{"data.paths.likes (LIKES_PATH)", c.Data.Paths.Likes},
	}
	for _, entry := range paths {
		field, p := entry.field, entry.path
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%s is required when data.source=csv", field)
		}
		if isRemotePath(p) {
			if err := validateDatasetURL(p, field); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateDataPostgres requires a DSN and the three table names
func (c *Config) validateDataPostgres() error {
	if c.Data.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when data.source=postgres")
	}
	if err := validatePostgresDSN(c.Data.DatabaseURL); err != nil {
		return fmt.Errorf("DATABASE_URL is invalid: %w", err)
	}
	t := c.Data.Tables
	if t.Posts == "" || t.Interests == "" || t.Likes == "" {
		return fmt.Errorf("data.tables.posts, data.tables.interests and data.tables.likes are required when data.source=postgres")
	}
	return nil
}

// validateBreaker validates circuit breaker settings
func (c *Config) validateBreaker() error {
	if c.Data.Breaker.MaxFailures < 1 {
		return fmt.Errorf("data.breaker.max_failures must be at least 1")
	}
	if c.Data.Breaker.OpenTimeout <= 0 {
		return fmt.Errorf("data.breaker.open_timeout must be positive")
	}
	return nil
}

// validateNATS validates the subscription settings (only if enabled)
func (c *Config) validateNATS() error {
	if !c.NATS.Enabled {
		return nil
	}
	if err := validateNATSURL(c.NATS.URL); err != nil {
		return fmt.Errorf("NATS_URL is invalid: %w", err)
	}
	if strings.TrimSpace(c.NATS.Subject) == "" {
		return fmt.Errorf("NATS_SUBJECT is required when NATS_ENABLED=true")
	}
	if strings.ContainsAny(c.NATS.Subject, " \t") {
		return fmt.Errorf("NATS_SUBJECT must not contain whitespace")
	}
	return nil
}

// validateSecurity validates rate limiting settings
func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQS must be at least 1")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	if c.Security.ReloadInterval < 0 {
		return fmt.Errorf("RELOAD_INTERVAL must be >= 0")
	}
	if c.Security.ReloadBurst < 1 {
		return fmt.Errorf("RELOAD_BURST must be at least 1")
	}
	return nil
}
