// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/feedrank/internal/dataset"
	"github.com/tomtom215/feedrank/internal/logging"
	"github.com/tomtom215/feedrank/internal/recommend"
)

// Data source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in defaults from defaultConfig
//  2. Config File: optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment Variables: mapped names only, see envTransformFunc
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	store := dataset.NewStore(src, cfg.Data.Schema, logger)
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Logging   LoggingConfig    `koanf:"logging"`
	Data      DataConfig       `koanf:"data"`
	Recommend recommend.Config `koanf:"recommend"`
	NATS      NATSConfig       `koanf:"nats"`
	Security  SecurityConfig   `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`

	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	// RequestTimeout bounds a single recommendation request. Exceeding it
	// returns 504 TIMEOUT.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is json or console.
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// ToLogging converts to the logging package's config.
func (l LoggingConfig) ToLogging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	if l.Format != "" {
		cfg.Format = l.Format
	}
	cfg.Caller = l.Caller
	return cfg
}

// DataConfig describes where the three dataset tables come from and how
// often they are reloaded.
type DataConfig struct {
	// Source is csv (files or http(s) URLs read through DuckDB) or postgres.
	Source string `koanf:"source" validate:"oneof=csv postgres"`

	// Paths locates the CSV tables. Each entry may be a local path or an
	// http(s) URL.
	Paths dataset.Paths `koanf:"paths"`

	// DatabaseURL is the PostgreSQL DSN used when Source is postgres.
	DatabaseURL string `koanf:"database_url"`

	// Tables names the SQL tables used when Source is postgres.
	Tables dataset.TableNames `koanf:"tables"`

	// Schema overrides the column-name candidates per logical field.
	Schema dataset.Schema `koanf:"schema"`

	// Location is the IANA zone applied to timestamps without an offset.
	// Empty or "Local" means the process zone.
	Location string `koanf:"location"`

	// RefreshInterval is the periodic reload cadence. Zero disables
	// periodic reloads.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// Watch reloads when a local CSV file changes.
	Watch         bool          `koanf:"watch"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`

	// CacheDir receives downloaded remote CSV files.
	CacheDir      string        `koanf:"cache_dir"`
	RemoteTimeout time.Duration `koanf:"remote_timeout"`

	// QueryTimeout bounds one table load.
	QueryTimeout time.Duration `koanf:"query_timeout"`

	Breaker dataset.BreakerConfig `koanf:"breaker"`
}

// LoadLocation resolves Location.
func (d *DataConfig) LoadLocation() (*time.Location, error) {
	switch strings.TrimSpace(d.Location) {
	case "", "Local", "local":
		return time.Local, nil
	default:
		loc, err := time.LoadLocation(d.Location)
		if err != nil {
			return nil, fmt.Errorf("data.location %q: %w", d.Location, err)
		}
		return loc, nil
	}
}

// NATSConfig configures the optional dataset-updated subscription. A
// message on Subject requests a snapshot reload.
type NATSConfig struct {
	Enabled    bool          `koanf:"enabled"`
	URL        string        `koanf:"url"`
	Subject    string        `koanf:"subject"`
	QueueGroup string        `koanf:"queue_group"`
	Reconnect  time.Duration `koanf:"reconnect_wait"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	CORSOrigins []string `koanf:"cors_origins" validate:"dive,required"`

	// RateLimitReqs requests per RateLimitWindow per client IP.
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// ReloadInterval is the minimum spacing of accepted reload requests,
	// with ReloadBurst requests allowed back to back.
	ReloadInterval time.Duration `koanf:"reload_interval"`
	ReloadBurst    int           `koanf:"reload_burst"`
}

// HasWildcardCORS reports whether any origin is "*".
func (s *SecurityConfig) HasWildcardCORS() bool {
	for _, origin := range s.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// Load is the entry point used by cmd/server.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
