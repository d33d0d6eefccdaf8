// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/feedrank/internal/dataset"
	"github.com/tomtom215/feedrank/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/feedrank/config.yaml",
	"/etc/feedrank/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Data: DataConfig{
			Source: SourceCSV,
			Paths: dataset.Paths{
				Posts:     "data/posts.csv",
				Interests: "data/users_has_interests.csv",
				Likes:     "data/posts_has_likes.csv",
			},
			DatabaseURL:     "",
			Tables:          dataset.DefaultTableNames(),
			Location:        "Local",
			RefreshInterval: 5 * time.Minute,
			Watch:           true,
			WatchDebounce:   dataset.DefaultWatchDebounce,
			CacheDir:        "",
			RemoteTimeout:   30 * time.Second,
			QueryTimeout:    time.Minute,
			Breaker:         dataset.DefaultBreakerConfig(),
		},
		Recommend: *recommend.DefaultConfig(),
		NATS: NATSConfig{
			Enabled:    false,
			URL:        "nats://127.0.0.1:4222",
			Subject:    "feedrank.dataset.updated",
			QueueGroup: "",
			Reconnect:  2 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			ReloadInterval:    30 * time.Second,
			ReloadBurst:       1,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in defaults
//  2. Config File: optional YAML config file (if exists)
//  3. Environment Variables: override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// ConfigFile returns the file LoadWithKoanf would read, or "".
func ConfigFile() string {
	return findConfigFile()
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"data.schema.posts.id",
	"data.schema.posts.description",
	"data.schema.posts.likes",
	"data.schema.posts.created_at",
	"data.schema.interests.user",
	"data.schema.interests.interest",
	"data.schema.likes.user",
	"data.schema.likes.post",
	"data.schema.likes.created_at",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings; YAML values are already slices and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Unmapped variables are ignored so the process environment cannot
// pollute the configuration.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"request_timeout":       "server.request_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Dataset
	"data_source":          "data.source",
	"posts_path":           "data.paths.posts",
	"interests_path":       "data.paths.interests",
	"likes_path":           "data.paths.likes",
	"database_url":         "data.database_url",
	"posts_table":          "data.tables.posts",
	"interests_table":      "data.tables.interests",
	"likes_table":          "data.tables.likes",
	"data_timezone":        "data.location",
	"refresh_interval":     "data.refresh_interval",
	"watch_dataset":        "data.watch",
	"watch_debounce":       "data.watch_debounce",
	"data_cache_dir":       "data.cache_dir",
	"remote_timeout":       "data.remote_timeout",
	"query_timeout":        "data.query_timeout",
	"breaker_max_failures": "data.breaker.max_failures",
	"breaker_open_timeout": "data.breaker.open_timeout",

	// Schema overrides (comma-separated candidates)
	"posts_id_columns":          "data.schema.posts.id",
	"posts_description_columns": "data.schema.posts.description",
	"posts_likes_columns":       "data.schema.posts.likes",
	"posts_created_at_columns":  "data.schema.posts.created_at",
	"interests_user_columns":    "data.schema.interests.user",
	"interests_label_columns":   "data.schema.interests.interest",
	"likes_user_columns":        "data.schema.likes.user",
	"likes_post_columns":        "data.schema.likes.post",
	"likes_created_at_columns":  "data.schema.likes.created_at",

	// Recommendation scoring
	"likes_divisor":        "recommend.scoring.likes_divisor",
	"comments_divisor":     "recommend.scoring.comments_divisor",
	"shares_divisor":       "recommend.scoring.shares_divisor",
	"engagement_weight":    "recommend.scoring.engagement_weight",
	"recency_weight":       "recommend.scoring.recency_weight",
	"recent_score":         "recommend.scoring.recent_score",
	"stale_score":          "recommend.scoring.stale_score",
	"interest_boost":       "recommend.scoring.interest_boost",
	"viral_fallback_score": "recommend.scoring.viral_fallback_score",

	// Recommendation windows and limits
	"recency_window":      "recommend.windows.recency",
	"viral_window":        "recommend.windows.viral",
	"activity_window":     "recommend.windows.activity",
	"max_interests":       "recommend.limits.interests",
	"interest_pool_size":  "recommend.limits.interest_pool",
	"viral_pool_size":     "recommend.limits.viral_pool",
	"max_results":         "recommend.limits.max_results",
	"response_cache":      "recommend.cache.enabled",
	"response_cache_ttl":  "recommend.cache.ttl",
	"response_cache_size": "recommend.cache.max_entries",

	// NATS
	"nats_enabled":        "nats.enabled",
	"nats_url":            "nats.url",
	"nats_subject":        "nats.subject",
	"nats_queue_group":    "nats.queue_group",
	"nats_reconnect_wait": "nats.reconnect_wait",

	// Security
	"cors_origins":       "security.cors_origins",
	"rate_limit_reqs":    "security.rate_limit_reqs",
	"rate_limit_window":  "security.rate_limit_window",
	"disable_rate_limit": "security.rate_limit_disabled",
	"reload_interval":    "security.reload_interval",
	"reload_burst":       "security.reload_burst",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - POSTS_PATH -> data.paths.posts
//   - MAX_RESULTS -> recommend.limits.max_results
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

// GetKoanfInstance returns a new Koanf instance for advanced usage.
func GetKoanfInstance() *koanf.Koanf {
	return koanf.New(".")
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// The caller is responsible for synchronizing access to configuration it
// replaces from the callback.
//
// Example usage:
//
//	err := WatchConfigFile(path, func() {
//	    newCfg, err := LoadWithKoanf()
//	    if err != nil {
//	        logging.Warn().Err(err).Msg("Config reload failed")
//	        return
//	    }
//	    logging.SetLevelString(newCfg.Logging.Level)
//	})
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
