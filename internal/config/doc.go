// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

/*
Package config loads and validates Feedrank configuration.

# Configuration Sources

Values are layered with Koanf v2, later layers overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - Optional YAML file: CONFIG_PATH, else config.yaml / config.yml in the
    working directory, else /etc/feedrank/config.yaml
  - Environment variables listed in envMappings

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - REQUEST_TIMEOUT: per-request deadline (default: 10s)

Dataset:
  - DATA_SOURCE: csv or postgres (default: csv)
  - POSTS_PATH, INTERESTS_PATH, LIKES_PATH: local files or http(s) URLs
  - DATABASE_URL: PostgreSQL DSN for DATA_SOURCE=postgres
  - DATA_TIMEZONE: zone for timestamps without an offset (default: Local)
  - REFRESH_INTERVAL: periodic reload cadence, 0 disables (default: 5m)
  - WATCH_DATASET: reload when local files change (default: true)

Recommendation:
  - INTEREST_BOOST, ENGAGEMENT_WEIGHT, RECENCY_WEIGHT
  - RECENCY_WINDOW, VIRAL_WINDOW, ACTIVITY_WINDOW (default: 168h, 168h, 720h)
  - MAX_RESULTS (1-100), MAX_INTERESTS (1-3)

Messaging:
  - NATS_ENABLED, NATS_URL, NATS_SUBJECT

Security:
  - CORS_ORIGINS: comma-separated
  - RATE_LIMIT_REQS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - RELOAD_INTERVAL, RELOAD_BURST: manual reload throttle

Column-name candidates for each logical field are set under data.schema in
the YAML file, or with the *_COLUMNS variables as comma-separated lists.
*/
package config
