// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

/*
Package main is the entry point for the Feedrank server.

Feedrank serves personalized post feeds over HTTP. It loads three CSV tables
(posts, user interests and post likes) into an immutable in-memory snapshot,
and answers each request by merging interest-matched posts with the globally
most viral ones.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("feedrank")
	├── DataSupervisor ("data-layer")
	│   ├── Snapshot refresher (startup, periodic and on-demand reloads)
	│   └── Dataset watcher (optional, local CSV files only)
	├── MessagingSupervisor ("messaging-layer")
	│   └── NATS reload subscriber (optional, -tags nats)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, an optional YAML file and environment variables
 2. Logging: zerolog with JSON or console output
 3. Dataset source: DuckDB reading CSV files (local or http), or PostgreSQL via pgx
 4. Snapshot store and recommendation engine
 5. Supervisor tree and services
 6. HTTP server: chi router with the middleware stack

# Configuration

Common environment variables:

	HTTP_PORT=8080
	LOG_LEVEL=info
	DATA_POSTS_PATH=./data/posts.csv
	DATA_INTERESTS_PATH=./data/users_has_interests.csv
	DATA_LIKES_PATH=./data/posts_has_likes.csv
	DATA_REFRESH_INTERVAL=5m
	NATS_ENABLED=true
	NATS_URL=nats://localhost:4222

# Build Tags

	go build ./cmd/server                # CSV or PostgreSQL, HTTP reloads
	go build -tags nats ./cmd/server     # adds the NATS reload subscriber

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests, the refresher finishes its current load and the dataset source is
closed.
*/
package main
