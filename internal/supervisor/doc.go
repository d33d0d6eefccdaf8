// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

/*
Package supervisor runs feedrank's long-lived services under suture v4.

# Layout

	feedrank
	├── data-layer
	│   ├── SnapshotService   periodic and on-demand dataset reloads
	│   └── dataset.Watcher   reload on local CSV change (data.watch)
	├── messaging-layer
	│   └── NotifierService   NATS dataset-updated subscriber (build tag: nats)
	└── api-layer
	    └── HTTPServerService

# Usage

	tree, err := supervisor.NewSupervisorTree(slogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(snapshots)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	return tree.Serve(ctx)

# Restart Semantics

A service that returns a non-nil error is restarted. Once the decayed failure
count exceeds FailureThreshold the layer backs off for FailureBackoff. A
service must return promptly when its context is cancelled; stragglers show
up in UnstoppedServiceReport.

DuckDB and the pgx pool are not supervised. They are owned by the dataset
store and closed by main after the tree stops.
*/
package supervisor
