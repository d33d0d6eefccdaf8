// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

/*
Package services adapts feedrank components to suture.Service.

  - HTTPServerService: ListenAndServe/Shutdown to Serve, with a drain timeout.
  - SnapshotService: loads the dataset on start, on a ticker and on request.
    RequestReload is rate limited with golang.org/x/time/rate and returns
    ErrReloadThrottled when exceeded; Trigger is the unthrottled variant used
    by the file watcher. Pending requests coalesce into one reload.
  - NotifierService: Start/Shutdown to Serve, used for the NATS subscriber.

Every wrapper returns ctx.Err() on cancellation and a wrapped error on
failure so the supervisor can tell a shutdown from a crash.
*/
package services
