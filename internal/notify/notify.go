// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

// Package notify listens for dataset-updated events on NATS and turns them
// into snapshot reload requests. The NATS client is only compiled with the
// "nats" build tag; without it NewSubscriber returns ErrNotBuilt.
package notify

import (
	"errors"
	"time"
)

// Trigger is the reload trigger label for NATS-originated reloads.
const Trigger = "nats"

// ErrNotBuilt is returned by NewSubscriber in builds without the nats tag.
var ErrNotBuilt = errors.New("NATS support not compiled in (build with -tags nats)")

// ReloadRequester accepts reload requests. Satisfied by
// *services.SnapshotService.
type ReloadRequester interface {
	RequestReload(trigger string) error
}

// Config configures the subscriber.
type Config struct {
	URL           string
	Subject       string
	QueueGroup    string
	ReconnectWait time.Duration
}

// Event is the optional payload of a dataset-updated message. Any message on
// the subject triggers a reload; the fields are only logged.
type Event struct {
	Dataset string    `json:"dataset,omitempty"`
	Tables  []string  `json:"tables,omitempty"`
	Version string    `json:"version,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at,omitempty"`
}
