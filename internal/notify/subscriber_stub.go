// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

//go:build !nats

package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Subscriber is a placeholder in builds without the nats tag.
type Subscriber struct{}

// NewSubscriber always fails with ErrNotBuilt.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSubscriber(Config, ReloadRequester, zerolog.Logger) (*Subscriber, error) {
	return nil, ErrNotBuilt
}

// Start returns ErrNotBuilt.
func (s *Subscriber) Start(context.Context) error { return ErrNotBuilt }

// Shutdown is a no-op.
func (s *Subscriber) Shutdown(context.Context) {}

// Connected always returns false.
func (s *Subscriber) Connected() bool { return false }
