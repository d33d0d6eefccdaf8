// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package services

import (
	"context"
	"fmt"
	"time"
)

// NotifierRunner is an external event listener with a Start/Shutdown
// lifecycle. Satisfied by *notify.Subscriber.
type NotifierRunner interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context)
}

// NotifierService adapts a NotifierRunner to suture: Start, wait for
// cancellation, then Shutdown with a fresh deadline. A Start error is
// returned so the supervisor retries with backoff.
type NotifierService struct {
	runner          NotifierRunner
	shutdownTimeout time.Duration
	name            string
}

// NewNotifierService wraps runner.
func NewNotifierService(name string, runner NotifierRunner, shutdownTimeout time.Duration) *NotifierService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	if name == "" {
		name = "notifier"
	}
	return &NotifierService{
		runner:          runner,
		shutdownTimeout: shutdownTimeout,
		name:            name,
	}
}

// Serve implements suture.Service.
func (s *NotifierService) Serve(ctx context.Context) error {
	if err := s.runner.Start(ctx); err != nil {
		return fmt.Errorf("%s start failed: %w", s.name, err)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.runner.Shutdown(shutdownCtx)

	return ctx.Err()
}

// String implements fmt.Stringer for suture's logs.
func (s *NotifierService) String() string {
	return s.name
}
