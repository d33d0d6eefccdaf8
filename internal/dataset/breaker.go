// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/feedrank/internal/logging"
	"github.com/tomtom215/feedrank/internal/metrics"
)

// BreakerConfig configures the circuit breaker around a Source.
type BreakerConfig struct {
	// Name labels metrics and log lines.
	Name string `koanf:"name"`

	// MaxFailures is the number of consecutive failed table loads that opens
	// the circuit.
	MaxFailures uint32 `koanf:"max_failures"`

	// OpenTimeout is how long the circuit stays open before a trial load.
	OpenTimeout time.Duration `koanf:"open_timeout"`
}

// DefaultBreakerConfig returns conservative defaults for a refresh loop that
// runs every few minutes.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:        "dataset-source",
		MaxFailures: 3,
		OpenTimeout: 2 * time.Minute,
	}
}

// BreakerSource wraps a Source with a circuit breaker. While open, Load fails
// fast with an error wrapping both ErrLoad and gobreaker.ErrOpenState.
type BreakerSource struct {
	next Source
	cb   *gobreaker.CircuitBreaker[*Table]
	name string
}

// NewBreakerSource wraps next.
func NewBreakerSource(next Source, cfg BreakerConfig) *BreakerSource {
	if cfg.Name == "" {
		cfg.Name = DefaultBreakerConfig().Name
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = DefaultBreakerConfig().MaxFailures
	}
	logger := logging.WithComponent("dataset")

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*Table](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerSource{next: next, cb: cb, name: cfg.Name}
}

// Load delegates to the wrapped source unless the circuit is open.
func (b *BreakerSource) Load(ctx context.Context, table string) (*Table, error) {
	t, err := b.cb.Execute(func() (*Table, error) {
		return b.next.Load(ctx, table)
	})
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		return t, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		return nil, errors.Join(ErrLoad, err)
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}
}

// State returns the current breaker state.
func (b *BreakerSource) State() gobreaker.State {
	return b.cb.State()
}

// Close closes the wrapped source.
func (b *BreakerSource) Close() error {
	return b.next.Close()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
