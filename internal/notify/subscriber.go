// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

//go:build nats

package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/tomtom215/feedrank/internal/logging"
	"github.com/tomtom215/feedrank/internal/metrics"
)

// Subscriber subscribes to the dataset-updated subject.
type Subscriber struct {
	cfg      Config
	reloader ReloadRequester
	logger   zerolog.Logger
	audit    *logging.AuditLogger

	mu  sync.Mutex
	nc  *natsgo.Conn
	sub *natsgo.Subscription
}

// NewSubscriber validates cfg. No connection is made until Start.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSubscriber(cfg Config, reloader ReloadRequester, logger zerolog.Logger) (*Subscriber, error) {
	if cfg.URL == "" {
		return nil, errors.New("nats url is required")
	}
	if cfg.Subject == "" {
		return nil, errors.New("nats subject is required")
	}
	if reloader == nil {
		return nil, errors.New("reloader is required")
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = 2 * time.Second
	}
	return &Subscriber{
		cfg:      cfg,
		reloader: reloader,
		logger:   logger.With().Str("component", "notify").Logger(),
		audit:    logging.NewAuditLoggerWithLogger(logger),
	}, nil
}

// Start connects and subscribes. The connection reconnects indefinitely;
// an initial connect failure is returned so the supervisor can back off.
func (s *Subscriber) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	nc, err := natsgo.Connect(s.cfg.URL,
		natsgo.Name("feedrank"),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(s.cfg.ReconnectWait),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				s.logger.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		natsgo.ReconnectHandler(func(c *natsgo.Conn) {
			s.logger.Info().Str("url", c.ConnectedUrlRedacted()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return fmt.Errorf("connect to nats: %w", err)
	}

	var sub *natsgo.Subscription
	if s.cfg.QueueGroup != "" {
		sub, err = nc.QueueSubscribe(s.cfg.Subject, s.cfg.QueueGroup, s.handle)
	} else {
		sub, err = nc.Subscribe(s.cfg.Subject, s.handle)
	}
	if err != nil {
		nc.Close()
		return fmt.Errorf("subscribe %s: %w", s.cfg.Subject, err)
	}
	if err := nc.Flush(); err != nil {
		nc.Close()
		return fmt.Errorf("flush subscription: %w", err)
	}

	s.mu.Lock()
	s.nc, s.sub = nc, sub
	s.mu.Unlock()

	s.logger.Info().
		Str("url", nc.ConnectedUrlRedacted()).
		Str("subject", s.cfg.Subject).
		Str("queue_group", s.cfg.QueueGroup).
		Msg("subscribed to dataset updates")
	return nil
}

func (s *Subscriber) handle(msg *natsgo.Msg) {
	var ev Event
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			metrics.NotifyMessagesTotal.WithLabelValues("malformed").Inc()
			s.logger.Warn().Err(err).Str("subject", msg.Subject).Msg("ignoring malformed dataset event")
			return
		}
	}

	logger := s.logger.With().
		Str("dataset", ev.Dataset).
		Strs("tables", ev.Tables).
		Str("version", ev.Version).
		Logger()

	err := s.reloader.RequestReload(Trigger)
	s.audit.LogReloadRequested(Trigger, "", "", ev.Reason, err)
	if err != nil {
		metrics.NotifyMessagesTotal.WithLabelValues("throttled").Inc()
		logger.Debug().Err(err).Msg("dataset event did not trigger a reload")
		return
	}
	metrics.NotifyMessagesTotal.WithLabelValues("reload").Inc()
	logger.Info().Str("reason", ev.Reason).Msg("dataset event received, reload requested")
}

// Shutdown drains the subscription and closes the connection. It waits for
// the drain up to ctx's deadline.
func (s *Subscriber) Shutdown(ctx context.Context) {
	s.mu.Lock()
	nc := s.nc
	s.nc, s.sub = nil, nil
	s.mu.Unlock()
	if nc == nil {
		return
	}

	closed := make(chan struct{})
	nc.SetClosedHandler(func(*natsgo.Conn) { close(closed) })
	if err := nc.Drain(); err != nil {
		s.logger.Warn().Err(err).Msg("nats drain failed")
		nc.Close()
		return
	}
	select {
	case <-closed:
	case <-ctx.Done():
		nc.Close()
	}
}

// Connected reports whether the subscriber currently holds a live connection.
func (s *Subscriber) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nc != nil && s.nc.IsConnected()
}
