// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package main

import (
	"errors"

	"github.com/tomtom215/feedrank/internal/config"
	"github.com/tomtom215/feedrank/internal/logging"
	"github.com/tomtom215/feedrank/internal/notify"
	"github.com/tomtom215/feedrank/internal/supervisor"
	"github.com/tomtom215/feedrank/internal/supervisor/services"
)

// initNotifier adds the NATS reload subscriber to the messaging layer when
// enabled. It reports whether a subscriber was added.
func initNotifier(cfg *config.Config, reloader notify.ReloadRequester, tree *supervisor.SupervisorTree) bool {
	if !cfg.NATS.Enabled {
		logging.Info().Msg("NATS reload notifications disabled")
		return false
	}

	sub, err := notify.NewSubscriber(notify.Config{
		URL:           cfg.NATS.URL,
		Subject:       cfg.NATS.Subject,
		QueueGroup:    cfg.NATS.QueueGroup,
		ReconnectWait: cfg.NATS.Reconnect,
	}, reloader, logging.WithComponent("notify"))
	switch {
	case errors.Is(err, notify.ErrNotBuilt):
		logging.Warn().Msg("NATS_ENABLED is set but this binary was built without -tags nats")
		return false
	case err != nil:
		logging.Fatal().Err(err).Msg("Failed to configure NATS subscriber")
		return false
	}

	tree.AddMessagingService(services.NewNotifierService("nats-subscriber", sub, services.DefaultShutdownTimeout))
	logging.Info().
		Str("url", cfg.NATS.URL).
		Str("subject", cfg.NATS.Subject).
		Msg("NATS reload subscriber added to supervisor tree")
	return true
}
