// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

//go:build nats

package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats-server/v2/server"
	natsgo "github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/feedrank/internal/metrics"
)

type mockReloader struct {
	mu       sync.Mutex
	triggers []string
	err      error
	calls    chan struct{}
}

func newMockReloader() *mockReloader {
	return &mockReloader{calls: make(chan struct{}, 16)}
}

func (m *mockReloader) RequestReload(trigger string) error {
	m.mu.Lock()
	m.triggers = append(m.triggers, trigger)
	err := m.err
	m.mu.Unlock()
	m.calls <- struct{}{}
	return err
}

func (m *mockReloader) wait(t *testing.T) {
	t.Helper()
	select {
	case <-m.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("RequestReload was not called")
	}
}

func startServer(t *testing.T) *server.Server {
	t.Helper()
	ns, err := server.NewServer(&server.Options{
		Host:   "127.0.0.1",
		Port:   server.RANDOM_PORT,
		NoLog:  true,
		NoSigs: true,
	})
	if err != nil {
		t.Fatalf("create nats server: %v", err)
	}
	go ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		t.Fatal("nats server not ready")
	}
	t.Cleanup(ns.Shutdown)
	return ns
}

func publish(t *testing.T, url, subject string, data []byte) {
	t.Helper()
	nc, err := natsgo.Connect(url)
	if err != nil {
		t.Fatalf("connect publisher: %v", err)
	}
	defer nc.Close()
	if err := nc.Publish(subject, data); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := nc.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

func startSubscriber(t *testing.T, cfg Config, reloader ReloadRequester) *Subscriber {
	t.Helper()
	sub, err := NewSubscriber(cfg, reloader, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSubscriber: %v", err)
	}
	if err := sub.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		sub.Shutdown(ctx)
	})
	return sub
}

func TestNewSubscriber_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      Config
		reloader ReloadRequester
	}{
		{"missing url", Config{Subject: "s"}, newMockReloader()},
		{"missing subject", Config{URL: "nats://127.0.0.1:4222"}, newMockReloader()},
		{"missing reloader", Config{URL: "nats://127.0.0.1:4222", Subject: "s"}, nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewSubscriber(tt.cfg, tt.reloader, zerolog.Nop()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSubscriber_EventTriggersReload(t *testing.T) {
	ns := startServer(t)
	reloader := newMockReloader()
	sub := startSubscriber(t, Config{URL: ns.ClientURL(), Subject: "feedrank.dataset.updated"}, reloader)

	if !sub.Connected() {
		t.Fatal("subscriber not connected")
	}

	before := testutil.ToFloat64(metrics.NotifyMessagesTotal.WithLabelValues("reload"))
	payload, _ := json.Marshal(Event{Dataset: "feed", Tables: []string{"posts"}, Reason: "nightly export"})
	publish(t, ns.ClientURL(), "feedrank.dataset.updated", payload)
	reloader.wait(t)

	reloader.mu.Lock()
	got := append([]string(nil), reloader.triggers...)
	reloader.mu.Unlock()
	if len(got) != 1 || got[0] != Trigger {
		t.Errorf("triggers = %v, want [%s]", got, Trigger)
	}
	if after := testutil.ToFloat64(metrics.NotifyMessagesTotal.WithLabelValues("reload")); after != before+1 {
		t.Errorf("reload counter = %v, want %v", after, before+1)
	}
}

func TestSubscriber_EmptyPayloadTriggersReload(t *testing.T) {
	ns := startServer(t)
	reloader := newMockReloader()
	startSubscriber(t, Config{URL: ns.ClientURL(), Subject: "updates", QueueGroup: "feedrank"}, reloader)

	publish(t, ns.ClientURL(), "updates", nil)
	reloader.wait(t)
}

func TestSubscriber_MalformedPayloadIgnored(t *testing.T) {
	ns := startServer(t)
	reloader := newMockReloader()
	startSubscriber(t, Config{URL: ns.ClientURL(), Subject: "updates"}, reloader)

	before := testutil.ToFloat64(metrics.NotifyMessagesTotal.WithLabelValues("malformed"))
	publish(t, ns.ClientURL(), "updates", []byte("{not json"))
	// A valid event afterwards proves the malformed one was consumed first.
	publish(t, ns.ClientURL(), "updates", []byte(`{"reason":"retry"}`))
	reloader.wait(t)

	reloader.mu.Lock()
	n := len(reloader.triggers)
	reloader.mu.Unlock()
	if n != 1 {
		t.Errorf("RequestReload called %d times, want 1", n)
	}
	if after := testutil.ToFloat64(metrics.NotifyMessagesTotal.WithLabelValues("malformed")); after != before+1 {
		t.Errorf("malformed counter = %v, want %v", after, before+1)
	}
}

func TestSubscriber_ThrottledReload(t *testing.T) {
	ns := startServer(t)
	reloader := newMockReloader()
	reloader.err = errors.New("reload throttled")
	startSubscriber(t, Config{URL: ns.ClientURL(), Subject: "updates"}, reloader)

	before := testutil.ToFloat64(metrics.NotifyMessagesTotal.WithLabelValues("throttled"))
	publish(t, ns.ClientURL(), "updates", nil)
	reloader.wait(t)

	deadline := time.Now().Add(time.Second)
	for testutil.ToFloat64(metrics.NotifyMessagesTotal.WithLabelValues("throttled")) != before+1 {
		if time.Now().After(deadline) {
			t.Fatal("throttled counter not incremented")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSubscriber_StartFailsWithoutServer(t *testing.T) {
	t.Parallel()

	sub, err := NewSubscriber(Config{URL: "nats://127.0.0.1:1", Subject: "updates"}, newMockReloader(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSubscriber: %v", err)
	}
	if err := sub.Start(context.Background()); err == nil {
		t.Fatal("expected connect error")
	}
	if sub.Connected() {
		t.Error("Connected() = true after failed start")
	}
	sub.Shutdown(context.Background())
}
