// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    []string
		notWant []string
	}{
		{
			name:    "postgres dsn",
			in:      `load failed: ping pgx: failed to connect to postgres://feed:hunter2@db:5432/feeds`,
			want:    []string{"postgres://feed:REDACTED@db:5432/feeds", "load failed"},
			notWant: []string{"hunter2"},
		},
		{
			name:    "signed url",
			in:      "download https://bucket.example/posts.csv?X-Amz-Signature=abc: HTTP 403",
			want:    []string{"https://bucket.example/posts.csv?REDACTED", "HTTP 403"},
			notWant: []string{"abc"},
		},
		{
			name: "plain",
			in:   "posts: no id column",
			want: []string{"posts: no id column"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SanitizeError(tt.in)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("SanitizeError() = %q, want it to contain %q", got, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("SanitizeError() = %q leaked %q", got, nw)
				}
			}
		})
	}
}

func TestSanitizeError_Truncates(t *testing.T) {
	t.Parallel()

	got := SanitizeError(strings.Repeat("x", 500))
	if len(got) != 303 || !strings.HasSuffix(got, "...") {
		t.Errorf("len = %d, want 300 chars plus ellipsis", len(got))
	}
}

func TestSanitizeValue(t *testing.T) {
	t.Parallel()

	if got := SanitizeValue("dsn", "postgres://u:p@h/db"); got == "postgres://u:p@h/db" {
		t.Errorf("dsn value not redacted: %q", got)
	}
	if got := SanitizeValue("token", "short"); got != "[REDACTED]" {
		t.Errorf("short token = %q", got)
	}
	if got := SanitizeValue("token", "abcd1234567890wxyz"); got != "abcd...wxyz" {
		t.Errorf("long token = %q", got)
	}
	if got := SanitizeValue("table", "posts"); got != "posts" {
		t.Errorf("plain value changed: %q", got)
	}
}

func TestAuditLogger_LogReloadRequested(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	audit := NewAuditLoggerWithLogger(NewTestLogger(&buf))

	audit.LogReloadRequested("api", "10.0.0.1", "curl/8", "new export", nil)
	audit.LogReloadRequested("nats", "", "", "", errors.New("reload requested too recently"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2: %s", len(lines), buf.String())
	}

	var accepted, rejected map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &accepted); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &rejected); err != nil {
		t.Fatal(err)
	}

	if accepted["component"] != "audit" || accepted["event"] != EventReloadRequested {
		t.Errorf("accepted = %v", accepted)
	}
	if accepted["status"] != "accepted" || accepted["level"] != "info" || accepted["ip"] != "10.0.0.1" {
		t.Errorf("accepted = %v", accepted)
	}
	if _, ok := accepted["error"]; ok {
		t.Error("accepted event should not carry an error")
	}
	if rejected["status"] != "rejected" || rejected["level"] != "warn" || rejected["trigger"] != "nats" {
		t.Errorf("rejected = %v", rejected)
	}
	if rejected["error"] != "reload requested too recently" {
		t.Errorf("rejected error = %v", rejected["error"])
	}
}

func TestAuditLogger_LogRateLimited(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewAuditLoggerWithLogger(NewTestLogger(&buf)).LogRateLimited("10.0.0.2", "/api/v1/dataset/reload")

	out := buf.String()
	for _, want := range []string{`"event":"rate_limited"`, `"status":"rejected"`, `"path":"/api/v1/dataset/reload"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log %s missing %s", out, want)
		}
	}
}
