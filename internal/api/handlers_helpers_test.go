// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/feedrank/internal/models"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"line1\nline2", `line1\x0aline2`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
		{"ünïcode", "ünïcode"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte(`{"a":1}`))
	b := generateETag([]byte(`{"a":2}`))
	if a == b {
		t.Error("different bodies produced the same ETag")
	}
	if a != generateETag([]byte(`{"a":1}`)) {
		t.Error("ETag is not stable")
	}
	if !strings.HasPrefix(a, `"`) || !strings.HasSuffix(a, `"`) {
		t.Errorf("ETag %s is not quoted", a)
	}
}

func TestRespondJSON_Headers(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusCreated, &models.APIResponse{
		Status:   "success",
		Data:     map[string]int{"n": 1},
		Metadata: models.Metadata{Timestamp: time.Unix(0, 0).UTC()},
	})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("ETag missing")
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("Cache-Control = %q", rec.Header().Get("Cache-Control"))
	}
	if !strings.Contains(rec.Body.String(), `"data":{"n":1}`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRespondError_OmitsInternalError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondError(rec, http.StatusInternalServerError, ErrCodeInternal, "failed", errSecret{})

	env := expectError(t, rec, http.StatusInternalServerError, ErrCodeInternal)
	if strings.Contains(rec.Body.String(), "secret") {
		t.Error("internal error leaked into the body")
	}
	if string(env.Data) != "null" {
		t.Errorf("data = %s, want null", env.Data)
	}
}

type errSecret struct{}

func (errSecret) Error() string { return "secret dsn postgres://u:p@db" }

func TestParseLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"limit=10", 10, false},
		{"limit=0", 0, false},
		{"limit=-3", -3, false},
		{"limit=ten", 0, true},
		{"limit=", 0, false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		got, apiErr := parseLimit(req)
		if (apiErr != nil) != tt.wantErr {
			t.Errorf("%q: err = %v, wantErr %v", tt.query, apiErr, tt.wantErr)
			continue
		}
		if apiErr != nil && apiErr.Code != ErrCodeValidation {
			t.Errorf("%q: code = %s", tt.query, apiErr.Code)
		}
		if got != tt.want {
			t.Errorf("%q: limit = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestRequireMethod(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	if !requireMethod(rec, httptest.NewRequest(http.MethodPost, "/", nil), http.MethodGet, http.MethodPost) {
		t.Error("POST rejected")
	}

	rec = httptest.NewRecorder()
	if requireMethod(rec, httptest.NewRequest(http.MethodPut, "/", nil), http.MethodGet, http.MethodPost) {
		t.Fatal("PUT accepted")
	}
	if rec.Header().Get("Allow") != "GET, POST" {
		t.Errorf("Allow = %q", rec.Header().Get("Allow"))
	}
	expectError(t, rec, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
}
