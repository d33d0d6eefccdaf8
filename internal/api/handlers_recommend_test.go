// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/feedrank/internal/dataset"
	"github.com/tomtom215/feedrank/internal/models"
	"github.com/tomtom215/feedrank/internal/recommend"
)

func recommendRequest(userID, query string) *http.Request {
	target := "/api/v1/recommendations/user/" + userID
	if query != "" {
		target += "?" + query
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return withURLParams(req, map[string]string{"userID": userID})
}

func TestRecommendations_Success(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{resp: sampleResponse()}
	h := newTestHandler(&fakeStore{snap: testSnapshot()}, engine, nil)

	rec := httptest.NewRecorder()
	h.Recommendations(rec, recommendRequest("42", "limit=5"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Errorf("status = %q", env.Status)
	}
	if env.Metadata.SnapshotVersion != 7 {
		t.Errorf("snapshot_version = %d, want 7", env.Metadata.SnapshotVersion)
	}
	if env.Metadata.Path != string(recommend.PathPersonalized) {
		t.Errorf("path = %q", env.Metadata.Path)
	}
	if env.Metadata.Timestamp.IsZero() {
		t.Error("timestamp missing")
	}

	var body recommend.Response
	if err := json.Unmarshal(env.Data, &body); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if body.UserID != 42 || body.Count != 2 || len(body.Recommendations) != 2 {
		t.Errorf("unexpected body %+v", body)
	}
	if engine.gotUser != 42 || engine.gotLimit != 5 {
		t.Errorf("engine called with user=%d limit=%d", engine.gotUser, engine.gotLimit)
	}
	if !engine.hadDeadline {
		t.Error("engine context has no deadline")
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
}

func TestRecommendations_DefaultLimitIsZero(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{resp: sampleResponse()}
	h := newTestHandler(&fakeStore{snap: testSnapshot()}, engine, nil)

	rec := httptest.NewRecorder()
	h.Recommendations(rec, recommendRequest("42", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if engine.gotLimit != 0 {
		t.Errorf("limit = %d, want 0 (engine maximum)", engine.gotLimit)
	}
}

func TestRecommendations_CachedFlag(t *testing.T) {
	t.Parallel()

	resp := sampleResponse()
	resp.CacheHit = true
	h := newTestHandler(&fakeStore{snap: testSnapshot()}, &fakeEngine{resp: resp}, nil)

	rec := httptest.NewRecorder()
	h.Recommendations(rec, recommendRequest("42", ""))

	if env := decodeEnvelope(t, rec); !env.Metadata.Cached {
		t.Error("metadata.cached = false, want true")
	}
}

func TestRecommendations_EmptyFeed(t *testing.T) {
	t.Parallel()

	empty := &recommend.Response{
		UserID:          9,
		Interests:       recommend.InterestSet{},
		Recommendations: []recommend.Recommendation{},
		Path:            recommend.PathViralOnly,
	}
	h := newTestHandler(&fakeStore{snap: testSnapshot()}, &fakeEngine{resp: empty}, nil)

	rec := httptest.NewRecorder()
	h.Recommendations(rec, recommendRequest("9", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for an empty feed", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"count":0`) {
		t.Errorf("body missing count 0: %s", rec.Body.String())
	}
}

func TestRecommendations_InvalidUserID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID string
	}{
		{"letters", "abc"},
		{"negative", "-1"},
		{"decimal", "1.5"},
		{"overflow", "9223372036854775808"},
		{"too long", "12345678901234567890"},
		{"whitespace", "%2042"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine := &fakeEngine{resp: sampleResponse()}
			h := newTestHandler(&fakeStore{snap: testSnapshot()}, engine, nil)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/user/x", nil)
			h.Recommendations(rec, withURLParams(req, map[string]string{"userID": tt.userID}))

			expectError(t, rec, http.StatusBadRequest, ErrCodeInvalidUserID)
			if engine.gotUser != 0 {
				t.Error("engine called for an invalid user ID")
			}
		})
	}
}

func TestRecommendations_InvalidLimit(t *testing.T) {
	t.Parallel()

	for _, limit := range []string{"abc", "-1", "101", "2.5"} {
		limit := limit
		t.Run(limit, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(&fakeStore{snap: testSnapshot()}, &fakeEngine{resp: sampleResponse()}, nil)

			rec := httptest.NewRecorder()
			h.Recommendations(rec, recommendRequest("42", "limit="+limit))

			expectError(t, rec, http.StatusBadRequest, ErrCodeValidation)
		})
	}
}

func TestRecommendations_NoSnapshot(t *testing.T) {
	t.Parallel()

	loadErr := fmt.Errorf("load posts: %w", dataset.ErrLoad)
	h := newTestHandler(&fakeStore{lastErr: loadErr}, &fakeEngine{}, nil)

	rec := httptest.NewRecorder()
	h.Recommendations(rec, recommendRequest("42", ""))

	env := expectError(t, rec, http.StatusServiceUnavailable, ErrCodeDatasetUnavailable)
	if !strings.Contains(env.Error.Message, "dataset load failed") {
		t.Errorf("message %q does not carry the load error", env.Error.Message)
	}
	if env.Error.Details["last_error"] == nil {
		t.Error("details.last_error missing")
	}
}

func TestRecommendations_UnavailableRedactsCredentials(t *testing.T) {
	t.Parallel()

	loadErr := fmt.Errorf("%w: ping pgx: connect postgres://feed:hunter2@db/feeds", dataset.ErrLoad)
	h := newTestHandler(&fakeStore{lastErr: loadErr}, &fakeEngine{}, nil)

	rec := httptest.NewRecorder()
	h.Recommendations(rec, recommendRequest("42", ""))

	expectError(t, rec, http.StatusServiceUnavailable, ErrCodeDatasetUnavailable)
	if strings.Contains(rec.Body.String(), "hunter2") {
		t.Errorf("response leaked the DSN password: %s", rec.Body.String())
	}
}

func TestRecommendations_EngineErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
		secret string
	}{
		{"no snapshot", recommend.ErrNoSnapshot, http.StatusServiceUnavailable, ErrCodeDatasetUnavailable, ""},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, ErrCodeTimeout, ""},
		{"wrapped deadline", fmt.Errorf("rank: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, ErrCodeTimeout, ""},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternal, "boom"},
		{
			"load failure",
			fmt.Errorf("%w: ping pgx: connect postgres://feed:hunter2@db/feeds?sslkey=s3cret", dataset.ErrLoad),
			http.StatusServiceUnavailable, ErrCodeDatasetUnavailable, "hunter2",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(&fakeStore{snap: testSnapshot()}, &fakeEngine{err: tt.err}, nil)

			rec := httptest.NewRecorder()
			h.Recommendations(rec, recommendRequest("42", ""))

			expectError(t, rec, tt.status, tt.code)
			if tt.secret != "" && strings.Contains(rec.Body.String(), tt.secret) {
				t.Errorf("response leaked %q: %s", tt.secret, rec.Body.String())
			}
			if strings.Contains(rec.Body.String(), "s3cret") {
				t.Errorf("response leaked the DSN query: %s", rec.Body.String())
			}
		})
	}
}

func TestRecommendations_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := newTestHandler(&fakeStore{snap: testSnapshot()}, &fakeEngine{}, nil)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/recommendations/user/42", nil)
	rec := httptest.NewRecorder()
	h.Recommendations(rec, withURLParams(req, map[string]string{"userID": "42"}))

	expectError(t, rec, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
	if rec.Header().Get("Allow") != http.MethodGet {
		t.Errorf("Allow = %q", rec.Header().Get("Allow"))
	}
}

func TestInterests_Success(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{interests: recommend.InterestSet{"Music", "Sports", "Travel"}}
	h := newTestHandler(&fakeStore{snap: testSnapshot()}, engine, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/user/5/interests", nil)
	rec := httptest.NewRecorder()
	h.Interests(rec, withURLParams(req, map[string]string{"userID": "5"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	var body models.InterestsResponse
	if err := json.Unmarshal(env.Data, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.UserID != 5 || body.Count != 3 || body.Interests[0] != "Music" {
		t.Errorf("unexpected body %+v", body)
	}
	if env.Metadata.SnapshotVersion != 7 {
		t.Errorf("snapshot_version = %d", env.Metadata.SnapshotVersion)
	}
}

func TestInterests_EmptySetIsArray(t *testing.T) {
	t.Parallel()

	h := newTestHandler(&fakeStore{snap: testSnapshot()}, &fakeEngine{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/user/5/interests", nil)
	rec := httptest.NewRecorder()
	h.Interests(rec, withURLParams(req, map[string]string{"userID": "5"}))

	if !strings.Contains(rec.Body.String(), `"interests":[]`) {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

func TestInterests_Errors(t *testing.T) {
	t.Parallel()

	t.Run("invalid user", func(t *testing.T) {
		t.Parallel()
		h := newTestHandler(&fakeStore{snap: testSnapshot()}, &fakeEngine{}, nil)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		h.Interests(rec, withURLParams(req, map[string]string{"userID": "me"}))
		expectError(t, rec, http.StatusBadRequest, ErrCodeInvalidUserID)
	})

	t.Run("no snapshot", func(t *testing.T) {
		t.Parallel()
		h := newTestHandler(&fakeStore{}, &fakeEngine{}, nil)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		h.Interests(rec, withURLParams(req, map[string]string{"userID": "1"}))
		env := expectError(t, rec, http.StatusServiceUnavailable, ErrCodeDatasetUnavailable)
		if env.Error.Message != "dataset not loaded" {
			t.Errorf("message = %q", env.Error.Message)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		h := newTestHandler(&fakeStore{snap: testSnapshot()}, &fakeEngine{err: context.DeadlineExceeded}, nil)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		h.Interests(rec, withURLParams(req, map[string]string{"userID": "1"}))
		expectError(t, rec, http.StatusGatewayTimeout, ErrCodeTimeout)
	})
}
