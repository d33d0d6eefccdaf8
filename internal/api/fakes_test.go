// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/feedrank/internal/config"
	"github.com/tomtom215/feedrank/internal/dataset"
	"github.com/tomtom215/feedrank/internal/models"
	"github.com/tomtom215/feedrank/internal/recommend"
)

type fakeStore struct {
	snap    *dataset.Snapshot
	lastErr error
}

func (s *fakeStore) Current() *dataset.Snapshot { return s.snap }
func (s *fakeStore) LastError() error           { return s.lastErr }

func (s *fakeStore) Status() dataset.Status {
	st := dataset.Status{}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	if s.snap != nil {
		st.Loaded = true
		st.Version = s.snap.Version
		st.SnapshotID = s.snap.ID
	}
	return st
}

type fakeEngine struct {
	mu        sync.Mutex
	resp      *recommend.Response
	interests recommend.InterestSet
	err       error
	stats     recommend.Stats

	gotUser     int64
	gotLimit    int
	hadDeadline bool
}

func (e *fakeEngine) Recommend(ctx context.Context, _ *dataset.Snapshot, userID int64, limit int) (*recommend.Response, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gotUser, e.gotLimit = userID, limit
	_, e.hadDeadline = ctx.Deadline()
	if e.err != nil {
		return nil, e.err
	}
	return e.resp, nil
}

func (e *fakeEngine) Interests(_ context.Context, _ *dataset.Snapshot, userID int64) (recommend.InterestSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gotUser = userID
	if e.err != nil {
		return nil, e.err
	}
	return e.interests, nil
}

func (e *fakeEngine) Stats() recommend.Stats { return e.stats }

type fakeReloader struct {
	mu       sync.Mutex
	err      error
	triggers []string
}

func (r *fakeReloader) RequestReload(trigger string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggers = append(r.triggers, trigger)
	return r.err
}

func testSnapshot() *dataset.Snapshot {
	return &dataset.Snapshot{ID: "snap-7", Version: 7, LoadedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func sampleResponse() *recommend.Response {
	return &recommend.Response{
		UserID:    42,
		Interests: recommend.InterestSet{"Music", "Travel"},
		Recommendations: []recommend.Recommendation{
			{PostID: 1, Description: "New Music Friday", Likes: 50, Reason: "matches your interests", MatchesInterests: true, MatchingInterests: []string{"Music"}},
			{PostID: 2, Description: "Sunset timelapse", Likes: 30, Reason: "trending", MatchingInterests: []string{}},
		},
		Count:           2,
		Path:            recommend.PathPersonalized,
		SnapshotVersion: 7,
	}
}

func newTestHandler(store SnapshotStore, engine Recommender, reloader ReloadRequester) *Handler {
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 5 * time.Second
	return NewHandler(store, engine, reloader, cfg, "test")
}

// withURLParams attaches a chi route context so chi.URLParam works when a
// handler is called directly.
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Error    *models.APIError `json:"error"`
	Metadata models.Metadata  `json:"metadata"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) envelope {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "error" {
		t.Errorf("envelope status = %q, want error", env.Status)
	}
	if env.Error == nil {
		t.Fatal("error object missing")
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q", env.Error.Code, code)
	}
	return env
}
