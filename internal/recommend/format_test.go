// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package recommend

import (
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/feedrank/internal/dataset"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	snap := buildSnapshot(t, postsTable(postColumns,
		post{id: 1, desc: "Music and TRAVEL stories", likes: "5", comments: "2", shares: "1", created: "2024-05-30 08:30:00"},
		post{id: 2, desc: "", likes: "", comments: "", shares: "", created: ""},
		post{id: 3, desc: "Stock market news", likes: "9", comments: "0", shares: "0", created: "2024-05-30 08:30:00.250000"},
	), nil, nil)
	e := newTestEngine(t)

	candidates := []Candidate{
		{Post: &snap.Posts[0], Pool: PoolInterest},
		{Post: &snap.Posts[1], Pool: PoolViral},
		{Post: &snap.Posts[2], Pool: PoolViral},
	}
	resp := e.Format(42, InterestSet{"Travel", "Music", "Art"}, candidates)

	if resp.UserID != 42 || resp.Count != 3 || len(resp.Recommendations) != 3 {
		t.Fatalf("response = %+v", resp)
	}

	r := resp.Recommendations[0]
	want := Recommendation{
		PostID:            1,
		Description:       "Music and TRAVEL stories",
		Likes:             5,
		Comments:          2,
		Shares:            1,
		CreatedAt:         "2024-05-30 08:30:00",
		Reason:            "Matches your interests in Travel, Music",
		MatchesInterests:  true,
		MatchingInterests: []string{"Travel", "Music"},
	}
	if !reflect.DeepEqual(r, want) {
		t.Errorf("rec 0 = %+v\nwant    %+v", r, want)
	}

	r = resp.Recommendations[1]
	if r.Description != NoDescription || r.CreatedAt != UnknownDate || r.Likes != 0 || r.Comments != 0 || r.Shares != 0 {
		t.Errorf("rec 1 defaults = %+v", r)
	}
	if r.MatchesInterests || r.Reason != ReasonPopular || r.MatchingInterests == nil || len(r.MatchingInterests) != 0 {
		t.Errorf("rec 1 match = %+v", r)
	}

	if got := resp.Recommendations[2].CreatedAt; got != "2024-05-30 08:30:00.250000" {
		t.Errorf("fractional created_at = %q", got)
	}
}

func TestFormat_UnresolvableColumns(t *testing.T) {
	t.Parallel()

	snap := buildSnapshot(t, postsTable([]string{"id", "description"},
		post{id: 1, desc: "hello"},
	), nil, nil)
	resp := newTestEngine(t).Format(1, InterestSet{}, []Candidate{{Post: &snap.Posts[0]}})

	r := resp.Recommendations[0]
	if r.Likes != 0 || r.Comments != 0 || r.Shares != 0 || r.CreatedAt != UnknownDate {
		t.Errorf("defaults = %+v", r)
	}
	if r.Reason != ReasonPopular {
		t.Errorf("reason = %q", r.Reason)
	}
}

func TestFormat_EmptyCandidates(t *testing.T) {
	t.Parallel()

	resp := newTestEngine(t).Format(5, nil, nil)
	if resp.Count != 0 || resp.Recommendations == nil || resp.Interests == nil {
		t.Errorf("empty response = %#v", resp)
	}
}

func TestFormatCreatedAt(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := formatCreatedAt(dataset.Some(ts)); got != "2024-01-02 03:04:05" {
		t.Errorf("formatCreatedAt = %q", got)
	}
	if got := formatCreatedAt(dataset.Field[time.Time]{State: dataset.Missing}); got != UnknownDate {
		t.Errorf("missing = %q", got)
	}
}

func TestMatcher(t *testing.T) {
	t.Parallel()

	m := newMatcher([]string{"C++", "Art", "", "art"})
	if !m.any("I love c++ templates") {
		t.Error("literal label with pattern characters not matched")
	}
	if m.any("nothing here") || m.any("") {
		t.Error("unexpected match")
	}
	if got := m.matches("Smart ART"); !reflect.DeepEqual(got, []string{"Art", "art"}) {
		t.Errorf("matches = %v", got)
	}
	if !newMatcher(nil).empty() {
		t.Error("nil matcher not empty")
	}
}
