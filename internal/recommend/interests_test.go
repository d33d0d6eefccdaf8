// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package recommend

import (
	"reflect"
	"testing"

	"github.com/tomtom215/feedrank/internal/dataset"
)

// globalInterests ranks Technology (3) > Travel (2) > Music (1) > Art (1).
func globalInterests(extra ...string) *dataset.Table {
	pairs := []string{
		"100", "Technology",
		"101", "Technology",
		"102", "Travel",
		"103", "Technology",
		"104", "Travel",
		"105", "Art",
	}
	return interestsTable(append(pairs, extra...)...)
}

func TestInferInterests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		extra  []string
		userID int64
		want   InterestSet
	}{
		{
			name:   "no recorded interests takes global top three",
			userID: 7,
			want:   InterestSet{"Technology", "Travel", "Art"},
		},
		{
			name:   "one recorded interest is filled from the ranking",
			extra:  []string{"7", "Music"},
			userID: 7,
			want:   InterestSet{"Music", "Technology", "Travel"},
		},
		{
			name:   "fallback skips labels already present",
			extra:  []string{"7", "Travel"},
			userID: 7,
			want:   InterestSet{"Travel", "Technology", "Art"},
		},
		{
			name:   "two recorded interests get one fallback",
			extra:  []string{"7", "Cooking", "7", "Technology"},
			userID: 7,
			want:   InterestSet{"Cooking", "Technology", "Travel"},
		},
		{
			name:   "three or more keep the first three in table order",
			extra:  []string{"7", " Gaming ", "7", "Art", "7", "Science ", "7", "Music"},
			userID: 7,
			want:   InterestSet{"Gaming", "Art", "Science"},
		},
	}

	e := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			snap := buildSnapshot(t, postsTable(postColumns), globalInterests(tt.extra...), nil)
			got := e.InferInterests(snap, tt.userID)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InferInterests() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInferInterests_MusicScenario(t *testing.T) {
	t.Parallel()

	// Global ranking Technology, Travel, Music; user 1 recorded Music only.
	table := interestsTable(
		"2", "Technology", "3", "Technology", "4", "Technology", "5", "Technology",
		"2", "Travel", "3", "Travel", "4", "Travel",
		"1", "Music",
	)
	snap := buildSnapshot(t, postsTable(postColumns), table, nil)
	if got := snap.InterestRanking(); !reflect.DeepEqual(got, []string{"Technology", "Travel", "Music"}) {
		t.Fatalf("ranking = %v", got)
	}

	got := newTestEngine(t).InferInterests(snap, 1)
	want := InterestSet{"Music", "Technology", "Travel"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InferInterests() = %v, want %v", got, want)
	}
}

func TestInferInterests_FewerLabelsThanSetSize(t *testing.T) {
	t.Parallel()

	snap := buildSnapshot(t, postsTable(postColumns), interestsTable("1", "Music", "2", "Art"), nil)
	got := newTestEngine(t).InferInterests(snap, 9)
	if !reflect.DeepEqual(got, InterestSet{"Music", "Art"}) {
		t.Errorf("InferInterests() = %v", got)
	}
}

func TestInferInterests_MissingColumns(t *testing.T) {
	t.Parallel()

	table := &dataset.Table{
		Name:    dataset.TableInterests,
		Columns: []string{"id", "user_id", "topic"},
		Rows:    [][]string{{"1", "7", "Music"}},
	}
	snap := buildSnapshot(t, postsTable(postColumns), table, nil)
	got := newTestEngine(t).InferInterests(snap, 7)
	if got == nil || len(got) != 0 {
		t.Errorf("InferInterests() = %#v, want empty non-nil set", got)
	}
}

func TestInferInterests_DoesNotAliasSnapshot(t *testing.T) {
	t.Parallel()

	snap := buildSnapshot(t, postsTable(postColumns),
		interestsTable("7", "A", "7", "B", "7", "C"), nil)
	got := newTestEngine(t).InferInterests(snap, 7)
	got[0] = "mutated"
	if snap.UserInterests(7)[0] != "A" {
		t.Error("InferInterests returned a slice aliasing the snapshot")
	}
}

func refineFixture(t *testing.T, likes ...like) *dataset.Snapshot {
	t.Helper()
	posts := postsTable(postColumns,
		post{id: 1, desc: "Great MUSIC festival", created: daysAgo(40)},
		post{id: 2, desc: "music and art fair", created: daysAgo(40)},
		post{id: 3, desc: "Travel tips", created: daysAgo(40)},
		post{id: 4, desc: "", created: daysAgo(40)},
		post{id: 5, desc: "Nothing relevant", created: daysAgo(40)},
	)
	return buildSnapshot(t, posts, interestsTable(), likesTable(likes...))
}

func TestRefineInterests(t *testing.T) {
	t.Parallel()

	base := InterestSet{"Art", "Travel", "Sports"}
	tests := []struct {
		name  string
		likes []like
		set   InterestSet
		want  InterestSet
	}{
		{
			name:  "most matched label overwrites the last slot",
			likes: []like{{7, 1, daysAgo(1)}, {7, 2, daysAgo(2)}, {7, 3, daysAgo(3)}},
			set:   InterestSet{"Music", "Travel", "Sports"},
			want:  InterestSet{"Music", "Travel", "Music"},
		},
		{
			name:  "ties go to the first encountered label",
			likes: []like{{7, 3, daysAgo(1)}, {7, 2, daysAgo(1)}},
			set:   base,
			want:  InterestSet{"Art", "Travel", "Travel"},
		},
		{
			name:  "counts once per liked post",
			likes: []like{{7, 2, daysAgo(1)}, {7, 3, daysAgo(2)}, {7, 3, daysAgo(3)}},
			set:   InterestSet{"Travel", "Art", "Sports"},
			want:  InterestSet{"Travel", "Art", "Art"},
		},
		{
			name:  "likes outside the activity window are ignored",
			likes: []like{{7, 3, daysAgo(31)}},
			set:   base,
			want:  base,
		},
		{
			name:  "likes exactly at the window edge count",
			likes: []like{{7, 3, daysAgo(30)}},
			set:   base,
			want:  InterestSet{"Art", "Travel", "Travel"},
		},
		{
			name:  "other users' likes are ignored",
			likes: []like{{8, 3, daysAgo(1)}},
			set:   base,
			want:  base,
		},
		{
			name:  "no matching description leaves the set unchanged",
			likes: []like{{7, 4, daysAgo(1)}, {7, 5, daysAgo(1)}, {7, 99, daysAgo(1)}},
			set:   base,
			want:  base,
		},
		{
			name:  "empty set stays empty",
			likes: []like{{7, 1, daysAgo(1)}},
			set:   InterestSet{},
			want:  InterestSet{},
		},
		{
			name:  "short set has no last slot to overwrite",
			likes: []like{{7, 1, daysAgo(1)}},
			set:   InterestSet{"Music", "Travel"},
			want:  InterestSet{"Music", "Travel"},
		},
	}

	e := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			snap := refineFixture(t, tt.likes...)
			input := tt.set.Clone()
			got := e.RefineInterests(snap, 7, input, testNow)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RefineInterests() = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(input, tt.set) {
				t.Errorf("input set modified: %v", input)
			}
		})
	}
}

func TestRefineInterests_MissingLikeColumns(t *testing.T) {
	t.Parallel()

	likes := &dataset.Table{
		Name:    dataset.TableLikes,
		Columns: []string{"id", "posts_id", "liked_by"},
		Rows:    [][]string{{"1", "3", "7"}},
	}
	posts := postsTable(postColumns, post{id: 3, desc: "Travel tips"})
	snap := buildSnapshot(t, posts, interestsTable(), likes)

	e := newTestEngine(t)
	if got := e.RecentlyLiked(snap, 7, testNow); len(got) != 0 {
		t.Errorf("RecentlyLiked() = %v, want empty", got)
	}
	set := InterestSet{"Art", "Music", "Sports"}
	if got := e.RefineInterests(snap, 7, set, testNow); !reflect.DeepEqual(got, set) {
		t.Errorf("RefineInterests() = %v, want unchanged", got)
	}
}

func TestRecentlyLiked_Distinct(t *testing.T) {
	t.Parallel()

	snap := refineFixture(t,
		like{7, 2, daysAgo(1)},
		like{7, 1, daysAgo(2)},
		like{7, 2, daysAgo(3)},
		like{7, 3, daysAgo(45)},
	)
	got := newTestEngine(t).RecentlyLiked(snap, 7, testNow)
	if !reflect.DeepEqual(got, []int64{2, 1}) {
		t.Errorf("RecentlyLiked() = %v, want [2 1]", got)
	}
}
