// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package recommend

import (
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/feedrank/internal/dataset"
)

// testNow is the request clock used by every test.
var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(d float64) string {
	return testNow.Add(-time.Duration(d * float64(24*time.Hour))).Format("2006-01-02 15:04:05")
}

// post is one posts-table row; empty strings become empty cells.
type post struct {
	id       int64
	desc     string
	likes    string
	comments string
	shares   string
	created  string
}

var postColumns = []string{"id", "user_id", "description", "likes", "comments", "shares", "created_at"}

func postsTable(columns []string, posts ...post) *dataset.Table {
	t := &dataset.Table{Name: dataset.TablePosts, Columns: columns}
	for _, p := range posts {
		values := map[string]string{
			"id":          strconv.FormatInt(p.id, 10),
			"user_id":     "1",
			"description": p.desc,
			"likes":       p.likes,
			"comments":    p.comments,
			"shares":      p.shares,
			"created_at":  p.created,
		}
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = values[c]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// interests builds the join table from (user, label) pairs.
func interestsTable(pairs ...string) *dataset.Table {
	t := &dataset.Table{Name: dataset.TableInterests, Columns: []string{"id", "user_id", "interest"}}
	for i := 0; i+1 < len(pairs); i += 2 {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i/2 + 1), pairs[i], pairs[i+1]})
	}
	return t
}

// like is one like-table row.
type like struct {
	user    int64
	post    int64
	created string
}

func likesTable(likes ...like) *dataset.Table {
	t := &dataset.Table{Name: dataset.TableLikes, Columns: []string{"id", "posts_id", "liked_by", "created_at"}}
	for i, l := range likes {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(l.post, 10),
			strconv.FormatInt(l.user, 10),
			l.created,
		})
	}
	return t
}

func buildSnapshot(t *testing.T, posts, interests, likes *dataset.Table) *dataset.Snapshot {
	t.Helper()
	if interests == nil {
		interests = interestsTable()
	}
	if likes == nil {
		likes = likesTable()
	}
	snap, err := dataset.Build(dataset.Tables{Posts: posts, Interests: interests, Likes: likes},
		dataset.BuildOptions{Location: time.UTC, Version: 1, LoadedAt: testNow})
	if err != nil {
		t.Fatalf("dataset.Build() error = %v", err)
	}
	return snap
}

func newTestEngine(t *testing.T, mutate ...func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	for _, m := range mutate {
		m(cfg)
	}
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e.WithClock(func() time.Time { return testNow })
}

func noCache(c *Config) { c.Cache.Enabled = false }

func postIDs(cs []Candidate) []int64 {
	out := make([]int64, len(cs))
	for i, c := range cs {
		out[i] = c.Post.ID
	}
	return out
}

func recIDs(rs []Recommendation) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.PostID
	}
	return out
}
