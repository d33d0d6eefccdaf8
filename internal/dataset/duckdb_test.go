// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const (
	postsCSV = `id,user_id,user_type,description,has_files,likes,comments,shares,saves,privacy,created_at,modified_at
1,10,user,"Live music, tonight",0,100,5,2,1,0,2024-05-30 10:00:00,2024-05-30 10:00:00
2,11,page,,1,,0,0,0,1,2024-01-01 00:00:00,
3,12,user,Travel diary,0,40,1,1,0,0,,
`
	interestsCSV = `id,user_id,interest,created_at,modified_at
1,10,Music,2024-01-01 00:00:00,2024-01-01 00:00:00
2,10,Travel,2024-01-01 00:00:00,2024-01-01 00:00:00
3,11,Music,2024-01-01 00:00:00,2024-01-01 00:00:00
`
	likesCSV = `id,posts_id,liked_by,notification_id,created_at,modified_at
1,1,10,,2024-05-31 08:00:00,2024-05-31 08:00:00
2,3,11,7,2024-05-20 08:00:00,2024-05-20 08:00:00
`
)

// writeDataset writes the three CSV fixtures into a temp dir and returns
// their paths.
func writeDataset(t *testing.T, posts, interests, likes string) Paths {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return p
	}
	return Paths{
		Posts:     write("posts.csv", posts),
		Interests: write("users_has_interests.csv", interests),
		Likes:     write("posts_has_likes.csv", likes),
	}
}

func newTestDuckDBSource(t *testing.T, paths Paths) *DuckDBSource {
	t.Helper()
	src, err := NewDuckDBSource(paths, WithQueryTimeout(10*time.Second))
	if err != nil {
		t.Fatalf("NewDuckDBSource() error = %v", err)
	}
	t.Cleanup(func() { _ = src.Close() })
	return src
}

func TestDuckDBSource_Load(t *testing.T) {
	t.Parallel()

	src := newTestDuckDBSource(t, writeDataset(t, postsCSV, interestsCSV, likesCSV))
	ctx := context.Background()

	posts, err := src.Load(ctx, TablePosts)
	if err != nil {
		t.Fatalf("Load(posts) error = %v", err)
	}
	if posts.Len() != 3 {
		t.Fatalf("posts rows = %d, want 3", posts.Len())
	}
	if len(posts.Columns) != 12 || posts.Columns[3] != "description" {
		t.Errorf("posts columns = %v", posts.Columns)
	}
	if got := posts.Rows[0][3]; got != "Live music, tonight" {
		t.Errorf("quoted description = %q", got)
	}
	if got := posts.Rows[1][5]; got != "" {
		t.Errorf("empty likes cell = %q, want empty", got)
	}

	likes, err := src.Load(ctx, TableLikes)
	if err != nil {
		t.Fatalf("Load(likes) error = %v", err)
	}
	if likes.Name != TableLikes || likes.Len() != 2 {
		t.Errorf("likes = %s with %d rows", likes.Name, likes.Len())
	}
}

func TestDuckDBSource_Snapshot(t *testing.T) {
	t.Parallel()

	src := newTestDuckDBSource(t, writeDataset(t, postsCSV, interestsCSV, likesCSV))
	tables, err := LoadTables(context.Background(), src)
	if err != nil {
		t.Fatalf("LoadTables() error = %v", err)
	}
	snap, err := Build(tables, BuildOptions{Location: time.UTC})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := snap.InterestRanking(); len(got) != 2 || got[0] != "Music" {
		t.Errorf("InterestRanking() = %v", got)
	}
	if got := snap.LikesByUser(11); len(got) != 1 || got[0].PostID.Or(0) != 3 {
		t.Errorf("LikesByUser(11) = %+v", got)
	}
}

func TestDuckDBSource_MissingFile(t *testing.T) {
	t.Parallel()

	paths := writeDataset(t, postsCSV, interestsCSV, likesCSV)
	paths.Likes = filepath.Join(t.TempDir(), "nope.csv")
	src := newTestDuckDBSource(t, paths)

	_, err := LoadTables(context.Background(), src)
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("LoadTables() error = %v, want ErrLoad", err)
	}
}

func TestDuckDBSource_UnconfiguredTable(t *testing.T) {
	t.Parallel()

	src := newTestDuckDBSource(t, Paths{})
	if _, err := src.Load(context.Background(), TablePosts); !errors.Is(err, ErrLoad) {
		t.Errorf("Load() error = %v, want ErrLoad", err)
	}
}

func TestDuckDBSource_RemoteWithoutFetcher(t *testing.T) {
	t.Parallel()

	src := newTestDuckDBSource(t, Paths{Posts: "https://example.com/posts.csv"})
	if _, err := src.Load(context.Background(), TablePosts); !errors.Is(err, ErrLoad) {
		t.Errorf("Load() error = %v, want ErrLoad", err)
	}
}

func TestDuckDBSource_BadTimestampFailsBuild(t *testing.T) {
	t.Parallel()

	badLikes := likesCSV + "3,1,12,,not a date,\n"
	src := newTestDuckDBSource(t, writeDataset(t, postsCSV, interestsCSV, badLikes))

	tables, err := LoadTables(context.Background(), src)
	if err != nil {
		t.Fatalf("LoadTables() error = %v", err)
	}
	if _, err := Build(tables, BuildOptions{Location: time.UTC}); !errors.Is(err, ErrTimestampParse) {
		t.Errorf("Build() error = %v, want ErrTimestampParse", err)
	}
}

func TestQuoting(t *testing.T) {
	t.Parallel()

	if got := quoteLiteral("it's.csv"); got != "'it''s.csv'" {
		t.Errorf("quoteLiteral = %s", got)
	}
	if got := quoteIdent(`feed.posts`); got != `"feed"."posts"` {
		t.Errorf("quoteIdent = %s", got)
	}
	if got := quoteIdent(`we"ird`); got != `"we""ird"` {
		t.Errorf("quoteIdent = %s", got)
	}
	if !isRemote("HTTPS://x/y.csv") || isRemote("/data/posts.csv") {
		t.Error("isRemote misclassified")
	}
}
