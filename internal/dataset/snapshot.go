// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Table names used by sources, metrics and status output.
const (
	TablePosts     = "posts"
	TableInterests = "interests"
	TableLikes     = "likes"
)

// Tables groups the raw tables a snapshot is built from.
type Tables struct {
	Posts     *Table
	Interests *Table
	Likes     *Table
}

// BuildOptions controls snapshot construction.
type BuildOptions struct {
	Schema Schema

	// Location interprets timestamps that carry no offset. Default: time.Local.
	Location *time.Location

	// Version is stamped on the snapshot; the Store assigns increasing values.
	Version uint64

	// LoadedAt defaults to time.Now().
	LoadedAt time.Time
}

// Snapshot is an immutable, indexed view of one load of the dataset. It is
// shared by concurrent requests without locking; nothing mutates it after
// Build returns.
type Snapshot struct {
	ID       string
	Version  uint64
	LoadedAt time.Time

	// Posts in source table order.
	Posts []Post

	PostColumns     PostColumns
	InterestColumns InterestColumns
	LikeColumns     LikeColumns

	postIndex       map[int64]int
	userInterests   map[int64][]string
	interestRanking []string
	likesByUser     map[int64][]LikeEvent
	rows            map[string]int
}

// Build parses and indexes raw tables into a Snapshot.
//
//nolint:gocritic // hugeParam: tables is a small struct of pointers
func Build(tables Tables, opts BuildOptions) (*Snapshot, error) {
	if tables.Posts == nil || tables.Interests == nil || tables.Likes == nil {
		return nil, loadErrorf("posts, interests and likes tables are all required")
	}
	schema := opts.Schema.WithDefaults()
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	loadedAt := opts.LoadedAt
	if loadedAt.IsZero() {
		loadedAt = time.Now()
	}

	s := &Snapshot{
		ID:              uuid.New().String(),
		Version:         opts.Version,
		LoadedAt:        loadedAt,
		PostColumns:     schema.Posts.ResolvePosts(tables.Posts),
		InterestColumns: schema.Interests.ResolveInterests(tables.Interests),
		LikeColumns:     schema.Likes.ResolveLikes(tables.Likes),
		rows: map[string]int{
			TablePosts:     tables.Posts.Len(),
			TableInterests: tables.Interests.Len(),
			TableLikes:     tables.Likes.Len(),
		},
	}

	if err := s.indexPosts(tables.Posts, loc); err != nil {
		return nil, fmt.Errorf("index posts: %w", err)
	}
	if err := s.indexInterests(tables.Interests, loc); err != nil {
		return nil, fmt.Errorf("index interests: %w", err)
	}
	if err := s.indexLikes(tables.Likes, loc); err != nil {
		return nil, fmt.Errorf("index likes: %w", err)
	}
	return s, nil
}

func (s *Snapshot) indexPosts(t *Table, loc *time.Location) error {
	cols := s.PostColumns
	if !cols.ID.Resolved() {
		return loadErrorf("table %s has no post id column (columns: %v)", t.Name, t.Columns)
	}

	r := &cellReader{table: t, loc: loc}
	s.Posts = make([]Post, 0, len(t.Rows))
	s.postIndex = make(map[int64]int, len(t.Rows))

	for i := range t.Rows {
		id := r.count(i, cols.ID)
		if !id.Valid() && r.err == nil {
			r.fail(i, cols.ID, "", fmt.Errorf("%w: missing post id", ErrLoad))
		}
		p := Post{
			Row:           i,
			ID:            id.Value,
			OwnerID:       r.count(i, cols.Owner),
			OwnerKind:     r.text(i, cols.OwnerKind),
			Description:   r.text(i, cols.Description),
			HasAttachment: r.flag(i, cols.HasAttachment),
			Likes:         r.count(i, cols.Likes),
			Comments:      r.count(i, cols.Comments),
			Shares:        r.count(i, cols.Shares),
			Saves:         r.count(i, cols.Saves),
			Private:       r.flag(i, cols.Privacy),
			CreatedAt:     r.timestamp(i, cols.CreatedAt),
			ModifiedAt:    r.timestamp(i, cols.ModifiedAt),
		}
		if r.err != nil {
			return r.err
		}
		if _, dup := s.postIndex[p.ID]; !dup {
			s.postIndex[p.ID] = len(s.Posts)
		}
		s.Posts = append(s.Posts, p)
	}
	return nil
}

func (s *Snapshot) indexInterests(t *Table, loc *time.Location) error {
	cols := s.InterestColumns
	r := &cellReader{table: t, loc: loc}
	s.userInterests = make(map[int64][]string)

	counts := make(map[string]int)
	var firstSeen []string

	for i := range t.Rows {
		a := InterestAssignment{
			UserID:   r.count(i, cols.User),
			Interest: r.text(i, cols.Interest),
		}
		if r.err != nil {
			return r.err
		}
		if !a.Interest.Valid() {
			continue
		}
		label := a.Interest.Value
		if _, seen := counts[label]; !seen {
			firstSeen = append(firstSeen, label)
		}
		counts[label]++
		if a.UserID.Valid() {
			s.userInterests[a.UserID.Value] = append(s.userInterests[a.UserID.Value], label)
		}
	}

	// Stable sort keeps first-seen order among equal counts.
	ranking := append([]string(nil), firstSeen...)
	sort.SliceStable(ranking, func(a, b int) bool {
		return counts[ranking[a]] > counts[ranking[b]]
	})
	s.interestRanking = ranking
	return nil
}

func (s *Snapshot) indexLikes(t *Table, loc *time.Location) error {
	cols := s.LikeColumns
	r := &cellReader{table: t, loc: loc}
	s.likesByUser = make(map[int64][]LikeEvent)

	for i := range t.Rows {
		ev := LikeEvent{
			UserID:    r.count(i, cols.User),
			PostID:    r.count(i, cols.Post),
			CreatedAt: r.timestamp(i, cols.CreatedAt),
		}
		if r.err != nil {
			return r.err
		}
		if ev.UserID.Valid() {
			s.likesByUser[ev.UserID.Value] = append(s.likesByUser[ev.UserID.Value], ev)
		}
	}
	return nil
}

// HasInterestColumns reports whether both the user and interest columns of
// the join table resolved.
func (s *Snapshot) HasInterestColumns() bool {
	return s.InterestColumns.User.Resolved() && s.InterestColumns.Interest.Resolved()
}

// HasLikeColumns reports whether the like table can answer "which posts did
// this user like since t".
func (s *Snapshot) HasLikeColumns() bool {
	return s.LikeColumns.User.Resolved() && s.LikeColumns.Post.Resolved() && s.LikeColumns.CreatedAt.Resolved()
}

// UserInterests returns the user's recorded labels, trimmed, in table order.
// The returned slice must not be modified.
func (s *Snapshot) UserInterests(userID int64) []string {
	return s.userInterests[userID]
}

// InterestRanking returns every label ordered by descending global frequency,
// ties in first-seen order. The returned slice must not be modified.
func (s *Snapshot) InterestRanking() []string {
	return s.interestRanking
}

// LikesByUser returns the user's like events in table order.
// The returned slice must not be modified.
func (s *Snapshot) LikesByUser(userID int64) []LikeEvent {
	return s.likesByUser[userID]
}

// Post returns the first post with the given ID.
func (s *Snapshot) Post(id int64) (*Post, bool) {
	i, ok := s.postIndex[id]
	if !ok {
		return nil, false
	}
	return &s.Posts[i], true
}

// Rows returns the row count of each source table.
func (s *Snapshot) Rows() map[string]int {
	out := make(map[string]int, len(s.rows))
	for k, v := range s.rows {
		out[k] = v
	}
	return out
}
