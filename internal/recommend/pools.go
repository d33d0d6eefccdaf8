// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package recommend

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/tomtom215/feedrank/internal/dataset"
)

// EngagementScore normalizes and sums the like, comment and share counters.
// Missing counters count as zero.
func (e *Engine) EngagementScore(p *dataset.Post) float64 {
	s := e.config.Scoring
	return float64(p.Likes.Or(0))/s.LikesDivisor +
		float64(p.Comments.Or(0))/s.CommentsDivisor +
		float64(p.Shares.Or(0))/s.SharesDivisor
}

// RecencyScore is the binary recency bonus: RecentScore inside the recency
// window, StaleScore otherwise.
func (e *Engine) RecencyScore(p *dataset.Post, now time.Time) float64 {
	if withinWindow(p, now, e.config.Windows.Recency) {
		return e.config.Scoring.RecentScore
	}
	return e.config.Scoring.StaleScore
}

// TotalScore blends engagement and recency.
func (e *Engine) TotalScore(engagement, recency float64) float64 {
	return e.config.Scoring.EngagementWeight*engagement + e.config.Scoring.RecencyWeight*recency
}

// BuildInterestPool scores posts mentioning any interest label and returns
// the best InterestPool of them, ordered by total score (ties keep table
// order). matched is the number of posts that passed the filter before
// truncation; Merge uses it to choose the merge path.
//
// An empty InterestSet filters nothing: every post is scored.
func (e *Engine) BuildInterestPool(snap *dataset.Snapshot, interests InterestSet, now time.Time) (pool []Candidate, matched int) {
	m := newMatcher(interests)

	pool = make([]Candidate, 0, len(snap.Posts))
	for i := range snap.Posts {
		p := &snap.Posts[i]
		if !m.empty() && !m.any(p.Description.Or("")) {
			continue
		}
		engagement := e.EngagementScore(p)
		recency := e.RecencyScore(p, now)
		total := e.TotalScore(engagement, recency)
		pool = append(pool, Candidate{
			Post:            p,
			Pool:            PoolInterest,
			EngagementScore: lo.ToPtr(engagement),
			RecencyScore:    lo.ToPtr(recency),
			TotalScore:      lo.ToPtr(total),
		})
	}
	matched = len(pool)

	sort.SliceStable(pool, func(i, j int) bool {
		return *pool[i].TotalScore > *pool[j].TotalScore
	})
	return truncate(pool, e.config.Limits.InterestPool), matched
}

// BuildViralPool returns recently created posts ordered by raw likes (ties
// keep table order). When the posts table has no created-at or likes column
// it falls back to the first ViralPool posts in table order, unscored. An
// empty result inside a valid window is not a fallback condition.
func (e *Engine) BuildViralPool(snap *dataset.Snapshot, now time.Time) []Candidate {
	limit := e.config.Limits.ViralPool

	if !snap.PostColumns.CreatedAt.Resolved() || !snap.PostColumns.Likes.Resolved() {
		head := truncate(snap.Posts, limit)
		return lo.Map(head, func(_ dataset.Post, i int) Candidate {
			return Candidate{Post: &snap.Posts[i], Pool: PoolViral}
		})
	}

	pool := make([]Candidate, 0)
	for i := range snap.Posts {
		p := &snap.Posts[i]
		if withinWindow(p, now, e.config.Windows.Viral) {
			pool = append(pool, Candidate{Post: p, Pool: PoolViral})
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Post.Likes.Or(0) > pool[j].Post.Likes.Or(0)
	})
	return truncate(pool, limit)
}

// withinWindow reports whether the post was created at or after now-window.
// Posts without a creation time are never inside a window.
func withinWindow(p *dataset.Post, now time.Time, window time.Duration) bool {
	if !p.CreatedAt.Valid() {
		return false
	}
	return !p.CreatedAt.Value.Before(now.Add(-window))
}

// truncate returns at most n leading elements of s.
func truncate[T any](s []T, n int) []T {
	if n >= 0 && len(s) > n {
		return s[:n:n]
	}
	return s
}
