// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package recommend

import (
	"errors"

	"github.com/tomtom215/feedrank/internal/dataset"
)

// ErrNoSnapshot is returned when no dataset snapshot has been loaded.
var ErrNoSnapshot = errors.New("no dataset snapshot loaded")

// InterestSet is an ordered list of at most three interest labels.
type InterestSet []string

// Clone returns an independent copy. A nil set clones to an empty one so it
// serializes as [].
func (s InterestSet) Clone() InterestSet {
	out := make(InterestSet, len(s))
	copy(out, s)
	return out
}

// Pool identifies which candidate pool produced a candidate.
type Pool uint8

const (
	// PoolInterest marks interest-relevant candidates.
	PoolInterest Pool = iota + 1
	// PoolViral marks globally popular candidates.
	PoolViral
)

// String returns the pool name used in logs and metrics.
func (p Pool) String() string {
	switch p {
	case PoolInterest:
		return "interest"
	case PoolViral:
		return "viral"
	default:
		return "unknown"
	}
}

// Path is the merge strategy a request took.
type Path string

const (
	// PathPersonalized means at least one post matched an interest.
	PathPersonalized Path = "personalized"
	// PathViralOnly means the output is the viral pool alone.
	PathViralOnly Path = "viral_only"
)

// Candidate is a post annotated with the scores of the pool that produced
// it. A nil score was never computed, which is distinct from zero.
type Candidate struct {
	Post *dataset.Post
	Pool Pool

	EngagementScore *float64
	RecencyScore    *float64
	TotalScore      *float64
	FinalScore      *float64
}

// Recommendation is one explained output item.
type Recommendation struct {
	PostID            int64    `json:"post_id"`
	Description       string   `json:"description"`
	Likes             int64    `json:"likes"`
	Comments          int64    `json:"comments"`
	Shares            int64    `json:"shares"`
	CreatedAt         string   `json:"created_at"`
	Reason            string   `json:"reason"`
	MatchesInterests  bool     `json:"matches_interests"`
	MatchingInterests []string `json:"matching_interests"`
}

// Response is the feed returned for one user.
type Response struct {
	UserID          int64            `json:"user_id"`
	Interests       InterestSet      `json:"interests"`
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`

	// Path and SnapshotVersion describe how the response was produced. They
	// are reported in logs and response metadata, not in the feed body.
	Path            Path   `json:"-"`
	SnapshotVersion uint64 `json:"-"`
	CacheHit        bool   `json:"-"`
}

// Truncate returns a copy of r holding at most n recommendations.
func (r *Response) Truncate(n int) *Response {
	out := *r
	if n > 0 && n < len(r.Recommendations) {
		out.Recommendations = r.Recommendations[:n:n]
	}
	out.Count = len(out.Recommendations)
	return &out
}
