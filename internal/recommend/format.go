// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package recommend

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/tomtom215/feedrank/internal/dataset"
)

// Display defaults for fields the dataset cannot provide.
const (
	NoDescription = "No description available"
	UnknownDate   = "Unknown date"

	ReasonPopular   = "Popular post with high engagement"
	reasonInterests = "Matches your interests in "
)

// createdAtLayout matches Python's str(datetime), which the dataset producer
// writes; fractional seconds are added only when non-zero.
const (
	createdAtLayout         = "2006-01-02 15:04:05"
	createdAtFractionLayout = "2006-01-02 15:04:05.000000"
)

// Format turns ranked candidates into the explained response. Match flags are
// recomputed against the refined set for every candidate, since viral
// candidates were never tested.
func (e *Engine) Format(userID int64, interests InterestSet, candidates []Candidate) *Response {
	m := newMatcher(interests)

	recs := lo.Map(candidates, func(c Candidate, _ int) Recommendation {
		p := c.Post
		desc := p.Description.Or("")
		matching := m.matches(desc)

		rec := Recommendation{
			PostID:            p.ID,
			Description:       lo.Ternary(desc == "", NoDescription, desc),
			Likes:             p.Likes.Or(0),
			Comments:          p.Comments.Or(0),
			Shares:            p.Shares.Or(0),
			CreatedAt:         formatCreatedAt(p.CreatedAt),
			MatchesInterests:  len(matching) > 0,
			MatchingInterests: matching,
			Reason:            ReasonPopular,
		}
		if rec.MatchesInterests {
			rec.Reason = reasonInterests + strings.Join(matching, ", ")
		}
		return rec
	})

	return &Response{
		UserID:          userID,
		Interests:       interests.Clone(),
		Recommendations: recs,
		Count:           len(recs),
	}
}

func formatCreatedAt(f dataset.Field[time.Time]) string {
	if !f.Valid() {
		return UnknownDate
	}
	if f.Value.Nanosecond() != 0 {
		return f.Value.Format(createdAtFractionLayout)
	}
	return f.Value.Format(createdAtLayout)
}
