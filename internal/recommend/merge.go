// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package recommend

import (
	"sort"

	"github.com/samber/lo"

	"github.com/tomtom215/feedrank/internal/dataset"
)

// Merge combines both pools into the ranked output and reports the path
// taken.
//
// When matched > 0, interest candidates get final = total × InterestBoost
// and viral candidates get final = raw likes (ViralFallbackScore when the
// posts table has no likes column). The interest pool is placed first so it
// wins deduplication; the result is stably sorted by final score and cut to
// MaxResults.
//
// When interests is empty or matched == 0 the viral pool is returned in its
// built order, deduplicated by post ID, cut to ViralPool, with no final
// score attached. An empty InterestSet filters nothing in BuildInterestPool,
// so matched alone cannot decide the path.
//
// Candidates are copied; the input pools are not modified.
func (e *Engine) Merge(snap *dataset.Snapshot, interests InterestSet, interestPool []Candidate, matched int, viralPool []Candidate) ([]Candidate, Path) {
	if len(interests) == 0 || matched == 0 {
		viral := lo.UniqBy(viralPool, func(c Candidate) int64 {
			return c.Post.ID
		})
		return truncate(viral, e.config.Limits.ViralPool), PathViralOnly
	}

	hasLikes := snap.PostColumns.Likes.Resolved()
	boost := e.config.Scoring.InterestBoost

	merged := make([]Candidate, 0, len(interestPool)+len(viralPool))
	for _, c := range interestPool {
		c.FinalScore = lo.ToPtr(*c.TotalScore * boost)
		merged = append(merged, c)
	}
	for _, c := range viralPool {
		final := e.config.Scoring.ViralFallbackScore
		if hasLikes {
			final = float64(c.Post.Likes.Or(0))
		}
		c.FinalScore = lo.ToPtr(final)
		merged = append(merged, c)
	}

	merged = lo.UniqBy(merged, func(c Candidate) int64 {
		return c.Post.ID
	})
	sort.SliceStable(merged, func(i, j int) bool {
		return *merged[i].FinalScore > *merged[j].FinalScore
	})
	return truncate(merged, e.config.Limits.MaxResults), PathPersonalized
}
