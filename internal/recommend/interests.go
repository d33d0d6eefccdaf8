// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package recommend

import (
	"time"

	"github.com/samber/lo"

	"github.com/tomtom215/feedrank/internal/dataset"
)

// InferInterests derives the user's InterestSet from the interest table.
//
// With k recorded labels: k >= 3 keeps the first three in table order;
// otherwise the recorded labels are kept and the most frequent global labels
// not already present are appended until the set is full. A table without
// user or interest columns yields an empty set.
func (e *Engine) InferInterests(snap *dataset.Snapshot, userID int64) InterestSet {
	if !snap.HasInterestColumns() {
		return InterestSet{}
	}
	size := e.config.Limits.Interests

	recorded := snap.UserInterests(userID)
	if len(recorded) >= size {
		return InterestSet(recorded[:size]).Clone()
	}

	set := InterestSet(recorded).Clone()
	for _, label := range snap.InterestRanking() {
		if len(set) >= size {
			break
		}
		if !lo.Contains(set, label) {
			set = append(set, label)
		}
	}
	return set
}

// RecentlyLiked returns the distinct IDs of posts the user liked at or after
// now minus the activity window, in table order. It is empty when the like
// table lacks the user, post or timestamp column.
func (e *Engine) RecentlyLiked(snap *dataset.Snapshot, userID int64, now time.Time) []int64 {
	if !snap.HasLikeColumns() {
		return nil
	}
	since := now.Add(-e.config.Windows.Activity)

	recent := lo.Filter(snap.LikesByUser(userID), func(ev dataset.LikeEvent, _ int) bool {
		return ev.PostID.Valid() && ev.CreatedAt.Valid() && !ev.CreatedAt.Value.Before(since)
	})
	return lo.Uniq(lo.Map(recent, func(ev dataset.LikeEvent, _ int) int64 {
		return ev.PostID.Value
	}))
}

// RefineInterests adjusts the set using recent like activity. Each label is
// counted once per recently liked post whose description contains it; the
// most frequent label (ties to the first encountered) replaces the last slot.
// The set is returned unchanged when there is no recent activity or no label
// matched.
//
// The winning label always comes from the set, so a set shorter than the
// configured size has no last slot to overwrite and is returned unchanged.
func (e *Engine) RefineInterests(snap *dataset.Snapshot, userID int64, set InterestSet, now time.Time) InterestSet {
	if len(set) == 0 {
		return set
	}
	liked := e.RecentlyLiked(snap, userID, now)
	if len(liked) == 0 {
		return set
	}

	m := newMatcher(set)
	counts := make(map[string]int, len(set))
	var order []string
	for _, id := range liked {
		post, ok := snap.Post(id)
		if !ok || !post.Description.Valid() {
			continue
		}
		for _, label := range m.matches(post.Description.Value) {
			if counts[label] == 0 {
				order = append(order, label)
			}
			counts[label]++
		}
	}
	if len(order) == 0 {
		return set
	}

	best := order[0]
	for _, label := range order[1:] {
		if counts[label] > counts[best] {
			best = label
		}
	}

	last := e.config.Limits.Interests - 1
	if len(set) <= last {
		return set
	}
	out := set.Clone()
	out[last] = best
	return out
}
