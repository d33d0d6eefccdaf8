// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

// Package recommend ranks posts for a user by blending inferred interests
// with global popularity.
//
// # Pipeline
//
// A request runs six steps over one immutable dataset.Snapshot:
//
//  1. InferInterests takes the user's recorded interest labels, filling up
//     to three from the global frequency ranking.
//  2. RefineInterests counts which labels appear in posts the user liked
//     within the activity window and puts the most frequent one in the last
//     slot.
//  3. BuildInterestPool keeps posts whose description mentions any label and
//     scores them on engagement and recency.
//  4. BuildViralPool keeps recent posts ordered by raw likes.
//  5. Merge boosts the interest pool, appends the viral pool, removes
//     duplicate posts (first occurrence wins) and sorts by final score. When
//     no post matched an interest, the viral pool is returned as is.
//  6. Format resolves display defaults and explains every item.
//
// # Determinism
//
// The engine has no randomness. Given the same snapshot, user and clock
// reading, Recommend returns identical output. All sorts are stable so ties
// keep source table order.
//
// # Matching
//
// Interest labels are matched as literal, case-insensitive substrings of the
// post description. Labels are never interpreted as patterns.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	resp, err := engine.Recommend(ctx, store.Current(), userID, 0)
package recommend
