// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

import "time"

// Post is one row of the posts table.
type Post struct {
	// Row is the 0-based position in the source table.
	Row int

	ID            int64
	OwnerID       Field[int64]
	OwnerKind     Field[string] // "user" or "page"
	Description   Field[string]
	HasAttachment Field[bool]
	Likes         Field[int64]
	Comments      Field[int64]
	Shares        Field[int64]
	Saves         Field[int64]
	Private       Field[bool]
	CreatedAt     Field[time.Time]
	ModifiedAt    Field[time.Time]
}

// InterestAssignment is one row of the user-interest join table.
type InterestAssignment struct {
	UserID   Field[int64]
	Interest Field[string]
}

// LikeEvent is one row of the like-event table.
type LikeEvent struct {
	UserID    Field[int64]
	PostID    Field[int64]
	CreatedAt Field[time.Time]
}
