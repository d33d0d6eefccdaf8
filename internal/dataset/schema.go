// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

// Schema lists, per logical field, the candidate column names handed to
// Table.Resolve in priority order.
type Schema struct {
	Posts     PostSchema     `koanf:"posts"`
	Interests InterestSchema `koanf:"interests"`
	Likes     LikeSchema     `koanf:"likes"`
}

// PostSchema holds candidates for the posts table.
type PostSchema struct {
	ID            []string `koanf:"id"`
	Owner         []string `koanf:"owner"`
	OwnerKind     []string `koanf:"owner_kind"`
	Description   []string `koanf:"description"`
	HasAttachment []string `koanf:"has_attachment"`
	Likes         []string `koanf:"likes"`
	Comments      []string `koanf:"comments"`
	Shares        []string `koanf:"shares"`
	Saves         []string `koanf:"saves"`
	Privacy       []string `koanf:"privacy"`
	CreatedAt     []string `koanf:"created_at"`
	ModifiedAt    []string `koanf:"modified_at"`
}

// InterestSchema holds candidates for the user-interest join table.
type InterestSchema struct {
	User     []string `koanf:"user"`
	Interest []string `koanf:"interest"`
}

// LikeSchema holds candidates for the like-event table.
type LikeSchema struct {
	User      []string `koanf:"user"`
	Post      []string `koanf:"post"`
	CreatedAt []string `koanf:"created_at"`
}

// DefaultSchema returns candidates matching the column names written by the
// dataset generators, with common alternatives after them.
func DefaultSchema() Schema {
	return Schema{
		Posts: PostSchema{
			ID:            []string{"id", "post_id"},
			Owner:         []string{"user_id", "owner"},
			OwnerKind:     []string{"user_type", "owner_type"},
			Description:   []string{"description", "content", "text"},
			HasAttachment: []string{"has_files", "attachment"},
			Likes:         []string{"likes"},
			Comments:      []string{"comments"},
			Shares:        []string{"shares"},
			Saves:         []string{"saves"},
			Privacy:       []string{"privacy"},
			CreatedAt:     []string{"created_at", "date"},
			ModifiedAt:    []string{"modified_at"},
		},
		Interests: InterestSchema{
			User:     []string{"user_id", "user"},
			Interest: []string{"interest"},
		},
		Likes: LikeSchema{
			User:      []string{"liked_by", "user"},
			Post:      []string{"posts_id", "post"},
			CreatedAt: []string{"created_at", "date"},
		},
	}
}

// WithDefaults fills empty candidate lists from DefaultSchema, so a config
// file only needs to name the fields it overrides.
func (s Schema) WithDefaults() Schema {
	d := DefaultSchema()
	fill := func(dst *[]string, def []string) {
		if len(*dst) == 0 {
			*dst = def
		}
	}
	fill(&s.Posts.ID, d.Posts.ID)
	fill(&s.Posts.Owner, d.Posts.Owner)
	fill(&s.Posts.OwnerKind, d.Posts.OwnerKind)
	fill(&s.Posts.Description, d.Posts.Description)
	fill(&s.Posts.HasAttachment, d.Posts.HasAttachment)
	fill(&s.Posts.Likes, d.Posts.Likes)
	fill(&s.Posts.Comments, d.Posts.Comments)
	fill(&s.Posts.Shares, d.Posts.Shares)
	fill(&s.Posts.Saves, d.Posts.Saves)
	fill(&s.Posts.Privacy, d.Posts.Privacy)
	fill(&s.Posts.CreatedAt, d.Posts.CreatedAt)
	fill(&s.Posts.ModifiedAt, d.Posts.ModifiedAt)
	fill(&s.Interests.User, d.Interests.User)
	fill(&s.Interests.Interest, d.Interests.Interest)
	fill(&s.Likes.User, d.Likes.User)
	fill(&s.Likes.Post, d.Likes.Post)
	fill(&s.Likes.CreatedAt, d.Likes.CreatedAt)
	return s
}

// PostColumns are the resolved locators of the posts table.
type PostColumns struct {
	ID            Column `json:"id"`
	Owner         Column `json:"owner"`
	OwnerKind     Column `json:"owner_kind"`
	Description   Column `json:"description"`
	HasAttachment Column `json:"has_attachment"`
	Likes         Column `json:"likes"`
	Comments      Column `json:"comments"`
	Shares        Column `json:"shares"`
	Saves         Column `json:"saves"`
	Privacy       Column `json:"privacy"`
	CreatedAt     Column `json:"created_at"`
	ModifiedAt    Column `json:"modified_at"`
}

// InterestColumns are the resolved locators of the user-interest table.
type InterestColumns struct {
	User     Column `json:"user"`
	Interest Column `json:"interest"`
}

// LikeColumns are the resolved locators of the like-event table.
type LikeColumns struct {
	User      Column `json:"user"`
	Post      Column `json:"post"`
	CreatedAt Column `json:"created_at"`
}

func resolve(t *Table, candidates []string) Column {
	c, _ := t.Resolve(candidates...)
	return c
}

// ResolvePosts locates every post field in t.
func (s PostSchema) ResolvePosts(t *Table) PostColumns {
	return PostColumns{
		ID:            resolve(t, s.ID),
		Owner:         resolve(t, s.Owner),
		OwnerKind:     resolve(t, s.OwnerKind),
		Description:   resolve(t, s.Description),
		HasAttachment: resolve(t, s.HasAttachment),
		Likes:         resolve(t, s.Likes),
		Comments:      resolve(t, s.Comments),
		Shares:        resolve(t, s.Shares),
		Saves:         resolve(t, s.Saves),
		Privacy:       resolve(t, s.Privacy),
		CreatedAt:     resolve(t, s.CreatedAt),
		ModifiedAt:    resolve(t, s.ModifiedAt),
	}
}

// ResolveInterests locates the user and interest fields in t.
func (s InterestSchema) ResolveInterests(t *Table) InterestColumns {
	return InterestColumns{
		User:     resolve(t, s.User),
		Interest: resolve(t, s.Interest),
	}
}

// ResolveLikes locates the like-event fields in t.
func (s LikeSchema) ResolveLikes(t *Table) LikeColumns {
	return LikeColumns{
		User:      resolve(t, s.User),
		Post:      resolve(t, s.Post),
		CreatedAt: resolve(t, s.CreatedAt),
	}
}
