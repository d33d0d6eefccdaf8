// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Scoring holds the normalization divisors, weights and boosts.
	Scoring ScoringConfig `koanf:"scoring" json:"scoring"`

	// Windows holds the trailing time windows.
	Windows WindowsConfig `koanf:"windows" json:"windows"`

	// Limits holds set and pool sizes.
	Limits LimitsConfig `koanf:"limits" json:"limits"`

	// Cache configures the per-snapshot response cache.
	Cache CacheConfig `koanf:"cache" json:"cache"`
}

// ScoringConfig holds the constants of the scoring functions.
type ScoringConfig struct {
	// LikesDivisor, CommentsDivisor and SharesDivisor normalize each counter
	// so that a typical maximum maps to about 1.0.
	LikesDivisor    float64 `koanf:"likes_divisor" json:"likes_divisor"`
	CommentsDivisor float64 `koanf:"comments_divisor" json:"comments_divisor"`
	SharesDivisor   float64 `koanf:"shares_divisor" json:"shares_divisor"`

	// EngagementWeight and RecencyWeight combine into the total score.
	EngagementWeight float64 `koanf:"engagement_weight" json:"engagement_weight"`
	RecencyWeight    float64 `koanf:"recency_weight" json:"recency_weight"`

	// RecentScore applies to posts inside the recency window, StaleScore to
	// all others (including posts with no creation time).
	RecentScore float64 `koanf:"recent_score" json:"recent_score"`
	StaleScore  float64 `koanf:"stale_score" json:"stale_score"`

	// InterestBoost multiplies the total score of interest-pool candidates
	// in the merge step.
	InterestBoost float64 `koanf:"interest_boost" json:"interest_boost"`

	// ViralFallbackScore is the final score of viral candidates when the
	// posts table has no likes column.
	ViralFallbackScore float64 `koanf:"viral_fallback_score" json:"viral_fallback_score"`
}

// WindowsConfig holds the trailing windows, measured back from the request
// clock.
type WindowsConfig struct {
	// Recency decides the recency score of interest-pool candidates.
	Recency time.Duration `koanf:"recency" json:"recency"`

	// Viral bounds the creation time of viral-pool candidates.
	Viral time.Duration `koanf:"viral" json:"viral"`

	// Activity bounds the like events used to refine interests.
	Activity time.Duration `koanf:"activity" json:"activity"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// Interests is the InterestSet size (at most 3).
	Interests int `koanf:"interests" json:"interests"`

	// InterestPool and ViralPool cap each candidate pool.
	InterestPool int `koanf:"interest_pool" json:"interest_pool"`
	ViralPool    int `koanf:"viral_pool" json:"viral_pool"`

	// MaxResults caps the merged output (at most 100).
	MaxResults int `koanf:"max_results" json:"max_results"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled" json:"enabled"`
	TTL        time.Duration `koanf:"ttl" json:"ttl"`
	MaxEntries int           `koanf:"max_entries" json:"max_entries"`
}

// Hard limits of the response shape.
const (
	MaxInterests = 3
	MaxResults   = 100
)

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			LikesDivisor:       1000,
			CommentsDivisor:    500,
			SharesDivisor:      200,
			EngagementWeight:   0.7,
			RecencyWeight:      0.3,
			RecentScore:        1.0,
			StaleScore:         0.5,
			InterestBoost:      1.5,
			ViralFallbackScore: 1.0,
		},
		Windows: WindowsConfig{
			Recency:  7 * 24 * time.Hour,
			Viral:    7 * 24 * time.Hour,
			Activity: 30 * 24 * time.Hour,
		},
		Limits: LimitsConfig{
			Interests:    MaxInterests,
			InterestPool: 50,
			ViralPool:    50,
			MaxResults:   MaxResults,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        time.Minute,
			MaxEntries: 10000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	s := c.Scoring
	if s.LikesDivisor <= 0 {
		return fmt.Errorf("scoring.likes_divisor must be positive, got %f", s.LikesDivisor)
	}
	if s.CommentsDivisor <= 0 {
		return fmt.Errorf("scoring.comments_divisor must be positive, got %f", s.CommentsDivisor)
	}
	if s.SharesDivisor <= 0 {
		return fmt.Errorf("scoring.shares_divisor must be positive, got %f", s.SharesDivisor)
	}
	if s.EngagementWeight < 0 || s.RecencyWeight < 0 {
		return fmt.Errorf("scoring weights must be non-negative, got %f and %f", s.EngagementWeight, s.RecencyWeight)
	}
	if s.InterestBoost <= 0 {
		return fmt.Errorf("scoring.interest_boost must be positive, got %f", s.InterestBoost)
	}

	if c.Windows.Recency <= 0 {
		return fmt.Errorf("windows.recency must be positive, got %v", c.Windows.Recency)
	}
	if c.Windows.Viral <= 0 {
		return fmt.Errorf("windows.viral must be positive, got %v", c.Windows.Viral)
	}
	if c.Windows.Activity <= 0 {
		return fmt.Errorf("windows.activity must be positive, got %v", c.Windows.Activity)
	}

	if c.Limits.Interests < 1 || c.Limits.Interests > MaxInterests {
		return fmt.Errorf("limits.interests must be in [1, %d], got %d", MaxInterests, c.Limits.Interests)
	}
	if c.Limits.InterestPool < 1 {
		return fmt.Errorf("limits.interest_pool must be positive, got %d", c.Limits.InterestPool)
	}
	if c.Limits.ViralPool < 1 {
		return fmt.Errorf("limits.viral_pool must be positive, got %d", c.Limits.ViralPool)
	}
	if c.Limits.MaxResults < 1 || c.Limits.MaxResults > MaxResults {
		return fmt.Errorf("limits.max_results must be in [1, %d], got %d", MaxResults, c.Limits.MaxResults)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when the cache is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive when the cache is enabled, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
