// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package recommend

import (
	"strings"

	"github.com/samber/lo"
)

// matcher tests interest labels against post text. Labels are lower-cased
// once per request instead of once per post.
type matcher struct {
	labels  []string
	lowered []string
}

func newMatcher(labels []string) matcher {
	return matcher{
		labels: labels,
		lowered: lo.Map(labels, func(l string, _ int) string {
			return strings.ToLower(l)
		}),
	}
}

// empty reports whether there is nothing to match.
func (m matcher) empty() bool {
	return len(m.labels) == 0
}

// any reports whether text contains at least one label.
func (m matcher) any(text string) bool {
	if text == "" {
		return false
	}
	lt := strings.ToLower(text)
	_, found := lo.Find(m.lowered, func(l string) bool {
		return l != "" && strings.Contains(lt, l)
	})
	return found
}

// matches returns the labels contained in text, in set order. Duplicate
// labels are reported once.
func (m matcher) matches(text string) []string {
	out := []string{}
	if text == "" {
		return out
	}
	lt := strings.ToLower(text)
	for i, l := range m.lowered {
		if l != "" && strings.Contains(lt, l) && !lo.Contains(out, m.labels[i]) {
			out = append(out, m.labels[i])
		}
	}
	return out
}
