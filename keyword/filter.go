// Package keyword splits a single line-oriented geosite feed into
// categories by case-insensitive keyword matching.
package keyword

import (
	"sort"
	"strings"
)

// Matcher holds the lowercased keywords of one category.
type Matcher struct {
	keywords []string
}

func NewMatcher(keywords []string) *Matcher {
	m := &Matcher{keywords: make([]string, 0, len(keywords))}
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		m.keywords = append(m.keywords, strings.ToLower(kw))
	}
	return m
}

// Match reports whether line contains any keyword, ignoring case.
func (m *Matcher) Match(line string) bool {
	if len(m.keywords) == 0 {
		return false
	}
	lower := strings.ToLower(line)
	for _, kw := range m.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Select returns the lines of feed matching m, in feed order. Lines are
// returned untouched: no trimming, dedup or validation.
func (m *Matcher) Select(feed []string) []string {
	matched := []string{}
	for _, line := range feed {
		if m.Match(line) {
			matched = append(matched, line)
		}
	}
	return matched
}

// Filter runs every category over feed. Every category gets an entry; one
// without matches maps to an empty slice.
func Filter(feed []string, categories map[string][]string) map[string][]string {
	out := make(map[string][]string, len(categories))
	for name, keywords := range categories {
		out[name] = NewMatcher(keywords).Select(feed)
	}
	return out
}

// Names returns the category names in sorted order.
func Names(categories map[string][]string) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
