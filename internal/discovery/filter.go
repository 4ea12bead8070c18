package discovery

import (
	"path/filepath"
	"strings"

	"pmtest/internal/scenario"
)

// Filter selects scenarios by name pattern, tag and slowness
type Filter struct {
	Pattern  string
	Tag      string
	SkipSlow bool
}

// NewFilter creates a new Filter
func NewFilter(pattern, tag string, skipSlow bool) *Filter {
	return &Filter{Pattern: pattern, Tag: tag, SkipSlow: skipSlow}
}

// Apply runs every configured filter, keeping suite order
func (f *Filter) Apply(scenarios []scenario.Scenario) []scenario.Scenario {
	selected := f.FilterByName(scenarios, f.Pattern)
	selected = f.FilterByTag(selected, f.Tag)
	if f.SkipSlow {
		selected = f.WithoutSlow(selected)
	}
	return selected
}

// FilterByName filters scenarios by case name or slug using wildcard matching.
// Supports patterns like "*Login Test" or "*navigation*"; matching ignores case.
func (f *Filter) FilterByName(scenarios []scenario.Scenario, pattern string) []scenario.Scenario {
	if pattern == "" {
		return scenarios
	}

	var filtered []scenario.Scenario
	for _, s := range scenarios {
		if matchName(s.Name, pattern) || matchName(s.Slug, pattern) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// FilterByTag keeps scenarios carrying tag
func (f *Filter) FilterByTag(scenarios []scenario.Scenario, tag string) []scenario.Scenario {
	if tag == "" {
		return scenarios
	}

	var filtered []scenario.Scenario
	for _, s := range scenarios {
		if s.HasTag(tag) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// WithoutSlow drops scenarios tagged slow
func (f *Filter) WithoutSlow(scenarios []scenario.Scenario) []scenario.Scenario {
	var filtered []scenario.Scenario
	for _, s := range scenarios {
		if !s.Slow() {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	name = strings.ToLower(name)
	pattern = strings.ToLower(pattern)

	// filepath.Match supports * and ? wildcards
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// Every non-empty part between wildcards must appear in the name
		hasNonEmptyPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	// No wildcards: simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
