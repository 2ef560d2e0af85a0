package traverse

import "strings"

// Filter suppresses expansion of packages whose name contains a
// caller-supplied substring. Matching is case-insensitive; the zero value
// (empty pattern) never skips anything.
//
// A filtered package still appears in its parent's edge list - it simply is
// not traversed further and contributes no record of its own to the graph.
type Filter struct {
	pattern string
}

// NewFilter creates a filter for the given substring.
func NewFilter(substring string) Filter {
	return Filter{pattern: strings.ToLower(substring)}
}

// ShouldSkip reports whether the named package must not be expanded.
func (f Filter) ShouldSkip(name string) bool {
	if f.pattern == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), f.pattern)
}
