// Package graph holds the dependency graph produced by a traversal and the
// reporting/serialization surfaces built on top of it.
package graph

import (
	"slices"

	"github.com/matzehuels/depscope/pkg/manifest"
)

// Graph maps a package name to its direct dependencies as fetched and
// filtered at traversal time. A name that appears in some record's dependency
// list but was filtered from expansion is a terminal leaf reference only and
// never a top-level key.
type Graph map[string]manifest.Record

// Packages returns the expanded package names (top-level keys) in sorted
// order.
func (g Graph) Packages() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NodeSet returns every name the graph references, expanded packages and
// leaf references alike, in sorted order. This is the node set a renderer
// draws.
func (g Graph) NodeSet() []string {
	seen := make(map[string]bool, len(g))
	for name, record := range g {
		seen[name] = true
		for dep := range record {
			seen[dep] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// EdgeCount returns the total number of dependency edges.
func (g Graph) EdgeCount() int {
	n := 0
	for _, record := range g {
		n += len(record)
	}
	return n
}
