// Package traverse implements the breadth-first construction of a package
// dependency graph over a manifest source.
package traverse

import (
	"context"

	"github.com/matzehuels/depscope/pkg/graph"
	"github.com/matzehuels/depscope/pkg/manifest"
	"github.com/matzehuels/depscope/pkg/source"
)

// Options configures a traversal.
type Options struct {
	Filter   Filter               // expansion filter, zero value never skips
	MaxNodes int                  // maximum packages to expand (0 = unlimited)
	Logger   func(string, ...any) // progress/cycle/skip callback (optional)
}

// withDefaults returns a copy of Options with zero values replaced.
func (o Options) withDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Result holds the outcome of one traversal.
type Result struct {
	Root    string      // root package name the traversal was seeded with
	Ref     string      // version/ref the root was fetched at
	Graph   graph.Graph // expanded packages and their dependency records
	Visited int         // packages dequeued and processed exactly once
	Cycles  int         // cycle observations (informational, never an error)
	Skipped int         // packages suppressed by the filter
	Failed  int         // packages whose fetch failed and degraded to an empty record
}

// Builder drives breadth-first traversal over a manifest source.
//
// One Builder may run many traversals; each Build call owns its frontier,
// visit set, and graph exclusively, so no locking discipline is needed.
type Builder struct {
	source source.Source
	opts   Options
}

// New creates a Builder over the given source.
func New(src source.Source, opts Options) *Builder {
	return &Builder{source: src, opts: opts.withDefaults()}
}

// item is one frontier entry: a package awaiting processing and the ref to
// fetch it at.
type item struct {
	pkg string
	ref string
}

// Build constructs the dependency graph reachable from (rootPkg, rootRef).
//
// The traversal is synchronous: each fetch is awaited before the next
// dequeue. Every discovered dependency inherits its parent's ref rather than
// any version constraint it declares - correct semantic-version resolution
// would require selecting a best match across a full release history, which
// is out of scope.
//
// Per-package fetch and parse failures never abort the build: the package is
// recorded with an empty dependency record and the traversal continues. The
// only fatal outcome after the traversal starts is context cancellation,
// checked between dequeue iterations.
func (b *Builder) Build(ctx context.Context, rootPkg, rootRef string) (*Result, error) {
	res := &Result{
		Root:  rootPkg,
		Ref:   rootRef,
		Graph: graph.Graph{},
	}

	frontier := []item{{pkg: rootPkg, ref: rootRef}}
	visited := make(map[string]bool)

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next := frontier[0]
		frontier = frontier[1:]

		if visited[next.pkg] {
			// Duplicate frontier entry: the package was discovered again
			// before its first dequeue. Same cycle bookkeeping as the
			// enqueue-time check below.
			res.Cycles++
			b.opts.Logger("cycle: %s already visited", next.pkg)
			continue
		}
		visited[next.pkg] = true
		res.Visited++

		if b.opts.Filter.ShouldSkip(next.pkg) {
			res.Skipped++
			b.opts.Logger("filtered: %s not expanded", next.pkg)
			continue
		}

		if b.opts.MaxNodes > 0 && len(res.Graph) >= b.opts.MaxNodes {
			b.opts.Logger("node budget reached, not expanding %s", next.pkg)
			continue
		}

		record, err := b.source.Fetch(ctx, next.pkg, next.ref)
		if err != nil {
			// One broken package must not abort the whole build.
			res.Failed++
			res.Graph[next.pkg] = manifest.Record{}
			b.opts.Logger("fetch failed: %s@%s: %v", next.pkg, next.ref, err)
			continue
		}

		res.Graph[next.pkg] = record

		for _, dep := range record.Names() {
			if visited[dep] {
				res.Cycles++
				b.opts.Logger("cycle: %s -> %s revisits a processed package", next.pkg, dep)
				continue
			}
			frontier = append(frontier, item{pkg: dep, ref: next.ref})
		}
	}

	return res, nil
}
