// Package source abstracts where dependency data comes from: a remote
// manifest-hosting API or a local fixture file with a flat adjacency list.
//
// The variant is selected once at startup from the validated config mode;
// the traversal loop only ever sees the Source interface.
package source

import (
	"context"

	"github.com/matzehuels/depscope/pkg/manifest"
)

// Source retrieves the direct dependencies of one package at a version/ref.
type Source interface {
	// Fetch returns the dependency record for pkg at ref.
	// Absence upstream maps to a not-found error; the traversal downgrades
	// any fetch error to an empty record and continues.
	Fetch(ctx context.Context, pkg, ref string) (manifest.Record, error)
}
