// Package session records completed analysis runs so they can be listed and
// compared later.
//
// Each run is stored as one JSON document identified by a random UUID. The
// default backend writes files under ~/.config/depscope/history/.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Run is one completed analysis.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Package   string    `json:"package"`
	Ref       string    `json:"ref"`
	Mode      string    `json:"mode"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	Cycles    int       `json:"cycles"`
	Failed    int       `json:"failed"`
	Output    string    `json:"output,omitempty"`
}

// NewRun creates a run record with a fresh ID and the current time.
func NewRun(pkg, ref, mode string) *Run {
	return &Run{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
		Package:   pkg,
		Ref:       ref,
		Mode:      mode,
	}
}

// Store persists run records.
type Store interface {
	// Append stores a run.
	Append(ctx context.Context, run *Run) error

	// List returns all stored runs, newest first.
	List(ctx context.Context) ([]*Run, error)

	// Clear removes all stored runs.
	Clear(ctx context.Context) error
}
