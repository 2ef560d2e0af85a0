package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

// Export is the canonical serialization format for dependency graphs: the
// node and edge sets handed off to presentation layers and diagram renderers.
//
// Output is deterministic: nodes sorted by ID, edges sorted by (From, To).
type Export struct {
	Root  string `json:"root,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one package in the exported graph.
type Node struct {
	ID       string `json:"id"`
	Expanded bool   `json:"expanded"` // false for filtered/terminal leaf references
}

// Edge is a directed dependency with its opaque version-spec string.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Spec string `json:"spec,omitempty"`
}

// FromGraph converts a built graph to its serialization format.
// The root is recorded so renderers can highlight it.
func FromGraph(g Graph, root string) Export {
	out := Export{Root: root}

	for _, id := range g.NodeSet() {
		_, expanded := g[id]
		out.Nodes = append(out.Nodes, Node{ID: id, Expanded: expanded})
	}

	for _, pkg := range g.Packages() {
		record := g[pkg]
		for _, dep := range record.Names() {
			out.Edges = append(out.Edges, Edge{From: pkg, To: dep, Spec: record[dep]})
		}
	}
	slices.SortFunc(out.Edges, func(a, b Edge) int {
		if a.From != b.From {
			if a.From < b.From {
				return -1
			}
			return 1
		}
		if a.To < b.To {
			return -1
		}
		if a.To > b.To {
			return 1
		}
		return 0
	})

	return out
}

// MarshalExport converts a graph to indented JSON bytes.
func MarshalExport(g Graph, root string) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeExportTo(g, root, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteExportFile writes a graph as JSON to path.
// The file is created with 0644 permissions.
func WriteExportFile(g Graph, root, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeExportTo(g, root, f)
}

func writeExportTo(g Graph, root string, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g, root)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
