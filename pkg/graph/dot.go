package graph

import (
	"bytes"
	"fmt"
)

// ToDOT converts an exported graph to Graphviz DOT format.
//
// The root node is emphasized, leaf references (nodes that were never
// expanded) are rendered with dashed outlines, and edges are labeled with
// their version-spec string when one was isolated.
func ToDOT(e Export) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range e.Nodes {
		attrs := fmt.Sprintf("label=%q", n.ID)
		switch {
		case n.ID == e.Root:
			attrs += ", style=\"rounded,filled,bold\", fillcolor=lightyellow"
		case !n.Expanded:
			attrs += ", style=\"rounded,filled,dashed\", fillcolor=lightgrey"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, attrs)
	}

	buf.WriteString("\n")
	for _, e := range e.Edges {
		if e.Spec != "" && len(e.Spec) <= 24 {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q, fontsize=10];\n", e.From, e.To, e.Spec)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}
