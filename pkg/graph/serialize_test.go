package graph

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/depscope/pkg/manifest"
)

func TestFromGraph(t *testing.T) {
	g := Graph{
		"root": manifest.Record{"b": "2.0", "a": "1.0"},
		"a":    manifest.Record{"leaf": "*"},
		"b":    manifest.Record{},
	}

	export := FromGraph(g, "root")

	wantNodes := []Node{
		{ID: "a", Expanded: true},
		{ID: "b", Expanded: true},
		{ID: "leaf", Expanded: false},
		{ID: "root", Expanded: true},
	}
	if !reflect.DeepEqual(export.Nodes, wantNodes) {
		t.Errorf("Nodes = %v, want %v", export.Nodes, wantNodes)
	}

	wantEdges := []Edge{
		{From: "a", To: "leaf", Spec: "*"},
		{From: "root", To: "a", Spec: "1.0"},
		{From: "root", To: "b", Spec: "2.0"},
	}
	if !reflect.DeepEqual(export.Edges, wantEdges) {
		t.Errorf("Edges = %v, want %v", export.Edges, wantEdges)
	}

	if export.Root != "root" {
		t.Errorf("Root = %q, want root", export.Root)
	}
}

func TestWriteExportFile(t *testing.T) {
	g := Graph{
		"root": manifest.Record{"a": "1.0"},
	}

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteExportFile(g, "root", path); err != nil {
		t.Fatalf("WriteExportFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if export.Root != "root" || len(export.Nodes) != 2 || len(export.Edges) != 1 {
		t.Errorf("decoded export = %+v", export)
	}
}

func TestMarshalExportStable(t *testing.T) {
	g := Graph{
		"b":    manifest.Record{"c": "*"},
		"a":    manifest.Record{"c": "*"},
		"root": manifest.Record{"a": "*", "b": "*"},
	}

	first, err := MarshalExport(g, "root")
	if err != nil {
		t.Fatalf("MarshalExport: %v", err)
	}
	for range 3 {
		next, err := MarshalExport(g, "root")
		if err != nil {
			t.Fatalf("MarshalExport: %v", err)
		}
		if string(next) != string(first) {
			t.Fatal("MarshalExport output is not deterministic")
		}
	}
}

func TestToDOT(t *testing.T) {
	g := Graph{
		"root": manifest.Record{"a": "1.0", "leaf": "*"},
		"a":    manifest.Record{},
	}

	dot := ToDOT(FromGraph(g, "root"))

	for _, want := range []string{
		"digraph deps {",
		`"root" -> "a" [label="1.0", fontsize=10];`,
		`"root" -> "leaf" [label="*", fontsize=10];`,
		"fillcolor=lightyellow", // root emphasis
		"dashed",                // leaf reference
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTLongSpecUnlabeled(t *testing.T) {
	g := Graph{
		"root": manifest.Record{"a": strings.Repeat("x", 40)},
	}

	dot := ToDOT(FromGraph(g, "root"))
	if strings.Contains(dot, "label=\"xxxx") {
		t.Error("long version specs must not become edge labels")
	}
	if !strings.Contains(dot, `"root" -> "a";`) {
		t.Error("edge missing")
	}
}
