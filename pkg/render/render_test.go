package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleDOT = `digraph deps {
  "root" [label="root"];
  "a" [label="a"];
  "root" -> "a";
}
`

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(context.Background(), sampleDOT)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Error("output is not a PNG")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), sampleDOT)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if len(svg) == 0 {
		t.Error("empty SVG output")
	}
}

func TestRenderInvalidDOT(t *testing.T) {
	if _, err := RenderPNG(context.Background(), "not a graph {{{"); err == nil {
		t.Error("invalid DOT must fail")
	}
}

func TestWritePNGFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := WritePNGFile(context.Background(), sampleDOT, path); err != nil {
		t.Fatalf("WritePNGFile: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty output file")
	}
}
