package graph

// Shape classifies the overall structure of a built graph.
type Shape string

const (
	// ShapeNoEdges means the graph has no dependency edges at all.
	ShapeNoEdges Shape = "no edges"
	// ShapeSingleNode means the graph consists of exactly one package.
	ShapeSingleNode Shape = "single node"
	// ShapeTransitive means the graph has more than one node and at least
	// one dependency edge.
	ShapeTransitive Shape = "transitive"
)

// Adjacency is one row of the deterministic adjacency listing: a package and
// its dependency names in sorted order.
type Adjacency struct {
	Package string
	Deps    []string
}

// Report summarizes a built graph for presentation.
type Report struct {
	NodeCount int         // drawn nodes: expanded packages plus leaf references
	EdgeCount int         // total dependency edges
	Shape     Shape       // structural classification
	Adjacency []Adjacency // sorted by package, deps sorted by name
}

// Summarize computes counts, the structural classification, and a
// deterministic adjacency listing for the graph.
func Summarize(g Graph) Report {
	nodes := g.NodeSet()
	edges := g.EdgeCount()

	adjacency := make([]Adjacency, 0, len(g))
	for _, pkg := range g.Packages() {
		adjacency = append(adjacency, Adjacency{
			Package: pkg,
			Deps:    g[pkg].Names(),
		})
	}

	return Report{
		NodeCount: len(nodes),
		EdgeCount: edges,
		Shape:     classify(len(nodes), edges),
		Adjacency: adjacency,
	}
}

func classify(nodes, edges int) Shape {
	switch {
	case nodes == 1 && edges == 0:
		return ShapeSingleNode
	case edges == 0:
		return ShapeNoEdges
	default:
		return ShapeTransitive
	}
}
