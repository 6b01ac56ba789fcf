package transform

import "github.com/matzehuels/graphologue/pkg/dag"

// Normalize makes g acyclic and properly layered in place and returns the
// edges that were reversed. Callers that need the original graph should
// pass a [dag.DAG.Clone].
func Normalize(g *dag.DAG) []dag.Edge {
	reversed := BreakCycles(g)
	ReverseEdges(g, reversed)
	AssignLayers(g)
	Subdivide(g)
	return reversed
}
