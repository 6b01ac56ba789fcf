package transform

import "github.com/matzehuels/graphologue/pkg/dag"

// BreakCycles removes every edge that closes a cycle during a depth-first
// search and returns the removed edges. The search starts at source nodes
// in insertion order and then visits any node left unvisited, so the result
// is deterministic.
func BreakCycles(g *dag.DAG) []dag.Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	back := make(map[[2]string]bool)

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range g.Children(id) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				back[[2]string{id, child}] = true
			}
		}
		color[id] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	var removed []dag.Edge
	for _, e := range g.Edges() {
		if back[[2]string{e.From, e.To}] {
			removed = append(removed, e)
		}
	}
	for pair := range back {
		g.RemoveEdge(pair[0], pair[1])
	}
	return removed
}

// ReverseEdges adds each edge back with its direction flipped. Self-loops
// and edges whose reverse already exists are skipped. Reversing the back
// edges of a depth-first search never creates a new cycle.
func ReverseEdges(g *dag.DAG, edges []dag.Edge) {
	for _, e := range edges {
		if e.From == e.To || g.HasEdge(e.To, e.From) {
			continue
		}
		_ = g.AddEdge(dag.Edge{From: e.To, To: e.From, Label: e.Label})
	}
}
