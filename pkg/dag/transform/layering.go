package transform

import "github.com/matzehuels/graphologue/pkg/dag"

// AssignLayers assigns each node the rank one greater than its deepest
// parent, with sources at rank 0 (longest-path layering).
//
// The traversal is Kahn's topological sort: sources are queued first and a
// child is queued once all its parents are processed. Nodes on a cycle never
// reach in-degree zero and keep rank 0, so run [BreakCycles] first.
// Existing ranks are overwritten.
func AssignLayers(g *dag.DAG) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	ranks := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		ranks[n.ID] = 0
		deg := g.InDegree(n.ID)
		inDegree[n.ID] = deg
		if deg == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if r := ranks[curr] + 1; r > ranks[child] {
				ranks[child] = r
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRanks(ranks)
}
