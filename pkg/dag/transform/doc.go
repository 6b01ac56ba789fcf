// Package transform prepares a mind-map graph for layered layout.
//
// Layered (Sugiyama-style) layout needs an acyclic graph whose edges only
// join consecutive ranks. Model output gives no such guarantee: concepts
// often point back at each other, and a hub may sit several ranks away from
// an object that is also reached directly. The transformations here fix
// that on a working copy of the graph:
//
//   - [BreakCycles] removes DFS back edges, including self-loops.
//   - [ReverseEdges] re-adds removed edges in the opposite direction so the
//     relation still pulls its endpoints into neighbouring ranks.
//   - [AssignLayers] places every node one rank after its deepest parent.
//   - [Subdivide] splits edges spanning several ranks into chains of
//     zero-size dummy nodes.
//
// [Normalize] applies all four in order:
//
//	work := g.Clone()
//	transform.Normalize(work)
//	// work.Validate() == nil
package transform
