// Package dag provides the directed graph used to lay out mind maps.
//
// # Overview
//
// A mind map is a graph of concept nodes joined by labelled relation edges.
// Recurring subject+predicate pairs are routed through hub nodes, and layout
// engines insert dummy nodes to split edges that span several ranks. The
// three kinds are distinguished by [NodeKind].
//
// Nodes carry the size a layout engine must reserve for them ([Node.Width],
// [Node.Height]) and the rank they are assigned to ([Node.Rank]).
//
// # Basic Usage
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "cell", Label: "cell", Width: 56, Height: 40})
//	g.AddNode(dag.Node{ID: "nucleus", Label: "nucleus", Width: 80, Height: 40})
//	g.AddEdge(dag.Edge{From: "cell", To: "nucleus", Label: "contains"})
//
// The graph may contain cycles and parallel edges while it is being built.
// Package transform turns a copy of it into a properly layered graph where
// every edge joins consecutive ranks; [DAG.Validate] checks that state.
//
// # Determinism
//
// Unlike a map-backed graph, [DAG.Nodes], [DAG.Edges], [DAG.Sources] and
// [DAG.NodesInRank] return elements in insertion order, so layouts computed
// from the same triplets are identical across runs.
//
// # Crossings
//
// [CountCrossings] and [CountLayerCrossings] count edge crossings between
// consecutive ranks for a candidate ordering. Layout engines use them to keep
// the best ordering found during crossing reduction.
package dag
