// Package graph turns relation triplets into a sized node/edge graph, runs a
// layout engine over it and serializes the result.
//
// # Building
//
// [Build] adds one node per distinct raw label, in first-seen order, and one
// edge per triplet. Hub nodes keep their marker-encoded label as ID so two
// hubs for the same predicate stay distinct, while their visible text is
// the bare predicate. Node widths come from [EstimateWidth]; every node is
// [NodeHeight] tall.
//
// # Layout
//
// [Construct] builds the graph, lays it out left-to-right with 100px between
// ranks and 30px between siblings, and returns one [Position] per node:
//
//	positions, err := graph.Construct(ctx, triplets, layout.Layered{})
//
// # Wire format
//
// A [Document] bundles nodes, edges and positions for JSON output:
//
//	{
//	  "nodes": [{"id": "cell", "label": "cell", "width": 56, "height": 40}],
//	  "edges": [{"from": "cell", "to": "nucleus", "label": "contains"}],
//	  "positions": [{"label": "cell", "x": 28, "y": 20}]
//	}
//
// [ToDOT] and [RenderSVG] draw a Document with Graphviz for terminal users.
package graph
