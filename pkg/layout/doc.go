// Package layout computes 2D node positions for mind-map graphs.
//
// An [Engine] takes a [dag.DAG] whose nodes carry a width and height and
// returns the centre point of every node. Two engines are provided:
//
//   - [Layered]: a native Sugiyama-style layered layout. It breaks cycles,
//     assigns ranks by longest path, splits long edges with dummy nodes,
//     reduces crossings with barycentric sweeps and finally packs ranks into
//     columns (or rows) separated by [Config.RankSep].
//   - [Graphviz]: hands the graph to Graphviz dot through go-graphviz and
//     reads the positions back.
//
// Both honour [Config]: rank direction, the gap between ranks and the gap
// between neighbouring nodes in one rank. Coordinates use a top-left origin
// with y growing downward. The input graph is never modified.
//
// Tests and callers with their own algorithm can adapt a plain function
// with [Func].
package layout
