package layout

import (
	"context"
	"fmt"

	"github.com/matzehuels/graphologue/pkg/dag"
	"github.com/matzehuels/graphologue/pkg/dag/transform"
)

// Layered is the native layered layout engine.
type Layered struct {
	// Passes is the number of crossing-reduction sweeps. Zero means
	// [DefaultPasses].
	Passes int
}

// Layout implements [Engine]. The result is deterministic for a given
// graph and configuration.
func (l Layered) Layout(ctx context.Context, g *dag.DAG, cfg Config) (map[string]Point, error) {
	cfg = cfg.withDefaults()
	if !cfg.RankDir.Valid() {
		return nil, fmt.Errorf("invalid rank direction %q", cfg.RankDir)
	}
	if g.NodeCount() == 0 {
		return map[string]Point{}, nil
	}

	work := g.Clone()
	transform.Normalize(work)

	passes := l.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}
	orders, err := orderRanks(ctx, work, passes)
	if err != nil {
		return nil, err
	}

	placed := place(work, orders, cfg)
	out := make(map[string]Point, g.NodeCount())
	for _, n := range g.Nodes() {
		out[n.ID] = placed[n.ID]
	}
	return out, nil
}

// place assigns coordinates. Along the rank axis every rank is a band as
// deep as its deepest node, bands separated by RankSep. Across it the nodes
// of a rank are stacked NodeSep apart and the stack is centred on the
// longest rank.
func place(g *dag.DAG, orders map[int][]string, cfg Config) map[string]Point {
	horizontal := cfg.RankDir.horizontal()
	depth := func(n *dag.Node) float64 {
		if horizontal {
			return n.Width
		}
		return n.Height
	}
	breadth := func(n *dag.Node) float64 {
		if horizontal {
			return n.Height
		}
		return n.Width
	}

	ranks := g.RankIDs()
	rankCentre := make(map[int]float64, len(ranks))
	rankLength := make(map[int]float64, len(ranks))
	var offset, longest float64
	for i, r := range ranks {
		var deepest, length float64
		for j, id := range orders[r] {
			n, _ := g.Node(id)
			deepest = max(deepest, depth(n))
			length += breadth(n)
			if j > 0 {
				length += cfg.NodeSep
			}
		}
		if i > 0 {
			offset += cfg.RankSep
		}
		rankCentre[r] = offset + deepest/2
		offset += deepest
		rankLength[r] = length
		longest = max(longest, length)
	}
	total := offset

	out := make(map[string]Point, g.NodeCount())
	for _, r := range ranks {
		cursor := (longest - rankLength[r]) / 2
		for _, id := range orders[r] {
			n, _ := g.Node(id)
			along, across := rankCentre[r], cursor+breadth(n)/2
			cursor += breadth(n) + cfg.NodeSep

			switch cfg.RankDir {
			case LeftRight:
				out[id] = Point{X: along, Y: across}
			case RightLeft:
				out[id] = Point{X: total - along, Y: across}
			case TopBottom:
				out[id] = Point{X: across, Y: along}
			case BottomTop:
				out[id] = Point{X: across, Y: total - along}
			}
		}
	}
	return out
}
