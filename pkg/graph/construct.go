package graph

import (
	"context"
	"fmt"

	"github.com/matzehuels/graphologue/pkg/dag"
	"github.com/matzehuels/graphologue/pkg/layout"
	"github.com/matzehuels/graphologue/pkg/relation"
)

// Position is the laid-out centre of one node. Label is the raw node label,
// marker-encoded for hubs.
type Position struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Config is the layout configuration used for mind maps.
func Config() layout.Config { return layout.DefaultConfig() }

// Construct builds the graph for ts, lays it out with engine and returns one
// position per distinct node in first-seen order.
func Construct(ctx context.Context, ts []relation.Triplet, engine layout.Engine) ([]Position, error) {
	g := Build(ts)
	return Layout(ctx, g, engine)
}

// Layout runs engine over g with the mind-map configuration.
func Layout(ctx context.Context, g *dag.DAG, engine layout.Engine) ([]Position, error) {
	pts, err := engine.Layout(ctx, g, Config())
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return Positions(g, pts)
}

// Positions pairs every node of g with its point from pts.
func Positions(g *dag.DAG, pts map[string]layout.Point) ([]Position, error) {
	out := make([]Position, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		p, ok := pts[n.ID]
		if !ok {
			return nil, fmt.Errorf("layout: no position for node %q", n.ID)
		}
		out = append(out, Position{Label: n.ID, X: p.X, Y: p.Y})
	}
	return out, nil
}
