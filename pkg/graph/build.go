package graph

import (
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/graphologue/pkg/dag"
	"github.com/matzehuels/graphologue/pkg/relation"
)

// Node size estimation, in pixels.
const (
	NodeHeight   = 40
	CharWidth    = 8
	NodePadding  = 24
	MaxNodeWidth = 360
)

// EstimateWidth returns the width reserved for a node showing text. Wide
// characters count as two cells.
func EstimateWidth(text string) float64 {
	w := NodePadding + CharWidth*runewidth.StringWidth(text)
	return float64(min(MaxNodeWidth, w))
}

// Build converts triplets into a graph. Every distinct raw label becomes one
// node, added the first time it is referenced; every triplet becomes one
// edge labelled with its predicate. A later triplet between the same two
// nodes replaces the label of the earlier edge.
func Build(ts []relation.Triplet) *dag.DAG {
	g := dag.New()
	for _, t := range ts {
		addNode(g, t.Subject)
		addNode(g, t.Object)
		_ = g.SetEdge(dag.Edge{From: t.Subject.String(), To: t.Object.String(), Label: t.Predicate})
	}
	return g
}

func addNode(g *dag.DAG, l relation.Label) {
	id := l.String()
	if _, ok := g.Node(id); ok {
		return
	}
	kind := dag.NodeKindConcept
	if l.IsHub() {
		kind = dag.NodeKindHub
	}
	_ = g.AddNode(dag.Node{
		ID:     id,
		Label:  l.Display(),
		Kind:   kind,
		Width:  EstimateWidth(l.Display()),
		Height: NodeHeight,
	})
}
