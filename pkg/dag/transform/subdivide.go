package transform

import (
	"fmt"

	"github.com/matzehuels/graphologue/pkg/dag"
)

// Subdivide replaces every edge spanning more than one rank with a chain of
// single-rank edges through [dag.NodeKindDummy] nodes:
//
//	Before: cell (rank 0) -> protein (rank 3)
//	After:  cell -> cell_dummy_1 -> cell_dummy_2 -> protein
//
// Dummy nodes have zero size and a MasterID naming the edge source. The
// edge label moves to the last edge of the chain. Generated IDs never
// collide with existing nodes.
func Subdivide(g *dag.DAG) {
	gen := newIDGen(g.Nodes())

	var long []dag.Edge
	for _, e := range g.Edges() {
		src, okS := g.Node(e.From)
		dst, okD := g.Node(e.To)
		if !okS || !okD || dst.Rank <= src.Rank+1 {
			continue
		}
		long = append(long, e)
	}

	for _, e := range long {
		g.RemoveEdge(e.From, e.To)
	}
	for _, e := range long {
		src, _ := g.Node(e.From)
		dst, _ := g.Node(e.To)

		prev := src.ID
		for rank := src.Rank + 1; rank < dst.Rank; rank++ {
			id := gen.next(src.ID, rank)
			if err := g.AddNode(dag.Node{ID: id, Kind: dag.NodeKindDummy, Rank: rank, MasterID: src.ID}); err != nil {
				panic(err)
			}
			if err := g.AddEdge(dag.Edge{From: prev, To: id}); err != nil {
				panic(err)
			}
			prev = id
		}
		if err := g.AddEdge(dag.Edge{From: prev, To: dst.ID, Label: e.Label}); err != nil {
			panic(err)
		}
	}
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(base string, rank int) string {
	prefix := fmt.Sprintf("%s_dummy_%d", base, rank)
	id := prefix
	for i := 1; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", prefix, i)
	}
}
