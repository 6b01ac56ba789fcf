package transform

import (
	"testing"

	"github.com/matzehuels/graphologue/pkg/dag"
)

func TestAssignLayersLongestPath(t *testing.T) {
	g := buildGraph(
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}, {"d", "c"}},
	)
	AssignLayers(g)

	want := map[string]int{"a": 0, "b": 1, "c": 2, "d": 0}
	for id, r := range want {
		n, _ := g.Node(id)
		if n.Rank != r {
			t.Errorf("rank(%s) = %d, want %d", id, n.Rank, r)
		}
	}
}

func TestSubdivide(t *testing.T) {
	g := buildGraph(
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"a", "d"}},
	)
	g.SetRanks(map[string]int{"a": 0, "b": 1, "c": 2, "d": 3})
	_ = g.SetEdge(dag.Edge{From: "a", To: "d", Label: "spans"})

	Subdivide(g)

	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if g.NodeCount() != 6 {
		t.Errorf("NodeCount() = %d, want 6", g.NodeCount())
	}
	if g.HasEdge("a", "d") {
		t.Error("long edge a->d still present")
	}

	dummies := 0
	for _, n := range g.Nodes() {
		if n.IsDummy() {
			dummies++
			if n.MasterID != "a" || n.Width != 0 || n.Height != 0 {
				t.Errorf("dummy %+v, want zero-size with master a", n)
			}
		}
	}
	if dummies != 2 {
		t.Errorf("got %d dummies, want 2", dummies)
	}

	var labelled int
	for _, e := range g.Edges() {
		if e.Label == "spans" {
			labelled++
			if e.To != "d" {
				t.Errorf("label moved to %v, want last edge into d", e)
			}
		}
	}
	if labelled != 1 {
		t.Errorf("label appears on %d edges, want 1", labelled)
	}
}

func TestSubdivideIDCollision(t *testing.T) {
	g := buildGraph([]string{"a", "a_dummy_1", "z"}, [][2]string{{"a", "z"}})
	g.SetRanks(map[string]int{"a": 0, "a_dummy_1": 0, "z": 2})
	Subdivide(g)
	if _, ok := g.Node("a_dummy_1__1"); !ok {
		t.Errorf("expected suffixed dummy id, nodes: %v", dag.NodeIDs(g.Nodes()))
	}
}

func TestNormalize(t *testing.T) {
	g := buildGraph(
		[]string{"cell", "nucleus", "dna", "protein"},
		[][2]string{{"cell", "nucleus"}, {"nucleus", "dna"}, {"dna", "protein"}, {"protein", "cell"}, {"cell", "protein"}, {"dna", "dna"}},
	)
	reversed := Normalize(g)

	if len(reversed) == 0 {
		t.Error("expected reversed edges")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
