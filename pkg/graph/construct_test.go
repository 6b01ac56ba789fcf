package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/matzehuels/graphologue/pkg/dag"
	"github.com/matzehuels/graphologue/pkg/layout"
	"github.com/matzehuels/graphologue/pkg/relation"
)

func TestConstructPassesConfig(t *testing.T) {
	var got layout.Config
	engine := layout.Func(func(_ context.Context, g *dag.DAG, cfg layout.Config) (map[string]layout.Point, error) {
		got = cfg
		pts := make(map[string]layout.Point)
		for i, n := range g.Nodes() {
			pts[n.ID] = layout.Point{X: float64(i), Y: float64(i * 2)}
		}
		return pts, nil
	})

	ts := []relation.Triplet{relation.New("sun", "emits", "light")}
	positions, err := Construct(context.Background(), ts, engine)
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	want := layout.Config{RankDir: layout.LeftRight, RankSep: 100, NodeSep: 30}
	if got != want {
		t.Errorf("config = %+v, want %+v", got, want)
	}
	if len(positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(positions))
	}
	if positions[0] != (Position{Label: "sun", X: 0, Y: 0}) || positions[1] != (Position{Label: "light", X: 1, Y: 2}) {
		t.Errorf("positions = %+v", positions)
	}
}

func TestConstructEachNodeOnce(t *testing.T) {
	raw := "cell $$$ contains $$$ nucleus, ribosomes ### cell $$$ contains $$$ mitochondria ### " +
		"nucleus $$$ stores $$$ DNA ### mitochondria $$$ produce $$$ ATP ### ATP $$$ powers $$$ cell"
	ts := relation.Extract(raw, ids())

	positions, err := Construct(context.Background(), ts, layout.Layered{})
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	seen := make(map[string]int)
	for _, p := range positions {
		seen[p.Label]++
	}
	for _, tr := range ts {
		for _, l := range []relation.Label{tr.Subject, tr.Object} {
			if seen[l.String()] != 1 {
				t.Errorf("node %q appears %d times, want 1", l.String(), seen[l.String()])
			}
		}
	}
	if len(seen) != len(positions) {
		t.Errorf("duplicate labels in positions: %+v", positions)
	}
}

func TestConstructEngineError(t *testing.T) {
	boom := errors.New("boom")
	engine := layout.Func(func(context.Context, *dag.DAG, layout.Config) (map[string]layout.Point, error) {
		return nil, boom
	})
	_, err := Construct(context.Background(), []relation.Triplet{relation.New("a", "", "b")}, engine)
	if !errors.Is(err, boom) {
		t.Errorf("Construct() error = %v, want wrapped boom", err)
	}
}

func TestConstructMissingPoint(t *testing.T) {
	engine := layout.Func(func(context.Context, *dag.DAG, layout.Config) (map[string]layout.Point, error) {
		return map[string]layout.Point{"a": {}}, nil
	})
	if _, err := Construct(context.Background(), []relation.Triplet{relation.New("a", "", "b")}, engine); err == nil {
		t.Error("expected error for missing position")
	}
}
