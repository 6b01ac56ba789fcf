package layout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/graphologue/pkg/dag"
)

// ErrUnknownEngine is returned by [ByName] for unsupported engine names.
var ErrUnknownEngine = errors.New("unknown layout engine")

// RankDir is the direction in which ranks advance.
type RankDir string

const (
	LeftRight RankDir = "LR"
	RightLeft RankDir = "RL"
	TopBottom RankDir = "TB"
	BottomTop RankDir = "BT"
)

func (d RankDir) horizontal() bool { return d == LeftRight || d == RightLeft }

// Valid reports whether d is one of the supported directions.
func (d RankDir) Valid() bool {
	switch d {
	case LeftRight, RightLeft, TopBottom, BottomTop:
		return true
	}
	return false
}

// Config controls spacing and orientation.
type Config struct {
	RankDir RankDir
	// RankSep is the gap between adjacent ranks.
	RankSep float64
	// NodeSep is the gap between neighbouring nodes of one rank.
	NodeSep float64
}

// Defaults used for mind maps: left-to-right, 100px between ranks and 30px
// between siblings.
const (
	DefaultRankSep = 100
	DefaultNodeSep = 30
)

// DefaultConfig returns the mind-map configuration.
func DefaultConfig() Config {
	return Config{RankDir: LeftRight, RankSep: DefaultRankSep, NodeSep: DefaultNodeSep}
}

func (c Config) withDefaults() Config {
	if c.RankDir == "" {
		c.RankDir = LeftRight
	}
	if c.RankSep <= 0 {
		c.RankSep = DefaultRankSep
	}
	if c.NodeSep <= 0 {
		c.NodeSep = DefaultNodeSep
	}
	return c
}

// Point is a node centre.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Engine computes node positions. Implementations must return a point for
// every node in g, keyed by node ID, and must not modify g.
type Engine interface {
	Layout(ctx context.Context, g *dag.DAG, cfg Config) (map[string]Point, error)
}

// Func adapts an ordinary function to [Engine].
type Func func(ctx context.Context, g *dag.DAG, cfg Config) (map[string]Point, error)

func (f Func) Layout(ctx context.Context, g *dag.DAG, cfg Config) (map[string]Point, error) {
	return f(ctx, g, cfg)
}

// Engine names accepted by [ByName].
const (
	EngineLayered  = "layered"
	EngineGraphviz = "graphviz"
)

// Names lists the engines accepted by [ByName].
func Names() []string { return []string{EngineLayered, EngineGraphviz} }

// ByName returns the engine registered under name. An empty name selects
// the layered engine.
func ByName(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineLayered:
		return Layered{}, nil
	case EngineGraphviz, "dot":
		return Graphviz{}, nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownEngine, name, strings.Join(Names(), ", "))
}
