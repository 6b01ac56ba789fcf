package graph

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/graphologue/pkg/dag"
)

// Node kinds as serialized.
const (
	KindConcept = "concept"
	KindHub     = "hub"
)

// Document is the serialization format for a laid-out mind map, used for
// CLI output files and API responses.
type Document struct {
	Nodes     []Node     `json:"nodes"`
	Edges     []Edge     `json:"edges"`
	Positions []Position `json:"positions,omitempty"`
}

// Node is a serialized graph node. ID is the raw label; Label the visible
// text.
type Node struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Kind   string  `json:"kind,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsHub reports whether the node is a hub node.
func (n Node) IsHub() bool { return n.Kind == KindHub }

// Edge is a serialized directed edge.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// NewDocument captures g and its positions. Nodes and edges keep insertion
// order. Dummy nodes are never part of a document.
func NewDocument(g *dag.DAG, positions []Position) Document {
	doc := Document{Positions: positions}
	for _, n := range g.Nodes() {
		if n.IsDummy() {
			continue
		}
		kind := KindConcept
		if n.IsHub() {
			kind = KindHub
		}
		doc.Nodes = append(doc.Nodes, Node{ID: n.ID, Label: n.Label, Kind: kind, Width: n.Width, Height: n.Height})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, Edge(e))
	}
	if doc.Nodes == nil {
		doc.Nodes = []Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []Edge{}
	}
	return doc
}

// DAG rebuilds the graph described by the document.
func (d Document) DAG() (*dag.DAG, error) {
	g := dag.New()
	for _, n := range d.Nodes {
		kind := dag.NodeKindConcept
		if n.IsHub() {
			kind = dag.NodeKindHub
		}
		if err := g.AddNode(dag.Node{ID: n.ID, Label: n.Label, Kind: kind, Width: n.Width, Height: n.Height}); err != nil {
			return nil, fmt.Errorf("add node %q: %w", n.ID, err)
		}
	}
	for _, e := range d.Edges {
		if err := g.AddEdge(dag.Edge(e)); err != nil {
			return nil, fmt.Errorf("add edge %q -> %q: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// Position returns the position recorded for the node with raw label id.
func (d Document) Position(id string) (Position, bool) {
	for _, p := range d.Positions {
		if p.Label == id {
			return p, true
		}
	}
	return Position{}, false
}

// Marshal encodes a document as indented JSON.
func Marshal(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal decodes a document and checks that every edge and position
// refers to a known node.
func Unmarshal(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// Validate checks that node IDs are unique and that edges and positions
// only reference declared nodes.
func (d Document) Validate() error {
	ids := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if ids[n.ID] {
			return fmt.Errorf("duplicate node %q", n.ID)
		}
		ids[n.ID] = true
	}
	for _, e := range d.Edges {
		if !ids[e.From] || !ids[e.To] {
			return fmt.Errorf("edge %q -> %q references unknown node", e.From, e.To)
		}
	}
	for _, p := range d.Positions {
		if !ids[p.Label] {
			return fmt.Errorf("position for unknown node %q", p.Label)
		}
	}
	return nil
}
