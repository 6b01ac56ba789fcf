package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [DAG.Validate] when an edge
	// references a node that doesn't exist.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrNonConsecutiveRanks is returned by [DAG.Validate] when an edge
	// connects nodes that are not in adjacent ranks.
	ErrNonConsecutiveRanks = errors.New("edges must connect consecutive ranks")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a directed cycle
	// is detected.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// NodeKind distinguishes concept nodes from hub nodes and from synthetic
// nodes created during layout.
type NodeKind int

const (
	// NodeKindConcept is a node for a concept extracted from model output.
	NodeKindConcept NodeKind = iota
	// NodeKindHub is a synthetic node grouping the objects of a recurring
	// subject+predicate pair. Its Label is the predicate.
	NodeKindHub
	// NodeKindDummy is a zero-size node inserted to split an edge that spans
	// more than one rank. MasterID names the edge source.
	NodeKindDummy
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindHub:
		return "hub"
	case NodeKindDummy:
		return "dummy"
	default:
		return "concept"
	}
}

// Node is a vertex of a mind-map graph.
//
// ID is the raw node label and is unique within a graph; hub nodes use the
// marker-encoded form. Label is the text shown to users.
type Node struct {
	ID     string
	Label  string
	Kind   NodeKind
	Width  float64
	Height float64

	// Rank is the layer the node is assigned to. It is 0 until a rank
	// assignment runs.
	Rank int

	// MasterID links dummy chains back to the source of the split edge.
	MasterID string
}

// IsDummy reports whether the node was inserted during layout.
func (n Node) IsDummy() bool { return n.Kind == NodeKindDummy }

// IsHub reports whether the node is a hub node.
func (n Node) IsHub() bool { return n.Kind == NodeKindHub }

// Edge is a directed connection between two nodes. Label is the relation
// text and may be empty.
type Edge struct {
	From  string
	To    string
	Label string
}

// DAG is a directed graph organised into ranks for layered layouts.
//
// Despite its name a DAG may hold cycles while it is being built; layout
// engines remove them on a copy (see package transform). Nodes and edges
// are kept in insertion order so every traversal is deterministic.
//
// The zero value is not usable; create graphs with [New].
// A DAG is not safe for concurrent use.
type DAG struct {
	nodes    map[string]*Node
	order    []*Node
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
	ranks    map[int][]*Node
}

// New creates an empty graph.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		ranks:    make(map[int][]*Node),
	}
}

// AddNode adds a node and indexes it by its Rank.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node)
	d.ranks[node.Rank] = append(d.ranks[node.Rank], node)
	return nil
}

// AddEdge adds a directed edge between two existing nodes. Parallel edges
// are allowed; use [DAG.SetEdge] to keep at most one edge per node pair.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// SetEdge adds the edge, or replaces the label of the existing edge between
// the same pair of nodes. The edge keeps its original position.
func (d *DAG) SetEdge(e Edge) error {
	for i := range d.edges {
		if d.edges[i].From == e.From && d.edges[i].To == e.To {
			d.edges[i].Label = e.Label
			return nil
		}
	}
	return d.AddEdge(e)
}

// HasEdge reports whether an edge from→to exists.
func (d *DAG) HasEdge(from, to string) bool {
	return slices.Contains(d.outgoing[from], to)
}

// RemoveEdge removes every edge from→to. It is a no-op if none exists.
func (d *DAG) RemoveEdge(from, to string) {
	d.edges = slices.DeleteFunc(d.edges, func(e Edge) bool { return e.From == from && e.To == to })
	d.outgoing[from] = slices.DeleteFunc(d.outgoing[from], func(s string) bool { return s == to })
	d.incoming[to] = slices.DeleteFunc(d.incoming[to], func(s string) bool { return s == from })
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// graph's own nodes.
func (d *DAG) Nodes() []*Node { return slices.Clone(d.order) }

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

func (d *DAG) NodeCount() int { return len(d.nodes) }
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the targets of the node's outgoing edges. The slice must
// not be modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the sources of the node's incoming edges. The slice must
// not be modified.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }
func (d *DAG) InDegree(id string) int  { return len(d.incoming[id]) }

// Node returns the node with the given ID.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// SetRanks updates rank assignments and rebuilds the rank index. Nodes
// missing from ranks keep their current rank.
func (d *DAG) SetRanks(ranks map[string]int) {
	d.ranks = make(map[int][]*Node)
	for _, n := range d.order {
		if r, ok := ranks[n.ID]; ok {
			n.Rank = r
		}
		d.ranks[n.Rank] = append(d.ranks[n.Rank], n)
	}
}

// NodesInRank returns the nodes of a rank in insertion order.
func (d *DAG) NodesInRank(rank int) []*Node { return d.ranks[rank] }

// RankIDs returns all rank indices in ascending order.
func (d *DAG) RankIDs() []int {
	return slices.Sorted(maps.Keys(d.ranks))
}

// MaxRank returns the highest rank, or 0 for an empty graph.
func (d *DAG) MaxRank() int {
	ids := d.RankIDs()
	if len(ids) == 0 {
		return 0
	}
	return ids[len(ids)-1]
}

// Sources returns nodes without incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var out []*Node
	for _, n := range d.order {
		if len(d.incoming[n.ID]) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// Clone returns a deep copy of the graph.
func (d *DAG) Clone() *DAG {
	c := New()
	for _, n := range d.order {
		_ = c.AddNode(*n)
	}
	for _, e := range d.edges {
		_ = c.AddEdge(e)
	}
	return c
}

// Validate checks that every edge joins existing nodes in consecutive ranks
// and that the graph is acyclic. It is meant for graphs that went through
// rank assignment and subdivision.
func (d *DAG) Validate() error {
	for _, e := range d.edges {
		src, okS := d.nodes[e.From]
		dst, okD := d.nodes[e.To]
		if !okS || !okD {
			return ErrInvalidEdgeEndpoint
		}
		if dst.Rank != src.Rank+1 {
			return ErrNonConsecutiveRanks
		}
	}
	if d.HasCycle() {
		return ErrGraphHasCycle
	}
	return nil
}

// HasCycle reports whether the graph contains a directed cycle, including
// self-loops.
func (d *DAG) HasCycle() bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				if visit(child) {
					return true
				}
			case gray:
				return true
			}
		}
		color[id] = black
		return false
	}

	for _, n := range d.order {
		if color[n.ID] == white && visit(n.ID) {
			return true
		}
	}
	return false
}

// PosMap maps each ID to its index in ids.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts the IDs of nodes, preserving order.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
