package layout

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphologue/pkg/dag"
)

// pointsPerInch converts between pixels (points) and Graphviz inches.
const pointsPerInch = 72.0

// plainFormat is Graphviz's line-oriented "plain" output.
const plainFormat graphviz.Format = "plain"

// ErrMalformedPlain is returned when Graphviz plain output cannot be parsed.
var ErrMalformedPlain = errors.New("malformed graphviz plain output")

// Graphviz lays graphs out with Graphviz dot.
type Graphviz struct{}

// Layout implements [Engine].
func (Graphviz) Layout(ctx context.Context, g *dag.DAG, cfg Config) (map[string]Point, error) {
	cfg = cfg.withDefaults()
	if !cfg.RankDir.Valid() {
		return nil, fmt.Errorf("invalid rank direction %q", cfg.RankDir)
	}
	if g.NodeCount() == 0 {
		return map[string]Point{}, nil
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(LayoutDOT(g, cfg)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, plainFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	pts, err := parsePlain(buf.Bytes())
	if err != nil {
		return nil, err
	}
	for _, n := range g.Nodes() {
		if _, ok := pts[n.ID]; !ok {
			return nil, fmt.Errorf("%w: node %q missing", ErrMalformedPlain, n.ID)
		}
	}
	return pts, nil
}

// LayoutDOT describes g for Graphviz with every node fixed to its
// estimated size and no visible labels, so Graphviz only positions boxes.
func LayoutDOT(g *dag.DAG, cfg Config) string {
	cfg = cfg.withDefaults()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", cfg.RankDir)
	fmt.Fprintf(&buf, "  ranksep=%s;\n", inches(cfg.RankSep))
	fmt.Fprintf(&buf, "  nodesep=%s;\n", inches(cfg.NodeSep))
	buf.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %s [width=%s, height=%s];\n", QuoteID(n.ID), inches(n.Width), inches(n.Height))
	}
	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", QuoteID(e.From), QuoteID(e.To))
	}
	buf.WriteString("}\n")
	return buf.String()
}

// QuoteID returns s as a double-quoted DOT identifier.
func QuoteID(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

func inches(px float64) string {
	return strconv.FormatFloat(px/pointsPerInch, 'f', 4, 64)
}

// parsePlain reads node centres from Graphviz plain output, converting
// inches to points and flipping y so the origin is top-left.
//
//	graph scale width height
//	node name x y width height label style shape color fillcolor
//	edge tail head n x1 y1 ... xn yn [label xl yl] style color
//	stop
func parsePlain(data []byte) (map[string]Point, error) {
	type raw struct{ x, y float64 }
	var (
		height float64
		nodes  []string
	)
	coords := make(map[string]raw)

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	sawGraph := false
lines:
	for sc.Scan() {
		fields, err := splitPlain(sc.Text())
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "graph":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: short graph line", ErrMalformedPlain)
			}
			h, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: graph height: %v", ErrMalformedPlain, err)
			}
			height, sawGraph = h, true
		case "node":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: short node line", ErrMalformedPlain)
			}
			x, errX := strconv.ParseFloat(fields[2], 64)
			y, errY := strconv.ParseFloat(fields[3], 64)
			if errX != nil || errY != nil {
				return nil, fmt.Errorf("%w: node %q coordinates", ErrMalformedPlain, fields[1])
			}
			nodes = append(nodes, fields[1])
			coords[fields[1]] = raw{x, y}
		case "stop":
			break lines
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !sawGraph {
		return nil, fmt.Errorf("%w: missing graph line", ErrMalformedPlain)
	}

	pts := make(map[string]Point, len(nodes))
	for _, id := range nodes {
		c := coords[id]
		pts[id] = Point{X: c.x * pointsPerInch, Y: (height - c.y) * pointsPerInch}
	}
	return pts, nil
}

// splitPlain splits a plain output line into fields. Double-quoted fields
// may contain spaces and backslash escapes.
func splitPlain(line string) ([]string, error) {
	var fields []string
	for i := 0; i < len(line); {
		switch {
		case line[i] == ' ' || line[i] == '\t':
			i++
		case line[i] == '"':
			var b strings.Builder
			i++
			closed := false
			for i < len(line) {
				c := line[i]
				if c == '\\' && i+1 < len(line) {
					next := line[i+1]
					switch next {
					case '"', '\\':
						b.WriteByte(next)
					case 'n':
						b.WriteByte('\n')
					default:
						b.WriteByte(c)
						b.WriteByte(next)
					}
					i += 2
					continue
				}
				if c == '"' {
					closed = true
					i++
					break
				}
				b.WriteByte(c)
				i++
			}
			if !closed {
				return nil, fmt.Errorf("%w: unterminated quote in %q", ErrMalformedPlain, line)
			}
			fields = append(fields, b.String())
		default:
			j := i
			for j < len(line) && line[j] != ' ' && line[j] != '\t' {
				j++
			}
			fields = append(fields, line[i:j])
			i = j
		}
	}
	return fields, nil
}
