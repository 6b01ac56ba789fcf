package graph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphologue/pkg/layout"
)

// ToDOT describes a document for Graphviz. Concept nodes are rounded boxes,
// hub nodes small grey ellipses showing the predicate, and edges carry their
// relation text. Graphviz computes its own placement when rendering.
func ToDOT(d Document) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=11, color=\"#555555\"];\n")
	fmt.Fprintf(&buf, "  ranksep=%s;\n", strconv.FormatFloat(layout.DefaultRankSep/72.0, 'f', 2, 64))
	fmt.Fprintf(&buf, "  nodesep=%s;\n", strconv.FormatFloat(layout.DefaultNodeSep/72.0, 'f', 2, 64))
	buf.WriteString("\n")

	for _, n := range d.Nodes {
		attrs := []string{"label=" + layout.QuoteID(n.Label)}
		if n.IsHub() {
			attrs = append(attrs, "shape=ellipse", "fillcolor=\"#eeeeee\"", "fontsize=11")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", layout.QuoteID(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		if e.Label == "" {
			fmt.Fprintf(&buf, "  %s -> %s;\n", layout.QuoteID(e.From), layout.QuoteID(e.To))
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s [label=%s];\n", layout.QuoteID(e.From), layout.QuoteID(e.To), layout.QuoteID(e.Label))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders DOT source to SVG with Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales with
// its container.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
