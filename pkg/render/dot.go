// Package render converts a tree description into Graphviz DOT and
// renders it to SVG or PNG via goccy/go-graphviz, plus an interactive
// HTML page embedding the SVG.
package render

import (
	"bytes"
	"fmt"

	"github.com/mreyes/kintree/pkg/tree"
)

// DOTOptions configures DOT generation.
type DOTOptions struct {
	// Legend adds a small cluster showing the male/female colors and a
	// union point sample.
	Legend bool
	// Colors for the legend swatches and spouse sample edges. Zero
	// values fall back to the tree defaults.
	Colors tree.Options
}

// ToDOT converts a diagram description to Graphviz DOT. Generations are
// constrained with rank=same groups so they render as aligned
// horizontal bands; union points are near-invisible point nodes.
//
// The resulting string can be rendered with [SVG] or [PNG], or saved
// for manual rendering with the dot binary.
func ToDOT(d *tree.Description, opts DOTOptions) string {
	colors := opts.Colors
	if colors.MaleColor == "" || colors.FemaleColor == "" || colors.SpouseEdgeColor == "" {
		def := tree.DefaultOptions()
		if colors.MaleColor == "" {
			colors.MaleColor = def.MaleColor
		}
		if colors.FemaleColor == "" {
			colors.FemaleColor = def.FemaleColor
		}
		if colors.SpouseEdgeColor == "" {
			colors.SpouseEdgeColor = def.SpouseEdgeColor
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph DescendantTree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  splines=polyline;\n")
	buf.WriteString("  nodesep=0.5;\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  fontname=\"Helvetica\";\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=10, margin=\"0.08,0.05\", fillcolor=\"#F9F9F9\"];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#555555\"];\n")
	buf.WriteString("\n")

	if opts.Legend {
		writeLegend(&buf, colors)
	}

	for _, n := range d.Nodes {
		if n.Union {
			fmt.Fprintf(&buf, "  %q [shape=point, width=0.01, height=0.01, label=\"\"];\n", n.ID)
			continue
		}
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", n.ID, n.Label, n.FillColor)
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		if e.Color != "" {
			fmt.Fprintf(&buf, "  %q -> %q [color=%q];\n", e.From, e.To, e.Color)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("\n")
	for _, rank := range d.Ranks {
		buf.WriteString("  { rank=same;")
		for _, id := range rank {
			fmt.Fprintf(&buf, " %q;", id)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeLegend(buf *bytes.Buffer, colors tree.Options) {
	buf.WriteString("  subgraph cluster_legend {\n")
	buf.WriteString("    label=\"Legend\";\n")
	buf.WriteString("    fontsize=10;\n")
	buf.WriteString("    style=dashed;\n")
	fmt.Fprintf(buf, "    \"legend_male\" [label=\"Male\", fillcolor=%q];\n", colors.MaleColor)
	fmt.Fprintf(buf, "    \"legend_female\" [label=\"Female\", fillcolor=%q];\n", colors.FemaleColor)
	buf.WriteString("    \"legend_union\" [shape=point, width=0.01, label=\"\"];\n")
	buf.WriteString("    { rank=same; \"legend_male\"; \"legend_union\"; \"legend_female\"; }\n")
	fmt.Fprintf(buf, "    \"legend_male\" -> \"legend_union\" [color=%q];\n", colors.SpouseEdgeColor)
	fmt.Fprintf(buf, "    \"legend_union\" -> \"legend_female\" [color=%q];\n", colors.SpouseEdgeColor)
	buf.WriteString("  }\n\n")
}
