// Package tree turns a family table into a renderer-agnostic graph
// description: one visual node per rendered person, synthetic union
// points for marriages, parent→child edges, and per-generation rank
// groups that the renderer constrains to the same horizontal band.
//
// The package performs no layout math itself. Positioning is entirely
// delegated to the rendering engine's rank constraint model; the
// description only carries grouping metadata.
package tree

// Node is one visual node in the diagram. Person nodes carry the
// person's label and gender color; union nodes are rendered as small
// points and exist only as attachment targets for child edges.
type Node struct {
	ID        string // "p<personID>" or "u<N>"
	Label     string
	FillColor string
	Union     bool
	PersonID  int // 0 for union nodes
}

// Edge is a directed connection between two previously emitted nodes.
// Color is empty for parent→child edges and set to the spouse edge
// color for the two person↔union connections of a marriage.
type Edge struct {
	From  string
	To    string
	Color string
}

// Description is the complete diagram description for one build pass.
// Every node belongs to exactly one rank group, and every edge
// references node IDs emitted earlier in the same pass.
type Description struct {
	Nodes []Node
	Edges []Edge
	// Ranks groups node IDs by generation, top generation first.
	// Each group renders as one aligned horizontal band.
	Ranks [][]string
}

// Options control the diagram's coloring. Zero-value fields fall back
// to the defaults from [DefaultOptions].
type Options struct {
	MaleColor       string
	FemaleColor     string
	SpouseEdgeColor string
}

// DefaultOptions returns the standard palette: pale blue for male
// boxes, pale pink for female boxes, rose for spouse connections.
func DefaultOptions() Options {
	return Options{
		MaleColor:       "#CFE8FF",
		FemaleColor:     "#FFD6E7",
		SpouseEdgeColor: "#FFB6C6",
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaleColor == "" {
		o.MaleColor = def.MaleColor
	}
	if o.FemaleColor == "" {
		o.FemaleColor = def.FemaleColor
	}
	if o.SpouseEdgeColor == "" {
		o.SpouseEdgeColor = def.SpouseEdgeColor
	}
	return o
}
