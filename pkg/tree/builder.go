package tree

import (
	"fmt"
	"slices"

	"github.com/mreyes/kintree/pkg/family"
)

// Builder derives the generation map, children index and spouse pairs
// for one root and builds diagram descriptions from them. All derived
// structures are computed once in [New] and never mutated afterwards,
// so a Builder can serve repeated [Builder.Build] calls and be shared
// with exporters that need the same snapshots.
type Builder struct {
	table *family.Table
	root  int
	opts  Options

	gens     family.GenerationMap
	children family.ChildrenIndex
	spouses  family.SpousePairSet
}

// New derives the relationship snapshots for rootID. A root absent
// from the table is not an error; it produces an empty generation map
// and, later, a degenerate empty description.
func New(t *family.Table, rootID int, opts Options) *Builder {
	return &Builder{
		table:    t,
		root:     rootID,
		opts:     opts.withDefaults(),
		gens:     family.AssignGenerations(t, rootID),
		children: family.BuildChildrenIndex(t),
		spouses:  family.BuildSpousePairs(t),
	}
}

// Table returns the underlying person table.
func (b *Builder) Table() *family.Table { return b.table }

// Generations returns the generation map rooted at the builder's root.
func (b *Builder) Generations() family.GenerationMap { return b.gens }

// ChildrenIndex returns the parent-pair→children index.
func (b *Builder) ChildrenIndex() family.ChildrenIndex { return b.children }

// SpousePairs returns the deduplicated marriage set.
func (b *Builder) SpousePairs() family.SpousePairSet { return b.spouses }

// PersonCount returns the number of persons in the tree (all IDs with
// an assigned generation, whether or not their row is present).
func (b *Builder) PersonCount() int { return len(b.gens) }

// GenerationCount returns the number of distinct generation bands.
func (b *Builder) GenerationCount() int { return len(b.gens.Depths()) }

// Build emits the diagram description. Two calls with the same builder
// produce structurally identical output; the union node counter is
// local to each pass and restarts at u0.
func (b *Builder) Build() *Description {
	desc := &Description{}

	unionCount := 0
	unions := make(map[family.SpousePair]string)
	rendered := make(map[int]bool)
	sortedPairs := b.spouses.Sorted()

	for _, depth := range b.gens.Depths() {
		people := b.gens.At(depth)

		inGen := make(map[int]bool, len(people))
		for _, id := range people {
			inGen[id] = true
		}

		// Married couples come first (male then female), singles after
		// in ID order.
		paired := make(map[int]bool)
		var genPairs []family.SpousePair
		for _, pr := range sortedPairs {
			if inGen[pr.MaleID] && inGen[pr.FemaleID] {
				genPairs = append(genPairs, pr)
				paired[pr.MaleID] = true
				paired[pr.FemaleID] = true
			}
		}

		var ordered []int
		for _, pr := range genPairs {
			ordered = append(ordered, pr.MaleID, pr.FemaleID)
		}
		for _, id := range people {
			if !paired[id] {
				ordered = append(ordered, id)
			}
		}

		var rank []string
		for _, id := range ordered {
			p, ok := b.table.Lookup(id)
			if !ok {
				// Assigned a generation via a spouse reference but has
				// no row of its own: nothing to render.
				continue
			}
			nodeID := personNodeID(id)
			desc.Nodes = append(desc.Nodes, Node{
				ID:        nodeID,
				Label:     p.Label(),
				FillColor: b.nodeColor(p.Gender),
				PersonID:  id,
			})
			rendered[id] = true
			rank = append(rank, nodeID)
		}

		for _, pr := range genPairs {
			unionID := fmt.Sprintf("u%d", unionCount)
			unionCount++
			unions[pr] = unionID

			desc.Nodes = append(desc.Nodes, Node{ID: unionID, Union: true})
			rank = append(rank, unionID)

			b.connectSpouses(desc, pr, unionID)
		}

		if len(rank) > 0 {
			desc.Ranks = append(desc.Ranks, rank)
		}
	}

	b.connectChildren(desc, unions, rendered)
	return desc
}

// connectSpouses emits the two marriage edges. The spouse with a
// registered parent connects into the union point first so blood-line
// spouses stay on a consistent side; checked on the male partner, with
// the female-first arrangement as the fallthrough.
func (b *Builder) connectSpouses(desc *Description, pr family.SpousePair, unionID string) {
	male, _ := b.table.Lookup(pr.MaleID)
	maleFirst := male != nil && male.HasParent()

	first, second := personNodeID(pr.MaleID), personNodeID(pr.FemaleID)
	if !maleFirst {
		first, second = second, first
	}
	desc.Edges = append(desc.Edges,
		Edge{From: first, To: unionID, Color: b.opts.SpouseEdgeColor},
		Edge{From: unionID, To: second, Color: b.opts.SpouseEdgeColor},
	)
}

// connectChildren links every parent key to its children after all
// generation bands exist. Couples attach through their union point;
// a couple whose union was never created (the marriage was not
// detected as a same-generation pair) falls back to a direct
// father→child edge. Children or parents that were never rendered are
// skipped.
func (b *Builder) connectChildren(desc *Description, unions map[family.SpousePair]string, rendered map[int]bool) {
	keys := make([]family.ParentKey, 0, len(b.children))
	for k := range b.children {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, c family.ParentKey) int {
		if a.FatherID != c.FatherID {
			return a.FatherID - c.FatherID
		}
		return a.MotherID - c.MotherID
	})

	for _, key := range keys {
		children := b.children[key]
		switch {
		case key.FatherID != 0 && key.MotherID != 0:
			pair := family.SpousePair{MaleID: key.FatherID, FemaleID: key.MotherID}
			if unionID, ok := unions[pair]; ok {
				for _, child := range children {
					if rendered[child] {
						desc.Edges = append(desc.Edges, Edge{From: unionID, To: personNodeID(child)})
					}
				}
			} else if rendered[key.FatherID] {
				for _, child := range children {
					if rendered[child] {
						desc.Edges = append(desc.Edges, Edge{From: personNodeID(key.FatherID), To: personNodeID(child)})
					}
				}
			}
		case key.FatherID != 0:
			b.connectSingleParent(desc, key.FatherID, children, rendered)
		default:
			b.connectSingleParent(desc, key.MotherID, children, rendered)
		}
	}
}

func (b *Builder) connectSingleParent(desc *Description, parent int, children []int, rendered map[int]bool) {
	if !rendered[parent] {
		return
	}
	for _, child := range children {
		if rendered[child] {
			desc.Edges = append(desc.Edges, Edge{From: personNodeID(parent), To: personNodeID(child)})
		}
	}
}

func (b *Builder) nodeColor(g family.Gender) string {
	if g == family.Male {
		return b.opts.MaleColor
	}
	return b.opts.FemaleColor
}

func personNodeID(id int) string { return fmt.Sprintf("p%d", id) }
