package family

import "slices"

// GenerationMap assigns each person reachable from the root a
// non-negative depth: the root (and its spouse) at 0, their children at
// 1, and so on. Persons not reachable from the root are absent and are
// never rendered.
type GenerationMap map[int]int

// AssignGenerations walks the table from rootID and produces the
// generation map.
//
// The traversal is depth-first over parent→child edges, implemented
// with an explicit work list so arbitrarily deep trees cannot overflow
// the stack and cyclic or malformed data terminates via the
// assigned-set guard. When a person is visited, an unassigned spouse
// receives the same depth but is not traversed further; its own
// children are only reached if the spouse is itself reachable through
// a parent edge.
//
// A person reachable by multiple paths keeps the first depth assigned
// (visit-order dependent, not guaranteed shallowest). After the walk,
// a root spouse with no other connection to the graph is assigned
// depth 0 explicitly.
//
// A rootID absent from the table yields an empty map.
func AssignGenerations(t *Table, rootID int) GenerationMap {
	gens := make(GenerationMap)
	if _, ok := t.Lookup(rootID); !ok {
		return gens
	}

	type visit struct {
		id    int
		depth int
	}
	stack := []visit{{rootID, 0}}

	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, done := gens[v.id]; done {
			continue
		}
		gens[v.id] = v.depth

		if p, ok := t.Lookup(v.id); ok && p.SpouseID != 0 {
			if _, done := gens[p.SpouseID]; !done {
				gens[p.SpouseID] = v.depth
			}
		}

		// Push in reverse so children pop in table order.
		children := t.ChildrenOf(v.id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, visit{children[i], v.depth + 1})
		}
	}

	// A root spouse with no parent edge of its own still belongs in
	// generation 0.
	if root, ok := t.Lookup(rootID); ok && root.SpouseID != 0 {
		if _, done := gens[root.SpouseID]; !done {
			gens[root.SpouseID] = 0
		}
	}

	return gens
}

// Depths returns the sorted distinct generation depths present in the map.
func (g GenerationMap) Depths() []int {
	seen := make(map[int]bool, len(g))
	var out []int
	for _, d := range g {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	slices.Sort(out)
	return out
}

// At returns the IDs assigned to depth, sorted ascending. Person IDs
// generally follow birth order in genealogical tables, so this doubles
// as the within-generation display order for singles.
func (g GenerationMap) At(depth int) []int {
	var out []int
	for id, d := range g {
		if d == depth {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}
