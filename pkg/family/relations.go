package family

import "slices"

// ParentKey identifies the parent side of a parent→children
// relationship. Either field may be 0 when only one parent is recorded;
// both-zero keys never appear in a [ChildrenIndex].
type ParentKey struct {
	FatherID int
	MotherID int
}

// ChildrenIndex maps a parent pair to its children in table order.
type ChildrenIndex map[ParentKey][]int

// BuildChildrenIndex derives the children index in a single pass over
// the table. A record contributes under whatever subset of its parent
// IDs is recorded; a record with neither parent contributes nothing.
func BuildChildrenIndex(t *Table) ChildrenIndex {
	idx := make(ChildrenIndex)
	for _, r := range t.Records() {
		if r.FatherID == 0 && r.MotherID == 0 {
			continue
		}
		key := ParentKey{FatherID: r.FatherID, MotherID: r.MotherID}
		idx[key] = append(idx[key], r.ID)
	}
	return idx
}

// SpousePair is one marriage, male partner first regardless of which
// record it was derived from.
type SpousePair struct {
	MaleID   int
	FemaleID int
}

// SpousePairSet holds the deduplicated marriages in the table.
type SpousePairSet map[SpousePair]struct{}

// BuildSpousePairs derives the spouse pair set in a single pass.
//
// Each record with a spouse contributes one pair ordered (male, female)
// based on the visited record's gender, so a mutually consistent
// marriage is added twice with identical content and the set collapses
// it to one entry. A record whose spouse is absent from the table is
// silently dropped; an inconsistent spouse relation (A names B but B
// does not name A) still yields the pair from A's side.
func BuildSpousePairs(t *Table) SpousePairSet {
	pairs := make(SpousePairSet)
	for _, r := range t.Records() {
		if r.SpouseID == 0 {
			continue
		}
		if _, ok := t.Lookup(r.SpouseID); !ok {
			continue
		}
		if r.Gender == Male {
			pairs[SpousePair{MaleID: r.ID, FemaleID: r.SpouseID}] = struct{}{}
		} else {
			pairs[SpousePair{MaleID: r.SpouseID, FemaleID: r.ID}] = struct{}{}
		}
	}
	return pairs
}

// Sorted returns the pairs ordered by male then female ID. Map
// iteration order is randomized in Go, so every consumer that emits
// pairs into output goes through this to keep diagrams deterministic.
func (s SpousePairSet) Sorted() []SpousePair {
	out := make([]SpousePair, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b SpousePair) int {
		if a.MaleID != b.MaleID {
			return a.MaleID - b.MaleID
		}
		return a.FemaleID - b.FemaleID
	})
	return out
}

// ChildrenOfPerson resolves a person's full child list by unioning the
// three index keys a child can be filed under: the person as sole
// father, as sole mother, and as one half of a couple with the given
// spouse. Duplicates are removed and the result is sorted by ID.
//
// This re-derivation is deliberately independent of how the index keys
// were formed, so it finds children regardless of which parent columns
// their rows carried.
func ChildrenOfPerson(idx ChildrenIndex, p *Person) []int {
	var merged []int
	merged = append(merged, idx[ParentKey{FatherID: p.ID}]...)
	merged = append(merged, idx[ParentKey{MotherID: p.ID}]...)
	if p.SpouseID != 0 {
		key := ParentKey{FatherID: p.ID, MotherID: p.SpouseID}
		if p.Gender != Male {
			key = ParentKey{FatherID: p.SpouseID, MotherID: p.ID}
		}
		merged = append(merged, idx[key]...)
	}

	slices.Sort(merged)
	return slices.Compact(merged)
}
