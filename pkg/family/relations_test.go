package family

import (
	"slices"
	"testing"
)

func TestBuildChildrenIndex(t *testing.T) {
	table := threeGenerations()
	idx := BuildChildrenIndex(table)

	if got := idx[ParentKey{FatherID: 1, MotherID: 2}]; !slices.Equal(got, []int{3, 5}) {
		t.Errorf("children of (1,2) = %v, want [3 5]", got)
	}
	if got := idx[ParentKey{FatherID: 3, MotherID: 4}]; !slices.Equal(got, []int{6}) {
		t.Errorf("children of (3,4) = %v, want [6]", got)
	}
	if _, ok := idx[ParentKey{}]; ok {
		t.Error("both-zero parent key must never appear")
	}
}

func TestBuildChildrenIndexSingleParent(t *testing.T) {
	table := NewTable([]Person{
		{ID: 1, Name: "Maria Costa", Gender: Female},
		{ID: 2, Name: "Tiago Costa", Gender: Male, MotherID: 1},
	})
	idx := BuildChildrenIndex(table)
	if got := idx[ParentKey{MotherID: 1}]; !slices.Equal(got, []int{2}) {
		t.Errorf("children of mother-only key = %v, want [2]", got)
	}
}

func TestBuildSpousePairs(t *testing.T) {
	pairs := BuildSpousePairs(threeGenerations())

	want := []SpousePair{
		{MaleID: 1, FemaleID: 2},
		{MaleID: 3, FemaleID: 4},
	}
	got := pairs.Sorted()
	if !slices.Equal(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
}

func TestBuildSpousePairsMissingPartner(t *testing.T) {
	table := NewTable([]Person{
		{ID: 1, Name: "Ines Melo", Gender: Female, SpouseID: 99},
	})
	if pairs := BuildSpousePairs(table); len(pairs) != 0 {
		t.Errorf("pair with absent partner should be dropped, got %v", pairs)
	}
}

func TestBuildSpousePairsOneSided(t *testing.T) {
	// 2 names 1 as spouse but 1 does not reciprocate; the pair still
	// forms from 2's side, male first.
	table := NewTable([]Person{
		{ID: 1, Name: "Rita Melo", Gender: Female},
		{ID: 2, Name: "Vasco Melo", Gender: Male, SpouseID: 1},
	})
	got := BuildSpousePairs(table).Sorted()
	if len(got) != 1 || got[0] != (SpousePair{MaleID: 2, FemaleID: 1}) {
		t.Errorf("Sorted() = %v", got)
	}
}

func TestChildrenOfPerson(t *testing.T) {
	table := threeGenerations()
	idx := BuildChildrenIndex(table)

	father, _ := table.Lookup(1)
	if got := ChildrenOfPerson(idx, father); !slices.Equal(got, []int{3, 5}) {
		t.Errorf("children of 1 = %v, want [3 5]", got)
	}

	mother, _ := table.Lookup(2)
	if got := ChildrenOfPerson(idx, mother); !slices.Equal(got, []int{3, 5}) {
		t.Errorf("children of 2 = %v, want [3 5]", got)
	}

	childless, _ := table.Lookup(6)
	if got := ChildrenOfPerson(idx, childless); len(got) != 0 {
		t.Errorf("children of 6 = %v, want none", got)
	}
}

func TestChildrenOfPersonUnionsSingleParentRows(t *testing.T) {
	// One child filed under the couple, one under the father alone.
	table := NewTable([]Person{
		{ID: 1, Name: "Hugo Reis", Gender: Male, SpouseID: 2},
		{ID: 2, Name: "Luisa Reis", Gender: Female, SpouseID: 1},
		{ID: 3, Name: "Nuno Reis", Gender: Male, FatherID: 1, MotherID: 2},
		{ID: 4, Name: "Sara Reis", Gender: Female, FatherID: 1},
	})
	idx := BuildChildrenIndex(table)
	p, _ := table.Lookup(1)
	if got := ChildrenOfPerson(idx, p); !slices.Equal(got, []int{3, 4}) {
		t.Errorf("children of 1 = %v, want [3 4]", got)
	}
}
