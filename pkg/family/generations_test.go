package family

import (
	"slices"
	"testing"
)

// threeGenerations builds a small table:
//
//	1 (m) ⚭ 2 (f)
//	├── 3 (m) ⚭ 4 (f)
//	│   └── 6
//	└── 5 (f)
//
// Person 7 is unrelated and must stay unreachable.
func threeGenerations() *Table {
	return NewTable([]Person{
		{ID: 1, Name: "Joao Silva", Gender: Male, SpouseID: 2},
		{ID: 2, Name: "Maria Silva", Gender: Female, SpouseID: 1},
		{ID: 3, Name: "Pedro Silva", Gender: Male, FatherID: 1, MotherID: 2, SpouseID: 4},
		{ID: 4, Name: "Ana Silva", Gender: Female, SpouseID: 3},
		{ID: 5, Name: "Clara Silva", Gender: Female, FatherID: 1, MotherID: 2},
		{ID: 6, Name: "Rui Silva", Gender: Male, FatherID: 3, MotherID: 4},
		{ID: 7, Name: "Otto Weber", Gender: Male},
	})
}

func TestAssignGenerations(t *testing.T) {
	gens := AssignGenerations(threeGenerations(), 1)

	want := map[int]int{1: 0, 2: 0, 3: 1, 4: 1, 5: 1, 6: 2}
	if len(gens) != len(want) {
		t.Fatalf("got %d assigned persons, want %d: %v", len(gens), len(want), gens)
	}
	for id, depth := range want {
		if gens[id] != depth {
			t.Errorf("person %d: depth %d, want %d", id, gens[id], depth)
		}
	}
	if _, ok := gens[7]; ok {
		t.Error("unrelated person 7 should not be assigned")
	}
}

func TestAssignGenerationsSpouseNotTraversed(t *testing.T) {
	// Spouse 4 has no parent edge; its depth comes from the marriage,
	// and children are reached through the traversed partner.
	gens := AssignGenerations(threeGenerations(), 1)
	if gens[4] != 1 {
		t.Errorf("married-in spouse depth = %d, want 1", gens[4])
	}
}

func TestAssignGenerationsRootSpouseFallback(t *testing.T) {
	table := NewTable([]Person{
		{ID: 1, Name: "Eva Braun", Gender: Female, SpouseID: 2},
		{ID: 2, Name: "Max Braun", Gender: Male, SpouseID: 1},
	})
	gens := AssignGenerations(table, 1)
	if gens[2] != 0 {
		t.Errorf("root spouse depth = %d, want 0", gens[2])
	}
}

func TestAssignGenerationsMissingRoot(t *testing.T) {
	gens := AssignGenerations(threeGenerations(), 99)
	if len(gens) != 0 {
		t.Errorf("missing root should yield empty map, got %v", gens)
	}
}

func TestAssignGenerationsFirstDepthWins(t *testing.T) {
	// Bad data forms a parent cycle 3 → 4 → 5 → 3. The assigned-set
	// guard must terminate the walk and keep each first depth.
	table := NewTable([]Person{
		{ID: 3, Name: "B", Gender: Male, FatherID: 5},
		{ID: 4, Name: "C", Gender: Female, FatherID: 3},
		{ID: 5, Name: "D", Gender: Male, FatherID: 4},
	})

	gens := AssignGenerations(table, 3)
	if gens[3] != 0 {
		t.Errorf("root keeps depth 0 despite cycle, got %d", gens[3])
	}
	if gens[5] != 2 || gens[4] != 1 {
		t.Errorf("descendant depths wrong: %v", gens)
	}
}

func TestGenerationMapDepthsAndAt(t *testing.T) {
	gens := AssignGenerations(threeGenerations(), 1)

	if got := gens.Depths(); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("Depths() = %v", got)
	}
	if got := gens.At(1); !slices.Equal(got, []int{3, 4, 5}) {
		t.Errorf("At(1) = %v", got)
	}
	if got := gens.At(9); len(got) != 0 {
		t.Errorf("At(9) = %v, want empty", got)
	}
}
