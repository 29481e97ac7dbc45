package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mreyes/kintree/pkg/family"
	"github.com/mreyes/kintree/pkg/tree"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func exportFixture() *tree.Builder {
	table := family.NewTable([]family.Person{
		{ID: 1, Name: "Joao Silva", Gender: family.Male, SpouseID: 2,
			Birth: date(1920, 3, 15), Death: date(1990, 11, 2)},
		{ID: 2, Name: "Maria Silva", Nickname: "Mia", Gender: family.Female, SpouseID: 1,
			Birth: date(1925, 6, 1)},
		{ID: 3, Name: "Pedro Silva", Gender: family.Male, FatherID: 1, MotherID: 2},
		{ID: 9, Name: "Otto Weber", Gender: family.Male},
	})
	return tree.New(table, 1, tree.DefaultOptions())
}

func TestBuild(t *testing.T) {
	persons := Build(exportFixture())
	if len(persons) != 4 {
		t.Fatalf("got %d persons, want 4 (unreachable rows included)", len(persons))
	}

	joao := persons[0]
	if joao.PersonID != 1 {
		t.Fatalf("rows must keep table order, got id %d first", joao.PersonID)
	}
	if joao.Generation == nil || *joao.Generation != 0 {
		t.Errorf("Generation = %v, want 0", joao.Generation)
	}
	if joao.BirthDate == nil || *joao.BirthDate != "Mar 15, 1920" {
		t.Errorf("BirthDate = %v", joao.BirthDate)
	}
	if joao.LifeSpan != "Mar 15, 1920 to Nov 02, 1990" {
		t.Errorf("LifeSpan = %q", joao.LifeSpan)
	}
	if joao.Spouse == nil || *joao.Spouse != "Maria Silva 'Mia'" {
		t.Errorf("Spouse = %v", joao.Spouse)
	}
	if len(joao.Children) != 1 || joao.Children[0] != "Pedro Silva" {
		t.Errorf("Children = %v", joao.Children)
	}

	maria := persons[1]
	if maria.Nickname == nil || *maria.Nickname != "Mia" {
		t.Errorf("Nickname = %v", maria.Nickname)
	}
	if maria.DeathDate != nil {
		t.Errorf("DeathDate = %v, want null", maria.DeathDate)
	}
	if maria.Lifetime != "" || maria.LifeSpan != "" {
		t.Error("Lifetime/LifeSpan must be absent without a death date")
	}

	otto := persons[3]
	if otto.Generation != nil {
		t.Errorf("unreachable person Generation = %v, want null", otto.Generation)
	}
}

func TestLifetime(t *testing.T) {
	tests := []struct {
		name  string
		birth time.Time
		death time.Time
		want  string
	}{
		{"twenty years", date(2000, 1, 1), date(2020, 6, 15), "20 years, 5 months, 21 days"},
		{"same day", date(2000, 1, 1), date(2000, 1, 1), "0 years, 0 months, 0 days"},
		{"one month", date(2000, 1, 1), date(2000, 1, 31), "0 years, 1 months, 0 days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lifetime(tt.birth, tt.death); got != tt.want {
				t.Errorf("Lifetime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Build(exportFixture())); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 4 {
		t.Errorf("decoded %d entries", len(decoded))
	}
	// Nickname quotes must survive without HTML escaping.
	if strings.Contains(buf.String(), `'`) {
		t.Error("output should not escape quotes")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	if err := ExportJSON(exportFixture(), path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"PersonID": 1`) {
		t.Errorf("file content unexpected: %.200s", data)
	}
}
