package ingest

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	kinerr "github.com/mreyes/kintree/pkg/errors"
	"github.com/mreyes/kintree/pkg/family"
)

const recordsJSON = `{
  "persons": [
    {"id": 1, "name": "Joao Silva", "gender": "male", "birth": "1920-03-15", "death": "1990-11-02", "spouse_id": 2},
    {"id": 2, "name": "Maria Silva", "nickname": "Mia", "gender": "female", "spouse_id": 1},
    {"id": 3, "name": "Pedro Silva", "gender": "male", "father_id": 1, "mother_id": 2}
  ]
}`

func TestReadJSON(t *testing.T) {
	table, err := ReadJSON(strings.NewReader(recordsJSON))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}

	p, ok := table.Lookup(1)
	if !ok {
		t.Fatal("person 1 missing")
	}
	if p.Birth != time.Date(1920, 3, 15, 0, 0, 0, 0, time.UTC) {
		t.Errorf("Birth = %v", p.Birth)
	}
	if p.SpouseID != 2 {
		t.Errorf("SpouseID = %d", p.SpouseID)
	}

	child, _ := table.Lookup(3)
	if child.FatherID != 1 || child.MotherID != 2 {
		t.Errorf("parent ids = %d, %d", child.FatherID, child.MotherID)
	}
	if !child.Birth.IsZero() {
		t.Errorf("missing birth should stay zero, got %v", child.Birth)
	}
}

func TestReadJSONBadDate(t *testing.T) {
	table, err := ReadJSON(strings.NewReader(`{"persons":[{"id":1,"name":"X","gender":"male","birth":"not-a-date"}]}`))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	p, _ := table.Lookup(1)
	if !p.Birth.IsZero() {
		t.Errorf("unparseable date should degrade to zero, got %v", p.Birth)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	orig, err := ReadJSON(strings.NewReader(recordsJSON))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(orig, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() after write error: %v", err)
	}

	if back.Len() != orig.Len() {
		t.Fatalf("round trip lost rows: %d vs %d", back.Len(), orig.Len())
	}
	for _, want := range orig.Records() {
		got, ok := back.Lookup(want.ID)
		if !ok {
			t.Fatalf("person %d lost", want.ID)
		}
		if *got != *want {
			t.Errorf("person %d mismatch:\n got %+v\nwant %+v", want.ID, got, want)
		}
	}
}

func TestReadCSV(t *testing.T) {
	csvData := `Family register,,,,,,,,
PersonID,Name,Nickname,Gender,BirthDate,DeathDate,FatherID,MotherID,SpouseID
1,Joao Silva,,male,1920-03-15,1990-11-02,,,2
2,Maria Silva,Mia,female,,,,,1
3,Pedro Silva,,Male,,,1.0,2,
not-an-id,stray row,,,,,,,
`
	table, err := ReadCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (title and stray rows skipped)", table.Len())
	}

	p, _ := table.Lookup(3)
	if p.Gender != family.Male {
		t.Errorf("gender should be lowercased, got %q", p.Gender)
	}
	if p.FatherID != 1 {
		t.Errorf("float cell '1.0' should parse to 1, got %d", p.FatherID)
	}

	maria, _ := table.Lookup(2)
	if maria.Nickname != "Mia" {
		t.Errorf("Nickname = %q", maria.Nickname)
	}
}

func TestReadCSVNoHeader(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("a,b,c\n1,2,3\n")); err == nil {
		t.Error("input without a PersonID header should fail")
	}
}

func TestCellDateLayouts(t *testing.T) {
	cols := columnMap{colBirthDate: 0}
	tests := []struct {
		in   string
		want time.Time
	}{
		{"1920-03-15", time.Date(1920, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"3/15/1920", time.Date(1920, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"Mar 15, 1920", time.Date(1920, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"garbage", time.Time{}},
		{"", time.Time{}},
	}
	for _, tt := range tests {
		if got := cellDate([]string{tt.in}, cols, colBirthDate); !got.Equal(tt.want) {
			t.Errorf("cellDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFindHeaderToleratesSpacing(t *testing.T) {
	rows := [][]string{
		{"Some title"},
		{"Person ID", "NAME", "Spouse ID"},
		{"1", "Ana", "0"},
	}
	idx, cols := findHeader(rows)
	if idx != 1 {
		t.Fatalf("header index = %d, want 1", idx)
	}
	if cols[colPersonID] != 0 || cols[colName] != 1 || cols[colSpouseID] != 2 {
		t.Errorf("column map = %v", cols)
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "family.txt"), "")
	if !kinerr.Is(err, kinerr.ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}
}
