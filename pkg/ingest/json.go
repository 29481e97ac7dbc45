// Package ingest loads person tables from spreadsheets (xlsx), CSV
// files, and the normalized records JSON that `kintree import`
// produces. Malformed identifiers and unparseable dates degrade to
// "unrecorded" rather than failing the load.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mreyes/kintree/pkg/family"
)

// recordDateLayout is the wire format for dates in records JSON.
const recordDateLayout = "2006-01-02"

type document struct {
	Persons []record `json:"persons"`
}

type record struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
	Gender   string `json:"gender"`
	Birth    string `json:"birth,omitempty"`
	Death    string `json:"death,omitempty"`
	FatherID int    `json:"father_id,omitempty"`
	MotherID int    `json:"mother_id,omitempty"`
	SpouseID int    `json:"spouse_id,omitempty"`
}

// ReadJSON decodes a normalized records document from r.
//
// The input must be a JSON object with a "persons" array. Each person
// needs an "id"; every other field is optional. Dates use the
// YYYY-MM-DD layout and silently degrade to unrecorded when
// unparseable.
func ReadJSON(r io.Reader) (*family.Table, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	persons := make([]family.Person, 0, len(doc.Persons))
	for _, rec := range doc.Persons {
		persons = append(persons, family.Person{
			ID:       rec.ID,
			Name:     rec.Name,
			Nickname: rec.Nickname,
			Gender:   family.Gender(rec.Gender),
			Birth:    parseWireDate(rec.Birth),
			Death:    parseWireDate(rec.Death),
			FatherID: rec.FatherID,
			MotherID: rec.MotherID,
			SpouseID: rec.SpouseID,
		})
	}
	return family.NewTable(persons), nil
}

// ImportJSON reads a records JSON file at path.
func ImportJSON(path string) (*family.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes the table as a normalized records document.
// Round-trips with [ReadJSON].
func WriteJSON(t *family.Table, w io.Writer) error {
	doc := document{Persons: make([]record, 0, t.Len())}
	for _, p := range t.Records() {
		doc.Persons = append(doc.Persons, record{
			ID:       p.ID,
			Name:     p.Name,
			Nickname: p.Nickname,
			Gender:   string(p.Gender),
			Birth:    formatWireDate(p.Birth),
			Death:    formatWireDate(p.Death),
			FatherID: p.FatherID,
			MotherID: p.MotherID,
			SpouseID: p.SpouseID,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the table as records JSON to a file at path.
func ExportJSON(t *family.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(t, f)
}

func parseWireDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(recordDateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatWireDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(recordDateLayout)
}
