// Package export produces the structured per-person JSON dump:
// every table row enriched with its computed generation, formatted
// dates, lifetime arithmetic and resolved relative names.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mreyes/kintree/pkg/family"
	"github.com/mreyes/kintree/pkg/tree"
)

// dateLayout matches the "%b %d, %Y" formatting of genealogy exports,
// e.g. "Jan 01, 2000".
const dateLayout = "Jan 02, 2006"

// Person is one exported record. Pointer fields serialize as null when
// the underlying value is unrecorded; Lifetime and LifeSpan appear only
// for persons with both birth and death dates.
type Person struct {
	PersonID   int      `json:"PersonID"`
	Name       string   `json:"Name"`
	Nickname   *string  `json:"Nickname"`
	Gender     string   `json:"Gender"`
	Generation *int     `json:"Generation"`
	BirthDate  *string  `json:"BirthDate"`
	DeathDate  *string  `json:"DeathDate"`
	Lifetime   string   `json:"Lifetime,omitempty"`
	LifeSpan   string   `json:"LifeSpan,omitempty"`
	Father     *string  `json:"Father"`
	Mother     *string  `json:"Mother"`
	Spouse     *string  `json:"Spouse"`
	Children   []string `json:"Children"`
}

// Build assembles the export records for every table row, in table
// order. Persons outside the tree (unreachable from the builder's
// root) are still exported, with a null generation.
func Build(b *tree.Builder) []Person {
	t := b.Table()
	gens := b.Generations()
	idx := b.ChildrenIndex()

	out := make([]Person, 0, t.Len())
	for _, r := range t.Records() {
		p := Person{
			PersonID:  r.ID,
			Name:      r.Name,
			Gender:    string(r.Gender),
			BirthDate: formatDate(r.Birth),
			DeathDate: formatDate(r.Death),
			Father:    resolveName(t, r.FatherID),
			Mother:    resolveName(t, r.MotherID),
			Spouse:    resolveName(t, r.SpouseID),
			Children:  []string{},
		}
		if r.Nickname != "" {
			nick := r.Nickname
			p.Nickname = &nick
		}
		if gen, ok := gens[r.ID]; ok {
			g := gen
			p.Generation = &g
		}
		if !r.Birth.IsZero() && !r.Death.IsZero() {
			p.Lifetime = Lifetime(r.Birth, r.Death)
			p.LifeSpan = fmt.Sprintf("%s to %s", *p.BirthDate, *p.DeathDate)
		}

		for _, childID := range family.ChildrenOfPerson(idx, r) {
			if name, ok := t.FullName(childID); ok {
				p.Children = append(p.Children, name)
			}
		}

		out = append(out, p)
	}
	return out
}

// Write encodes the export records as indented JSON.
func Write(w io.Writer, persons []Person) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(persons); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the builder's export records to a file at path.
func ExportJSON(b *tree.Builder, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, Build(b))
}

// Lifetime renders the duration between birth and death using 365-day
// years and 30-day months with integer division. This is deliberately
// not calendar-accurate; it reproduces the conventional "X years, Y
// months, Z days" genealogy figure.
func Lifetime(birth, death time.Time) string {
	days := int(death.Sub(birth).Hours() / 24)
	years := days / 365
	remaining := days % 365
	months := remaining / 30
	days = remaining % 30
	return fmt.Sprintf("%d years, %d months, %d days", years, months, days)
}

func formatDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func resolveName(t *family.Table, id int) *string {
	name, ok := t.FullName(id)
	if !ok {
		return nil
	}
	return &name
}
