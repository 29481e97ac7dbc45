// Package family defines the genealogical data model and the derived
// structures a descendant tree is built from.
//
// The input is a flat table of person records, one row per person, with
// parent and spouse foreign keys. From that table the package derives
// three read-only snapshots:
//
//   - a generation map assigning each reachable person a depth below a
//     chosen root ([AssignGenerations])
//   - a children index keyed by parent pair ([BuildChildrenIndex])
//   - a spouse pair set ordered (male, female) ([BuildSpousePairs])
//
// All derivations are single-pass or single-traversal and tolerate
// inconsistent data: missing parent or spouse rows simply produce no
// relationship rather than an error.
package family

import (
	"fmt"
	"time"
)

// Gender is a person's recorded gender. Values other than [Male] and
// [Female] are treated as female for node coloring purposes.
type Gender string

// Recognized gender values.
const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Person is one row of the genealogical table.
//
// The zero ID is reserved: a FatherID, MotherID or SpouseID of 0 means
// the relationship is unrecorded. Birth and Death use the time.Time
// zero value to mean unknown.
type Person struct {
	ID       int
	Name     string
	Nickname string
	Gender   Gender
	Birth    time.Time
	Death    time.Time
	FatherID int
	MotherID int
	SpouseID int
}

// HasParent reports whether the person has at least one recorded parent.
// Used by the spouse-edge ordering heuristic to keep blood-line spouses
// on a consistent side of the union point.
func (p *Person) HasParent() bool {
	return p.FatherID != 0 || p.MotherID != 0
}

// Label returns the display label for the person's diagram node:
// the name alone, or `Name 'Nickname'` when a nickname is recorded.
func (p *Person) Label() string {
	if p.Nickname != "" {
		return fmt.Sprintf("%s '%s'", p.Name, p.Nickname)
	}
	return p.Name
}
