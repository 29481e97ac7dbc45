package family

// Table is an immutable, insertion-ordered collection of person records
// indexed by ID. Row order matters: children enumeration and index
// construction follow it, so two tables with the same rows in a
// different order can produce differently ordered (but structurally
// equivalent) diagrams.
//
// Build a Table once with [NewTable] and treat it as read-only.
type Table struct {
	records []*Person
	byID    map[int]*Person
}

// NewTable builds a table from records, preserving their order.
// A record with a duplicate ID replaces the earlier index entry but
// both rows are kept for iteration, matching how duplicated rows in a
// spreadsheet would behave.
func NewTable(records []Person) *Table {
	t := &Table{
		records: make([]*Person, len(records)),
		byID:    make(map[int]*Person, len(records)),
	}
	for i := range records {
		p := records[i]
		t.records[i] = &p
		t.byID[p.ID] = &p
	}
	return t
}

// Lookup returns the person with the given ID, or nil and false when
// the ID is 0 or absent from the table.
func (t *Table) Lookup(id int) (*Person, bool) {
	if id == 0 {
		return nil, false
	}
	p, ok := t.byID[id]
	return p, ok
}

// Records returns the table rows in insertion order.
// The returned slice must not be modified.
func (t *Table) Records() []*Person { return t.records }

// Len returns the number of rows in the table.
func (t *Table) Len() int { return len(t.records) }

// FullName resolves an ID to the person's display name
// (`Name` or `Name 'Nickname'`). It returns "" and false for the zero
// ID or an ID not present in the table.
func (t *Table) FullName(id int) (string, bool) {
	p, ok := t.Lookup(id)
	if !ok {
		return "", false
	}
	return p.Label(), true
}

// ChildrenOf returns the IDs of every record listing id as father or
// mother, in table order. This is the traversal used by generation
// assignment; it intentionally ignores the spouse relation.
func (t *Table) ChildrenOf(id int) []int {
	if id == 0 {
		return nil
	}
	var out []int
	for _, r := range t.records {
		if r.FatherID == id || r.MotherID == id {
			out = append(out, r.ID)
		}
	}
	return out
}
