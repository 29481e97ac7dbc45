package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/mreyes/kintree/pkg/family"
)

// Expected column headers, matched case-insensitively and ignoring
// whitespace, so "Person ID" and "personid" both work.
const (
	colPersonID  = "personid"
	colName      = "name"
	colNickname  = "nickname"
	colGender    = "gender"
	colBirthDate = "birthdate"
	colDeathDate = "deathdate"
	colFatherID  = "fatherid"
	colMotherID  = "motherid"
	colSpouseID  = "spouseid"
)

// cellDateLayouts are tried in order when parsing spreadsheet dates.
// Spreadsheet tools format date cells inconsistently depending on
// locale and cell style.
var cellDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2-Jan-06",
}

// columnMap maps a canonical column name to its index in the header row.
type columnMap map[string]int

// findHeader scans rows for the header row (the first row containing a
// PersonID column) and returns its index and column map. Returns -1
// when no header is found; genealogy spreadsheets often carry title
// rows above the actual table.
func findHeader(rows [][]string) (int, columnMap) {
	for i, row := range rows {
		cols := make(columnMap)
		for j, cell := range row {
			key := canonical(cell)
			if key != "" {
				cols[key] = j
			}
		}
		if _, ok := cols[colPersonID]; ok {
			return i, cols
		}
	}
	return -1, nil
}

func canonical(header string) string {
	return strings.ToLower(strings.Join(strings.Fields(header), ""))
}

// personFromRow builds a record from one data row. Returns false when
// the row has no valid positive PersonID (blank or title rows).
// Malformed foreign keys and dates degrade to unrecorded.
func personFromRow(row []string, cols columnMap) (family.Person, bool) {
	id := cellInt(row, cols, colPersonID)
	if id <= 0 {
		return family.Person{}, false
	}
	return family.Person{
		ID:       id,
		Name:     cellString(row, cols, colName),
		Nickname: cellString(row, cols, colNickname),
		Gender:   family.Gender(strings.ToLower(cellString(row, cols, colGender))),
		Birth:    cellDate(row, cols, colBirthDate),
		Death:    cellDate(row, cols, colDeathDate),
		FatherID: cellInt(row, cols, colFatherID),
		MotherID: cellInt(row, cols, colMotherID),
		SpouseID: cellInt(row, cols, colSpouseID),
	}, true
}

func cellString(row []string, cols columnMap, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func cellInt(row []string, cols columnMap, name string) int {
	s := cellString(row, cols, name)
	if s == "" {
		return 0
	}
	// Numeric cells sometimes round-trip as floats ("3.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func cellDate(row []string, cols columnMap, name string) time.Time {
	s := cellString(row, cols, name)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range cellDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
