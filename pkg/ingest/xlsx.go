package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	kinerr "github.com/mreyes/kintree/pkg/errors"
	"github.com/mreyes/kintree/pkg/family"
)

// ReadXLSX loads a person table from an Excel workbook. When sheet is
// empty, the first sheet is used. The header row is located by
// scanning for a PersonID column, so title rows above the table are
// tolerated.
func ReadXLSX(path, sheet string) (*family.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", sheet, err)
	}

	return tableFromRows(rows)
}

func tableFromRows(rows [][]string) (*family.Table, error) {
	headerIdx, cols := findHeader(rows)
	if headerIdx < 0 {
		return nil, kinerr.New(kinerr.ErrCodeInvalidInput, "no header row with a PersonID column found")
	}

	var persons []family.Person
	for _, row := range rows[headerIdx+1:] {
		if p, ok := personFromRow(row, cols); ok {
			persons = append(persons, p)
		}
	}
	return family.NewTable(persons), nil
}
