package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mreyes/kintree/pkg/family"

	kinerr "github.com/mreyes/kintree/pkg/errors"
)

// ReadCSV loads a person table from CSV data with the same column
// conventions as [ReadXLSX].
func ReadCSV(r io.Reader) (*family.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are common in exported sheets
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return tableFromRows(rows)
}

// ImportCSV reads a CSV file at path.
func ImportCSV(path string) (*family.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// Load reads a person table from path, dispatching on the file
// extension: .xlsx/.xlsm workbooks, .csv files, and .json records
// documents. The sheet argument only applies to workbooks.
func Load(path, sheet string) (*family.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, sheet)
	case ".csv":
		return ImportCSV(path)
	case ".json":
		return ImportJSON(path)
	default:
		return nil, kinerr.New(kinerr.ErrCodeInvalidFormat,
			"unsupported input format %q (expected .xlsx, .csv or .json)", filepath.Ext(path))
	}
}
