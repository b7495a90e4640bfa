package frame

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/flowml/flowprep/pkg/errors"
)

// missingMarkers are cell values treated as missing, in addition to the
// empty string. Matches the common pandas NA spellings seen in the wild.
var missingMarkers = map[string]struct{}{
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
}

func isMissing(cell string) bool {
	if strings.TrimSpace(cell) == "" {
		return true
	}
	_, ok := missingMarkers[cell]
	return ok
}

// Load reads a tabular file into a frame, dispatching on the file
// extension: .csv and .tsv via encoding/csv, .xlsx via excelize. The first
// row is taken as the header; the file must have at least one column and
// one data row. Column types are inferred: a column is numeric iff every
// non-missing cell parses as a float, categorical otherwise.
func Load(path string) (*Frame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadDelimited(path, ',')
	case ".tsv":
		return loadDelimited(path, '\t')
	case ".xlsx":
		return loadExcel(path)
	default:
		return nil, errors.Newf(errors.ErrorTypeInput,
			"unsupported file type %q (expected .csv, .tsv or .xlsx)", filepath.Ext(path))
	}
}

func loadDelimited(path string, comma rune) (*Frame, error) {
	file, err := os.Open(path) //nolint:gosec // G304: path is validated by the orchestration layer
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInput, "failed to open source file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInput, "failed to parse source file")
		}
		rows = append(rows, row)
	}

	return fromRows(rows)
}

func loadExcel(path string) (*Frame, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInput, "failed to open spreadsheet")
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(errors.ErrorTypeInput, "spreadsheet has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInput, "failed to read spreadsheet rows")
	}

	return fromRows(rows)
}

// fromRows builds a typed frame from raw cells. rows[0] is the header.
func fromRows(rows [][]string) (*Frame, error) {
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrorTypeInput, "source file is empty")
	}

	header := rows[0]
	if len(header) == 0 {
		return nil, errors.New(errors.ErrorTypeInput, "source file has no columns")
	}
	for _, name := range header {
		if strings.TrimSpace(name) == "" {
			return nil, errors.New(errors.ErrorTypeInput, "source file header has empty column names")
		}
	}

	data := rows[1:]
	if len(data) == 0 {
		return nil, errors.New(errors.ErrorTypeInput, "source file has no data rows")
	}

	cols := make([]*Column, len(header))
	for ci, name := range header {
		cols[ci] = inferColumn(name, data, ci)
	}

	return New(cols)
}

// inferColumn builds one typed column from the cells at index ci. Rows
// shorter than the header (spreadsheet readers trim trailing empties) are
// padded with missing cells.
func inferColumn(name string, data [][]string, ci int) *Column {
	n := len(data)
	cells := make([]string, n)
	null := make([]bool, n)
	for ri, row := range data {
		cell := ""
		if ci < len(row) {
			cell = row[ci]
		}
		if isMissing(cell) {
			null[ri] = true
			continue
		}
		cells[ri] = strings.TrimSpace(cell)
	}

	floats := make([]float64, n)
	numeric := true
	for ri := 0; ri < n; ri++ {
		if null[ri] {
			continue
		}
		v, err := strconv.ParseFloat(cells[ri], 64)
		if err != nil {
			numeric = false
			break
		}
		floats[ri] = v
	}

	// An entirely missing column has no evidence either way; treat it as
	// numeric, matching how pandas types an all-NaN column.
	if numeric {
		return &Column{Name: name, Kind: KindNumeric, Floats: floats, Null: null}
	}
	return &Column{Name: name, Kind: KindCategorical, Labels: cells, Null: null}
}
