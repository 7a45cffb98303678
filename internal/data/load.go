package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"scatterplot/internal/spec"

	"github.com/xuri/excelize/v2"
)

// ParseError reports a cell that could not be turned into a sample value.
// Row is 1-based as shown by spreadsheet tools; Column is zero-based as in
// the graph file.
type ParseError struct {
	Path   string
	Row    int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: row %d, column %d: %v", e.Path, e.Row, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrMissingColumn indicates a row shorter than a configured column.
var ErrMissingColumn = errors.New("missing column")

// Load reads the samples of one data set from path. Files ending in .xlsx
// are read as spreadsheets (ds.Sheet, or the first sheet); anything else is
// delimited text split on delimiter.
func Load(path string, ds spec.DataSetSpec, delimiter rune) (SampleSet, error) {
	var records [][]string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		records, err = readSheet(path, ds.Sheet)
	} else {
		records, err = readDelimited(path, delimiter)
	}
	if err != nil {
		return SampleSet{}, err
	}

	set, err := FromRecords(path, records, ds)
	if err != nil {
		return SampleSet{}, err
	}
	slog.Debug("loaded data set", "name", ds.Name, "path", path, "samples", set.Len())
	return set, nil
}

func readDelimited(path string, delimiter rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func readSheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: sheet %q: %w", path, sheet, err)
	}
	return rows, nil
}

// FromRecords converts table rows into samples using the columns of ds.
// Blank rows are skipped; the first row is skipped when ds.HasHeaders.
func FromRecords(path string, records [][]string, ds spec.DataSetSpec) (SampleSet, error) {
	set := SampleSet{Name: ds.Name}

	for i, rec := range records {
		row := i + 1
		if ds.HasHeaders && i == 0 {
			continue
		}
		if blank(rec) {
			continue
		}

		x, err := cell(path, rec, row, ds.XColumn)
		if err != nil {
			return SampleSet{}, err
		}
		y, err := cell(path, rec, row, ds.YColumn)
		if err != nil {
			return SampleSet{}, err
		}
		s := Sample{X: x, Y: y}

		if ds.XErrorColumn != nil {
			v, err := uncertainty(path, rec, row, *ds.XErrorColumn)
			if err != nil {
				return SampleSet{}, err
			}
			s.XErr = &v
		}
		if ds.YErrorColumn != nil {
			v, err := uncertainty(path, rec, row, *ds.YErrorColumn)
			if err != nil {
				return SampleSet{}, err
			}
			s.YErr = &v
		}
		set.Samples = append(set.Samples, s)
	}

	if err := set.Validate(); err != nil {
		return SampleSet{}, err
	}
	return set, nil
}

func cell(path string, rec []string, row, col int) (float64, error) {
	if col >= len(rec) {
		return 0, &ParseError{Path: path, Row: row, Column: col,
			Err: fmt.Errorf("%w: row has %d columns", ErrMissingColumn, len(rec))}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[col]), 64)
	if err != nil {
		return 0, &ParseError{Path: path, Row: row, Column: col, Err: err}
	}
	if !finite(v) {
		return 0, &ParseError{Path: path, Row: row, Column: col, Err: fmt.Errorf("value %q is not finite", rec[col])}
	}
	return v, nil
}

func uncertainty(path string, rec []string, row, col int) (float64, error) {
	v, err := cell(path, rec, row, col)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, &ParseError{Path: path, Row: row, Column: col, Err: fmt.Errorf("uncertainty %v is negative", v)}
	}
	return v, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
