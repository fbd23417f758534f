package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"diabprep/pkg/dataset"
)

var (
	ErrNoHeader          = errors.New("input has no header row")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// isMissingToken reports whether a raw cell means "no value".
func isMissingToken(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "NaN", "nan", "null", "NULL":
		return true
	}
	return false
}

// LoadFile reads a dataset, choosing the reader from the file extension.
func LoadFile(path string) (*dataset.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return ReadCSV(bufio.NewReader(file))
	case ".xlsx":
		return ReadXLSX(path, "")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// SaveFile writes a dataset, choosing the writer from the file extension.
func SaveFile(path string, ds *dataset.Dataset) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := WriteCSV(file, ds); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	case ".xlsx":
		return WriteXLSX(path, ds)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ReadCSV reads a headed CSV into a dataset.
func ReadCSV(r io.Reader) (*dataset.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return FromRecords(records)
}

// FromRecords turns a header row plus data rows into typed columns.
// A column is numeric when every non-missing cell parses as a float.
func FromRecords(records [][]string) (*dataset.Dataset, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	headers := records[0]
	rows := records[1:]

	ds := dataset.New(len(rows))
	for c, name := range headers {
		name = strings.TrimSpace(name)
		raw := make([]string, len(rows))
		for r, rec := range rows {
			// short rows (ragged xlsx sheets) read as missing
			if c < len(rec) {
				raw[r] = strings.TrimSpace(rec[c])
			}
		}

		nums, ok := parseNumeric(raw)
		var col *dataset.Column
		if ok {
			col = dataset.NewNumeric(name, nums)
		} else {
			for i, v := range raw {
				if isMissingToken(v) {
					raw[i] = ""
				}
			}
			col = dataset.NewCategorical(name, raw)
		}
		if err := ds.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func parseNumeric(raw []string) ([]float64, bool) {
	out := make([]float64, len(raw))
	for i, v := range raw {
		if isMissingToken(v) {
			out[i] = math.NaN()
			continue
		}
		num, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		out[i] = num
	}
	return out, true
}

// Records renders the dataset as a header row plus string rows.
// Missing values render as empty cells.
func Records(ds *dataset.Dataset) [][]string {
	cols := ds.Columns()
	out := make([][]string, 0, ds.Rows()+1)
	out = append(out, ds.Names())
	for r := 0; r < ds.Rows(); r++ {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = formatCell(c, r)
		}
		out = append(out, row)
	}
	return out
}

func formatCell(c *dataset.Column, r int) string {
	if c.IsMissing(r) {
		return ""
	}
	if c.Kind == dataset.Categorical {
		return c.Cats[r]
	}
	return strconv.FormatFloat(c.Nums[r], 'f', -1, 64)
}

// WriteCSV writes the dataset with a header row.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(Records(ds)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
