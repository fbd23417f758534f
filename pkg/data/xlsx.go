package data

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"diabprep/pkg/dataset"
)

// ReadXLSX reads one sheet of a workbook. An empty sheet name selects the first sheet.
func ReadXLSX(path, sheet string) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return FromRecords(rows)
}

// WriteXLSX writes the dataset to a single-sheet workbook.
// Numeric cells are stored as numbers, missing cells are left blank.
func WriteXLSX(path string, ds *dataset.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	header := make([]interface{}, 0, ds.Width())
	for _, name := range ds.Names() {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	cols := ds.Columns()
	for r := 0; r < ds.Rows(); r++ {
		row := make([]interface{}, len(cols))
		for j, c := range cols {
			switch {
			case c.IsMissing(r):
				row[j] = nil
			case c.Kind == dataset.Numeric:
				row[j] = c.Nums[r]
			default:
				row[j] = c.Cats[r]
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
