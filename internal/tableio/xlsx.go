package tableio

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	apperrors "edaclean/internal/errors"
	"edaclean/internal/frame"
)

// defaultSheet is the sheet excelize creates in a new workbook.
const defaultSheet = "Sheet1"

// ReadXLSX reads a worksheet whose first row is the header into a table.
// An empty sheet name selects the first sheet of the workbook.
func ReadXLSX(path, sheet string, opts ReadOptions) (*frame.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewParsingError("workbook has no sheets", nil).WithContext("path", path)
		}
		sheet = sheets[0]
	}

	// raw values keep full float64 precision; formatted text is cut to 15 digits
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("read sheet %q", sheet), err).
			WithContext("path", path).
			WithContext("sheet", sheet)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("sheet %q has no header row", sheet), nil).
			WithContext("sheet", sheet)
	}

	return buildTable(rows[0], rows[1:], opts)
}

// WriteXLSX writes the table to a new workbook at path. Numeric cells are
// stored as numbers; missing values are left empty. An empty sheet name
// uses the workbook's default sheet.
func WriteXLSX(path, sheet string, t *frame.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("name sheet %q", sheet), err)
		}
	}

	header := make([]interface{}, t.Width())
	for i, name := range t.Names() {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.NewStorageError("write header", err)
	}

	columns := t.Columns()
	for row := 0; row < t.Len(); row++ {
		values := make([]interface{}, len(columns))
		for col, c := range columns {
			switch {
			case c.IsMissing(row):
				values[col] = nil
			case c.Kind == frame.Numeric:
				values[col] = c.Floats[row]
			default:
				values[col] = c.Strings[row]
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return apperrors.NewStorageError("address row", err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("write row %d", row+1), err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("save workbook", err).WithContext("path", path)
	}
	return nil
}
