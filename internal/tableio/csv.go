package tableio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	apperrors "edaclean/internal/errors"
	"edaclean/internal/frame"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures table output.
type WriteOptions struct {
	// BOMPrefix writes a UTF-8 byte order mark so Excel detects the encoding.
	BOMPrefix bool
}

// ReadCSV reads a CSV document with a header row into a table.
func ReadCSV(r io.Reader, opts ReadOptions) (*frame.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewStorageError("read csv", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("parse csv", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("csv has no header row", nil)
	}

	return buildTable(records[0], records[1:], opts)
}

// WriteCSV writes the table as CSV with a header row. Missing numeric values
// are written as empty cells.
func WriteCSV(w io.Writer, t *frame.Table, opts WriteOptions) error {
	if opts.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return apperrors.NewStorageError("write BOM", err)
		}
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(t.Names()); err != nil {
		return apperrors.NewStorageError("write csv header", err)
	}

	record := make([]string, t.Width())
	for row := 0; row < t.Len(); row++ {
		for col := range record {
			record[col] = t.Cell(row, col)
		}
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("write csv row %d", row+1), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewStorageError("flush csv", err)
	}
	return nil
}
