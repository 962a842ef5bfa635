package tableio

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "edaclean/internal/errors"
	"edaclean/internal/frame"
)

// missingTokens are cell values read as missing in numeric columns.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
}

// ReadOptions configures how raw rows become a table.
type ReadOptions struct {
	// TextColumns are kept as text even when every cell parses as a number.
	TextColumns []string

	// Comma is the CSV field delimiter. Zero means ','.
	Comma rune
}

func isMissingToken(cell string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(cell))]
	return ok
}

// buildTable turns a header and data rows into a table, inferring column kinds.
// Short rows are padded with blank cells.
func buildTable(header []string, rows [][]string, opts ReadOptions) (*frame.Table, error) {
	forced := make(map[string]struct{}, len(opts.TextColumns))
	for _, name := range opts.TextColumns {
		forced[name] = struct{}{}
	}

	names := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("unnamed_%d", i)
		}
		names[i] = name
	}

	for r, row := range rows {
		if len(row) > len(names) {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("row %d has %d cells, header has %d", r+2, len(row), len(names)), nil).
				WithContext("row", r+2)
		}
	}

	columns := make([]frame.Column, len(names))
	for col, name := range names {
		cells := make([]string, len(rows))
		for r, row := range rows {
			if col < len(row) {
				cells[r] = row[col]
			}
		}

		if _, keepText := forced[name]; keepText {
			columns[col] = frame.TextColumn(name, cells)
			continue
		}
		if values, ok := parseNumeric(cells); ok {
			columns[col] = frame.NumericColumn(name, values)
			continue
		}
		columns[col] = frame.TextColumn(name, cells)
	}

	tbl, err := frame.New(columns...)
	if err != nil {
		return nil, fmt.Errorf("build table: %w", err)
	}
	return tbl, nil
}

// parseNumeric parses cells as numbers. It reports false when a non-missing
// cell is not a number or when no cell holds a value.
func parseNumeric(cells []string) ([]float64, bool) {
	values := make([]float64, len(cells))
	seen := false
	for i, cell := range cells {
		if isMissingToken(cell) {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
		seen = true
	}
	return values, seen
}
