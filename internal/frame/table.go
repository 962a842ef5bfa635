package frame

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "edaclean/internal/errors"
)

// Table is an ordered collection of equally long named columns plus the
// identity of each row.
type Table struct {
	columns []Column
	index   map[string]int
	rowIDs  []int
}

// New builds a table from columns. Column values are copied, names must be
// unique and non-empty, and all columns must have the same length.
func New(columns ...Column) (*Table, error) {
	t := &Table{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	rows := -1
	for _, c := range columns {
		if c.Name == "" {
			return nil, apperrors.NewInvalidInputError("column name must not be empty")
		}
		if _, dup := t.index[c.Name]; dup {
			return nil, apperrors.NewInvalidInputError(fmt.Sprintf("duplicate column %q", c.Name)).
				WithContext("column", c.Name)
		}
		if rows >= 0 && c.Len() != rows {
			return nil, apperrors.NewInvalidInputError(
				fmt.Sprintf("column %q has %d rows, expected %d", c.Name, c.Len(), rows)).
				WithContext("column", c.Name)
		}
		rows = c.Len()
		t.index[c.Name] = len(t.columns)
		t.columns = append(t.columns, c.clone())
	}

	if rows < 0 {
		rows = 0
	}
	t.rowIDs = make([]int, rows)
	for i := range t.rowIDs {
		t.rowIDs[i] = i
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rowIDs)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.columns)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// NumericNames returns the names of the numeric columns in order.
func (t *Table) NumericNames() []string {
	var names []string
	for _, c := range t.columns {
		if c.Kind == Numeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column. The returned slices share storage with the
// table and must not be modified.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, apperrors.NewColumnNotFoundError(name)
	}
	return t.columns[i], nil
}

// Columns returns all columns in order. The returned slices share storage with
// the table and must not be modified.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// Numeric returns the values of a numeric column. The slice shares storage
// with the table and must not be modified.
func (t *Table) Numeric(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != Numeric {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("column %q is not numeric", name)).
			WithContext("column", name)
	}
	return c.Floats, nil
}

// Text returns the values of a text column. The slice shares storage with the
// table and must not be modified.
func (t *Table) Text(name string) ([]string, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != Text {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("column %q is not text", name)).
			WithContext("column", name)
	}
	return c.Strings, nil
}

// RowIDs returns a copy of the row identities.
func (t *Table) RowIDs() []int {
	return append([]int(nil), t.rowIDs...)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		columns: make([]Column, len(t.columns)),
		index:   make(map[string]int, len(t.index)),
		rowIDs:  append([]int(nil), t.rowIDs...),
	}
	for i, c := range t.columns {
		out.columns[i] = c.clone()
		out.index[c.Name] = i
	}
	return out
}

// WithNumeric returns a copy of the table in which the named numeric column
// holds values. The other columns share storage with the receiver.
func (t *Table) WithNumeric(name string, values []float64) (*Table, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, apperrors.NewColumnNotFoundError(name)
	}
	if t.columns[i].Kind != Numeric {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("column %q is not numeric", name)).
			WithContext("column", name)
	}
	if len(values) != t.Len() {
		return nil, apperrors.NewInvalidInputError(
			fmt.Sprintf("column %q replacement has %d rows, expected %d", name, len(values), t.Len())).
			WithContext("column", name)
	}

	out := t.shallowCopy()
	out.columns[i] = NumericColumn(name, append([]float64(nil), values...))
	return out, nil
}

// Filter returns the rows whose keep flag is true, preserving row identity.
func (t *Table) Filter(keep []bool) (*Table, error) {
	if len(keep) != t.Len() {
		return nil, apperrors.NewInvalidInputError(
			fmt.Sprintf("filter mask has %d entries, table has %d rows", len(keep), t.Len()))
	}

	kept := 0
	for _, ok := range keep {
		if ok {
			kept++
		}
	}

	out := &Table{
		columns: make([]Column, len(t.columns)),
		index:   make(map[string]int, len(t.index)),
		rowIDs:  make([]int, 0, kept),
	}
	for i, ok := range keep {
		if ok {
			out.rowIDs = append(out.rowIDs, t.rowIDs[i])
		}
	}
	for i, c := range t.columns {
		out.columns[i] = c.filter(keep, kept)
		out.index[c.Name] = i
	}
	return out, nil
}

// DropMissing removes every row that has a missing value in any of the
// subset columns, or in any column when subset is empty.
func (t *Table) DropMissing(subset ...string) (*Table, error) {
	cols, err := t.resolve(subset)
	if err != nil {
		return nil, err
	}

	keep := make([]bool, t.Len())
	for row := range keep {
		keep[row] = true
		for _, c := range cols {
			if c.IsMissing(row) {
				keep[row] = false
				break
			}
		}
	}
	return t.Filter(keep)
}

// DropDuplicates removes rows whose values repeat an earlier row. With
// keepLast the last occurrence of each duplicate group is kept instead of the
// first. Missing values compare equal to each other.
func (t *Table) DropDuplicates(keepLast bool) *Table {
	n := t.Len()
	keep := make([]bool, n)
	seen := make(map[string]struct{}, n)

	visit := func(row int) {
		key := t.rowKey(row)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		keep[row] = true
	}

	if keepLast {
		for row := n - 1; row >= 0; row-- {
			visit(row)
		}
	} else {
		for row := 0; row < n; row++ {
			visit(row)
		}
	}

	out, _ := t.Filter(keep)
	return out
}

// Reindex returns a copy of the table whose rows are renumbered 0..n-1.
func (t *Table) Reindex() *Table {
	out := t.shallowCopy()
	out.rowIDs = make([]int, t.Len())
	for i := range out.rowIDs {
		out.rowIDs[i] = i
	}
	return out
}

// Cell formats the value at row, column index col as text. Missing numeric
// values render as an empty string.
func (t *Table) Cell(row, col int) string {
	c := t.columns[col]
	if c.Kind == Text {
		return c.Strings[row]
	}
	v := c.Floats[row]
	if c.IsMissing(row) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (t *Table) rowKey(row int) string {
	var b strings.Builder
	for i := range t.columns {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		if t.columns[i].Kind == Numeric {
			b.WriteString(strconv.FormatFloat(t.columns[i].Floats[row], 'g', -1, 64))
			continue
		}
		b.WriteString(t.columns[i].Strings[row])
	}
	return b.String()
}

func (t *Table) resolve(names []string) ([]Column, error) {
	if len(names) == 0 {
		return t.columns, nil
	}
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, nil
}

func (t *Table) shallowCopy() *Table {
	out := &Table{
		columns: append([]Column(nil), t.columns...),
		index:   make(map[string]int, len(t.index)),
		rowIDs:  t.rowIDs,
	}
	for k, v := range t.index {
		out.index[k] = v
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
