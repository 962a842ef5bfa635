package frame

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "edaclean/internal/errors"
)

func wineTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(
		NumericColumn("alcohol", []float64{9.4, 9.8, 9.8, 11.2, 9.4}),
		NumericColumn("pH", []float64{3.51, 3.20, 3.26, 3.16, 3.51}),
		TextColumn("category", []string{"red", "red", "red", "white", "red"}),
	)
	require.NoError(t, err)
	return tbl
}

func TestNew(t *testing.T) {
	tbl := wineTable(t)

	assert.Equal(t, 5, tbl.Len())
	assert.Equal(t, 3, tbl.Width())
	assert.Equal(t, []string{"alcohol", "pH", "category"}, tbl.Names())
	assert.Equal(t, []string{"alcohol", "pH"}, tbl.NumericNames())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, tbl.RowIDs())
	assert.True(t, tbl.Has("pH"))
	assert.False(t, tbl.Has("density"))
}

func TestNew_CopiesInput(t *testing.T) {
	values := []float64{1, 2, 3}
	tbl, err := New(NumericColumn("x", values))
	require.NoError(t, err)

	values[0] = 100

	got, err := tbl.Numeric("x")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got[0])
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		columns []Column
	}{
		{
			name:    "length mismatch",
			columns: []Column{NumericColumn("a", []float64{1, 2}), TextColumn("b", []string{"x"})},
		},
		{
			name:    "duplicate name",
			columns: []Column{NumericColumn("a", []float64{1}), NumericColumn("a", []float64{2})},
		},
		{
			name:    "empty name",
			columns: []Column{NumericColumn("", []float64{1})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.columns...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestNew_Empty(t *testing.T) {
	tbl, err := New()
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, 0, tbl.Width())
}

func TestTable_ColumnAccess(t *testing.T) {
	tbl := wineTable(t)

	_, err := tbl.Numeric("density")
	assert.True(t, errors.Is(err, apperrors.ErrColumnNotFound))

	_, err = tbl.Numeric("category")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = tbl.Text("alcohol")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	cats, err := tbl.Text("category")
	require.NoError(t, err)
	assert.Equal(t, "white", cats[3])
}

func TestTable_Filter(t *testing.T) {
	tbl := wineTable(t)

	out, err := tbl.Filter([]bool{true, false, true, false, true})
	require.NoError(t, err)

	assert.Equal(t, 3, out.Len())
	assert.Equal(t, []int{0, 2, 4}, out.RowIDs())
	alcohol, _ := out.Numeric("alcohol")
	assert.Equal(t, []float64{9.4, 9.8, 9.4}, alcohol)
	cats, _ := out.Text("category")
	assert.Equal(t, []string{"red", "red", "red"}, cats)

	// receiver untouched
	assert.Equal(t, 5, tbl.Len())

	_, err = tbl.Filter([]bool{true})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestTable_FilterKeepsIdentityAcrossPasses(t *testing.T) {
	tbl := wineTable(t)

	first, err := tbl.Filter([]bool{false, true, true, true, true})
	require.NoError(t, err)
	second, err := first.Filter([]bool{true, false, true, true})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3, 4}, second.RowIDs())
	assert.Equal(t, []int{0, 1, 2}, second.Reindex().RowIDs())
}

func TestTable_WithNumeric(t *testing.T) {
	tbl := wineTable(t)

	out, err := tbl.WithNumeric("pH", []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	got, _ := out.Numeric("pH")
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, got)
	orig, _ := tbl.Numeric("pH")
	assert.Equal(t, 3.51, orig[0])

	_, err = tbl.WithNumeric("density", []float64{1, 2, 3, 4, 5})
	assert.True(t, errors.Is(err, apperrors.ErrColumnNotFound))
	_, err = tbl.WithNumeric("category", []float64{1, 2, 3, 4, 5})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	_, err = tbl.WithNumeric("pH", []float64{1})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestTable_DropDuplicates(t *testing.T) {
	tbl := wineTable(t)

	first := tbl.DropDuplicates(false)
	assert.Equal(t, []int{0, 1, 2, 3}, first.RowIDs())

	last := tbl.DropDuplicates(true)
	assert.Equal(t, []int{1, 2, 3, 4}, last.RowIDs())
}

func TestTable_DropDuplicates_MissingEqual(t *testing.T) {
	tbl, err := New(
		NumericColumn("cost", []float64{math.NaN(), 10, math.NaN()}),
		TextColumn("name", []string{"ana", "ana", "ana"}),
	)
	require.NoError(t, err)

	out := tbl.DropDuplicates(true)
	assert.Equal(t, []int{1, 2}, out.RowIDs())
}

func TestTable_DropMissing(t *testing.T) {
	tbl, err := New(
		NumericColumn("cost", []float64{100, math.NaN(), 300, 400}),
		TextColumn("smoker", []string{"no", "yes", "  ", "no"}),
		TextColumn("notes", []string{"", "", "", "x"}),
	)
	require.NoError(t, err)

	subset, err := tbl.DropMissing("cost", "smoker")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3}, subset.RowIDs())

	all, err := tbl.DropMissing()
	require.NoError(t, err)
	assert.Equal(t, []int{3}, all.RowIDs())

	_, err = tbl.DropMissing("age")
	assert.True(t, errors.Is(err, apperrors.ErrColumnNotFound))
}

func TestTable_Clone(t *testing.T) {
	tbl := wineTable(t)
	clone := tbl.Clone()

	cols := clone.Columns()
	cols[0].Floats[0] = -1

	orig, _ := tbl.Numeric("alcohol")
	assert.Equal(t, 9.4, orig[0])
}

func TestTable_Cell(t *testing.T) {
	tbl, err := New(
		NumericColumn("x", []float64{1.5, math.NaN()}),
		TextColumn("y", []string{"a", "b"}),
	)
	require.NoError(t, err)

	assert.Equal(t, "1.5", tbl.Cell(0, 0))
	assert.Equal(t, "", tbl.Cell(1, 0))
	assert.Equal(t, "b", tbl.Cell(1, 1))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "numeric", Numeric.String())
	assert.Equal(t, "text", Text.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
