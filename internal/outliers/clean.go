package outliers

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	apperrors "edaclean/internal/errors"
	"edaclean/internal/frame"
	"edaclean/internal/stats"
)

// CleanOptions configures CleanTable.
type CleanOptions struct {
	// Columns lists the numeric columns to clean. Empty means every numeric
	// column of the table.
	Columns []string

	// Multiplier is the fence multiplier k.
	Multiplier float64

	// DropIncomplete removes rows holding a missing value in any cleaned
	// column once masking is done.
	DropIncomplete bool

	// Workers bounds how many columns are processed at once. Zero or less
	// means runtime.GOMAXPROCS(0).
	Workers int
}

// DefaultCleanOptions returns options that clean every numeric column with
// k = 1.5 and drop incomplete rows.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		Multiplier:     DefaultMultiplier,
		DropIncomplete: true,
	}
}

// ColumnReport describes the outlier profile of one column.
type ColumnReport struct {
	Column   string  `json:"column"`
	Fences   Fences  `json:"fences"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Observed int     `json:"observed"`
	Missing  int     `json:"missing"`
	Counts
}

// CleanReport summarises one CleanTable pass.
type CleanReport struct {
	RunID      string         `json:"run_id"`
	Multiplier float64        `json:"multiplier"`
	RowsIn     int            `json:"rows_in"`
	RowsOut    int            `json:"rows_out"`
	Columns    []ColumnReport `json:"columns"`
	Duration   time.Duration  `json:"duration"`
}

// RowsDropped returns how many rows the pass removed.
func (r *CleanReport) RowsDropped() int {
	return r.RowsIn - r.RowsOut
}

// Masked returns how many values were replaced with the missing marker.
func (r *CleanReport) Masked() int {
	total := 0
	for _, c := range r.Columns {
		total += c.Total()
	}
	return total
}

// CleanTable masks the outliers of each selected numeric column against that
// column's own fences and, when opts.DropIncomplete is set, removes every row
// left with a missing value in a cleaned column. Columns not cleaned are kept
// as they are and stay aligned by row identity. The input table is not
// modified and the result never has more rows than the input.
func CleanTable(ctx context.Context, t *frame.Table, opts CleanOptions) (*frame.Table, *CleanReport, error) {
	start := time.Now()

	if t == nil {
		return nil, nil, apperrors.NewInvalidInputError("table is nil")
	}
	if err := validateMultiplier(opts.Multiplier); err != nil {
		return nil, nil, err
	}

	names, err := selectColumns(t, opts.Columns)
	if err != nil {
		return nil, nil, err
	}

	masked := make([][]float64, len(names))
	reports := make([]ColumnReport, len(names))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			values, err := t.Numeric(name)
			if err != nil {
				return err
			}
			report, fences, err := profileColumn(name, values, opts.Multiplier)
			if err != nil {
				return err
			}
			masked[i] = fences.Mask(values)
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	out := t
	for i, name := range names {
		out, err = out.WithNumeric(name, masked[i])
		if err != nil {
			return nil, nil, fmt.Errorf("attach cleaned column %q: %w", name, err)
		}
	}
	if out == t {
		out = t.Clone()
	}

	if opts.DropIncomplete && len(names) > 0 {
		out, err = out.DropMissing(names...)
		if err != nil {
			return nil, nil, fmt.Errorf("drop incomplete rows: %w", err)
		}
	}

	report := &CleanReport{
		RunID:      uuid.NewString(),
		Multiplier: opts.Multiplier,
		RowsIn:     t.Len(),
		RowsOut:    out.Len(),
		Columns:    reports,
		Duration:   time.Since(start),
	}
	return out, report, nil
}

// profileColumn computes the fences and outlier counts of one column.
func profileColumn(name string, values []float64, k float64) (ColumnReport, Fences, error) {
	c, err := Classify(values, k)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			appErr.WithContext("column", name)
		}
		return ColumnReport{}, Fences{}, fmt.Errorf("column %q: %w", name, err)
	}

	observed := stats.Observed(values)
	return ColumnReport{
		Column:   name,
		Fences:   c.Fences,
		Min:      observed[0],
		Max:      observed[len(observed)-1],
		Observed: len(observed),
		Missing:  len(values) - len(observed),
		Counts:   c.Counts,
	}, c.Fences, nil
}

// selectColumns resolves the requested column names, defaulting to every
// numeric column. Duplicates are ignored.
func selectColumns(t *frame.Table, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return t.NumericNames(), nil
	}

	seen := make(map[string]struct{}, len(requested))
	names := make([]string, 0, len(requested))
	for _, name := range requested {
		if _, dup := seen[name]; dup {
			continue
		}
		if _, err := t.Numeric(name); err != nil {
			return nil, err
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}
