package outliers

import (
	"go.uber.org/multierr"

	apperrors "edaclean/internal/errors"
	"edaclean/internal/frame"
)

// Summarize profiles each requested numeric column (all numeric columns when
// columns is empty): observed min and max, fences and outlier counts.
// Columns that cannot be profiled are skipped and their errors combined into
// the returned error, so callers get every report that could be computed.
func Summarize(t *frame.Table, columns []string, k float64) ([]ColumnReport, error) {
	if t == nil {
		return nil, apperrors.NewInvalidInputError("table is nil")
	}
	if err := validateMultiplier(k); err != nil {
		return nil, err
	}

	if len(columns) == 0 {
		columns = t.NumericNames()
	}

	var (
		reports []ColumnReport
		errs    error
	)
	for _, name := range columns {
		values, err := t.Numeric(name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		report, _, err := profileColumn(name, values, k)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, errs
}
