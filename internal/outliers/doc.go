// Package outliers implements quartile-based (Tukey) outlier detection and
// cleaning for numeric samples and tables.
//
// Fences are derived from the first and third quartiles of a sample, each
// estimated by linear interpolation:
//
//	lower = Q1 - k*IQR
//	upper = Q3 + k*IQR
//
// where IQR = Q3 - Q1 and k defaults to 1.5. A value strictly below the lower
// fence or strictly above the upper fence is an outlier.
//
// Every function here is pure. Fences are recomputed from each input, inputs
// are never modified, and the same input always yields the same output.
// Missing values (NaN) are ignored when estimating quartiles and are carried
// through masking unchanged.
//
// # Usage
//
//	fences, err := outliers.ComputeFences(sample, outliers.DefaultMultiplier)
//	masked, err := outliers.MaskOutliers(sample, outliers.DefaultMultiplier)
//
// Cleaning a whole table masks each numeric column against its own fences
// and, by default, drops rows left with a missing value:
//
//	cleaned, report, err := outliers.CleanTable(ctx, table, outliers.DefaultCleanOptions())
//
// # Errors
//
// Failures are *errors.AppError values from edaclean/internal/errors and can
// be matched with errors.Is against ErrInvalidInput (empty sample, non-finite
// values, bad multiplier, non-numeric column), ErrInsufficientData (fewer
// than MinSampleSize observed values) and ErrColumnNotFound.
package outliers
