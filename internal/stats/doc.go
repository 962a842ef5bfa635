// Package stats holds the descriptive statistics shared by the cleaning
// pipeline: linear-interpolation quantiles, a pandas-style describe summary
// and trailing rolling means.
//
// Missing values are represented by NaN throughout. Functions that summarise
// a sample skip missing values; RollingMean propagates them into every window
// they fall in.
//
// # Quantiles
//
// Quantile uses the estimator that numpy and pandas apply by default: the
// p-quantile of n sorted values sits at position p*(n-1), and fractional
// positions are linearly interpolated between their neighbours.
//
//	sorted := stats.Observed([]float64{4, 1, math.NaN(), 3, 2})
//	q1 := stats.Quantile(sorted, 0.25) // 1.75
package stats
