package stats

import (
	"fmt"
	"math"
	"strings"

	mstats "github.com/montanaflynn/stats"

	apperrors "edaclean/internal/errors"
)

// describePercentiles are the cut points reported by Describe, in percent.
var describePercentiles = []float64{25, 50, 75}

// Description summarises a numeric sample the way pandas' describe() does.
// Count is the number of observed (non-missing) values and Std is the
// sample standard deviation (n-1 denominator).
type Description struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Describe computes count, mean, standard deviation, min, quartiles and max
// of the observed values in sample.
func Describe(sample []float64) (Description, error) {
	observed := Observed(sample)
	if len(observed) == 0 {
		return Description{}, apperrors.NewInvalidInputError("cannot describe a sample with no observed values")
	}
	for _, v := range observed {
		if math.IsInf(v, 0) {
			return Description{}, apperrors.NewInvalidInputError("sample contains a non-finite value")
		}
	}

	percentiles := describePercentiles
	desc, err := mstats.DescribePercentileFunc(mstats.Float64Data(observed), false, &percentiles, interpolatedPercentile)
	if err != nil {
		return Description{}, fmt.Errorf("describe sample: %w", err)
	}

	out := Description{
		Count: desc.Count,
		Mean:  desc.Mean,
		Min:   desc.Min,
		Max:   desc.Max,
		Std:   math.NaN(),
	}
	if desc.Count > 1 {
		out.Std, err = mstats.StandardDeviationSample(mstats.Float64Data(observed))
		if err != nil {
			return Description{}, fmt.Errorf("sample standard deviation: %w", err)
		}
	}
	for _, p := range desc.DescriptionPercentiles {
		switch p.Percentile {
		case 25:
			out.Q1 = p.Value
		case 50:
			out.Median = p.Value
		case 75:
			out.Q3 = p.Value
		}
	}

	return out, nil
}

// interpolatedPercentile adapts Quantile to the percentile callback used by
// montanaflynn/stats, which passes percentages in (0, 100].
func interpolatedPercentile(input mstats.Float64Data, percent float64) (float64, error) {
	if input.Len() == 0 {
		return math.NaN(), mstats.ErrEmptyInput
	}
	if percent <= 0 || percent > 100 {
		return math.NaN(), mstats.ErrBounds
	}
	return Quantile(Observed(input), percent/100), nil
}

// String renders the description as a two-column table.
func (d Description) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "count\t%d\n", d.Count)
	fmt.Fprintf(&b, "mean\t%.6g\n", d.Mean)
	fmt.Fprintf(&b, "std\t%.6g\n", d.Std)
	fmt.Fprintf(&b, "min\t%.6g\n", d.Min)
	fmt.Fprintf(&b, "25%%\t%.6g\n", d.Q1)
	fmt.Fprintf(&b, "50%%\t%.6g\n", d.Median)
	fmt.Fprintf(&b, "75%%\t%.6g\n", d.Q3)
	fmt.Fprintf(&b, "max\t%.6g", d.Max)
	return b.String()
}
