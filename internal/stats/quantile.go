package stats

import (
	"math"
	"sort"
)

// Missing returns the marker used for an absent value in a numeric sample.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Observed returns a sorted copy of sample with missing values removed.
// The input is not modified.
func Observed(sample []float64) []float64 {
	observed := make([]float64, 0, len(sample))
	for _, v := range sample {
		if !IsMissing(v) {
			observed = append(observed, v)
		}
	}
	sort.Float64s(observed)
	return observed
}

// Quantile returns the p-quantile (0 <= p <= 1) of an ascending slice using
// linear interpolation between closest ranks. It returns NaN for an empty
// slice or an out-of-range p.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 || math.IsNaN(p) || p < 0 || p > 1 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}

	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}

	frac := pos - float64(lo)
	span := sorted[hi] - sorted[lo]
	if math.IsInf(span, 0) {
		// neighbours of opposite sign near the float64 limits
		return sorted[lo]*(1-frac) + sorted[hi]*frac
	}
	return sorted[lo] + frac*span
}

// Quartiles holds the three quartile cut points of a sample.
type Quartiles struct {
	Q1     float64
	Median float64
	Q3     float64
}

// IQR returns the interquartile range Q3 - Q1.
func (q Quartiles) IQR() float64 {
	return q.Q3 - q.Q1
}

// QuartilesOf computes the quartiles of an ascending slice.
func QuartilesOf(sorted []float64) Quartiles {
	return Quartiles{
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.50),
		Q3:     Quantile(sorted, 0.75),
	}
}
