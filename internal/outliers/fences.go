package outliers

import (
	"fmt"
	"math"

	apperrors "edaclean/internal/errors"
	"edaclean/internal/stats"
)

const (
	// DefaultMultiplier is the conventional Tukey fence multiplier.
	DefaultMultiplier = 1.5

	// MinSampleSize is the fewest observed values quartiles are estimated from.
	MinSampleSize = 4
)

// Fences is the lower/upper outlier threshold pair of one sample, together
// with the quartiles it was derived from.
type Fences struct {
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	IQR    float64 `json:"iqr"`
	K      float64 `json:"k"`
}

// ComputeFences derives Tukey fences from the observed values of sample.
func ComputeFences(sample []float64, k float64) (Fences, error) {
	if err := validateMultiplier(k); err != nil {
		return Fences{}, err
	}
	if len(sample) == 0 {
		return Fences{}, apperrors.NewInvalidInputError("sample is empty")
	}

	observed := stats.Observed(sample)
	if len(observed) == 0 {
		return Fences{}, apperrors.NewInvalidInputError("sample has no observed values")
	}
	if math.IsInf(observed[0], 0) || math.IsInf(observed[len(observed)-1], 0) {
		return Fences{}, apperrors.NewInvalidInputError("sample contains a non-finite value")
	}
	if len(observed) < MinSampleSize {
		return Fences{}, apperrors.NewInsufficientDataError(len(observed), MinSampleSize)
	}

	q := stats.QuartilesOf(observed)
	iqr := q.IQR()
	if math.IsInf(iqr, 0) {
		return Fences{}, apperrors.NewInvalidInputError("interquartile range overflows float64").
			WithContext("q1", q.Q1).
			WithContext("q3", q.Q3)
	}
	return Fences{
		Lower:  q.Q1 - k*iqr,
		Upper:  q.Q3 + k*iqr,
		Q1:     q.Q1,
		Median: q.Median,
		Q3:     q.Q3,
		IQR:    iqr,
		K:      k,
	}, nil
}

// IsOutlier reports whether v lies strictly outside the fences. Missing
// values are never outliers.
func (f Fences) IsOutlier(v float64) bool {
	return v < f.Lower || v > f.Upper
}

// Contains reports whether v lies within the closed fence interval.
func (f Fences) Contains(v float64) bool {
	return v >= f.Lower && v <= f.Upper
}

// Mask returns a copy of sample with every outlier replaced by the missing
// marker. Applying the same fences to the result changes nothing.
func (f Fences) Mask(sample []float64) []float64 {
	out := make([]float64, len(sample))
	for i, v := range sample {
		if f.IsOutlier(v) {
			out[i] = stats.Missing()
			continue
		}
		out[i] = v
	}
	return out
}

// String renders the fence pair.
func (f Fences) String() string {
	return fmt.Sprintf("[%g, %g] (q1=%g q3=%g k=%g)", f.Lower, f.Upper, f.Q1, f.Q3, f.K)
}

func validateMultiplier(k float64) error {
	if math.IsNaN(k) || math.IsInf(k, 0) || k < 0 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("multiplier must be a finite non-negative number, got %v", k)).
			WithContext("k", k)
	}
	return nil
}
