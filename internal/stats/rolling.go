package stats

import (
	"math"

	apperrors "edaclean/internal/errors"
)

// RollingMean returns the trailing mean over window consecutive values.
// Position i holds the mean of values[i-window+1 : i+1]; the first window-1
// positions, and any window that contains a missing value, are NaN.
func RollingMean(values []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, apperrors.NewInvalidInputError("rolling window must be at least 1").
			WithContext("window", window)
	}

	out := make([]float64, len(values))
	sum := 0.0
	missing := 0

	for i, v := range values {
		if IsMissing(v) {
			missing++
		} else {
			sum += v
		}

		if i >= window {
			old := values[i-window]
			if IsMissing(old) {
				missing--
			} else {
				sum -= old
			}
		}

		if i < window-1 || missing > 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}

	return out, nil
}
