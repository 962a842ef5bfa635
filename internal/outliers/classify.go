package outliers

// Counts holds how many values fell below the lower fence and above the
// upper fence.
type Counts struct {
	Below int `json:"below"`
	Above int `json:"above"`
}

// Total returns the number of outliers on both sides.
func (c Counts) Total() int {
	return c.Below + c.Above
}

// Classification flags each value of a sample as outlier or not.
type Classification struct {
	Fences Fences
	Flags  []bool
	Counts
}

// Classify computes the fences of sample and flags every value outside them.
func Classify(sample []float64, k float64) (Classification, error) {
	fences, err := ComputeFences(sample, k)
	if err != nil {
		return Classification{}, err
	}
	return classifyWith(fences, sample), nil
}

// CountOutliers returns the number of values strictly below the lower fence
// and strictly above the upper fence.
func CountOutliers(sample []float64, k float64) (Counts, error) {
	c, err := Classify(sample, k)
	if err != nil {
		return Counts{}, err
	}
	return c.Counts, nil
}

// MaskOutliers returns a same-length copy of sample in which every value
// outside its fences is replaced with the missing marker.
func MaskOutliers(sample []float64, k float64) ([]float64, error) {
	fences, err := ComputeFences(sample, k)
	if err != nil {
		return nil, err
	}
	return fences.Mask(sample), nil
}

func classifyWith(f Fences, sample []float64) Classification {
	c := Classification{
		Fences: f,
		Flags:  make([]bool, len(sample)),
	}
	for i, v := range sample {
		switch {
		case v < f.Lower:
			c.Below++
			c.Flags[i] = true
		case v > f.Upper:
			c.Above++
			c.Flags[i] = true
		}
	}
	return c
}
