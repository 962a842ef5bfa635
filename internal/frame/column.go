package frame

import "math"

// Kind identifies the storage type of a column.
type Kind int

const (
	// Numeric columns hold float64 values; NaN marks a missing value.
	Numeric Kind = iota
	// Text columns hold strings; a blank string marks a missing value.
	Text
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Column is a named, typed column. Exactly one of Floats or Strings is used,
// according to Kind.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
}

// NumericColumn builds a numeric column.
func NumericColumn(name string, values []float64) Column {
	return Column{Name: name, Kind: Numeric, Floats: values}
}

// TextColumn builds a text column.
func TextColumn(name string, values []string) Column {
	return Column{Name: name, Kind: Text, Strings: values}
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// IsMissing reports whether the value at row i is missing.
func (c Column) IsMissing(i int) bool {
	if c.Kind == Numeric {
		return math.IsNaN(c.Floats[i])
	}
	return isBlank(c.Strings[i])
}

func (c Column) clone() Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Kind == Numeric {
		out.Floats = append(make([]float64, 0, len(c.Floats)), c.Floats...)
	} else {
		out.Strings = append(make([]string, 0, len(c.Strings)), c.Strings...)
	}
	return out
}

func (c Column) filter(keep []bool, kept int) Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Kind == Numeric {
		out.Floats = make([]float64, 0, kept)
		for i, ok := range keep {
			if ok {
				out.Floats = append(out.Floats, c.Floats[i])
			}
		}
		return out
	}
	out.Strings = make([]string, 0, kept)
	for i, ok := range keep {
		if ok {
			out.Strings = append(out.Strings, c.Strings[i])
		}
	}
	return out
}
