package types

// SummaryPair is one (label, value) row of an analyzer result.
// Value is an int, a float64 or a string.
type SummaryPair struct {
	Label string `json:"label" yaml:"label"`
	Value any    `json:"value" yaml:"value"`
}

// Pair builds a SummaryPair.
func Pair(label string, value any) SummaryPair {
	return SummaryPair{Label: label, Value: value}
}

// Float returns the value as float64 when it is numeric.
func (p SummaryPair) Float() (float64, bool) {
	switch v := p.Value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// IsNumeric reports whether the value is a number.
func (p SummaryPair) IsNumeric() bool {
	_, ok := p.Float()
	return ok
}

// Summary is the ordered output of an analyzer.
type Summary []SummaryPair

// Labels returns the labels in order.
func (s Summary) Labels() []string {
	labels := make([]string, len(s))
	for i, p := range s {
		labels[i] = p.Label
	}
	return labels
}
