package music

import (
	"fmt"
	"math"
)

// Duration is a length in quarter notes (quarter = 1.0)
type Duration float64

// NewDuration validates a quarter length
func NewDuration(quarterLength float64) (Duration, error) {
	if math.IsNaN(quarterLength) || math.IsInf(quarterLength, 0) || quarterLength <= 0 {
		return 0, fmt.Errorf("%w: duration must be a positive number, got %v", ErrInvalidInput, quarterLength)
	}
	return Duration(quarterLength), nil
}

// Durations validates a list of quarter lengths
func Durations(values []float64) ([]Duration, error) {
	out := make([]Duration, 0, len(values))
	for _, v := range values {
		d, err := NewDuration(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// QuarterLength returns the duration as a plain float
func (d Duration) QuarterLength() float64 {
	return float64(d)
}
