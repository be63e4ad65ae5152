package threshold

import (
	"errors"
	"fmt"
)

// ErrNoValleyFound is returned when a curve has no peak or no valley after
// its first peak.
var ErrNoValleyFound = errors.New("no valley found")

// Peaks returns the indices of the local maxima of curve. A flat-topped peak
// is reported once, at the middle of its plateau. The end points are never
// peaks.
func Peaks(curve []float64) []int {
	var peaks []int
	last := len(curve) - 1
	for i := 1; i < last; i++ {
		if !(curve[i-1] < curve[i]) {
			continue
		}
		ahead := i + 1
		for ahead < last && curve[ahead] == curve[i] {
			ahead++
		}
		if curve[ahead] < curve[i] {
			peaks = append(peaks, (i+ahead-1)/2)
			i = ahead - 1
		}
	}
	return peaks
}

// Minima returns the indices of the local minima of curve, with the same
// plateau handling as Peaks.
func Minima(curve []float64) []int {
	inverted := make([]float64, len(curve))
	for i, v := range curve {
		inverted[i] = -v
	}
	return Peaks(inverted)
}

// Valleys returns the local minima of curve that occur after its first
// peak, in increasing order. Minima in the low tail ahead of the first mode
// are sampling noise, not decision boundaries.
func Valleys(curve []float64) ([]int, error) {
	peaks := Peaks(curve)
	if len(peaks) == 0 {
		return nil, fmt.Errorf("%w: curve has no peak", ErrNoValleyFound)
	}

	var valleys []int
	for _, v := range Minima(curve) {
		if v > peaks[0] {
			valleys = append(valleys, v)
		}
	}
	if len(valleys) == 0 {
		return nil, fmt.Errorf("%w: no minimum after first peak at %d", ErrNoValleyFound, peaks[0])
	}
	return valleys, nil
}

// FirstValley returns the first valley after the first peak.
func FirstValley(curve []float64) (int, error) {
	valleys, err := Valleys(curve)
	if err != nil {
		return -1, err
	}
	return valleys[0], nil
}

// LastValley returns the rightmost valley after the first peak.
func LastValley(curve []float64) (int, error) {
	valleys, err := Valleys(curve)
	if err != nil {
		return -1, err
	}
	return valleys[len(valleys)-1], nil
}
