package histogram

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrDegenerateHistogram is returned when a histogram cannot be built or
// normalised: empty range, non-positive step, or no usable samples.
var ErrDegenerateHistogram = errors.New("degenerate histogram")

// Histogram is a uniform-bin histogram. Centers and Counts have the same
// length and Centers is strictly increasing.
type Histogram struct {
	Min     float64   `json:"min"`
	Step    float64   `json:"step"`
	Centers []float64 `json:"centers"`
	Counts  []int     `json:"counts"`
}

// Uniform bins values into consecutive intervals of width step starting at
// lo and covering at least [lo, hi].
func Uniform(values []float64, lo, hi, step float64) (*Histogram, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: non-finite range [%g, %g]", ErrDegenerateHistogram, lo, hi)
	}
	if !(hi > lo) {
		return nil, fmt.Errorf("%w: empty range [%g, %g]", ErrDegenerateHistogram, lo, hi)
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("%w: step %g", ErrDegenerateHistogram, step)
	}

	// The epsilon keeps float noise in (hi-lo)/step from adding an empty bin.
	n := int(math.Ceil((hi-lo)/step - 1e-9))
	if n < 1 {
		n = 1
	}

	h := &Histogram{
		Min:     lo,
		Step:    step,
		Centers: make([]float64, n),
		Counts:  make([]int, n),
	}
	for k := range h.Centers {
		h.Centers[k] = lo + (float64(k)+0.5)*step
	}

	upper := math.Max(hi, lo+float64(n)*step)
	for _, v := range values {
		if math.IsNaN(v) || v < lo || v > upper {
			continue
		}
		k := int((v - lo) / step)
		if k >= n {
			k = n - 1
		}
		h.Counts[k]++
	}
	return h, nil
}

// Len returns the number of bins.
func (h *Histogram) Len() int {
	return len(h.Counts)
}

// Total returns the number of counted samples.
func (h *Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// Curve returns the counts as float64, ready for smoothing or valley search.
func (h *Histogram) Curve() []float64 {
	curve := make([]float64, len(h.Counts))
	for i, c := range h.Counts {
		curve[i] = float64(c)
	}
	return curve
}

// Probabilities returns the counts normalised to sum to one.
func (h *Histogram) Probabilities() ([]float64, error) {
	total := h.Total()
	if total == 0 {
		return nil, fmt.Errorf("%w: no samples in range", ErrDegenerateHistogram)
	}
	p := h.Curve()
	floats.Scale(1/float64(total), p)
	return p, nil
}

// Cumulative returns the cumulative probability curve.
func (h *Histogram) Cumulative() ([]float64, error) {
	p, err := h.Probabilities()
	if err != nil {
		return nil, err
	}
	return floats.CumSum(make([]float64, len(p)), p), nil
}
