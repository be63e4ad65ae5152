package histogram

import (
	"fmt"
	"math"
)

// Equalizer maps values through the cumulative histogram of a sample.
type Equalizer struct {
	cum        []float64
	x0, x1     float64
	scale      float64
	cmin, cmax float64
}

// NewEqualizer builds the equalization of sample within [lo, hi].
//
// The histogram uses unit-width bins. Map clips a value to the first and
// last bin centres, maps it to its bin and returns the bin's cumulative
// probability, rescaled so the first bin maps to 0 and the last to 1.
//
// ErrDegenerateHistogram is returned when the cumulative curve is flat, which
// happens when every sample lands in the first bin or none lands in range.
func NewEqualizer(sample []float64, lo, hi float64) (*Equalizer, error) {
	h, err := Uniform(sample, lo, hi, 1)
	if err != nil {
		return nil, err
	}
	cum, err := h.Cumulative()
	if err != nil {
		return nil, err
	}

	n := h.Len()
	cmin, cmax := cum[0], cum[n-1]
	if n < 2 || cmax-cmin <= 0 {
		return nil, fmt.Errorf("%w: cumulative curve is flat", ErrDegenerateHistogram)
	}

	x0, x1 := h.Centers[0], h.Centers[n-1]
	return &Equalizer{
		cum:   cum,
		x0:    x0,
		x1:    x1,
		scale: float64(n-1) / (x1 - x0),
		cmin:  cmin,
		cmax:  cmax,
	}, nil
}

// Map returns the equalized value of v in [0, 1]. It is monotonically
// non-decreasing in v.
func (e *Equalizer) Map(v float64) float64 {
	switch {
	case math.IsNaN(v), v < e.x0:
		v = e.x0
	case v > e.x1:
		v = e.x1
	}
	idx := int((v - e.x0) * e.scale)
	if idx > len(e.cum)-1 {
		idx = len(e.cum) - 1
	}
	return (e.cum[idx] - e.cmin) / (e.cmax - e.cmin)
}

// Equalize redistributes values over [0, 1] so that their distribution
// within [lo, hi] becomes approximately flat. It is NewEqualizer(values)
// applied to every value.
func Equalize(values []float64, lo, hi float64) ([]float64, error) {
	e, err := NewEqualizer(values, lo, hi)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = e.Map(v)
	}
	return out, nil
}
