package stretch

import (
	"errors"
	"fmt"

	"github.com/ign-packo/ShadowT/internal/histogram"
	"github.com/ign-packo/ShadowT/internal/raster"
)

// ErrInvalidWindow is returned when a window is not ordered inside [0, 1].
var ErrInvalidWindow = errors.New("invalid stretch window")

// Window is a cumulative-probability range.
type Window struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// DefaultWindow keeps the darkest samples and clips the brightest 2%.
var DefaultWindow = Window{Low: 0, High: 0.98}

// Validate checks 0 <= Low < High <= 1.
func (w Window) Validate() error {
	if w.Low < 0 || w.High > 1 || !(w.Low < w.High) {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidWindow, w.Low, w.High)
	}
	return nil
}

// Bounds returns the sample range selected by w for one band.
func Bounds(band []uint16, depth raster.ColorDepth, w Window) (lo, hi float64, err error) {
	values := make([]float64, len(band))
	for i, v := range band {
		values[i] = float64(v)
	}
	h, err := histogram.Uniform(values, 0, depth.Max, 1)
	if err != nil {
		return 0, 0, err
	}
	cum, err := h.Cumulative()
	if err != nil {
		return 0, 0, err
	}

	first, last := -1, -1
	for k, c := range cum {
		if first < 0 && c >= w.Low {
			first = k
		}
		if c <= w.High {
			last = k
		}
	}
	if first < 0 || last < 0 || last <= first {
		return 0, 0, fmt.Errorf("%w: window [%g, %g] selects no range", histogram.ErrDegenerateHistogram, w.Low, w.High)
	}
	return h.Centers[first], h.Centers[last], nil
}

// ToUint8 stretches every band of r onto [0, 255]. The result has the same
// shape and band order as r.
func ToUint8(r *raster.Raster, depth raster.ColorDepth, w Window) (*raster.Raster, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := depth.Validate(); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	out := raster.New(r.Width, r.Height, r.NumBands())
	for b, src := range r.Bands {
		lo, hi, err := Bounds(src, depth, w)
		if err != nil {
			return nil, fmt.Errorf("band %d: %w", b, err)
		}
		scale := 255 / (hi - lo)
		dst := out.Bands[b]
		for i, v := range src {
			f := float64(v)
			if f < lo {
				f = lo
			} else if f > hi {
				f = hi
			}
			dst[i] = uint16((f - lo) * scale)
		}
	}
	return out, nil
}
