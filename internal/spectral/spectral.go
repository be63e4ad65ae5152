package spectral

import (
	"github.com/anthonynsimon/bild/parallel"

	"github.com/ign-packo/ShadowT/internal/raster"
)

// newMapFor allocates a map shaped like r.
func newMapFor(r *raster.Raster) *raster.Map {
	return raster.NewMap(r.Width, r.Height)
}

// fill evaluates fn for every pixel index of m, one row band per worker.
func fill(m *raster.Map, fn func(i int) float64) {
	parallel.Line(m.Height, func(start, end int) {
		for i := start * m.Width; i < end*m.Width; i++ {
			m.Values[i] = fn(i)
		}
	})
}

// floorOne guards a ratio denominator.
func floorOne(t float64) float64 {
	if t < 1 {
		return 1
	}
	return t
}
