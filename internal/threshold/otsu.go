package threshold

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoThresholdFound is returned when no split leaves both classes with a
// usable probability mass.
var ErrNoThresholdFound = errors.New("no threshold found")

// minClassMass is the smallest probability mass a class may hold.
const minClassMass = 1e-6

// Otsu searches every split i in [1, n) of the histogram, dividing it into
// bins [0, i) and [i, n), and returns the i minimising
// variance_low*mass_low + variance_high*mass_high. The threshold value is
// bins[i]. counts and bins must have the same length.
//
// The search is O(n²) in the number of bins, which is bounded by the
// histogram construction.
func Otsu(counts, bins []float64) (int, error) {
	if len(counts) != len(bins) {
		return -1, fmt.Errorf("otsu: %d counts for %d bins", len(counts), len(bins))
	}
	total := floats.Sum(counts)
	if !(total > 0) {
		return -1, fmt.Errorf("%w: empty histogram", ErrNoThresholdFound)
	}

	p := make([]float64, len(counts))
	floats.ScaleTo(p, 1/total, counts)

	best := math.Inf(1)
	ith := -1
	for i := 1; i < len(p); i++ {
		q1 := floats.Sum(p[:i])
		q2 := floats.Sum(p[i:])
		if q1 < minClassMass || q2 < minClassMass {
			continue
		}
		_, v1 := stat.PopMeanVariance(bins[:i], p[:i])
		_, v2 := stat.PopMeanVariance(bins[i:], p[i:])

		score := v1*q1 + v2*q2
		if score < best {
			best = score
			ith = i
		}
	}

	if ith < 0 {
		return -1, fmt.Errorf("%w: every split leaves an empty class", ErrNoThresholdFound)
	}
	return ith, nil
}
