package compare

import (
	"fmt"

	"github.com/ign-packo/ShadowT/internal/raster"
)

// Report is the confusion matrix of a test mask against a reference mask.
type Report struct {
	P  int `json:"p"`
	N  int `json:"n"`
	PP int `json:"pp"`
	PN int `json:"pn"`
	TP int `json:"tp"`
	TN int `json:"tn"`
	FP int `json:"fp"`
	FN int `json:"fn"`

	ACCP float64 `json:"accp"`
	ACCN float64 `json:"accn"`
	FNR  float64 `json:"fnr"`
}

// Masks compares test against ref. Both masks must have the same shape.
func Masks(ref, test *raster.Mask) (Report, error) {
	if ref.Width != test.Width || ref.Height != test.Height || len(ref.Bits) != len(test.Bits) {
		return Report{}, fmt.Errorf("%w: reference %dx%d, test %dx%d", raster.ErrDimensionMismatch,
			ref.Width, ref.Height, test.Width, test.Height)
	}

	var r Report
	for i, want := range ref.Bits {
		got := test.Bits[i]
		switch {
		case want && got:
			r.TP++
		case want && !got:
			r.FN++
		case !want && got:
			r.FP++
		default:
			r.TN++
		}
	}
	r.P = r.TP + r.FN
	r.N = r.TN + r.FP
	r.PP = r.TP + r.FP
	r.PN = r.TN + r.FN

	r.ACCP = rate(r.TP, r.P)
	r.ACCN = rate(r.TN, r.N)
	if r.P > 0 {
		r.FNR = 1 - r.ACCP
	}
	return r, nil
}

// Correct returns the number of pixels classified as in the reference.
func (r Report) Correct() int {
	return r.TP + r.TN
}

func rate(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
