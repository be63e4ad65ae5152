package compare

import (
	"errors"
	"math"
	"testing"

	"github.com/ign-packo/ShadowT/internal/raster"
)

func mask(width, height int, bits ...bool) *raster.Mask {
	return &raster.Mask{Width: width, Height: height, Bits: bits}
}

func TestMasks(t *testing.T) {
	ref := mask(4, 2,
		true, true, true, true,
		false, false, false, false)
	test := mask(4, 2,
		true, true, true, false,
		true, false, false, false)

	r, err := Masks(ref, test)
	if err != nil {
		t.Fatalf("Masks failed: %v", err)
	}

	counts := []struct {
		name      string
		got, want int
	}{
		{"P", r.P, 4},
		{"N", r.N, 4},
		{"PP", r.PP, 4},
		{"PN", r.PN, 4},
		{"TP", r.TP, 3},
		{"TN", r.TN, 3},
		{"FP", r.FP, 1},
		{"FN", r.FN, 1},
		{"Correct", r.Correct(), 6},
	}
	for _, c := range counts {
		if c.got != c.want {
			t.Errorf("%s: got %d, want %d", c.name, c.got, c.want)
		}
	}

	rates := []struct {
		name      string
		got, want float64
	}{
		{"ACCP", r.ACCP, 0.75},
		{"ACCN", r.ACCN, 0.75},
		{"FNR", r.FNR, 0.25},
	}
	for _, c := range rates {
		if math.Abs(c.got-c.want) > 1e-12 {
			t.Errorf("%s: got %g, want %g", c.name, c.got, c.want)
		}
	}
}

func TestMasks_Identical(t *testing.T) {
	m := mask(3, 1, true, false, true)
	r, err := Masks(m, m)
	if err != nil {
		t.Fatalf("Masks failed: %v", err)
	}
	if r.ACCP != 1 || r.ACCN != 1 || r.FNR != 0 {
		t.Errorf("identical masks: got ACCP=%g ACCN=%g FNR=%g", r.ACCP, r.ACCN, r.FNR)
	}
}

func TestMasks_NoReferenceShadow(t *testing.T) {
	ref := mask(2, 1, false, false)
	test := mask(2, 1, true, false)

	r, err := Masks(ref, test)
	if err != nil {
		t.Fatalf("Masks failed: %v", err)
	}
	if r.ACCP != 0 || r.FNR != 0 {
		t.Errorf("empty positive class: got ACCP=%g FNR=%g, want 0 and 0", r.ACCP, r.FNR)
	}
	if r.ACCN != 0.5 {
		t.Errorf("ACCN: got %g, want 0.5", r.ACCN)
	}
}

func TestMasks_DimensionMismatch(t *testing.T) {
	_, err := Masks(raster.NewMask(4, 4), raster.NewMask(4, 3))
	if !errors.Is(err, raster.ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
}
