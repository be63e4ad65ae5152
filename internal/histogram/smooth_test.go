package histogram

import (
	"math"
	"testing"
)

func TestGaussianSmooth_PreservesMass(t *testing.T) {
	curve := make([]float64, 200)
	curve[100] = 1000

	out := GaussianSmooth(curve, 6)

	var sum float64
	for _, v := range out {
		sum += v
	}
	if math.Abs(sum-1000) > 1e-6 {
		t.Errorf("mass: got %g, want 1000", sum)
	}
	if out[100] <= out[95] || out[100] <= out[105] {
		t.Error("impulse should stay peaked at its position")
	}
	if math.Abs(out[94]-out[106]) > 1e-9 {
		t.Errorf("kernel not symmetric: %g vs %g", out[94], out[106])
	}
}

func TestGaussianSmooth_NearestEdges(t *testing.T) {
	curve := []float64{5, 5, 5, 5, 5}
	out := GaussianSmooth(curve, 3)
	for i, v := range out {
		if math.Abs(v-5) > 1e-9 {
			t.Errorf("constant curve changed at %d: %g", i, v)
		}
	}
}

func TestGaussianSmooth_ZeroSigmaCopies(t *testing.T) {
	curve := []float64{1, 2, 3}
	out := GaussianSmooth(curve, 0)
	out[0] = 42
	if curve[0] != 1 {
		t.Error("GaussianSmooth must not alias its input")
	}
	if out[1] != 2 || out[2] != 3 {
		t.Errorf("zero sigma should copy, got %v", out)
	}
}
