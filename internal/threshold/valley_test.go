package threshold

import (
	"errors"
	"reflect"
	"testing"
)

func TestPeaks(t *testing.T) {
	tests := []struct {
		name  string
		curve []float64
		want  []int
	}{
		{"single peak", []float64{0, 1, 3, 1, 0}, []int{2}},
		{"plateau peak", []float64{0, 2, 2, 2, 0}, []int{2}},
		{"even plateau", []float64{0, 2, 2, 0}, []int{1}},
		{"rising edge is not a peak", []float64{0, 1, 2, 3}, nil},
		{"shoulder is not a peak", []float64{0, 2, 2, 3, 1}, []int{3}},
		{"two peaks", []float64{0, 5, 1, 4, 0}, []int{1, 3}},
		{"too short", []float64{1, 2}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Peaks(tt.curve)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMinima(t *testing.T) {
	got := Minima([]float64{5, 1, 4, 4, 0, 3})
	want := []int{1, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestValleys_Bimodal(t *testing.T) {
	curve := gaussianCurve(101, 10, 10, 90)

	valleys, err := Valleys(curve)
	if err != nil {
		t.Fatalf("Valleys failed: %v", err)
	}
	if !reflect.DeepEqual(valleys, []int{50}) {
		t.Errorf("got %v, want [50]", valleys)
	}

	first, _ := FirstValley(curve)
	last, _ := LastValley(curve)
	if first != 50 || last != 50 {
		t.Errorf("first/last: got %d/%d, want 50/50", first, last)
	}
}

func TestValleys_DiscardsLowTail(t *testing.T) {
	// A dip at index 2 precedes the first peak and must be ignored.
	curve := []float64{3, 2, 1, 4, 8, 5, 2, 6, 9, 4, 3, 7, 1}

	valleys, err := Valleys(curve)
	if err != nil {
		t.Fatalf("Valleys failed: %v", err)
	}
	if !reflect.DeepEqual(valleys, []int{6, 10}) {
		t.Errorf("got %v, want [6 10]", valleys)
	}

	first, _ := FirstValley(curve)
	last, _ := LastValley(curve)
	if first != 6 {
		t.Errorf("FirstValley: got %d, want 6", first)
	}
	if last != 10 {
		t.Errorf("LastValley: got %d, want 10", last)
	}
}

func TestValleys_NoValley(t *testing.T) {
	tests := []struct {
		name  string
		curve []float64
	}{
		{"unimodal", gaussianCurve(100, 10, 50)},
		{"monotonic", []float64{1, 2, 3, 4, 5}},
		{"flat", []float64{2, 2, 2, 2}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Valleys(tt.curve)
			if !errors.Is(err, ErrNoValleyFound) {
				t.Errorf("got %v, want ErrNoValleyFound", err)
			}
			if _, err := FirstValley(tt.curve); !errors.Is(err, ErrNoValleyFound) {
				t.Errorf("FirstValley: got %v, want ErrNoValleyFound", err)
			}
			if _, err := LastValley(tt.curve); !errors.Is(err, ErrNoValleyFound) {
				t.Errorf("LastValley: got %v, want ErrNoValleyFound", err)
			}
		})
	}
}
