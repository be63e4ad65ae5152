package stretch

import (
	"errors"
	"testing"

	"github.com/ign-packo/ShadowT/internal/histogram"
	"github.com/ign-packo/ShadowT/internal/raster"
)

func depth16(t *testing.T) raster.ColorDepth {
	t.Helper()
	d, err := raster.NewColorDepth(16)
	if err != nil {
		t.Fatalf("NewColorDepth: %v", err)
	}
	return d
}

// rampRaster holds the values 0, step, 2*step, ... in every band.
func rampRaster(n int, step uint16, bands int) *raster.Raster {
	r := raster.New(n, 1, bands)
	for b := range r.Bands {
		for i := range r.Bands[b] {
			r.Bands[b][i] = uint16(i) * step
		}
	}
	return r
}

func TestWindow_Validate(t *testing.T) {
	tests := []struct {
		name    string
		w       Window
		wantErr bool
	}{
		{"default", DefaultWindow, false},
		{"full", Window{0, 1}, false},
		{"inverted", Window{0.9, 0.1}, true},
		{"empty", Window{0.5, 0.5}, true},
		{"negative", Window{-0.1, 0.5}, true},
		{"above one", Window{0, 1.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidWindow) {
				t.Errorf("got %v, want ErrInvalidWindow", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	// 100 samples at 0, 100, ..., 9900.
	band := rampRaster(100, 100, 1).Bands[0]

	lo, hi, err := Bounds(band, depth16(t), DefaultWindow)
	if err != nil {
		t.Fatalf("Bounds failed: %v", err)
	}
	if lo != 0.5 {
		t.Errorf("lo: got %g, want 0.5", lo)
	}
	// 98% of the samples are at or below 9700; rounding in the cumulative
	// sum may stop the window one sample earlier.
	if hi < 9600 || hi >= 9800 {
		t.Errorf("hi: got %g, want within [9600, 9800)", hi)
	}
}

func TestToUint8(t *testing.T) {
	r := rampRaster(100, 100, 3)

	out, err := ToUint8(r, depth16(t), DefaultWindow)
	if err != nil {
		t.Fatalf("ToUint8 failed: %v", err)
	}
	if out.Width != 100 || out.Height != 1 || out.NumBands() != 3 {
		t.Fatalf("shape: got %dx%dx%d", out.Width, out.Height, out.NumBands())
	}

	for b := range out.Bands {
		prev := uint16(0)
		for i, v := range out.Bands[b] {
			if v > 255 {
				t.Fatalf("band %d pixel %d: %d exceeds 255", b, i, v)
			}
			if v < prev {
				t.Fatalf("band %d pixel %d: output not monotonic", b, i)
			}
			prev = v
		}
		if out.Bands[b][0] != 0 {
			t.Errorf("band %d: darkest sample got %d, want 0", b, out.Bands[b][0])
		}
		if out.Bands[b][99] != 255 {
			t.Errorf("band %d: clipped brightest sample got %d, want 255", b, out.Bands[b][99])
		}
	}
	if r.Bands[0][99] != 9900 {
		t.Error("input raster modified")
	}
}

func TestToUint8_Degenerate(t *testing.T) {
	// Every sample lands in the first bin, whose cumulative probability
	// already exceeds the window's upper bound.
	flat := raster.New(4, 4, 3)

	_, err := ToUint8(flat, depth16(t), DefaultWindow)
	if !errors.Is(err, histogram.ErrDegenerateHistogram) {
		t.Errorf("flat raster: got %v, want ErrDegenerateHistogram", err)
	}

	_, err = ToUint8(rampRaster(10, 1, 3), depth16(t), Window{0.5, 0.2})
	if !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("inverted window: got %v, want ErrInvalidWindow", err)
	}
}
