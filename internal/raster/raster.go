package raster

import (
	"errors"
	"fmt"
)

// Band indices within a Raster.
const (
	BandBlue = iota
	BandGreen
	BandRed
	BandNIR
)

var (
	// ErrInvalidColorDepth is returned when a colour depth is neither 8 nor 16 bits
	// or carries an unusable saturation value.
	ErrInvalidColorDepth = errors.New("invalid color depth")

	// ErrDimensionMismatch is returned when bands or rasters that must share a
	// shape do not.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInsufficientBands is returned when a transform needs a band the raster
	// does not have.
	ErrInsufficientBands = errors.New("insufficient bands")
)

// Saturation values used for 8-bit and 16-bit imagery. 16-bit sensors are
// capped below 65535 to keep invalid pixels out of the statistics.
const (
	Max8  = 255
	Max16 = 65000
)

// ColorDepth describes the sample depth of a raster and its saturation value.
type ColorDepth struct {
	Bits int     `json:"bits"`
	Max  float64 `json:"max"`
}

// NewColorDepth returns the standard depth for 8-bit or 16-bit data.
func NewColorDepth(bits int) (ColorDepth, error) {
	switch bits {
	case 8:
		return ColorDepth{Bits: 8, Max: Max8}, nil
	case 16:
		return ColorDepth{Bits: 16, Max: Max16}, nil
	default:
		return ColorDepth{}, fmt.Errorf("%w: %d bits (must be 8 or 16)", ErrInvalidColorDepth, bits)
	}
}

// Validate checks that the depth is 8 or 16 bits and that Max fits the depth.
func (d ColorDepth) Validate() error {
	if d.Bits != 8 && d.Bits != 16 {
		return fmt.Errorf("%w: %d bits (must be 8 or 16)", ErrInvalidColorDepth, d.Bits)
	}
	limit := float64(uint32(1)<<uint(d.Bits) - 1)
	if d.Max <= 0 || d.Max > limit {
		return fmt.Errorf("%w: max %g outside (0, %g]", ErrInvalidColorDepth, d.Max, limit)
	}
	return nil
}

// Raster is a multi-band image held entirely in memory.
type Raster struct {
	Width  int
	Height int
	// Bands holds one row-major sample slice per band, each Width*Height long.
	Bands [][]uint16
}

// New allocates a zeroed raster with the given number of bands.
func New(width, height, bands int) *Raster {
	r := &Raster{
		Width:  width,
		Height: height,
		Bands:  make([][]uint16, bands),
	}
	for i := range r.Bands {
		r.Bands[i] = make([]uint16, width*height)
	}
	return r
}

// NumBands returns the number of bands.
func (r *Raster) NumBands() int {
	return len(r.Bands)
}

// Len returns the number of pixels per band.
func (r *Raster) Len() int {
	return r.Width * r.Height
}

// Validate checks that the raster is non-empty and every band has Width*Height samples.
func (r *Raster) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil raster", ErrDimensionMismatch)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: empty raster %dx%d", ErrDimensionMismatch, r.Width, r.Height)
	}
	if len(r.Bands) == 0 {
		return fmt.Errorf("%w: raster has no bands", ErrInsufficientBands)
	}
	n := r.Len()
	for i, b := range r.Bands {
		if len(b) != n {
			return fmt.Errorf("%w: band %d has %d samples, want %d", ErrDimensionMismatch, i, len(b), n)
		}
	}
	return nil
}

// Require validates the raster and checks that it has at least n bands.
func (r *Raster) Require(n int) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if len(r.Bands) < n {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientBands, len(r.Bands), n)
	}
	return nil
}

// Saturated reports whether any band of pixel i exceeds the depth's maximum.
func (r *Raster) Saturated(i int, depth ColorDepth) bool {
	for _, b := range r.Bands {
		if float64(b[i]) > depth.Max {
			return true
		}
	}
	return false
}

// Subsample keeps every step-th pixel along both axes, starting at (0,0).
// A step of 1 or less returns a copy.
func (r *Raster) Subsample(step int) *Raster {
	if step < 1 {
		step = 1
	}
	w := (r.Width + step - 1) / step
	h := (r.Height + step - 1) / step
	out := New(w, h, len(r.Bands))
	for b, src := range r.Bands {
		dst := out.Bands[b]
		for y := 0; y < h; y++ {
			row := y * step * r.Width
			for x := 0; x < w; x++ {
				dst[y*w+x] = src[row+x*step]
			}
		}
	}
	return out
}

// WithBand returns a raster sharing r's bands plus the given band appended.
// It is used to attach a near-infrared band read from a separate file.
func (r *Raster) WithBand(band []uint16) (*Raster, error) {
	if len(band) != r.Len() {
		return nil, fmt.Errorf("%w: band has %d samples, raster has %d", ErrDimensionMismatch, len(band), r.Len())
	}
	bands := make([][]uint16, 0, len(r.Bands)+1)
	bands = append(bands, r.Bands...)
	bands = append(bands, band)
	return &Raster{Width: r.Width, Height: r.Height, Bands: bands}, nil
}

// Map is a real-valued single-band grid derived from a raster.
type Map struct {
	Width  int
	Height int
	Values []float64
}

// NewMap allocates a zeroed map.
func NewMap(width, height int) *Map {
	return &Map{Width: width, Height: height, Values: make([]float64, width*height)}
}

// Mask is a boolean grid; true marks a shadow pixel.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// NewMask allocates an all-false mask.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Bits: make([]bool, width*height)}
}

// Count returns the number of true pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Bits {
		if v {
			n++
		}
	}
	return n
}

// AndNot returns a new mask that is m with every pixel set in other cleared.
func (m *Mask) AndNot(other *Mask) (*Mask, error) {
	if m.Width != other.Width || m.Height != other.Height {
		return nil, fmt.Errorf("%w: mask %dx%d vs %dx%d", ErrDimensionMismatch,
			m.Width, m.Height, other.Width, other.Height)
	}
	out := NewMask(m.Width, m.Height)
	for i, v := range m.Bits {
		out.Bits[i] = v && !other.Bits[i]
	}
	return out, nil
}

// Equal reports whether two masks have the same shape and pixels.
func (m *Mask) Equal(other *Mask) bool {
	if m.Width != other.Width || m.Height != other.Height || len(m.Bits) != len(other.Bits) {
		return false
	}
	for i := range m.Bits {
		if m.Bits[i] != other.Bits[i] {
			return false
		}
	}
	return true
}
