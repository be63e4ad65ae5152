package imaging

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ign-packo/ShadowT/internal/raster"
)

// DefaultOverlayColor paints shadow red.
const DefaultOverlayColor = "#ff0000"

// ParseColor parses a #rrggbb colour.
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid overlay color %q: %w", hex, err)
	}
	return c, nil
}

// Overlay renders an 8-bit [blue, green, red] raster with its shadow pixels
// moved toward paint. An opacity of 1 replaces shadow pixels with paint; 0
// leaves the image unchanged.
func Overlay(bgr *raster.Raster, m *raster.Mask, paint colorful.Color, opacity float64) (*image.NRGBA, error) {
	if err := bgr.Require(3); err != nil {
		return nil, err
	}
	if m.Width != bgr.Width || m.Height != bgr.Height {
		return nil, fmt.Errorf("%w: image %dx%d, mask %dx%d", raster.ErrDimensionMismatch,
			bgr.Width, bgr.Height, m.Width, m.Height)
	}
	if opacity < 0 || opacity > 1 {
		return nil, fmt.Errorf("opacity %g outside [0, 1]", opacity)
	}

	img, err := RasterImage(bgr)
	if err != nil {
		return nil, err
	}
	for i, shadow := range m.Bits {
		if !shadow {
			continue
		}
		o := img.PixOffset(i%m.Width, i/m.Width)
		base := colorful.Color{
			R: float64(img.Pix[o]) / 255,
			G: float64(img.Pix[o+1]) / 255,
			B: float64(img.Pix[o+2]) / 255,
		}
		img.Pix[o], img.Pix[o+1], img.Pix[o+2] = base.BlendRgb(paint, opacity).Clamped().RGB255()
	}
	return img, nil
}
