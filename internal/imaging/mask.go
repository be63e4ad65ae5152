package imaging

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"

	"github.com/ign-packo/ShadowT/internal/raster"
)

// Gray levels of an encoded mask.
const (
	MaskShadow = 0
	MaskClear  = 255
)

// MaskImage encodes a mask as a gray image: MaskShadow where m is true and
// MaskClear elsewhere.
func MaskImage(m *raster.Mask) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+m.Width]
		for x := range row {
			if m.Bits[y*m.Width+x] {
				row[x] = MaskShadow
			} else {
				row[x] = MaskClear
			}
		}
	}
	return img
}

// MaskFromImage decodes a mask image. Pixels whose gray level is below 128
// are shadow.
func MaskFromImage(img image.Image) *raster.Mask {
	b := img.Bounds()
	m := raster.NewMask(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			m.Bits[y*m.Width+x] = g.Y < 128
		}
	}
	return m
}

// LoadMask reads a mask file through cache.
func LoadMask(cache *ImageCache, path string) (*raster.Mask, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return MaskFromImage(img), nil
}

// SaveMask writes m to path. The format follows the extension; TIFF files
// are deflate-compressed.
func SaveMask(path string, m *raster.Mask) error {
	img := MaskImage(m)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create mask file: %w", err)
		}
		if err := tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
			f.Close()
			return fmt.Errorf("failed to encode mask: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write mask file: %w", err)
		}
		return nil
	default:
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("failed to save mask: %w", err)
		}
		return nil
	}
}

// SaveImage writes img to path, choosing the format from the extension.
// JPEG files use quality 95.
func SaveImage(path string, img image.Image) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
