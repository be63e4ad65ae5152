package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ign-packo/ShadowT/internal/raster"
)

// ErrBandLayout is returned when an image does not have the bands a caller
// needs, such as a colour file given as near-infrared.
var ErrBandLayout = errors.New("unexpected band layout")

// sampler writes the bands of the pixel at (x, y), relative to the image
// bounds, into px.
type sampler func(x, y int, px []uint16)

// ToRaster converts a decoded image into a raster and returns its sample
// depth in bits. Grayscale images give one band; every other image gives
// [blue, green, red].
func ToRaster(img image.Image) (*raster.Raster, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.Gray:
		return sample(w, h, 1, func(x, y int, px []uint16) {
			px[0] = uint16(src.Pix[src.PixOffset(b.Min.X+x, b.Min.Y+y)])
		}), 8
	case *image.Gray16:
		return sample(w, h, 1, func(x, y int, px []uint16) {
			i := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			px[0] = be16(src.Pix[i:])
		}), 16
	case *image.RGBA:
		return sample(w, h, 3, func(x, y int, px []uint16) {
			i := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			px[0], px[1], px[2] = uint16(src.Pix[i+2]), uint16(src.Pix[i+1]), uint16(src.Pix[i])
		}), 8
	case *image.NRGBA:
		return sample(w, h, 3, func(x, y int, px []uint16) {
			i := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			px[0], px[1], px[2] = uint16(src.Pix[i+2]), uint16(src.Pix[i+1]), uint16(src.Pix[i])
		}), 8
	case *image.RGBA64:
		return sample(w, h, 3, func(x, y int, px []uint16) {
			i := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			px[0], px[1], px[2] = be16(src.Pix[i+4:]), be16(src.Pix[i+2:]), be16(src.Pix[i:])
		}), 16
	case *image.NRGBA64:
		return sample(w, h, 3, func(x, y int, px []uint16) {
			i := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			px[0], px[1], px[2] = be16(src.Pix[i+4:]), be16(src.Pix[i+2:]), be16(src.Pix[i:])
		}), 16
	default:
		return sample(w, h, 3, func(x, y int, px []uint16) {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			px[0], px[1], px[2] = uint16(c.B), uint16(c.G), uint16(c.R)
		}), 8
	}
}

func sample(w, h, bands int, fn sampler) *raster.Raster {
	r := raster.New(w, h, bands)
	parallel.Line(h, func(start, end int) {
		px := make([]uint16, bands)
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				fn(x, y, px)
				i := y*w + x
				for k, v := range px {
					r.Bands[k][i] = v
				}
			}
		}
	})
	return r
}

func be16(p []byte) uint16 {
	return uint16(p[0])<<8 | uint16(p[1])
}

// LoadRaster loads a colour image as a [blue, green, red] raster.
func LoadRaster(cache *ImageCache, path string) (*raster.Raster, int, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, 0, err
	}
	r, bits := ToRaster(img)
	if r.NumBands() < 3 {
		return nil, 0, fmt.Errorf("%w: %s has %d band(s), want a colour image", ErrBandLayout, path, r.NumBands())
	}
	return r, bits, nil
}

// LoadBGRN loads a colour image and its single-band near-infrared
// companion and stacks them as [blue, green, red, nir]. Both files must
// share their size and sample depth.
func LoadBGRN(cache *ImageCache, rgbPath, nirPath string) (*raster.Raster, int, error) {
	bgr, bits, err := LoadRaster(cache, rgbPath)
	if err != nil {
		return nil, 0, err
	}

	img, err := cache.Load(nirPath)
	if err != nil {
		return nil, 0, err
	}
	nir, nirBits := ToRaster(img)
	if nir.NumBands() != 1 {
		return nil, 0, fmt.Errorf("%w: near-infrared image %s has %d bands, want 1", ErrBandLayout, nirPath, nir.NumBands())
	}
	if nirBits != bits {
		return nil, 0, fmt.Errorf("%w: %s is %d-bit, %s is %d-bit", raster.ErrInvalidColorDepth, rgbPath, bits, nirPath, nirBits)
	}
	if nir.Width != bgr.Width || nir.Height != bgr.Height {
		return nil, 0, fmt.Errorf("%w: %s is %dx%d, %s is %dx%d", raster.ErrDimensionMismatch,
			rgbPath, bgr.Width, bgr.Height, nirPath, nir.Width, nir.Height)
	}

	bgrn, err := bgr.WithBand(nir.Bands[0])
	if err != nil {
		return nil, 0, err
	}
	return bgrn, bits, nil
}

// RasterImage renders the first three bands of an 8-bit [blue, green, red]
// raster, or its only band, as an opaque image. Samples above 255 saturate.
func RasterImage(r *raster.Raster) (*image.NRGBA, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	gray := r.NumBands() < 3
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	parallel.Line(r.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < r.Width; x++ {
				i := y*r.Width + x
				o := img.PixOffset(x, y)
				if gray {
					v := clamp8(r.Bands[0][i])
					img.Pix[o], img.Pix[o+1], img.Pix[o+2] = v, v, v
				} else {
					img.Pix[o] = clamp8(r.Bands[raster.BandRed][i])
					img.Pix[o+1] = clamp8(r.Bands[raster.BandGreen][i])
					img.Pix[o+2] = clamp8(r.Bands[raster.BandBlue][i])
				}
				img.Pix[o+3] = 0xff
			}
		}
	})
	return img, nil
}

func clamp8(v uint16) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
