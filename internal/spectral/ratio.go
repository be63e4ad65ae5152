package spectral

import (
	"fmt"
	"math"

	"github.com/ign-packo/ShadowT/internal/histogram"
	"github.com/ign-packo/ShadowT/internal/raster"
)

// Chromaticity rotation used to derive the hue angle.
var (
	sqrt6 = math.Sqrt(6)

	v1Red, v1Green, v1Blue = -sqrt6 / 6, -sqrt6 / 6, sqrt6 / 3
	v2Red, v2Green         = 1 / sqrt6, -2 / sqrt6
)

// Hue returns the hue angle in degrees, in [0, 360), of a blue/green/red sample.
func Hue(b, g, r float64) float64 {
	v1 := v1Red*r + v1Green*g + v1Blue*b
	v2 := v2Red*r + v2Green*g
	h := math.Atan2(v2, v1) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h -= 360
	}
	return h
}

// Intensity returns the mean of the blue, green and red bands.
func Intensity(r *raster.Raster) (*raster.Map, error) {
	if err := r.Require(3); err != nil {
		return nil, err
	}
	blue, green, red := r.Bands[raster.BandBlue], r.Bands[raster.BandGreen], r.Bands[raster.BandRed]

	m := newMapFor(r)
	fill(m, func(i int) float64 {
		return float64(blue[i])/3 + float64(green[i])/3 + float64(red[i])/3
	})
	return m, nil
}

// HueIntensityRatio computes R = (H+1)/(I'+1) for every pixel.
//
// I' is the intensity divided by depth.Max, or, when equalize is set, the
// intensity after histogram equalization over [0, depth.Max]. Equalization
// helps with raw sensor data whose intensities occupy a narrow range. Its
// histogram is built from unsaturated pixels only and then applied to every
// pixel. It fails with histogram.ErrDegenerateHistogram on flat or fully
// saturated images.
func HueIntensityRatio(r *raster.Raster, depth raster.ColorDepth, equalize bool) (*raster.Map, error) {
	if err := depth.Validate(); err != nil {
		return nil, err
	}
	intensity, err := Intensity(r)
	if err != nil {
		return nil, err
	}

	var norm []float64
	if equalize {
		sample := make([]float64, 0, len(intensity.Values))
		for i, v := range intensity.Values {
			if !r.Saturated(i, depth) {
				sample = append(sample, v)
			}
		}
		eq, err := histogram.NewEqualizer(sample, 0, depth.Max)
		if err != nil {
			return nil, fmt.Errorf("equalize intensity: %w", err)
		}
		norm = intensity.Values
		for i, v := range norm {
			norm[i] = eq.Map(v)
		}
	} else {
		norm = intensity.Values
		for i := range norm {
			norm[i] /= depth.Max
		}
	}

	blue, green, red := r.Bands[raster.BandBlue], r.Bands[raster.BandGreen], r.Bands[raster.BandRed]
	m := newMapFor(r)
	fill(m, func(i int) float64 {
		h := Hue(float64(blue[i]), float64(green[i]), float64(red[i]))
		return (h + 1) / (norm[i] + 1)
	})
	return m, nil
}
