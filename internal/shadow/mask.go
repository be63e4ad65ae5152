package shadow

import (
	"errors"
	"fmt"

	"github.com/ign-packo/ShadowT/internal/raster"
	"github.com/ign-packo/ShadowT/internal/spectral"
)

// ErrMissingExclusion is returned when exclusion is requested but the
// threshold carries no water and vegetation values.
var ErrMissingExclusion = errors.New("threshold has no water/vegetation values")

// Layers holds the intermediate masks of one classification.
type Layers struct {
	Shadow     *raster.Mask
	Water      *raster.Mask // nil without exclusion
	Vegetation *raster.Mask // nil without exclusion
	Final      *raster.Mask
}

// ComputeMask classifies one full-resolution raster and returns its shadow
// mask. Calling it twice with the same inputs yields identical masks.
func ComputeMask(r *raster.Raster, th Threshold, depth raster.ColorDepth, cfg Config) (*raster.Mask, error) {
	layers, err := Classify(r, th, depth, cfg)
	if err != nil {
		return nil, err
	}
	return layers.Final, nil
}

// Classify computes the shadow mask of r together with the water and
// vegetation masks used to refine it.
func Classify(r *raster.Raster, th Threshold, depth raster.ColorDepth, cfg Config) (*Layers, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := depth.Validate(); err != nil {
		return nil, err
	}
	if err := r.Require(cfg.RequiredBands()); err != nil {
		return nil, err
	}
	if cfg.ExcludeWaterVegetation && !th.Exclusion {
		return nil, ErrMissingExclusion
	}

	var layers Layers
	switch cfg.Strategy {
	case Ratio:
		m, err := spectral.HueIntensityRatio(r, depth, cfg.Equalize)
		if err != nil {
			return nil, err
		}
		layers.Shadow = above(m, th.Shadow)
	case WeightedIntensity:
		m, err := spectral.WeightedIntensity(r)
		if err != nil {
			return nil, err
		}
		layers.Shadow = below(m, th.Shadow)
	}

	if !cfg.ExcludeWaterVegetation {
		layers.Final = layers.Shadow
		return &layers, nil
	}

	ndwi, err := spectral.NDWI(r)
	if err != nil {
		return nil, err
	}
	ndvi, err := spectral.NDVI(r)
	if err != nil {
		return nil, err
	}
	layers.Water = above(ndwi, th.Water)
	layers.Vegetation = above(ndvi, th.Vegetation)

	final, err := layers.Shadow.AndNot(layers.Water)
	if err != nil {
		return nil, fmt.Errorf("exclude water: %w", err)
	}
	final, err = final.AndNot(layers.Vegetation)
	if err != nil {
		return nil, fmt.Errorf("exclude vegetation: %w", err)
	}
	layers.Final = final
	return &layers, nil
}

func above(m *raster.Map, t float64) *raster.Mask {
	mask := raster.NewMask(m.Width, m.Height)
	for i, v := range m.Values {
		mask.Bits[i] = v > t
	}
	return mask
}

func below(m *raster.Map, t float64) *raster.Mask {
	mask := raster.NewMask(m.Width, m.Height)
	for i, v := range m.Values {
		mask.Bits[i] = v < t
	}
	return mask
}
