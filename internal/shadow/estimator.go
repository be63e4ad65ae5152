package shadow

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/ign-packo/ShadowT/internal/histogram"
	"github.com/ign-packo/ShadowT/internal/raster"
	"github.com/ign-packo/ShadowT/internal/spectral"
	"github.com/ign-packo/ShadowT/internal/threshold"
)

// ErrEmptyCorpus is returned when threshold estimation is given no rasters.
var ErrEmptyCorpus = errors.New("empty corpus")

// Histogram parameters of the threshold searches.
const (
	// ratioMax bounds the hue/intensity ratio histogram (degrees).
	ratioMax = 360
	// weightedBins is the bin count for weighted intensity above 8 bits.
	weightedBins = 1000
	// weightedSigma smooths the weighted intensity histogram, in bins.
	weightedSigma = 10
	// indexBins is the bin count for NDVI and NDWI histograms.
	indexBins = 1000
	// indexSigma smooths the NDVI and NDWI histograms, in bins.
	indexSigma = 6
)

type transform func(*raster.Raster) (*raster.Map, error)

// ComputeGlobalThreshold estimates the global threshold of a corpus.
//
// Each raster is subsampled by cfg.SampleStep, transformed, and its
// non-saturated pixels are pooled in corpus order before the histogram
// search. The corpus rasters are not modified or retained.
func ComputeGlobalThreshold(corpus []*raster.Raster, depth raster.ColorDepth, cfg Config) (Threshold, error) {
	if err := cfg.Validate(); err != nil {
		return Threshold{}, err
	}
	if err := depth.Validate(); err != nil {
		return Threshold{}, err
	}
	sampled, err := sampleCorpus(corpus, cfg.RequiredBands(), cfg.SampleStep)
	if err != nil {
		return Threshold{}, err
	}

	var th float64
	switch cfg.Strategy {
	case Ratio:
		th, err = ratioThreshold(sampled, depth, cfg.Equalize)
	case WeightedIntensity:
		th, err = weightedThreshold(sampled, depth)
	}
	if err != nil {
		return Threshold{}, fmt.Errorf("%s shadow threshold: %w", cfg.Strategy, err)
	}

	if !cfg.ExcludeWaterVegetation {
		return ScalarThreshold(th), nil
	}
	water, vegetation, err := vegetationWater(sampled, depth)
	if err != nil {
		return Threshold{}, err
	}
	return TripleThreshold(th, water, vegetation), nil
}

// ComputeVegetationWaterThresholds estimates the NDWI water threshold and
// the NDVI vegetation threshold of a 4-band corpus. Each threshold is the
// last valley of the smoothed index histogram over its observed range.
func ComputeVegetationWaterThresholds(corpus []*raster.Raster, depth raster.ColorDepth) (water, vegetation float64, err error) {
	if err := depth.Validate(); err != nil {
		return 0, 0, err
	}
	sampled, err := sampleCorpus(corpus, 4, 1)
	if err != nil {
		return 0, 0, err
	}
	return vegetationWater(sampled, depth)
}

func vegetationWater(corpus []*raster.Raster, depth raster.ColorDepth) (water, vegetation float64, err error) {
	water, err = indexThreshold(corpus, depth, spectral.NDWI)
	if err != nil {
		return 0, 0, fmt.Errorf("water threshold: %w", err)
	}
	vegetation, err = indexThreshold(corpus, depth, spectral.NDVI)
	if err != nil {
		return 0, 0, fmt.Errorf("vegetation threshold: %w", err)
	}
	return water, vegetation, nil
}

// sampleCorpus validates every raster and applies the pixel stride.
func sampleCorpus(corpus []*raster.Raster, bands, step int) ([]*raster.Raster, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}
	sampled := make([]*raster.Raster, len(corpus))
	for i, r := range corpus {
		if err := r.Require(bands); err != nil {
			return nil, fmt.Errorf("corpus image %d: %w", i, err)
		}
		if step > 1 {
			r = r.Subsample(step)
		}
		sampled[i] = r
	}
	return sampled, nil
}

// pool concatenates the transform of every raster, skipping saturated pixels.
func pool(corpus []*raster.Raster, depth raster.ColorDepth, fn transform) ([]float64, error) {
	var values []float64
	for i, r := range corpus {
		m, err := fn(r)
		if err != nil {
			return nil, fmt.Errorf("corpus image %d: %w", i, err)
		}
		for p, v := range m.Values {
			if !r.Saturated(p, depth) {
				values = append(values, v)
			}
		}
	}
	return values, nil
}

func ratioThreshold(corpus []*raster.Raster, depth raster.ColorDepth, equalize bool) (float64, error) {
	values, err := pool(corpus, depth, func(r *raster.Raster) (*raster.Map, error) {
		return spectral.HueIntensityRatio(r, depth, equalize)
	})
	if err != nil {
		return 0, err
	}

	h, err := histogram.Uniform(values, 0, ratioMax, 1)
	if err != nil {
		return 0, err
	}
	ith, err := threshold.Otsu(h.Curve(), h.Centers)
	if err != nil {
		return 0, err
	}
	return h.Centers[ith], nil
}

func weightedThreshold(corpus []*raster.Raster, depth raster.ColorDepth) (float64, error) {
	values, err := pool(corpus, depth, spectral.WeightedIntensity)
	if err != nil {
		return 0, err
	}

	// Coarser bins above 8 bits compensate for the wider range and sampling noise.
	step := 1.0
	if depth.Bits > 8 {
		step = depth.Max / weightedBins
	}
	h, err := histogram.Uniform(values, 0, depth.Max, step)
	if err != nil {
		return 0, err
	}
	ith, err := threshold.FirstValley(histogram.GaussianSmooth(h.Curve(), weightedSigma))
	if err != nil {
		return 0, err
	}
	return h.Centers[ith], nil
}

func indexThreshold(corpus []*raster.Raster, depth raster.ColorDepth, fn transform) (float64, error) {
	values, err := pool(corpus, depth, fn)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: no unsaturated pixels", histogram.ErrDegenerateHistogram)
	}

	lo, hi := floats.Min(values), floats.Max(values)
	h, err := histogram.Uniform(values, lo, hi, (hi-lo)/indexBins)
	if err != nil {
		return 0, err
	}
	ith, err := threshold.LastValley(histogram.GaussianSmooth(h.Curve(), indexSigma))
	if err != nil {
		return 0, err
	}
	return h.Centers[ith], nil
}
