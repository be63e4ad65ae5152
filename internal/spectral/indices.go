package spectral

import "github.com/ign-packo/ShadowT/internal/raster"

// WeightedIntensity computes (b + g + 2r + 2nir) / 6, a luminance proxy
// weighted toward red and near-infrared.
func WeightedIntensity(r *raster.Raster) (*raster.Map, error) {
	if err := r.Require(4); err != nil {
		return nil, err
	}
	b, g, red, nir := r.Bands[raster.BandBlue], r.Bands[raster.BandGreen], r.Bands[raster.BandRed], r.Bands[raster.BandNIR]

	m := newMapFor(r)
	fill(m, func(i int) float64 {
		return (float64(b[i]) + float64(g[i]) + 2*float64(red[i]) + 2*float64(nir[i])) / 6
	})
	return m, nil
}

// NDVI computes (nir - red) / (nir + red) with the denominator floored at 1.
func NDVI(r *raster.Raster) (*raster.Map, error) {
	if err := r.Require(4); err != nil {
		return nil, err
	}
	return normalizedDifference(r, r.Bands[raster.BandNIR], r.Bands[raster.BandRed]), nil
}

// NDWI computes (green - nir) / (green + nir) with the denominator floored at 1.
func NDWI(r *raster.Raster) (*raster.Map, error) {
	if err := r.Require(4); err != nil {
		return nil, err
	}
	return normalizedDifference(r, r.Bands[raster.BandGreen], r.Bands[raster.BandNIR]), nil
}

func normalizedDifference(r *raster.Raster, a, b []uint16) *raster.Map {
	m := newMapFor(r)
	fill(m, func(i int) float64 {
		x, y := float64(a[i]), float64(b[i])
		return (x - y) / floorOne(x+y)
	})
	return m
}
