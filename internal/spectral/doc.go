// Package spectral computes per-pixel spectral transforms of multi-band
// aerial imagery.
//
// All transforms read raster samples as float64, so integer overflow cannot
// occur, and return a raster.Map of the same width and height. Rows are
// evaluated in parallel; the result does not depend on scheduling.
//
//   - HueIntensityRatio: (H+1)/(I'+1), high on shadows. Needs blue, green, red.
//   - WeightedIntensity: (b + g + 2r + 2nir)/6, low on shadows. Needs four bands.
//   - NDVI: (nir-red)/(nir+red), high on vegetation. Needs four bands.
//   - NDWI: (green-nir)/(green+nir), high on water. Needs four bands.
//
// The index denominators are floored at 1 so that dark or empty pixels give a
// finite value in [-1, 1] instead of NaN or ±Inf.
package spectral
