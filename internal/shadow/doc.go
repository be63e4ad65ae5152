// Package shadow is the shadow detection engine for aerial multispectral
// imagery.
//
// Detection runs in two stages:
//
//  1. ComputeGlobalThreshold pools a spectral transform over a sampled corpus
//     of rasters and searches the pooled histogram for one global shadow
//     threshold. When water and vegetation exclusion is requested it also
//     derives an NDWI water threshold and an NDVI vegetation threshold.
//  2. ComputeMask applies a Threshold to one full-resolution raster and
//     returns a boolean mask where true marks shadow.
//
// # Strategies
//
// Ratio uses the hue/intensity ratio and the Otsu split over [0, 360); a
// pixel is shadow when its ratio is above the threshold. WeightedIntensity
// uses the red/NIR-weighted luminance and the first histogram valley after
// the first peak; a pixel is shadow when its weighted intensity is below the
// threshold.
//
// # Exclusion
//
// Water (NDWI above its threshold) and vegetation (NDVI above its threshold)
// are removed from the shadow mask: final = shadow AND NOT water AND NOT
// vegetation. Exclusion needs a near-infrared band.
//
// All functions are synchronous and keep no state. A Threshold is a plain
// value and can be shared by any number of concurrent ComputeMask calls.
package shadow
