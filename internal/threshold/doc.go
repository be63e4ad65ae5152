// Package threshold locates global decision boundaries on histogram curves.
//
// Two searches are provided:
//
//   - Otsu returns the split index that minimises the within-class variance of
//     a bimodal histogram. It is used for the hue/intensity ratio.
//   - Valleys returns the local minima of a smoothed curve that lie after its
//     first peak. FirstValley is used for weighted intensity, LastValley for
//     the NDVI and NDWI indices whose meaningful cut is the rightmost one.
//
// Both searches fail with a sentinel error instead of returning a default
// threshold when the curve offers no valid boundary.
package threshold
