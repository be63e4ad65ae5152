// Package stretch converts high bit-depth rasters to 8-bit for viewing.
//
// Each band is stretched independently over a cumulative-probability
// window: the band histogram is built over [0, ColorDepth.Max] with unit
// bins, the lower bound is the first bin centre whose cumulative
// probability reaches Window.Low, and the upper bound is the last bin centre
// whose cumulative probability stays at or below Window.High. Samples are
// clipped to that range and rescaled linearly onto [0, 255].
//
// The output is only meant for exports such as mask overlays. It never
// feeds back into threshold estimation.
package stretch
