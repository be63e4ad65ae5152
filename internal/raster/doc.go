// Package raster defines the in-memory data model shared by the shadow
// detection engine.
//
// # Rasters
//
// A Raster holds one or more bands of unsigned integer samples laid out
// row-major, all with the same width and height. Band order is fixed:
//
//   - BandBlue (0)
//   - BandGreen (1)
//   - BandRed (2)
//   - BandNIR (3, optional)
//
// Samples are stored as uint16 so that both 8-bit and 16-bit imagery fit
// without conversion. Every numeric transform upcasts to float64 before
// doing arithmetic.
//
// # Colour Depth
//
// ColorDepth carries the saturation value used by the engine (255 for 8-bit
// data, 65000 for 16-bit data). It is passed explicitly to every call rather
// than read from package state, so tests can use arbitrary depths. Samples
// above ColorDepth.Max are considered saturated and are left out of
// statistics.
//
// # Maps and Masks
//
// Map is a real-valued single-band grid produced by a spectral transform.
// Mask is a boolean grid where true marks a shadow pixel. Both share the
// width and height of the raster they were derived from.
package raster
