// Package imaging reads aerial images into rasters and writes the products of
// shadow detection back to disk.
//
// # Decoding
//
// Files are decoded with the standard image decoders plus TIFF. ToRaster turns
// a decoded image into a raster.Raster with bands in [blue, green, red] order,
// or a single band for grayscale files such as near-infrared images. 16-bit
// PNG and TIFF samples are kept at full precision; alpha is ignored.
// LoadBGRN merges a colour image and its near-infrared companion into one
// 4-band raster.
//
// # Encoding
//
// Masks are written as single-band 8-bit images where 0 marks shadow and 255
// marks clear pixels. TIFF output is deflate-compressed. Reading a mask back
// treats every gray value below 128 as shadow, so masks drawn by hand with
// anti-aliased edges still load.
//
// Overlay paints the shadow pixels of an 8-bit colour raster with a colour,
// optionally blended with the underlying pixel.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The conversion functions are
// stateless and can be called concurrently on different images.
package imaging
