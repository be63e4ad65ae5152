// Package histogram builds uniform-bin histograms over real-valued samples and
// provides the curve operations the threshold searches depend on: cumulative
// probability, histogram equalization and Gaussian smoothing.
//
// Bins are half-open intervals [edge, edge+step) except the last, which is
// closed. When step does not divide the requested range evenly the last bin is
// extended past the range maximum rather than shortened. Samples outside the
// binned range, and NaN samples, are not counted; callers that want edge
// accumulation must clip beforehand.
package histogram
