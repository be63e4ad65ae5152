// Package compare scores a shadow mask against a reference mask.
//
// The reference is usually drawn by hand. Shadow is the positive class:
//
//   - P, N: shadow and clear pixels in the reference
//   - PP, PN: shadow and clear pixels in the tested mask
//   - TP, TN, FP, FN: the confusion matrix
//
// ACCP is the share of reference shadow found by the test (TP/P), ACCN the
// share of reference clear pixels kept clear (TN/N) and FNR the miss rate
// (1 - ACCP). A rate whose denominator is zero is reported as 0.
package compare
