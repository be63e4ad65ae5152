package histogram

import "math"

// truncate is the kernel half-width in standard deviations.
const truncate = 4.0

// GaussianSmooth convolves curve with a normalised Gaussian kernel of the
// given standard deviation (in bins). Samples past either end repeat the
// nearest edge value. A non-positive sigma returns a copy.
func GaussianSmooth(curve []float64, sigma float64) []float64 {
	out := make([]float64, len(curve))
	if sigma <= 0 || len(curve) == 0 {
		copy(out, curve)
		return out
	}

	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2
	last := len(curve) - 1
	for i := range curve {
		var sum float64
		for k, w := range kernel {
			j := i + k - radius
			if j < 0 {
				j = 0
			} else if j > last {
				j = last
			}
			sum += w * curve[j]
		}
		out[i] = sum
	}
	return out
}

func gaussianKernel(sigma float64) []float64 {
	radius := int(truncate*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-0.5 * x * x / (sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
