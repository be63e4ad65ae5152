package shadow

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy is returned for an unsupported strategy name or value.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy selects the shadow transform and threshold search.
type Strategy int

const (
	// Ratio thresholds the hue/intensity ratio with an Otsu split.
	Ratio Strategy = iota + 1
	// WeightedIntensity thresholds the weighted intensity at its first valley.
	WeightedIntensity
)

// ParseStrategy maps a strategy name to a Strategy. The historical method
// names "tsai" and "nagao" are accepted.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ratio", "tsai", "hue-intensity":
		return Ratio, nil
	case "weighted", "nagao", "weighted-intensity":
		return WeightedIntensity, nil
	default:
		return 0, fmt.Errorf("%w: %q (available: ratio, weighted)", ErrUnknownStrategy, name)
	}
}

func (s Strategy) String() string {
	switch s {
	case Ratio:
		return "ratio"
	case WeightedIntensity:
		return "weighted"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Config selects how thresholds are estimated and applied. The same Config
// must be used for ComputeGlobalThreshold and ComputeMask.
type Config struct {
	Strategy Strategy
	// Equalize applies histogram equalization to the intensity used by the
	// Ratio strategy.
	Equalize bool
	// ExcludeWaterVegetation removes water and vegetation pixels from the mask.
	ExcludeWaterVegetation bool
	// SampleStep keeps every SampleStep-th pixel along both axes of each
	// corpus image during estimation. Values of 0 or 1 keep every pixel.
	// Masks are always computed at full resolution.
	SampleStep int
}

// Validate checks the configuration once at the boundary.
func (c Config) Validate() error {
	if c.Strategy != Ratio && c.Strategy != WeightedIntensity {
		return fmt.Errorf("%w: %v", ErrUnknownStrategy, c.Strategy)
	}
	if c.SampleStep < 0 {
		return fmt.Errorf("invalid sample step %d", c.SampleStep)
	}
	return nil
}

// RequiredBands returns the number of bands a raster needs under c.
func (c Config) RequiredBands() int {
	if c.Strategy == WeightedIntensity || c.ExcludeWaterVegetation {
		return 4
	}
	return 3
}
