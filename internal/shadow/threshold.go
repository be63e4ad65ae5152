package shadow

import "fmt"

// Threshold is the output of global threshold estimation: a shadow
// threshold and, when exclusion was requested, water and vegetation
// thresholds.
type Threshold struct {
	Shadow     float64 `json:"shadow"`
	Water      float64 `json:"water"`
	Vegetation float64 `json:"vegetation"`
	// Exclusion is true when Water and Vegetation are set. Either may
	// legitimately be 0.
	Exclusion bool `json:"exclusion"`
}

// ScalarThreshold returns a shadow-only threshold.
func ScalarThreshold(shadow float64) Threshold {
	return Threshold{Shadow: shadow}
}

// TripleThreshold returns a threshold with water and vegetation exclusion.
func TripleThreshold(shadow, water, vegetation float64) Threshold {
	return Threshold{Shadow: shadow, Water: water, Vegetation: vegetation, Exclusion: true}
}

// Values returns [shadow] or [shadow, water, vegetation].
func (t Threshold) Values() []float64 {
	if t.Exclusion {
		return []float64{t.Shadow, t.Water, t.Vegetation}
	}
	return []float64{t.Shadow}
}

func (t Threshold) String() string {
	if t.Exclusion {
		return fmt.Sprintf("[shadow=%g water=%g vegetation=%g]", t.Shadow, t.Water, t.Vegetation)
	}
	return fmt.Sprintf("[shadow=%g]", t.Shadow)
}
