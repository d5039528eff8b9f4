// Package peaks projects the live interaction state onto transient terrain peaks.
package peaks

import "github.com/Faultbox/summit/pkg/kpi"

// MaxPeaks bounds how many peaks a single interaction can raise.
const MaxPeaks = 3

// Peak is a transient bump on the metric axis.
type Peak struct {
	Axis      float64 // Position in metric units, 0..K-1
	Spread    float64 // Gaussian sigma in metric units
	Amplitude float64 // Height at the centre
}

// Settings tunes the peak projection.
type Settings struct {
	BaseAmplitude  float64 `yaml:"base_amplitude"`
	Spread         float64 `yaml:"spread"`
	ShoulderOffset float64 `yaml:"shoulder_offset"` // Distance of shoulder peaks in metric units
	ShoulderRatio  float64 `yaml:"shoulder_ratio"`  // Shoulder amplitude relative to the primary
	MinIntensity   float64 `yaml:"min_intensity"`   // Intensities at or below this raise nothing
}

// DefaultSettings returns the standard peak tuning.
func DefaultSettings() Settings {
	return Settings{
		BaseAmplitude:  1.4,
		Spread:         0.45,
		ShoulderOffset: 0.6,
		ShoulderRatio:  0.45,
		MinIntensity:   1e-3,
	}
}

// shoulder selects which flanking peaks a lever raises.
type shoulder uint8

const (
	shoulderNone  shoulder = 0
	shoulderLeft  shoulder = 1 << 0
	shoulderRight shoulder = 1 << 1
	shoulderBoth           = shoulderLeft | shoulderRight
)

var leverShoulders = map[kpi.LeverID]shoulder{
	kpi.LeverPricing:     shoulderBoth,
	kpi.LeverAcquisition: shoulderRight,
	kpi.LeverRetention:   shoulderLeft,
	kpi.LeverCost:        shoulderNone,
	kpi.LeverHiring:      shoulderBoth,
}

// Project returns the peaks for the given interaction over a k-metric axis.
// The result is empty when nothing is active or the intensity is negligible.
// Amplitude grows linearly with intensity.
func Project(in kpi.Interaction, k int, s Settings) []Peak {
	if k <= 0 {
		return nil
	}
	in = in.Sanitize(k)
	intensity := in.Lever.Intensity
	if intensity <= s.MinIntensity {
		return nil
	}

	center := in.ActiveIndex
	if center == kpi.NoIndex {
		center = in.Lever.ID.Home(k)
	}
	if center == kpi.NoIndex {
		return nil
	}

	amp := s.BaseAmplitude * intensity
	out := make([]Peak, 0, MaxPeaks)
	out = append(out, Peak{Axis: float64(center), Spread: s.Spread, Amplitude: amp})

	sh := leverShoulders[in.Lever.ID]
	maxAxis := float64(k - 1)
	if sh&shoulderLeft != 0 {
		if a := float64(center) - s.ShoulderOffset; a >= 0 {
			out = append(out, Peak{Axis: a, Spread: s.Spread, Amplitude: amp * s.ShoulderRatio})
		}
	}
	if sh&shoulderRight != 0 {
		if a := float64(center) + s.ShoulderOffset; a <= maxAxis {
			out = append(out, Peak{Axis: a, Spread: s.Spread, Amplitude: amp * s.ShoulderRatio})
		}
	}
	return out
}
