package mountain

import (
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/Faultbox/summit/internal/engine/peaks"
)

// Settings tunes relaxation and the cosmetic breathing motion.
type Settings struct {
	Smoothing       float64             `yaml:"smoothing"`        // Fraction of the remaining gap closed per tick, in (0,1)
	Epsilon         float64             `yaml:"epsilon"`          // Gap below which a channel snaps to its target
	NormalEpsilon   float64             `yaml:"normal_epsilon"`   // Height change that triggers a normal rebuild
	BreathAmplitude float64             `yaml:"breath_amplitude"` // Fraction of current height
	BreathHz        float64             `yaml:"breath_hz"`
	BreathPhase     float64             `yaml:"breath_phase"` // Radians per local unit of X
	Fader           peaks.FaderSettings `yaml:"fader"`
}

// DefaultSettings returns the standard animation tuning.
func DefaultSettings() Settings {
	return Settings{
		Smoothing:       0.08,
		Epsilon:         1e-4,
		NormalEpsilon:   1e-3,
		BreathAmplitude: 0.012,
		BreathHz:        0.25,
		BreathPhase:     0.35,
		Fader:           peaks.DefaultFaderSettings(),
	}
}

// Validate reports every out-of-range setting.
func (s Settings) Validate() error {
	var err error
	if !(s.Smoothing > 0 && s.Smoothing < 1) {
		err = multierr.Append(err, fmt.Errorf("animation: smoothing must be in (0,1), got %v", s.Smoothing))
	}
	if !(s.Epsilon > 0) {
		err = multierr.Append(err, fmt.Errorf("animation: epsilon must be positive, got %v", s.Epsilon))
	}
	if s.NormalEpsilon < 0 {
		err = multierr.Append(err, fmt.Errorf("animation: normal_epsilon must not be negative, got %v", s.NormalEpsilon))
	}
	if s.BreathAmplitude < 0 || s.BreathAmplitude >= 1 {
		err = multierr.Append(err, fmt.Errorf("animation: breath_amplitude must be in [0,1), got %v", s.BreathAmplitude))
	}
	if s.Fader.Damping < 1 {
		err = multierr.Append(err, fmt.Errorf("animation: fader damping must be >= 1 to avoid overshoot, got %v", s.Fader.Damping))
	}
	return err
}

// Relax advances one channel a single tick toward target. Once the remaining
// gap is under eps the channel snaps to target and reports converged.
func Relax(current, target, factor, eps float64) (float64, bool) {
	if current == target {
		return current, true
	}
	current += (target - current) * factor
	if math.Abs(target-current) < eps {
		return target, true
	}
	return current, false
}

// StepsToConverge returns how many Relax ticks a gap needs before it snaps.
func StepsToConverge(gap, factor, eps float64) int {
	gap = math.Abs(gap)
	if gap < eps || factor <= 0 || factor >= 1 {
		return 0
	}
	// gap * (1-factor)^n < eps
	return int(math.Ceil(math.Log(eps/gap) / math.Log(1-factor)))
}
