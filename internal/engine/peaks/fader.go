package peaks

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// FaderSettings tunes how quickly peaks grow and decay.
type FaderSettings struct {
	FPS           int     `yaml:"fps"`
	Frequency     float64 `yaml:"frequency"`
	Damping       float64 `yaml:"damping"`
	SettleEpsilon float64 `yaml:"settle_epsilon"`
}

// DefaultFaderSettings returns a critically damped fade at 60 ticks per second.
func DefaultFaderSettings() FaderSettings {
	return FaderSettings{
		FPS:           60,
		Frequency:     6.0,
		Damping:       1.0,
		SettleEpsilon: 1e-3,
	}
}

// Fader eases a lever intensity toward its target so peaks fade in when an
// interaction starts and decay after it ends. With damping >= 1 the eased
// value never overshoots the target.
type Fader struct {
	spring  harmonica.Spring
	eps     float64
	pos     float64
	vel     float64
	target  float64
	settled bool
}

// NewFader creates a fader resting at zero.
func NewFader(s FaderSettings) *Fader {
	fps := s.FPS
	if fps <= 0 {
		fps = 60
	}
	return &Fader{
		spring:  harmonica.NewSpring(harmonica.FPS(fps), s.Frequency, s.Damping),
		eps:     s.SettleEpsilon,
		settled: true,
	}
}

// SetTarget changes the intensity the fader moves toward.
func (f *Fader) SetTarget(target float64) {
	if target == f.target {
		return
	}
	f.target = target
	f.settled = false
}

// Step advances one tick and returns the eased intensity.
func (f *Fader) Step() float64 {
	if f.settled {
		return f.pos
	}
	f.pos, f.vel = f.spring.Update(f.pos, f.vel, f.target)
	if math.Abs(f.target-f.pos) < f.eps && math.Abs(f.vel) < f.eps {
		f.pos = f.target
		f.vel = 0
		f.settled = true
	}
	return f.pos
}

// Value returns the current eased intensity.
func (f *Fader) Value() float64 { return f.pos }

// Target returns the intensity being approached.
func (f *Fader) Target() float64 { return f.target }

// Settled reports whether the fader has reached its target.
func (f *Fader) Settled() bool { return f.settled }

// Reset puts the fader back at rest on zero.
func (f *Fader) Reset() {
	f.pos, f.vel, f.target = 0, 0, 0
	f.settled = true
}
