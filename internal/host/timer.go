package host

import "time"

// FixedStep paces updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep targeting tps; non-positive rates
// fall back to 60. The first ShouldStep fires immediately.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{step: time.Second / time.Duration(tps), now: time.Now}
	fs.accumulator = fs.step
	return fs
}

// Seconds returns the tick length in seconds.
func (f *FixedStep) Seconds() float64 {
	return f.step.Seconds()
}

// ShouldStep reports whether the loop should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Remaining returns the time until the next tick is due.
func (f *FixedStep) Remaining() time.Duration {
	return max(f.step-f.accumulator, 0)
}
