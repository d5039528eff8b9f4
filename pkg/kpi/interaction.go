package kpi

import "math"

// NoIndex marks the absence of an active metric.
const NoIndex = -1

// LeverID identifies the business lever a user is adjusting.
type LeverID string

// Known levers. The empty ID means no lever is engaged.
const (
	LeverNone        LeverID = ""
	LeverPricing     LeverID = "pricing"
	LeverAcquisition LeverID = "acquisition"
	LeverRetention   LeverID = "retention"
	LeverCost        LeverID = "cost"
	LeverHiring      LeverID = "hiring"
)

// leverHome places each lever along the metric axis as a fraction of its length.
var leverHome = map[LeverID]float64{
	LeverPricing:     0.0,
	LeverAcquisition: 1.0 / 6.0,
	LeverRetention:   0.5,
	LeverCost:        2.0 / 3.0,
	LeverHiring:      1.0,
}

// Valid reports whether id is a known lever (including LeverNone).
func (id LeverID) Valid() bool {
	if id == LeverNone {
		return true
	}
	_, ok := leverHome[id]
	return ok
}

// Home returns the metric index a lever acts on for a k-metric vector, or
// NoIndex when the lever is unknown or k is zero.
func (id LeverID) Home(k int) int {
	frac, ok := leverHome[id]
	if !ok || k <= 0 {
		return NoIndex
	}
	return int(math.Round(frac * float64(k-1)))
}

// Lever is the currently engaged control and how hard it is pushed.
type Lever struct {
	ID        LeverID `yaml:"id"`
	Intensity float64 `yaml:"intensity"`
}

// Interaction is the live user focus supplied by the host each frame.
type Interaction struct {
	ActiveIndex int
	Lever       Lever
}

// Idle returns an interaction with nothing active.
func Idle() Interaction {
	return Interaction{ActiveIndex: NoIndex}
}

// Sanitize clamps the interaction against a k-metric vector. Out-of-range
// indices become NoIndex, unknown levers are dropped and intensity is clamped.
func (in Interaction) Sanitize(k int) Interaction {
	out := in
	if out.ActiveIndex < 0 || out.ActiveIndex >= k {
		out.ActiveIndex = NoIndex
	}
	if !out.Lever.ID.Valid() {
		out.Lever.ID = LeverNone
	}
	out.Lever.Intensity = Clamp01(out.Lever.Intensity, 0)
	return out
}

// HasActive reports whether a metric is highlighted.
func (in Interaction) HasActive() bool {
	return in.ActiveIndex != NoIndex
}
