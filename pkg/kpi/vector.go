// Package kpi defines the normalized metric inputs that drive the mountain.
package kpi

import "math"

// DefaultCount is the number of tracked metrics in the standard layout.
const DefaultCount = 7

// Neutral is the value substituted for missing or malformed metrics.
const Neutral = 0.5

// Vector is an ordered set of normalized metrics. Index i maps to position i
// along the mountain's X axis.
type Vector []float64

// NeutralVector returns a vector of k neutral values.
func NeutralVector(k int) Vector {
	if k <= 0 {
		return Vector{}
	}
	v := make(Vector, k)
	for i := range v {
		v[i] = Neutral
	}
	return v
}

// Sanitize returns a copy of values that is safe to feed to the generator.
// A vector of the wrong length is replaced by the neutral vector. Non-finite
// entries become Neutral and every entry is clamped to [0,1].
func Sanitize(values []float64, k int) Vector {
	if k <= 0 {
		return Vector{}
	}
	if len(values) != k {
		return NeutralVector(k)
	}
	out := make(Vector, k)
	for i, v := range values {
		out[i] = Clamp01(v, Neutral)
	}
	return out
}

// Clamp01 clamps v to [0,1], returning fallback for NaN or infinities.
func Clamp01(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Equal reports whether two vectors hold identical values.
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}
