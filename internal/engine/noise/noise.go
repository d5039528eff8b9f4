// Package noise provides closed-form deterministic noise for terrain texture.
//
// All functions are pure: no tables, no random state, no allocation. Products
// are rounded through explicit float64 conversions before they are summed so
// the compiler cannot fuse them into FMA instructions, which keeps the output
// bit-identical across architectures.
package noise

import "math"

// octave is a single sine wave term.
type octave struct {
	fx, fz, phase, weight float64
}

// valueOctaves sum to a total weight of 1 so Value stays in [-1,1].
var valueOctaves = [...]octave{
	{1.7, 0.9, 0.0, 0.5},
	{3.1, -2.3, 1.3, 0.3},
	{5.7, 4.9, 2.1, 0.2},
}

var microOctaves = [...]octave{
	{11.3, 7.1, 0.0, 0.6},
	{17.9, -13.7, 0.7, 0.4},
}

// ridgeScale stretches the ridge pattern relative to Value.
const ridgeScale = 1.3

func sum(octs []octave, x, z, seedPhase float64) float64 {
	var n float64
	for _, o := range octs {
		arg := float64(x*o.fx) + float64(z*o.fz) + o.phase + seedPhase
		n += float64(o.weight * math.Sin(arg))
	}
	return n
}

// phase turns a seed into a phase offset in [0, 2π).
func phase(seed int64) float64 {
	if seed == 0 {
		return 0
	}
	m := seed % 9973
	if m < 0 {
		m += 9973
	}
	return math.Mod(float64(float64(m)*math.Phi), 2*math.Pi)
}

// Value returns smooth sum-of-sines noise in [-1,1].
func Value(x, z float64) float64 {
	return ValueSeed(x, z, 0)
}

// ValueSeed is Value with the pattern shifted by seed.
func ValueSeed(x, z float64, seed int64) float64 {
	return clamp(sum(valueOctaves[:], x, z, phase(seed)), -1, 1)
}

// Ridge returns ridged noise in [0,1]: sharp creases where Value crosses zero.
func Ridge(x, z float64) float64 {
	return RidgeSeed(x, z, 0)
}

// RidgeSeed is Ridge with the pattern shifted by seed.
func RidgeSeed(x, z float64, seed int64) float64 {
	n := 1 - math.Abs(ValueSeed(float64(x*ridgeScale), float64(z*ridgeScale), seed))
	return float64(n * n)
}

// Micro returns high-frequency surface variation in [-1,1].
func Micro(x, z float64) float64 {
	return MicroSeed(x, z, 0)
}

// MicroSeed is Micro with the pattern shifted by seed.
func MicroSeed(x, z float64, seed int64) float64 {
	return clamp(sum(microOctaves[:], x, z, phase(seed)), -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
