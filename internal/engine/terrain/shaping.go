package terrain

import "math"

// SoftCeiling compresses heights above threshold so they approach but never
// exceed threshold+span. Below the threshold h is returned unchanged.
func SoftCeiling(h, threshold, span float64) float64 {
	if math.IsNaN(h) {
		return 0
	}
	if h <= threshold || span <= 0 {
		return math.Min(h, threshold+math.Max(span, 0))
	}
	return threshold + span*(1-math.Exp(-(h-threshold)/span))
}

// IslandMask returns the radial falloff at distance dist from the centre:
// max(0, 1-(dist/radius)^power) raised to cliff. It is 1 at the centre and 0
// at and beyond radius.
func IslandMask(dist, radius, power, cliff float64) float64 {
	if radius <= 0 || dist >= radius {
		return 0
	}
	m := 1 - math.Pow(dist/radius, power)
	if m <= 0 {
		return 0
	}
	return math.Pow(m, cliff)
}

// RidgeContribution is the metric ridge strength at axis position kpiX:
// the sum over metrics of value^sharpness weighted by a Gaussian centred on
// each metric's index.
func RidgeContribution(values []float64, kpiX, sharpness, sigma float64) float64 {
	var sum float64
	for i, v := range values {
		if v <= 0 {
			continue
		}
		sum += math.Pow(v, sharpness) * gauss(kpiX-float64(i), sigma)
	}
	return sum
}

func gauss(d, sigma float64) float64 {
	if sigma <= 0 {
		return 0
	}
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

func gauss2D(dx, dz, sx, sz float64) float64 {
	if sx <= 0 || sz <= 0 {
		return 0
	}
	return math.Exp(-(dx*dx/(2*sx*sx) + dz*dz/(2*sz*sz)))
}
