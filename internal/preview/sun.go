package preview

import (
	"math"

	"github.com/golang/geo/r3"
)

// SunDirection converts an azimuth around Y and an elevation above the
// horizon, both in degrees, to a unit vector pointing toward the sun.
// Azimuth 0 points along +Z.
func SunDirection(azimuth, elevation float64) r3.Vector {
	az := azimuth * math.Pi / 180
	el := elevation * math.Pi / 180
	return r3.Vector{
		X: math.Cos(el) * math.Sin(az),
		Y: math.Sin(el),
		Z: math.Cos(el) * math.Cos(az),
	}
}
