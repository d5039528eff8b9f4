// Package overlay places paths and markers so they sit on the mountain surface.
package overlay

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/Faultbox/summit/internal/engine/mountain"
	"github.com/Faultbox/summit/internal/engine/terrain"
)

// Sampler answers surface height queries in world space. Both the live
// engine and ghost snapshots implement it.
type Sampler interface {
	HeightAt(worldX, worldZ float64) float64
}

// Drape resamples a polyline every step world units and sets each point's Y
// to the surface height plus lift. Input Y values are ignored. Input
// vertices are always kept so corners survive resampling.
func Drape(s Sampler, path []r3.Vector, lift, step float64) []r3.Vector {
	if len(path) == 0 {
		return nil
	}
	if step <= 0 {
		step = math.Inf(1)
	}

	out := make([]r3.Vector, 0, len(path))
	place := func(p r3.Vector) {
		out = append(out, r3.Vector{X: p.X, Y: s.HeightAt(p.X, p.Z) + lift, Z: p.Z})
	}

	place(path[0])
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		seg := r3.Vector{X: b.X - a.X, Z: b.Z - a.Z}
		length := seg.Norm()
		if n := int(math.Ceil(length / step)); n > 1 {
			for j := 1; j < n; j++ {
				place(a.Add(seg.Mul(float64(j) / float64(n))))
			}
		}
		place(b)
	}
	return out
}

// PlaceMarkers returns one point per metric along the ridge line, lifted
// above the live surface.
func PlaceMarkers(e *mountain.Engine, lift float64) []r3.Vector {
	k := e.MetricCount()
	if k == 0 {
		return nil
	}
	params := e.Terrain()
	tr := e.Transform()

	out := make([]r3.Vector, k)
	for i := range k {
		x := terrain.AxisToLocal(float64(i), params.Width, k)
		wx, wz := tr.ToWorld(x, params.RidgeZ)
		out[i] = r3.Vector{X: wx, Y: e.HeightAt(wx, wz) + lift, Z: wz}
	}
	return out
}
