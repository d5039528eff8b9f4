package terrain

import (
	"math"

	"github.com/golang/geo/r3"
)

// ComputeNormals writes a smooth per-vertex normal for heights laid out on g.
// Each normal is the cross product of the central-difference tangents along
// Z and X, so shared vertices need no separate averaging pass.
func ComputeNormals(g *Grid, heights []float64, out []r3.Vector) {
	dx := g.Width / float64(max(g.Cols-1, 1))
	dz := g.Depth / float64(max(g.Rows-1, 1))

	for r := range g.Rows {
		rUp, rDown := max(r-1, 0), min(r+1, g.Rows-1)
		spanZ := float64(rDown-rUp) * dz
		for c := range g.Cols {
			cL, cR := max(c-1, 0), min(c+1, g.Cols-1)
			spanX := float64(cR-cL) * dx

			tx := r3.Vector{X: spanX, Y: heights[g.Index(r, cR)] - heights[g.Index(r, cL)]}
			tz := r3.Vector{Y: heights[g.Index(rDown, c)] - heights[g.Index(rUp, c)], Z: spanZ}
			n := tz.Cross(tx)
			if n.Norm() < 1e-9 {
				n = r3.Vector{Y: 1}
			}
			out[g.Index(r, c)] = n.Normalize()
		}
	}
}

// BuildMesh assembles renderable vertices from display heights, normals and
// RGB colors laid out on g. The mesh owns its index slice, so callers may
// modify it without touching the grid.
func BuildMesh(g *Grid, heights []float64, normals []r3.Vector, colors [][3]float64) *Mesh {
	vertices := make([]Vertex, g.Len())

	bounds := Bounds{
		Min: [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}

	for r, z := range g.Z {
		for c, x := range g.X {
			i := g.Index(r, c)
			pos := [3]float32{float32(x), float32(heights[i]), float32(z)}
			n := normals[i]
			col := colors[i]
			vertices[i] = Vertex{
				Position: pos,
				Normal:   [3]float32{float32(n.X), float32(n.Y), float32(n.Z)},
				Color:    [4]float32{float32(col[0]), float32(col[1]), float32(col[2]), 1},
			}
			updateBounds(&bounds, pos)
		}
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  append([]uint32(nil), g.Indices...),
		Bounds:   bounds,
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for k := range 3 {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
}
