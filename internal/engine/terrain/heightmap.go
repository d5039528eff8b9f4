package terrain

import "math"

// SampleBilinear returns the bilinear interpolation of a row-major height grid
// at normalized coordinates (u along columns, v along rows). Coordinates are
// clamped to [0,1] so any query lands inside the grid.
func SampleBilinear(heights []float64, cols, rows int, u, v float64) float64 {
	if cols < 1 || rows < 1 || len(heights) < cols*rows {
		return 0
	}

	c0, fracX := cellOf(clampUnit(u), cols)
	r0, fracZ := cellOf(clampUnit(v), rows)
	c1 := min(c0+1, cols-1)
	r1 := min(r0+1, rows-1)

	// Back edge (lower Z): lerp between the two columns
	back := heights[r0*cols+c0]*(1-fracX) + heights[r0*cols+c1]*fracX
	// Front edge (higher Z)
	front := heights[r1*cols+c0]*(1-fracX) + heights[r1*cols+c1]*fracX
	return back*(1-fracZ) + front*fracZ
}

// cellOf maps a normalized coordinate to the enclosing cell and the fraction
// within it. The last cell absorbs t == 1.
func cellOf(t float64, n int) (int, float64) {
	if n < 2 {
		return 0, 0
	}
	f := t * float64(n-1)
	i := int(f)
	if i > n-2 {
		i = n - 2
	}
	return i, clampUnit(f - float64(i))
}

// HeightAtLocal samples the heightmap at local coordinates centred on the grid.
func (h *Heightmap) HeightAtLocal(x, z float64) float64 {
	if h == nil || h.Width <= 0 || h.Depth <= 0 {
		return 0
	}
	return SampleBilinear(h.Heights, h.Cols, h.Rows, x/h.Width+0.5, z/h.Depth+0.5)
}

// clampUnit clamps t to [0,1]; NaN maps to 0.
func clampUnit(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
