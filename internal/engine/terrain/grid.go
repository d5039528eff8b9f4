package terrain

import (
	"errors"
	"fmt"
)

// ErrEmptyGrid is returned when a grid would have no cells.
var ErrEmptyGrid = errors.New("terrain: grid needs at least one segment on each axis")

// Grid is the fixed planar topology the mountain is built on. It spans
// Width x Depth local units centred on the origin.
type Grid struct {
	Width   float64
	Depth   float64
	Cols    int       // Vertices along X (SegmentsX + 1)
	Rows    int       // Vertices along Z (SegmentsZ + 1)
	X       []float64 // Local X per column
	Z       []float64 // Local Z per row
	Indices []uint32  // Two triangles per cell
}

// NewGrid creates a grid with the given extent and segment counts.
func NewGrid(width, depth float64, segX, segZ int) (*Grid, error) {
	if segX < 1 || segZ < 1 {
		return nil, ErrEmptyGrid
	}
	if !(width > 0) || !(depth > 0) {
		return nil, fmt.Errorf("terrain: grid extent must be positive, got %vx%v", width, depth)
	}

	g := &Grid{
		Width: width,
		Depth: depth,
		Cols:  segX + 1,
		Rows:  segZ + 1,
		X:     make([]float64, segX+1),
		Z:     make([]float64, segZ+1),
	}
	for c := range g.Cols {
		g.X[c] = -width/2 + width*float64(c)/float64(segX)
	}
	for r := range g.Rows {
		g.Z[r] = -depth/2 + depth*float64(r)/float64(segZ)
	}

	g.Indices = make([]uint32, 0, segX*segZ*6)
	for r := range segZ {
		for c := range segX {
			tl := uint32(g.Index(r, c))
			tr := tl + 1
			bl := uint32(g.Index(r+1, c))
			br := bl + 1
			// Counter-clockwise seen from +Y.
			g.Indices = append(g.Indices,
				tl, bl, tr,
				tr, bl, br,
			)
		}
	}
	return g, nil
}

// Len returns the number of vertices.
func (g *Grid) Len() int {
	return g.Cols * g.Rows
}

// Index returns the flat vertex index of (row, col).
func (g *Grid) Index(row, col int) int {
	return row*g.Cols + col
}

// Z01 returns the normalized depth of a row, 0 at the back edge and 1 at the front.
func (g *Grid) Z01(row int) float64 {
	if g.Rows < 2 {
		return 0
	}
	return float64(row) / float64(g.Rows-1)
}

// Heightmap wraps heights laid out on this grid.
func (g *Grid) Heightmap(heights []float64) *Heightmap {
	return &Heightmap{
		Heights: heights,
		Cols:    g.Cols,
		Rows:    g.Rows,
		Width:   g.Width,
		Depth:   g.Depth,
	}
}
