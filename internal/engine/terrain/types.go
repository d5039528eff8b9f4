// Package terrain builds the mountain height-field and its grid mesh.
package terrain

// Vertex represents a mountain mesh vertex ready for the host renderer.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// Mesh holds the renderable mountain surface.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the surface.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Field is the output of one height-field generation pass.
type Field struct {
	Heights      []float64 // Target height per vertex
	Illumination []float64 // Highlight strength per vertex, 0..1
	Max          float64   // Largest height in Heights
}

// NewField allocates a field for n vertices.
func NewField(n int) *Field {
	return &Field{
		Heights:      make([]float64, n),
		Illumination: make([]float64, n),
	}
}

// Heightmap is a read-only view of per-vertex heights laid over a grid.
type Heightmap struct {
	Heights []float64 // Row-major, Rows x Cols
	Cols    int       // Vertices along X
	Rows    int       // Vertices along Z
	Width   float64   // Extent along X in local units
	Depth   float64   // Extent along Z in local units
}
