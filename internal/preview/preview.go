// Package preview renders a top-down image of the mountain surface.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/golang/geo/r3"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/summit/internal/engine/terrain"
)

// DefaultLight is the key light direction, pointing from the surface toward
// a sun low over the back left of the mountain.
var DefaultLight = SunDirection(220, 55)

// Options controls the rendered image.
type Options struct {
	PixelsPerCell int       // Square pixels per grid cell, at least 1
	Light         r3.Vector // Zero uses DefaultLight
	Ambient       float64   // Floor of the diffuse term, 0..1
}

// DefaultOptions returns options for a 4px-per-cell render.
func DefaultOptions() Options {
	return Options{PixelsPerCell: 4, Light: DefaultLight, Ambient: 0.35}
}

// Render draws the mesh from above. Each pixel takes the color of the
// nearest vertex shaded by a Lambert term, so rows map to Z and columns to X.
func Render(m *terrain.Mesh, cols, rows int, opts Options) *image.RGBA {
	ppc := max(opts.PixelsPerCell, 1)
	light := opts.Light
	if light == (r3.Vector{}) {
		light = DefaultLight
	}
	light = light.Normalize()
	ambient := math.Min(math.Max(opts.Ambient, 0), 1)

	w := max((cols-1)*ppc, 1)
	h := max((rows-1)*ppc, 1)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if m == nil || len(m.Vertices) < cols*rows || cols < 1 || rows < 1 {
		return img
	}

	for py := range h {
		row := nearest(py, h, rows)
		for px := range w {
			col := nearest(px, w, cols)
			v := m.Vertices[row*cols+col]

			n := r3.Vector{X: float64(v.Normal[0]), Y: float64(v.Normal[1]), Z: float64(v.Normal[2])}
			shade := ambient + (1-ambient)*math.Max(n.Dot(light), 0)
			c := colorful.Color{
				R: float64(v.Color[0]) * shade,
				G: float64(v.Color[1]) * shade,
				B: float64(v.Color[2]) * shade,
			}.Clamped()
			r, g, b := c.RGB255()
			img.SetRGBA(px, py, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// nearest maps a pixel to the closest of n vertices along an axis of size px.
func nearest(p, size, n int) int {
	if n <= 1 || size <= 1 {
		return 0
	}
	t := (float64(p) + 0.5) / float64(size)
	return min(int(math.Round(t*float64(n-1))), n-1)
}

// WriteBMP encodes img to path, creating parent directories as needed.
func WriteBMP(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create preview dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	return f.Close()
}
