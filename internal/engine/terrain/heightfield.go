package terrain

import (
	"fmt"
	"math"

	"github.com/dgravesa/go-parallel/parallel"
	"go.uber.org/multierr"

	"github.com/Faultbox/summit/internal/engine/noise"
	"github.com/Faultbox/summit/internal/engine/peaks"
	"github.com/Faultbox/summit/pkg/kpi"
)

// Massif is a fixed background peak, independent of live metrics.
type Massif struct {
	X         float64 `yaml:"x"`
	Z         float64 `yaml:"z"`
	Amplitude float64 `yaml:"amplitude"`
	SpreadX   float64 `yaml:"spread_x"`
	SpreadZ   float64 `yaml:"spread_z"`
}

// Params holds the height-field tuning.
type Params struct {
	Width     float64 `yaml:"width"`
	Depth     float64 `yaml:"depth"`
	SegmentsX int     `yaml:"segments_x"`
	SegmentsZ int     `yaml:"segments_z"`

	RidgeSharpness float64 `yaml:"ridge_sharpness"` // Exponent applied to each metric, > 1 favours tall metrics
	RidgeSigma     float64 `yaml:"ridge_sigma"`     // Spread along the metric axis, in metric units
	RidgeHeight    float64 `yaml:"ridge_height"`
	RidgeDepth     float64 `yaml:"ridge_depth"` // Spread across the ridge line, in local units
	RidgeZ         float64 `yaml:"ridge_z"`

	Massif []Massif `yaml:"massif"`

	PeakDepthRatio float64 `yaml:"peak_depth_ratio"` // Dynamic peak Z spread relative to RidgeDepth

	NoiseFrequency  float64 `yaml:"noise_frequency"`
	RidgeNoiseScale float64 `yaml:"ridge_noise_scale"`
	MicroNoiseScale float64 `yaml:"micro_noise_scale"`
	NoiseSeed       int64   `yaml:"noise_seed"`

	IslandRadius   float64 `yaml:"island_radius"`
	IslandStretchZ float64 `yaml:"island_stretch_z"`
	MaskPower      float64 `yaml:"mask_power"`
	CliffPower     float64 `yaml:"cliff_power"`

	CeilingThreshold float64 `yaml:"ceiling_threshold"`
	CeilingRange     float64 `yaml:"ceiling_range"`

	IlluminationWidth float64 `yaml:"illumination_width"` // Highlight falloff in metric units
}

// DefaultParams returns the standard mountain tuning.
func DefaultParams() Params {
	return Params{
		Width:     20,
		Depth:     10,
		SegmentsX: 140,
		SegmentsZ: 70,

		RidgeSharpness: 1.4,
		RidgeSigma:     0.55,
		RidgeHeight:    2.4,
		RidgeDepth:     1.8,
		RidgeZ:         0,

		Massif: []Massif{
			{X: -6.0, Z: -2.4, Amplitude: 1.5, SpreadX: 2.2, SpreadZ: 1.5},
			{X: -1.5, Z: -3.0, Amplitude: 2.0, SpreadX: 2.6, SpreadZ: 1.6},
			{X: 3.8, Z: -2.7, Amplitude: 1.7, SpreadX: 2.4, SpreadZ: 1.5},
			{X: 7.4, Z: -1.6, Amplitude: 1.0, SpreadX: 1.8, SpreadZ: 1.3},
		},

		PeakDepthRatio: 0.6,

		NoiseFrequency:  0.35,
		RidgeNoiseScale: 0.18,
		MicroNoiseScale: 0.06,

		IslandRadius:   9.6,
		IslandStretchZ: 2.0,
		MaskPower:      2.2,
		CliffPower:     1.5,

		CeilingThreshold: 4.2,
		CeilingRange:     1.6,

		IlluminationWidth: 0.5,
	}
}

// MaxHeight is the upper bound every generated height respects.
func (p Params) MaxHeight() float64 {
	return p.CeilingThreshold + p.CeilingRange
}

// Validate reports every out-of-range parameter.
func (p Params) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf("terrain: "+format, args...))
		}
	}
	check(p.Width > 0 && p.Depth > 0, "extent must be positive, got %vx%v", p.Width, p.Depth)
	check(p.SegmentsX >= 1 && p.SegmentsZ >= 1, "segments must be >= 1, got %dx%d", p.SegmentsX, p.SegmentsZ)
	check(p.RidgeSharpness > 0, "ridge_sharpness must be positive, got %v", p.RidgeSharpness)
	check(p.RidgeSigma > 0, "ridge_sigma must be positive, got %v", p.RidgeSigma)
	check(p.RidgeHeight >= 0, "ridge_height must not be negative, got %v", p.RidgeHeight)
	check(p.RidgeDepth > 0, "ridge_depth must be positive, got %v", p.RidgeDepth)
	check(p.PeakDepthRatio > 0, "peak_depth_ratio must be positive, got %v", p.PeakDepthRatio)
	check(p.RidgeNoiseScale >= 0, "ridge_noise_scale must not be negative, got %v", p.RidgeNoiseScale)
	check(p.MicroNoiseScale >= 0 && p.MicroNoiseScale < 1, "micro_noise_scale must be in [0,1), got %v", p.MicroNoiseScale)
	check(p.IslandRadius > 0, "island_radius must be positive, got %v", p.IslandRadius)
	check(p.IslandStretchZ > 0, "island_stretch_z must be positive, got %v", p.IslandStretchZ)
	check(p.MaskPower > 0 && p.CliffPower > 0, "mask_power and cliff_power must be positive")
	check(p.CeilingThreshold >= 0, "ceiling_threshold must not be negative, got %v", p.CeilingThreshold)
	check(p.CeilingRange > 0, "ceiling_range must be positive, got %v", p.CeilingRange)
	check(p.IlluminationWidth > 0, "illumination_width must be positive, got %v", p.IlluminationWidth)
	for i, m := range p.Massif {
		check(m.SpreadX > 0 && m.SpreadZ > 0, "massif[%d] spreads must be positive", i)
	}
	return err
}

// Generator computes target heights over a fixed grid. Terms that do not
// depend on live inputs are computed once at construction.
type Generator struct {
	params Params
	grid   *Grid

	rowProfile []float64 // Ridge cross-section per row
	static     []float64 // Massif per vertex
	texture    []float64 // Noise multiplier per vertex
	mask       []float64 // Island mask per vertex
}

// NewGenerator validates params and precomputes the static terms.
func NewGenerator(p Params) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	grid, err := NewGrid(p.Width, p.Depth, p.SegmentsX, p.SegmentsZ)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		params:     p,
		grid:       grid,
		rowProfile: make([]float64, grid.Rows),
		static:     make([]float64, grid.Len()),
		texture:    make([]float64, grid.Len()),
		mask:       make([]float64, grid.Len()),
	}

	for r, z := range grid.Z {
		g.rowProfile[r] = gauss(z-p.RidgeZ, p.RidgeDepth)
	}

	parallel.For(grid.Rows, func(r, _ int) {
		z := grid.Z[r]
		for c, x := range grid.X {
			i := grid.Index(r, c)

			var massif float64
			for _, m := range p.Massif {
				massif += m.Amplitude * gauss2D(x-m.X, z-m.Z, m.SpreadX, m.SpreadZ)
			}
			g.static[i] = massif

			fx, fz := x*p.NoiseFrequency, z*p.NoiseFrequency
			g.texture[i] = 1 +
				p.RidgeNoiseScale*noise.RidgeSeed(fx, fz, p.NoiseSeed) +
				p.MicroNoiseScale*noise.MicroSeed(fx, fz, p.NoiseSeed)

			dist := math.Hypot(x, z*p.IslandStretchZ)
			g.mask[i] = IslandMask(dist, p.IslandRadius, p.MaskPower, p.CliffPower)
		}
	})

	return g, nil
}

// Grid returns the topology the generator fills.
func (g *Generator) Grid() *Grid { return g.grid }

// Params returns the generator tuning.
func (g *Generator) Params() Params { return g.params }

// AxisPosition maps a local X coordinate onto the metric axis [0, k-1].
func (g *Generator) AxisPosition(x float64, k int) float64 {
	if k < 2 {
		return 0
	}
	return (x/g.params.Width + 0.5) * float64(k-1)
}

// AxisUnit returns the local X distance between adjacent metrics. A single
// metric spans the whole width.
func AxisUnit(width float64, k int) float64 {
	if k < 2 {
		return width
	}
	return width / float64(k-1)
}

// AxisToLocal maps a metric axis position back to local X, inverting
// AxisPosition. With fewer than two metrics everything sits at the centre.
func AxisToLocal(axis, width float64, k int) float64 {
	if k < 2 {
		return 0
	}
	return axis*width/float64(k-1) - width/2
}

// Generate fills dst with target heights for the given metrics, dynamic peaks
// and highlighted metric index (kpi.NoIndex for none). values must already be
// sanitized. dst must be sized for the grid.
func (g *Generator) Generate(values kpi.Vector, dynamic []peaks.Peak, active int, dst *Field) {
	p := g.params
	grid := g.grid
	k := len(values)

	// Per-column terms depend only on X.
	ridge := make([]float64, grid.Cols)
	illum := make([]float64, grid.Cols)
	for c, x := range grid.X {
		kpiX := g.AxisPosition(x, k)
		ridge[c] = p.RidgeHeight * RidgeContribution(values, kpiX, p.RidgeSharpness, p.RidgeSigma)
		if active >= 0 && active < k {
			illum[c] = gauss(kpiX-float64(active), p.IlluminationWidth)
		}
	}

	// Peak centres in local units.
	type bump struct{ x, z, sx, sz, amp float64 }
	bumps := make([]bump, 0, len(dynamic))
	axisUnit := AxisUnit(p.Width, k)
	for _, pk := range dynamic {
		bumps = append(bumps, bump{
			x:   AxisToLocal(pk.Axis, p.Width, k),
			z:   p.RidgeZ,
			sx:  pk.Spread * axisUnit,
			sz:  p.RidgeDepth * p.PeakDepthRatio,
			amp: pk.Amplitude,
		})
	}

	parallel.For(grid.Rows, func(r, _ int) {
		z := grid.Z[r]
		profile := g.rowProfile[r]
		for c, x := range grid.X {
			i := grid.Index(r, c)

			h := ridge[c]*profile + g.static[i]
			for _, b := range bumps {
				h += b.amp * gauss2D(x-b.x, z-b.z, b.sx, b.sz)
			}
			h *= g.texture[i]
			h *= g.mask[i]
			if h < 0 || math.IsNaN(h) {
				h = 0
			}

			dst.Heights[i] = SoftCeiling(h, p.CeilingThreshold, p.CeilingRange)
			dst.Illumination[i] = illum[c]
		}
	})

	dst.Max = 0
	for _, h := range dst.Heights {
		if h > dst.Max {
			dst.Max = h
		}
	}
}
