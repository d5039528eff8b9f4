// Package mountain owns the animated mountain: it turns metric inputs into
// target buffers, relaxes the live surface toward them every tick and answers
// height queries for overlays.
package mountain

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/golang/geo/r3"
	"go.uber.org/zap"

	"github.com/Faultbox/summit/internal/engine/palette"
	"github.com/Faultbox/summit/internal/engine/peaks"
	"github.com/Faultbox/summit/internal/engine/terrain"
	"github.com/Faultbox/summit/internal/logger"
	"github.com/Faultbox/summit/pkg/kpi"
)

// ErrNegativeMetricCount is returned for a negative metric count.
var ErrNegativeMetricCount = errors.New("mountain: metric count must not be negative")

// Options configures a new Engine.
type Options struct {
	MetricCount int
	Terrain     terrain.Params
	Peaks       peaks.Settings
	Animation   Settings
	Color       palette.Params
	Palettes    *palette.Set // nil selects the built-in palettes
	Scenario    palette.Scenario
	Transform   Transform
	Logger      *zap.Logger // nil uses the package logger
}

// DefaultOptions returns options for the standard seven-metric mountain.
func DefaultOptions() Options {
	return Options{
		MetricCount: kpi.DefaultCount,
		Terrain:     terrain.DefaultParams(),
		Peaks:       peaks.DefaultSettings(),
		Animation:   DefaultSettings(),
		Color:       palette.DefaultParams(),
		Scenario:    palette.ScenarioBase,
		Transform:   IdentityTransform(),
	}
}

// Engine owns every per-vertex buffer of the mountain. Setters only record
// inputs; the work happens once per Update so bursts of input changes within a
// tick cost a single regeneration.
type Engine struct {
	mu sync.RWMutex

	opts     Options
	gen      *terrain.Generator
	grid     *terrain.Grid
	palettes *palette.Set
	log      *zap.Logger

	// Inputs
	metrics     kpi.Vector
	interaction kpi.Interaction
	peakSource  kpi.Interaction // Last interaction with intensity, kept while peaks fade out
	scenario    palette.Scenario
	pal         palette.Palette
	fader       *peaks.Fader

	dirtyHeights bool
	dirtyColors  bool

	// Targets are published by swapping target and back after a full fill.
	target      *terrain.Field
	back        *terrain.Field
	targetColor [][3]float64

	// Live state
	height  []float64 // Authoritative, sampled by HeightAt
	color   [][3]float64
	display []float64 // height plus breathing, render only
	normals []r3.Vector

	generated   bool
	normalsInit bool
	converged   bool
	clock       float64
	ticks       uint64

	stable     chan struct{}
	stableOnce *sync.Once
}

// New creates an engine with neutral metrics and nothing active.
func New(opts Options) (*Engine, error) {
	if opts.MetricCount < 0 {
		return nil, ErrNegativeMetricCount
	}
	if err := opts.Animation.Validate(); err != nil {
		return nil, err
	}
	gen, err := terrain.NewGenerator(opts.Terrain)
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}
	if opts.Transform.Scale == 0 {
		opts.Transform.Scale = 1
	}

	pals := opts.Palettes
	if pals == nil {
		pals = palette.DefaultSet()
	}
	if opts.Scenario == "" {
		opts.Scenario = palette.ScenarioBase
	}
	pal, err := pals.Lookup(opts.Scenario)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.Named("mountain")
	}

	e := &Engine{
		opts:     opts,
		gen:      gen,
		grid:     gen.Grid(),
		palettes: pals,
		log:      log,
		scenario: opts.Scenario,
		pal:      pal,
		fader:    peaks.NewFader(opts.Animation.Fader),
	}
	e.metrics = kpi.NeutralVector(opts.MetricCount)
	e.interaction = kpi.Idle()
	e.peakSource = kpi.Idle()
	e.allocate()

	log.Debug("engine created",
		zap.Int("metrics", opts.MetricCount),
		zap.Int("vertices", e.grid.Len()),
		zap.String("scenario", string(e.scenario)),
	)
	return e, nil
}

// allocate (re)creates every buffer at rest.
func (e *Engine) allocate() {
	n := e.grid.Len()
	e.target = terrain.NewField(n)
	e.back = terrain.NewField(n)
	e.targetColor = make([][3]float64, n)
	e.height = make([]float64, n)
	e.color = make([][3]float64, n)
	e.display = make([]float64, n)
	e.normals = make([]r3.Vector, n)

	e.generated = false
	e.normalsInit = false
	e.converged = false
	e.clock = 0
	e.ticks = 0
	e.dirtyHeights = true
	e.dirtyColors = true
	e.stable = make(chan struct{})
	e.stableOnce = new(sync.Once)
}

// Reset drops all live state and regenerates from the current inputs on the
// next Update, as after a loss of the rendering context. Channels returned
// by Stable before the call are no longer signalled.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.fader.Reset()
	e.peakSource = kpi.Idle()
	e.interaction = kpi.Idle()
	e.allocate()
	e.log.Info("engine reset")
}

// SetMetrics records a new metric vector. Malformed input is replaced by the
// neutral vector rather than rejected.
func (e *Engine) SetMetrics(values []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := kpi.Sanitize(values, e.opts.MetricCount)
	if v.Equal(e.metrics) {
		return
	}
	e.metrics = v
	e.dirtyHeights = true
}

// SetInteraction records the active metric and lever.
func (e *Engine) SetInteraction(in kpi.Interaction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	in = in.Sanitize(e.opts.MetricCount)
	if in.ActiveIndex != e.interaction.ActiveIndex {
		e.dirtyHeights = true
	}
	if in.Lever.Intensity > 0 {
		if in.ActiveIndex != e.peakSource.ActiveIndex || in.Lever.ID != e.peakSource.Lever.ID {
			e.dirtyHeights = true
		}
		e.peakSource = in
	}
	e.interaction = in
	e.fader.SetTarget(in.Lever.Intensity)
}

// SetScenario switches the palette. Only color targets are recomputed.
func (e *Engine) SetScenario(id palette.Scenario) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id == e.scenario {
		return nil
	}
	pal, err := e.palettes.Lookup(id)
	if err != nil {
		return err
	}
	e.scenario = id
	e.pal = pal
	e.dirtyColors = true
	e.log.Info("scenario switched", zap.String("scenario", string(id)))
	return nil
}

// Scenario returns the active scenario.
func (e *Engine) Scenario() palette.Scenario {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scenario
}

// Update runs one frame: regenerate targets if inputs changed, relax the live
// surface toward them, then refresh the display buffer. dt is in seconds and
// only drives the breathing motion.
func (e *Engine) Update(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ticks++
	if !e.fader.Settled() {
		e.fader.Step()
		e.dirtyHeights = true
	}
	if e.dirtyHeights {
		e.regenerate()
	}
	if e.dirtyColors {
		e.recolor()
	}

	converged := e.relax()
	e.breathe(dt)

	e.converged = converged && e.generated && e.fader.Settled()
	if e.converged {
		e.stableOnce.Do(func() {
			close(e.stable)
			e.log.Info("first stable frame", zap.Uint64("tick", e.ticks))
		})
	}
}

// regenerate computes fresh height targets into the back buffer and publishes
// them only once complete.
func (e *Engine) regenerate() {
	eff := e.peakSource
	eff.Lever.Intensity = e.fader.Value()
	dynamic := peaks.Project(eff, e.opts.MetricCount, e.opts.Peaks)

	e.gen.Generate(e.metrics, dynamic, e.interaction.ActiveIndex, e.back)
	e.target, e.back = e.back, e.target

	if !e.generated {
		// Rise out of the sky color rather than black.
		sky := [3]float64{e.pal.Sky.R, e.pal.Sky.G, e.pal.Sky.B}
		for i := range e.color {
			e.color[i] = sky
		}
	}
	e.generated = true
	e.dirtyHeights = false
	e.dirtyColors = true

	e.log.Debug("targets regenerated",
		zap.Float64("max_height", e.target.Max),
		zap.Int("peaks", len(dynamic)),
		zap.Uint64("tick", e.ticks),
	)
}

// recolor recomputes color targets from the published height targets.
func (e *Engine) recolor() {
	maxH := e.target.Max
	grid := e.grid
	for r := range grid.Rows {
		z01 := grid.Z01(r)
		for c := range grid.Cols {
			i := grid.Index(r, c)
			var h01 float64
			if maxH > 0 {
				h01 = e.target.Heights[i] / maxH
			}
			rim := palette.IsRim(h01, z01, e.opts.Color)
			col := palette.Color(h01, e.pal, e.target.Illumination[i], rim, e.opts.Color)
			e.targetColor[i] = [3]float64{col.R, col.G, col.B}
		}
	}
	e.dirtyColors = false
}

// relax steps every channel toward its target and reports whether all of
// them have converged.
func (e *Engine) relax() bool {
	s := e.opts.Animation
	all := true
	var maxDelta float64

	for i := range e.height {
		prev := e.height[i]
		h, ok := Relax(prev, e.target.Heights[i], s.Smoothing, s.Epsilon)
		e.height[i] = h
		all = all && ok
		maxDelta = math.Max(maxDelta, math.Abs(h-prev))

		for ch := range 3 {
			v, ok := Relax(e.color[i][ch], e.targetColor[i][ch], s.Smoothing, s.Epsilon)
			e.color[i][ch] = v
			all = all && ok
		}
	}

	if !e.normalsInit || maxDelta > s.NormalEpsilon {
		terrain.ComputeNormals(e.grid, e.height, e.normals)
		e.normalsInit = true
	}
	return all
}

// breathe advances the clock and writes the cosmetic display heights.
func (e *Engine) breathe(dt float64) {
	s := e.opts.Animation
	if dt > 0 {
		e.clock += dt
	}
	if s.BreathAmplitude == 0 {
		copy(e.display, e.height)
		return
	}
	base := 2 * math.Pi * s.BreathHz * e.clock
	for r := range e.grid.Rows {
		for c, x := range e.grid.X {
			i := e.grid.Index(r, c)
			h := e.height[i]
			e.display[i] = h + h*s.BreathAmplitude*math.Sin(base+x*s.BreathPhase)
		}
	}
}

// Stable returns a channel closed on the first tick at which every channel
// has converged. Reset arms a new channel and leaves an unclosed old one
// open forever, so callers must call Stable again after Reset.
func (e *Engine) Stable() <-chan struct{} {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stable
}

// Converged reports whether the last Update left every channel at its target.
func (e *Engine) Converged() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.converged
}

// Ticks returns how many updates have run since creation or the last Reset.
func (e *Engine) Ticks() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ticks
}

// Grid returns the fixed topology.
func (e *Engine) Grid() *terrain.Grid { return e.grid }

// Transform returns the local-to-world mapping.
func (e *Engine) Transform() Transform { return e.opts.Transform }

// Terrain returns the height-field tuning in use.
func (e *Engine) Terrain() terrain.Params { return e.opts.Terrain }

// MetricCount returns K.
func (e *Engine) MetricCount() int { return e.opts.MetricCount }

// Metrics returns a copy of the sanitized metric vector in use.
func (e *Engine) Metrics() kpi.Vector {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.metrics.Clone()
}

// Mesh assembles the renderable surface from the display buffer.
func (e *Engine) Mesh() *terrain.Mesh {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return terrain.BuildMesh(e.grid, e.display, e.normals, e.color)
}

// Heightmap returns a copy of the authoritative current heights.
func (e *Engine) Heightmap() *terrain.Heightmap {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Heightmap(append([]float64(nil), e.height...))
}

// TargetHeightmap returns a copy of the published target heights.
func (e *Engine) TargetHeightmap() *terrain.Heightmap {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Heightmap(append([]float64(nil), e.target.Heights...))
}

// TargetColors returns a copy of the color targets.
func (e *Engine) TargetColors() [][3]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([][3]float64(nil), e.targetColor...)
}

// Colors returns a copy of the current colors.
func (e *Engine) Colors() [][3]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([][3]float64(nil), e.color...)
}

// HeightAt returns the authoritative surface height under a world position.
// Queries outside the grid are clamped to its edge. Before the first
// generation it returns 0. Breathing never affects the result.
func (e *Engine) HeightAt(worldX, worldZ float64) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.generated {
		return 0
	}
	t := e.opts.Transform
	x, z := t.ToLocal(worldX, worldZ)
	u := x/e.grid.Width + 0.5
	v := z/e.grid.Depth + 0.5
	h := terrain.SampleBilinear(e.height, e.grid.Cols, e.grid.Rows, u, v)
	return t.ToWorldY(h)
}
