package terrain

import (
	"math"
	"testing"

	"github.com/Faultbox/summit/internal/engine/peaks"
	"github.com/Faultbox/summit/pkg/kpi"
)

// smallParams keeps tests fast while preserving the default shaping.
func smallParams() Params {
	p := DefaultParams()
	p.SegmentsX = 60
	p.SegmentsZ = 30
	return p
}

func newTestGenerator(t *testing.T, p Params) *Generator {
	t.Helper()
	g, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

func generate(g *Generator, values kpi.Vector, dyn []peaks.Peak, active int) *Field {
	f := NewField(g.Grid().Len())
	g.Generate(values, dyn, active, f)
	return f
}

// maxSlope returns the steepest height step between horizontal neighbours.
func maxSlope(g *Generator, f *Field) float64 {
	grid := g.Grid()
	var best float64
	for r := range grid.Rows {
		for c := 1; c < grid.Cols; c++ {
			d := math.Abs(f.Heights[grid.Index(r, c)] - f.Heights[grid.Index(r, c-1)])
			best = math.Max(best, d)
		}
	}
	return best
}

func TestGenerate_Bounded(t *testing.T) {
	p := smallParams()
	g := newTestGenerator(t, p)
	limit := p.MaxHeight()

	inputs := []kpi.Vector{
		kpi.NeutralVector(7),
		{1, 1, 1, 1, 1, 1, 1},
		{0, 0, 0, 0, 0, 0, 0},
		{1, 0, 1, 0, 1, 0, 1},
	}
	hot := []peaks.Peak{
		{Axis: 3, Spread: 0.45, Amplitude: 50},
		{Axis: 2.4, Spread: 0.45, Amplitude: 50},
		{Axis: 3.6, Spread: 0.45, Amplitude: 50},
	}

	for _, values := range inputs {
		f := generate(g, values, hot, 3)
		for i, h := range f.Heights {
			if math.IsNaN(h) || math.IsInf(h, 0) {
				t.Fatalf("height[%d] = %v for %v, want finite", i, h, values)
			}
			if h < 0 || h > limit {
				t.Fatalf("height[%d] = %v for %v, want within [0, %v]", i, h, values, limit)
			}
		}
	}
}

func TestGenerate_ExtremeParamsStayBounded(t *testing.T) {
	p := smallParams()
	p.RidgeHeight = 1e6
	p.RidgeSharpness = 0.2
	g := newTestGenerator(t, p)

	f := generate(g, kpi.Vector{1, 1, 1, 1, 1, 1, 1}, nil, kpi.NoIndex)
	if f.Max > p.MaxHeight() {
		t.Errorf("max height %v exceeds ceiling bound %v", f.Max, p.MaxHeight())
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g := newTestGenerator(t, smallParams())
	values := kpi.Vector{0.2, 0.9, 0.4, 0.7, 0.1, 0.6, 0.3}
	dyn := []peaks.Peak{{Axis: 1, Spread: 0.45, Amplitude: 1}}

	a := generate(g, values, dyn, 1)
	b := generate(g, values, dyn, 1)
	for i := range a.Heights {
		if a.Heights[i] != b.Heights[i] {
			t.Fatalf("height[%d] differs between runs: %v vs %v", i, a.Heights[i], b.Heights[i])
		}
		if a.Illumination[i] != b.Illumination[i] {
			t.Fatalf("illumination[%d] differs between runs", i)
		}
	}
}

func TestGenerate_MaxedHigherThanNeutral(t *testing.T) {
	g := newTestGenerator(t, smallParams())
	limit := g.Params().MaxHeight()

	neutral := generate(g, kpi.NeutralVector(7), nil, kpi.NoIndex)
	maxed := generate(g, kpi.Vector{1, 1, 1, 1, 1, 1, 1}, nil, kpi.NoIndex)

	if maxed.Max <= neutral.Max {
		t.Errorf("maxed peak %v not above neutral peak %v", maxed.Max, neutral.Max)
	}
	if maxed.Max > limit || neutral.Max > limit {
		t.Errorf("peaks %v / %v exceed bound %v", maxed.Max, neutral.Max, limit)
	}
}

func TestGenerate_MaxedRidgeSharperThanNeutral(t *testing.T) {
	// Isolate the metric ridge: no backdrop, no texture.
	p := smallParams()
	p.Massif = nil
	p.RidgeNoiseScale = 0
	p.MicroNoiseScale = 0
	g := newTestGenerator(t, p)

	neutral := generate(g, kpi.NeutralVector(7), nil, kpi.NoIndex)
	maxed := generate(g, kpi.Vector{1, 1, 1, 1, 1, 1, 1}, nil, kpi.NoIndex)

	if s1, s0 := maxSlope(g, maxed), maxSlope(g, neutral); s1 <= s0 {
		t.Errorf("maxed slope %v not steeper than neutral slope %v", s1, s0)
	}
	if maxed.Max > p.MaxHeight() {
		t.Errorf("maxed peak %v exceeds bound %v", maxed.Max, p.MaxHeight())
	}
}

func TestGenerate_ZeroMetrics(t *testing.T) {
	g := newTestGenerator(t, smallParams())
	f := generate(g, kpi.Vector{}, nil, kpi.NoIndex)

	// Only the massif backdrop remains.
	if f.Max <= 0 {
		t.Error("expected massif backdrop with no metrics")
	}
	for i, h := range f.Heights {
		if math.IsNaN(h) {
			t.Fatalf("height[%d] is NaN", i)
		}
	}
	for i, v := range f.Illumination {
		if v != 0 {
			t.Fatalf("illumination[%d] = %v with no metrics, want 0", i, v)
		}
	}
}

func TestGenerate_EdgesTaperToZero(t *testing.T) {
	g := newTestGenerator(t, smallParams())
	f := generate(g, kpi.Vector{1, 1, 1, 1, 1, 1, 1}, nil, kpi.NoIndex)
	grid := g.Grid()

	for r := range grid.Rows {
		for _, c := range []int{0, grid.Cols - 1} {
			if h := f.Heights[grid.Index(r, c)]; h != 0 {
				t.Errorf("edge height at row %d col %d = %v, want 0", r, c, h)
			}
		}
	}
}

func TestGenerate_Illumination(t *testing.T) {
	g := newTestGenerator(t, smallParams())
	grid := g.Grid()

	f := generate(g, kpi.NeutralVector(7), nil, 0)
	left := f.Illumination[grid.Index(0, 0)]
	right := f.Illumination[grid.Index(0, grid.Cols-1)]
	if left != 1 {
		t.Errorf("illumination at active column = %v, want 1", left)
	}
	if right >= 0.01 {
		t.Errorf("illumination far from active column = %v, want ~0", right)
	}

	idle := generate(g, kpi.NeutralVector(7), nil, kpi.NoIndex)
	for i, v := range idle.Illumination {
		if v != 0 {
			t.Fatalf("illumination[%d] = %v without active metric", i, v)
		}
	}
}

func TestGenerate_DynamicPeaksRaiseTerrain(t *testing.T) {
	g := newTestGenerator(t, smallParams())
	grid := g.Grid()
	values := kpi.NeutralVector(7)

	base := generate(g, values, nil, kpi.NoIndex)
	bumped := generate(g, values, []peaks.Peak{{Axis: 3, Spread: 0.45, Amplitude: 1.4}}, kpi.NoIndex)

	centre := grid.Index(grid.Rows/2, grid.Cols/2)
	if bumped.Heights[centre] <= base.Heights[centre] {
		t.Errorf("peak did not raise centre: %v -> %v", base.Heights[centre], bumped.Heights[centre])
	}
}

func TestAxisToLocal_InvertsAxisPosition(t *testing.T) {
	g := newTestGenerator(t, smallParams())
	w := g.Params().Width

	for _, k := range []int{2, 3, 7} {
		for i := range k {
			x := AxisToLocal(float64(i), w, k)
			if got := g.AxisPosition(x, k); math.Abs(got-float64(i)) > 1e-12 {
				t.Errorf("k=%d: AxisPosition(AxisToLocal(%d)) = %v", k, i, got)
			}
		}
	}
	if x := AxisToLocal(0, w, 1); x != 0 {
		t.Errorf("single metric local X = %v, want 0", x)
	}
	if u := AxisUnit(w, 1); u != w {
		t.Errorf("single metric axis unit = %v, want %v", u, w)
	}
}

func TestGenerate_SingleMetricPeakCentred(t *testing.T) {
	p := smallParams()
	p.Massif = nil
	p.RidgeNoiseScale = 0
	p.MicroNoiseScale = 0
	g := newTestGenerator(t, p)
	grid := g.Grid()

	in := kpi.Interaction{ActiveIndex: 0, Lever: kpi.Lever{Intensity: 1}}
	dyn := peaks.Project(in, 1, peaks.DefaultSettings())
	if len(dyn) == 0 {
		t.Fatal("expected a peak for the single metric")
	}

	values := kpi.Vector{0.5}
	base := generate(g, values, nil, kpi.NoIndex)
	raised := generate(g, values, dyn, 0)

	for r := range grid.Rows {
		for c := range grid.Cols / 2 {
			left := raised.Heights[grid.Index(r, c)]
			right := raised.Heights[grid.Index(r, grid.Cols-1-c)]
			if math.Abs(left-right) > 1e-9 {
				t.Fatalf("row %d: height at x=%v is %v, mirror is %v", r, grid.X[c], left, right)
			}
		}
	}

	centre := grid.Index(grid.Rows/2, grid.Cols/2)
	if raised.Heights[centre] <= base.Heights[centre] {
		t.Errorf("centre height %v not raised above %v", raised.Heights[centre], base.Heights[centre])
	}
}

func TestRidgeContribution_Monotone(t *testing.T) {
	base := []float64{0.3, 0.6, 0.2, 0.8, 0.5, 0.1, 0.9}
	for i := range base {
		prev := -1.0
		for step := 0; step <= 20; step++ {
			values := append([]float64(nil), base...)
			values[i] = float64(step) / 20
			got := RidgeContribution(values, float64(i), 1.4, 0.55)
			if got < prev {
				t.Fatalf("ridge at %d decreased when raising value to %v: %v < %v", i, values[i], got, prev)
			}
			prev = got
		}
	}
}

func TestSoftCeiling(t *testing.T) {
	const threshold, span = 4.0, 1.5

	if got := SoftCeiling(2, threshold, span); got != 2 {
		t.Errorf("SoftCeiling(2) = %v, want 2", got)
	}
	if got := SoftCeiling(math.Inf(1), threshold, span); got != threshold+span {
		t.Errorf("SoftCeiling(+Inf) = %v, want %v", got, threshold+span)
	}
	if got := SoftCeiling(math.NaN(), threshold, span); got != 0 {
		t.Errorf("SoftCeiling(NaN) = %v, want 0", got)
	}

	prev := threshold
	for h := threshold + 0.5; h < 20; h += 0.5 {
		got := SoftCeiling(h, threshold, span)
		if got <= prev {
			t.Errorf("SoftCeiling not strictly increasing at %v: %v <= %v", h, got, prev)
		}
		if got >= threshold+span {
			t.Errorf("SoftCeiling(%v) = %v, reached bound %v", h, got, threshold+span)
		}
		if got > h {
			t.Errorf("SoftCeiling(%v) = %v, expanded instead of compressing", h, got)
		}
		prev = got
	}
}

func TestIslandMask(t *testing.T) {
	tests := []struct {
		dist float64
		want float64
	}{
		{0, 1},
		{10, 0},
		{12, 0},
	}
	for _, tt := range tests {
		if got := IslandMask(tt.dist, 10, 2, 1.5); got != tt.want {
			t.Errorf("IslandMask(%v) = %v, want %v", tt.dist, got, tt.want)
		}
	}
	if mid := IslandMask(5, 10, 2, 1.5); mid <= 0 || mid >= 1 {
		t.Errorf("IslandMask(5) = %v, want in (0,1)", mid)
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	p := DefaultParams()
	p.SegmentsX = 0
	p.CeilingRange = 0
	p.MicroNoiseScale = 1.5
	if err := p.Validate(); err == nil {
		t.Error("expected validation error")
	}
	if _, err := NewGenerator(p); err == nil {
		t.Error("NewGenerator accepted invalid params")
	}
}
