package ghost

import (
	"testing"

	"github.com/Faultbox/summit/internal/engine/mountain"
	"github.com/Faultbox/summit/pkg/kpi"
)

func settledEngine(t *testing.T, values []float64) *mountain.Engine {
	t.Helper()
	opts := mountain.DefaultOptions()
	opts.Terrain.SegmentsX = 30
	opts.Terrain.SegmentsZ = 15
	opts.Animation.Smoothing = 0.3
	e, err := mountain.New(opts)
	if err != nil {
		t.Fatalf("mountain.New: %v", err)
	}
	e.SetMetrics(values)
	for i := 0; i < 2000 && !e.Converged(); i++ {
		e.Update(1.0 / 60)
	}
	if !e.Converged() {
		t.Fatal("engine did not converge")
	}
	return e
}

func TestCapture_FreezesSurface(t *testing.T) {
	e := settledEngine(t, []float64{0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2})
	snap := Capture(e, "before")

	if snap.Label != "before" {
		t.Errorf("Label = %q, want before", snap.Label)
	}
	if got, want := snap.HeightAt(0, 0), e.HeightAt(0, 0); got != want {
		t.Errorf("snapshot HeightAt = %v, engine %v", got, want)
	}

	frozen := snap.HeightAt(0, 0)
	e.SetMetrics([]float64{1, 1, 1, 1, 1, 1, 1})
	for i := 0; i < 50; i++ {
		e.Update(1.0 / 60)
	}
	if got := snap.HeightAt(0, 0); got != frozen {
		t.Errorf("snapshot changed with the engine: %v -> %v", frozen, got)
	}
}

func TestCapture_UniqueIDs(t *testing.T) {
	e := settledEngine(t, kpi.NeutralVector(7))
	a, b := Capture(e, "a"), Capture(e, "b")
	if a.ID == b.ID {
		t.Errorf("snapshots share ID %v", a.ID)
	}
}

func TestCompare(t *testing.T) {
	low := Capture(settledEngine(t, []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}), "low")
	high := Capture(settledEngine(t, []float64{0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9}), "high")

	d, err := Compare(low, high)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if d.MaxRise <= 0 || d.MeanDelta <= 0 {
		t.Errorf("raising metrics gave %+v, want positive rise", d)
	}
	if d.MaxDrop != 0 {
		t.Errorf("raising every metric dropped terrain by %v", d.MaxDrop)
	}

	same, err := Compare(high, high)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if same != (Diff{}) {
		t.Errorf("self comparison = %+v, want zero", same)
	}
}

func TestCompare_GridMismatch(t *testing.T) {
	a := Capture(settledEngine(t, kpi.NeutralVector(7)), "a")

	opts := mountain.DefaultOptions()
	opts.Terrain.SegmentsX = 10
	opts.Terrain.SegmentsZ = 5
	e, err := mountain.New(opts)
	if err != nil {
		t.Fatalf("mountain.New: %v", err)
	}
	b := Capture(e, "b")

	if _, err := Compare(a, b); err != ErrGridMismatch {
		t.Errorf("Compare error = %v, want ErrGridMismatch", err)
	}
}
