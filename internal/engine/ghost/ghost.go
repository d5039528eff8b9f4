// Package ghost captures frozen copies of the mountain for before/after
// comparisons.
package ghost

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Faultbox/summit/internal/engine/mountain"
	"github.com/Faultbox/summit/internal/engine/palette"
	"github.com/Faultbox/summit/internal/engine/terrain"
	"github.com/Faultbox/summit/pkg/kpi"
)

// ErrGridMismatch is returned when comparing snapshots of different grids.
var ErrGridMismatch = errors.New("ghost: snapshots use different grids")

// Snapshot is an immutable copy of the authoritative surface.
type Snapshot struct {
	ID        uuid.UUID
	Label     string
	Taken     time.Time
	Scenario  palette.Scenario
	Metrics   kpi.Vector
	Transform mountain.Transform

	heights *terrain.Heightmap
}

// Capture freezes the engine's current heights.
func Capture(e *mountain.Engine, label string) *Snapshot {
	return &Snapshot{
		ID:        uuid.New(),
		Label:     label,
		Taken:     time.Now(),
		Scenario:  e.Scenario(),
		Metrics:   e.Metrics(),
		Transform: e.Transform(),
		heights:   e.Heightmap(),
	}
}

// HeightAt samples the frozen surface at a world position, clamping queries
// outside the grid the same way the live engine does.
func (s *Snapshot) HeightAt(worldX, worldZ float64) float64 {
	x, z := s.Transform.ToLocal(worldX, worldZ)
	return s.Transform.ToWorldY(s.heights.HeightAtLocal(x, z))
}

// Heights returns the frozen per-vertex heights. Callers must not modify them.
func (s *Snapshot) Heights() []float64 {
	return s.heights.Heights
}

// Diff summarizes how a surface moved between two snapshots, in local units.
type Diff struct {
	MaxRise   float64 // Largest increase at any vertex
	MaxDrop   float64 // Largest decrease at any vertex, as a positive number
	MeanDelta float64 // Average signed change
}

// Compare measures the change from before to after.
func Compare(before, after *Snapshot) (Diff, error) {
	a, b := before.heights, after.heights
	if a.Cols != b.Cols || a.Rows != b.Rows || len(a.Heights) != len(b.Heights) {
		return Diff{}, ErrGridMismatch
	}

	var d Diff
	if len(a.Heights) == 0 {
		return d, nil
	}
	var sum float64
	for i := range a.Heights {
		delta := b.Heights[i] - a.Heights[i]
		sum += delta
		d.MaxRise = math.Max(d.MaxRise, delta)
		d.MaxDrop = math.Max(d.MaxDrop, -delta)
	}
	d.MeanDelta = sum / float64(len(a.Heights))
	return d, nil
}
