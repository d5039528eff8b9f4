package kpi

import (
	"math"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		k      int
		want   Vector
	}{
		{"valid", []float64{0, 0.25, 1}, 3, Vector{0, 0.25, 1}},
		{"clamped", []float64{-2, 0.5, 7}, 3, Vector{0, 0.5, 1}},
		{"nan and inf", []float64{math.NaN(), math.Inf(1), math.Inf(-1)}, 3, Vector{0.5, 0.5, 0.5}},
		{"too short", []float64{1}, 3, Vector{0.5, 0.5, 0.5}},
		{"too long", []float64{1, 1, 1, 1}, 3, Vector{0.5, 0.5, 0.5}},
		{"nil", nil, 2, Vector{0.5, 0.5}},
		{"zero length", []float64{1}, 0, Vector{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.values, tt.k)
			if !got.Equal(tt.want) {
				t.Errorf("Sanitize(%v, %d) = %v, want %v", tt.values, tt.k, got, tt.want)
			}
		})
	}
}

func TestSanitizeCopies(t *testing.T) {
	in := []float64{0.1, 0.2}
	out := Sanitize(in, 2)
	out[0] = 0.9
	if in[0] != 0.1 {
		t.Errorf("Sanitize mutated its input: %v", in)
	}
}

func TestLeverHome(t *testing.T) {
	if got := LeverPricing.Home(7); got != 0 {
		t.Errorf("pricing home = %d, want 0", got)
	}
	if got := LeverHiring.Home(7); got != 6 {
		t.Errorf("hiring home = %d, want 6", got)
	}
	if got := LeverRetention.Home(7); got != 3 {
		t.Errorf("retention home = %d, want 3", got)
	}
	if got := LeverID("bogus").Home(7); got != NoIndex {
		t.Errorf("unknown lever home = %d, want NoIndex", got)
	}
	if got := LeverCost.Home(0); got != NoIndex {
		t.Errorf("home with k=0 = %d, want NoIndex", got)
	}
}

func TestInteractionSanitize(t *testing.T) {
	in := Interaction{
		ActiveIndex: 9,
		Lever:       Lever{ID: "bogus", Intensity: 3},
	}
	got := in.Sanitize(7)
	if got.HasActive() {
		t.Errorf("out-of-range index kept: %d", got.ActiveIndex)
	}
	if got.Lever.ID != LeverNone {
		t.Errorf("unknown lever kept: %q", got.Lever.ID)
	}
	if got.Lever.Intensity != 1 {
		t.Errorf("intensity = %v, want 1", got.Lever.Intensity)
	}

	idle := Idle().Sanitize(7)
	if idle.HasActive() || idle.Lever.Intensity != 0 {
		t.Errorf("Idle() = %+v, want nothing active", idle)
	}
}
