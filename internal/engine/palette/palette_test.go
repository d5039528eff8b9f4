package palette

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func basePalette(t *testing.T) Palette {
	t.Helper()
	p, err := DefaultSet().Lookup(ScenarioBase)
	if err != nil {
		t.Fatalf("Lookup(base): %v", err)
	}
	return p
}

func near(a, b colorful.Color) bool {
	const eps = 1e-9
	d := func(x, y float64) bool { return x-y < eps && y-x < eps }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B)
}

func TestGradientStops(t *testing.T) {
	p := basePalette(t)
	tests := []struct {
		h01  float64
		want colorful.Color
	}{
		{0, p.Sky},
		{0.25, p.Low},
		{0.5, p.Mid},
		{0.75, p.High},
		{1, p.Peak},
		{-1, p.Sky},
		{2, p.Peak},
	}
	for _, tt := range tests {
		if got := Gradient(tt.h01, p); !near(got, tt.want) {
			t.Errorf("Gradient(%v) = %v, want %v", tt.h01, got.Hex(), tt.want.Hex())
		}
	}
}

func TestGradientMidBand(t *testing.T) {
	p := basePalette(t)
	got := Gradient(0.125, p)
	want := p.Sky.BlendRgb(p.Low, 0.5)
	if !near(got, want) {
		t.Errorf("Gradient(0.125) = %v, want %v", got.Hex(), want.Hex())
	}
}

func TestColorIllumination(t *testing.T) {
	p := basePalette(t)
	params := DefaultParams()

	plain := Color(0.3, p, 0, false, params)
	lit := Color(0.3, p, 1, false, params)
	if !near(plain, Gradient(0.3, p)) {
		t.Errorf("unlit color %v differs from gradient", plain.Hex())
	}
	if lit.R+lit.G+lit.B <= plain.R+plain.G+plain.B {
		t.Errorf("illuminated color %v not brighter than %v", lit.Hex(), plain.Hex())
	}
}

func TestColorRim(t *testing.T) {
	p := basePalette(t)
	params := DefaultParams()
	params.RimStrength = 1

	if got := Color(0.9, p, 0, true, params); !near(got, p.Accent) {
		t.Errorf("full-strength rim = %v, want accent %v", got.Hex(), p.Accent.Hex())
	}
}

func TestColorInRange(t *testing.T) {
	p := basePalette(t)
	for i := 0; i <= 20; i++ {
		c := Color(float64(i)/20, p, 5, true, Params{HighlightStrength: 3, RimStrength: 3})
		for _, v := range []float64{c.R, c.G, c.B} {
			if v < 0 || v > 1 {
				t.Fatalf("Color component %v out of [0,1]", v)
			}
		}
	}
}

func TestIsRim(t *testing.T) {
	params := DefaultParams()
	tests := []struct {
		h01, z01 float64
		want     bool
	}{
		{0.9, 0.1, true},
		{0.9, 0.9, false},
		{0.2, 0.1, false},
	}
	for _, tt := range tests {
		if got := IsRim(tt.h01, tt.z01, params); got != tt.want {
			t.Errorf("IsRim(%v, %v) = %v, want %v", tt.h01, tt.z01, got, tt.want)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := DefaultSet().Lookup("eclipse")
	if !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("Lookup(eclipse) error = %v, want ErrUnknownScenario", err)
	}
}

func TestNewSetInvalidHex(t *testing.T) {
	hex := DefaultHex()
	bad := hex[ScenarioBase]
	bad.Mid = "green"
	hex[ScenarioBase] = bad
	if _, err := NewSet(hex); err == nil {
		t.Error("NewSet accepted an invalid color")
	}
}

func TestScenariosSorted(t *testing.T) {
	got := DefaultSet().Scenarios()
	want := []Scenario{ScenarioBase, ScenarioDownside, ScenarioStress, ScenarioUpside}
	if len(got) != len(want) {
		t.Fatalf("Scenarios() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Scenarios()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
