// Package palette maps normalized terrain height to scenario-specific colors.
package palette

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Scenario selects the active color palette.
type Scenario string

// Known scenarios.
const (
	ScenarioBase     Scenario = "base"
	ScenarioUpside   Scenario = "upside"
	ScenarioDownside Scenario = "downside"
	ScenarioStress   Scenario = "stress"
)

// ErrUnknownScenario is returned when no palette is registered for a scenario.
var ErrUnknownScenario = errors.New("palette: unknown scenario")

// Palette holds the gradient stops from the valley floor to the summit, plus
// the accent used for rim lighting.
type Palette struct {
	Sky    colorful.Color
	Low    colorful.Color
	Mid    colorful.Color
	High   colorful.Color
	Peak   colorful.Color
	Accent colorful.Color
}

// HexPalette is the config form of a Palette, one "#rrggbb" string per stop.
type HexPalette struct {
	Sky    string `yaml:"sky"`
	Low    string `yaml:"low"`
	Mid    string `yaml:"mid"`
	High   string `yaml:"high"`
	Peak   string `yaml:"peak"`
	Accent string `yaml:"accent"`
}

// Parse converts hex strings to a Palette.
func (h HexPalette) Parse() (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"sky", h.Sky, &p.Sky},
		{"low", h.Low, &p.Low},
		{"mid", h.Mid, &p.Mid},
		{"high", h.High, &p.High},
		{"peak", h.Peak, &p.Peak},
		{"accent", h.Accent, &p.Accent},
	}
	for _, f := range fields {
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("palette: %s color %q: %w", f.name, f.hex, err)
		}
		*f.dst = c
	}
	return p, nil
}

// DefaultHex returns the built-in palettes in config form.
func DefaultHex() map[Scenario]HexPalette {
	return map[Scenario]HexPalette{
		ScenarioBase: {
			Sky: "#0b1a2e", Low: "#1f3b4d", Mid: "#3f6e5a",
			High: "#a89f80", Peak: "#f2efe6", Accent: "#7fd8ff",
		},
		ScenarioUpside: {
			Sky: "#0c2233", Low: "#1d4d4a", Mid: "#3f8f5f",
			High: "#c9c27a", Peak: "#fffbe8", Accent: "#9dffb0",
		},
		ScenarioDownside: {
			Sky: "#1a1420", Low: "#3a2a3a", Mid: "#6a4a4a",
			High: "#a88a7a", Peak: "#e8ddd8", Accent: "#ffb27f",
		},
		ScenarioStress: {
			Sky: "#1c0c10", Low: "#40161c", Mid: "#7a2a22",
			High: "#c0603a", Peak: "#ffd8c0", Accent: "#ff5a5a",
		},
	}
}

// Set is a registry of palettes keyed by scenario.
type Set struct {
	palettes map[Scenario]Palette
}

// NewSet parses every palette in hex, failing on the first invalid color.
func NewSet(hex map[Scenario]HexPalette) (*Set, error) {
	s := &Set{palettes: make(map[Scenario]Palette, len(hex))}
	for id, h := range hex {
		p, err := h.Parse()
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", id, err)
		}
		s.palettes[id] = p
	}
	return s, nil
}

// DefaultSet returns the built-in palettes.
func DefaultSet() *Set {
	s, err := NewSet(DefaultHex())
	if err != nil {
		panic(err) // built-in colors are constants
	}
	return s
}

// Lookup returns the palette for a scenario.
func (s *Set) Lookup(id Scenario) (Palette, error) {
	p, ok := s.palettes[id]
	if !ok {
		return Palette{}, fmt.Errorf("%w: %q", ErrUnknownScenario, id)
	}
	return p, nil
}

// Scenarios lists the registered scenarios in sorted order.
func (s *Set) Scenarios() []Scenario {
	out := make([]Scenario, 0, len(s.palettes))
	for id := range s.palettes {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
