// Package config handles summit configuration loading and management.
package config

import (
	"github.com/Faultbox/summit/internal/engine/mountain"
	"github.com/Faultbox/summit/internal/engine/palette"
	"github.com/Faultbox/summit/internal/engine/peaks"
	"github.com/Faultbox/summit/internal/engine/terrain"
	"github.com/Faultbox/summit/pkg/kpi"
)

// Config holds all summit settings.
type Config struct {
	Terrain   terrain.Params                          `yaml:"terrain"`
	Peaks     peaks.Settings                          `yaml:"peaks"`
	Animation mountain.Settings                       `yaml:"animation"`
	Color     palette.Params                          `yaml:"color"`
	Palettes  map[palette.Scenario]palette.HexPalette `yaml:"palettes"`
	Transform mountain.Transform                      `yaml:"transform"`
	Inputs    InputsConfig                            `yaml:"inputs"`
	Preview   PreviewConfig                           `yaml:"preview"`
	Logging   LoggingConfig                           `yaml:"logging"`
}

// InputsConfig holds the inputs the mountain starts from.
type InputsConfig struct {
	MetricCount int              `yaml:"metric_count"`
	Metrics     []float64        `yaml:"metrics"` // Empty means neutral
	Scenario    palette.Scenario `yaml:"scenario"`
	Active      int              `yaml:"active"` // -1 for none
	Lever       kpi.Lever        `yaml:"lever"`
}

// PreviewConfig holds the frame loop and image export settings.
type PreviewConfig struct {
	Path          string  `yaml:"path"` // Empty disables the BMP export
	MaxFrames     int     `yaml:"max_frames"`
	FPS           int     `yaml:"fps"`
	Realtime      bool    `yaml:"realtime"` // Pace frames on the wall clock
	PixelsPerCell int     `yaml:"pixels_per_cell"`
	SunAzimuth    float64 `yaml:"sun_azimuth"`   // Degrees around Y, 0 along +Z
	SunElevation  float64 `yaml:"sun_elevation"` // Degrees above the horizon
	Ambient       float64 `yaml:"ambient"`
	Samples       int     `yaml:"samples"` // Heights logged along the metric axis
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain:   terrain.DefaultParams(),
		Peaks:     peaks.DefaultSettings(),
		Animation: mountain.DefaultSettings(),
		Color:     palette.DefaultParams(),
		Palettes:  palette.DefaultHex(),
		Transform: mountain.IdentityTransform(),
		Inputs: InputsConfig{
			MetricCount: kpi.DefaultCount,
			Scenario:    palette.ScenarioBase,
			Active:      kpi.NoIndex,
		},
		Preview: PreviewConfig{
			Path:          "",
			MaxFrames:     1200,
			FPS:           60,
			Realtime:      false,
			PixelsPerCell: 4,
			SunAzimuth:    220,
			SunElevation:  55,
			Ambient:       0.35,
			Samples:       15,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
