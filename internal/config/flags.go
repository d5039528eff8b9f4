package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/summit/internal/engine/palette"
	"github.com/Faultbox/summit/pkg/kpi"
)

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagMetrics   = flag.String("metrics", "", "Comma-separated metric values in [0,1]")
	flagScenario  = flag.String("scenario", "", "Palette scenario: base, upside, downside, stress")
	flagActive    = flag.Int("active", kpi.NoIndex, "Index of the hovered metric")
	flagLever     = flag.String("lever", "", "Lever: pricing, acquisition, retention, cost, hiring")
	flagIntensity = flag.Float64("intensity", -1, "Lever intensity in [0,1]")
	flagPreview   = flag.String("preview", "", "Write a top-down BMP preview to this path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config. Flags left at their
// defaults keep the file values.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMetrics != "" {
		values, err := ParseMetrics(*flagMetrics)
		if err != nil {
			return err
		}
		cfg.Inputs.Metrics = values
		cfg.Inputs.MetricCount = len(values)
	}
	if *flagScenario != "" {
		cfg.Inputs.Scenario = palette.Scenario(*flagScenario)
	}
	if *flagActive >= 0 {
		cfg.Inputs.Active = *flagActive
	}
	if *flagLever != "" {
		cfg.Inputs.Lever.ID = kpi.LeverID(*flagLever)
	}
	if *flagIntensity >= 0 {
		cfg.Inputs.Lever.Intensity = *flagIntensity
	}
	if *flagPreview != "" {
		cfg.Preview.Path = *flagPreview
	}
	return nil
}

// ParseMetrics parses a comma-separated list of metric values.
func ParseMetrics(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("metric %d %q: %w", i, p, err)
		}
		values = append(values, v)
	}
	return values, nil
}
