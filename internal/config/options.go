package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/summit/internal/engine/mountain"
	"github.com/Faultbox/summit/internal/engine/palette"
	"github.com/Faultbox/summit/pkg/kpi"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	err := multierr.Combine(
		c.Terrain.Validate(),
		c.Animation.Validate(),
	)

	add := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf(format, args...))
		}
	}
	add(c.Peaks.BaseAmplitude >= 0, "peaks: base_amplitude must not be negative, got %v", c.Peaks.BaseAmplitude)
	add(c.Peaks.Spread > 0, "peaks: spread must be positive, got %v", c.Peaks.Spread)
	add(c.Peaks.ShoulderRatio >= 0, "peaks: shoulder_ratio must not be negative, got %v", c.Peaks.ShoulderRatio)
	add(c.Transform.Scale >= 0, "transform: scale must not be negative, got %v", c.Transform.Scale)
	add(c.Inputs.MetricCount >= 0, "inputs: metric_count must not be negative, got %d", c.Inputs.MetricCount)
	add(len(c.Inputs.Metrics) == 0 || len(c.Inputs.Metrics) == c.Inputs.MetricCount,
		"inputs: %d metrics given for metric_count %d", len(c.Inputs.Metrics), c.Inputs.MetricCount)
	add(c.Inputs.Lever.ID.Valid(), "inputs: unknown lever %q", c.Inputs.Lever.ID)
	add(c.Preview.FPS > 0, "preview: fps must be positive, got %d", c.Preview.FPS)
	add(c.Preview.MaxFrames > 0, "preview: max_frames must be positive, got %d", c.Preview.MaxFrames)
	add(c.Preview.Samples >= 0, "preview: samples must not be negative, got %d", c.Preview.Samples)

	set, perr := palette.NewSet(c.Palettes)
	if perr != nil {
		err = multierr.Append(err, perr)
	} else if _, lerr := set.Lookup(c.Inputs.Scenario); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("inputs: %w", lerr))
	}
	return err
}

// EngineOptions builds mountain options from the config. A nil log uses
// the package logger.
func (c *Config) EngineOptions(log *zap.Logger) (mountain.Options, error) {
	set, err := palette.NewSet(c.Palettes)
	if err != nil {
		return mountain.Options{}, fmt.Errorf("palettes: %w", err)
	}
	if c.Inputs.MetricCount < 0 {
		return mountain.Options{}, errors.New("inputs: metric_count must not be negative")
	}
	return mountain.Options{
		MetricCount: c.Inputs.MetricCount,
		Terrain:     c.Terrain,
		Peaks:       c.Peaks,
		Animation:   c.Animation,
		Color:       c.Color,
		Palettes:    set,
		Scenario:    c.Inputs.Scenario,
		Transform:   c.Transform,
		Logger:      log,
	}, nil
}

// Interaction returns the configured starting interaction.
func (c *Config) Interaction() kpi.Interaction {
	return kpi.Interaction{ActiveIndex: c.Inputs.Active, Lever: c.Inputs.Lever}
}

// NewEngine creates an engine from the config. It starts from neutral
// metrics with nothing active; see ApplyInputs.
func (c *Config) NewEngine(log *zap.Logger) (*mountain.Engine, error) {
	opts, err := c.EngineOptions(log)
	if err != nil {
		return nil, err
	}
	e, err := mountain.New(opts)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	return e, nil
}

// ApplyInputs hands the configured metrics, interaction and scenario to e.
func (c *Config) ApplyInputs(e *mountain.Engine) error {
	if len(c.Inputs.Metrics) > 0 {
		e.SetMetrics(c.Inputs.Metrics)
	}
	e.SetInteraction(c.Interaction())
	return e.SetScenario(c.Inputs.Scenario)
}
