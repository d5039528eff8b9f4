// Package main is the entry point for the summit command. It grows the
// mountain from neutral metrics, applies the configured inputs, lets the
// surface settle and reports what changed.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/golang/geo/r3"
	"go.uber.org/zap"

	"github.com/Faultbox/summit/internal/config"
	"github.com/Faultbox/summit/internal/engine/ghost"
	"github.com/Faultbox/summit/internal/engine/overlay"
	"github.com/Faultbox/summit/internal/host"
	"github.com/Faultbox/summit/internal/logger"
	"github.com/Faultbox/summit/internal/preview"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Summit ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	e, err := cfg.NewEngine(nil)
	if err != nil {
		return err
	}
	h := host.New(e, host.Options{
		FPS:       cfg.Preview.FPS,
		MaxFrames: cfg.Preview.MaxFrames,
		Realtime:  cfg.Preview.Realtime,
	})

	res, err := h.Run(ctx)
	if err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	logger.Info("baseline settled", zap.Int("frames", res.Frames), zap.Duration("elapsed", res.Elapsed))
	before := ghost.Capture(e, "baseline")

	if err := cfg.ApplyInputs(e); err != nil {
		return err
	}
	res, err = h.Run(ctx)
	if err != nil {
		return fmt.Errorf("inputs: %w", err)
	}
	logger.Info("inputs settled",
		zap.Int("frames", res.Frames),
		zap.Bool("converged", res.Converged),
		zap.Duration("elapsed", res.Elapsed),
	)
	after := ghost.Capture(e, "inputs")

	diff, err := ghost.Compare(before, after)
	if err != nil {
		return err
	}
	logger.Info("surface change",
		zap.Stringer("before", before.ID),
		zap.Stringer("after", after.ID),
		zap.Float64("max_rise", diff.MaxRise),
		zap.Float64("max_drop", diff.MaxDrop),
		zap.Float64("mean_delta", diff.MeanDelta),
	)

	for i, m := range overlay.PlaceMarkers(e, 0) {
		logger.Info("metric", zap.Int("index", i), zap.Float64("x", m.X), zap.Float64("height", m.Y))
	}
	logSamples(e, cfg)

	if cfg.Preview.Path != "" {
		g := e.Grid()
		img := preview.Render(e.Mesh(), g.Cols, g.Rows, preview.Options{
			PixelsPerCell: cfg.Preview.PixelsPerCell,
			Light:         preview.SunDirection(cfg.Preview.SunAzimuth, cfg.Preview.SunElevation),
			Ambient:       cfg.Preview.Ambient,
		})
		if err := preview.WriteBMP(cfg.Preview.Path, img); err != nil {
			return err
		}
		logger.Info("preview written", zap.String("path", cfg.Preview.Path))
	}
	return nil
}

// logSamples drapes the ridge line and logs evenly spaced heights along it.
func logSamples(s overlay.Sampler, cfg *config.Config) {
	n := cfg.Preview.Samples
	if n < 2 {
		return
	}
	t := cfg.Transform
	half := cfg.Terrain.Width / 2
	x0, z0 := t.ToWorld(-half, cfg.Terrain.RidgeZ)
	x1, z1 := t.ToWorld(half, cfg.Terrain.RidgeZ)
	step := (x1 - x0) / float64(n-1)

	path := []r3.Vector{{X: x0, Z: z0}, {X: x1, Z: z1}}
	for _, p := range overlay.Drape(s, path, 0, step) {
		logger.Debug("ridge sample", zap.Float64("x", p.X), zap.Float64("height", p.Y))
	}
}
