// Package host drives a mountain engine frame by frame until it settles.
package host

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/summit/internal/engine/mountain"
	"github.com/Faultbox/summit/internal/logger"
)

// Options configures a Host.
type Options struct {
	FPS       int
	MaxFrames int  // Stop after this many frames even if not stable
	Realtime  bool // Pace frames on the wall clock
	Logger    *zap.Logger
}

// Result summarizes a run.
type Result struct {
	Frames    int
	Stable    bool // The engine has had its first stable frame
	Converged bool // The run ended on a converged frame
	Elapsed   time.Duration
}

// Host owns the frame loop around an engine.
type Host struct {
	engine *mountain.Engine
	opts   Options
	step   *FixedStep
	log    *zap.Logger

	// OnFrame, when set, runs after every engine update.
	OnFrame func(frame int)
}

// New creates a host for e.
func New(e *mountain.Engine, opts Options) *Host {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	log := opts.Logger
	if log == nil {
		log = logger.Named("host")
	}
	return &Host{
		engine: e,
		opts:   opts,
		step:   NewFixedStep(opts.FPS),
		log:    log,
	}
}

// Run advances the engine with a fixed dt until it converges, MaxFrames
// elapse, or ctx is cancelled. On a fresh engine convergence coincides with
// the first stable frame. Cancellation returns the context error
// alongside the partial result.
func (h *Host) Run(ctx context.Context) (Result, error) {
	var res Result
	start := time.Now()
	dt := h.step.Seconds()
	stable := h.engine.Stable()

	// FPS counter
	frameCount := 0
	fpsTimer := time.Now()

	h.log.Debug("starting frame loop",
		zap.Int("fps", h.opts.FPS),
		zap.Int("max_frames", h.opts.MaxFrames),
		zap.Bool("realtime", h.opts.Realtime),
	)

	for h.opts.MaxFrames <= 0 || res.Frames < h.opts.MaxFrames {
		if err := ctx.Err(); err != nil {
			res.Elapsed = time.Since(start)
			return res, err
		}
		if h.opts.Realtime && !h.step.ShouldStep() {
			time.Sleep(h.step.Remaining())
			continue
		}

		h.engine.Update(dt)
		res.Frames++
		if h.OnFrame != nil {
			h.OnFrame(res.Frames)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			h.log.Debug("frame rate", zap.Int("fps", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		select {
		case <-stable:
			res.Stable = true
		default:
		}
		if res.Stable && h.engine.Converged() {
			res.Converged = true
			break
		}
	}

	res.Elapsed = time.Since(start)
	if !res.Converged {
		h.log.Warn("frame budget exhausted before convergence", zap.Int("frames", res.Frames))
	}
	return res, nil
}
