package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

type exportOptions struct {
	Dir    string
	Frames int
	Width  int
	Height int
	Theme  Theme
	Start  time.Time // clock value of the first frame
}

// exportFrames renders opts.Frames frames headlessly and writes them as
// numbered PNG files. It returns the paths written so far, also on error.
func exportFrames(ctx context.Context, cfg *Config, opts exportOptions, log *zap.Logger) ([]string, error) {
	if opts.Frames <= 0 {
		return nil, ErrNoFrames
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}

	dir, err := cfg.GetSavePath(opts.Dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	seed := cfg.Seed
	if !cfg.HasSeed {
		seed = rand.Uint64()
	}
	log = log.With(zap.String("component", "export"), zap.Uint64("seed", seed))

	var caption func(n int)
	surface := NewCanvasSurface(opts.Width, opts.Height)
	if cfg.Caption {
		face, err := loadCaptionFace(14)
		if err != nil {
			return nil, err
		}
		ink := starPalettes[opts.Theme][0].color.WithAlpha(0.8)
		caption = func(n int) {
			surface.Caption(fmt.Sprintf("frame %04d  %s  seed %d", n, opts.Theme, seed), face, ink)
		}
	}

	host := NewEventHost(opts.Width, opts.Height, opts.Theme,
		forcedDetail(cfg.Detail, reducedBelow(mobileBreakpointPx)))
	frames := NewManualScheduler()

	var (
		paths   []string
		saveErr error
	)
	hook := func(time.Time) {
		if saveErr != nil {
			return
		}
		n := len(paths) + 1
		if caption != nil {
			caption(n)
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", n))
		if err := surface.SavePNG(path); err != nil {
			saveErr = fmt.Errorf("write frame %d: %w", n, err)
			return
		}
		paths = append(paths, path)
	}

	animator := NewAnimator(NewSeededField(seed), host, frames, surface,
		WithLogger(log),
		WithFrameHook(hook),
	)
	if err := animator.Start(); err != nil {
		return nil, err
	}
	defer animator.Stop()

	step := time.Second / time.Duration(max(cfg.FPS, 1))
	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		if frames.Advance(opts.Start.Add(time.Duration(i)*step)) == 0 {
			return paths, fmt.Errorf("frame %d: %w", i+1, ErrDetached)
		}
		if saveErr != nil {
			return paths, saveErr
		}
	}

	log.Info("frames exported", zap.Int("frames", len(paths)), zap.String("dir", dir))
	return paths, nil
}
