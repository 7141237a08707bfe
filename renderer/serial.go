package renderer

import (
	"context"
	"image"
	"time"

	"github.com/achilleasa/spheretrace/log"
	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/tracer"
	"github.com/achilleasa/spheretrace/types"
)

// The serial renderer traces the whole frame on the calling goroutine
// using a single random stream.
type serialRenderer struct {
	logger  log.Logger
	sc      *scene.Scene
	options Options

	frameBuffer []uint8
	stats       FrameStats
}

// Create a new single-threaded renderer.
func NewSerial(sc *scene.Scene, opts Options) (Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}

	return &serialRenderer{
		logger:      log.New("serial renderer"),
		sc:          sc,
		options:     opts,
		frameBuffer: make([]uint8, 3*opts.FrameW*opts.FrameH),
	}, nil
}

// Render frame. The context is only checked before tracing starts.
func (r *serialRenderer) Render(ctx context.Context) error {
	if ctx.Err() != nil {
		return ErrInterrupted
	}

	start := time.Now()
	params := tracer.Params{
		FrameW:          r.options.FrameW,
		FrameH:          r.options.FrameH,
		SamplesPerPixel: r.options.SamplesPerPixel,
	}
	rng := types.NewRand(r.options.Seed, 0)
	r.frameBuffer = tracer.Cast(params, r.sc, r.sc.Camera, rng, r.options.Progress)

	elapsed := time.Since(start)
	r.stats = FrameStats{
		Tracers: []TracerStat{
			{
				Id:           "serial",
				Blocks:       1,
				Rows:         r.options.FrameH,
				FramePercent: 100.0,
				RenderTime:   elapsed,
			},
		},
		RenderTime: elapsed,
	}
	r.logger.Debugf("rendered %dx%d frame in %s", r.options.FrameW, r.options.FrameH, elapsed)
	return nil
}

// Get the last rendered frame.
func (r *serialRenderer) Frame() *image.RGBA {
	return toRGBA(r.options.FrameW, r.options.FrameH, r.frameBuffer)
}

// Get last frame stats.
func (r *serialRenderer) Stats() FrameStats {
	return r.stats
}

// Nothing to release.
func (r *serialRenderer) Close() {}
