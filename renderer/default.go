package renderer

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/achilleasa/spheretrace/log"
	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/tracer"
	"github.com/achilleasa/spheretrace/tracer/cpu"
)

// Rows assigned to each tracer per scheduling round. The frame is rendered
// as a sequence of bands so that cancellation is checked between bands
// and the scheduler receives feedback while the frame is still in progress.
const rowsPerTracer uint32 = 8

// The default renderer splits the frame into row blocks and renders them
// in parallel using a pool of cpu tracers.
type defaultRenderer struct {
	logger log.Logger

	// The list of attached tracers and the block scheduler.
	tracers          []tracer.Tracer
	scheduler        tracer.BlockScheduler
	blockAssignments []uint32

	// Renderer options.
	options Options

	// Shared RGB frame buffer.
	frameBuffer []uint8

	// Channels for receiving tracer completion and errors.
	doneChan chan uint32
	errChan  chan error

	// Render statistics
	stats FrameStats
}

// Create a new default renderer using the specified block scheduler.
func NewDefault(sc *scene.Scene, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}

	numWorkers := opts.NumWorkers
	if numWorkers == 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers <= 0 {
		return nil, ErrNoTracers
	}
	if uint32(numWorkers) > opts.FrameH {
		numWorkers = int(opts.FrameH)
	}

	r := &defaultRenderer{
		logger:      log.New("renderer"),
		scheduler:   scheduler,
		options:     opts,
		frameBuffer: make([]uint8, 3*opts.FrameW*opts.FrameH),
		tracers:     make([]tracer.Tracer, 0, numWorkers),
		doneChan:    make(chan uint32, numWorkers),
		errChan:     make(chan error, numWorkers),
	}

	for idx := 0; idx < numWorkers; idx++ {
		tr := cpu.NewTracer(fmt.Sprintf("cpu-%d", idx))
		if err := tr.Setup(opts.FrameW, opts.FrameH, r.frameBuffer); err != nil {
			tr.Close()
			r.Close()
			return nil, err
		}
		tr.Update(tracer.UpdateScene, sc)
		r.tracers = append(r.tracers, tr)
	}
	r.logger.Infof("attached %d cpu tracers", len(r.tracers))

	return r, nil
}

// Shutdown renderer and any attached tracer.
func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}

// Get last frame stats.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

// Get the last rendered frame.
func (r *defaultRenderer) Frame() *image.RGBA {
	return toRGBA(r.options.FrameW, r.options.FrameH, r.frameBuffer)
}

// Render frame. Rendering stops between bands if ctx is cancelled.
func (r *defaultRenderer) Render(ctx context.Context) error {
	if len(r.tracers) == 0 {
		return ErrNoTracers
	}

	start := time.Now()
	r.stats = FrameStats{
		Tracers: make([]TracerStat, len(r.tracers)),
	}
	for idx, tr := range r.tracers {
		r.stats.Tracers[idx].Id = tr.Id()
	}

	bandH := rowsPerTracer * uint32(len(r.tracers))
	for bandY := uint32(0); bandY < r.options.FrameH; bandY += bandH {
		select {
		case <-ctx.Done():
			r.logger.Warningf("render interrupted after %d rows", bandY)
			return ErrInterrupted
		default:
		}

		if bandY+bandH > r.options.FrameH {
			bandH = r.options.FrameH - bandY
		}

		if err := r.renderBand(bandY, bandH); err != nil {
			return err
		}
	}

	r.stats.RenderTime = time.Since(start)
	for idx := range r.stats.Tracers {
		r.stats.Tracers[idx].FramePercent = 100.0 * float32(r.stats.Tracers[idx].Rows) / float32(r.options.FrameH)
	}
	r.logger.Debugf("rendered %dx%d frame in %s", r.options.FrameW, r.options.FrameH, r.stats.RenderTime)
	return nil
}

// Schedule a band of rows across the tracers and wait for all blocks to
// complete.
func (r *defaultRenderer) renderBand(bandY, bandH uint32) error {
	r.blockAssignments = r.scheduler.Schedule(r.tracers, bandH)

	blockY := bandY
	pending := 0
	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		if blockH == 0 {
			continue
		}

		tr.Enqueue(tracer.BlockRequest{
			BlockY:          blockY,
			BlockH:          blockH,
			SamplesPerPixel: r.options.SamplesPerPixel,
			Seed:            r.options.Seed,
			Progress:        r.options.Progress,
			DoneChan:        r.doneChan,
			ErrChan:         r.errChan,
		})
		blockY += blockH
		pending++
	}

	// Wait for all in-flight blocks even if one of them fails so that no
	// tracer is left writing to the frame buffer.
	var err error
	for ; pending > 0; pending-- {
		select {
		case <-r.doneChan:
		case blockErr := <-r.errChan:
			if err == nil {
				err = blockErr
			}
		}
	}
	if err != nil {
		return err
	}

	for idx, tr := range r.tracers {
		if r.blockAssignments[idx] == 0 {
			continue
		}
		stats := tr.Stats()
		r.stats.Tracers[idx].Blocks++
		r.stats.Tracers[idx].Rows += r.blockAssignments[idx]
		r.stats.Tracers[idx].RenderTime += stats.RenderTime
	}
	return nil
}
