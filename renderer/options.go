package renderer

import "github.com/achilleasa/spheretrace/tracer"

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of samples.
	SamplesPerPixel uint32

	// Seed for the random streams used while tracing.
	Seed uint64

	// Number of cpu tracers. If zero, one tracer per cpu core is used.
	// Ignored by the serial renderer.
	NumWorkers int

	// Optional sink for per-pixel progress updates.
	Progress tracer.Progress
}

// Validate render options.
func (opts Options) Validate() error {
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return ErrInvalidFrameSize
	}
	if opts.SamplesPerPixel == 0 {
		return ErrInvalidSampleCount
	}
	return nil
}
