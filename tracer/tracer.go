package tracer

import (
	"errors"
	"time"
)

var (
	ErrNoSceneData = errors.New("tracer: no scene data uploaded")
	ErrBusy        = errors.New("tracer: block request rejected; tracer is busy")
	ErrBlockBounds = errors.New("tracer: block exceeds frame bounds")
)

type UpdateType uint8

const (
	// Replace the scene. Its camera is used unless a camera update is supplied.
	UpdateScene UpdateType = iota

	// Replace the camera.
	UpdateCamera
)

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// Block start row (counted from the top of the frame) and height.
	BlockY uint32
	BlockH uint32

	// The number of emitted rays per traced pixel.
	SamplesPerPixel uint32

	// A random seed value for the tracer's random number generator.
	Seed uint64

	// Optional progress sink.
	Progress Progress

	// A channel to signal on block completion with the number of completed rows.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// Tracer statistics.
type Stats struct {
	// The rendered block height
	BlockH uint32

	// The time for rendering the last block.
	RenderTime time.Duration

	// The time spent applying pending updates.
	UpdateTime time.Duration
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Shutdown and cleanup tracer.
	Close()

	// Get the tracers computation speed estimate compared to a
	// baseline (single cpu core) implementation.
	SpeedEstimate() float32

	// Setup the tracer. Rendered blocks are written to the RGB frame buffer.
	Setup(frameW, frameH uint32, frameBuffer []uint8) error

	// Enqueue block request.
	Enqueue(BlockRequest)

	// Append a change to the tracer's update buffer.
	Update(UpdateType, interface{})

	// Retrieve last block statistics.
	Stats() *Stats
}
