package renderer

import (
	"context"
	"image"
)

type Renderer interface {
	// Render frame.
	Render(ctx context.Context) error

	// Get the last rendered frame.
	Frame() *image.RGBA

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats
}

// Convert a packed, top row first RGB buffer into an image.
func toRGBA(frameW, frameH uint32, rgb []uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(frameW), int(frameH)))
	for src, dst := 0, 0; src < len(rgb); src, dst = src+3, dst+4 {
		img.Pix[dst] = rgb[src]
		img.Pix[dst+1] = rgb[src+1]
		img.Pix[dst+2] = rgb[src+2]
		img.Pix[dst+3] = 255
	}
	return img
}
