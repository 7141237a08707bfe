package tracer

import (
	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/types"
	"github.com/chewxy/math32"
)

const (
	// Paths are truncated after this many bounces.
	MaxDepth = 50

	// Lower bound for accepted intersections. Keeps scattered rays from
	// hitting the surface they originate from.
	minHitDistance float32 = 0.001
)

var (
	white   = types.XYZ(1.0, 1.0, 1.0)
	skyBlue = types.XYZ(0.5, 0.7, 1.0)
)

// Frame parameters for the per-pixel driver.
type Params struct {
	FrameW          uint32
	FrameH          uint32
	SamplesPerPixel uint32
}

// The Progress interface receives one increment per shaded pixel.
type Progress interface {
	Increment()
}

// Evaluate the radiance carried by r.
func Color(r types.Ray, world scene.Intersecter, depth int, rng types.Rand) types.Vec3 {
	rec, hit := world.Intersect(r, minHitDistance, math32.Inf(1))
	if !hit {
		t := 0.5 * (r.Dir.Normalize().Y() + 1.0)
		return white.Mul(1.0 - t).Add(skyBlue.Mul(t))
	}

	if depth < MaxDepth {
		if scattered, attenuation, ok := rec.Material.Scatter(r, &rec, rng); ok {
			return Color(scattered, world, depth+1, rng).MulVec(attenuation)
		}
	}
	return types.Vec3{}
}

// Average SamplesPerPixel jittered samples for pixel (i, j) where j counts
// rows from the bottom of the frame.
func SamplePixel(i, j uint32, params Params, world scene.Intersecter, cam *scene.Camera, rng types.Rand) types.Vec3 {
	var pixel types.Vec3
	nx, ny := float32(params.FrameW), float32(params.FrameH)
	for s := uint32(0); s < params.SamplesPerPixel; s++ {
		u := (float32(i) + rng.Float32()) / nx
		v := (float32(j) + rng.Float32()) / ny
		pixel = pixel.Add(Color(cam.Point(u, v, rng), world, 0, rng))
	}
	return pixel.Div(float32(params.SamplesPerPixel))
}

// Gamma correct a linear color and quantize it to 8-bit channels.
func Quantize(c types.Vec3) [3]uint8 {
	c = types.MaxVec3(types.MinVec3(c, white), types.Vec3{}).Sqrt()
	return [3]uint8{
		uint8(255.99 * c[0]),
		uint8(255.99 * c[1]),
		uint8(255.99 * c[2]),
	}
}

// Render a full frame on the calling goroutine using a single random
// source. Pixels are emitted as packed RGB triplets starting from the top
// row. A nil progress is allowed.
func Cast(params Params, world scene.Intersecter, cam *scene.Camera, rng types.Rand, progress Progress) []uint8 {
	out := make([]uint8, 0, 3*params.FrameW*params.FrameH)
	for j := int(params.FrameH) - 1; j >= 0; j-- {
		for i := uint32(0); i < params.FrameW; i++ {
			rgb := Quantize(SamplePixel(i, uint32(j), params, world, cam, rng))
			out = append(out, rgb[0], rgb[1], rgb[2])
			if progress != nil {
				progress.Increment()
			}
		}
	}
	return out
}
