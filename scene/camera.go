package scene

import (
	"fmt"

	"github.com/achilleasa/spheretrace/types"
	"github.com/chewxy/math32"
)

// The camera type maps normalized image plane coordinates to world space rays.
type Camera struct {
	Origin     types.Vec3
	Corner     types.Vec3
	Horizontal types.Vec3
	Vertical   types.Vec3

	// Lens basis and radius. A zero radius yields a pinhole camera.
	U          types.Vec3
	V          types.Vec3
	LensRadius float32
}

// Create a camera positioned at lookFrom and pointed towards lookAt. The
// vertical field of view is given in degrees. The image plane is placed at
// focusDist and rays originate from a lens disk with diameter aperture.
func NewCamera(lookFrom, lookAt, up types.Vec3, vfov, aspect, aperture, focusDist float32) *Camera {
	theta := vfov * math32.Pi / 180
	halfHeight := math32.Tan(theta / 2)
	halfWidth := aspect * halfHeight

	w := lookFrom.Sub(lookAt).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	corner := lookFrom.
		Sub(u.Mul(halfWidth * focusDist)).
		Sub(v.Mul(halfHeight * focusDist)).
		Sub(w.Mul(focusDist))

	return &Camera{
		Origin:     lookFrom,
		Corner:     corner,
		Horizontal: u.Mul(2 * halfWidth * focusDist),
		Vertical:   v.Mul(2 * halfHeight * focusDist),
		U:          u,
		V:          v,
		LensRadius: aperture / 2,
	}
}

// Create a pinhole camera from its image plane corner and extents.
func NewPinholeCamera(corner, horizontal, vertical, origin types.Vec3) *Camera {
	return &Camera{
		Origin:     origin,
		Corner:     corner,
		Horizontal: horizontal,
		Vertical:   vertical,
	}
}

// Generate the ray through image plane coordinates (s, t). The random
// source is only consulted when the camera has a lens.
func (c *Camera) Point(s, t float32, rng types.Rand) types.Ray {
	var offset types.Vec3
	if c.LensRadius > 0 {
		rd := types.RandomInUnitDisk(rng).Mul(c.LensRadius)
		offset = c.U.Mul(rd[0]).Add(c.V.Mul(rd[1]))
	}

	origin := c.Origin.Add(offset)
	dir := c.Corner.
		Add(c.Horizontal.Mul(s)).
		Add(c.Vertical.Mul(t)).
		Sub(c.Origin).
		Sub(offset)
	return types.NewRay(origin, dir)
}

func (c *Camera) String() string {
	return fmt.Sprintf(
		"Camera:\norigin     : (%3.3f, %3.3f, %3.3f)\ncorner     : (%3.3f, %3.3f, %3.3f)\nhorizontal : (%3.3f, %3.3f, %3.3f)\nvertical   : (%3.3f, %3.3f, %3.3f)\nlens radius: %3.3f",
		c.Origin[0], c.Origin[1], c.Origin[2],
		c.Corner[0], c.Corner[1], c.Corner[2],
		c.Horizontal[0], c.Horizontal[1], c.Horizontal[2],
		c.Vertical[0], c.Vertical[1], c.Vertical[2],
		c.LensRadius,
	)
}
