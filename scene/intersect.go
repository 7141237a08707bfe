package scene

import "github.com/achilleasa/spheretrace/types"

// The result of a successful ray intersection test.
type IntersectRecord struct {
	// Ray parameter at the intersection point.
	T float32

	// Intersection point.
	Point types.Vec3

	// Unit length, outward facing surface normal.
	Normal types.Vec3

	// The surface material. It is borrowed from the scene and remains
	// valid for as long as the scene is alive.
	Material *Material
}

// The Intersecter interface is implemented by anything that can be struck
// by a ray.
type Intersecter interface {
	// Return the nearest intersection with tMin < t < tMax.
	Intersect(r types.Ray, tMin, tMax float32) (IntersectRecord, bool)
}
