package scene

import (
	"github.com/achilleasa/spheretrace/types"
	"github.com/chewxy/math32"
)

type PrimitiveType uint32

const (
	SpherePrimitive PrimitiveType = iota
)

// Defines a scene primitive.
type Primitive struct {
	// The primitive type.
	Type PrimitiveType

	// The primitive origin.
	Center types.Vec3

	// Sphere radius.
	Radius float32

	// The primitive material. Must be added to the scene before the primitive
	Material *Material
}

// Create new sphere primitive.
func NewSphere(center types.Vec3, radius float32, material *Material) *Primitive {
	return &Primitive{
		Type:     SpherePrimitive,
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Intersect the primitive with a ray.
func (p *Primitive) Intersect(r types.Ray, tMin, tMax float32) (IntersectRecord, bool) {
	switch p.Type {
	case SpherePrimitive:
		return p.intersectSphere(r, tMin, tMax)
	}
	return IntersectRecord{}, false
}

// Solve t²(d·d) + 2t(d·oc) + oc·oc - r² = 0 and keep the nearest root
// inside (tMin, tMax).
func (p *Primitive) intersectSphere(r types.Ray, tMin, tMax float32) (IntersectRecord, bool) {
	oc := r.Origin.Sub(p.Center)
	a := r.Dir.Dot(r.Dir)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - p.Radius*p.Radius
	discriminant := b*b - a*c
	if discriminant <= 0 {
		return IntersectRecord{}, false
	}

	sqrtD := math32.Sqrt(discriminant)
	for _, t := range [2]float32{(-b - sqrtD) / a, (-b + sqrtD) / a} {
		if tMin < t && t < tMax {
			point := r.PointAt(t)
			return IntersectRecord{
				T:        t,
				Point:    point,
				Normal:   point.Sub(p.Center).Div(p.Radius),
				Material: p.Material,
			}, true
		}
	}

	return IntersectRecord{}, false
}
