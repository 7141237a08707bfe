package scene

import (
	"github.com/achilleasa/spheretrace/types"
	"github.com/chewxy/math32"
)

type MaterialType uint8

const (
	DiffuseMaterial MaterialType = iota
	SpecularMaterial
	RefractiveMaterial
)

func (t MaterialType) String() string {
	switch t {
	case DiffuseMaterial:
		return "lambertian"
	case SpecularMaterial:
		return "metal"
	case RefractiveMaterial:
		return "dielectric"
	}
	return "unknown"
}

// Defines a scene material.
type Material struct {
	// The type of the material.
	Type MaterialType

	// Attenuation color.
	Albedo types.Vec3

	// Perturbation applied to reflected/refracted rays (specular and
	// refractive materials only). Clamped to [0, 1] for specular materials.
	Fuzz float32

	// Index of refraction (refractive materials only)
	IOR float32
}

// Create a diffuse (lambertian) material.
func NewLambertian(albedo types.Vec3) *Material {
	return &Material{
		Type:   DiffuseMaterial,
		Albedo: albedo,
	}
}

// Create a specular material.
func NewMetal(albedo types.Vec3, fuzz float32) *Material {
	if !(fuzz >= 0.0) {
		fuzz = 0.0
	} else if fuzz > 1.0 {
		fuzz = 1.0
	}

	return &Material{
		Type:   SpecularMaterial,
		Albedo: albedo,
		Fuzz:   fuzz,
	}
}

// Create a refractive material.
func NewDielectric(ior, fuzz float32, albedo types.Vec3) *Material {
	return &Material{
		Type:   RefractiveMaterial,
		Albedo: albedo,
		Fuzz:   fuzz,
		IOR:    ior,
	}
}

// Scatter an incoming ray at the recorded intersection. It returns the
// scattered ray and its attenuation, or false if the ray was absorbed.
func (m *Material) Scatter(in types.Ray, rec *IntersectRecord, rng types.Rand) (types.Ray, types.Vec3, bool) {
	switch m.Type {
	case DiffuseMaterial:
		return m.scatterDiffuse(rec, rng)
	case SpecularMaterial:
		return m.scatterSpecular(in, rec, rng)
	case RefractiveMaterial:
		return m.scatterRefractive(in, rec, rng)
	}
	return types.Ray{}, types.Vec3{}, false
}

func (m *Material) scatterDiffuse(rec *IntersectRecord, rng types.Rand) (types.Ray, types.Vec3, bool) {
	target := rec.Point.Add(rec.Normal).Add(types.RandomInUnitSphere(rng))
	return types.NewRay(rec.Point, target.Sub(rec.Point)), m.Albedo, true
}

func (m *Material) scatterSpecular(in types.Ray, rec *IntersectRecord, rng types.Rand) (types.Ray, types.Vec3, bool) {
	reflected := Reflect(in.Dir.Normalize(), rec.Normal)
	scattered := types.NewRay(rec.Point, reflected.Add(types.RandomInUnitSphere(rng).Mul(m.Fuzz)))

	// Rays perturbed below the surface are absorbed
	if scattered.Dir.Dot(rec.Normal) <= 0 {
		return types.Ray{}, types.Vec3{}, false
	}
	return scattered, m.Albedo, true
}

func (m *Material) scatterRefractive(in types.Ray, rec *IntersectRecord, rng types.Rand) (types.Ray, types.Vec3, bool) {
	var outwardNormal types.Vec3
	var niOverNt, cosine float32

	cosTheta := in.Dir.Dot(rec.Normal)
	if cosTheta > 0 {
		// exiting the medium
		outwardNormal = rec.Normal.Neg()
		niOverNt = m.IOR
		cosine = m.IOR * cosTheta / in.Dir.Len()
	} else {
		// entering the medium
		outwardNormal = rec.Normal
		niOverNt = 1.0 / m.IOR
		cosine = -cosTheta / in.Dir.Len()
	}

	if refracted, ok := Refract(in.Dir, outwardNormal, niOverNt); ok {
		if rng.Float32() >= Schlick(cosine, m.IOR) {
			return types.NewRay(rec.Point, refracted.Add(types.RandomInUnitSphere(rng).Mul(m.Fuzz))), m.Albedo, true
		}
	}

	reflected := Reflect(in.Dir.Normalize(), rec.Normal)
	return types.NewRay(rec.Point, reflected.Add(types.RandomInUnitSphere(rng).Mul(m.Fuzz))), m.Albedo, true
}

// Reflect v about normal n.
func Reflect(v, n types.Vec3) types.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Refract v through a surface with normal n given the ratio of refractive
// indices. It returns false when no refracted direction exists (total
// internal reflection).
func Refract(v, n types.Vec3, niOverNt float32) (types.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1.0-dt*dt)
	if discriminant <= 0 {
		return types.Vec3{}, false
	}
	return uv.Sub(n.Mul(dt)).Mul(niOverNt).Sub(n.Mul(math32.Sqrt(discriminant))), true
}

// Schlick's approximation of the angle dependent Fresnel reflectance.
func Schlick(cosine, ior float32) float32 {
	r0 := (1 - ior) / (1 + ior)
	r0 = r0 * r0
	return r0 + (1-r0)*math32.Pow(1-cosine, 5)
}
