package scene

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/achilleasa/spheretrace/types"
	"github.com/olekukonko/tablewriter"
)

var (
	ErrDuplicateMaterial  = errors.New("scene: material already added")
	ErrDuplicatePrimitive = errors.New("scene: primitive already added")
	ErrMissingMaterial    = errors.New("scene: primitive has no material")
	ErrUnknownMaterial    = errors.New("scene: primitive material must be added to the scene first")
	ErrInvalidRadius      = errors.New("scene: sphere radius must be positive")
)

// A scene is a flat list of spheres and the materials they reference.
// It is never modified while a frame is rendering.
type Scene struct {
	Camera *Camera

	Materials  []*Material
	Primitives []*Primitive
}

func NewScene() *Scene {
	return &Scene{}
}

func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

// Register a material. Each material may only be added once.
func (s *Scene) AddMaterial(material *Material) error {
	if slices.Contains(s.Materials, material) {
		return ErrDuplicateMaterial
	}
	s.Materials = append(s.Materials, material)
	return nil
}

// Register a primitive whose material has already been added.
func (s *Scene) AddPrimitive(primitive *Primitive) error {
	switch {
	case primitive.Material == nil:
		return ErrMissingMaterial
	case !(primitive.Radius > 0):
		return ErrInvalidRadius
	case !slices.Contains(s.Materials, primitive.Material):
		return ErrUnknownMaterial
	case slices.Contains(s.Primitives, primitive):
		return ErrDuplicatePrimitive
	}
	s.Primitives = append(s.Primitives, primitive)
	return nil
}

// Return the nearest intersection across all scene primitives. Each
// primitive is tested against an interval that shrinks to the closest
// hit found so far.
func (s *Scene) Intersect(r types.Ray, tMin, tMax float32) (IntersectRecord, bool) {
	var nearest IntersectRecord
	hit := false
	for _, prim := range s.Primitives {
		if rec, ok := prim.Intersect(r, tMin, tMax); ok {
			tMax = rec.T
			nearest = rec
			hit = true
		}
	}
	return nearest, hit
}

// Render a table with the scene contents.
func (s *Scene) Stats() string {
	counts := make(map[MaterialType]int)
	for _, prim := range s.Primitives {
		counts[prim.Material.Type]++
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Count"})
	table.Append([]string{"Geometry", "Spheres", fmt.Sprintf("%d", len(s.Primitives))})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Materials", "---", fmt.Sprintf("%d", len(s.Materials))})
	for _, matType := range []MaterialType{DiffuseMaterial, SpecularMaterial, RefractiveMaterial} {
		table.Append([]string{"", matType.String() + " spheres", fmt.Sprintf("%d", counts[matType])})
	}
	if s.Camera != nil {
		table.Append([]string{" ", " ", " "})
		table.Append([]string{"Camera", "Lens radius", fmt.Sprintf("%.3f", s.Camera.LensRadius)})
	}

	table.Render()
	return buf.String()
}
