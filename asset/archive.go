package asset

import (
	"errors"
	"fmt"

	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/types"
)

var (
	ErrUnknownMaterialType = errors.New("archive: unknown material type")
	ErrInvalidIOR          = errors.New("archive: dielectric index of refraction must be positive")
)

// The name of the gob-encoded scene entry inside scene archives.
const DataFile = "scene.bin"

// A sphere whose material is referenced by its index in the archive
// material list.
type ArchivedSphere struct {
	Center        types.Vec3
	Radius        float32
	MaterialIndex uint32
}

// The serializable representation of a scene.
type Archive struct {
	Camera    *scene.Camera
	Materials []scene.Material
	Spheres   []ArchivedSphere
}

// Flatten a scene into an archive. Spheres sharing a material reference
// the same material index.
func NewArchive(sc *scene.Scene) *Archive {
	ar := &Archive{
		Camera:    sc.Camera,
		Materials: make([]scene.Material, 0, len(sc.Materials)),
		Spheres:   make([]ArchivedSphere, 0, len(sc.Primitives)),
	}

	matIndex := make(map[*scene.Material]uint32, len(sc.Materials))
	for _, mat := range sc.Materials {
		matIndex[mat] = uint32(len(ar.Materials))
		ar.Materials = append(ar.Materials, *mat)
	}

	for _, prim := range sc.Primitives {
		index, exists := matIndex[prim.Material]
		if !exists {
			index = uint32(len(ar.Materials))
			matIndex[prim.Material] = index
			ar.Materials = append(ar.Materials, *prim.Material)
		}
		ar.Spheres = append(ar.Spheres, ArchivedSphere{
			Center:        prim.Center,
			Radius:        prim.Radius,
			MaterialIndex: index,
		})
	}

	return ar
}

// Rebuild the scene described by the archive.
func (ar *Archive) Scene() (*scene.Scene, error) {
	sc := scene.NewScene()
	sc.SetCamera(ar.Camera)

	for idx := range ar.Materials {
		mat, err := restoreMaterial(&ar.Materials[idx])
		if err != nil {
			return nil, fmt.Errorf("archive: material %d: %w", idx, err)
		}
		if err = sc.AddMaterial(mat); err != nil {
			return nil, err
		}
	}

	for idx, sphere := range ar.Spheres {
		if sphere.MaterialIndex >= uint32(len(sc.Materials)) {
			return nil, fmt.Errorf("archive: sphere %d references material %d; only %d materials defined", idx, sphere.MaterialIndex, len(sc.Materials))
		}
		err := sc.AddPrimitive(scene.NewSphere(sphere.Center, sphere.Radius, sc.Materials[sphere.MaterialIndex]))
		if err != nil {
			return nil, fmt.Errorf("archive: sphere %d: %w", idx, err)
		}
	}

	return sc, nil
}

// Rebuild an archived material through its constructor so the same
// limits apply as for materials created in code.
func restoreMaterial(mat *scene.Material) (*scene.Material, error) {
	switch mat.Type {
	case scene.DiffuseMaterial:
		return scene.NewLambertian(mat.Albedo), nil
	case scene.SpecularMaterial:
		return scene.NewMetal(mat.Albedo, mat.Fuzz), nil
	case scene.RefractiveMaterial:
		if !(mat.IOR > 0) {
			return nil, ErrInvalidIOR
		}
		return scene.NewDielectric(mat.IOR, mat.Fuzz, mat.Albedo), nil
	}
	return nil, ErrUnknownMaterialType
}
