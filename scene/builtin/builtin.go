// Package builtin provides hand-authored scenes that ship with the renderer.
package builtin

import (
	"errors"
	"fmt"
	"sort"

	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/types"
)

var ErrUnknownScene = errors.New("builtin: unknown scene")

// A Builder populates a scene and its camera for the given frame size.
// Builders that place objects randomly draw from rng.
type Builder func(frameW, frameH uint32, rng types.Rand) *scene.Scene

var registry = map[string]Builder{
	"simple": func(frameW, frameH uint32, _ types.Rand) *scene.Scene {
		return Simple(frameW, frameH)
	},
	"custom": func(frameW, frameH uint32, _ types.Rand) *scene.Scene {
		return Custom(frameW, frameH)
	},
	"rtiow": RTIOW,
}

// Lookup a scene builder by name.
func Lookup(name string) (Builder, error) {
	builder, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, name)
	}
	return builder, nil
}

// Get the sorted list of builtin scene names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add materials and spheres to a scene. Material errors caused by reusing
// a material across spheres are ignored.
func populate(sc *scene.Scene, spheres ...*scene.Primitive) *scene.Scene {
	for _, sphere := range spheres {
		sc.AddMaterial(sphere.Material)
		if err := sc.AddPrimitive(sphere); err != nil {
			panic(err)
		}
	}
	return sc
}

func aspect(frameW, frameH uint32) float32 {
	return float32(frameW) / float32(frameH)
}
