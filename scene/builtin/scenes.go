package builtin

import (
	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/types"
)

// A single diffuse sphere resting on a large ground sphere, viewed through
// a pinhole camera at the origin. The image plane is fixed to a 2:1
// window regardless of the frame size.
func Simple(frameW, frameH uint32) *scene.Scene {
	sc := populate(scene.NewScene(),
		scene.NewSphere(types.XYZ(0, 0, -1), 0.5, scene.NewLambertian(types.XYZ(0.8, 0.3, 0.3))),
		scene.NewSphere(types.XYZ(0, -100.5, -1), 100, scene.NewLambertian(types.XYZ(0.8, 0.8, 0.0))),
	)
	sc.SetCamera(scene.NewPinholeCamera(
		types.XYZ(-2, -1, -1),
		types.XYZ(4, 0, 0),
		types.XYZ(0, 2, 0),
		types.XYZ(0, 0, 0),
	))
	return sc
}

// A handful of glass, metal and diffuse spheres with a shallow depth of field.
func Custom(frameW, frameH uint32) *scene.Scene {
	ground := scene.NewLambertian(types.XYZ(0.35, 0.35, 0.45))
	pink := scene.NewLambertian(types.XYZ(0.8, 0.4, 0.4))
	gold := scene.NewMetal(types.XYZ(1.0, 0.8, 0.4), 0)
	goldRough := scene.NewMetal(types.XYZ(1.0, 0.8, 0.4), 0.25)
	silver := scene.NewMetal(types.XYZ(0.8, 0.8, 0.8), 0)
	silverRough := scene.NewMetal(types.XYZ(0.8, 0.8, 0.8), 0.25)
	glass := scene.NewDielectric(1.5, 0, types.XYZ(0.8, 0.8, 0.8))
	glassRough := scene.NewDielectric(1.5, 0.15, types.XYZ(0.8, 0.8, 0.8))

	sc := populate(scene.NewScene(),
		scene.NewSphere(types.XYZ(0, -1000, 0), 1000, ground),

		// large spheres
		scene.NewSphere(types.XYZ(4, 0.5, 1), 0.5, pink),
		scene.NewSphere(types.XYZ(3, 0.5, 0.25), 0.5, silver),
		scene.NewSphere(types.XYZ(2, 0.5, -0.5), 0.5, glass),
		scene.NewSphere(types.XYZ(4, 0.35, -1.15), 0.35, gold),

		// small spheres
		scene.NewSphere(types.XYZ(5, 0.2, -0.8), 0.2, glassRough),
		scene.NewSphere(types.XYZ(4.2, 0.2, -0.6), 0.2, glassRough),
		scene.NewSphere(types.XYZ(5.4, 0.2, 0.55), 0.2, goldRough),
		scene.NewSphere(types.XYZ(5, 0.2, 0.25), 0.2, silverRough),
	)

	sc.SetCamera(scene.NewCamera(
		types.XYZ(10, 1, 0),
		types.XYZ(0, 0, 0),
		types.XYZ(0, 1, 0),
		17.5,
		aspect(frameW, frameH),
		0.1,
		types.XYZ(5.5, 1, 0).Len(),
	))
	return sc
}

// The cover scene of "Ray Tracing in One Weekend": a grid of small random
// spheres around three large ones.
func RTIOW(frameW, frameH uint32, rng types.Rand) *scene.Scene {
	spheres := make([]*scene.Primitive, 0, 500)
	spheres = append(spheres, scene.NewSphere(types.XYZ(0, -1000, 0), 1000, scene.NewLambertian(types.XYZ(0.5, 0.5, 0.5))))

	glass := scene.NewDielectric(1.5, 0, types.XYZ(0.8, 0.8, 0.8))
	for x := -11; x < 11; x++ {
		for z := -11; z < 11; z++ {
			center := types.XYZ(
				float32(x)+0.9*rng.Float32(),
				0.2,
				float32(z)+0.9*rng.Float32(),
			)

			var mat *scene.Material
			switch materialProb := rng.Float32(); {
			case materialProb < 0.8:
				mat = scene.NewLambertian(types.XYZ(
					rng.Float32()*rng.Float32(),
					rng.Float32()*rng.Float32(),
					rng.Float32()*rng.Float32(),
				))
			case materialProb < 0.95:
				// Fuzz is drawn before the albedo
				fuzz := 0.5 * rng.Float32()
				mat = scene.NewMetal(
					types.XYZ(
						0.5*(1+rng.Float32()),
						0.5*(1+rng.Float32()),
						0.5*(1+rng.Float32()),
					),
					fuzz,
				)
			default:
				mat = glass
			}
			spheres = append(spheres, scene.NewSphere(center, 0.2, mat))
		}
	}

	spheres = append(spheres,
		scene.NewSphere(types.XYZ(0, 1, 0), 1, glass),
		scene.NewSphere(types.XYZ(-4, 1, 0), 1, scene.NewLambertian(types.XYZ(0.4, 0.2, 0.1))),
		scene.NewSphere(types.XYZ(4, 1, 0), 1, scene.NewMetal(types.XYZ(0.6, 0.6, 0.6), 0)),
	)

	sc := populate(scene.NewScene(), spheres...)
	sc.SetCamera(scene.NewCamera(
		types.XYZ(12, 2, 2),
		types.XYZ(0, 0, 0),
		types.XYZ(0, 1, 0),
		20,
		aspect(frameW, frameH),
		0.1,
		10,
	))
	return sc
}
