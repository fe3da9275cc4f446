package scene

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// NewRandomSpheresScene creates the cover scene: a field of small random spheres around three
// large ones. Diffuse small spheres bounce upward during the shutter interval.
// The same seed always produces the same scene.
func NewRandomSpheresScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	s := NewScene("random")
	s.CameraConfig = renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}
	s.applyCameraOverrides(cameraOverrides)

	random := rand.New(rand.NewSource(seed))
	randomRange := func(min, max float64) float64 {
		return min + (max-min)*random.Float64()
	}
	randomColor := func(min, max float64) core.Vec3 {
		return core.NewVec3(randomRange(min, max), randomRange(min, max), randomRange(min, max))
	}

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := randomColor(0, 1).MultiplyVec(randomColor(0, 1))
				center2 := center.Add(core.NewVec3(0, randomRange(0, 0.5), 0))
				s.Add(geometry.NewMovingSphere(center, center2, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := randomColor(0.5, 1)
				fuzz := randomRange(0, 0.5)
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}
