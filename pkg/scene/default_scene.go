package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// NewDefaultScene creates the two-sphere scene: a diffuse sphere resting on a large ground sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := NewScene("default")
	s.applyCameraOverrides(cameraOverrides)

	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, gray),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, gray),
	)

	return s
}

// NewMaterialsScene creates a scene with one sphere of each material: diffuse center,
// hollow glass on the left and fuzzy gold on the right
func NewMaterialsScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := NewScene("materials")
	s.CameraConfig = renderer.CameraConfig{
		Center:      core.NewVec3(-2, 2, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        20.0,
		Aperture:    0.0,
	}
	s.applyCameraOverrides(cameraOverrides)

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.5)
	materialBubble := material.NewDielectric(1.0 / 1.5)
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.Add(
		geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, materialGround),
		geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, materialCenter),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, materialLeft),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.4, materialBubble),
		geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, materialRight),
	)

	return s
}
