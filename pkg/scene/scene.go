package scene

import (
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *renderer.Camera // Built by Preprocess
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
	Background     integrator.GradientBackground
	World          *geometry.HittableList // Objects in the scene
	BVH            *geometry.BVHNode      // Built by Preprocess
}

// NewScene creates an empty scene with default camera, sampling and background
func NewScene(name string) *Scene {
	return &Scene{
		Name:           name,
		CameraConfig:   renderer.DefaultCameraConfig(),
		SamplingConfig: renderer.DefaultSamplingConfig(),
		Background:     integrator.DefaultBackground(),
		World:          geometry.NewHittableList(),
	}
}

// Add appends shapes to the scene's world
func (s *Scene) Add(shapes ...geometry.Shape) {
	for _, shape := range shapes {
		s.World.Add(shape)
	}
}

// Preprocess builds the camera and the BVH. Shapes added afterwards are not seen until it runs again.
func (s *Scene) Preprocess() error {
	if s.World == nil || s.World.Len() == 0 {
		return fmt.Errorf("scene %q has no objects", s.Name)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	if s.CameraConfig.Width < 1 || s.CameraConfig.AspectRatio <= 0 {
		return fmt.Errorf("scene %q: invalid image size %d at aspect ratio %g",
			s.Name, s.CameraConfig.Width, s.CameraConfig.AspectRatio)
	}

	s.Camera = renderer.NewCamera(s.CameraConfig)
	s.BVH = geometry.NewBVH(s.World)
	return nil
}

// Root returns the shape rays are traced against: the BVH once built, else the plain list
func (s *Scene) Root() geometry.Shape {
	if s.BVH != nil {
		return s.BVH
	}
	return s.World
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	if s.World == nil {
		return 0
	}
	return s.World.Len()
}

// applyCameraOverrides merges the first override, if any, into the scene camera
func (s *Scene) applyCameraOverrides(overrides []renderer.CameraConfig) {
	if len(overrides) > 0 {
		s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, overrides[0])
	}
}
