package integrator

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance arriving along ray from world, following at most depth bounces
	RayColor(ray core.Ray, world geometry.Shape, depth int, sampler core.Sampler) core.Vec3
}

// GradientBackground is a vertical blend used for rays that escape the scene
type GradientBackground struct {
	Bottom core.Vec3 // Color for straight-down rays
	Top    core.Vec3 // Color for straight-up rays
}

// DefaultBackground returns the white to sky-blue gradient
func DefaultBackground() GradientBackground {
	return GradientBackground{
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
		Top:    core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color returns the background seen along the ray direction
func (g GradientBackground) Color(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return g.Bottom.Multiply(1.0 - a).Add(g.Top.Multiply(a))
}
