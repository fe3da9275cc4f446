package integrator

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// ShadowAcneEpsilon is the minimum t accepted for any intersection.
// Scattered rays start exactly on a surface and would otherwise re-hit it.
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	Background GradientBackground
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background GradientBackground) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		Background: background,
	}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, core.NewInterval(ShadowAcneEpsilon, math.Inf(1)))
	if !isHit {
		return pt.Background.Color(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Absorbed: whatever the material left is the whole contribution
		return scatter.Attenuation
	}

	return scatter.Attenuation.MultiplyVec(pt.RayColor(scatter.Scattered, world, depth-1, sampler))
}
