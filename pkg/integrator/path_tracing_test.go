package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// MockMaterial implements material.Material for testing
type MockMaterial struct {
	scatterFn func(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool)
}

func (m MockMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return m.scatterFn(rayIn, hit, sampler)
}

// MockShape implements geometry.Shape for testing
type MockShape struct {
	hitFn func(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
}

func (m MockShape) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	return m.hitFn(ray, rayT)
}

func (m MockShape) BoundingBox() core.AABB {
	return core.NewAABB(core.UniverseInterval, core.UniverseInterval, core.UniverseInterval)
}

// fixedSampler returns the same sample on every draw
type fixedSampler struct {
	value2D core.Vec2
}

func (f fixedSampler) Get1D() float64   { return f.value2D.X }
func (f fixedSampler) Get2D() core.Vec2 { return f.value2D }
func (f fixedSampler) Get3D() core.Vec3 { return core.NewVec3(f.value2D.X, f.value2D.Y, 0) }

var approx = cmpopts.EquateApprox(0, 1e-12)

// createTestWorld builds the two-sphere scene: a small sphere in front of the camera on a large ground sphere
func createTestWorld() *geometry.BVHNode {
	center := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	ground := geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	return geometry.NewBVH(geometry.NewHittableList(center, ground))
}

func TestPathTracingDepthTermination(t *testing.T) {
	world := createTestWorld()
	integrator := NewPathTracingIntegrator(DefaultBackground())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), // hits the sphere
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),  // escapes to the sky
	}

	for _, depth := range []int{0, -1} {
		for _, ray := range rays {
			if color := integrator.RayColor(ray, world, depth, sampler); color != (core.Vec3{}) {
				t.Errorf("Expected black for depth %d, got %v", depth, color)
			}
		}
	}
}

func TestPathTracingBackgroundGradient(t *testing.T) {
	miss := MockShape{hitFn: func(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
		return nil, false
	}}
	integrator := NewPathTracingIntegrator(DefaultBackground())
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up is sky blue", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down is white", core.NewVec3(0, -1, 0), core.NewVec3(1.0, 1.0, 1.0)},
		{"horizon is halfway", core.NewVec3(0, 0, -3), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			color := integrator.RayColor(ray, miss, 5, sampler)
			if diff := cmp.Diff(tt.expected, color, approx); diff != "" {
				t.Errorf("Background mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPathTracingUsesShadowAcneEpsilon(t *testing.T) {
	var seen core.Interval
	world := MockShape{hitFn: func(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
		seen = rayT
		return nil, false
	}}

	integrator := NewPathTracingIntegrator(DefaultBackground())
	integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), world, 1, core.NewSeededSampler(1))

	if seen.Min != ShadowAcneEpsilon || !math.IsInf(seen.Max, 1) {
		t.Errorf("Expected search interval [%f, +Inf), got %v", ShadowAcneEpsilon, seen)
	}
}

func TestPathTracingAbsorption(t *testing.T) {
	remaining := core.NewVec3(0.2, 0.1, 0.0)
	absorber := MockMaterial{scatterFn: func(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
		return material.ScatterResult{Attenuation: remaining}, false
	}}
	world := MockShape{hitFn: func(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
		return &material.HitRecord{T: 1, Point: ray.At(1), Normal: core.NewVec3(0, 0, 1), Material: absorber}, true
	}}

	integrator := NewPathTracingIntegrator(DefaultBackground())
	color := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, 10, core.NewSeededSampler(1))
	if color != remaining {
		t.Errorf("Expected absorbed path to return %v, got %v", remaining, color)
	}
}

func TestPathTracingAttenuationCompounds(t *testing.T) {
	// Every hit scatters straight up with half attenuation; the sky is hit once depth runs out
	bounces := 0
	halver := MockMaterial{scatterFn: func(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
		return material.ScatterResult{
			Scattered:   core.NewRay(hit.Point, core.NewVec3(0, 1, 0)),
			Attenuation: core.NewVec3(0.5, 0.5, 0.5),
		}, true
	}}
	world := MockShape{hitFn: func(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
		bounces++
		if bounces > 2 {
			return nil, false
		}
		return &material.HitRecord{T: 1, Point: ray.At(1), Normal: core.NewVec3(0, 1, 0), Material: halver}, true
	}}

	integrator := NewPathTracingIntegrator(DefaultBackground())
	color := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), world, 10, core.NewSeededSampler(1))

	expected := core.NewVec3(0.5, 0.7, 1.0).Multiply(0.25)
	if diff := cmp.Diff(expected, color, approx); diff != "" {
		t.Errorf("Compounded attenuation mismatch (-want +got):\n%s", diff)
	}

	// With depth 2 the path runs out before reaching the sky
	bounces = 0
	if color := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), world, 2, core.NewSeededSampler(1)); color != (core.Vec3{}) {
		t.Errorf("Expected black once depth is exhausted, got %v", color)
	}
}

func TestPathTracingTwoSphereScene(t *testing.T) {
	world := createTestWorld()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, ok := world.Hit(ray, core.NewInterval(ShadowAcneEpsilon, math.Inf(1)))
	if !ok {
		t.Fatal("Expected the center ray to hit the scene")
	}
	if !hit.FrontFace {
		t.Error("Expected a front face hit on the foreground sphere")
	}
	if math.Abs(hit.T-0.5) > 1e-12 {
		t.Errorf("Expected hit on the foreground sphere at t=0.5, got %f", hit.T)
	}

	integrator := NewPathTracingIntegrator(DefaultBackground())
	background := integrator.Background.Color(ray)

	// One bounce: the scattered ray has no budget left
	color := integrator.RayColor(ray, world, 1, core.NewSeededSampler(42))
	if color == background {
		t.Error("Expected the foreground sphere, not the background")
	}
	if color != (core.Vec3{}) {
		t.Errorf("Expected black with max depth 1, got %v", color)
	}

	// A sample opposite the normal falls back to the normal: the bounce leaves along +Z
	// and sees the horizon color, weighted by the albedo
	color = integrator.RayColor(ray, world, 2, fixedSampler{value2D: core.NewVec2(1, 0)})
	expected := core.NewVec3(0.375, 0.425, 0.5)
	if diff := cmp.Diff(expected, color, approx); diff != "" {
		t.Errorf("Two-sphere color mismatch (-want +got):\n%s", diff)
	}
}

func TestPathTracingConverges(t *testing.T) {
	world := createTestWorld()
	integrator := NewPathTracingIntegrator(DefaultBackground())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(7)))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	var sum core.Vec3
	const samples = 2000
	for i := 0; i < samples; i++ {
		color := integrator.RayColor(ray, world, 50, sampler)
		if color.X < 0 || color.Y < 0 || color.Z < 0 || color.X > 1 || color.Y > 1 || color.Z > 1 {
			t.Fatalf("Color %v outside [0,1]", color)
		}
		sum = sum.Add(color)
	}

	mean := sum.Multiply(1.0 / samples)
	if mean.Luminance() <= 0 {
		t.Errorf("Expected some light to reach the camera, got %v", mean)
	}
	// Gray diffuse surfaces under a bluish sky stay bluish
	if mean.Z < mean.X {
		t.Errorf("Expected blue channel >= red channel, got %v", mean)
	}
}
