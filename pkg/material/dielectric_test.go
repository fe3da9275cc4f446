package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestDielectricBasicBehavior(t *testing.T) {
	glass := NewDielectric(1.5)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.NewRayAtTime(core.NewVec3(-1, 1, 0), rayDirection, 0.25)

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	white := core.NewVec3(1.0, 1.0, 1.0)
	hasReflection := false
	hasRefraction := false

	for seed := int64(0); seed < 1000; seed++ {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))
		result, scattered := glass.Scatter(ray, hit, sampler)

		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Attenuation != white {
			t.Fatalf("Expected attenuation %v, got %v", white, result.Attenuation)
		}
		if result.Scattered.Time != ray.Time {
			t.Fatalf("Scattered ray should keep time %f, got %f", ray.Time, result.Scattered.Time)
		}

		// Reflection leaves above the surface, refraction goes below it
		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	if !hasReflection {
		t.Error("Expected some reflections at 45 degrees")
	}
	if !hasRefraction {
		t.Error("Expected some refractions at 45 degrees")
	}
}

func TestDielectric_NormalIncidence(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	tests := []struct {
		name     string
		sample   float64
		expected core.Vec3
	}{
		// reflectance at normal incidence is 0.04
		{"high sample refracts straight through", 0.999, core.NewVec3(0, 0, -1)},
		{"low sample reflects back", 0.0, core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := glass.Scatter(ray, hit, fixedSampler{value1D: tt.sample})
			if result.Scattered.Direction != tt.expected {
				t.Errorf("Expected direction %v, got %v", tt.expected, result.Scattered.Direction)
			}
		})
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Leaving glass at 45 degrees: 1.5 * sin(45) > 1
	direction := core.NewVec3(1, 0, -1).Normalize()
	ray := core.NewRay(core.NewVec3(-1, 0, 1), direction)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: false,
	}

	// Even a sample that would always refract must reflect
	result, scattered := glass.Scatter(ray, hit, fixedSampler{value1D: 0.999})
	if !scattered {
		t.Fatal("Dielectric should always scatter")
	}

	expected := core.Reflect(direction, hit.Normal)
	if result.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected total internal reflection %v, got %v", expected, result.Scattered.Direction)
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence into glass", 1.0, 1.0 / 1.5, 0.04},
		{"normal incidence out of glass", 1.0, 1.5, 0.04},
		{"grazing incidence", 0.0, 1.0 / 1.5, 1.0},
		{"matched index", 0.5, 1.0, 1.0 / 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.ratio)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Reflectance(%f, %f) = %f, expected %f", tt.cosine, tt.ratio, got, tt.expected)
			}
		})
	}
}

func TestReflectance_Monotonic(t *testing.T) {
	prev := Reflectance(1.0, 1.0/1.5)
	for cosine := 0.95; cosine >= 0; cosine -= 0.05 {
		r := Reflectance(cosine, 1.0/1.5)
		if r < prev {
			t.Errorf("Reflectance should grow toward grazing angles: %f < %f at cosine %f", r, prev, cosine)
		}
		prev = r
	}
}
