package core

import (
	"math"
	"testing"
)

func TestRandomUnitVector_IsUnitLength(t *testing.T) {
	sampler := NewSeededSampler(42)

	var mean Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1.0) > 1e-9 {
			t.Fatalf("Sample %d has length %f", i, v.Length())
		}
		mean = mean.Add(v)
	}

	// A uniform distribution on the sphere has zero mean
	mean = mean.Multiply(1.0 / n)
	if mean.Length() > 0.03 {
		t.Errorf("Expected mean near zero for uniform sphere samples, got %v", mean)
	}
}

func TestSampleOnUnitSphere_Poles(t *testing.T) {
	north := SampleOnUnitSphere(NewVec2(0, 0.3))
	if north.Subtract(NewVec3(0, 0, 1)).Length() > 1e-12 {
		t.Errorf("Expected +Z pole, got %v", north)
	}

	south := SampleOnUnitSphere(NewVec2(1, 0.7))
	if south.Subtract(NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Expected -Z pole, got %v", south)
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(3)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		if p.Z != 0 {
			t.Fatalf("Disk sample should lie in the XY plane, got %v", p)
		}
		if p.Length() > 1.0+1e-12 {
			t.Fatalf("Disk sample outside unit disk: %v", p)
		}
	}

	if center := SamplePointInUnitDisk(NewVec2(0.5, 0.5)); center != NewVec3(0, 0, 0) {
		t.Errorf("Expected origin for center sample, got %v", center)
	}
}

func TestRandomSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)

	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() || a.Get2D() != b.Get2D() || a.Get3D() != b.Get3D() {
			t.Fatal("Samplers with equal seeds should produce equal sequences")
		}
	}
}

func TestRandomRange(t *testing.T) {
	sampler := NewSeededSampler(5)
	for i := 0; i < 1000; i++ {
		x := RandomRange(sampler, -2, 3)
		if x < -2 || x >= 3 {
			t.Fatalf("RandomRange produced %f outside [-2, 3)", x)
		}
	}
}
