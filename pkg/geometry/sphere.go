package geometry

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Sphere represents a sphere shape. A static sphere has a zero-direction center ray.
type Sphere struct {
	Center   core.Ray // Center at time 0 plus its displacement over the shutter interval
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	rvec := core.NewVec3(radius, radius, radius)
	return &Sphere{
		Center:   core.NewRay(center, core.Vec3{}),
		Radius:   radius,
		Material: mat,
		bbox:     core.NewAABBFromPoints(center.Subtract(rvec), center.Add(rvec)),
	}
}

// NewMovingSphere creates a sphere that moves linearly from center1 at time 0 to center2 at time 1
func NewMovingSphere(center1, center2 core.Vec3, radius float64, mat material.Material) *Sphere {
	rvec := core.NewVec3(radius, radius, radius)
	box1 := core.NewAABBFromPoints(center1.Subtract(rvec), center1.Add(rvec))
	box2 := core.NewAABBFromPoints(center2.Subtract(rvec), center2.Add(rvec))
	return &Sphere{
		Center:   core.NewRay(center1, center2.Subtract(center1)),
		Radius:   radius,
		Material: mat,
		bbox:     core.NewAABBFromBoxes(box1, box2),
	}
}

// IsMoving reports whether the sphere changes position over the shutter interval
func (s *Sphere) IsMoving() bool {
	return s.Center.Direction != (core.Vec3{})
}

// CenterAt returns the sphere center at the given shutter time
func (s *Sphere) CenterAt(time float64) core.Vec3 {
	return s.Center.At(time)
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	currentCenter := s.Center.At(ray.Time)
	oc := currentCenter.Subtract(ray.Origin)

	// Quadratic in half-b form: a*t^2 - 2h*t + c = 0
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Nearest root strictly inside the search window
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Dividing by the signed radius flips the normal inward for negative-radius spheres
	outwardNormal := hitRecord.Point.Subtract(currentCenter).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}
