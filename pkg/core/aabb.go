package core

import (
	"fmt"
	"math"
)

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

// EmptyAABB contains no points; unioning it with any box yields that box
var EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}

// NewAABB creates a new AABB from per-axis intervals
func NewAABB(x, y, z Interval) AABB {
	return AABB{X: x, Y: y, Z: z}
}

// NewAABBFromPoints creates the box spanned by two opposite corners, in any order
func NewAABBFromPoints(a, b Vec3) AABB {
	return AABB{
		X: Interval{Min: math.Min(a.X, b.X), Max: math.Max(a.X, b.X)},
		Y: Interval{Min: math.Min(a.Y, b.Y), Max: math.Max(a.Y, b.Y)},
		Z: Interval{Min: math.Min(a.Z, b.Z), Max: math.Max(a.Z, b.Z)},
	}
}

// NewAABBFromBoxes creates the smallest box enclosing both a and b
func NewAABBFromBoxes(a, b AABB) AABB {
	return AABB{
		X: EnclosingInterval(a.X, b.X),
		Y: EnclosingInterval(a.Y, b.Y),
		Z: EnclosingInterval(a.Z, b.Z),
	}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return NewAABBFromBoxes(aabb, other)
}

// AxisInterval returns the interval for axis n (0=X, 1=Y, 2=Z). Any other n panics.
func (aabb AABB) AxisInterval(n int) Interval {
	switch n {
	case 0:
		return aabb.X
	case 1:
		return aabb.Y
	case 2:
		return aabb.Z
	}
	panic(fmt.Sprintf("core: AABB axis index %d out of range [0,2]", n))
}

// Hit tests if a ray intersects with this AABB within rayT using the slab method.
// Zero direction components are left to IEEE-754: the slab bounds become ±Inf, which
// either leave the window untouched (origin inside the slab) or empty it (origin outside).
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		slab := aabb.AxisInterval(axis)
		origin := ray.Origin.Axis(axis)
		invDirection := 1.0 / ray.Direction.Axis(axis)

		t0 := (slab.Min - origin) * invDirection
		t1 := (slab.Max - origin) * invDirection
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		// Comparisons rather than math.Max/Min so a NaN bound (0 * Inf) is ignored
		if t0 > rayT.Min {
			rayT.Min = t0
		}
		if t1 < rayT.Max {
			rayT.Max = t1
		}

		if rayT.Min >= rayT.Max {
			return false
		}
	}

	return true
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties go to the lower axis index.
func (aabb AABB) LongestAxis() int {
	x, y, z := aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()
	if x >= y && x >= z {
		return 0
	}
	if y >= z {
		return 1
	}
	return 2
}

// Min returns the minimum corner
func (aabb AABB) Min() Vec3 {
	return NewVec3(aabb.X.Min, aabb.Y.Min, aabb.Z.Min)
}

// Max returns the maximum corner
func (aabb AABB) Max() Vec3 {
	return NewVec3(aabb.X.Max, aabb.Y.Max, aabb.Z.Max)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min().Add(aabb.Max()).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return NewVec3(aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size())
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// Contains reports whether the point lies inside the closed box
func (aabb AABB) Contains(p Vec3) bool {
	return aabb.X.Contains(p.X) && aabb.Y.Contains(p.Y) && aabb.Z.Contains(p.Z)
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.X.Min <= aabb.X.Max &&
		aabb.Y.Min <= aabb.Y.Max &&
		aabb.Z.Min <= aabb.Z.Max
}
