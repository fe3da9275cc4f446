package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit reports the nearest intersection with t inside rayT
	Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
	// BoundingBox returns a box containing the shape over its whole motion range
	BoundingBox() core.AABB
}
