package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// HittableList is an ordered collection of shapes searched linearly.
// It is the scene container before acceleration.
type HittableList struct {
	Objects []Shape
	bbox    core.AABB
}

// NewHittableList creates a list holding the given shapes
func NewHittableList(shapes ...Shape) *HittableList {
	list := &HittableList{bbox: core.EmptyAABB}
	for _, shape := range shapes {
		list.Add(shape)
	}
	return list
}

// Add appends a shape and grows the cached bounding box
func (l *HittableList) Add(shape Shape) {
	if len(l.Objects) == 0 {
		l.bbox = shape.BoundingBox()
	} else {
		l.bbox = l.bbox.Union(shape.BoundingBox())
	}
	l.Objects = append(l.Objects, shape)
}

// Clear removes all shapes
func (l *HittableList) Clear() {
	l.Objects = nil
	l.bbox = core.EmptyAABB
}

// Len returns the number of shapes in the list
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the nearest hit over all shapes
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := rayT.Max

	for _, shape := range l.Objects {
		if hit, ok := shape.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); ok {
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of every shape added so far
func (l *HittableList) BoundingBox() core.AABB {
	if len(l.Objects) == 0 {
		return core.EmptyAABB
	}
	return l.bbox
}
