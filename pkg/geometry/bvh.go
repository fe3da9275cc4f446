package geometry

import (
	"fmt"
	"sort"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Children are either further nodes or primitives. A node built over a single
// shape holds it in both Left and Right.
type BVHNode struct {
	Left  Shape
	Right Shape
	bbox  core.AABB
}

// NewBVH constructs a BVH over the shapes of a list. The list itself is not reordered.
// The list must not be empty.
func NewBVH(list *HittableList) *BVHNode {
	// Construction sorts in place, so work on a copy of the list's order
	shapes := make([]Shape, len(list.Objects))
	copy(shapes, list.Objects)
	return NewBVHNode(shapes, 0, len(shapes))
}

// NewBVHNode builds a node over shapes[start:end], sorting that range in place.
// It panics when the range is empty.
func NewBVHNode(shapes []Shape, start, end int) *BVHNode {
	if start >= end {
		panic(fmt.Sprintf("bvh: empty shape range [%d, %d)", start, end))
	}

	node := &BVHNode{bbox: core.EmptyAABB}
	for i := start; i < end; i++ {
		node.bbox = node.bbox.Union(shapes[i].BoundingBox())
	}

	count := end - start
	switch count {
	case 1:
		node.Left = shapes[start]
		node.Right = shapes[start]
	case 2:
		node.Left = shapes[start]
		node.Right = shapes[start+1]
	default:
		sortShapesByAxis(shapes[start:end], node.bbox.LongestAxis())
		mid := start + count/2
		node.Left = NewBVHNode(shapes, start, mid)
		node.Right = NewBVHNode(shapes, mid, end)
	}

	return node
}

// sortShapesByAxis sorts shapes by their bounding box minimum along the specified axis
func sortShapesByAxis(shapes []Shape, axis int) {
	sort.Slice(shapes, func(i, j int) bool {
		return shapes[i].BoundingBox().AxisInterval(axis).Min < shapes[j].BoundingBox().AxisInterval(axis).Min
	})
}

// Hit tests if a ray intersects any shape under this node
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if !n.bbox.Hit(ray, rayT) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, rayT)
	if n.Left == n.Right {
		return leftHit, hitLeft
	}

	rightT := rayT
	if hitLeft {
		rightT.Max = leftHit.T
	}
	if rightHit, hitRight := n.Right.Hit(ray, rightT); hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}

// BoundingBox returns the union of the boxes of all shapes under this node
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int // Interior BVHNodes, including single-shape nodes
	MaxDepth   int // Deepest primitive, with the root at depth 0
	Primitives int // Distinct primitives referenced by the tree
	AvgDepth   float64
}

// String formats the stats for logging
func (s BVHStats) String() string {
	return fmt.Sprintf("%d nodes, %d primitives, max depth %d, avg depth %.2f",
		s.TotalNodes, s.Primitives, s.MaxDepth, s.AvgDepth)
}

// Stats returns statistics about the tree rooted at this node
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	totalDepth := 0
	n.collectStats(0, &stats, &totalDepth)

	if stats.Primitives > 0 {
		stats.AvgDepth = float64(totalDepth) / float64(stats.Primitives)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats, totalDepth *int) {
	stats.TotalNodes++

	children := []Shape{n.Left}
	if n.Right != n.Left {
		children = append(children, n.Right)
	}

	for _, child := range children {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats, totalDepth)
			continue
		}
		stats.Primitives++
		*totalDepth += depth + 1
		if depth+1 > stats.MaxDepth {
			stats.MaxDepth = depth + 1
		}
	}
}
