// Package geom holds the exact-integer segment predicates used to keep the network planar.
package geom

import (
	"math"

	"github.com/2x3systems/lunar-transit/transit"
)

// Orientation returns the sign of the cross product (b-a) x (c-a):
// +1 for counter-clockwise, 0 for collinear, -1 for clockwise.
func Orientation(a, b, c transit.Point) int {
	cross := int64(b.X-a.X)*int64(c.Y-a.Y) - int64(b.Y-a.Y)*int64(c.X-a.X)
	switch {
	case cross > 0:
		return 1
	case cross < 0:
		return -1
	}
	return 0
}

// OnSegment reports if p lies on the closed segment ab.
func OnSegment(p, a, b transit.Point) bool {
	if Orientation(a, b, p) != 0 {
		return false
	}
	return minInt(a.X, b.X) <= p.X && p.X <= maxInt(a.X, b.X) &&
		minInt(a.Y, b.Y) <= p.Y && p.Y <= maxInt(a.Y, b.Y)
}

// SegmentsIntersect reports if segment ab and segment cd share at least one point.
//
// Proper crossings are detected by opposing orientations; touching and collinear overlap
// are detected by an endpoint of one segment lying on the other.
func SegmentsIntersect(a, b, c, d transit.Point) bool {
	o1 := Orientation(a, b, c)
	o2 := Orientation(a, b, d)
	o3 := Orientation(c, d, a)
	o4 := Orientation(c, d, b)

	if o1 != 0 && o2 != 0 && o3 != 0 && o4 != 0 {
		if o1 != o2 && o3 != o4 {
			return true
		}
	}

	switch {
	case o1 == 0 && OnSegment(c, a, b):
		return true
	case o2 == 0 && OnSegment(d, a, b):
		return true
	case o3 == 0 && OnSegment(a, c, d):
		return true
	case o4 == 0 && OnSegment(b, c, d):
		return true
	}
	return false
}

// Distance is the euclidean distance between p and q.
func Distance(p, q transit.Point) float64 {
	return math.Hypot(float64(q.X-p.X), float64(q.Y-p.Y))
}

// DistanceSq is the squared euclidean distance between p and q.
func DistanceSq(p, q transit.Point) int64 {
	dx := int64(q.X - p.X)
	dy := int64(q.Y - p.Y)
	return dx*dx + dy*dy
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
