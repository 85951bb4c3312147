package geom

import (
	"math/rand"
	"testing"

	"github.com/2x3systems/lunar-transit/transit"
)

func pt(x, y int) transit.Point { return transit.Point{X: x, Y: y} }

func TestOrientation(t *testing.T) {
	cases := []struct {
		a, b, c transit.Point
		want    int
	}{
		{pt(0, 0), pt(10, 0), pt(5, 5), 1},
		{pt(0, 0), pt(10, 0), pt(5, -5), -1},
		{pt(0, 0), pt(10, 0), pt(20, 0), 0},
		{pt(0, 0), pt(0, 0), pt(3, 4), 0},
	}
	for _, tc := range cases {
		if got := Orientation(tc.a, tc.b, tc.c); got != tc.want {
			t.Errorf("Orientation(%v, %v, %v) = %d, want %d", tc.a, tc.b, tc.c, got, tc.want)
		}
	}
}

func TestSegmentsIntersect(t *testing.T) {
	cases := []struct {
		name       string
		a, b, c, d transit.Point
		want       bool
	}{
		{"cross", pt(0, 0), pt(10, 10), pt(0, 10), pt(10, 0), true},
		{"parallel", pt(0, 0), pt(10, 0), pt(0, 1), pt(10, 1), false},
		{"disjoint", pt(0, 0), pt(1, 1), pt(5, 5), pt(6, 0), false},
		{"touch at endpoint", pt(0, 0), pt(10, 0), pt(10, 0), pt(10, 10), true},
		{"T junction", pt(0, 0), pt(10, 0), pt(5, 0), pt(5, 7), true},
		{"collinear overlap", pt(0, 0), pt(10, 0), pt(5, 0), pt(15, 0), true},
		{"collinear apart", pt(0, 0), pt(4, 0), pt(5, 0), pt(15, 0), false},
		{"near miss", pt(0, 0), pt(10, 0), pt(5, 1), pt(5, 7), false},
	}
	for _, tc := range cases {
		if got := SegmentsIntersect(tc.a, tc.b, tc.c, tc.d); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
		if got := SegmentsIntersect(tc.c, tc.d, tc.a, tc.b); got != tc.want {
			t.Errorf("%s (swapped): got %v, want %v", tc.name, got, tc.want)
		}
	}
}

// parametricIntersect solves a + s(b-a) = c + u(d-c) with exact rationals for non-parallel segments.
func parametricIntersect(a, b, c, d transit.Point) bool {
	rx, ry := int64(b.X-a.X), int64(b.Y-a.Y)
	sx, sy := int64(d.X-c.X), int64(d.Y-c.Y)
	denom := rx*sy - ry*sx
	qx, qy := int64(c.X-a.X), int64(c.Y-a.Y)
	sNum := qx*sy - qy*sx
	uNum := qx*ry - qy*rx
	if denom < 0 {
		denom, sNum, uNum = -denom, -sNum, -uNum
	}
	return 0 <= sNum && sNum <= denom && 0 <= uNum && uNum <= denom
}

func TestSegmentsIntersectAgreesWithParametric(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	checked := 0
	for checked < 20000 {
		a := pt(rng.Intn(41)-20, rng.Intn(41)-20)
		b := pt(rng.Intn(41)-20, rng.Intn(41)-20)
		c := pt(rng.Intn(41)-20, rng.Intn(41)-20)
		d := pt(rng.Intn(41)-20, rng.Intn(41)-20)

		// non-degenerate: no zero-length segments, not parallel
		if a == b || c == d {
			continue
		}
		if int64(b.X-a.X)*int64(d.Y-c.Y)-int64(b.Y-a.Y)*int64(d.X-c.X) == 0 {
			continue
		}
		checked++

		want := parametricIntersect(a, b, c, d)
		if got := SegmentsIntersect(a, b, c, d); got != want {
			t.Fatalf("SegmentsIntersect(%v, %v, %v, %v) = %v, parametric says %v", a, b, c, d, got, want)
		}
	}
}

func TestOnSegment(t *testing.T) {
	if !OnSegment(pt(5, 0), pt(0, 0), pt(10, 0)) {
		t.Fatal("midpoint should be on segment")
	}
	if OnSegment(pt(11, 0), pt(0, 0), pt(10, 0)) {
		t.Fatal("collinear point past the end is not on segment")
	}
	if OnSegment(pt(5, 1), pt(0, 0), pt(10, 0)) {
		t.Fatal("off-line point is not on segment")
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(pt(0, 0), pt(3, 4)); d != 5 {
		t.Fatalf("Distance = %v, want 5", d)
	}
	if d := DistanceSq(pt(1, 1), pt(4, 5)); d != 25 {
		t.Fatalf("DistanceSq = %v, want 25", d)
	}
}
