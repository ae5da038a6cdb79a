// math/bezier_test.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestSampleBezierCounts(t *testing.T) {
	p0 := Point2LL{0, 0}
	p1 := Point2LL{1, 2}
	p2 := Point2LL{3, 1}
	p3 := Point2LL{4, 0}

	for _, res := range []int{1, 2, 10, 60, 117} {
		q := SampleQuadraticBezier(p0, p1, p2, res)
		if len(q) != res+1 {
			t.Errorf("resolution %d: got %d quadratic samples, expected %d", res, len(q), res+1)
		}
		if q[0] != p0 || q[len(q)-1] != p2 {
			t.Errorf("resolution %d: quadratic endpoints %v %v don't match control points", res, q[0], q[len(q)-1])
		}

		c := SampleCubicBezier(p0, p1, p2, p3, res)
		if len(c) != res+1 {
			t.Errorf("resolution %d: got %d cubic samples, expected %d", res, len(c), res+1)
		}
		if c[0] != p0 || c[len(c)-1] != p3 {
			t.Errorf("resolution %d: cubic endpoints %v %v don't match control points", res, c[0], c[len(c)-1])
		}
	}
}

func TestQuadraticBezierMidpoint(t *testing.T) {
	// At t=0.5 the quadratic curve passes through the average of the
	// midpoints of the two legs.
	p0 := Point2LL{0, 0}
	p1 := Point2LL{2, 2}
	p2 := Point2LL{4, 0}
	p := QuadraticBezier(0.5, p0, p1, p2)
	if Abs(p[0]-2) > 1e-6 || Abs(p[1]-1) > 1e-6 {
		t.Errorf("quadratic midpoint: got %v, expected (2, 1)", p)
	}
}

func TestMirrorControlPoint(t *testing.T) {
	v := Point2LL{-73.77, 40.63}
	c := Point2LL{-73.80, 40.60}

	m := MirrorControlPoint(v, c)
	if mm := MirrorControlPoint(v, m); mm != c {
		t.Errorf("mirror is not self-inverse: %v -> %v -> %v", c, m, mm)
	}
	if mid := Mid2f(m, c); Point2LL(mid) != v {
		t.Errorf("mirrored control point %v is not symmetric about %v", m, v)
	}
}

func TestSignedAreaLL(t *testing.T) {
	ccw := []Point2LL{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if a := SignedAreaLL(ccw); Abs(a-1) > 1e-6 {
		t.Errorf("counterclockwise square: got area %g, expected 1", a)
	}

	cw := []Point2LL{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	if a := SignedAreaLL(cw); Abs(a+1) > 1e-6 {
		t.Errorf("clockwise square: got area %g, expected -1", a)
	}
}

func TestDestinationPoint(t *testing.T) {
	// Project a point and check that the great-circle distance back agrees
	// with the requested offset.
	p := Point2LL{-122.3, 47.4}
	for _, d := range []float32{100, 1000, 25000} {
		for _, hdg := range []float32{0, 90, 135, 270} {
			q := DestinationPoint(p, d, hdg)
			nm := NMDistance2LL(p, q)
			expected := d * MetersToNauticalMiles
			if Abs(nm-expected) > 0.01*expected {
				t.Errorf("dist %g hdg %g: round trip distance %g nm, expected %g nm", d, hdg, nm, expected)
			}
		}
	}

	// Due north from the equator keeps longitude fixed.
	q := DestinationPoint(Point2LL{10, 0}, 10000, 0)
	if Abs(q[0]-10) > 1e-4 {
		t.Errorf("northbound projection changed longitude: %v", q)
	}
	if q[1] <= 0 {
		t.Errorf("northbound projection didn't increase latitude: %v", q)
	}
}

func TestBearing2LL(t *testing.T) {
	a := Point2LL{0, 0}
	if b := Bearing2LL(a, Point2LL{0, 1}); Abs(b) > 0.01 {
		t.Errorf("northbound bearing: got %g, expected 0", b)
	}
	if b := Bearing2LL(a, Point2LL{1, 0}); Abs(b-90) > 0.01 {
		t.Errorf("eastbound bearing: got %g, expected 90", b)
	}
	if b := Bearing2LL(a, Point2LL{0, -1}); Abs(b-180) > 0.01 {
		t.Errorf("southbound bearing: got %g, expected 180", b)
	}
}
