// math/bezier.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// Bezier curves
//
// apt.dat path rows describe curved taxiway and boundary edges with
// quadratic and cubic Beziers; these are the evaluation routines the path
// reconstruction code builds on. All of them are pure functions of their
// arguments.

// QuadraticBezier evaluates the quadratic Bezier curve with control points
// p0, p1, p2 at parameter t in [0,1] using the Bernstein basis, one
// evaluation per axis.
func QuadraticBezier(t float32, p0, p1, p2 Point2LL) Point2LL {
	u := 1 - t
	p := Scale2f(p0, u*u)
	p = Add2f(p, Scale2f(p1, 2*u*t))
	p = Add2f(p, Scale2f(p2, t*t))
	return Point2LL(p)
}

// CubicBezier evaluates the cubic Bezier curve with control points p0
// through p3 at parameter t in [0,1].
func CubicBezier(t float32, p0, p1, p2, p3 Point2LL) Point2LL {
	u := 1 - t
	p := Scale2f(p0, u*u*u)
	p = Add2f(p, Scale2f(p1, 3*u*u*t))
	p = Add2f(p, Scale2f(p2, 3*u*t*t))
	p = Add2f(p, Scale2f(p3, t*t*t))
	return Point2LL(p)
}

// SampleQuadraticBezier returns resolution+1 points along the quadratic
// Bezier curve with the given control points, with t stepped uniformly
// from 0 to 1 inclusive; the first and last returned points are exactly p0
// and p2.
func SampleQuadraticBezier(p0, p1, p2 Point2LL, resolution int) []Point2LL {
	pts := make([]Point2LL, 0, resolution+1)
	for i := 0; i <= resolution; i++ {
		t := float32(i) / float32(resolution)
		pts = append(pts, QuadraticBezier(t, p0, p1, p2))
	}
	return pts
}

// SampleCubicBezier returns resolution+1 points along the cubic Bezier
// curve with the given control points, with t stepped uniformly from 0 to
// 1 inclusive.
func SampleCubicBezier(p0, p1, p2, p3 Point2LL, resolution int) []Point2LL {
	pts := make([]Point2LL, 0, resolution+1)
	for i := 0; i <= resolution; i++ {
		t := float32(i) / float32(resolution)
		pts = append(pts, CubicBezier(t, p0, p1, p2, p3))
	}
	return pts
}

// MirrorControlPoint reflects the control point c through the vertex v,
// returning 2v-c. apt.dat curve rows store only the outgoing control point
// of each node; the incoming control point of the following cubic segment
// is its mirror image. The operation is its own inverse.
func MirrorControlPoint(v, c Point2LL) Point2LL {
	return Point2LL(Sub2f(Scale2f(v, 2), c))
}
