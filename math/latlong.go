// math/latlong.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"
)

///////////////////////////////////////////////////////////////////////////
// Point2LL

// EarthRadiusMeters is the mean Earth radius used for all of the spherical
// geodesy below.
const EarthRadiusMeters = 6371000

const MetersToNauticalMiles = 0.000539957

// Point2LL represents a 2D point on the Earth in latitude-longitude.
// Important: 0 (x) is longitude, 1 (y) is latitude
type Point2LL [2]float32

func (p Point2LL) Longitude() float32 {
	return p[0]
}

func (p Point2LL) Latitude() float32 {
	return p[1]
}

// DDString returns the position in decimal degrees, e.g.:
// (39.860901, -75.274864)
func (p Point2LL) DDString() string {
	return fmt.Sprintf("(%f, %f)", p[1], p[0]) // latitude, longitude
}

func (p Point2LL) IsZero() bool {
	return p[0] == 0 && p[1] == 0
}

func Add2LL(a Point2LL, b Point2LL) Point2LL {
	return Point2LL(Add2f(a, b))
}

func Sub2LL(a Point2LL, b Point2LL) Point2LL {
	return Point2LL(Sub2f(a, b))
}

// NMDistance2LL returns the great-circle distance in nautical miles
// between two provided lat-long coordinates.
func NMDistance2LL(a Point2LL, b Point2LL) float32 {
	// https://www.movable-type.co.uk/scripts/latlong.html
	rad := func(d float64) float64 { return d / 180 * gomath.Pi }
	lat1, lon1 := rad(float64(a[1])), rad(float64(a[0]))
	lat2, lon2 := rad(float64(b[1])), rad(float64(b[0]))
	dlat, dlon := lat2-lat1, lon2-lon1

	x := Sqr(gomath.Sin(dlat/2)) + gomath.Cos(lat1)*gomath.Cos(lat2)*Sqr(gomath.Sin(dlon/2))
	c := 2 * gomath.Atan2(gomath.Sqrt(x), gomath.Sqrt(1-x))
	dm := EarthRadiusMeters * c // in metres

	return float32(dm * MetersToNauticalMiles)
}

// DestinationPoint returns the point at the given distance in meters along
// the great circle with the given initial bearing (in degrees) from p.
// It's important to do the intermediate math in float64, given differences
// of similar-ish values.
func DestinationPoint(p Point2LL, distanceMeters float32, bearingDegrees float32) Point2LL {
	// Standard direct geodesic formula on a sphere:
	// https://www.movable-type.co.uk/scripts/latlong.html
	d := float64(distanceMeters) / EarthRadiusMeters
	th := float64(Radians(bearingDegrees))
	lat1 := float64(Radians(p[1]))
	lon1 := float64(Radians(p[0]))

	lat2 := gomath.Asin(gomath.Sin(lat1)*gomath.Cos(d) + gomath.Cos(lat1)*gomath.Sin(d)*gomath.Cos(th))
	lon2 := lon1 + gomath.Atan2(gomath.Sin(th)*gomath.Sin(d)*gomath.Cos(lat1),
		gomath.Cos(d)-gomath.Sin(lat1)*gomath.Sin(lat2))

	return Point2LL{float32(lon2 * 180 / gomath.Pi), float32(lat2 * 180 / gomath.Pi)}
}

// Bearing2LL returns the initial great-circle bearing in degrees, in
// [0,360), to follow from a to reach b.
func Bearing2LL(a Point2LL, b Point2LL) float32 {
	rad := func(d float64) float64 { return d / 180 * gomath.Pi }
	lat1, lon1 := rad(float64(a[1])), rad(float64(a[0]))
	lat2, lon2 := rad(float64(b[1])), rad(float64(b[0]))
	dlon := lon2 - lon1

	y := gomath.Sin(dlon) * gomath.Cos(lat2)
	x := gomath.Cos(lat1)*gomath.Sin(lat2) - gomath.Sin(lat1)*gomath.Cos(lat2)*gomath.Cos(dlon)

	return NormalizeHeading(float32(gomath.Atan2(y, x) * 180 / gomath.Pi))
}

// SignedAreaLL returns the signed area of the polygon with the given
// vertices via the shoelace formula, treating longitude as x and latitude
// as y. Counterclockwise windings have positive area; clockwise windings
// are negative. The last vertex need not repeat the first one.
func SignedAreaLL(pts []Point2LL) float32 {
	var area float64
	for i := range pts {
		j := (i + 1) % len(pts)
		area += float64(pts[i][0])*float64(pts[j][1]) - float64(pts[j][0])*float64(pts[i][1])
	}
	return float32(area / 2)
}
