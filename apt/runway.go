// apt/runway.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package apt

import (
	"strconv"
	"strings"

	"github.com/lyestarzalt/x-dispatch-sub002/math"
)

// runwayHeading derives a runway end's true-ish heading from its numeric
// name: strip any L/C/R suffix and multiply by ten, so "27R" gives 270.
// The returned bool is false for non-numeric names (water runways etc.).
func runwayHeading(name string) (float32, bool) {
	name = strings.TrimRight(name, "LCR")
	if v, err := strconv.Atoi(name); err == nil && v >= 1 && v <= 36 {
		return float32(v * 10), true
	}
	return 0, false
}

func (r *Runway) endHeading(end int) float32 {
	if h, ok := runwayHeading(r.Ends[end].Name); ok {
		return h
	}
	// Fall back to the geometry between the two ends when the name
	// doesn't encode a heading.
	return math.Bearing2LL(r.Ends[end].Pos, r.Ends[1-end].Pos)
}

// Rectangle returns the runway's pavement rectangle as a closed ring of
// five points (the first corner is repeated at the end), with corners
// projected at +/-90 degrees from each end's heading at half the runway
// width.
func (r *Runway) Rectangle() []math.Point2LL {
	return r.rectangle(r.Width / 2)
}

// ShoulderRectangle returns the rectangle covering the runway plus its
// shoulders, or nil if the runway has no shoulder surface.
func (r *Runway) ShoulderRectangle() []math.Point2LL {
	if r.ShoulderSurface == 0 {
		return nil
	}
	return r.rectangle(r.Width/2 + r.EffectiveShoulderWidth())
}

// EffectiveShoulderWidth returns the explicitly encoded shoulder width if
// there is one and otherwise the default for the runway's width: 3m below
// 30m, 4m up to 45m, 5m beyond that.
func (r *Runway) EffectiveShoulderWidth() float32 {
	if r.ShoulderWidth > 0 {
		return r.ShoulderWidth
	}
	switch {
	case r.Width < 30:
		return 3
	case r.Width <= 45:
		return 4
	default:
		return 5
	}
}

func (r *Runway) rectangle(halfWidth float32) []math.Point2LL {
	return rectangleCorners(r.Ends[0].Pos, r.endHeading(0), r.Ends[1].Pos, r.endHeading(1), halfWidth)
}

// Rectangle returns the helipad's pavement rectangle as a closed ring,
// constructed the same way as runway rectangles from the pad's center,
// heading, and dimensions.
func (h *Helipad) Rectangle() []math.Point2LL {
	e0 := math.DestinationPoint(h.Pos, h.Length/2, h.Heading)
	e1 := math.DestinationPoint(h.Pos, h.Length/2, h.Heading+180)
	return rectangleCorners(e0, h.Heading, e1, h.Heading+180, h.Width/2)
}

// rectangleCorners builds a closed rectangle ring from the two endpoint
// positions and their (roughly reciprocal) headings. The corners are
// emitted in a consistent winding order around the perimeter, with the
// first corner repeated at the end.
func rectangleCorners(p0 math.Point2LL, h0 float32, p1 math.Point2LL, h1 float32, halfWidth float32) []math.Point2LL {
	c0 := math.DestinationPoint(p0, halfWidth, h0-90)
	c1 := math.DestinationPoint(p0, halfWidth, h0+90)
	c2 := math.DestinationPoint(p1, halfWidth, h1-90)
	c3 := math.DestinationPoint(p1, halfWidth, h1+90)
	return []math.Point2LL{c0, c1, c2, c3, c0}
}
