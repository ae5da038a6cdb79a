// apt/path.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package apt

import (
	"slices"

	"github.com/lyestarzalt/x-dispatch-sub002/math"
	"github.com/lyestarzalt/x-dispatch-sub002/util"
)

// DefaultCurveResolution is the number of segments each Bezier curve is
// tessellated into unless the caller overrides it.
const DefaultCurveResolution = 60

// pathNode is one decoded 111-116 row: the vertex coordinate, the node's
// outgoing Bezier control point (curve rows only), and the paint/light
// type carried on the row.
type pathNode struct {
	kind    nodeRowKind
	pos     math.Point2LL
	control math.Point2LL
	lt      LineType
}

// parsePathNode decodes a path vertex row. Rows are "code lat lon [clat
// clon] [paint [light]]"; the control point pair is present only on curve
// rows. A row with malformed numeric tokens or too few of them yields an
// error and is skipped by the caller.
func parsePathNode(r Row, kind nodeRowKind) (pathNode, error) {
	n := pathNode{kind: kind}

	if len(r.Tokens) < util.Select(kind.isCurve(), 5, 3) {
		return n, &truncatedRowError{r}
	}

	lat, err := atof(r.Tokens[1])
	if err != nil {
		return n, err
	}
	lon, err := atof(r.Tokens[2])
	if err != nil {
		return n, err
	}
	n.pos = math.Point2LL{lon, lat}

	next := 3
	if kind.isCurve() {
		clat, err := atof(r.Tokens[3])
		if err != nil {
			return n, err
		}
		clon, err := atof(r.Tokens[4])
		if err != nil {
			return n, err
		}
		n.control = math.Point2LL{clon, clat}
		next = 5
	}

	if len(r.Tokens) > next {
		if n.lt.Paint, err = atoi(r.Tokens[next]); err != nil {
			return n, err
		}
	}
	if len(r.Tokens) > next+1 {
		if n.lt.Light, err = atoi(r.Tokens[next+1]); err != nil {
			return n, err
		}
	}

	return n, nil
}

///////////////////////////////////////////////////////////////////////////
// pathScanner

// pathScanner holds the state threaded through the reconstruction of one
// feature's paths: the ring being accumulated, the ring's first node
// (buffered so it can serve as the ring's closing vertex), and the
// previous node along with whether it left an outgoing Bezier control
// point waiting for its partner.
type pathScanner struct {
	resolution int
	e          *util.ErrorLogger

	vertices []math.Point2LL
	types    []LineType

	first     pathNode
	haveFirst bool
	prev      pathNode
	inBezier  bool

	paths []Path
}

// ParsePaths consumes the path vertex rows (111-116) that belong to one
// geometric feature starting at rows[0], returning the paths produced and
// the number of rows consumed. A pavement's outer ring may be followed
// immediately by further rings describing holes in it; they belong to the
// same feature and are all returned here. The first row with a code
// outside 111-116 terminates the feature and is not counted as consumed,
// so the caller re-reads it as the start of the next entity.
func ParsePaths(rows []Row, resolution int, e *util.ErrorLogger) ([]Path, int) {
	if resolution <= 0 {
		resolution = DefaultCurveResolution
	}
	s := pathScanner{resolution: resolution, e: e}

	consumed := 0
	for _, r := range rows {
		kind, ok := nodeRow(r.Code)
		if !ok {
			break
		}
		consumed++

		n, err := parsePathNode(r, kind)
		if err != nil {
			e.ErrorString("line %d: %v", r.Line, err)
			continue
		}
		s.step(n)
	}

	if len(s.vertices) > 0 {
		// The feature ended without a 113-116 row terminating its last
		// ring; drop the dangling vertices rather than inventing a
		// closure.
		e.ErrorString("unterminated ring with %d vertices discarded", len(s.vertices))
	}

	return s.paths, consumed
}

func (s *pathScanner) step(n pathNode) {
	if !s.haveFirst {
		s.first = n
		s.haveFirst = true
	}

	switch {
	case n.kind.closesRing():
		s.transition(n)
		// The ring's first node is also its closing vertex: run it
		// through the node transition again so that curved closures are
		// sampled the same way as any other segment. Rings that follow
		// are holes belonging to the same feature.
		s.transition(s.first)
		s.finalize(true)
	case n.kind.endsFeature():
		s.transition(n)
		s.finalize(false)
	default:
		s.transition(n)
	}
}

// transition appends the geometry for the segment arriving at node n from
// the previous node, applying the pairwise straight/curved rules. Every
// vertex appended here carries n's paint/light type; the types slice
// stays parallel to the vertices by construction.
func (s *pathScanner) transition(n pathNode) {
	switch {
	case len(s.vertices) == 0:
		s.append(n.pos, n.lt)
	case n.kind == endSegment:
		// A plain end-of-line row takes its vertex as-is; a pending
		// control point from the previous node is not completed into a
		// curve.
		s.append(n.pos, n.lt)
	case !s.inBezier && !n.kind.isCurve():
		s.append(n.pos, n.lt)
	case !s.inBezier && n.kind.isCurve():
		s.curve(n, func() []math.Point2LL {
			return math.SampleQuadraticBezier(s.prev.pos,
				math.MirrorControlPoint(n.pos, n.control), n.pos, s.resolution)
		})
	case s.inBezier && n.kind.isCurve():
		s.curve(n, func() []math.Point2LL {
			return math.SampleCubicBezier(s.prev.pos, s.prev.control,
				math.MirrorControlPoint(n.pos, n.control), n.pos, s.resolution)
		})
	default: // s.inBezier && !n.kind.isCurve()
		s.curve(n, func() []math.Point2LL {
			return math.SampleQuadraticBezier(s.prev.pos, s.prev.control, n.pos, s.resolution)
		})
	}

	s.prev = n
	s.inBezier = n.kind.isCurve()
}

func (s *pathScanner) append(p math.Point2LL, lt LineType) {
	s.vertices = append(s.vertices, p)
	s.types = append(s.types, lt)
}

// curve splices a sampled curve ending at node n into the ring. When the
// two curve endpoints coincide exactly (the "split Bezier" authoring
// convention), no curve is drawn and the coordinate is appended directly
// with its own type so that no zero-length curve artifact appears.
func (s *pathScanner) curve(n pathNode, sample func() []math.Point2LL) {
	if s.prev.pos == n.pos {
		s.append(n.pos, n.lt)
		return
	}

	pts := sample()
	// Don't duplicate the shared start vertex.
	if pts[0] == s.vertices[len(s.vertices)-1] {
		pts = pts[1:]
	}
	for _, p := range pts {
		s.append(p, n.lt)
	}
}

// finalize closes out the ring being accumulated, classifying closed
// rings as holes by their winding, and resets the per-ring state so that
// scanning can continue with any hole rings that follow.
func (s *pathScanner) finalize(closed bool) {
	if len(s.vertices) >= 2 {
		p := Path{Vertices: s.vertices, LineTypes: s.types}
		if closed {
			p.IsHole = math.SignedAreaLL(p.Vertices) < 0
		}
		for _, lt := range p.LineTypes {
			if p.PaintType == 0 && lt.Paint != 0 {
				p.PaintType = lt.Paint
			}
			if p.LightType == 0 && lt.Light != 0 {
				p.LightType = lt.Light
			}
		}
		s.paths = append(s.paths, p)
	}

	s.vertices = nil
	s.types = nil
	s.haveFirst = false
	s.inBezier = false
	s.prev = pathNode{}
}

///////////////////////////////////////////////////////////////////////////
// Linear feature splitting

// SplitLinearFeatures cuts a path into runs over which the paint/light
// type is constant: whenever the type at a vertex differs from the
// running segment's type, the current run is closed inclusive of that
// vertex and a new one opened there, so adjacent features share their
// boundary coordinate. Runs with fewer than two vertices are dropped.
func SplitLinearFeatures(name string, vertices []math.Point2LL, types []LineType) []LinearFeature {
	if len(vertices) < 2 {
		return nil
	}

	var feats []LinearFeature
	start, cur := 0, types[0]
	emit := func(end int) { // end is inclusive
		if end > start {
			feats = append(feats, LinearFeature{
				Name:      name,
				Vertices:  slices.Clone(vertices[start : end+1]),
				PaintType: cur.Paint,
				LightType: cur.Light,
			})
		}
	}

	for i := 1; i < len(vertices); i++ {
		if types[i] != cur {
			emit(i)
			start, cur = i, types[i]
		}
	}
	emit(len(vertices) - 1)

	return feats
}
