// apt/airport.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package apt

import (
	"strings"

	"github.com/lyestarzalt/x-dispatch-sub002/log"
	"github.com/lyestarzalt/x-dispatch-sub002/math"
	"github.com/lyestarzalt/x-dispatch-sub002/util"
)

const feetToMeters = 0.3048

// Parse builds an Airport from the apt.dat text of a single airport. Rows
// that are malformed (too few tokens, or non-numeric tokens where numbers
// are expected) are skipped with a diagnostic accumulated in e; parsing
// always continues with the next row, so the worst outcome of bad input
// is an incomplete but structurally valid record. Unknown row codes are
// ignored. lg may be nil.
func Parse(text string, lg *log.Logger, e *util.ErrorLogger) *Airport {
	return ParseWithResolution(text, DefaultCurveResolution, lg, e)
}

// ParseWithResolution is Parse with an explicit Bezier tessellation rate.
func ParseWithResolution(text string, resolution int, lg *log.Logger, e *util.ErrorLogger) *Airport {
	p := airportParser{resolution: resolution, lg: lg, e: e}
	return p.parse(TokenizeRows(text))
}

type airportParser struct {
	resolution int
	lg         *log.Logger
	e          *util.ErrorLogger
}

func (p *airportParser) parse(rows []Row) *Airport {
	ap := &Airport{Metadata: NewMetadata()}

	i := 0
loop:
	for i < len(rows) {
		r := rows[i]
		switch {
		case r.Code == rowLandAirport || r.Code == rowSeaplaneBase || r.Code == rowHeliport:
			if ap.ICAO != "" {
				// A second header row starts the next airport; this one
				// is done. Multi-airport files are split upstream.
				break loop
			}
			p.parseHeader(ap, r)
		case r.Code == rowLegacyPavement:
			p.parseLegacyPavement(ap, r)
		case r.Code == rowTowerViewpoint:
			p.parseTower(ap, r)
		case r.Code == rowLegacyStartup:
			p.parseLegacyStartup(ap, r)
		case r.Code == rowBeacon:
			p.parseBeacon(ap, r)
		case r.Code == rowWindsock:
			p.parseWindsock(ap, r)
		case r.Code == rowTaxiSign:
			p.parseSign(ap, r)
		case r.Code >= rowFrequencyFirst && r.Code <= rowFrequencyLast:
			p.parseFrequency(ap, r)
		case r.Code == rowRunway:
			p.parseRunway(ap, r)
		case r.Code == rowHelipad:
			p.parseHelipad(ap, r)
		case r.Code == rowPavementHeader:
			i += p.parsePavement(ap, r, rows[i+1:])
		case r.Code == rowLinearFeature:
			i += p.parseLinearFeature(ap, r, rows[i+1:])
		case r.Code == rowBoundary:
			i += p.parseBoundary(ap, r, rows[i+1:])
		case r.Code == rowStartupLocation:
			p.parseStartupLocation(ap, r)
		case r.Code == rowMetadata:
			p.parseMetadata(ap, r)
		case r.Code == rowEndOfFile:
			break loop
		default:
			// Unknown row codes are silently ignored for forward
			// compatibility with future format revisions.
		}
		i++
	}

	p.lg.Debugf("%s: parsed %d runways, %d taxiways, %d linear features, %d signs",
		ap.ICAO, len(ap.Runways), len(ap.Taxiways), len(ap.LinearFeatures), len(ap.Signs))

	return ap
}

func (p *airportParser) skip(r Row, why string) {
	p.e.ErrorString("line %d: row code %d skipped: %s", r.Line, r.Code, why)
}

// latlong parses the lat/lon token pair starting at index i.
func latlong(r Row, i int) (math.Point2LL, error) {
	lat, err := atof(r.Tokens[i])
	if err != nil {
		return math.Point2LL{}, err
	}
	lon, err := atof(r.Tokens[i+1])
	if err != nil {
		return math.Point2LL{}, err
	}
	return math.Point2LL{lon, lat}, nil
}

func (p *airportParser) parseHeader(ap *Airport, r Row) {
	if len(r.Tokens) < 5 {
		p.skip(r, "truncated airport header")
		return
	}
	elevation, err := atof(r.Tokens[1])
	if err != nil {
		p.skip(r, err.Error())
		return
	}

	switch r.Code {
	case rowSeaplaneBase:
		ap.Type = SeaplaneBase
	case rowHeliport:
		ap.Type = Heliport
	default:
		ap.Type = LandAirport
	}
	ap.Elevation = elevation
	ap.ICAO = r.Tokens[4]
	ap.Name = strings.Join(r.Tokens[5:], " ")
}

func (p *airportParser) parseFrequency(ap *Airport, r Row) {
	if len(r.Tokens) < 2 {
		p.skip(r, "truncated frequency row")
		return
	}
	freq, err := atof(r.Tokens[1])
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	ap.Frequencies = append(ap.Frequencies, Frequency{
		Type:      FrequencyType(r.Code - rowFrequencyFirst),
		Frequency: freq / 100, // stored in the file as e.g. 11890
		Name:      strings.Join(r.Tokens[2:], " "),
	})
}

func (p *airportParser) parseTower(ap *Airport, r Row) {
	if len(r.Tokens) < 4 {
		p.skip(r, "truncated tower row")
		return
	}
	pos, err := latlong(r, 1)
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	height, err := atof(r.Tokens[3])
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	t := Tower{Pos: pos, Height: height}
	if len(r.Tokens) > 5 {
		t.Name = strings.Join(r.Tokens[5:], " ")
	}
	ap.Towers = append(ap.Towers, t)
}

func (p *airportParser) parseBeacon(ap *Airport, r Row) {
	if len(r.Tokens) < 4 {
		p.skip(r, "truncated beacon row")
		return
	}
	pos, err := latlong(r, 1)
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	typ, err := atoi(r.Tokens[3])
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	b := Beacon{Pos: pos, Type: typ}
	if len(r.Tokens) > 4 {
		b.Name = strings.Join(r.Tokens[4:], " ")
	}
	ap.Beacons = append(ap.Beacons, b)
}

func (p *airportParser) parseWindsock(ap *Airport, r Row) {
	if len(r.Tokens) < 4 {
		p.skip(r, "truncated windsock row")
		return
	}
	pos, err := latlong(r, 1)
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	lit, err := atoi(r.Tokens[3])
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	w := Windsock{Pos: pos, Illuminated: lit != 0}
	if len(r.Tokens) > 4 {
		w.Name = strings.Join(r.Tokens[4:], " ")
	}
	ap.Windsocks = append(ap.Windsocks, w)
}

func (p *airportParser) parseSign(ap *Airport, r Row) {
	if len(r.Tokens) < 7 {
		p.skip(r, "truncated taxi sign row")
		return
	}
	pos, err := latlong(r, 1)
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	heading, err := atof(r.Tokens[3])
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	size, err := atoi(r.Tokens[5])
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	ap.Signs = append(ap.Signs, Sign{
		Pos:     pos,
		Heading: heading,
		Size:    size,
		Text:    strings.Join(r.Tokens[6:], " "),
	})
}

// parseRunway decodes a 100 land runway row: seven shared fields followed
// by two 9-token runway end blocks. A row with fewer than 26 tokens or
// with malformed numerics is dropped entirely; no partial runway is
// emitted.
func (p *airportParser) parseRunway(ap *Airport, r Row) {
	if len(r.Tokens) < 26 {
		p.skip(r, "truncated runway row")
		return
	}

	var rwy Runway
	ok := true
	f := func(i int) float32 {
		v, err := atof(r.Tokens[i])
		if err != nil {
			ok = false
		}
		return v
	}
	n := func(i int) int {
		v, err := atoi(r.Tokens[i])
		if err != nil {
			ok = false
		}
		return v
	}

	rwy.Width = f(1)
	rwy.Surface = n(2)
	shoulder := n(3)
	rwy.Smoothness = f(4)
	rwy.CenterlineLights = n(5) != 0
	rwy.EdgeLights = n(6)
	rwy.DistanceSigns = n(7) != 0

	// The shoulder token combines width and surface: values of 100 and up
	// encode width*100 + surface; smaller values are the surface type
	// alone with no explicit width.
	if shoulder >= 100 {
		rwy.ShoulderWidth = float32(shoulder / 100)
		rwy.ShoulderSurface = shoulder % 100
	} else {
		rwy.ShoulderSurface = shoulder
	}

	for end := 0; end < 2; end++ {
		base := 8 + 9*end
		rwy.Ends[end] = RunwayEnd{
			Name:                r.Tokens[base],
			Pos:                 math.Point2LL{f(base + 2), f(base + 1)},
			DisplacedThreshold:  f(base + 3),
			Overrun:             f(base + 4),
			Markings:            n(base + 5),
			ApproachLights:      n(base + 6),
			TouchdownZoneLights: n(base+7) != 0,
			REIL:                n(base + 8),
		}
	}

	if !ok {
		p.skip(r, "malformed numeric field in runway row")
		return
	}
	ap.Runways = append(ap.Runways, rwy)
}

func (p *airportParser) parseHelipad(ap *Airport, r Row) {
	if len(r.Tokens) < 8 {
		p.skip(r, "truncated helipad row")
		return
	}

	var h Helipad
	ok := true
	f := func(i int) float32 {
		v, err := atof(r.Tokens[i])
		if err != nil {
			ok = false
		}
		return v
	}
	n := func(i int) int {
		v, err := atoi(r.Tokens[i])
		if err != nil {
			ok = false
		}
		return v
	}

	h.Name = r.Tokens[1]
	h.Pos = math.Point2LL{f(3), f(2)}
	h.Heading = f(4)
	h.Length = f(5)
	h.Width = f(6)
	h.Surface = n(7)
	if len(r.Tokens) > 8 {
		h.Markings = n(8)
	}
	if len(r.Tokens) > 9 {
		h.Shoulder = n(9)
	}
	if len(r.Tokens) > 10 {
		h.Smoothness = f(10)
	}
	if len(r.Tokens) > 11 {
		h.EdgeLights = n(11) != 0
	}

	if !ok {
		p.skip(r, "malformed numeric field in helipad row")
		return
	}
	ap.Helipads = append(ap.Helipads, h)
}

// parseLegacyPavement handles v810-era row 10 taxiway squares ("xxx" in
// the runway-id slot): a rectangle described by its center, heading, and
// length/width in feet. Row 10 runways are superseded by 100 rows and are
// not handled.
func (p *airportParser) parseLegacyPavement(ap *Airport, r Row) {
	if len(r.Tokens) < 9 || r.Tokens[3] != "xxx" {
		return
	}

	pos, err := latlong(r, 1)
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	ok := true
	f := func(i int) float32 {
		v, err := atof(r.Tokens[i])
		if err != nil {
			ok = false
		}
		return v
	}

	heading := f(4)
	length := f(5) * feetToMeters
	width := f(8) * feetToMeters
	if !ok {
		p.skip(r, "malformed numeric field in legacy taxiway row")
		return
	}

	pav := Pavement{Name: "legacy taxiway"}
	if len(r.Tokens) > 10 {
		if surface, err := atoi(r.Tokens[10]); err == nil {
			pav.Surface = surface
		}
	}

	e0 := math.DestinationPoint(pos, length/2, heading)
	e1 := math.DestinationPoint(pos, length/2, heading+180)
	corners := rectangleCorners(e0, heading, e1, heading+180, width/2)
	pav.Outer = Path{
		Vertices:  corners,
		LineTypes: make([]LineType, len(corners)),
	}
	ap.Pavements = append(ap.Pavements, pav)
}

// parsePavement handles a 110 taxiway header and the path rows following
// it: the polygon is stored as a taxiway (outer ring plus any hole
// rings), and any non-zero paint/light runs along the rings become
// separate LinearFeatures for the painted/illuminated pavement edges. It
// returns the number of path rows consumed.
func (p *airportParser) parsePavement(ap *Airport, r Row, rest []Row) int {
	pav := Pavement{}
	ok := true
	if len(r.Tokens) > 1 {
		if v, err := atoi(r.Tokens[1]); err == nil {
			pav.Surface = v
		} else {
			ok = false
		}
	}
	if len(r.Tokens) > 2 {
		if v, err := atof(r.Tokens[2]); err == nil {
			pav.Smoothness = v
		} else {
			ok = false
		}
	}
	if len(r.Tokens) > 3 {
		if v, err := atof(r.Tokens[3]); err == nil {
			pav.Orientation = v
		} else {
			ok = false
		}
	}
	if len(r.Tokens) > 4 {
		pav.Name = strings.Join(r.Tokens[4:], " ")
	}
	if !ok {
		p.skip(r, "malformed numeric field in taxiway header")
	}

	paths, consumed := ParsePaths(rest, p.resolution, p.e)
	if len(paths) == 0 {
		return consumed
	}

	pav.Outer = paths[0]
	for _, path := range paths[1:] {
		if path.IsHole {
			pav.Holes = append(pav.Holes, path)
		} else {
			p.e.ErrorString("%s: extra non-hole ring in taxiway ignored", pav.Name)
		}
	}
	ap.Taxiways = append(ap.Taxiways, pav)

	for _, ring := range append([]Path{pav.Outer}, pav.Holes...) {
		edges := SplitLinearFeatures(pav.Name, ring.Vertices, ring.LineTypes)
		ap.LinearFeatures = append(ap.LinearFeatures, util.FilterSlice(edges,
			func(lf LinearFeature) bool { return lf.PaintType != 0 || lf.LightType != 0 })...)
	}

	return consumed
}

// parseLinearFeature handles a 120 free-standing chain header: each path
// that follows is split into constant-type runs. Attribute changes
// mid-chain thus yield several independently styled features.
func (p *airportParser) parseLinearFeature(ap *Airport, r Row, rest []Row) int {
	name := strings.Join(r.Tokens[1:], " ")

	paths, consumed := ParsePaths(rest, p.resolution, p.e)
	for _, path := range paths {
		ap.LinearFeatures = append(ap.LinearFeatures,
			SplitLinearFeatures(name, path.Vertices, path.LineTypes)...)
	}
	return consumed
}

func (p *airportParser) parseBoundary(ap *Airport, r Row, rest []Row) int {
	paths, consumed := ParsePaths(rest, p.resolution, p.e)
	ap.Boundaries = append(ap.Boundaries, paths...)
	return consumed
}

func (p *airportParser) parseLegacyStartup(ap *Airport, r Row) {
	if len(r.Tokens) < 4 {
		p.skip(r, "truncated startup location row")
		return
	}
	pos, err := latlong(r, 1)
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	heading, err := atof(r.Tokens[3])
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	s := StartupLocation{Pos: pos, Heading: heading}
	if len(r.Tokens) > 4 {
		s.Name = strings.Join(r.Tokens[4:], " ")
	}
	ap.StartupLocations = append(ap.StartupLocations, s)
}

func (p *airportParser) parseStartupLocation(ap *Airport, r Row) {
	if len(r.Tokens) < 6 {
		p.skip(r, "truncated startup location row")
		return
	}
	pos, err := latlong(r, 1)
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	heading, err := atof(r.Tokens[3])
	if err != nil {
		p.skip(r, err.Error())
		return
	}
	ap.StartupLocations = append(ap.StartupLocations, StartupLocation{
		Pos:           pos,
		Heading:       heading,
		Type:          r.Tokens[4],
		AirplaneTypes: strings.Split(r.Tokens[5], "|"),
		Name:          strings.Join(r.Tokens[6:], " "),
	})
}

func (p *airportParser) parseMetadata(ap *Airport, r Row) {
	if len(r.Tokens) < 2 {
		p.skip(r, "truncated metadata row")
		return
	}
	ap.Metadata.Set(r.Tokens[1], strings.Join(r.Tokens[2:], " "))
}
