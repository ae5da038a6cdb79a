// apt/airport_test.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package apt

import (
	"testing"

	"github.com/lyestarzalt/x-dispatch-sub002/math"
	"github.com/lyestarzalt/x-dispatch-sub002/util"
)

const testAirport = `I
1100 Generated by WorldEditor

1 432 1 0 KBFI Boeing Field King Co Intl
1302 city Seattle
1302 datum_lat 47.529999
100 29.87 1 3 0.25 1 2 1 14R 47.53 -122.31 29.5 60.0 3 2 1 2 32L 47.52 -122.30 0.0 0.0 3 1 0 1
100 29.87 1 0 0.25
102 H1 47.531 -122.305 88.5 25.0 25.0 1 0 0 0.25 0
110 1 0.25 88.0 main apron
111 47.530 -122.310
111 47.530 -122.309
111 47.531 -122.309 1
113 47.531 -122.310 1
120 apron edge
111 47.532 -122.310 4
111 47.532 -122.309 4
115 47.532 -122.308
130 airport boundary
111 47.520 -122.320
111 47.520 -122.300
111 47.540 -122.300
113 47.540 -122.320
14 47.5301 -122.3101 60 0 tower
15 47.5302 -122.3102 270 old ramp
18 47.5303 -122.3103 1 BFI beacon
19 47.5304 -122.3104 1 windsock
20 47.5305 -122.3105 88.5 0 3 {@Y}A{^r}
51 11890 UNICOM
53 12170 GND
54 11830 TWR
1300 47.5306 -122.3106 180.5 gate jets|turboprops A2
99
`

func parseTestAirport(t *testing.T) *Airport {
	t.Helper()
	var e util.ErrorLogger
	ap := Parse(testAirport, nil, &e)
	if e.HaveErrors() {
		// The 5-token 100 row is expected to be diagnosed and dropped.
		if e.ErrorCount() != 1 {
			t.Fatalf("unexpected errors: %s", e.String())
		}
	}
	return ap
}

func TestParseHeaderAndMetadata(t *testing.T) {
	ap := parseTestAirport(t)

	if ap.Type != LandAirport {
		t.Errorf("type %v, expected land airport", ap.Type)
	}
	if ap.ICAO != "KBFI" {
		t.Errorf("ICAO %q, expected KBFI", ap.ICAO)
	}
	if ap.Name != "Boeing Field King Co Intl" {
		t.Errorf("name %q", ap.Name)
	}
	if ap.Elevation != 432 {
		t.Errorf("elevation %v, expected 432", ap.Elevation)
	}
	if v := ap.Metadata.Value("city"); v != "Seattle" {
		t.Errorf("city metadata %q", v)
	}
	if keys := ap.Metadata.Keys(); len(keys) != 2 || keys[0] != "city" {
		t.Errorf("metadata keys %v, expected file order", keys)
	}
}

func TestParseRunways(t *testing.T) {
	ap := parseTestAirport(t)

	// The truncated 100 row must be dropped whole.
	if len(ap.Runways) != 1 {
		t.Fatalf("got %d runways, expected 1", len(ap.Runways))
	}
	r := ap.Runways[0]
	if r.Width != 29.87 || r.Surface != 1 {
		t.Errorf("width/surface %v/%d", r.Width, r.Surface)
	}
	if r.ShoulderSurface != 3 || r.ShoulderWidth != 0 {
		t.Errorf("shoulder %d/%v, expected surface-only token", r.ShoulderSurface, r.ShoulderWidth)
	}
	if !r.CenterlineLights || r.EdgeLights != 2 || !r.DistanceSigns {
		t.Errorf("lighting fields %v/%d/%v", r.CenterlineLights, r.EdgeLights, r.DistanceSigns)
	}
	if r.Ends[0].Name != "14R" || r.Ends[1].Name != "32L" {
		t.Errorf("end names %q/%q", r.Ends[0].Name, r.Ends[1].Name)
	}
	if r.Ends[0].Pos != (math.Point2LL{-122.31, 47.53}) {
		t.Errorf("end 0 position %v", r.Ends[0].Pos)
	}
	if r.Ends[0].DisplacedThreshold != 29.5 || r.Ends[0].Overrun != 60 {
		t.Errorf("end 0 threshold/overrun %v/%v", r.Ends[0].DisplacedThreshold, r.Ends[0].Overrun)
	}

	if len(ap.Helipads) != 1 || ap.Helipads[0].Name != "H1" {
		t.Fatalf("helipads %v", ap.Helipads)
	}
}

func TestParsePavementAndFeatures(t *testing.T) {
	ap := parseTestAirport(t)

	if len(ap.Taxiways) != 1 {
		t.Fatalf("got %d taxiways, expected 1", len(ap.Taxiways))
	}
	tw := ap.Taxiways[0]
	if tw.Name != "main apron" || tw.Surface != 1 || tw.Smoothness != 0.25 {
		t.Errorf("taxiway attributes %q/%d/%v", tw.Name, tw.Surface, tw.Smoothness)
	}
	if !tw.Outer.Closed() || len(tw.Outer.Vertices) != 5 {
		t.Errorf("outer ring %d vertices, closed %v", len(tw.Outer.Vertices), tw.Outer.Closed())
	}
	if len(tw.Holes) != 0 {
		t.Errorf("unexpected holes %v", tw.Holes)
	}

	// One painted run along the apron edge plus the 120 chain.
	var painted, chain int
	for _, lf := range ap.LinearFeatures {
		switch lf.Name {
		case "main apron":
			painted++
			if lf.PaintType != 1 {
				t.Errorf("apron edge paint %d, expected 1", lf.PaintType)
			}
		case "apron edge":
			chain++
			if lf.PaintType != 4 {
				t.Errorf("chain paint %d, expected 4", lf.PaintType)
			}
		}
	}
	if painted != 1 {
		t.Errorf("got %d painted apron edges, expected 1", painted)
	}
	if chain != 1 {
		t.Errorf("got %d chain features, expected 1", chain)
	}

	if len(ap.Boundaries) != 1 || !ap.Boundaries[0].Closed() {
		t.Errorf("boundaries %v", ap.Boundaries)
	}
}

func TestParsePointEntities(t *testing.T) {
	ap := parseTestAirport(t)

	if len(ap.Towers) != 1 || ap.Towers[0].Height != 60 || ap.Towers[0].Name != "tower" {
		t.Errorf("towers %v", ap.Towers)
	}
	if len(ap.Beacons) != 1 || ap.Beacons[0].Type != 1 {
		t.Errorf("beacons %v", ap.Beacons)
	}
	if len(ap.Windsocks) != 1 || !ap.Windsocks[0].Illuminated || ap.Windsocks[0].Name != "windsock" {
		t.Errorf("windsocks %v", ap.Windsocks)
	}

	if len(ap.Signs) != 1 {
		t.Fatalf("signs %v", ap.Signs)
	}
	s := ap.Signs[0]
	if s.Size != 3 || s.Text != "{@Y}A{^r}" || s.Heading != 88.5 {
		t.Errorf("sign %+v", s)
	}

	if len(ap.Frequencies) != 3 {
		t.Fatalf("frequencies %v", ap.Frequencies)
	}
	f := ap.Frequencies[0]
	if f.Type != FrequencyUnicom || f.Frequency != 118.90 || f.Name != "UNICOM" {
		t.Errorf("frequency %+v", f)
	}
	if ap.Frequencies[1].Type != FrequencyGround || ap.Frequencies[2].Type != FrequencyTower {
		t.Errorf("frequency types %v/%v", ap.Frequencies[1].Type, ap.Frequencies[2].Type)
	}

	if len(ap.StartupLocations) != 2 {
		t.Fatalf("startup locations %v", ap.StartupLocations)
	}
	legacy, gate := ap.StartupLocations[0], ap.StartupLocations[1]
	if legacy.Type != "" || legacy.Name != "old ramp" || legacy.Heading != 270 {
		t.Errorf("legacy startup %+v", legacy)
	}
	if gate.Type != "gate" || gate.Name != "A2" {
		t.Errorf("startup %+v", gate)
	}
	if len(gate.AirplaneTypes) != 2 || gate.AirplaneTypes[0] != "jets" {
		t.Errorf("airplane types %v", gate.AirplaneTypes)
	}
}

func TestParseStopsAtNextAirport(t *testing.T) {
	text := `1 100 0 0 KAAA First
1 200 0 0 KBBB Second
`
	var e util.ErrorLogger
	ap := Parse(text, nil, &e)
	if ap.ICAO != "KAAA" {
		t.Errorf("ICAO %q, expected the first airport only", ap.ICAO)
	}
}

func TestParseLegacyPavement(t *testing.T) {
	// v810 row 10 with "xxx" in the runway-id slot is a taxiway square;
	// length and width are in feet.
	text := `1 10 0 0 XTST Test field
10 47.5 -122.3 xxx 90.0 1000 0.0 0.0 500 161161 1 0 0 0.25
10 47.6 -122.4 14x 140.0 1000 0.0 0.0 150 111111 1 0 0 0.25
`
	var e util.ErrorLogger
	ap := Parse(text, nil, &e)
	if e.HaveErrors() {
		t.Fatalf("unexpected errors: %s", e.String())
	}

	// The second row 10 is a legacy runway, which 100 rows supersede.
	if len(ap.Pavements) != 1 {
		t.Fatalf("got %d legacy pavements, expected 1", len(ap.Pavements))
	}
	pav := ap.Pavements[0]
	if pav.Surface != 1 {
		t.Errorf("surface %d, expected 1", pav.Surface)
	}
	if !pav.Outer.Closed() || len(pav.Outer.Vertices) != 5 {
		t.Fatalf("outer ring %d vertices", len(pav.Outer.Vertices))
	}

	// 1000ft x 500ft: the long axis runs east-west.
	nmToMeters := func(nm float32) float32 { return nm / math.MetersToNauticalMiles }
	long := nmToMeters(math.NMDistance2LL(pav.Outer.Vertices[0], pav.Outer.Vertices[3]))
	if d := math.Abs(long - 1000*0.3048); d > 1 {
		t.Errorf("long side %v m, expected about %v", long, 1000*0.3048)
	}
}
