// apt/apt.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package apt reconstructs structured geometry from the row-based X-Plane
// apt.dat airport format: taxiway pavements with holes, curved boundaries,
// styled linear features, runway and shoulder rectangles, and the
// mini-language used for taxi signage. Parsing is a single synchronous
// pass over in-memory text; all I/O and caching live elsewhere.
package apt

import (
	"github.com/iancoleman/orderedmap"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lyestarzalt/x-dispatch-sub002/math"
)

type AirportType int

const (
	LandAirport AirportType = iota
	SeaplaneBase
	Heliport
)

func (t AirportType) String() string {
	return [...]string{"Land airport", "Seaplane base", "Heliport"}[t]
}

// LineType is the paint/lighting styling of one path segment. The zero
// value means unstyled pavement edge.
type LineType struct {
	Paint int
	Light int
}

func (lt LineType) IsZero() bool { return lt.Paint == 0 && lt.Light == 0 }

// Path is one reconstructed contour: an ordered vertex sequence with a
// parallel LineTypes slice of equal length, where LineTypes[i] styles the
// segment ending at Vertices[i]. Closed rings repeat their first vertex at
// the end; paths from 115/116 "end line" rows are left open.
type Path struct {
	Vertices  []math.Point2LL
	LineTypes []LineType

	// IsHole is derived from the winding of the ring (the format carries
	// no explicit hole flag): clockwise rings are holes in the enclosing
	// pavement.
	IsHole bool

	// First non-zero paint/light types seen along the path, kept for
	// legacy consumers that style a whole path uniformly.
	PaintType int
	LightType int
}

// Closed reports whether the path's first and last vertices coincide.
func (p *Path) Closed() bool {
	return len(p.Vertices) >= 2 && p.Vertices[0] == p.Vertices[len(p.Vertices)-1]
}

// LinearFeature is a sub-run of a path over which the paint/light type is
// constant; one path may yield many of these.
type LinearFeature struct {
	Name      string
	Vertices  []math.Point2LL
	PaintType int
	LightType int
}

// Pavement is a taxiway polygon: one outer ring plus zero or more holes,
// with the surface attributes from its 110 header row. Legacy row 10
// taxiway squares are represented the same way, with a rectangular outer
// ring and no holes.
type Pavement struct {
	Name        string
	Surface     int
	Smoothness  float32
	Orientation float32 // texture heading, degrees
	Outer       Path
	Holes       []Path
}

type RunwayEnd struct {
	Name                string
	Pos                 math.Point2LL
	DisplacedThreshold  float32 // meters
	Overrun             float32 // blastpad/stopway, meters
	Markings            int
	ApproachLights      int
	TouchdownZoneLights bool
	REIL                int
}

type Runway struct {
	Width            float32 // meters
	Surface          int
	ShoulderSurface  int
	ShoulderWidth    float32 // meters; 0 if not encoded in the shoulder token
	Smoothness       float32
	CenterlineLights bool
	EdgeLights       int
	DistanceSigns    bool
	Ends             [2]RunwayEnd
}

type Helipad struct {
	Name       string
	Pos        math.Point2LL
	Heading    float32
	Length     float32 // meters
	Width      float32 // meters
	Surface    int
	Markings   int
	Shoulder   int
	Smoothness float32
	EdgeLights bool
}

type StartupLocation struct {
	Pos           math.Point2LL
	Heading       float32
	Type          string // "gate", "tie_down", ... ; empty for legacy rows
	AirplaneTypes []string
	Name          string
}

type Windsock struct {
	Pos         math.Point2LL
	Illuminated bool
	Name        string
}

// Sign is a taxi sign as it appears in the file; its Text is in the sign
// mini-language and is decoded separately via DecodeSignText.
type Sign struct {
	Pos     math.Point2LL
	Heading float32
	Size    int
	Text    string
}

type Beacon struct {
	Pos  math.Point2LL
	Type int
	Name string
}

type Tower struct {
	Pos    math.Point2LL
	Height float32 // AGL, meters
	Name   string
}

type FrequencyType int

// The eight 5x frequency row codes, in row-code order.
const (
	FrequencyAWOS FrequencyType = iota
	FrequencyUnicom
	FrequencyClearance
	FrequencyGround
	FrequencyTower
	FrequencyApproach
	FrequencyDeparture
	FrequencyCenter
)

func (t FrequencyType) String() string {
	return [...]string{"AWOS", "UNICOM", "Clearance", "Ground", "Tower", "Approach", "Departure", "Center"}[t]
}

type Frequency struct {
	Type      FrequencyType
	Frequency float32 // MHz
	Name      string
}

///////////////////////////////////////////////////////////////////////////
// Metadata

// Metadata holds the airport's 1302 key/value rows (transition altitude,
// IATA/FAA codes, city, country, drive-side, ...), preserving the order in
// which they appear in the file.
type Metadata struct {
	*orderedmap.OrderedMap
}

func NewMetadata() Metadata {
	return Metadata{orderedmap.New()}
}

// Value returns the value for the given metadata key, or "" if it isn't
// present.
func (m Metadata) Value(key string) string {
	if m.OrderedMap == nil {
		return ""
	}
	if v, ok := m.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// The ordered map stores its entries in unexported fields, so spell out
// its msgpack encoding by hand; keys and values are always strings here.
func (m Metadata) EncodeMsgpack(enc *msgpack.Encoder) error {
	if m.OrderedMap == nil {
		return enc.EncodeMapLen(0)
	}
	keys := m.Keys()
	if err := enc.EncodeMapLen(len(keys)); err != nil {
		return err
	}
	for _, k := range keys {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		v, _ := m.Get(k)
		s, _ := v.(string)
		if err := enc.EncodeString(s); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metadata) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	m.OrderedMap = orderedmap.New()
	for i := 0; i < n; i++ {
		k, err := dec.DecodeString()
		if err != nil {
			return err
		}
		v, err := dec.DecodeString()
		if err != nil {
			return err
		}
		m.Set(k, v)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////
// Airport

// Airport is the aggregate record produced by one Parse call. It is owned
// exclusively by the caller and never mutated after parsing; separate
// Parse calls share no state, so airports may be parsed concurrently.
type Airport struct {
	Type      AirportType
	ICAO      string
	Name      string
	Elevation float32 // feet MSL

	Runways          []Runway
	Taxiways         []Pavement // 110 pavement polygons
	Pavements        []Pavement // legacy row 10 taxiway squares
	Boundaries       []Path
	LinearFeatures   []LinearFeature
	StartupLocations []StartupLocation
	Windsocks        []Windsock
	Signs            []Sign
	Helipads         []Helipad
	Frequencies      []Frequency
	Beacons          []Beacon
	Towers           []Tower
	Metadata         Metadata
}
