// apt/rows.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package apt

import (
	"fmt"
	"strconv"
	"strings"
)

// apt.dat row codes handled by the parser. Anything else is ignored, which
// leaves us forward-compatible with future revisions of the format.
const (
	rowLandAirport     = 1
	rowLegacyPavement  = 10
	rowTowerViewpoint  = 14
	rowLegacyStartup   = 15
	rowSeaplaneBase    = 16
	rowHeliport        = 17
	rowBeacon          = 18
	rowWindsock        = 19
	rowTaxiSign        = 20
	rowFrequencyFirst  = 50
	rowFrequencyLast   = 57
	rowEndOfFile       = 99
	rowRunway          = 100
	rowHelipad         = 102
	rowPavementHeader  = 110
	rowNodeFirst       = 111
	rowNodeLast        = 116
	rowLinearFeature   = 120
	rowBoundary        = 130
	rowStartupLocation = 1300
	rowMetadata        = 1302
)

// Row is one logical line of an apt.dat file, tokenized on whitespace. The
// leading integer row code discriminates its meaning; Tokens[0] is the row
// code itself.
type Row struct {
	Line   int // 1-based line number, for diagnostics
	Code   int
	Tokens []string
}

// TokenizeRows splits the provided apt.dat text into Rows, dropping blank
// lines and lines that don't begin with an integer row code (the "I"/"A"
// byte-order line at the top of every file, for instance).
func TokenizeRows(text string) []Row {
	var rows []Row
	for i, line := range strings.Split(text, "\n") {
		f := strings.Fields(strings.TrimSuffix(line, "\r"))
		if len(f) == 0 {
			continue
		}
		code, err := strconv.Atoi(f[0])
		if err != nil {
			continue
		}
		rows = append(rows, Row{Line: i + 1, Code: code, Tokens: f})
	}
	return rows
}

type truncatedRowError struct {
	r Row
}

func (e *truncatedRowError) Error() string {
	return fmt.Sprintf("row code %d with only %d tokens is too short", e.r.Code, len(e.r.Tokens))
}

func atof(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}

func atoi(s string) (int, error) {
	return strconv.Atoi(s)
}

///////////////////////////////////////////////////////////////////////////
// Path node rows

// nodeRowKind is a closed enumeration of the 111-116 path vertex rows so
// that the path scanner can switch over them exhaustively.
type nodeRowKind int

const (
	lineSegment nodeRowKind = iota // 111: plain node
	lineCurve                      // 112: Bezier node
	ringSegment                    // 113: plain node closing the current ring
	ringCurve                      // 114: Bezier node closing the current ring
	endSegment                     // 115: plain node ending the feature (open path)
	endCurve                       // 116: Bezier node ending the feature (open path)
)

// nodeRow maps a row code to its node kind; the returned bool indicates
// whether the code is a path vertex row at all. The enumeration above is
// declared in row-code order, so the mapping is just an offset.
func nodeRow(code int) (nodeRowKind, bool) {
	if code < rowNodeFirst || code > rowNodeLast {
		return 0, false
	}
	return nodeRowKind(code - rowNodeFirst), true
}

func (k nodeRowKind) isCurve() bool {
	return k == lineCurve || k == ringCurve || k == endCurve
}

func (k nodeRowKind) closesRing() bool {
	return k == ringSegment || k == ringCurve
}

func (k nodeRowKind) endsFeature() bool {
	return k == endSegment || k == endCurve
}
