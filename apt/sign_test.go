// apt/sign_test.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package apt

import (
	"slices"
	"testing"
)

func TestDecodeSignText(t *testing.T) {
	type testCase struct {
		text  string
		front []SignSegment
		back  []SignSegment
	}
	cases := []testCase{
		// Text before any directive defaults to location.
		{text: "B6", front: []SignSegment{{SignLocation, "B6"}}},
		{text: "{@L}B6{@Y}C2{^r}",
			front: []SignSegment{{SignLocation, "B6"}, {SignDirection, "C2→"}}},
		{text: "{@R}26-8{@@}{@L}A",
			front: []SignSegment{{SignMandatory, "26-8"}},
			back:  []SignSegment{{SignLocation, "A"}}},
		// Comma shorthand: directives and literal text in one set of braces.
		{text: "{@Y,^l,A1}", front: []SignSegment{{SignDirection, "←A1"}}},
		// Bare caret codes, matched longest first.
		{text: "{@Y}^luA^r", front: []SignSegment{{SignDirection, "↖A→"}}},
		// Spacing substitutions; '|' is kept as a divider.
		{text: "{@B}RWY_26*8|END", front: []SignSegment{{SignDistance, "RWY 26·8|END"}}},
		{text: "{no-entry}", front: []SignSegment{{SignLocation, "⦸"}}},
		{text: "{@R,r2}", front: []SignSegment{{SignMandatory, "Ⅱ"}}},
		// Bare @@ also separates the faces; mode resets to location.
		{text: "{@Y}E@@E", front: []SignSegment{{SignDirection, "E"}},
			back: []SignSegment{{SignLocation, "E"}}},
		// Unterminated brace is literal text.
		{text: "{@Y}A{oops", front: []SignSegment{{SignDirection, "A{oops"}}},
	}

	for _, c := range cases {
		d := DecodeSignText(c.text)
		if !slices.Equal(d.Front, c.front) {
			t.Errorf("%q: front got %v, expected %v", c.text, d.Front, c.front)
		}
		if !slices.Equal(d.Back, c.back) {
			t.Errorf("%q: back got %v, expected %v", c.text, d.Back, c.back)
		}
	}
}

func TestSignKeyRoundTrip(t *testing.T) {
	cases := [][]SignSegment{
		nil,
		{{SignLocation, "B6"}},
		{{SignDirection, "C2→"}, {SignMandatory, "26-8"}},
		// Text containing the key's own separator and escape characters.
		{{SignDistance, "A|B\\C"}, {SignLocation, "|"}},
	}

	for _, segs := range cases {
		key := EncodeSignKey(segs, 3)
		got, size, err := DecodeSignKey(key)
		if err != nil {
			t.Errorf("%q: unexpected error %v", key, err)
			continue
		}
		if size != 3 {
			t.Errorf("%q: size got %d, expected 3", key, size)
		}
		if !slices.Equal(got, segs) {
			t.Errorf("%q: got %v, expected %v", key, got, segs)
		}
	}

	for _, bad := range []string{"", "x|L:A", "3|Q:A", "3|L"} {
		if _, _, err := DecodeSignKey(bad); err == nil {
			t.Errorf("%q: expected decode error", bad)
		}
	}
}
