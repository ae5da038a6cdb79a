// apt/sign.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package apt

import (
	"fmt"
	"strconv"
	"strings"
)

// SignColor is the rendering mode of one run of taxi sign text.
type SignColor int

const (
	SignDirection SignColor = iota // black on yellow
	SignLocation                   // yellow on black
	SignMandatory                  // white on red
	SignDistance                   // white on black
)

func (c SignColor) String() string {
	return [...]string{"direction", "location", "mandatory", "distance"}[c]
}

// SignSegment is a run of sign text rendered in a single color mode.
type SignSegment struct {
	Color SignColor
	Text  string
}

// DecodedSign is the result of decoding a sign's mini-language text: the
// ordered segments of its front face and, if the text carried a {@@}
// separator, of its back face.
type DecodedSign struct {
	Front []SignSegment
	Back  []SignSegment
}

// Glyph codes that may appear in the sign mini-language, both bracketed
// ({^r}, {no-entry}) and--for the caret codes--bare in the text. Each
// substitutes to a single character that the sign font renders as the
// corresponding arrow or symbol.
var signGlyphs = map[string]rune{
	"^u":       '↑',
	"^d":       '↓',
	"^l":       '←',
	"^r":       '→',
	"^lu":      '↖',
	"^ru":      '↗',
	"^ld":      '↙',
	"^rd":      '↘',
	"r1":       'Ⅰ',
	"r2":       'Ⅱ',
	"r3":       'Ⅲ',
	"no-entry": '⦸',
	"critical": '▦',
	"safety":   '▥',
	"hazard":   '▤',
}

// Unbracketed caret codes are matched longest first so that "^lu" is the
// up-left arrow rather than a left arrow followed by a stray 'u'.
var caretCodes = []string{"lu", "ru", "ld", "rd", "u", "d", "l", "r"}

type signDecoder struct {
	sign  DecodedSign
	back  bool
	color SignColor
	text  strings.Builder
}

// DecodeSignText decodes the taxi sign mini-language into colorable text
// segments. Color-mode directives ({@Y}, {@R}, {@L}, {@B}, or the same
// codes bare) apply to the text that follows them until the next
// directive; text before any directive defaults to location mode. {@@}
// (or bare @@) separates the front face from the optional back face.
func DecodeSignText(text string) DecodedSign {
	d := signDecoder{color: SignLocation}

	for i := 0; i < len(text); {
		switch c := text[i]; c {
		case '{':
			end := strings.IndexByte(text[i:], '}')
			if end == -1 {
				// Unterminated directive; keep the brace literally.
				d.rune('{')
				i++
				continue
			}
			// A directive may carry several comma-separated items, e.g.
			// {@Y,^l,A3}.
			for _, item := range strings.Split(text[i+1:i+end], ",") {
				d.directive(item)
			}
			i += end + 1
		case '@':
			if i+1 < len(text) && text[i+1] == '@' {
				d.flipFace()
				i += 2
			} else if i+1 < len(text) && d.setColor(text[i+1]) {
				i += 2
			} else {
				d.rune('@')
				i++
			}
		case '^':
			matched := false
			for _, code := range caretCodes {
				if strings.HasPrefix(text[i+1:], code) {
					d.rune(signGlyphs["^"+code])
					i += 1 + len(code)
					matched = true
					break
				}
			}
			if !matched {
				d.rune('^')
				i++
			}
		default:
			d.literal(c)
			i++
		}
	}

	d.flush()
	return d.sign
}

// directive handles one bracketed item: a face separator, a color-mode
// switch, a glyph name, or (in the comma shorthand) literal text.
func (d *signDecoder) directive(s string) {
	switch {
	case s == "@@":
		d.flipFace()
	case len(s) == 2 && s[0] == '@' && d.setColor(s[1]):
	default:
		if g, ok := signGlyphs[s]; ok {
			d.rune(g)
		} else {
			for j := 0; j < len(s); j++ {
				d.literal(s[j])
			}
		}
	}
}

// literal appends one plain text character, applying the spacing
// substitutions: '_' is a space, '*' a middle dot; '|' is preserved and
// renders as a divider.
func (d *signDecoder) literal(c byte) {
	switch c {
	case '_':
		d.rune(' ')
	case '*':
		d.rune('·')
	default:
		d.rune(rune(c))
	}
}

func (d *signDecoder) rune(r rune) {
	d.text.WriteRune(r)
}

// setColor switches the active color mode for the given directive letter,
// returning false if the letter isn't one of the four modes.
func (d *signDecoder) setColor(letter byte) bool {
	var color SignColor
	switch letter {
	case 'Y':
		color = SignDirection
	case 'R':
		color = SignMandatory
	case 'L':
		color = SignLocation
	case 'B':
		color = SignDistance
	default:
		return false
	}
	d.flush()
	d.color = color
	return true
}

func (d *signDecoder) flipFace() {
	d.flush()
	d.back = true
	d.color = SignLocation
}

func (d *signDecoder) flush() {
	if d.text.Len() == 0 {
		return
	}
	seg := SignSegment{Color: d.color, Text: d.text.String()}
	if d.back {
		d.sign.Back = append(d.sign.Back, seg)
	} else {
		d.sign.Front = append(d.sign.Front, seg)
	}
	d.text.Reset()
}

///////////////////////////////////////////////////////////////////////////
// Cache keys

var colorLetters = [...]byte{SignDirection: 'Y', SignLocation: 'L', SignMandatory: 'R', SignDistance: 'B'}

// EncodeSignKey builds a compact, reversible string key for one decoded
// sign face at a given render size; identical decoded signs map to the
// same key, which the rendering cache uses for deduplication.
func EncodeSignKey(segs []SignSegment, size int) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(size))
	for _, s := range segs {
		sb.WriteByte('|')
		sb.WriteByte(colorLetters[s.Color])
		sb.WriteByte(':')
		for _, r := range s.Text {
			if r == '|' || r == '\\' {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// DecodeSignKey is the inverse of EncodeSignKey.
func DecodeSignKey(key string) ([]SignSegment, int, error) {
	sizeStr, rest, haveSegs := strings.Cut(key, "|")
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: malformed sign key size", key)
	}
	if !haveSegs {
		return nil, size, nil
	}

	var segs []SignSegment
	for i := 0; i < len(rest); {
		if i+2 > len(rest) || rest[i+1] != ':' {
			return nil, 0, fmt.Errorf("%s: malformed sign key segment", key)
		}
		var color SignColor
		switch rest[i] {
		case 'Y':
			color = SignDirection
		case 'L':
			color = SignLocation
		case 'R':
			color = SignMandatory
		case 'B':
			color = SignDistance
		default:
			return nil, 0, fmt.Errorf("%s: unknown sign key color %q", key, rest[i])
		}
		i += 2

		var text strings.Builder
		for i < len(rest) && rest[i] != '|' {
			if rest[i] == '\\' && i+1 < len(rest) {
				i++
			}
			text.WriteByte(rest[i])
			i++
		}
		if i < len(rest) {
			i++ // skip the separator
		}
		segs = append(segs, SignSegment{Color: color, Text: text.String()})
	}
	return segs, size, nil
}
