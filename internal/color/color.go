// Package color provides the canonical RGB value type shared by the catalog,
// search, and matching packages, along with hex parsing and Euclidean distance.
package color

import (
	"fmt"
	"math"
	"strings"
)

// Color is an immutable 8-bit-per-channel RGB value.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// ParseError reports a hex string that could not be parsed into a Color.
// It is always recoverable; callers fall back to a placeholder instead of
// aborting.
type ParseError struct {
	Input string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse hex %q: %s", e.Input, e.Msg)
}

// ParseHex parses a hex color string into a Color.
// It strips surrounding whitespace and an optional leading '#', accepts
// 3-digit shorthand (each digit doubled) or the full 6-digit form, and is
// case-insensitive. Anything else returns a *ParseError.
func ParseHex(s string) (Color, error) {
	raw := s
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")

	switch len(s) {
	case 3:
		var b strings.Builder
		for _, r := range s {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		s = b.String()
	case 6:
	default:
		return Color{}, &ParseError{Input: raw, Msg: "length must be 3 or 6 hex digits"}
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(s[i*2])
		lo, ok2 := hexDigit(s[i*2+1])
		if !ok1 || !ok2 {
			return Color{}, &ParseError{Input: raw, Msg: "invalid hex digit"}
		}
		channels[i] = hi<<4 | lo
	}

	return Color{R: channels[0], G: channels[1], B: channels[2]}, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Hex returns the canonical "#RRGGBB" form: uppercase, zero-padded.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Distance returns the Euclidean distance between two colors over the
// three-channel vector. Range is 0 (identical) to ~441.67 (black vs white).
// Callers treat the raw value as the similarity score; the scale must not
// be normalized here.
func (c Color) Distance(o Color) float64 {
	dr := float64(c.R) - float64(o.R)
	dg := float64(c.G) - float64(o.G)
	db := float64(c.B) - float64(o.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// NormalizeHex reduces a raw hex query string to its comparable form:
// whitespace trimmed, leading '#' stripped, uppercased. It does not
// validate; use ParseHex for that.
func NormalizeHex(s string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "#"))
}
