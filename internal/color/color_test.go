package color

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseHex_SixDigit(t *testing.T) {
	c, err := ParseHex("#FF8000")
	require.NoError(t, err)
	require.Equal(t, Color{R: 255, G: 128, B: 0}, c)
}

func TestParseHex_WithoutHash(t *testing.T) {
	c, err := ParseHex("dc143c")
	require.NoError(t, err)
	require.Equal(t, Color{R: 220, G: 20, B: 60}, c)
}

func TestParseHex_ThreeDigitShorthand(t *testing.T) {
	short, err := ParseHex("#abc")
	require.NoError(t, err)

	long, err := ParseHex("#aabbcc")
	require.NoError(t, err)

	require.Equal(t, long, short)
}

func TestParseHex_TrimsWhitespace(t *testing.T) {
	c, err := ParseHex("  #00FF00 ")
	require.NoError(t, err)
	require.Equal(t, Color{G: 255}, c)
}

func TestParseHex_RejectsBadLength(t *testing.T) {
	for _, input := range []string{"", "#", "ff", "#ffff", "#fffffff"} {
		_, err := ParseHex(input)
		require.Error(t, err, "input %q should not parse", input)
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
	}
}

func TestParseHex_RejectsInvalidDigits(t *testing.T) {
	_, err := ParseHex("#GG0000")
	require.Error(t, err)

	_, err = ParseHex("zzz")
	require.Error(t, err)
}

func TestHex_UppercaseZeroPadded(t *testing.T) {
	require.Equal(t, "#01020A", Color{R: 1, G: 2, B: 10}.Hex())
	require.Equal(t, "#000000", Color{}.Hex())
}

func TestDistance_BlackWhiteScale(t *testing.T) {
	black := Color{}
	white := Color{R: 255, G: 255, B: 255}
	require.InDelta(t, 441.67, black.Distance(white), 0.01)
}

func TestNormalizeHex(t *testing.T) {
	require.Equal(t, "FF0000", NormalizeHex(" #ff0000 "))
	require.Equal(t, "ABC", NormalizeHex("abc"))
	require.Equal(t, "", NormalizeHex("  #"))
}

// TestProperty_HexRoundTrip verifies toHex(parseHex(h)) == h for all valid
// 6-digit inputs after case and '#' normalization.
func TestProperty_HexRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := Color{
			R: rapid.Uint8().Draw(t, "r"),
			G: rapid.Uint8().Draw(t, "g"),
			B: rapid.Uint8().Draw(t, "b"),
		}
		parsed, err := ParseHex(c.Hex())
		require.NoError(t, err)
		require.Equal(t, c, parsed)
	})
}

// TestProperty_ThreeDigitExpansion verifies the doubled-digit shorthand
// against the equivalent 6-digit form.
func TestProperty_ThreeDigitExpansion(t *testing.T) {
	digits := "0123456789abcdef"
	rapid.Check(t, func(t *rapid.T) {
		a := digits[rapid.IntRange(0, 15).Draw(t, "a")]
		b := digits[rapid.IntRange(0, 15).Draw(t, "b")]
		c := digits[rapid.IntRange(0, 15).Draw(t, "c")]

		short, err := ParseHex(fmt.Sprintf("#%c%c%c", a, b, c))
		require.NoError(t, err)

		long, err := ParseHex(fmt.Sprintf("#%c%c%c%c%c%c", a, a, b, b, c, c))
		require.NoError(t, err)

		require.Equal(t, long, short)
	})
}

// TestProperty_DistanceSymmetryAndIdentity verifies d(a,b) == d(b,a) and
// d(a,a) == 0.
func TestProperty_DistanceSymmetryAndIdentity(t *testing.T) {
	gen := rapid.Custom(func(t *rapid.T) Color {
		return Color{
			R: rapid.Uint8().Draw(t, "r"),
			G: rapid.Uint8().Draw(t, "g"),
			B: rapid.Uint8().Draw(t, "b"),
		}
	})
	rapid.Check(t, func(t *rapid.T) {
		a := gen.Draw(t, "a")
		b := gen.Draw(t, "b")
		require.Equal(t, a.Distance(b), b.Distance(a))
		require.Zero(t, a.Distance(a))
	})
}
