// Package color provides the team color model: hex encoding, decoding and the preset palette.
package color

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// FallbackHex is stored when a chosen color cannot be hex-encoded on creation.
const FallbackHex = "#007AFF"

// Color is an sRGB color with channels in the [0, 1] range.
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// RGB returns an opaque color from 8-bit channel values.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: 1,
	}
}

// Gray is the neutral color shown for teams whose stored hex is missing or invalid.
var Gray = RGB(0x8E, 0x8E, 0x93)

// Palette holds the preset team colors offered by the editor and cycled through on import.
var Palette = []Color{
	RGB(0xFF, 0x3B, 0x30), // red
	RGB(0xFF, 0x95, 0x00), // orange
	RGB(0xFF, 0xCC, 0x00), // yellow
	RGB(0x34, 0xC7, 0x59), // green
	RGB(0x00, 0xC7, 0xBE), // mint
	RGB(0x30, 0xB0, 0xC7), // teal
	RGB(0x32, 0xAD, 0xE6), // cyan
	RGB(0x00, 0x7A, 0xFF), // blue
	RGB(0x58, 0x56, 0xD6), // indigo
	RGB(0xAF, 0x52, 0xDE), // purple
	RGB(0xFF, 0x2D, 0x55), // pink
	RGB(0xA2, 0x84, 0x5E), // brown
	Gray,
}

// PaletteAt returns the palette entry for index i, wrapping around the palette size.
func PaletteAt(i int) Color {
	n := len(Palette)
	return Palette[((i%n)+n)%n]
}

// Random returns a uniformly chosen palette color.
func Random(rng *rand.Rand) Color {
	if rng == nil {
		//nolint:gosec // color choice has no security requirement
		return Palette[rand.Intn(len(Palette))]
	}
	return Palette[rng.Intn(len(Palette))]
}

// ParseHex decodes "#RRGGBB" or "#RRGGBBAA". Surrounding whitespace and '#' characters are ignored.
func ParseHex(s string) (Color, bool) {
	sanitized := strings.ReplaceAll(strings.TrimSpace(s), "#", "")
	if len(sanitized) != 6 && len(sanitized) != 8 {
		return Color{}, false
	}

	v, err := strconv.ParseUint(sanitized, 16, 64)
	if err != nil {
		return Color{}, false
	}

	if len(sanitized) == 6 {
		return Color{
			R: float64((v&0xFF0000)>>16) / 255,
			G: float64((v&0x00FF00)>>8) / 255,
			B: float64(v&0x0000FF) / 255,
			A: 1,
		}, true
	}

	return Color{
		R: float64((v&0xFF000000)>>24) / 255,
		G: float64((v&0x00FF0000)>>16) / 255,
		B: float64((v&0x0000FF00)>>8) / 255,
		A: float64(v&0x000000FF) / 255,
	}, true
}

// MustParseHex is like ParseHex but panics on invalid input.
func MustParseHex(s string) Color {
	c, ok := ParseHex(s)
	if !ok {
		panic(fmt.Sprintf("color: invalid hex %q", s))
	}
	return c
}

// FromHexOrDefault decodes s, falling back to Gray.
func FromHexOrDefault(s string) Color {
	if c, ok := ParseHex(s); ok {
		return c
	}
	return Gray
}

// ToHex encodes the color as upper-case "#RRGGBB", or "#RRGGBBAA" when includeAlpha is set.
// It reports false when a channel is not a finite value inside [0, 1].
func (c Color) ToHex(includeAlpha bool) (string, bool) {
	channels := []float64{c.R, c.G, c.B}
	if includeAlpha {
		channels = append(channels, c.A)
	}

	var b strings.Builder
	b.WriteByte('#')
	for _, ch := range channels {
		if math.IsNaN(ch) || math.IsInf(ch, 0) || ch < 0 || ch > 1 {
			return "", false
		}
		fmt.Fprintf(&b, "%02X", int(math.Round(ch*255)))
	}
	return b.String(), true
}

// Hex is ToHex without alpha, returning an empty string on failure.
func (c Color) Hex() string {
	h, _ := c.ToHex(false)
	return h
}

// SameHex reports whether two colors share the same hex encoding.
func SameHex(a, b Color) bool {
	ha, okA := a.ToHex(false)
	hb, okB := b.ToHex(false)
	return okA && okB && ha == hb
}

// CSS returns the color as a CSS rgba() expression.
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.3g)",
		int(math.Round(clamp(c.R)*255)),
		int(math.Round(clamp(c.G)*255)),
		int(math.Round(clamp(c.B)*255)),
		clamp(c.A))
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
