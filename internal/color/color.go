// Package color implements the terminal's fixed 8-bit-per-channel RGBA color
// type and its ANSI-256 palette mapping.
package color

import gocolor "image/color"

// Color is an 8-bit-per-channel RGBA color. Equality is structural.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements image/color.Color so a Color composes directly with the
// standard image package (used by the Kitty/Sixel decoders).
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

var _ gocolor.Color = Color{}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// RGBA8 returns a color with an explicit alpha channel.
func RGBA8(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// Default foreground/background used when a cell or SGR state resets.
var (
	White = RGB(255, 255, 255)
	Black = RGB(0, 0, 0)
)

// standard16 is the base VT palette, indices 0-15.
var standard16 = [16]Color{
	RGB(0, 0, 0),
	RGB(205, 0, 0),
	RGB(0, 205, 0),
	RGB(205, 205, 0),
	RGB(0, 0, 238),
	RGB(205, 0, 205),
	RGB(0, 205, 205),
	RGB(229, 229, 229),
	RGB(127, 127, 127),
	RGB(255, 0, 0),
	RGB(0, 255, 0),
	RGB(255, 255, 0),
	RGB(92, 92, 255),
	RGB(255, 0, 255),
	RGB(0, 255, 255),
	RGB(255, 255, 255),
}

// Ansi256 maps a 256-color palette index to a Color.
//
// Indices 0-15 are the standard VT palette; 16-231 are a 6x6x6 cube with
// component levels 51*k; 232-255 are a 24-step grayscale starting at 8,
// stepping 10.
func Ansi256(index uint8) Color {
	switch {
	case index < 16:
		return standard16[index]
	case index <= 231:
		idx := index - 16
		r := (idx / 36) * 51
		g := ((idx % 36) / 6) * 51
		b := (idx % 6) * 51
		return RGB(r, g, b)
	default:
		gray := 8 + (index-232)*10
		return RGB(gray, gray, gray)
	}
}
