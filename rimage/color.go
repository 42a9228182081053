package rimage

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Black is the zero Color.
var Black = Color{}

// NewColor returns the Color with the given channels.
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// NewColorFromColor converts any color.Color. Fully transparent colors become Black.
func NewColorFromColor(c color.Color) Color {
	if cc, ok := c.(Color); ok {
		return cc
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return Black
	}
	r, g, b := cc.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// NewColorFromHex parses a "#rrggbb" string.
func NewColorFromHex(hex string) (Color, error) {
	cc, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("couldn't parse hex (%s): %w", hex, err)
	}
	r, g, b := cc.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// RGBA implements color.Color; the alpha is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = 0xffff
	return
}

// Hex returns the "#rrggbb" form of the color.
func (c Color) Hex() string {
	return c.toColorful().Hex()
}

func (c Color) String() string {
	return fmt.Sprintf("%s (%3d,%3d,%3d)", c.Hex(), c.R, c.G, c.B)
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
