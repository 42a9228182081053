package terrain

import (
	"image"
)

// Mask is a binary image, one flag per pixel, row major.
type Mask struct {
	width, height int
	bits          []bool
}

// NewMask returns an empty mask.
func NewMask(width, height int) *Mask {
	return &Mask{width: width, height: height, bits: make([]bool, width*height)}
}

// Width returns the number of columns.
func (m *Mask) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *Mask) Height() int {
	return m.height
}

// Bounds returns the mask's rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// At reports whether the pixel at column x, row y is set. Out of range pixels are unset.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// Set sets or clears the pixel at column x, row y.
func (m *Mask) Set(x, y int, v bool) {
	m.bits[y*m.width+x] = v
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Active returns the set pixels in row major scan order.
func (m *Mask) Active() []image.Point {
	out := make([]image.Point, 0, m.Count())
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.bits[y*m.width+x] {
				out = append(out, image.Point{x, y})
			}
		}
	}
	return out
}
