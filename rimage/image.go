// Package rimage defines the RGB frame type used by the perception pipeline
// along with helpers to read and write frames.
package rimage

import (
	"image"
	"image/color"
)

// Image is a dense width x height grid of RGB colors, row major.
type Image struct {
	data          []Color
	width, height int
}

// NewImage returns a black image of the given size.
func NewImage(width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		data:   make([]Color, width*height),
		width:  width,
		height: height,
	}
}

// NewUniformImage returns an image with every pixel set to c.
func NewUniformImage(width, height int, c Color) *Image {
	img := NewImage(width, height)
	for k := range img.data {
		img.data[k] = c
	}
	return img
}

// NewImageFromStdImage copies any image.Image. The result is anchored at the origin.
func NewImageFromStdImage(img image.Image) *Image {
	if ii, ok := img.(*Image); ok {
		return ii.Clone()
	}
	bounds := img.Bounds()
	out := NewImage(bounds.Dx(), bounds.Dy())
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			out.setXY(x, y, NewColorFromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return out
}

// ColorModel implements image.Image.
func (i *Image) ColorModel() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		return NewColorFromColor(c)
	})
}

// Bounds implements image.Image.
func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.width, i.height)
}

// At implements image.Image.
func (i *Image) At(x, y int) color.Color {
	if !i.In(x, y) {
		return Black
	}
	return i.data[i.kxy(x, y)]
}

// In reports whether (x, y) lies inside the image.
func (i *Image) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < i.width && y < i.height
}

func (i *Image) kxy(x, y int) int {
	return (y * i.width) + x
}

// Width returns the number of columns.
func (i *Image) Width() int {
	return i.width
}

// Height returns the number of rows.
func (i *Image) Height() int {
	return i.height
}

// GetXY returns the color at column x, row y.
func (i *Image) GetXY(x, y int) Color {
	return i.data[i.kxy(x, y)]
}

func (i *Image) setXY(x, y int, c Color) {
	i.data[i.kxy(x, y)] = c
}

// SetXY sets the color at column x, row y.
func (i *Image) SetXY(x, y int, c Color) {
	i.setXY(x, y, c)
}

// Clone returns a deep copy.
func (i *Image) Clone() *Image {
	out := &Image{
		data:   make([]Color, len(i.data)),
		width:  i.width,
		height: i.height,
	}
	copy(out.data, i.data)
	return out
}

// Fill overwrites every pixel with c.
func (i *Image) Fill(c Color) {
	for k := range i.data {
		i.data[k] = c
	}
}

// CopyFrom overwrites this image with the contents of other. Sizes must match.
func (i *Image) CopyFrom(other *Image) bool {
	if other.width != i.width || other.height != i.height {
		return false
	}
	copy(i.data, other.data)
	return true
}

// WriteTo writes the image to fn; see WriteImageToFile.
func (i *Image) WriteTo(fn string) error {
	return WriteImageToFile(fn, i)
}
