package rimage

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestImageBasics(t *testing.T) {
	img := NewImage(4, 3)
	test.That(t, img.Width(), test.ShouldEqual, 4)
	test.That(t, img.Height(), test.ShouldEqual, 3)
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 4, 3))
	test.That(t, img.GetXY(3, 2), test.ShouldResemble, Black)

	img.SetXY(3, 2, NewColor(1, 2, 3))
	test.That(t, img.GetXY(3, 2), test.ShouldResemble, Color{1, 2, 3})
	test.That(t, img.At(3, 2), test.ShouldResemble, Color{1, 2, 3})
	test.That(t, img.At(4, 2), test.ShouldResemble, Black)
	test.That(t, img.In(-1, 0), test.ShouldBeFalse)

	clone := img.Clone()
	clone.SetXY(0, 0, Color{9, 9, 9})
	test.That(t, img.GetXY(0, 0), test.ShouldResemble, Black)

	test.That(t, img.CopyFrom(clone), test.ShouldBeTrue)
	test.That(t, img.GetXY(0, 0), test.ShouldResemble, Color{9, 9, 9})
	test.That(t, img.CopyFrom(NewImage(1, 1)), test.ShouldBeFalse)

	img.Fill(Color{5, 5, 5})
	test.That(t, img.GetXY(2, 1), test.ShouldResemble, Color{5, 5, 5})
}

func TestNewImageFromStdImage(t *testing.T) {
	std := image.NewNRGBA(image.Rect(10, 10, 13, 12))
	std.Set(10, 10, color.NRGBA{200, 100, 50, 255})
	std.Set(12, 11, color.NRGBA{1, 2, 3, 0})

	img := NewImageFromStdImage(std)
	test.That(t, img.Width(), test.ShouldEqual, 3)
	test.That(t, img.Height(), test.ShouldEqual, 2)
	test.That(t, img.GetXY(0, 0), test.ShouldResemble, Color{200, 100, 50})
	test.That(t, img.GetXY(2, 1), test.ShouldResemble, Black)
}

func TestColor(t *testing.T) {
	c := NewColor(255, 16, 0)
	test.That(t, c.Hex(), test.ShouldEqual, "#ff1000")

	parsed, err := NewColorFromHex("#ff1000")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parsed, test.ShouldResemble, c)

	_, err = NewColorFromHex("nope")
	test.That(t, err, test.ShouldNotBeNil)

	r, g, b, a := c.RGBA()
	test.That(t, r, test.ShouldEqual, uint32(0xffff))
	test.That(t, g, test.ShouldEqual, uint32(0x1010))
	test.That(t, b, test.ShouldEqual, uint32(0))
	test.That(t, a, test.ShouldEqual, uint32(0xffff))

	test.That(t, NewColorFromColor(color.Gray{Y: 7}), test.ShouldResemble, Color{7, 7, 7})
}

func TestImageFileRoundTrip(t *testing.T) {
	img := NewUniformImage(5, 4, Color{10, 20, 30})
	img.SetXY(1, 2, Color{250, 0, 0})

	fn := filepath.Join(t.TempDir(), "frame.png")
	test.That(t, img.WriteTo(fn), test.ShouldBeNil)

	read, err := ReadImageFromFile(fn)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, read, test.ShouldResemble, img)

	_, err = ReadImageFromFile(filepath.Join(t.TempDir(), "missing.png"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestUpscale(t *testing.T) {
	img := NewImage(2, 1)
	img.SetXY(1, 0, Color{255, 255, 255})

	big := Upscale(img, 3)
	test.That(t, big.Width(), test.ShouldEqual, 6)
	test.That(t, big.Height(), test.ShouldEqual, 3)
	test.That(t, big.GetXY(0, 2), test.ShouldResemble, Black)
	test.That(t, big.GetXY(5, 2), test.ShouldResemble, Color{255, 255, 255})

	test.That(t, Upscale(img, 1), test.ShouldResemble, img)
}
