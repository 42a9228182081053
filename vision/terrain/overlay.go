package terrain

import (
	"math"

	"github.com/fogleman/gg"

	"go.viam.com/rover/rimage"
)

// OverlayIntensity is the channel value marking a classified pixel in the vision overlay.
const OverlayIntensity = 100

// HeadingColor is the color DrawHeading paints with.
var HeadingColor = rimage.NewColor(255, 0, 0)

// Overlay renders the masks into one image: obstacles in red, samples in green, navigable ground in blue.
// Pixels in several masks light up several channels.
func Overlay(obstacle, sample, navigable *Mask) *rimage.Image {
	img := rimage.NewImage(obstacle.Width(), obstacle.Height())
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			img.SetXY(x, y, rimage.NewColor(
				channel(obstacle.At(x, y)),
				channel(sample.At(x, y)),
				channel(navigable.At(x, y)),
			))
		}
	}
	return img
}

func channel(set bool) uint8 {
	if set {
		return OverlayIntensity
	}
	return 0
}

// DrawHeading returns a copy of a rectified frame with a line from the rover along the mean navigable bearing,
// as long as the mean navigable distance. Without navigable terrain the copy is left untouched.
func DrawHeading(img *rimage.Image, nav NavSummary) *rimage.Image {
	bearing, err := nav.MeanBearing()
	if err != nil {
		return img.Clone()
	}
	distance, err := nav.MeanDistance()
	if err != nil {
		return img.Clone()
	}

	dc := gg.NewContextForImage(img)
	x0, y0 := float64(img.Width())/2, float64(img.Height())
	sin, cos := math.Sincos(bearing)
	dc.SetColor(HeadingColor)
	dc.SetLineWidth(2)
	dc.DrawLine(x0, y0, x0-distance*sin, y0-distance*cos)
	dc.Stroke()
	return rimage.NewImageFromStdImage(dc.Image())
}
