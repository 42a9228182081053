package slam

import (
	"image/color"

	"github.com/fogleman/gg"

	"go.viam.com/rover/rimage"
)

// ToImage renders the map with red for obstacles, green for samples and blue for navigable ground.
// Row 0 of the map is drawn at the bottom so that world +y points up. Empty cells are black.
func (wm *WorldMap) ToImage() *rimage.Image {
	dc := gg.NewContext(wm.size, wm.size)
	wm.Iterate(func(x, y int, c Cell) bool {
		if c == (Cell{}) {
			return true
		}
		dc.SetColor(color.RGBA{c.Obstacle, c.Sample, c.Navigable, 255})
		dc.SetPixel(x, wm.size-1-y)
		return true
	})
	return rimage.NewImageFromStdImage(dc.Image())
}
