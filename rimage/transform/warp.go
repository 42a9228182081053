package transform

import (
	"image"
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/rover/rimage"
	"go.viam.com/rover/utils"
)

// Border selects what a warp samples outside the source image.
type Border int

const (
	// BorderReplicate repeats the closest edge pixel.
	BorderReplicate Border = iota
	// BorderConstant treats everything outside the source as black.
	BorderConstant
)

// WarpImage resamples img through h onto a new image of the given size. Each output pixel is mapped back
// through the inverse of h and bilinearly interpolated from its four source neighbors.
func WarpImage(img *rimage.Image, h *Homography, size image.Point, border Border) (*rimage.Image, error) {
	inv, err := h.Inverse()
	if err != nil {
		return nil, err
	}
	out := rimage.NewImage(size.X, size.Y)
	utils.ParallelForEachRow(size.Y, func(y int) {
		for x := 0; x < size.X; x++ {
			src := inv.Apply(r2.Point{X: float64(x), Y: float64(y)})
			out.SetXY(x, y, bilinear(img, src, border))
		}
	})
	return out, nil
}

// sample returns the pixel at (x, y) honoring the border mode, and whether it contributes.
func sample(img *rimage.Image, x, y int, border Border) (rimage.Color, bool) {
	if img.In(x, y) {
		return img.GetXY(x, y), true
	}
	if border == BorderConstant {
		return rimage.Black, false
	}
	return img.GetXY(clamp(x, img.Width()-1), clamp(y, img.Height()-1)), true
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

func bilinear(img *rimage.Image, pt r2.Point, border Border) rimage.Color {
	if math.IsNaN(pt.X) || math.IsNaN(pt.Y) {
		return rimage.Black
	}
	if img.Width() == 0 || img.Height() == 0 {
		return rimage.Black
	}
	// keep far away points from overflowing int conversion, they replicate the edge anyway
	limit := float64(img.Width() + img.Height() + 2)
	fx := math.Max(-limit, math.Min(limit, pt.X))
	fy := math.Max(-limit, math.Min(limit, pt.Y))

	x0, y0 := math.Floor(fx), math.Floor(fy)
	dx, dy := fx-x0, fy-y0
	ix, iy := int(x0), int(y0)

	var r, g, b float64
	corners := [4]struct {
		x, y int
		w    float64
	}{
		{ix, iy, (1 - dx) * (1 - dy)},
		{ix + 1, iy, dx * (1 - dy)},
		{ix, iy + 1, (1 - dx) * dy},
		{ix + 1, iy + 1, dx * dy},
	}
	for _, c := range corners {
		if c.w == 0 {
			continue
		}
		col, ok := sample(img, c.x, c.y, border)
		if !ok {
			continue
		}
		r += c.w * float64(col.R)
		g += c.w * float64(col.G)
		b += c.w * float64(col.B)
	}
	return rimage.NewColor(toUint8(r), toUint8(g), toUint8(b))
}

func toUint8(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
