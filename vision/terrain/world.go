package terrain

import (
	"image"
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/rover/utils"
)

// Rotate turns every point counterclockwise by yaw degrees.
func Rotate(ps PointSet, yaw float64) PointSet {
	rad := utils.DegToRad(yaw)
	sin, cos := math.Sincos(rad)
	out := make(PointSet, len(ps))
	for i, p := range ps {
		out[i] = r2.Point{
			X: p.X*cos - p.Y*sin,
			Y: p.X*sin + p.Y*cos,
		}
	}
	return out
}

// Translate scales rover offsets down to world units and moves them to the rover's world position.
func Translate(ps PointSet, pos r2.Point, scale float64) PointSet {
	out := make(PointSet, len(ps))
	for i, p := range ps {
		out[i] = r2.Point{X: pos.X + p.X/scale, Y: pos.Y + p.Y/scale}
	}
	return out
}

// ToWorld maps rover centric points into cells of a size x size world grid: rotate by the rover's yaw,
// translate by its position, then floor each coordinate and clamp it onto the grid.
func ToWorld(ps PointSet, pose Pose, scale float64, size int) []image.Point {
	world := Translate(Rotate(ps, pose.Yaw), pose.Position(), scale)
	out := make([]image.Point, len(world))
	for i, p := range world {
		out[i] = image.Point{
			X: utils.FloorToCell(p.X, size),
			Y: utils.FloorToCell(p.Y, size),
		}
	}
	return out
}
