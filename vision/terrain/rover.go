package terrain

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/samber/lo"
)

// PointSet is a set of rover centric points: X is the forward distance and Y the offset to the left, both in
// rectified pixels. Order follows the mask scan order and carries no meaning downstream.
type PointSet []r2.Point

// Xs returns the forward components.
func (ps PointSet) Xs() []float64 {
	return lo.Map(ps, func(p r2.Point, _ int) float64 { return p.X })
}

// Ys returns the lateral components.
func (ps PointSet) Ys() []float64 {
	return lo.Map(ps, func(p r2.Point, _ int) float64 { return p.Y })
}

// RoverCoords converts the set pixels of a mask into rover centric coordinates. The rover sits at the middle
// of the bottom edge of the rectified image.
func RoverCoords(m *Mask) PointSet {
	active := m.Active()
	out := make(PointSet, 0, len(active))
	center := float64(m.Width()) / 2
	height := float64(m.Height())
	for _, p := range active {
		out = append(out, r2.Point{
			X: math.Abs(float64(p.Y) - height),
			Y: -(float64(p.X) - center),
		})
	}
	return out
}

// LimitRange keeps the points strictly closer than radius to the rover, preserving order.
func LimitRange(ps PointSet, radius float64) PointSet {
	return lo.Filter(ps, func(p r2.Point, _ int) bool {
		return p.Norm() < radius
	})
}
