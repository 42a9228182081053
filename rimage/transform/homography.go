// Package transform provides the projective transforms used to rectify camera
// frames onto the ground plane.
package transform

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrDegeneratePoints is returned when a set of correspondences cannot define a projective transform,
// which happens when three of the four points on either side are collinear.
var ErrDegeneratePoints = errors.New("perspective transform points are degenerate")

// collinearEpsilon is the smallest triangle area (in square pixels) considered non degenerate.
const collinearEpsilon = 1e-9

// Homography is a 3x3 matrix (represented as a 2D array) used to transform a plane from the perspective of a 2D
// camera to another plane. Indices are [row][column].
type Homography [3][3]float64

// NewHomography creates a Homography from a slice of 9 values in row major order.
func NewHomography(vals []float64) (*Homography, error) {
	if len(vals) != 9 {
		return nil, errors.Errorf("input to NewHomography must have length of 9. Has length of %d", len(vals))
	}
	var h Homography
	for i, v := range vals {
		h[i/3][i%3] = v
	}
	return &h, nil
}

// At returns the value of the homography at the given row, column.
func (h *Homography) At(row, col int) float64 {
	return h[row][col]
}

// Dense returns the homography as a gonum matrix.
func (h *Homography) Dense() *mat.Dense {
	d := mat.NewDense(3, 3, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			d.Set(r, c, h[r][c])
		}
	}
	return d
}

// Apply maps pt through the homography. A point sent to infinity comes back with non finite coordinates.
func (h *Homography) Apply(pt r2.Point) r2.Point {
	x := h.At(0, 0)*pt.X + h.At(0, 1)*pt.Y + h.At(0, 2)
	y := h.At(1, 0)*pt.X + h.At(1, 1)*pt.Y + h.At(1, 2)
	z := h.At(2, 0)*pt.X + h.At(2, 1)*pt.Y + h.At(2, 2)
	return r2.Point{X: x / z, Y: y / z}
}

// Inverse returns the homography mapping the destination plane back onto the source plane.
func (h *Homography) Inverse() (*Homography, error) {
	var inv mat.Dense
	if err := inv.Inverse(h.Dense()); err != nil {
		return nil, errors.Wrap(ErrDegeneratePoints, err.Error())
	}
	var out Homography
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = inv.At(r, c)
		}
	}
	return &out, nil
}

// EstimatePerspectiveTransform returns the homography mapping each src point onto the dst point with the same
// index. Exactly four correspondences are required and h22 is fixed to 1, which leaves an 8x8 linear system.
func EstimatePerspectiveTransform(src, dst []r2.Point) (*Homography, error) {
	if len(src) != 4 || len(dst) != 4 {
		return nil, errors.Errorf("perspective transform needs 4 source and 4 destination points, got %d and %d",
			len(src), len(dst))
	}
	if hasCollinearTriple(src) {
		return nil, errors.Wrap(ErrDegeneratePoints, "source")
	}
	if hasCollinearTriple(dst) {
		return nil, errors.Wrap(ErrDegeneratePoints, "destination")
	}

	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := range src {
		sx, sy := src[i].X, src[i].Y
		dx, dy := dst[i].X, dst[i].Y
		r := 2 * i
		// x' = (h00 X + h01 Y + h02)/(h20 X + h21 Y + 1)
		a.SetRow(r, []float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx})
		b.SetVec(r, dx)
		// y' = (h10 X + h11 Y + h12)/(h20 X + h21 Y + 1)
		a.SetRow(r+1, []float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy})
		b.SetVec(r+1, dy)
	}

	var sol mat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		return nil, errors.Wrap(ErrDegeneratePoints, err.Error())
	}
	vals := make([]float64, 0, 9)
	for i := 0; i < 8; i++ {
		v := sol.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrDegeneratePoints
		}
		vals = append(vals, v)
	}
	return NewHomography(append(vals, 1))
}

func hasCollinearTriple(pts []r2.Point) bool {
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			for k := j + 1; k < len(pts); k++ {
				if math.Abs(pts[j].Sub(pts[i]).Cross(pts[k].Sub(pts[i]))) < collinearEpsilon {
					return true
				}
			}
		}
	}
	return false
}
