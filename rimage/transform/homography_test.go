package transform

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

// roverSource and roverDestination are the calibrated trapezoid of the rover camera and the square it lands on
// in a 320x160 frame.
var (
	roverSource      = []r2.Point{{X: 14, Y: 140}, {X: 301, Y: 140}, {X: 200, Y: 95}, {X: 118, Y: 95}}
	roverDestination = []r2.Point{{X: 155, Y: 154}, {X: 165, Y: 154}, {X: 165, Y: 144}, {X: 155, Y: 144}}
)

func TestNewHomography(t *testing.T) {
	_, err := NewHomography([]float64{})
	test.That(t, err, test.ShouldBeError, errors.New("input to NewHomography must have length of 9. Has length of 0"))

	vals := []float64{
		2.32700501e-01, -8.33535395e-03, -3.61894025e+01, -1.90671303e-03, 2.35303232e-01,
		8.38582614e+00, -6.39101664e-05, -4.64582754e-05, 1.00000000e+00,
	}
	h, err := NewHomography(vals)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, h.At(0, 2), test.ShouldEqual, -3.61894025e+01)
	test.That(t, h.At(2, 1), test.ShouldEqual, -4.64582754e-05)
}

func TestEstimateIdentity(t *testing.T) {
	square := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	h, err := EstimatePerspectiveTransform(square, square)
	test.That(t, err, test.ShouldBeNil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			expected := 0.0
			if r == c {
				expected = 1
			}
			test.That(t, h.At(r, c), test.ShouldAlmostEqual, expected, 1e-9)
		}
	}
}

func TestEstimateMapsCorrespondences(t *testing.T) {
	h, err := EstimatePerspectiveTransform(roverSource, roverDestination)
	test.That(t, err, test.ShouldBeNil)
	for i, src := range roverSource {
		got := h.Apply(src)
		test.That(t, got.X, test.ShouldAlmostEqual, roverDestination[i].X, 1e-6)
		test.That(t, got.Y, test.ShouldAlmostEqual, roverDestination[i].Y, 1e-6)
	}

	inv, err := h.Inverse()
	test.That(t, err, test.ShouldBeNil)
	for i, dst := range roverDestination {
		got := inv.Apply(dst)
		test.That(t, got.X, test.ShouldAlmostEqual, roverSource[i].X, 1e-6)
		test.That(t, got.Y, test.ShouldAlmostEqual, roverSource[i].Y, 1e-6)
	}

	// straight lines on the ground stay straight: the midpoint of a source edge lands on the destination edge
	mid := h.Apply(r2.Point{X: (14 + 301) / 2.0, Y: 140})
	test.That(t, mid.Y, test.ShouldAlmostEqual, 154, 1e-6)
}

func TestEstimateDegenerate(t *testing.T) {
	collinear := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 0, Y: 5}}
	square := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}

	_, err := EstimatePerspectiveTransform(collinear, square)
	test.That(t, errors.Is(err, ErrDegeneratePoints), test.ShouldBeTrue)

	_, err = EstimatePerspectiveTransform(square, collinear)
	test.That(t, errors.Is(err, ErrDegeneratePoints), test.ShouldBeTrue)

	repeated := []r2.Point{{X: 3, Y: 3}, {X: 3, Y: 3}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	_, err = EstimatePerspectiveTransform(repeated, square)
	test.That(t, errors.Is(err, ErrDegeneratePoints), test.ShouldBeTrue)

	_, err = EstimatePerspectiveTransform(square[:3], square[:3])
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrDegeneratePoints), test.ShouldBeFalse)
}

func TestInverseSingular(t *testing.T) {
	h, err := NewHomography(make([]float64, 9))
	test.That(t, err, test.ShouldBeNil)
	_, err = h.Inverse()
	test.That(t, errors.Is(err, ErrDegeneratePoints), test.ShouldBeTrue)
}
