package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestAngles(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)

	test.That(t, ModAngDeg(-1), test.ShouldAlmostEqual, 359)
	test.That(t, ModAngDeg(721), test.ShouldAlmostEqual, 1)
	test.That(t, ModAngDeg(360), test.ShouldAlmostEqual, 0)

	test.That(t, AngleDiffDeg(359, 1), test.ShouldAlmostEqual, 2)
	test.That(t, AngleDiffDeg(1, 359), test.ShouldAlmostEqual, 2)
	test.That(t, AngleDiffDeg(90, 270), test.ShouldAlmostEqual, 180)
	test.That(t, AngleDiffDeg(0, 0), test.ShouldAlmostEqual, 0)
}

func TestFloorToCell(t *testing.T) {
	for _, tc := range []struct {
		v    float64
		size int
		out  int
	}{
		{0, 200, 0},
		{0.99, 200, 0},
		{1, 200, 1},
		{101.5, 200, 101},
		{-0.5, 200, 0},
		{-30, 200, 0},
		{199.9, 200, 199},
		{250, 200, 199},
		{math.NaN(), 200, 0},
		{math.Inf(1), 200, 199},
		{math.Inf(-1), 200, 0},
		{7.5, 1, 0},
	} {
		test.That(t, FloorToCell(tc.v, tc.size), test.ShouldEqual, tc.out)
	}
}

func TestClampInt(t *testing.T) {
	test.That(t, ClampInt(-3, 0, 255), test.ShouldEqual, 0)
	test.That(t, ClampInt(300, 0, 255), test.ShouldEqual, 255)
	test.That(t, ClampInt(7, 0, 255), test.ShouldEqual, 7)
}

func TestIsFinite(t *testing.T) {
	test.That(t, IsFinite(1, 2, 3), test.ShouldBeTrue)
	test.That(t, IsFinite(), test.ShouldBeTrue)
	test.That(t, IsFinite(1, math.NaN()), test.ShouldBeFalse)
	test.That(t, IsFinite(math.Inf(-1)), test.ShouldBeFalse)
}
