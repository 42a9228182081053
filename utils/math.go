package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// AngleDiffDeg returns the closest difference from the two given
// angles. The arguments are commutative.
func AngleDiffDeg(a1, a2 float64) float64 {
	return float64(180) - math.Abs(math.Abs(a1-a2)-float64(180))
}

// ModAngDeg wraps an angle in degrees into [0, 360).
func ModAngDeg(ang float64) float64 {
	return math.Mod(math.Mod((ang), 360)+360, 360)
}

// ClampInt returns n limited to the closed interval [lo, hi].
func ClampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// FloorToCell converts a continuous coordinate to a grid index on [0, size).
// The coordinate is floored and then clamped to the grid, so anything left of
// zero lands in cell 0 and anything past the end lands in the last cell. NaN
// maps to cell 0.
func FloorToCell(v float64, size int) int {
	if math.IsNaN(v) {
		return 0
	}
	f := math.Floor(v)
	switch {
	case f <= 0:
		return 0
	case f >= float64(size-1):
		return size - 1
	default:
		return int(f)
	}
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
