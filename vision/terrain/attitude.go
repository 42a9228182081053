package terrain

import (
	"github.com/golang/geo/r2"

	"go.viam.com/rover/utils"
)

// Pose is the rover's position in world units and its attitude in degrees.
type Pose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
}

// Position returns the world position as a point.
func (p Pose) Position() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// Finite reports whether every component of the pose is a real number.
func (p Pose) Finite() bool {
	return utils.IsFinite(p.X, p.Y, p.Yaw, p.Roll, p.Pitch)
}

// LevelWithin reports whether an angle in degrees is within tolerance of level, on either side of zero.
func LevelWithin(angle, tolerance float64) bool {
	return utils.AngleDiffDeg(utils.ModAngDeg(angle), 0) < tolerance
}

// GateResult explains the attitude gate's decision for one frame.
type GateResult int

// Possible attitude gate results.
const (
	GateOpen GateResult = iota
	GateNonFinitePose
	GateRollExceeded
	GatePitchExceeded
)

func (g GateResult) String() string {
	switch g {
	case GateOpen:
		return "open"
	case GateNonFinitePose:
		return "non-finite pose"
	case GateRollExceeded:
		return "roll exceeds tolerance"
	case GatePitchExceeded:
		return "pitch exceeds tolerance"
	default:
		return "unknown"
	}
}

// AttitudeGate decides whether a frame taken at pose may update the world map. Tilted frames break the flat
// ground assumption of the rectification, and poses holding NaN or infinity would produce undefined cells.
func AttitudeGate(pose Pose, tolerance float64) GateResult {
	switch {
	case !pose.Finite():
		return GateNonFinitePose
	case !LevelWithin(pose.Roll, tolerance):
		return GateRollExceeded
	case !LevelWithin(pose.Pitch, tolerance):
		return GatePitchExceeded
	default:
		return GateOpen
	}
}
