// Package terrain turns one rover camera frame and pose into a classification of the ground ahead and
// the world map increments it implies.
package terrain

import (
	"fmt"

	"go.viam.com/rover/slam"
)

// Class is one of the terrain categories the pipeline detects.
type Class int

// The terrain classes, in world map channel order.
const (
	Obstacle Class = iota
	Sample
	Navigable
)

// Classes lists every class in the order the pipeline processes them.
var Classes = []Class{Obstacle, Sample, Navigable}

func (c Class) String() string {
	switch c {
	case Obstacle:
		return "obstacle"
	case Sample:
		return "sample"
	case Navigable:
		return "navigable"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Layer returns the world map layer the class accumulates into.
func (c Class) Layer() slam.Layer {
	switch c {
	case Obstacle:
		return slam.ObstacleLayer
	case Sample:
		return slam.SampleLayer
	case Navigable:
		return slam.NavigableLayer
	default:
		return slam.Layer(-1)
	}
}

// RangeLimited reports whether the class is trimmed to the trusted radius before it reaches the world map.
// Samples are sparse and worth recording at any range.
func (c Class) RangeLimited() bool {
	return c != Sample
}
