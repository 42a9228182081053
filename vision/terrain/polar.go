package terrain

import (
	"math"

	"github.com/montanaflynn/stats"
)

// NavSummary describes the navigable terrain in front of the rover as distances and bearings. Bearings are in
// radians with 0 straight ahead and positive to the left.
type NavSummary struct {
	Distances []float64
	Bearings  []float64
}

// ToPolar converts rover centric points to a navigation summary.
func ToPolar(ps PointSet) NavSummary {
	ns := NavSummary{
		Distances: make([]float64, len(ps)),
		Bearings:  make([]float64, len(ps)),
	}
	for i, p := range ps {
		ns.Distances[i] = p.Norm()
		ns.Bearings[i] = math.Atan2(p.Y, p.X)
	}
	return ns
}

// Len returns the number of navigable points summarized.
func (ns NavSummary) Len() int {
	return len(ns.Distances)
}

// MeanBearing returns the average bearing, or an error when no terrain is navigable.
func (ns NavSummary) MeanBearing() (float64, error) {
	return stats.Mean(ns.Bearings)
}

// MeanDistance returns the average distance, or an error when no terrain is navigable.
func (ns NavSummary) MeanDistance() (float64, error) {
	return stats.Mean(ns.Distances)
}
