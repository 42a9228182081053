package slam

import (
	"fmt"
	"image"
)

// Layer names one confidence channel of the world map.
type Layer int

// The layers of a world map cell, in channel order.
const (
	ObstacleLayer Layer = iota
	SampleLayer
	NavigableLayer
	numLayers
)

// Layers lists every layer in channel order.
var Layers = []Layer{ObstacleLayer, SampleLayer, NavigableLayer}

func (l Layer) String() string {
	switch l {
	case ObstacleLayer:
		return "obstacle"
	case SampleLayer:
		return "sample"
	case NavigableLayer:
		return "navigable"
	default:
		return fmt.Sprintf("layer(%d)", int(l))
	}
}

func (l Layer) valid() bool {
	return l >= ObstacleLayer && l < numLayers
}

// An Update is the set of per-layer increments produced from one frame. A cell listed n times
// contributes n increments.
type Update struct {
	cells [numLayers][]image.Point
}

// Add schedules one increment of layer for every cell given.
func (u *Update) Add(layer Layer, cells ...image.Point) {
	if !layer.valid() {
		return
	}
	u.cells[layer] = append(u.cells[layer], cells...)
}

// Cells returns the cells scheduled for layer.
func (u *Update) Cells(layer Layer) []image.Point {
	if !layer.valid() {
		return nil
	}
	return u.cells[layer]
}

// Len returns the total number of increments in the update.
func (u *Update) Len() int {
	n := 0
	for _, c := range u.cells {
		n += len(c)
	}
	return n
}
