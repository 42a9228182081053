// Package slam holds the persistent top-down world map the rover accumulates while exploring.
package slam

import (
	"image"
	"sync"

	"github.com/pkg/errors"

	"go.viam.com/rover/utils"
)

// MaxConfidence is the ceiling of every world map counter.
const MaxConfidence = 255

// Cell is the confidence of one world map square in each layer.
type Cell struct {
	Obstacle  uint8
	Sample    uint8
	Navigable uint8
}

// Get returns the counter of the given layer.
func (c Cell) Get(layer Layer) uint8 {
	switch layer {
	case ObstacleLayer:
		return c.Obstacle
	case SampleLayer:
		return c.Sample
	case NavigableLayer:
		return c.Navigable
	default:
		return 0
	}
}

func (c *Cell) increment(layer Layer, n int) {
	var v *uint8
	switch layer {
	case ObstacleLayer:
		v = &c.Obstacle
	case SampleLayer:
		v = &c.Sample
	case NavigableLayer:
		v = &c.Navigable
	default:
		return
	}
	*v = uint8(utils.ClampInt(int(*v)+n, 0, MaxConfidence))
}

// NewWorldMap returns an empty size x size world map.
func NewWorldMap(size int) (*WorldMap, error) {
	if size <= 0 {
		return nil, errors.Errorf("world map size must be positive, got %d", size)
	}
	return &WorldMap{
		size:  size,
		cells: make([]Cell, size*size),
	}, nil
}

// WorldMap is a square grid of confidence counters in the fixed world frame. X indexes columns and Y rows.
// Counters only change through Apply and Reset, which keep every value within [0, MaxConfidence].
type WorldMap struct {
	mu    sync.Mutex
	size  int
	cells []Cell
}

// Size returns the side length of the map.
func (wm *WorldMap) Size() int {
	return wm.size
}

// Bounds returns the rectangle of valid cells.
func (wm *WorldMap) Bounds() image.Rectangle {
	return image.Rect(0, 0, wm.size, wm.size)
}

func (wm *WorldMap) k(x, y int) int {
	return y*wm.size + x
}

// At returns the cell at column x, row y; out of range cells read as empty.
func (wm *WorldMap) At(x, y int) Cell {
	if !(image.Point{x, y}).In(wm.Bounds()) {
		return Cell{}
	}
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.cells[wm.k(x, y)]
}

// Apply merges an update into the map. Every listed cell is first clamped onto the grid, each occurrence
// increments its layer once, and counters saturate at MaxConfidence once all layers are applied.
func (wm *WorldMap) Apply(u *Update) {
	if u == nil {
		return
	}
	counts := make(map[int]*[numLayers]int)
	for _, layer := range Layers {
		for _, p := range u.Cells(layer) {
			key := wm.k(utils.ClampInt(p.X, 0, wm.size-1), utils.ClampInt(p.Y, 0, wm.size-1))
			c, ok := counts[key]
			if !ok {
				c = &[numLayers]int{}
				counts[key] = c
			}
			c[layer]++
		}
	}

	wm.mu.Lock()
	defer wm.mu.Unlock()
	for key, c := range counts {
		for _, layer := range Layers {
			if c[layer] != 0 {
				wm.cells[key].increment(layer, c[layer])
			}
		}
	}
}

// Iterate visits every cell in row major order until visit returns false.
func (wm *WorldMap) Iterate(visit func(x, y int, c Cell) bool) {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	for y := 0; y < wm.size; y++ {
		for x := 0; x < wm.size; x++ {
			if !visit(x, y, wm.cells[wm.k(x, y)]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the map.
func (wm *WorldMap) Clone() *WorldMap {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	out := &WorldMap{size: wm.size, cells: make([]Cell, len(wm.cells))}
	copy(out.cells, wm.cells)
	return out
}

// Equal reports whether two maps hold identical counters.
func (wm *WorldMap) Equal(other *WorldMap) bool {
	if wm == other {
		return true
	}
	a, b := wm.Clone(), other.Clone()
	if a.size != b.size {
		return false
	}
	for i := range a.cells {
		if a.cells[i] != b.cells[i] {
			return false
		}
	}
	return true
}

// Reset zeroes every counter.
func (wm *WorldMap) Reset() {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	for i := range wm.cells {
		wm.cells[i] = Cell{}
	}
}

// Stats counts the cells holding a non zero counter in each layer.
type Stats struct {
	Obstacle  int
	Sample    int
	Navigable int
}

// Stats returns how many cells have been observed in each layer.
func (wm *WorldMap) Stats() Stats {
	var s Stats
	wm.Iterate(func(_, _ int, c Cell) bool {
		if c.Obstacle > 0 {
			s.Obstacle++
		}
		if c.Sample > 0 {
			s.Sample++
		}
		if c.Navigable > 0 {
			s.Navigable++
		}
		return true
	})
	return s
}
