package terrain

import (
	"github.com/pkg/errors"

	"go.viam.com/rover/rimage"
	"go.viam.com/rover/slam"
)

// State is the shared vehicle record the rover control loop hands to perception once per frame.
type State struct {
	Image *rimage.Image
	Pose  Pose

	// WorldMap accumulates across frames for the whole mission.
	WorldMap *slam.WorldMap
	// VisionOverlay is rewritten every frame.
	VisionOverlay *rimage.Image

	NavDistances []float64
	NavBearings  []float64
}

// UpdateState processes the state's frame and writes the results back into it: the overlay and navigation
// summary are replaced, and the world map receives the frame's increments when the attitude gate allows.
func (p *Pipeline) UpdateState(st *State) (*Output, error) {
	if st == nil {
		return nil, errors.New("cannot update a nil state")
	}
	if st.WorldMap == nil {
		return nil, errors.New("state has no world map")
	}
	if st.WorldMap.Size() != p.cfg.WorldSize {
		return nil, errors.Errorf("world map is %d cells wide but perception is configured for %d",
			st.WorldMap.Size(), p.cfg.WorldSize)
	}

	out, err := p.Process(Input{Image: st.Image, Pose: st.Pose})
	if err != nil {
		return nil, err
	}

	if st.VisionOverlay == nil || !st.VisionOverlay.CopyFrom(out.Overlay) {
		st.VisionOverlay = out.Overlay.Clone()
	}
	st.NavDistances = out.Nav.Distances
	st.NavBearings = out.Nav.Bearings
	if out.MapUpdated() {
		st.WorldMap.Apply(out.Update)
	}
	return out, nil
}
