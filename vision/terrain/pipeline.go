package terrain

import (
	"image"
	"sync"

	"github.com/pkg/errors"

	"go.viam.com/rover/logging"
	"go.viam.com/rover/rimage"
	"go.viam.com/rover/rimage/transform"
	"go.viam.com/rover/slam"
)

var (
	// ErrNilImage is returned when a frame is missing.
	ErrNilImage = errors.New("perception input has no image")
	// ErrFrameTooSmall is returned when a frame cannot contain the calibrated rectification corners.
	ErrFrameTooSmall = errors.New("frame is too small for the rectification corners")
)

// Input is everything the pipeline needs about one frame. The pipeline never retains or modifies it.
type Input struct {
	Image *rimage.Image
	Pose  Pose
}

// Output is the result of processing one frame.
type Output struct {
	// Warped is the rectified top-down view.
	Warped *rimage.Image
	// Overlay marks obstacles, samples and navigable ground in the red, green and blue channels.
	Overlay *rimage.Image
	Masks   map[Class]*Mask
	// Points holds the rover centric points per class, range limited where the class asks for it.
	Points map[Class]PointSet
	// Update holds the world map increments; it is nil when the attitude gate rejected the frame.
	Update *slam.Update
	Gate   GateResult
	Nav    NavSummary
}

// MapUpdated reports whether the frame produced world map increments.
func (o *Output) MapUpdated() bool {
	return o.Update != nil
}

// Pipeline turns frames into terrain classifications and world map updates. Calls are expected to be
// serialized by the caller; the only shared state is a cache of the rectification homography.
type Pipeline struct {
	cfg         Config
	logger      logging.Logger
	classifiers map[Class]Classifier

	mu         sync.Mutex
	cachedSize image.Point
	cached     *transform.Homography
}

// NewPipeline validates cfg and returns a pipeline using it.
func NewPipeline(cfg *Config, logger logging.Logger) (*Pipeline, error) {
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}
	if err := cfg.Validate("perception"); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Global().Sublogger("terrain")
	}
	c := *cfg
	c.Source = append([]Corner(nil), cfg.Source...)
	return &Pipeline{
		cfg:    c,
		logger: logger,
		classifiers: map[Class]Classifier{
			Obstacle:  BelowThreshold(c.ObstacleThreshold),
			Sample:    SampleThreshold(c.SampleThreshold),
			Navigable: AboveThreshold(c.NavigableThreshold),
		},
	}, nil
}

// Config returns the pipeline's configuration.
func (p *Pipeline) Config() Config {
	c := p.cfg
	c.Source = append([]Corner(nil), p.cfg.Source...)
	return c
}

// NewWorldMap returns an empty world map sized for this pipeline.
func (p *Pipeline) NewWorldMap() (*slam.WorldMap, error) {
	return slam.NewWorldMap(p.cfg.WorldSize)
}

func (p *Pipeline) checkFrame(width, height int) error {
	d, b := p.cfg.DestinationSize, p.cfg.BottomOffset
	if float64(width) < 2*d || float64(height) < 2*d+b {
		return errors.Wrapf(ErrFrameTooSmall, "%dx%d frame cannot hold a %vx%v destination square %v above the bottom",
			width, height, 2*d, 2*d, b)
	}
	for _, c := range p.cfg.Source {
		if c.X < 0 || c.Y < 0 || c.X > float64(width-1) || c.Y > float64(height-1) {
			return errors.Wrapf(ErrFrameTooSmall, "source corner (%v,%v) lies outside a %dx%d frame", c.X, c.Y, width, height)
		}
	}
	return nil
}

func (p *Pipeline) homography(width, height int) (*transform.Homography, error) {
	size := image.Point{width, height}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cached != nil && p.cachedSize == size {
		return p.cached, nil
	}
	h, err := transform.EstimatePerspectiveTransform(p.cfg.SourcePoints(), p.cfg.DestinationPoints(width, height))
	if err != nil {
		return nil, err
	}
	p.cached, p.cachedSize = h, size
	return h, nil
}

// Rectify warps a raw frame into the top-down view of the ground in front of the rover. The result has the
// same size as the frame.
func (p *Pipeline) Rectify(img *rimage.Image) (*rimage.Image, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if err := p.checkFrame(img.Width(), img.Height()); err != nil {
		return nil, err
	}
	h, err := p.homography(img.Width(), img.Height())
	if err != nil {
		return nil, err
	}
	return transform.WarpImage(img, h, image.Point{img.Width(), img.Height()}, p.cfg.border())
}

// Process runs every stage on one frame. The navigation summary is always computed; world map increments
// are only produced when the attitude gate is open.
func (p *Pipeline) Process(in Input) (*Output, error) {
	warped, err := p.Rectify(in.Image)
	if err != nil {
		return nil, err
	}

	out := &Output{
		Warped: warped,
		Masks:  make(map[Class]*Mask, len(Classes)),
		Points: make(map[Class]PointSet, len(Classes)),
	}
	for _, class := range Classes {
		mask := ClassifyImage(warped, p.classifiers[class])
		pts := RoverCoords(mask)
		if class.RangeLimited() {
			pts = LimitRange(pts, p.cfg.TrustedRadius)
		}
		out.Masks[class] = mask
		out.Points[class] = pts
	}
	out.Overlay = Overlay(out.Masks[Obstacle], out.Masks[Sample], out.Masks[Navigable])
	out.Nav = ToPolar(out.Points[Navigable])

	out.Gate = AttitudeGate(in.Pose, p.cfg.AttitudeTolerance)
	switch out.Gate {
	case GateOpen:
		out.Update = &slam.Update{}
		for _, class := range Classes {
			out.Update.Add(class.Layer(), ToWorld(out.Points[class], in.Pose, p.cfg.Scale, p.cfg.WorldSize)...)
		}
	case GateNonFinitePose:
		p.logger.Warnw("rejecting world map update", "reason", out.Gate.String(),
			"x", in.Pose.X, "y", in.Pose.Y, "yaw", in.Pose.Yaw, "roll", in.Pose.Roll, "pitch", in.Pose.Pitch)
	case GateRollExceeded, GatePitchExceeded:
		p.logger.Debugw("skipping world map update", "reason", out.Gate.String(),
			"roll", in.Pose.Roll, "pitch", in.Pose.Pitch)
	}

	p.logger.Debugw("processed frame",
		"obstacle", len(out.Points[Obstacle]),
		"sample", len(out.Points[Sample]),
		"navigable", len(out.Points[Navigable]),
		"map_updated", out.MapUpdated(),
	)
	return out, nil
}
