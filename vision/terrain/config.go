package terrain

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rover/rimage/transform"
	"go.viam.com/rover/utils"
)

// Corner is one calibrated point of the rectification trapezoid, in raw image pixels.
type Corner struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Config holds the deployment constants of the perception pipeline. They are calibrated once for a camera
// and mount and never change at runtime.
type Config struct {
	NavigableThreshold RGB `json:"navigable_threshold" yaml:"navigable_threshold"`
	ObstacleThreshold  RGB `json:"obstacle_threshold" yaml:"obstacle_threshold"`
	SampleThreshold    RGB `json:"sample_threshold" yaml:"sample_threshold"`

	// Source is the trapezoid of flat ground in the raw frame: bottom left, bottom right, top right, top left.
	Source []Corner `json:"source" yaml:"source"`
	// DestinationSize is half the side of the square the trapezoid is rectified to.
	DestinationSize float64 `json:"destination_size" yaml:"destination_size"`
	// BottomOffset is the gap between the square and the bottom edge of the rectified frame.
	BottomOffset float64 `json:"bottom_offset" yaml:"bottom_offset"`
	// Border is how rectification fills pixels the camera never saw: "replicate" or "constant" (black).
	Border string `json:"border" yaml:"border"`

	TrustedRadius     float64 `json:"trusted_radius" yaml:"trusted_radius"`
	Scale             float64 `json:"scale" yaml:"scale"`
	WorldSize         int     `json:"world_size" yaml:"world_size"`
	AttitudeTolerance float64 `json:"attitude_tolerance_degs" yaml:"attitude_tolerance_degs"`
}

// Border modes accepted in Config.
const (
	BorderReplicate = "replicate"
	BorderConstant  = "constant"
)

// DefaultConfig returns the calibration of the stock rover camera.
func DefaultConfig() Config {
	return Config{
		NavigableThreshold: RGB{160, 160, 160},
		ObstacleThreshold:  RGB{120, 120, 120},
		SampleThreshold:    RGB{100, 100, 50},
		Source:             []Corner{{14, 140}, {301, 140}, {200, 95}, {118, 95}},
		DestinationSize:    5,
		BottomOffset:       6,
		Border:             BorderReplicate,
		TrustedRadius:      50,
		Scale:              10,
		WorldSize:          200,
		AttitudeTolerance:  2,
	}
}

// ConfigFromAttributes decodes an attribute map on top of the defaults. Keys follow the json field names.
func ConfigFromAttributes(attrs map[string]interface{}) (*Config, error) {
	cfg := DefaultConfig()
	if len(attrs) == 0 {
		return &cfg, nil
	}
	for _, key := range []string{"navigable_threshold", "obstacle_threshold", "sample_threshold"} {
		v, ok := attrs[key]
		if !ok {
			continue
		}
		switch v.(type) {
		case map[string]interface{}, RGB, *RGB:
		default:
			return nil, errors.Wrapf(utils.NewUnexpectedTypeError(map[string]interface{}{}, v), "attribute %q", key)
		}
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      &cfg,
		ErrorUnused: true,
		ZeroFields:  true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attrs); err != nil {
		return nil, errors.Wrap(err, "cannot decode perception attributes")
	}
	return &cfg, nil
}

// SourcePoints returns the source trapezoid as points.
func (config *Config) SourcePoints() []r2.Point {
	pts := make([]r2.Point, 0, len(config.Source))
	for _, c := range config.Source {
		pts = append(pts, r2.Point{X: c.X, Y: c.Y})
	}
	return pts
}

// DestinationPoints returns where the source trapezoid lands in a rectified frame of the given size, in the
// same corner order as Source.
func (config *Config) DestinationPoints(width, height int) []r2.Point {
	cx := float64(width) / 2
	bottom := float64(height) - config.BottomOffset
	top := bottom - 2*config.DestinationSize
	return []r2.Point{
		{X: cx - config.DestinationSize, Y: bottom},
		{X: cx + config.DestinationSize, Y: bottom},
		{X: cx + config.DestinationSize, Y: top},
		{X: cx - config.DestinationSize, Y: top},
	}
}

func (config *Config) finiteCorners() bool {
	for _, c := range config.Source {
		if !utils.IsFinite(c.X, c.Y) {
			return false
		}
	}
	return true
}

func (config *Config) border() transform.Border {
	if config.Border == BorderConstant {
		return transform.BorderConstant
	}
	return transform.BorderReplicate
}

// Validate ensures all parts of the config are valid.
func (config *Config) Validate(path string) error {
	var errs error
	field := func(name string) string {
		return fmt.Sprintf("%s.%s", path, name)
	}

	switch {
	case len(config.Source) == 0:
		errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError(path, "source"))
	case len(config.Source) != 4:
		errs = multierr.Append(errs, utils.NewConfigValidationError(field("source"),
			errors.Errorf("need exactly 4 corners, got %d", len(config.Source))))
	case !config.finiteCorners():
		errs = multierr.Append(errs, utils.NewConfigValidationError(field("source"),
			errors.New("corners must be finite")))
	case !utils.IsFinite(config.DestinationSize, config.BottomOffset):
		// reported below; the square cannot be placed
	default:
		// translation and scale do not change degeneracy, so any frame large enough to hold the square will do
		size := 2*config.DestinationSize + config.BottomOffset
		dst := config.DestinationPoints(int(size)+1, int(size)+1)
		if _, err := transform.EstimatePerspectiveTransform(config.SourcePoints(), dst); err != nil {
			errs = multierr.Append(errs, utils.NewConfigValidationError(field("source"), err))
		}
	}
	if !utils.IsFinite(config.DestinationSize) || config.DestinationSize <= 0 {
		errs = multierr.Append(errs, utils.NewConfigValidationError(field("destination_size"),
			errors.Errorf("must be a positive finite number, got %v", config.DestinationSize)))
	}
	if !utils.IsFinite(config.BottomOffset) || config.BottomOffset < 0 {
		errs = multierr.Append(errs, utils.NewConfigValidationError(field("bottom_offset"),
			errors.Errorf("must be a finite non-negative number, got %v", config.BottomOffset)))
	}
	switch config.Border {
	case "", BorderReplicate, BorderConstant:
	default:
		errs = multierr.Append(errs, utils.NewConfigValidationError(field("border"),
			errors.Errorf("unknown border mode %q", config.Border)))
	}
	if !utils.IsFinite(config.TrustedRadius) || config.TrustedRadius <= 0 {
		errs = multierr.Append(errs, utils.NewConfigValidationError(field("trusted_radius"),
			errors.Errorf("must be a positive finite number, got %v", config.TrustedRadius)))
	}
	if !utils.IsFinite(config.Scale) || config.Scale <= 0 {
		errs = multierr.Append(errs, utils.NewConfigValidationError(field("scale"),
			errors.Errorf("must be a positive finite number, got %v", config.Scale)))
	}
	if config.WorldSize <= 0 {
		errs = multierr.Append(errs, utils.NewConfigValidationError(field("world_size"),
			errors.Errorf("must be positive, got %d", config.WorldSize)))
	}
	if !(config.AttitudeTolerance > 0 && config.AttitudeTolerance <= 180) {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path,
			utils.NewOutOfRangeError("attitude_tolerance_degs", config.AttitudeTolerance, 0, 180)))
	}
	return errs
}
