package terrain

import (
	"math"
	"testing"

	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/rover/logging"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	test.That(t, cfg.Validate("perception"), test.ShouldBeNil)

	cfg.Border = ""
	test.That(t, cfg.Validate("perception"), test.ShouldBeNil)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source = nil
	err := cfg.Validate("perception")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"source" is required`)

	cfg = DefaultConfig()
	cfg.Source = []Corner{{0, 0}, {10, 0}, {20, 0}, {0, 10}}
	err = cfg.Validate("perception")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "perception.source")
	test.That(t, err.Error(), test.ShouldContainSubstring, "degenerate")

	cfg = DefaultConfig()
	cfg.Source = cfg.Source[:2]
	cfg.Scale = -1
	cfg.Border = "mirror"
	cfg.AttitudeTolerance = 0
	cfg.WorldSize = 0
	err = cfg.Validate("perception")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, len(multierr.Errors(err)), test.ShouldEqual, 5)
	test.That(t, err.Error(), test.ShouldContainSubstring, "need exactly 4 corners, got 2")
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown border mode "mirror"`)
	test.That(t, err.Error(), test.ShouldContainSubstring, "attitude_tolerance_degs")

	cfg = DefaultConfig()
	cfg.DestinationSize = 0
	cfg.BottomOffset = -2
	cfg.TrustedRadius = 0
	test.That(t, len(multierr.Errors(cfg.Validate("perception"))), test.ShouldBeGreaterThanOrEqualTo, 3)
}

func TestConfigFromAttributes(t *testing.T) {
	cfg, err := ConfigFromAttributes(nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, *cfg, test.ShouldResemble, DefaultConfig())

	cfg, err = ConfigFromAttributes(map[string]interface{}{
		"navigable_threshold": map[string]interface{}{"r": 170, "g": 171, "b": 172},
		"source": []interface{}{
			map[string]interface{}{"x": 10, "y": 150},
			map[string]interface{}{"x": 310.5, "y": 150},
			map[string]interface{}{"x": 210, "y": 90},
			map[string]interface{}{"x": 110, "y": 90},
		},
		"scale":                   20,
		"border":                  "constant",
		"attitude_tolerance_degs": 1.5,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.NavigableThreshold, test.ShouldResemble, RGB{170, 171, 172})
	test.That(t, cfg.Source, test.ShouldResemble, []Corner{{10, 150}, {310.5, 150}, {210, 90}, {110, 90}})
	test.That(t, cfg.Scale, test.ShouldEqual, 20.)
	test.That(t, cfg.Border, test.ShouldEqual, BorderConstant)
	test.That(t, cfg.AttitudeTolerance, test.ShouldEqual, 1.5)
	// untouched fields keep their defaults
	test.That(t, cfg.WorldSize, test.ShouldEqual, 200)
	test.That(t, cfg.ObstacleThreshold, test.ShouldResemble, RGB{120, 120, 120})
	test.That(t, cfg.Validate("perception"), test.ShouldBeNil)

	_, err = ConfigFromAttributes(map[string]interface{}{"sky_threshold": 3})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = ConfigFromAttributes(map[string]interface{}{"scale": "big"})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = ConfigFromAttributes(map[string]interface{}{"obstacle_threshold": 120})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `attribute "obstacle_threshold"`)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expected map[string]interface {} but got int")

	cfg, err = ConfigFromAttributes(map[string]interface{}{"sample_threshold": RGB{90, 90, 40}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.SampleThreshold, test.ShouldResemble, RGB{90, 90, 40})
}

func TestConfigValidateNonFinite(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(cfg *Config)
		field  string
	}{
		{"nan scale", func(cfg *Config) { cfg.Scale = math.NaN() }, "perception.scale"},
		{"inf scale", func(cfg *Config) { cfg.Scale = math.Inf(1) }, "perception.scale"},
		{"inf trusted radius", func(cfg *Config) { cfg.TrustedRadius = math.Inf(1) }, "perception.trusted_radius"},
		{"nan trusted radius", func(cfg *Config) { cfg.TrustedRadius = math.NaN() }, "perception.trusted_radius"},
		{"nan destination size", func(cfg *Config) { cfg.DestinationSize = math.NaN() }, "perception.destination_size"},
		{"inf bottom offset", func(cfg *Config) { cfg.BottomOffset = math.Inf(1) }, "perception.bottom_offset"},
		{"nan attitude tolerance", func(cfg *Config) { cfg.AttitudeTolerance = math.NaN() }, "attitude_tolerance_degs"},
		{"nan corner", func(cfg *Config) { cfg.Source[2].X = math.NaN() }, "corners must be finite"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Source = append([]Corner(nil), cfg.Source...)
			tc.mutate(&cfg)

			err := cfg.Validate("perception")
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, len(multierr.Errors(err)), test.ShouldEqual, 1)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.field)

			p, err := NewPipeline(&cfg, logging.NewTestLogger(t))
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, p, test.ShouldBeNil)
		})
	}
}

func TestDestinationPoints(t *testing.T) {
	cfg := DefaultConfig()
	dst := cfg.DestinationPoints(320, 160)
	test.That(t, len(dst), test.ShouldEqual, 4)
	test.That(t, dst[0].X, test.ShouldEqual, 155.)
	test.That(t, dst[0].Y, test.ShouldEqual, 154.)
	test.That(t, dst[2].X, test.ShouldEqual, 165.)
	test.That(t, dst[2].Y, test.ShouldEqual, 144.)
	test.That(t, len(cfg.SourcePoints()), test.ShouldEqual, 4)
}
