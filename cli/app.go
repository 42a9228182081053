// Package cli contains the perceive command line tool.
package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/rover/config"
	"go.viam.com/rover/logging"
	"go.viam.com/rover/rimage"
	"go.viam.com/rover/utils"
	"go.viam.com/rover/vision/terrain"
)

const (
	flagConfig  = "config"
	flagDebug   = "debug"
	flagOutput  = "output"
	flagImage   = "image"
	flagX       = "x"
	flagY       = "y"
	flagYaw     = "yaw"
	flagRoll    = "roll"
	flagPitch   = "pitch"
	flagUpscale = "upscale"
	flagLimit   = "limit"
)

// Output file names.
const (
	OverlayFile  = "overlay.png"
	WarpedFile   = "warped.png"
	HeadingFile  = "heading.png"
	WorldMapFile = "worldmap.png"
)

// runner holds what every command needs once the global flags are parsed.
type runner struct {
	cfg      *config.Config
	logger   logging.Logger
	pipeline *terrain.Pipeline
}

func (r *runner) setup(c *cli.Context) error {
	r.cfg = config.Default()
	if path := c.Path(flagConfig); path != "" {
		cfg, err := config.Read(path)
		if err != nil {
			return err
		}
		r.cfg = cfg
	}
	if r.logger == nil {
		r.logger = logging.NewLogger("perceive")
	}
	r.logger.SetLevel(r.cfg.LogLevel)
	if c.Bool(flagDebug) {
		r.logger.SetLevel(logging.DEBUG)
	}

	logging.ReplaceGlobal(r.logger)

	pipeline, err := terrain.NewPipeline(&r.cfg.Perception, nil)
	if err != nil {
		return err
	}
	r.pipeline = pipeline
	return nil
}

// NewApp returns the perceive application writing its reports to out and errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return newApp(out, errOut, nil)
}

func newApp(out, errOut io.Writer, logger logging.Logger) *cli.App {
	r := &runner{logger: logger}
	outputFlag := &cli.PathFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Value:   ".",
		Usage:   "directory to write images to",
	}
	return &cli.App{
		Name:      "perceive",
		Usage:     "turn rover camera frames into terrain maps",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:      flagConfig,
				Aliases:   []string{"c"},
				Usage:     "load configuration from `FILE`",
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: r.setup,
		After: func(*cli.Context) error {
			if r.logger != nil {
				//nolint:errcheck
				r.logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "frame",
				Usage: "classify a single frame",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     flagImage,
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "camera frame to process",
					},
					&cli.Float64Flag{Name: flagX, Usage: "rover x position in world units"},
					&cli.Float64Flag{Name: flagY, Usage: "rover y position in world units"},
					&cli.Float64Flag{Name: flagYaw, Usage: "rover yaw in degrees"},
					&cli.Float64Flag{Name: flagRoll, Usage: "rover roll in degrees"},
					&cli.Float64Flag{Name: flagPitch, Usage: "rover pitch in degrees"},
					outputFlag,
				},
				Action: r.frameAction,
			},
			{
				Name:      "replay",
				Usage:     "replay a recorded run into a world map",
				ArgsUsage: "<run log>",
				Flags: []cli.Flag{
					outputFlag,
					&cli.IntFlag{
						Name:  flagUpscale,
						Value: 4,
						Usage: "scale factor applied to the world map image",
					},
					&cli.IntFlag{
						Name:  flagLimit,
						Usage: "only replay the first `N` frames",
					},
				},
				Action: r.replayAction,
			},
		},
	}
}

func (r *runner) frameAction(c *cli.Context) error {
	img, err := rimage.ReadImageFromFile(c.Path(flagImage))
	if err != nil {
		return err
	}
	pose := terrain.Pose{
		X:     c.Float64(flagX),
		Y:     c.Float64(flagY),
		Yaw:   c.Float64(flagYaw),
		Roll:  c.Float64(flagRoll),
		Pitch: c.Float64(flagPitch),
	}
	out, err := r.pipeline.Process(terrain.Input{Image: img, Pose: pose})
	if err != nil {
		return err
	}

	dir := c.Path(flagOutput)
	if err := rimage.WriteImageToFile(filepath.Join(dir, OverlayFile), out.Overlay); err != nil {
		return err
	}
	if err := rimage.WriteImageToFile(filepath.Join(dir, WarpedFile), out.Warped); err != nil {
		return err
	}
	if err := rimage.WriteImageToFile(filepath.Join(dir, HeadingFile), terrain.DrawHeading(out.Warped, out.Nav)); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "obstacle: %d sample: %d navigable: %d\n",
		len(out.Points[terrain.Obstacle]), len(out.Points[terrain.Sample]), len(out.Points[terrain.Navigable]))
	printNav(c.App.Writer, out.Nav)
	fmt.Fprintf(c.App.Writer, "attitude gate: %s\n", out.Gate)
	return nil
}

func printNav(w io.Writer, nav terrain.NavSummary) {
	bearing, err := nav.MeanBearing()
	if err != nil {
		fmt.Fprintln(w, "no navigable terrain")
		return
	}
	distance, err := nav.MeanDistance()
	if err != nil {
		fmt.Fprintln(w, "no navigable terrain")
		return
	}
	fmt.Fprintf(w, "mean bearing: %.2f degs mean distance: %.2f\n", utils.RadToDeg(bearing), distance)
}

func checkArgs(c *cli.Context, n int) error {
	if c.Args().Len() != n {
		return errors.Errorf("expected %d argument(s) but got %d", n, c.Args().Len())
	}
	return nil
}
