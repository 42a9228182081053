package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"go.viam.com/rover/data"
	"go.viam.com/rover/rimage"
	"go.viam.com/rover/slam"
	"go.viam.com/rover/vision/terrain"
)

// replayPrefetch is how many decoded frames may wait for the pipeline.
const replayPrefetch = 4

// ReplaySummary reports how a recorded run went through perception.
type ReplaySummary struct {
	Frames  int
	Updated int
	Gated   map[terrain.GateResult]int
	Stats   slam.Stats
}

// Replay feeds every record through the pipeline into the state's world map, in order. Frames are decoded
// ahead of the pipeline in a separate goroutine.
func Replay(ctx context.Context, p *terrain.Pipeline, records []data.Record, st *terrain.State) (ReplaySummary, error) {
	summary := ReplaySummary{Gated: map[terrain.GateResult]int{}}
	frames := make(chan *rimage.Image, replayPrefetch)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(frames)
		for i, rec := range records {
			img, err := rec.LoadImage()
			if err != nil {
				return errors.Wrapf(err, "frame %d", i)
			}
			select {
			case frames <- img:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	g.Go(func() error {
		i := 0
		for img := range frames {
			st.Image = img
			st.Pose = records[i].Pose
			out, err := p.UpdateState(st)
			if err != nil {
				return errors.Wrapf(err, "frame %d", i)
			}
			summary.Frames++
			if out.MapUpdated() {
				summary.Updated++
			} else {
				summary.Gated[out.Gate]++
			}
			i++
		}
		return nil
	})
	err := g.Wait()
	summary.Stats = st.WorldMap.Stats()
	return summary, err
}

func (r *runner) replayAction(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	records, err := data.ReadRunLog(c.Args().First())
	if err != nil {
		return err
	}
	if limit := c.Int(flagLimit); limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	if len(records) == 0 {
		return errors.New("run log has no frames")
	}

	wm, err := r.pipeline.NewWorldMap()
	if err != nil {
		return err
	}
	st := &terrain.State{WorldMap: wm}
	r.logger.Infow("replaying run", "frames", len(records))
	summary, err := Replay(c.Context, r.pipeline, records, st)
	if err != nil {
		return err
	}
	r.logger.Infow("replay done", "frames", summary.Frames, "updated", summary.Updated)

	dir := c.Path(flagOutput)
	if err := rimage.WriteImageToFile(filepath.Join(dir, WorldMapFile), rimage.Upscale(wm.ToImage(), c.Int(flagUpscale))); err != nil {
		return err
	}
	if err := rimage.WriteImageToFile(filepath.Join(dir, OverlayFile), st.VisionOverlay); err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"Frames", "Map Updates", "Skipped", "Reason"})
	t.AppendRow(table.Row{summary.Frames, summary.Updated, summary.Frames - summary.Updated, skipReasons(summary)})
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"Layer", "Cells"})
	t.AppendRows([]table.Row{
		{slam.ObstacleLayer, summary.Stats.Obstacle},
		{slam.SampleLayer, summary.Stats.Sample},
		{slam.NavigableLayer, summary.Stats.Navigable},
	})
	t.Render()

	printNav(c.App.Writer, terrain.NavSummary{Distances: st.NavDistances, Bearings: st.NavBearings})
	return nil
}

func skipReasons(summary ReplaySummary) string {
	var reasons string
	for _, gate := range []terrain.GateResult{terrain.GateNonFinitePose, terrain.GateRollExceeded, terrain.GatePitchExceeded} {
		n := summary.Gated[gate]
		if n == 0 {
			continue
		}
		if reasons != "" {
			reasons += ", "
		}
		reasons += fmt.Sprintf("%s (%d)", gate, n)
	}
	return reasons
}
