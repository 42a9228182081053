// Package data reads runs recorded by the rover simulator.
package data

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/rover/rimage"
	"go.viam.com/rover/vision/terrain"
)

// RunLogSeparator separates the columns of a run log.
const RunLogSeparator = ';'

// Column names of a run log.
const (
	ColumnPath       = "Path"
	ColumnSteerAngle = "SteerAngle"
	ColumnThrottle   = "Throttle"
	ColumnBrake      = "Brake"
	ColumnSpeed      = "Speed"
	ColumnX          = "X_Position"
	ColumnY          = "Y_Position"
	ColumnPitch      = "Pitch"
	ColumnYaw        = "Yaw"
	ColumnRoll       = "Roll"
)

var requiredColumns = []string{ColumnPath, ColumnX, ColumnY, ColumnPitch, ColumnYaw, ColumnRoll}

// Record is one frame of a recorded run.
type Record struct {
	ImagePath string
	Pose      terrain.Pose

	SteerAngle float64
	Throttle   float64
	Brake      float64
	Speed      float64
}

// LoadImage reads the record's camera frame.
func (r Record) LoadImage() (*rimage.Image, error) {
	return rimage.ReadImageFromFile(r.ImagePath)
}

// ReadRunLog reads the run log at path. Image paths are resolved against the log's directory.
func ReadRunLog(path string) ([]Record, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open run log")
	}
	defer func() {
		//nolint:errcheck
		f.Close()
	}()
	records, err := ParseRunLog(f, filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse run log %q", path)
	}
	return records, nil
}

// ParseRunLog parses a run log with a header row. Columns are found by name so their order does not matter and
// unknown columns are ignored.
func ParseRunLog(r io.Reader, baseDir string) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = RunLogSeparator
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("run log is empty")
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, errors.Errorf("run log is missing the %q column", name)
		}
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		p := rowParser{row: row, columns: columns, line: i + 2}
		rec := Record{
			ImagePath: ResolveImagePath(baseDir, strings.TrimSpace(row[columns[ColumnPath]])),
			Pose: terrain.Pose{
				X:     p.float(ColumnX),
				Y:     p.float(ColumnY),
				Yaw:   p.float(ColumnYaw),
				Pitch: p.float(ColumnPitch),
				Roll:  p.float(ColumnRoll),
			},
			SteerAngle: p.float(ColumnSteerAngle),
			Throttle:   p.float(ColumnThrottle),
			Brake:      p.float(ColumnBrake),
			Speed:      p.float(ColumnSpeed),
		}
		if p.err != nil {
			return nil, p.err
		}
		records = append(records, rec)
	}
	return records, nil
}

// rowParser reads named numeric fields from a row and keeps the first error. Missing optional columns read as 0.
type rowParser struct {
	row     []string
	columns map[string]int
	line    int
	err     error
}

func (p *rowParser) float(name string) float64 {
	idx, ok := p.columns[name]
	if !ok || p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(p.row[idx]), 64)
	if err != nil {
		p.err = errors.Wrapf(err, "line %d: bad %s", p.line, name)
		return 0
	}
	return v
}

// ResolveImagePath finds a recorded frame on disk. Relative paths are taken from baseDir. The simulator
// records absolute paths from the recording machine, so a path that does not exist falls back to the
// file of the same name under baseDir/IMG.
func ResolveImagePath(baseDir, p string) string {
	if p == "" {
		return p
	}
	resolved := p
	if !filepath.IsAbs(p) && !isWindowsAbs(p) {
		resolved = filepath.Join(baseDir, filepath.FromSlash(p))
	}
	if _, err := os.Stat(resolved); err == nil {
		return resolved
	}
	name := p[strings.LastIndexAny(p, `/\`)+1:]
	fallback := filepath.Join(baseDir, "IMG", name)
	if _, err := os.Stat(fallback); err == nil {
		return fallback
	}
	return resolved
}

func isWindowsAbs(p string) bool {
	return len(p) > 2 && p[1] == ':' && (p[2] == '\\' || p[2] == '/')
}
