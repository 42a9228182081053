package terrain

import (
	"go.viam.com/rover/rimage"
	"go.viam.com/rover/utils"
)

// A Classifier decides whether a single rectified pixel belongs to a class.
type Classifier interface {
	Classify(c rimage.Color) bool
}

// RGB is a per channel threshold.
type RGB struct {
	R uint8 `json:"r" yaml:"r" mapstructure:"r"`
	G uint8 `json:"g" yaml:"g" mapstructure:"g"`
	B uint8 `json:"b" yaml:"b" mapstructure:"b"`
}

// AboveThreshold selects pixels strictly brighter than the threshold in every channel.
type AboveThreshold RGB

// Classify implements Classifier.
func (t AboveThreshold) Classify(c rimage.Color) bool {
	return c.R > t.R && c.G > t.G && c.B > t.B
}

// BelowThreshold selects pixels strictly darker than the threshold in every channel.
type BelowThreshold RGB

// Classify implements Classifier.
func (t BelowThreshold) Classify(c rimage.Color) bool {
	return c.R < t.R && c.G < t.G && c.B < t.B
}

// SampleThreshold selects yellowish pixels: red and green above their thresholds and blue below its own.
type SampleThreshold RGB

// Classify implements Classifier.
func (t SampleThreshold) Classify(c rimage.Color) bool {
	return c.R > t.R && c.G > t.G && c.B < t.B
}

// ClassifierFunc adapts a plain function to a Classifier.
type ClassifierFunc func(c rimage.Color) bool

// Classify implements Classifier.
func (f ClassifierFunc) Classify(c rimage.Color) bool {
	return f(c)
}

// ClassifyImage applies c to every pixel of img.
func ClassifyImage(img *rimage.Image, c Classifier) *Mask {
	m := NewMask(img.Width(), img.Height())
	utils.ParallelForEachRow(img.Height(), func(y int) {
		for x := 0; x < img.Width(); x++ {
			if c.Classify(img.GetXY(x, y)) {
				m.Set(x, y, true)
			}
		}
	})
	return m
}
