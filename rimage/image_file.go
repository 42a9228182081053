package rimage

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ReadImageFromFile decodes a png or jpeg file into an Image.
func ReadImageFromFile(path string) (*Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read image %q", path)
	}
	return NewImageFromStdImage(img), nil
}

// WriteImageToFile encodes img with the format implied by the file extension.
func WriteImageToFile(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrapf(err, "cannot write image %q", path)
	}
	return nil
}

// Upscale enlarges img by an integer factor using nearest neighbor sampling
// so that individual cells stay crisp when displayed.
func Upscale(img image.Image, factor int) *Image {
	if factor <= 1 {
		return NewImageFromStdImage(img)
	}
	b := img.Bounds()
	return NewImageFromStdImage(imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor))
}
