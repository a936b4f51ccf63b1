package pqhdr

import (
	"image"
	"image/color"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// MaskInterpolation is the resampling policy for masks whose size differs from the source.
// Bilinear keeps boundary pixels of soft masks smooth; a uniform mask stays uniform.
const MaskInterpolation = resize.Bilinear

// LoadMask reads a mask image from path, converts it to grayscale and resamples
// it to width x height. Failures are reported as ErrMaskRead.
func LoadMask(path string, width, height int) (*image.Gray, error) {
	img, err := readImageFile(path)
	if err != nil {
		return nil, newError(ErrMaskRead, path, err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, newError(ErrMaskRead, path, errors.New("empty mask image"))
	}
	return ResampleMask(img, width, height), nil
}

// ResampleMask converts img to grayscale and resamples it to width x height
// with MaskInterpolation. Images that already match are only converted.
func ResampleMask(img image.Image, width, height int) *image.Gray {
	g := toGray(img)
	b := g.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return g
	}
	out := resize.Resize(uint(width), uint(height), g, MaskInterpolation)
	return toGray(out)
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			out.Pix[y*out.Stride+x] = c.Y
		}
	}
	return out
}
