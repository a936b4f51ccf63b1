package pqhdr

import (
	"image"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/filter"
	"github.com/mdouchement/hdr/hdrcolor"
)

// maxBilateralGridCells bounds the color grid of the full RGB filter.
// Larger images are smoothed on luminance only.
const maxBilateralGridCells = 1 << 19

// DenoiseParams are the edge-preserving filter settings derived from a strength.
// SigmaColor is expressed on the 0-255 sample scale, SigmaSpace in pixels.
type DenoiseParams struct {
	Strength int
	// Diameter is the neighbourhood size for window based denoisers.
	Diameter   int
	SigmaColor float64
	SigmaSpace float64
}

// Denoiser smooths an image of normalized sRGB-encoded samples before decoding.
// It must return an image with the same bounds.
type Denoiser func(img *hdr.RGB64, p DenoiseParams) *hdr.RGB64

// DenoiseParamsFor maps strength 1..10 to filter settings, monotonically:
// diameter grows from 5 to 13 and both sigmas grow by 10 per step.
// Out of range strengths are clamped.
func DenoiseParamsFor(strength int) DenoiseParams {
	s := clamp(strength, minDenoiseStrength, maxDenoiseStrength)
	return DenoiseParams{
		Strength:   s,
		Diameter:   2*((s+1)/2) + 3,
		SigmaColor: 10 * float64(s),
		SigmaSpace: 10 * float64(s),
	}
}

// IdentityDenoiser returns img unchanged.
func IdentityDenoiser(img *hdr.RGB64, _ DenoiseParams) *hdr.RGB64 {
	return img
}

// BilateralDenoiser is the default Denoiser, a fast bilateral filter on a
// downsampled grid. The result keeps float64 precision.
func BilateralDenoiser(img *hdr.RGB64, p DenoiseParams) *hdr.RGB64 {
	b := img.Bounds()
	luma := bilateralGridCells(b.Dx(), b.Dy(), p.SigmaSpace, p.SigmaColor/255.0) > maxBilateralGridCells
	return bilateral(img, p, luma)
}

// bilateral runs the RGB filter, or the luminance filter that keeps chroma offsets.
func bilateral(img *hdr.RGB64, p DenoiseParams, luma bool) *hdr.RGB64 {
	var f interface {
		Perform()
		HDRAt(x, y int) hdrcolor.Color
	}
	if luma {
		f = filter.NewYFastBilateral(img, p.SigmaSpace, p.SigmaColor/255.0)
	} else {
		f = filter.NewFastBilateral(img, p.SigmaSpace, p.SigmaColor/255.0)
	}
	f.Perform()

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := hdr.NewRGB64(image.Rect(0, 0, w, h))
	parallelFor(h, 0, func(y int) {
		for x := 0; x < w; x++ {
			r, g, bl, _ := f.HDRAt(x, y).HDRRGBA()
			out.SetRGB(x, y, hdrcolor.RGB{R: r, G: g, B: bl})
		}
	})
	return out
}

// bilateralGridCells is an upper bound of the RGB filter grid size for samples in [0, 1].
func bilateralGridCells(w, h int, sigmaSpace, sigmaRange float64) int {
	const padding = 4
	bins := int(1/sigmaRange) + 1 + padding
	cols := int(float64(w-1)/sigmaSpace) + 1 + padding
	rows := int(float64(h-1)/sigmaSpace) + 1 + padding
	return cols * rows * bins * bins * bins
}
