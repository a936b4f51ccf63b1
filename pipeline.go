package pqhdr

import (
	"image"

	"github.com/mdouchement/hdr"
	"github.com/pkg/errors"
)

// Options controls collaborators of a conversion.
type Options struct {
	// Mask is a decoded mask image, it takes precedence over Config.MaskPath in ConvertFile.
	// Any size is accepted, it is resampled to the source size.
	Mask image.Image
	// Denoiser is used when Config.Denoise is set, BilateralDenoiser by default.
	Denoiser Denoiser
	// Workers bounds row parallelism, 0 means GOMAXPROCS. Output does not depend on it.
	Workers  int
	OnResult func(res *Result)
	OnReport func(r *Report)
}

func newOptions(opts []func(o *Options)) Options {
	opt := Options{Denoiser: BilateralDenoiser}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	return opt
}

// Convert turns an SDR image into 16-bit PQ-encoded samples.
//
// The configuration is validated before any pixel is touched. The profile is
// returned in the result unmodified, ready to be embedded with EncodePNG.
func Convert(src image.Image, profile []byte, cfg Config, opts ...func(o *Options)) (*Result, error) {
	return convert(src, profile, cfg, newOptions(opts))
}

func convert(src image.Image, profile []byte, cfg Config, opt Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, newError(ErrSourceRead, "", errors.New("nil source image"))
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, newError(ErrSourceRead, "", errors.Errorf("invalid dimensions %dx%d", w, h))
	}

	var mask *image.Gray
	if opt.Mask != nil {
		if opt.Mask.Bounds().Empty() {
			return nil, newError(ErrMaskRead, "mask", errors.New("empty mask image"))
		}
		mask = ResampleMask(opt.Mask, w, h)
	}
	field, err := NewGainField(w, h, cfg, mask)
	if err != nil {
		return nil, err
	}

	enc := encodedRGB(src)
	if cfg.Denoise && opt.Denoiser != nil {
		d := opt.Denoiser(enc, DenoiseParamsFor(cfg.DenoiseStrength))
		if d == nil || d.Bounds() != enc.Bounds() {
			return nil, newError(ErrInvalidParameter, "denoiser", errors.New("denoiser must preserve image bounds"))
		}
		enc = d
	}

	out := image.NewRGBA64(image.Rect(0, 0, w, h))
	parallelFor(h, opt.Workers, func(y int) {
		encodeRow(out, enc, field, cfg.Nits, y)
	})

	res := &Result{Image: out, Profile: profile}
	if opt.OnResult != nil {
		opt.OnResult(res)
	}
	return res, nil
}

// encodeRow converts one row: sRGB decode, gain, PQ encode, 16-bit quantize.
func encodeRow(dst *image.RGBA64, enc *hdr.RGB64, field *GainField, nits float64, y int) {
	w := dst.Rect.Dx()
	i := dst.PixOffset(0, y)
	for x := 0; x < w; x++ {
		c := enc.RGBAt(x, y)
		k := field.At(x, y)

		put16(dst.Pix[i:], Quantize16(LinearToPQ(SRGBToLinear(c.R)*k, nits)))
		put16(dst.Pix[i+2:], Quantize16(LinearToPQ(SRGBToLinear(c.G)*k, nits)))
		put16(dst.Pix[i+4:], Quantize16(LinearToPQ(SRGBToLinear(c.B)*k, nits)))
		put16(dst.Pix[i+6:], 0xffff)
		i += 8
	}
}

func put16(p []byte, v uint16) {
	p[0] = uint8(v >> 8)
	p[1] = uint8(v)
}

// ConvertFile reads inPath, converts it and writes a PQ HDR PNG to outPath.
//
// Parameters are validated first, then the reference profile, source and mask
// are loaded. The output is written only after the whole pipeline succeeded,
// through a temporary file that is renamed into place.
func ConvertFile(inPath, outPath string, cfg Config, opts ...func(opt *Options)) error {
	opt := newOptions(opts)

	if err := cfg.Validate(); err != nil {
		return err
	}

	profile, err := LoadEmbeddedProfile(cfg.ReferenceProfile)
	if err != nil {
		return err
	}

	src, err := readImageFile(inPath)
	if err != nil {
		return newError(ErrSourceRead, inPath, err)
	}

	if opt.Mask == nil && cfg.MaskPath != "" {
		b := src.Bounds()
		mask, err := LoadMask(cfg.MaskPath, b.Dx(), b.Dy())
		if err != nil {
			return err
		}
		opt.Mask = mask
	}

	res, err := convert(src, profile.Data, cfg, opt)
	if err != nil {
		return err
	}

	data, err := encodePNG(res.Image, res.Profile)
	if err != nil {
		return newError(ErrWrite, outPath, err)
	}
	if err := writeFileAtomic(outPath, data); err != nil {
		return newError(ErrWrite, outPath, err)
	}

	if opt.OnReport != nil {
		b := src.Bounds()
		opt.OnReport(&Report{
			Input:       inPath,
			Output:      outPath,
			Width:       b.Dx(),
			Height:      b.Dy(),
			ColorModel:  colorModelName(src),
			Config:      cfg,
			ProfileName: profile.Name,
			ProfileSize: len(profile.Data),
			Headroom:    cfg.Nits / sdrWhiteNits,
		})
	}
	return nil
}

