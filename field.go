package pqhdr

import (
	"image"
	"math"

	"github.com/pkg/errors"
)

// GainField is the per-pixel multiplicative luminance gain of a single conversion.
//
// The scalar at a pixel is gain * radial term * mask term. Each optional term
// contributes 1.0 when disabled.
type GainField struct {
	gain float64

	radial     bool
	cx, cy     float64
	radius     float64
	falloff    float64
	radialGain float64

	mask     *image.Gray
	maskGain float64
}

// NewGainField prepares the gain field for a width x height image.
// The mask, if any, must already match the image dimensions (see ResampleMask).
func NewGainField(width, height int, cfg Config, mask *image.Gray) (*GainField, error) {
	f := &GainField{gain: cfg.Gain}

	if cfg.RadialRadius != nil {
		f.radial = true
		f.radius = *cfg.RadialRadius
		f.falloff = cfg.Falloff
		f.radialGain = cfg.RadialGain
		f.cx, f.cy = float64(width/2), float64(height/2)
		if cfg.RadialCenter != nil {
			f.cx, f.cy = float64(cfg.RadialCenter.X), float64(cfg.RadialCenter.Y)
		}
	}

	if mask != nil {
		b := mask.Bounds()
		if b.Dx() != width || b.Dy() != height {
			return nil, newError(ErrMaskRead, "mask",
				errors.Errorf("mask is %dx%d, image is %dx%d", b.Dx(), b.Dy(), width, height))
		}
		f.mask = mask
		f.maskGain = cfg.MaskGain
	}

	return f, nil
}

// At returns the gain at pixel (x, y), relative to the image origin.
func (f *GainField) At(x, y int) float64 {
	g := f.gain
	if f.radial {
		d := math.Hypot(float64(x)-f.cx, float64(y)-f.cy)
		g *= RadialTerm(d, f.radius, f.falloff, f.radialGain)
	}
	if f.mask != nil {
		o := f.mask.Rect.Min
		m := f.mask.Pix[f.mask.PixOffset(o.X+x, o.Y+y)]
		g *= MaskTerm(float64(m)/255.0, f.maskGain)
	}
	if !(g > 0) {
		return 0
	}
	return g
}

// RadialTerm is the radial boost factor at distance d from the center.
//
// It is 1 inside radius and radialGain beyond radius+falloff, linear in between.
// A zero falloff gives a hard edge: every pixel strictly beyond radius gets radialGain.
func RadialTerm(d, radius, falloff, radialGain float64) float64 {
	var t float64
	if falloff <= 0 {
		if d > radius {
			t = 1
		}
	} else {
		t = clamp((d-radius)/math.Max(falloff, 1), 0, 1)
	}
	return lerp(1, radialGain, t)
}

// MaskTerm is the mask boost factor for a normalized mask value m in [0, 1].
func MaskTerm(m, maskGain float64) float64 {
	return lerp(1, maskGain, clamp01(m))
}
