package pqhdr

import (
	"image"
	"math"
)

// Config is the full set of conversion settings.
type Config struct {
	Gain float64 // global linear gain, >= 0
	Nits float64 // luminance of SDR white in cd/m², > 0

	// RadialRadius enables the radial boost when non-nil.
	RadialRadius *float64
	// RadialCenter overrides the default image center.
	RadialCenter *image.Point
	RadialGain   float64 // gain reached outside RadialRadius+Falloff
	Falloff      float64 // width of the transition band in pixels, >= 0

	MaskPath string // optional grayscale mask, white boosts
	MaskGain float64

	Denoise         bool
	DenoiseStrength int // 1..10

	ReferenceProfile string // PNG carrying the PQ ICC profile
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Gain:             defaultGain,
		Nits:             defaultNits,
		RadialGain:       defaultRadialGain,
		Falloff:          defaultFalloff,
		MaskGain:         defaultMaskGain,
		DenoiseStrength:  defaultDenoiseStrength,
		ReferenceProfile: defaultReference,
	}
}

// WithRadial returns a copy of c with the radial boost enabled.
func (c Config) WithRadial(radius float64) Config {
	c.RadialRadius = &radius
	return c
}

// Validate checks ranges and returns an *Error of kind ErrInvalidParameter.
func (c Config) Validate() error {
	if !finiteNonNegative(c.Gain) {
		return invalidParam("gain", "must be a finite value >= 0, got %v", c.Gain)
	}
	if math.IsNaN(c.Nits) || math.IsInf(c.Nits, 0) || c.Nits <= 0 {
		return invalidParam("nits", "must be a finite value > 0, got %v", c.Nits)
	}
	if c.RadialRadius != nil && !finiteNonNegative(*c.RadialRadius) {
		return invalidParam("radial_boost", "radius must be a finite value >= 0, got %v", *c.RadialRadius)
	}
	if !finiteNonNegative(c.RadialGain) {
		return invalidParam("radial_gain", "must be a finite value >= 0, got %v", c.RadialGain)
	}
	if !finiteNonNegative(c.Falloff) {
		return invalidParam("falloff", "must be a finite value >= 0, got %v", c.Falloff)
	}
	if !finiteNonNegative(c.MaskGain) {
		return invalidParam("mask_gain", "must be a finite value >= 0, got %v", c.MaskGain)
	}
	if c.DenoiseStrength < minDenoiseStrength || c.DenoiseStrength > maxDenoiseStrength {
		return invalidParam("denoise_strength", "must be in [%d, %d], got %d",
			minDenoiseStrength, maxDenoiseStrength, c.DenoiseStrength)
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Result is the output of Convert.
type Result struct {
	// Image holds opaque 16-bit PQ-encoded RGB samples.
	Image *image.RGBA64
	// Profile is the ICC payload to embed, passed through unmodified.
	Profile []byte
}

// Report summarizes a file conversion.
type Report struct {
	Input       string
	Output      string
	Width       int
	Height      int
	ColorModel  string
	Config      Config
	ProfileName string
	ProfileSize int
	// Headroom is the ratio of SDR white to the 203 cd/m² reference white.
	Headroom float64
}
