package pqhdr

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mdouchement/hdr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformNRGBA(w, h int, v uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 0xff
	}
	return img
}

func noiseNRGBA(w, h int, seed int64) *image.NRGBA {
	rnd := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(rnd.Intn(256))
		img.Pix[i+1] = uint8(rnd.Intn(256))
		img.Pix[i+2] = uint8(rnd.Intn(256))
		img.Pix[i+3] = 0xff
	}
	return img
}

func assertPixel(t *testing.T, img *image.RGBA64, x, y int, want uint16) {
	t.Helper()
	c := img.RGBA64At(x, y)
	assert.Equal(t, color.RGBA64{R: want, G: want, B: want, A: 0xffff}, c, "pixel %d,%d", x, y)
}

func TestConvert_midGray(t *testing.T) {
	cfg := DefaultConfig()
	res, err := Convert(uniformNRGBA(3, 2, 128), []byte("profile"), cfg)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 3, 2), res.Image.Bounds())
	assert.Equal(t, []byte("profile"), res.Profile)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assertPixel(t, res.Image, x, y, 54770)
		}
	}
}

func TestConvert_nits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Nits = 1000
	res, err := Convert(uniformNRGBA(1, 1, 128), nil, cfg)
	require.NoError(t, err)
	assertPixel(t, res.Image, 0, 0, 38477)

	cfg.Nits = 100
	cfg.Gain = 30
	res, err = Convert(uniformNRGBA(1, 1, 128), nil, cfg)
	require.NoError(t, err)
	assertPixel(t, res.Image, 0, 0, 46174)

	// White at 10000 cd/m² saturates.
	res, err = Convert(uniformNRGBA(1, 1, 255), nil, DefaultConfig())
	require.NoError(t, err)
	assertPixel(t, res.Image, 0, 0, 65535)

	res, err = Convert(uniformNRGBA(1, 1, 0), nil, DefaultConfig())
	require.NoError(t, err)
	assertPixel(t, res.Image, 0, 0, 0)
}

func TestConvert_matchesComposition(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 256, 1))
	for v := range src.Pix {
		src.Pix[v] = uint8(v)
	}

	for _, nits := range []float64{100, 203, 400, 1000, 4000, 10000} {
		for _, gain := range []float64{1, 1.5, 2, 3.3} {
			cfg := DefaultConfig()
			cfg.Nits = nits
			cfg.Gain = gain

			res, err := Convert(src, nil, cfg)
			require.NoError(t, err)

			for v := 0; v < 256; v++ {
				want := Quantize16(LinearToPQ(SRGBToLinear(float64(v)/255)*gain, nits))
				got := res.Image.RGBA64At(v, 0)
				if got.R != want || got.G != want || got.B != want {
					t.Errorf("nits=%v gain=%v v=%d: got %d, want %d", nits, gain, v, got.R, want)
				}
			}
		}
	}
}

func TestConvert_radialHardEdge(t *testing.T) {
	cfg := DefaultConfig().WithRadial(100)
	cfg.RadialGain = 10
	cfg.Falloff = 0

	const v = 20
	res, err := Convert(uniformNRGBA(200, 200, v), nil, cfg)
	require.NoError(t, err)

	l := SRGBToLinear(v / 255.0)
	inside := Quantize16(LinearToPQ(l, cfg.Nits))
	outside := Quantize16(LinearToPQ(10*l, cfg.Nits))
	require.NotEqual(t, inside, outside)

	for _, p := range []image.Point{image.Pt(100, 100), image.Pt(100, 0), image.Pt(0, 100), image.Pt(199, 100), image.Pt(100, 199), image.Pt(170, 170)} {
		assertPixel(t, res.Image, p.X, p.Y, inside)
	}
	for _, p := range []image.Point{image.Pt(0, 0), image.Pt(199, 199), image.Pt(171, 171), image.Pt(0, 199)} {
		assertPixel(t, res.Image, p.X, p.Y, outside)
	}

	// Mid-gray at 1000 cd/m²: the boosted region matches an unboosted 10000 cd/m² encoding.
	cfg.Nits = 1000
	res, err = Convert(uniformNRGBA(200, 200, 128), nil, cfg)
	require.NoError(t, err)
	assertPixel(t, res.Image, 100, 100, 38477)
	assertPixel(t, res.Image, 0, 0, 54770)
}

func TestConvert_mask(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Nits = 100
	cfg.MaskGain = 30

	mask := image.NewGray(image.Rect(0, 0, 2, 1))
	mask.Pix[1] = 255

	res, err := Convert(uniformNRGBA(2, 1, 128), nil, cfg, func(o *Options) {
		o.Mask = mask
	})
	require.NoError(t, err)
	assertPixel(t, res.Image, 0, 0, 23831)
	assertPixel(t, res.Image, 1, 0, 46174)

	_, err = Convert(uniformNRGBA(2, 1, 128), nil, cfg, func(o *Options) {
		o.Mask = image.NewGray(image.Rect(0, 0, 0, 0))
	})
	assert.ErrorIs(t, err, ErrMaskRead)
}

func TestConvert_alphaDropped(t *testing.T) {
	img := uniformNRGBA(2, 2, 128)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0
	}
	res, err := Convert(img, nil, DefaultConfig())
	require.NoError(t, err)
	assertPixel(t, res.Image, 1, 1, 54770)
}

func TestConvert_subImage(t *testing.T) {
	full := uniformNRGBA(10, 10, 0)
	full.SetNRGBA(5, 5, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	sub := full.SubImage(image.Rect(5, 5, 8, 8))

	res, err := Convert(sub, nil, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 3), res.Image.Bounds())
	assertPixel(t, res.Image, 0, 0, 54770)
	assertPixel(t, res.Image, 1, 1, 0)
}

func TestConvert_workers(t *testing.T) {
	cfg := DefaultConfig().WithRadial(10)
	cfg.Falloff = 7
	cfg.Nits = 400

	src := noiseNRGBA(37, 23, 1)
	mask := noiseNRGBA(11, 5, 2)

	var ref []uint8
	for _, workers := range []int{1, 2, 5, 64, 0} {
		res, err := Convert(src, nil, cfg, func(o *Options) {
			o.Workers = workers
			o.Mask = mask
		})
		require.NoError(t, err)
		if ref == nil {
			ref = res.Image.Pix
			continue
		}
		if diff := cmp.Diff(ref, res.Image.Pix); diff != "" {
			t.Errorf("workers=%d: unexpected output (-want +got):\n%s", workers, diff)
		}
	}
}

func TestConvert_invalidParameters(t *testing.T) {
	cases := map[string]func(c *Config){
		"negative gain":    func(c *Config) { c.Gain = -1 },
		"zero nits":        func(c *Config) { c.Nits = 0 },
		"negative radius":  func(c *Config) { *c = c.WithRadial(-5) },
		"negative falloff": func(c *Config) { c.Falloff = -1 },
		"mask gain":        func(c *Config) { c.MaskGain = -2 },
		"radial gain":      func(c *Config) { c.RadialGain = -2 },
		"strength low":     func(c *Config) { c.DenoiseStrength = 0 },
		"strength high":    func(c *Config) { c.Denoise = true; c.DenoiseStrength = 11 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)

			called := false
			_, err := Convert(uniformNRGBA(2, 2, 10), nil, cfg, func(o *Options) {
				o.Denoiser = func(img *hdr.RGB64, _ DenoiseParams) *hdr.RGB64 {
					called = true
					return img
				}
				o.OnResult = func(*Result) { called = true }
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameter)
			assert.False(t, called)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.NotEmpty(t, e.Subject)
		})
	}
}

func TestConvert_source(t *testing.T) {
	_, err := Convert(nil, nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrSourceRead)

	_, err = Convert(image.NewNRGBA(image.Rect(0, 0, 0, 3)), nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrSourceRead)
}

func TestConvert_denoise(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Denoise = true
	cfg.DenoiseStrength = 4

	var got DenoiseParams
	calls := 0
	res, err := Convert(uniformNRGBA(4, 4, 128), nil, cfg, func(o *Options) {
		o.Denoiser = func(img *hdr.RGB64, p DenoiseParams) *hdr.RGB64 {
			calls++
			got = p
			return IdentityDenoiser(img, p)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, DenoiseParamsFor(4), got)
	assertPixel(t, res.Image, 2, 2, 54770)

	// Disabled denoise never calls the denoiser.
	cfg.Denoise = false
	_, err = Convert(uniformNRGBA(4, 4, 128), nil, cfg, func(o *Options) {
		o.Denoiser = func(img *hdr.RGB64, _ DenoiseParams) *hdr.RGB64 {
			calls++
			return img
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// Denoisers must keep the image size.
	cfg.Denoise = true
	_, err = Convert(uniformNRGBA(4, 4, 128), nil, cfg, func(o *Options) {
		o.Denoiser = func(*hdr.RGB64, DenoiseParams) *hdr.RGB64 {
			return hdr.NewRGB64(image.Rect(0, 0, 2, 2))
		}
	})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "denoiser", e.Subject)
}

func TestConvert_bilateralUniform(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Denoise = true
	cfg.DenoiseStrength = 10

	res, err := Convert(uniformNRGBA(16, 16, 128), nil, cfg)
	require.NoError(t, err)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			assertPixel(t, res.Image, x, y, 54770)
		}
	}
}

func TestConvert_onResult(t *testing.T) {
	var got *Result
	res, err := Convert(uniformNRGBA(1, 1, 1), nil, DefaultConfig(), func(o *Options) {
		o.OnResult = func(r *Result) { got = r }
	})
	require.NoError(t, err)
	assert.Same(t, res, got)
}

func BenchmarkConvert(b *testing.B) {
	src := noiseNRGBA(640, 480, 1)
	cfg := DefaultConfig().WithRadial(200)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Convert(src, nil, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
