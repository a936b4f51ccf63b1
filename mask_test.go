package pqhdr

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResampleMask_uniform(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range src.Pix {
		src.Pix[i] = 128
	}

	m := ResampleMask(src, 7, 5)
	assert.Equal(t, image.Rect(0, 0, 7, 5), m.Bounds())
	for _, v := range m.Pix[:7*5] {
		assert.Equal(t, uint8(128), v)
	}
}

func TestResampleMask_split(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		src.SetGray(2, y, color.Gray{Y: 255})
		src.SetGray(3, y, color.Gray{Y: 255})
	}

	m := ResampleMask(src, 8, 4)
	require.Equal(t, image.Rect(0, 0, 8, 4), m.Bounds())
	for y := 0; y < 4; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+8]
		assert.LessOrEqual(t, row[0], uint8(1))
		assert.GreaterOrEqual(t, row[7], uint8(254))
		for x := 1; x < 8; x++ {
			assert.GreaterOrEqual(t, row[x], row[x-1], "row %d col %d", y, x)
		}
	}
}

func TestResampleMask_sameSize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{A: 255})

	m := ResampleMask(src, 2, 1)
	assert.Equal(t, []uint8{255, 0}, m.Pix)
}

func TestLoadMask(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadMask(filepath.Join(dir, "missing.png"), 4, 4)
	assert.ErrorIs(t, err, ErrMaskRead)

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o600))
	_, err = LoadMask(bad, 4, 4)
	assert.ErrorIs(t, err, ErrMaskRead)

	src := image.NewGray(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	p := filepath.Join(dir, "mask.png")
	f, err := os.Create(p)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	m, err := LoadMask(p, 6, 3)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 3), m.Bounds())
	for _, v := range m.Pix {
		assert.Equal(t, uint8(255), v)
	}
}
