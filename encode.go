package pqhdr

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/vearutop/pqhdr/internal/pngx"
)

// EncodePNG writes img as a 16-bit RGB PNG with profile embedded in an iCCP chunk
// right after IHDR. An empty profile writes a plain PNG.
func EncodePNG(w io.Writer, img *image.RGBA64, profile []byte) error {
	data, err := encodePNG(img, profile)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func encodePNG(img *image.RGBA64, profile []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, opaque(img)); err != nil {
		return nil, errors.Wrap(err, "could not encode PNG")
	}
	if len(profile) == 0 {
		return buf.Bytes(), nil
	}

	iccp, err := pngx.EncodeICCP(defaultProfileName, profile)
	if err != nil {
		return nil, err
	}
	return pngx.InsertAfterIHDR(buf.Bytes(), pngx.Chunk{Type: pngx.TypeICCP, Data: iccp})
}

// opaque forces alpha to 0xffff so image/png picks 16-bit truecolor without alpha.
func opaque(img *image.RGBA64) *image.RGBA64 {
	for i := 6; i < len(img.Pix); i += 8 {
		if img.Pix[i] != 0xff || img.Pix[i+1] != 0xff {
			out := *img
			out.Pix = append([]byte(nil), img.Pix...)
			for j := 6; j < len(out.Pix); j += 8 {
				out.Pix[j], out.Pix[j+1] = 0xff, 0xff
			}
			return &out
		}
	}
	return img
}

// writeFileAtomic writes data to a temporary file next to path and renames it,
// so a failed write never leaves a partial file at path.
func writeFileAtomic(path string, data []byte) (err error) {
	path = filepath.Clean(path)
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
