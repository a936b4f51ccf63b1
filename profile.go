package pqhdr

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/vearutop/pqhdr/internal/pngx"
)

// EmbeddedProfile is an ICC profile found in a PNG iCCP chunk.
type EmbeddedProfile struct {
	Name string
	Data []byte
}

// LoadProfile reads the reference HDR PNG at path and returns its ICC profile
// bytes unmodified. Failures are reported as ErrProfileLoad.
func LoadProfile(path string) ([]byte, error) {
	p, err := LoadEmbeddedProfile(path)
	if err != nil {
		return nil, err
	}
	return p.Data, nil
}

// LoadEmbeddedProfile is like LoadProfile but also returns the profile name.
func LoadEmbeddedProfile(path string) (*EmbeddedProfile, error) {
	if path == "" {
		return nil, newError(ErrProfileLoad, "", errors.New("reference profile path is empty"))
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, newError(ErrProfileLoad, path, err)
	}
	defer f.Close()

	p, err := readEmbeddedProfile(f)
	if err != nil {
		return nil, newError(ErrProfileLoad, path, err)
	}
	return p, nil
}

// ExtractProfile returns the ICC profile embedded in an in-memory PNG.
func ExtractProfile(png []byte) (*EmbeddedProfile, error) {
	return readEmbeddedProfile(bytes.NewReader(png))
}

// readEmbeddedProfile stops at the first iCCP chunk, it must precede IDAT.
func readEmbeddedProfile(r io.Reader) (*EmbeddedProfile, error) {
	cr := pngx.NewReader(r)
	for {
		c, err := cr.Next(func(typ string) bool { return typ == pngx.TypeICCP })
		if err == io.EOF {
			return nil, errors.New("no embedded ICC profile")
		}
		if err != nil {
			return nil, err
		}
		switch c.Type {
		case pngx.TypeICCP:
			p, err := pngx.DecodeICCP(c.Data)
			if err != nil {
				return nil, err
			}
			if len(p.Profile) == 0 {
				return nil, errors.New("empty embedded ICC profile")
			}
			return &EmbeddedProfile{Name: p.Name, Data: p.Profile}, nil
		case pngx.TypeIDAT:
			return nil, errors.New("no embedded ICC profile")
		}
	}
}
