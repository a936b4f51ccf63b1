package pqhdr

import (
	"io"

	"github.com/vearutop/pqhdr/internal/pngx"
)

// IsPQ performs a streaming PQ HDR check without decoding image data.
// It reads metadata chunks up to the first IDAT: a cICP chunk with the ST 2084
// transfer, or a 16-bit image carrying an ICC profile, is reported as PQ.
func IsPQ(r io.Reader) (bool, error) {
	cr := pngx.NewReader(r)
	keep := func(typ string) bool {
		return typ == pngx.TypeIHDR || typ == pngx.TypeCICP
	}

	var (
		deep    bool
		hasICCP bool
	)
	for {
		c, err := cr.Next(keep)
		if err == io.EOF {
			return deep && hasICCP, nil
		}
		if err != nil {
			return false, err
		}
		switch c.Type {
		case pngx.TypeIHDR:
			h, err := pngx.ParseIHDR(c.Data)
			if err != nil {
				return false, err
			}
			deep = h.BitDepth == 16
		case pngx.TypeCICP:
			cicp, err := pngx.ParseCICP(c.Data)
			if err != nil {
				return false, err
			}
			if cicp.TransferCharacteristics == pngx.TransferPQ {
				return true, nil
			}
		case pngx.TypeICCP:
			hasICCP = true
		case pngx.TypeIDAT:
			return deep && hasICCP, nil
		}
	}
}
