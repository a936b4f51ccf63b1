package pqhdr

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vearutop/pqhdr/internal/pngx"
	"seehuhn.de/go/icc"
)

// ChunkInfo describes one chunk of an inspected PNG.
type ChunkInfo struct {
	Type     string
	Length   int
	Critical bool
}

// ICCInfo is the decoded iCCP chunk of an inspected PNG.
type ICCInfo struct {
	Name              string
	CompressionMethod byte
	CompressedSize    int
	Size              int

	// Header fields, set when the profile has a full 128-byte header.
	DeclaredSize    uint32
	PreferredCMM    string
	Version         string
	DeviceClass     string
	ColorSpace      string
	PCS             string
	Created         time.Time
	Signature       string
	Platform        string
	RenderingIntent string
	// Components is the channel count of the profile color space, 0 if undecodable.
	Components int

	Err error
}

// Analysis is the HDR-related metadata of a PNG file.
type Analysis struct {
	Chunks []ChunkInfo
	Header pngx.IHDR

	Gamma          *float64
	Chromaticities *pngx.Chromaticities
	SRGBIntent     *uint8
	CICP           *pngx.CICP
	ICC            *ICCInfo
	MDCV           *pngx.MDCV
	CLLI           *pngx.CLLI

	HDR          bool
	HDRType      string // "HDR10 (PQ)", "HLG" or empty
	HighBitDepth bool
	Gamut        string
}

// Inspect parses the metadata chunks of an in-memory PNG.
func Inspect(data []byte) (*Analysis, error) {
	chunks, err := pngx.Scan(data)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 || chunks[0].Type != pngx.TypeIHDR {
		return nil, pngx.FormatError("IHDR must be the first chunk")
	}

	a := &Analysis{}
	for _, c := range chunks {
		a.Chunks = append(a.Chunks, ChunkInfo{Type: c.Type, Length: len(c.Data), Critical: c.Critical()})

		switch c.Type {
		case pngx.TypeIHDR:
			if a.Header, err = pngx.ParseIHDR(c.Data); err != nil {
				return nil, err
			}
			if a.Header.BitDepth == 16 {
				a.HDR = true
				a.HighBitDepth = true
			}
		case pngx.TypeGAMA:
			g, _, err := pngx.ParseGamma(c.Data)
			if err != nil {
				return nil, err
			}
			a.Gamma = &g
		case pngx.TypeCHRM:
			ch, err := pngx.ParseCHRM(c.Data)
			if err != nil {
				return nil, err
			}
			a.Chromaticities = &ch
		case pngx.TypeSRGB:
			if len(c.Data) != 1 {
				return nil, pngx.FormatError("bad sRGB length")
			}
			intent := c.Data[0]
			a.SRGBIntent = &intent
		case pngx.TypeCICP:
			cicp, err := pngx.ParseCICP(c.Data)
			if err != nil {
				return nil, err
			}
			a.CICP = &cicp
			a.HDR = true
			switch cicp.TransferCharacteristics {
			case pngx.TransferPQ:
				a.HDRType = "HDR10 (PQ)"
			case pngx.TransferHLG:
				a.HDRType = "HLG"
			}
			switch cicp.ColorPrimaries {
			case pngx.PrimariesBT2020:
				a.Gamut = "BT.2020 (Wide Color Gamut)"
			case pngx.PrimariesDisplayP3:
				a.Gamut = "Display P3"
			}
		case pngx.TypeICCP:
			a.ICC = inspectICCP(c.Data)
		case pngx.TypeMDCV:
			m, err := pngx.ParseMDCV(c.Data)
			if err != nil {
				return nil, err
			}
			a.MDCV = &m
			a.HDR = true
		case pngx.TypeCLLI:
			l, err := pngx.ParseCLLI(c.Data)
			if err != nil {
				return nil, err
			}
			a.CLLI = &l
			a.HDR = true
		}
	}
	return a, nil
}

func inspectICCP(data []byte) *ICCInfo {
	p, err := pngx.DecodeICCP(data)
	if err != nil {
		return &ICCInfo{Err: err}
	}
	info := &ICCInfo{
		Name:              p.Name,
		CompressionMethod: p.CompressionMethod,
		CompressedSize:    p.CompressedSize,
		Size:              len(p.Profile),
	}

	h := p.Profile
	if len(h) < 128 {
		info.Err = errors.Errorf("ICC header truncated: %d bytes", len(h))
		return info
	}
	info.DeclaredSize = binary.BigEndian.Uint32(h[0:4])
	info.PreferredCMM = sig(h[4:8])
	info.Version = fmt.Sprintf("%d.%d.%d", h[8], h[9]>>4, h[9]&0x0f)
	info.DeviceClass = sig(h[12:16])
	info.ColorSpace = sig(h[16:20])
	info.PCS = sig(h[20:24])
	u16 := func(i int) int { return int(binary.BigEndian.Uint16(h[i:])) }
	info.Created = time.Date(u16(24), time.Month(u16(26)), u16(28), u16(30), u16(32), u16(34), 0, time.UTC)
	info.Signature = string(h[36:40])
	info.Platform = platformName(sig(h[40:44]))
	info.RenderingIntent = pngx.RenderingIntentName(binary.BigEndian.Uint32(h[64:68]))

	prof, err := icc.Decode(h)
	if err != nil {
		info.Err = errors.Wrap(err, "could not decode ICC profile")
		return info
	}
	info.Components = prof.ColorSpace.NumComponents()
	return info
}

func sig(b []byte) string {
	return strings.TrimRight(strings.TrimSpace(string(b)), "\x00")
}

func platformName(p string) string {
	switch p {
	case "APPL":
		return "Apple"
	case "MSFT":
		return "Microsoft"
	case "SGI":
		return "Silicon Graphics"
	case "SUNW":
		return "Sun Microsystems"
	case "":
		return "Unspecified"
	default:
		return p
	}
}
