package pngx

import (
	"encoding/binary"
	"fmt"
)

// IHDR is the image header.
type IHDR struct {
	Width, Height     uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	Interlace         uint8
}

// ColorTypeName describes the IHDR color type.
func (h IHDR) ColorTypeName() string {
	switch h.ColorType {
	case 0:
		return "Grayscale"
	case 2:
		return "RGB (Truecolor)"
	case 3:
		return "Indexed-color (Palette)"
	case 4:
		return "Grayscale with Alpha"
	case 6:
		return "RGBA (Truecolor with Alpha)"
	default:
		return "Unknown"
	}
}

// ParseIHDR decodes IHDR chunk data.
func ParseIHDR(data []byte) (IHDR, error) {
	if len(data) != 13 {
		return IHDR{}, FormatError("bad IHDR length")
	}
	return IHDR{
		Width:             binary.BigEndian.Uint32(data[0:4]),
		Height:            binary.BigEndian.Uint32(data[4:8]),
		BitDepth:          data[8],
		ColorType:         data[9],
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		Interlace:         data[12],
	}, nil
}

// ParseGamma decodes gAMA chunk data and returns the gamma and its raw value.
func ParseGamma(data []byte) (float64, uint32, error) {
	if len(data) != 4 {
		return 0, 0, FormatError("bad gAMA length")
	}
	raw := binary.BigEndian.Uint32(data)
	return float64(raw) / 100000.0, raw, nil
}

// Chromaticities holds cHRM white point and primaries.
type Chromaticities struct {
	WhiteX, WhiteY float64
	RedX, RedY     float64
	GreenX, GreenY float64
	BlueX, BlueY   float64
}

// ParseCHRM decodes cHRM chunk data.
func ParseCHRM(data []byte) (Chromaticities, error) {
	if len(data) != 32 {
		return Chromaticities{}, FormatError("bad cHRM length")
	}
	v := func(i int) float64 {
		return float64(binary.BigEndian.Uint32(data[4*i:])) / 100000.0
	}
	return Chromaticities{
		WhiteX: v(0), WhiteY: v(1),
		RedX: v(2), RedY: v(3),
		GreenX: v(4), GreenY: v(5),
		BlueX: v(6), BlueY: v(7),
	}, nil
}

// RenderingIntentName describes sRGB and ICC rendering intents.
func RenderingIntentName(intent uint32) string {
	switch intent {
	case 0:
		return "Perceptual"
	case 1:
		return "Relative colorimetric"
	case 2:
		return "Saturation"
	case 3:
		return "Absolute colorimetric"
	default:
		return fmt.Sprintf("Unknown (%d)", intent)
	}
}

// CICP holds coding-independent code points (ITU-T H.273).
type CICP struct {
	ColorPrimaries          uint8
	TransferCharacteristics uint8
	MatrixCoefficients      uint8
	VideoFullRange          uint8
}

// Transfer characteristics of interest.
const (
	TransferPQ  = 16
	TransferHLG = 18
)

// Color primaries of interest.
const (
	PrimariesBT709     = 1
	PrimariesBT2020    = 9
	PrimariesDisplayP3 = 12
)

// ParseCICP decodes cICP chunk data.
func ParseCICP(data []byte) (CICP, error) {
	if len(data) != 4 {
		return CICP{}, FormatError("bad cICP length")
	}
	return CICP{
		ColorPrimaries:          data[0],
		TransferCharacteristics: data[1],
		MatrixCoefficients:      data[2],
		VideoFullRange:          data[3],
	}, nil
}

var primariesNames = map[uint8]string{
	1:  "BT.709 (sRGB)",
	4:  "BT.470M",
	5:  "BT.601 (625)",
	6:  "BT.601 (525)",
	7:  "SMPTE 240M",
	8:  "Generic film",
	9:  "BT.2020 / BT.2100",
	10: "SMPTE ST 428-1 (XYZ)",
	11: "SMPTE RP 431-2 (DCI-P3)",
	12: "SMPTE EG 432-1 (Display P3)",
	22: "EBU Tech 3213-E",
}

var transferNames = map[uint8]string{
	1:  "BT.709 / BT.1361",
	4:  "BT.470M (Gamma 2.2)",
	5:  "BT.470BG (Gamma 2.8)",
	6:  "BT.601 / SMPTE 170M",
	7:  "SMPTE 240M",
	8:  "Linear",
	9:  "Logarithmic (100:1)",
	10: "Logarithmic (100*sqrt(10):1)",
	11: "IEC 61966-2-4",
	12: "BT.1361 Extended",
	13: "sRGB / sYCC",
	14: "BT.2020 (10-bit)",
	15: "BT.2020 (12-bit)",
	16: "SMPTE ST 2084 (PQ / HDR10)",
	17: "SMPTE ST 428-1",
	18: "ARIB STD-B67 (HLG)",
}

var matrixNames = map[uint8]string{
	0:  "Identity (RGB)",
	1:  "BT.709",
	4:  "FCC",
	5:  "BT.470BG",
	6:  "BT.601",
	7:  "SMPTE 240M",
	8:  "YCgCo",
	9:  "BT.2020 non-constant luminance",
	10: "BT.2020 constant luminance",
	11: "SMPTE ST 2085",
	12: "Chromaticity-derived non-constant luminance",
	13: "Chromaticity-derived constant luminance",
	14: "ICtCp",
}

func lookup(names map[uint8]string, v uint8) string {
	if n, ok := names[v]; ok {
		return n
	}
	return fmt.Sprintf("Unknown (%d)", v)
}

// PrimariesName describes the color primaries code point.
func (c CICP) PrimariesName() string { return lookup(primariesNames, c.ColorPrimaries) }

// TransferName describes the transfer characteristics code point.
func (c CICP) TransferName() string { return lookup(transferNames, c.TransferCharacteristics) }

// MatrixName describes the matrix coefficients code point.
func (c CICP) MatrixName() string { return lookup(matrixNames, c.MatrixCoefficients) }

// RangeName describes the video range flag.
func (c CICP) RangeName() string {
	if c.VideoFullRange != 0 {
		return "Full range (0-255)"
	}
	return "Limited range (16-235)"
}

// MDCV is the mastering display color volume (SMPTE ST 2086).
type MDCV struct {
	RedX, RedY     float64
	GreenX, GreenY float64
	BlueX, BlueY   float64
	WhiteX, WhiteY float64
	MaxLuminance   float64 // cd/m²
	MinLuminance   float64 // cd/m²
}

// ParseMDCV decodes mDCv chunk data.
func ParseMDCV(data []byte) (MDCV, error) {
	if len(data) != 24 {
		return MDCV{}, FormatError("bad mDCv length")
	}
	u16 := func(i int) float64 {
		return float64(binary.BigEndian.Uint16(data[2*i:])) / 50000.0
	}
	return MDCV{
		RedX: u16(0), RedY: u16(1),
		GreenX: u16(2), GreenY: u16(3),
		BlueX: u16(4), BlueY: u16(5),
		WhiteX: u16(6), WhiteY: u16(7),
		MaxLuminance: float64(binary.BigEndian.Uint32(data[16:20])) / 10000.0,
		MinLuminance: float64(binary.BigEndian.Uint32(data[20:24])) / 10000.0,
	}, nil
}

// CLLI is the content light level information.
type CLLI struct {
	MaxCLL  uint32 // cd/m²
	MaxFALL uint32 // cd/m²
}

// ParseCLLI decodes cLLi chunk data.
func ParseCLLI(data []byte) (CLLI, error) {
	if len(data) != 8 {
		return CLLI{}, FormatError("bad cLLi length")
	}
	return CLLI{
		MaxCLL:  binary.BigEndian.Uint32(data[0:4]),
		MaxFALL: binary.BigEndian.Uint32(data[4:8]),
	}, nil
}
