package pngx

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// ICCP is a decoded iCCP chunk.
type ICCP struct {
	Name              string
	CompressionMethod byte
	CompressedSize    int
	Profile           []byte
}

// DecodeICCP parses iCCP chunk data: a Latin-1 name, a NUL, the compression
// method byte and a zlib stream holding the profile.
func DecodeICCP(data []byte) (*ICCP, error) {
	nul := bytes.IndexByte(data, 0)
	if nul < 1 || nul > 79 {
		return nil, FormatError("bad iCCP profile name")
	}
	if len(data) < nul+2 {
		return nil, FormatError("truncated iCCP chunk")
	}
	p := &ICCP{
		Name:              latin1(data[:nul]),
		CompressionMethod: data[nul+1],
		CompressedSize:    len(data) - nul - 2,
	}
	if p.CompressionMethod != 0 {
		return nil, UnsupportedError("iCCP compression method")
	}
	zr, err := zlib.NewReader(bytes.NewReader(data[nul+2:]))
	if err != nil {
		return nil, errors.Wrap(err, "could not open iCCP stream")
	}
	defer zr.Close()

	p.Profile, err = io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(err, "could not inflate iCCP profile")
	}
	return p, nil
}

// EncodeICCP builds iCCP chunk data for the profile using maximum compression.
func EncodeICCP(name string, profile []byte) ([]byte, error) {
	if len(name) < 1 || len(name) > 79 {
		return nil, FormatError("iCCP profile name must be 1-79 bytes")
	}
	if len(profile) == 0 {
		return nil, FormatError("empty ICC profile")
	}

	var buf bytes.Buffer
	buf.WriteString(name)
	buf.WriteByte(0) // name terminator
	buf.WriteByte(0) // deflate

	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(profile); err != nil {
		return nil, errors.Wrap(err, "could not deflate ICC profile")
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "could not deflate ICC profile")
	}
	return buf.Bytes(), nil
}

func latin1(b []byte) string {
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}
	return string(r)
}
