// Package pngx reads and writes PNG chunks that image/png does not handle:
// ICC profiles and the HDR metadata chunks (cICP, mDCv, cLLi).
package pngx

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// Signature is the 8-byte PNG file signature.
const Signature = "\x89PNG\r\n\x1a\n"

// Chunk types handled by this package.
const (
	TypeIHDR = "IHDR"
	TypeIDAT = "IDAT"
	TypeIEND = "IEND"
	TypeICCP = "iCCP"
	TypeGAMA = "gAMA"
	TypeCHRM = "cHRM"
	TypeSRGB = "sRGB"
	TypeCICP = "cICP"
	TypeMDCV = "mDCv"
	TypeCLLI = "cLLi"
)

// maxChunkLen is the PNG limit of 2^31-1 bytes.
const maxChunkLen = 1<<31 - 1

// A FormatError reports that the input is not a valid PNG stream.
type FormatError string

func (e FormatError) Error() string {
	return fmt.Sprintf("png: invalid format: %s", string(e))
}

// An UnsupportedError reports a valid but unimplemented feature.
type UnsupportedError string

func (e UnsupportedError) Error() string {
	return fmt.Sprintf("png: unsupported feature: %s", string(e))
}

// Chunk is a single PNG chunk.
type Chunk struct {
	Type string
	Data []byte
	CRC  uint32
}

// Critical reports whether the chunk type is critical (uppercase first letter).
func (c Chunk) Critical() bool {
	return len(c.Type) == 4 && c.Type[0]&0x20 == 0
}

// Reader iterates over chunks of a PNG stream without decoding image data.
type Reader struct {
	br      *bufio.Reader
	started bool
	done    bool
}

// NewReader returns a chunk reader for r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Next returns the next chunk. Data of chunks for which keep returns false is
// discarded without buffering. It returns io.EOF after IEND or at a clean end of stream.
func (r *Reader) Next(keep func(typ string) bool) (Chunk, error) {
	if r.done {
		return Chunk{}, io.EOF
	}
	if !r.started {
		sig := make([]byte, len(Signature))
		if _, err := io.ReadFull(r.br, sig); err != nil || string(sig) != Signature {
			return Chunk{}, FormatError("not a PNG file")
		}
		r.started = true
	}

	var hdr [8]byte
	n, err := io.ReadFull(r.br, hdr[:])
	if err != nil {
		if n == 0 && err == io.EOF {
			r.done = true
			return Chunk{}, io.EOF
		}
		return Chunk{}, FormatError("truncated chunk header")
	}
	length := binary.BigEndian.Uint32(hdr[:4])
	if length > maxChunkLen {
		return Chunk{}, FormatError("chunk length overflow")
	}
	c := Chunk{Type: string(hdr[4:8])}

	if keep == nil || keep(c.Type) {
		c.Data = make([]byte, length)
		if _, err := io.ReadFull(r.br, c.Data); err != nil {
			return Chunk{}, FormatError("truncated " + c.Type + " chunk")
		}
	} else if _, err := io.CopyN(io.Discard, r.br, int64(length)); err != nil {
		return Chunk{}, FormatError("truncated " + c.Type + " chunk")
	}

	var crc [4]byte
	if _, err := io.ReadFull(r.br, crc[:]); err != nil {
		return Chunk{}, FormatError("missing CRC for " + c.Type)
	}
	c.CRC = binary.BigEndian.Uint32(crc[:])
	if c.Data != nil && c.CRC != checksum(c.Type, c.Data) {
		return Chunk{}, FormatError("bad CRC for " + c.Type)
	}
	if c.Type == TypeIEND {
		r.done = true
	}
	return c, nil
}

// Scan returns all chunks of an in-memory PNG, including IDAT data.
func Scan(data []byte) ([]Chunk, error) {
	r := NewReader(bytes.NewReader(data))
	var chunks []Chunk
	for {
		c, err := r.Next(nil)
		if err == io.EOF {
			return chunks, nil
		}
		if err != nil {
			return chunks, err
		}
		chunks = append(chunks, c)
	}
}

// Find returns the first chunk of the given type.
func Find(chunks []Chunk, typ string) (Chunk, bool) {
	for _, c := range chunks {
		if c.Type == typ {
			return c, true
		}
	}
	return Chunk{}, false
}

// WriteChunk writes a length-prefixed chunk with its CRC.
func WriteChunk(w io.Writer, typ string, data []byte) error {
	if len(typ) != 4 {
		return FormatError("chunk type must be 4 bytes: " + typ)
	}
	if uint64(len(data)) > maxChunkLen {
		return FormatError("chunk too large")
	}
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(data)))
	copy(hdr[4:], typ)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	var crc [4]byte
	binary.BigEndian.PutUint32(crc[:], checksum(typ, data))
	_, err := w.Write(crc[:])
	return err
}

// InsertAfterIHDR returns a copy of png with the given chunks placed right after IHDR.
// Existing chunks of the same types are dropped so the result holds one of each.
func InsertAfterIHDR(png []byte, chunks ...Chunk) ([]byte, error) {
	existing, err := Scan(png)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 || existing[0].Type != TypeIHDR {
		return nil, FormatError("IHDR must be the first chunk")
	}

	replace := make(map[string]bool, len(chunks))
	for _, c := range chunks {
		replace[c.Type] = true
	}

	var out bytes.Buffer
	out.Grow(len(png) + 64)
	out.WriteString(Signature)
	for i, c := range existing {
		if i > 0 && replace[c.Type] {
			continue
		}
		if err := WriteChunk(&out, c.Type, c.Data); err != nil {
			return nil, err
		}
		if i == 0 {
			for _, ins := range chunks {
				if err := WriteChunk(&out, ins.Type, ins.Data); err != nil {
					return nil, err
				}
			}
		}
	}
	return out.Bytes(), nil
}

func checksum(typ string, data []byte) uint32 {
	h := crc32.NewIEEE()
	_, _ = io.WriteString(h, typ)
	_, _ = h.Write(data)
	return h.Sum32()
}
