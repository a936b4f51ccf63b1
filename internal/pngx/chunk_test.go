package pngx

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 3))))
	return buf.Bytes()
}

func TestScan(t *testing.T) {
	chunks, err := Scan(testPNG(t))
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	assert.Equal(t, TypeIHDR, chunks[0].Type)
	assert.Equal(t, TypeIEND, chunks[len(chunks)-1].Type)
	assert.True(t, chunks[0].Critical())

	hdr, err := ParseIHDR(chunks[0].Data)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), hdr.Width)
	assert.Equal(t, uint32(3), hdr.Height)
	assert.Equal(t, "Grayscale", hdr.ColorTypeName())
}

func TestScanRejectsNonPNG(t *testing.T) {
	_, err := Scan([]byte("not a png file at all"))
	assert.Error(t, err)
	var fe FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestScanRejectsBadCRC(t *testing.T) {
	data := testPNG(t)
	// First byte of IHDR payload.
	data[len(Signature)+8] ^= 0xff
	_, err := Scan(data)
	assert.EqualError(t, err, "png: invalid format: bad CRC for IHDR")
}

func TestReaderSkipsUnkeptData(t *testing.T) {
	r := NewReader(bytes.NewReader(testPNG(t)))
	var types []string
	for {
		c, err := r.Next(func(typ string) bool { return typ == TypeIHDR })
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if c.Type == TypeIHDR {
			assert.Len(t, c.Data, 13)
		} else {
			assert.Nil(t, c.Data)
		}
		types = append(types, c.Type)
	}
	assert.Equal(t, TypeIHDR, types[0])
	assert.Equal(t, TypeIEND, types[len(types)-1])
}

func TestInsertAfterIHDR(t *testing.T) {
	src := testPNG(t)
	cicp := Chunk{Type: TypeCICP, Data: []byte{1, 16, 0, 1}}

	out, err := InsertAfterIHDR(src, cicp)
	require.NoError(t, err)

	chunks, err := Scan(out)
	require.NoError(t, err)
	require.True(t, len(chunks) >= 3)
	assert.Equal(t, TypeIHDR, chunks[0].Type)
	assert.Equal(t, TypeCICP, chunks[1].Type)

	// Inserting again replaces rather than duplicates.
	out, err = InsertAfterIHDR(out, Chunk{Type: TypeCICP, Data: []byte{9, 16, 0, 1}})
	require.NoError(t, err)
	chunks, err = Scan(out)
	require.NoError(t, err)

	n := 0
	for _, c := range chunks {
		if c.Type == TypeCICP {
			n++
		}
	}
	assert.Equal(t, 1, n)
	c, ok := Find(chunks, TypeCICP)
	require.True(t, ok)
	assert.Equal(t, []byte{9, 16, 0, 1}, c.Data)

	// The image still decodes.
	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
}

func TestWriteChunkRejectsBadType(t *testing.T) {
	assert.Error(t, WriteChunk(io.Discard, "abc", nil))
}
