package lz77

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nbarena/m3rom/rom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompressLiterals(t *testing.T) {
	src := rom.NewByteArray([]byte{
		0x10, 0x04, 0x00, 0x00,
		0x00, 'a', 'b', 'c', 'd',
	})

	out, err := Decompress(src, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), out.Bytes())
}

func TestDecompressOverlappingReference(t *testing.T) {
	// "ab" then copy 6 bytes from displacement 2.
	src := rom.NewByteArray([]byte{
		0xFF, 0xFF,
		0x10, 0x08, 0x00, 0x00,
		0x20, 'a', 'b', 0x30, 0x01,
	})

	out, err := Decompress(src, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte("abababab"), out.Bytes())
}

func TestDecompressBadHeader(t *testing.T) {
	src := rom.NewByteArray([]byte{0x11, 0x04, 0x00, 0x00, 0x00, 1, 2, 3, 4})

	_, err := Decompress(src, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rom.ErrFormat))
}

func TestDecompressBadBackReference(t *testing.T) {
	src := rom.NewByteArray([]byte{
		0x10, 0x08, 0x00, 0x00,
		0x40, 'a', 0x00, 0x04,
	})

	_, err := Decompress(src, 0)
	require.Error(t, err)

	var fe *rom.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 6, fe.Offset)
	assert.Equal(t, uint32(5), fe.Got)
}

func TestDecompressTruncated(t *testing.T) {
	src := rom.NewByteArray([]byte{0x10, 0x08, 0x00, 0x00, 0x00, 'a', 'b'})

	_, err := Decompress(src, 0)
	assert.True(t, errors.Is(err, rom.ErrOutOfRange))
}

func TestRoundTrip(t *testing.T) {
	var c Compressor = Codec{}

	data := append(bytes.Repeat([]byte("mother"), 40), []byte("three 0123456789")...)
	padded := append([]byte{0xAA, 0xBB, 0xCC}, data...)

	packed, err := c.Compress(rom.NewByteArray(padded), 3, len(data))
	require.NoError(t, err)
	assert.Less(t, packed.Len(), len(data))
	assert.Equal(t, 0, packed.Len()%4)

	out, err := c.Decompress(packed, 0)
	require.NoError(t, err)
	assert.Equal(t, data, out.Bytes())
}

func TestRoundTripEmpty(t *testing.T) {
	packed, err := Compress(rom.NewByteArray(nil), 0, 0)
	require.NoError(t, err)

	out, err := Decompress(packed, 0)
	require.NoError(t, err)
	assert.Empty(t, out.Bytes())
}

func TestDecompressIgnoresTrailingData(t *testing.T) {
	packed, err := Compress(rom.NewByteArray([]byte("sunshine sunshine")), 0, 17)
	require.NoError(t, err)

	src := append([]byte{0xEE, 0xEE}, packed.Bytes()...)
	src = append(src, 0x10, 0xFF, 0xFF, 0xFF, 0x80)

	out, err := Decompress(rom.NewByteArray(src), 2)
	require.NoError(t, err)
	assert.Equal(t, []byte("sunshine sunshine"), out.Bytes())
}
