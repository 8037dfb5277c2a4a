package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/nbarena/m3rom/m3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dot(index, x, y int) m3.RenderStep {
	return m3.RenderStep{Index: index, Step: index, Render: func(dst draw.Image) error {
		dst.Set(x, y, color.White)
		return nil
	}}
}

func TestFindROMInfo(t *testing.T) {
	info := FindROMInfo("A3UJ")
	require.NotNil(t, info)
	assert.Equal(t, 0x1E4015C, info.EfcOffset)
	assert.Equal(t, 0x1E45C1C, info.SarOffset)

	assert.Nil(t, FindROMInfo("BR6E"))
}

func TestEncodeFrameInfos(t *testing.T) {
	meta := encodeFrameInfos([]m3ctrlFrameInfo{{Left: 1, Right: 2, OriginX: -3, Index: 4, Animation: 5, Step: 6}})
	require.Len(t, meta, 8+18)
	assert.Equal(t, []byte("m3ctrl\x00\xff"), meta[:8])

	var fi m3ctrlFrameInfo
	require.NoError(t, binary.Read(bytes.NewReader(meta[8:]), binary.LittleEndian, &fi))
	assert.Equal(t, m3ctrlFrameInfo{Left: 1, Right: 2, OriginX: -3, Index: 4, Animation: 5, Step: 6}, fi)
}

func TestRenderSheet(t *testing.T) {
	img, infos, err := renderSheet([]m3.RenderStep{dot(0, 10, 10), dot(1, 20, 4)}, 32, 2)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, m3ctrlFrameInfo{0, 0, 2, 2, 12, 12, 0, 0, 0}, infos[0])
	assert.Equal(t, m3ctrlFrameInfo{3, 0, 5, 2, -8, 24, 1, 0, 1}, infos[1])

	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 5, 2), img.Rect)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(4, 1))
}

func TestRenderSheetError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := renderSheet([]m3.RenderStep{{Index: 3, Render: func(draw.Image) error { return boom }}}, 8, 1)
	assert.True(t, errors.Is(err, boom))
}

func TestWritePNG(t *testing.T) {
	img, infos, err := renderSheet([]m3.RenderStep{dot(0, 1, 1)}, 8, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writePNG(&buf, img, infos))
	assert.True(t, bytes.Contains(buf.Bytes(), []byte("zTXtm3ctrl")))

	decoded, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestProcessOneSheetSkipsBlank(t *testing.T) {
	outFn := filepath.Join(t.TempDir(), "sub", "000.png")
	blank := m3.RenderStep{Render: func(draw.Image) error { return nil }}

	require.NoError(t, processOneSheet(outFn, []m3.RenderStep{blank}, 8, 1))
	_, err := os.Stat(outFn)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, processOneSheet(outFn, []m3.RenderStep{dot(0, 1, 1)}, 8, 1))
	_, err = os.Stat(outFn)
	assert.NoError(t, err)
}

// shortWriter accepts n bytes, then fails every write.
type shortWriter struct{ n int }

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		k := w.n
		w.n = 0
		return k, errors.New("disk full")
	}
	w.n -= len(p)
	return len(p), nil
}

func TestWritePNGWriterFails(t *testing.T) {
	// Large enough that the encoder is still writing when the output fails.
	img := image.NewRGBA(image.Rect(0, 0, 512, 512))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}

	for _, n := range []int{0, 8, 64} {
		err := writePNG(&shortWriter{n}, img, nil)
		assert.Error(t, err, "failing after %d bytes", n)
	}
}
