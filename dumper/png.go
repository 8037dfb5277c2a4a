package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/png"
	"io"

	"github.com/nbarena/pngchunks"
	"golang.org/x/sync/errgroup"
)

func encodeFrameInfos(infos []m3ctrlFrameInfo) []byte {
	var buf bytes.Buffer
	buf.WriteString("m3ctrl")
	buf.WriteByte('\x00')
	buf.WriteByte('\xff')
	for _, fi := range infos {
		binary.Write(&buf, binary.LittleEndian, fi)
	}
	return buf.Bytes()
}

// writePNG encodes img and inserts an m3ctrl chunk describing the frames
// before the first IDAT chunk.
func writePNG(w io.Writer, img image.Image, infos []m3ctrlFrameInfo) error {
	pipeR, pipeW := io.Pipe()

	var g errgroup.Group

	g.Go(func() error {
		defer pipeW.Close()
		if err := png.Encode(pipeW, img); err != nil {
			return err
		}
		return nil
	})

	// Stops the encoder so it does not block on a pipe nobody reads.
	fail := func(err error) error {
		pipeR.CloseWithError(err)
		g.Wait()
		return err
	}

	pngr, err := pngchunks.NewReader(pipeR)
	if err != nil {
		return fail(err)
	}

	pngw, err := pngchunks.NewWriter(w)
	if err != nil {
		return fail(err)
	}

	var metaWritten bool
	for {
		chunk, err := pngr.NextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fail(err)
		}

		if chunk.Type() == "IDAT" && !metaWritten {
			meta := encodeFrameInfos(infos)
			if err := pngw.WriteChunk(int32(len(meta)), "zTXt", bytes.NewBuffer(meta)); err != nil {
				return fail(err)
			}
			metaWritten = true
		}

		if err := pngw.WriteChunk(chunk.Length(), chunk.Type(), chunk); err != nil {
			return fail(err)
		}

		if err := chunk.Close(); err != nil {
			return fail(err)
		}
	}

	return g.Wait()
}
