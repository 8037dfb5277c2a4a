package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/nbarena/m3rom/canvas"
	"github.com/nbarena/m3rom/gba"
	"github.com/nbarena/m3rom/m3"
	"github.com/nbarena/m3rom/rom"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

const sheetWidth = 2048

type options struct {
	OutputDir       string
	Scale           int
	Size            int
	FrameAnimations bool
	Sequences       bool
	SpriteSequences bool
	Logger          *log.Logger
}

type m3ctrlFrameInfo struct {
	Left      int16
	Top       int16
	Right     int16
	Bottom    int16
	OriginX   int16
	OriginY   int16
	Index     uint16
	Animation uint16
	Step      uint16
}

// work is one sheet to render: every step ends up as one frame of the PNG at
// path.
type work struct {
	path  string
	steps []m3.RenderStep
}

func collectWork(er *m3.EfcRenderer, opts *options) []work {
	var ws []work

	if opts.FrameAnimations {
		n := len(er.Efc.FrameAnimations)
		bar := progressbar.Default(int64(n))
		bar.Describe("decode frame animations")
		for i := 0; i < n; i++ {
			bar.Add(1)
			steps, err := er.FrameAnimation(i)
			if err != nil {
				opts.Logger.Printf("error reading frame animation %03d: %s", i, err)
				continue
			}
			ws = append(ws, work{filepath.Join(opts.OutputDir, "frame-animations", fmt.Sprintf("%03d.png", i)), steps})
		}
	}

	if opts.Sequences {
		n := len(er.Efc.FrameAnimationSequences)
		bar := progressbar.Default(int64(n))
		bar.Describe("decode sequences")
		for i := 0; i < n; i++ {
			bar.Add(1)
			steps, err := er.FrameAnimationSequence(i)
			if err != nil {
				opts.Logger.Printf("error reading frame animation sequence %03d: %s", i, err)
				continue
			}
			ws = append(ws, work{filepath.Join(opts.OutputDir, "frame-animation-sequences", fmt.Sprintf("%03d.png", i)), steps})
		}
	}

	if opts.SpriteSequences {
		n := len(er.Efc.SpriteSequenceHeaders)
		bar := progressbar.Default(int64(n))
		bar.Describe("decode sprite sequences")
		for i := 0; i < n; i++ {
			bar.Add(1)
			anims, err := er.SpriteSequence(i)
			if err != nil {
				opts.Logger.Printf("error reading sprite sequence %03d: %s", i, err)
				continue
			}
			for j, steps := range anims {
				ws = append(ws, work{filepath.Join(opts.OutputDir, "sprite-sequences", fmt.Sprintf("%03d", i), fmt.Sprintf("%03d.png", j)), steps})
			}
		}
	}

	return ws
}

func dumpEfc(data []byte, info ROMInfo, opts *options) error {
	r := m3.NewReader(gba.NewReader(rom.NewReader(rom.NewByteArray(data), binary.LittleEndian)))

	efc, err := r.ReadEfc(info.EfcOffset)
	if err != nil {
		return fmt.Errorf("%w while reading efc", err)
	}
	sar, err := r.ReadSar(info.SarOffset)
	if err != nil {
		return fmt.Errorf("%w while reading sar", err)
	}
	opts.Logger.Printf("efc: %d frame animations, %d sprite sequences, %d sequences; sar: %d entries",
		len(efc.FrameAnimations), len(efc.SpriteSequenceHeaders), len(efc.FrameAnimationSequences), sar.Len())

	ws := collectWork(m3.NewEfcRenderer(r, efc, sar), opts)

	bar := progressbar.Default(int64(len(ws)))
	bar.Describe("dump")

	ch := make(chan work, runtime.NumCPU())

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < runtime.NumCPU(); i++ {
		g.Go(func() error {
			for w := range ch {
				bar.Add(1)
				if err := processOneSheet(w.path, w.steps, opts.Size, opts.Scale); err != nil {
					return fmt.Errorf("%w while dumping %s", err, w.path)
				}
			}
			return nil
		})
	}

feed:
	for _, w := range ws {
		select {
		case ch <- w:
		case <-ctx.Done():
			break feed
		}
	}
	close(ch)

	return g.Wait()
}

// renderSheet renders every step onto its own size by size canvas and packs
// the results into one image. It returns a nil image if no step drew anything.
func renderSheet(steps []m3.RenderStep, size int, scale int) (*image.RGBA, []m3ctrlFrameInfo, error) {
	sheet := canvas.NewSheet(sheetWidth)

	infos := make([]m3ctrlFrameInfo, 0, len(steps))
	for _, step := range steps {
		img := canvas.New(size, size, nil)
		if err := step.Render(img); err != nil {
			return nil, nil, fmt.Errorf("%w while rendering frame %d", err, step.Index)
		}

		var frame image.Image = img
		if scale > 1 {
			frame = canvas.Scale(img, scale)
		}

		fi := sheet.Add(frame)
		infos = append(infos, m3ctrlFrameInfo{
			int16(fi.BBox.Min.X),
			int16(fi.BBox.Min.Y),
			int16(fi.BBox.Max.X),
			int16(fi.BBox.Max.Y),
			int16(fi.Origin.X),
			int16(fi.Origin.Y),
			uint16(step.Index),
			uint16(step.Animation),
			uint16(step.Step),
		})
	}

	return sheet.Image(), infos, nil
}

func processOneSheet(outFn string, steps []m3.RenderStep, size int, scale int) error {
	img, infos, err := renderSheet(steps, size, scale)
	if err != nil {
		return err
	}
	if img == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outFn), 0o700); err != nil {
		return err
	}

	f, err := os.Create(outFn)
	if err != nil {
		return err
	}
	defer f.Close()

	return writePNG(f, img, infos)
}
