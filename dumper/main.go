package main

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/nbarena/gbarom"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()

	app.Name = "dumper"
	app.Usage = "Dump Mother 3 battle animations to PNG sheets"
	app.ArgsUsage = "ROM"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "output_dir",
			EnvVars: []string{"M3ROM_OUTPUT_DIR"},
			Value:   "out",
			Usage:   "output directory",
		},
		&cli.IntFlag{
			Name:  "efc_offset",
			Usage: "offset of the EFC, overriding the known offset for the ROM",
		},
		&cli.IntFlag{
			Name:  "sar_offset",
			Usage: "offset of the SAR, overriding the known offset for the ROM",
		},
		&cli.IntFlag{
			Name:  "scale",
			Value: 1,
			Usage: "scale factor of the output",
		},
		&cli.IntFlag{
			Name:  "size",
			Value: 256,
			Usage: "width and height of the canvas each frame is rendered on",
		},
		&cli.BoolFlag{
			Name:  "dump_frame_animations",
			Value: true,
			Usage: "dump frame animations",
		},
		&cli.BoolFlag{
			Name:  "dump_sequences",
			Value: true,
			Usage: "dump frame animation sequences",
		},
		&cli.BoolFlag{
			Name:  "dump_sprite_sequences",
			Value: true,
			Usage: "dump sprite sequences",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		logger := log.New(io.Discard, "", log.LstdFlags)
		if c.Bool("verbose") {
			logger.SetOutput(os.Stderr)
		}

		opts := options{
			OutputDir:       c.String("output_dir"),
			Scale:           c.Int("scale"),
			Size:            c.Int("size"),
			FrameAnimations: c.Bool("dump_frame_animations"),
			Sequences:       c.Bool("dump_sequences"),
			SpriteSequences: c.Bool("dump_sprite_sequences"),
			Logger:          logger,
		}
		if opts.Scale < 1 || opts.Size < 1 {
			return cli.Exit("scale and size must be positive", 1)
		}

		if err := run(c, c.Args().First(), &opts); err != nil {
			return cli.Exit(err, 1)
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context, romPath string, opts *options) error {
	data, err := os.ReadFile(romPath)
	if err != nil {
		return err
	}

	r := bytes.NewReader(data)

	romID, err := gbarom.ReadROMID(r)
	if err != nil {
		return err
	}

	romTitle, err := gbarom.ReadROMTitle(r)
	if err != nil {
		return err
	}

	log.Printf("Game: %s (%s), %s", romTitle, romID, humanize.Bytes(uint64(len(data))))

	info := FindROMInfo(romID)
	if info == nil {
		info = &ROMInfo{}
	}
	if c.IsSet("efc_offset") {
		info.EfcOffset = c.Int("efc_offset")
	}
	if c.IsSet("sar_offset") {
		info.SarOffset = c.Int("sar_offset")
	}
	if info.EfcOffset == 0 || info.SarOffset == 0 {
		return errors.New("unsupported game, pass --efc_offset and --sar_offset")
	}

	if err := os.MkdirAll(opts.OutputDir, 0o700); err != nil {
		return err
	}

	if err := dumpEfc(data, *info, opts); err != nil {
		return err
	}

	log.Printf("Done!")
	return nil
}
