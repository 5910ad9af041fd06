package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/ironsheep/palette-extract/internal/config"
	"github.com/ironsheep/palette-extract/internal/imaging"
	"github.com/ironsheep/palette-extract/internal/palette"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const usageLine = "Usage: palette-extract <image_path>"

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code. Every
// failure is reported on stdout as "Error: <message>" with exit code 1.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}

	log := newLogger(stderr, cfg.LogLevel)
	log.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("palette-extract starting")

	if err := newApp(cfg, log, stdout).Run(args); err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newLogger writes human-readable logs to w. Stdout carries the palette.
func newLogger(w io.Writer, level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(level)
	return log
}

func newApp(cfg config.Config, log *logrus.Logger, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "palette-extract",
		Usage:     "list the colors of an image, most frequent first",
		ArgsUsage: "<image_path>",
		Version:   fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		Writer:    stdout,
		ErrWriter: stdout,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "min-count",
				Aliases: []string{"m"},
				Usage:   "keep colors found on more than `N` pixels",
				Value:   cfg.MinCount,
			},
			&cli.IntFlag{
				Name:  "max-colors",
				Usage: "fail when the image has more than `N` distinct colors",
				Value: cfg.MaxColors,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: text or json",
				Value:   cfg.Format,
			},
			&cli.StringFlag{
				Name:    "swatch",
				Aliases: []string{"s"},
				Usage:   "also write the palette as a PNG swatch to `FILE`",
			},
			&cli.StringFlag{
				Name:    "region",
				Aliases: []string{"r"},
				Usage:   "only count pixels in `REGION`: x1,y1,x2,y2 or a name such as top-left or center",
				Value:   cfg.Region,
			},
			&cli.BoolFlag{
				Name:  "no-exif-rotation",
				Usage: "ignore the EXIF orientation tag",
				Value: !cfg.AutoOrient,
			},
		},
		Action: func(c *cli.Context) error {
			return extract(c, cfg, log)
		},
	}
}

func extract(c *cli.Context, cfg config.Config, log *logrus.Logger) error {
	if c.NArg() < 1 {
		fmt.Fprintln(c.App.Writer, usageLine)
		return nil
	}
	if c.NArg() > 1 {
		return fmt.Errorf("unexpected arguments after <image_path>: %v (flags must come before the path)", c.Args().Tail())
	}
	path := c.Args().First()

	format, err := config.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	// Flags default to the loaded config, so they always carry the final value.
	opts := cfg.PaletteOptions()
	opts.MinCount = c.Int("min-count")
	opts.MaxColors = c.Int("max-colors")
	opts.AutoOrient = !c.Bool("no-exif-rotation")
	opts.Region = c.String("region")

	// Text output streams while extracting unless a swatch has to be saved
	// first; a failed swatch must not leave a palette on stdout.
	swatch := c.String("swatch")
	var out io.Writer
	if format == config.FormatText && swatch == "" {
		out = c.App.Writer
	}

	ex, err := palette.New(opts, out, log.WithField("component", "palette"))
	if err != nil {
		return err
	}

	res, err := ex.Extract(path)
	if err != nil {
		return err
	}

	if swatch != "" {
		if err := writeSwatch(swatch, res.Palette); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"path":   swatch,
			"colors": len(res.Palette),
		}).Info("wrote swatch")
	}

	switch {
	case format == config.FormatJSON:
		return palette.WriteJSON(c.App.Writer, palette.NewReport(path, res))
	case out == nil:
		return palette.WriteText(c.App.Writer, res.Palette)
	}
	return nil
}

func writeSwatch(path string, pal palette.Palette) error {
	img, err := imaging.RenderSwatch(pal.Colors(), imaging.DefaultSwatchOptions())
	if err != nil {
		return fmt.Errorf("failed to render swatch: %w", err)
	}
	return imaging.SaveSwatch(path, img)
}
