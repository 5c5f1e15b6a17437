// Command wand runs a magic wand selection on an image file and writes the
// selection mask.
//
// Usage:
//
//	wand -in photo.png -x 120 -y 80 -threshold 64 -out mask.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/wand"
	intImage "github.com/gogpu/wand/internal/image"
)

// errUsage marks flag validation failures.
var errUsage = errors.New("usage")

type config struct {
	in        string
	out       string
	overlay   string
	seed      image.Point
	threshold int
	algorithm wand.Algorithm
	tileW     int
	tileH     int
	workers   int
	gray      wand.GrayMode
	scale     float64
	verbose   bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "wand:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	src, err := intImage.Load(cfg.in)
	if err != nil {
		return err
	}
	ref := intImage.Scale(wand.ToGray(src, cfg.gray), cfg.scale)
	seed := scaleSeed(cfg.seed, src.Bounds(), ref.Bounds())
	logger.Debug("reference loaded",
		slog.String("path", cfg.in),
		slog.Any("bounds", ref.Bounds()),
		slog.Any("seed", seed),
		slog.String("gray", cfg.gray.String()))

	sel := wand.NewSelector(
		wand.WithAlgorithm(cfg.algorithm),
		wand.WithTileSize(cfg.tileW, cfg.tileH),
		wand.WithWorkers(cfg.workers),
		wand.WithLogger(logger),
	)
	defer sel.Close()

	mask, stats := sel.Select(ref, seed, uint8(cfg.threshold)) //nolint:gosec // validated to 0..255

	if err := intImage.Save(cfg.out, mask.Gray()); err != nil {
		return err
	}
	if cfg.overlay != "" {
		if err := intImage.Save(cfg.overlay, overlay(ref, mask)); err != nil {
			return err
		}
	}

	printSummary(stdout, cfg, ref.Bounds(), stats)
	return nil
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	fs := flag.NewFlagSet("wand", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		cfg   config
		algo  string
		tile  string
		gray  string
		seedX int
		seedY int
	)
	fs.StringVar(&cfg.in, "in", "", "input image (png, jpeg, gif, bmp, tiff, webp, qoi, "+intImage.RawExt+")")
	fs.StringVar(&cfg.out, "out", "mask.png", "output mask (png, bmp, tif, qoi, "+intImage.RawExt+")")
	fs.StringVar(&cfg.overlay, "overlay", "", "optional composite of the reference and the selection")
	fs.IntVar(&seedX, "x", 0, "seed x coordinate in the input image (mapped through -scale)")
	fs.IntVar(&seedY, "y", 0, "seed y coordinate in the input image (mapped through -scale)")
	fs.IntVar(&cfg.threshold, "threshold", 128, "selection threshold (0-255)")
	fs.StringVar(&algo, "algo", wand.ScanlineParallel.String(), "naive, scanline, naive-parallel or scanline-parallel")
	fs.StringVar(&tile, "tile", "64x64", "tile size WxH for parallel algorithms")
	fs.IntVar(&cfg.workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	fs.StringVar(&gray, "gray", "luma", "colour to gray conversion: luma or lightness")
	fs.Float64Var(&cfg.scale, "scale", 1, "resample the reference by this factor before selecting")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("%w: %w", errUsage, err)
	}

	if cfg.in == "" {
		return cfg, fmt.Errorf("%w: -in is required", errUsage)
	}
	if cfg.threshold < 0 || cfg.threshold > 255 {
		return cfg, fmt.Errorf("%w: -threshold %d outside 0..255", errUsage, cfg.threshold)
	}
	if cfg.scale <= 0 {
		return cfg, fmt.Errorf("%w: -scale must be positive", errUsage)
	}
	cfg.seed = image.Pt(seedX, seedY)

	var err error
	if cfg.algorithm, err = wand.ParseAlgorithm(algo); err != nil {
		return cfg, fmt.Errorf("%w: %w", errUsage, err)
	}
	if cfg.gray, err = wand.ParseGrayMode(gray); err != nil {
		return cfg, fmt.Errorf("%w: %w", errUsage, err)
	}
	if cfg.tileW, cfg.tileH, err = parseTile(tile); err != nil {
		return cfg, fmt.Errorf("%w: %w", errUsage, err)
	}
	return cfg, nil
}

// parseTile parses "WxH" with positive dimensions.
func parseTile(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("-tile %q: want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("-tile %q: bad width", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("-tile %q: bad height", s)
	}
	return w, h, nil
}

// scaleSeed maps p from the input rectangle src to the resampled rectangle
// dst by pixel centre. A point outside src maps to a point outside dst.
func scaleSeed(p image.Point, src, dst image.Rectangle) image.Point {
	if src == dst {
		return p
	}
	if !p.In(src) {
		return dst.Min.Sub(image.Pt(1, 1))
	}
	x := (2*(p.X-src.Min.X) + 1) * dst.Dx() / (2 * src.Dx())
	y := (2*(p.Y-src.Min.Y) + 1) * dst.Dy() / (2 * src.Dy())
	return dst.Min.Add(image.Pt(x, y))
}

// overlay draws a light gray layer over ref whose opacity is the mask.
func overlay(ref *image.Gray, mask *wand.Mask) *image.RGBA {
	r := ref.Bounds()
	dst := image.NewRGBA(r)
	xdraw.Draw(dst, r, ref, r.Min, xdraw.Src)
	layer := image.NewUniform(color.Gray{Y: 192})
	xdraw.DrawMask(dst, r, layer, image.Point{}, mask.Alpha(), r.Min, xdraw.Over)
	return dst
}

func printSummary(w io.Writer, cfg config, bounds image.Rectangle, stats wand.Stats) {
	p := message.NewPrinter(language.English)
	total := bounds.Dx() * bounds.Dy()
	_, _ = p.Fprintf(w, "%s: selected %d of %d pixels from seed (%d,%d), threshold %d\n",
		stats.Algorithm, stats.Selected, total, cfg.seed.X, cfg.seed.Y, cfg.threshold)
	if stats.Algorithm.Parallel() {
		_, _ = p.Fprintf(w, "  %d workers, %d rounds, %d tile tasks, %d propagations, %d dirty tiles %v\n",
			stats.Workers, stats.Rounds, stats.Tasks, stats.Propagations, stats.DirtyTiles, stats.DirtyRect)
		_, _ = p.Fprintf(w, "  processing %v, merging %v\n", stats.Processing, stats.Merging)
	}
	_, _ = p.Fprintf(w, "  elapsed %v, mask written to %s\n", stats.Elapsed, cfg.out)
}
