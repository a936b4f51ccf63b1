package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/vearutop/pqhdr"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "convert":
		if err := runConvert(os.Args[2:]); err != nil {
			fail(err)
		}
	case "inspect":
		if err := runInspect(os.Args[2:]); err != nil {
			fail(err)
		}
	case "detect":
		if err := runDetect(os.Args[2:]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: pqhdrtool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  convert -in input.jpg -out output.png [-gain 1.0] [-nits 10000] [-ref flashbang-hdr.png]")
	fmt.Fprintln(os.Stderr, "          [-radial 100 -radial-gain 2.0 -falloff 50 [-center-x X -center-y Y]]")
	fmt.Fprintln(os.Stderr, "          [-mask mask.png -mask-gain 100] [-denoise [-denoise-strength 7]] [-workers 0]")
	fmt.Fprintln(os.Stderr, "  inspect -in image.png")
	fmt.Fprintln(os.Stderr, "  detect  -in image.png")
}

func runConvert(args []string) error {
	def := pqhdr.DefaultConfig()

	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image (PNG, JPEG, GIF, BMP, TIFF, WebP)")
	outPath := fs.String("out", "", "output HDR PNG")
	gain := fs.Float64("gain", def.Gain, "global luminance gain")
	nits := fs.Float64("nits", def.Nits, "luminance of SDR white, cd/m²")
	radius := fs.Float64("radial", 0, "radius in pixels, boosts luminance outside the circle")
	radialGain := fs.Float64("radial-gain", def.RadialGain, "gain outside the circle")
	falloff := fs.Float64("falloff", def.Falloff, "width of the circle edge gradient in pixels")
	centerX := fs.Int("center-x", 0, "circle center x, defaults to image center")
	centerY := fs.Int("center-y", 0, "circle center y, defaults to image center")
	maskPath := fs.String("mask", "", "grayscale mask, white areas are boosted")
	maskGain := fs.Float64("mask-gain", def.MaskGain, "gain of white mask areas")
	denoise := fs.Bool("denoise", false, "apply edge-preserving noise reduction")
	strength := fs.Int("denoise-strength", def.DenoiseStrength, "noise reduction strength, 1-10")
	ref := fs.String("ref", "", "reference HDR PNG to copy the ICC profile from (default "+def.ReferenceProfile+")")
	workers := fs.Int("workers", 0, "number of parallel workers, 0 for all CPUs")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := def
	cfg.Gain = *gain
	cfg.Nits = *nits
	cfg.RadialGain = *radialGain
	cfg.Falloff = *falloff
	cfg.MaskPath = *maskPath
	cfg.MaskGain = *maskGain
	cfg.Denoise = *denoise
	cfg.DenoiseStrength = *strength
	cfg.ReferenceProfile = resolveReference(*ref, def.ReferenceProfile)
	if set["radial"] {
		cfg = cfg.WithRadial(*radius)
	}
	if set["center-x"] || set["center-y"] {
		if !set["center-x"] || !set["center-y"] {
			return errors.New("center-x and center-y must be set together")
		}
		cfg.RadialCenter = &image.Point{X: *centerX, Y: *centerY}
	}

	if _, err := os.Stat(*inPath); err != nil {
		return fmt.Errorf("input file not found: %s", *inPath)
	}

	return pqhdr.ConvertFile(*inPath, *outPath, cfg, func(o *pqhdr.Options) {
		o.Workers = *workers
		o.OnReport = func(r *pqhdr.Report) {
			printReport(os.Stdout, r, term.IsTerminal(int(os.Stdout.Fd())))
		}
	})
}

// resolveReference prefers an explicit path, then the default in the working
// directory, then the default next to the executable.
func resolveReference(explicit, def string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(def); err == nil {
		return def
	}
	exe, err := os.Executable()
	if err != nil {
		return def
	}
	candidate := filepath.Join(filepath.Dir(exe), def)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return def
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	inPath := fs.String("in", "", "input PNG")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}
	data, err := os.ReadFile(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	a, err := pqhdr.Inspect(data)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", *inPath, err)
	}
	printAnalysis(os.Stdout, *inPath, a)
	return nil
}

func runDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	inPath := fs.String("in", "", "input PNG")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}
	f, err := os.Open(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	defer f.Close()
	ok, err := pqhdr.IsPQ(f)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(os.Stdout, "pq")
		return nil
	}
	fmt.Fprintln(os.Stdout, "not pq")
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
