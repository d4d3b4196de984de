// Command spriteextract separates sprites from a known background texture in
// a directory of screenshots and saves each one as a tightly-cropped PNG.
//
// Usage: spriteextract -bg <background image> -dir <screenshot dir> [options]
//
// Strictness selects the matcher, mirroring the classic CLI contract:
// -1 uses the exact matcher (plain pixel equality against the background
// image), 0-8 uses the neighbourhood matcher with that threshold. An
// explicit -mode flag overrides this.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sprite-extractor/internal/dedup"
	"sprite-extractor/internal/extractor"
	"sprite-extractor/internal/imaging"
	"sprite-extractor/internal/matcher"
	"sprite-extractor/internal/version"
	"sprite-extractor/pkg/colorutil"
)

var (
	flagBG         = flag.String("bg", "", "Background texture image (required)")
	flagDir        = flag.String("dir", "", "Directory of screenshots to process (required)")
	flagOut        = flag.String("out", "out", "Output directory for sprites")
	flagMode       = flag.String("mode", "", "Matcher mode: exact or neighbourhood (default from -strictness)")
	flagStrictness = flag.Int("strictness", 4, "Matching strictness 0-8, or -1 for the exact matcher")

	flagBorderLeft   = flag.Int("border-left", 0, "Ignored left margin (pixels)")
	flagBorderTop    = flag.Int("border-top", 0, "Ignored top margin (pixels)")
	flagBorderRight  = flag.Int("border-right", 0, "Ignored right margin (pixels)")
	flagBorderBottom = flag.Int("border-bottom", 0, "Ignored bottom margin (pixels)")

	flagRegionWidth  = flag.Int("region-width", 192, "Sprite region width")
	flagRegionHeight = flag.Int("region-height", 192, "Sprite region height")
	flagOffsetX      = flag.Int("offset-x", 64, "Region anchor offset X")
	flagOffsetY      = flag.Int("offset-y", 64, "Region anchor offset Y")
	flagMinWidth     = flag.Int("min-width", 4, "Minimum sprite width")
	flagMinHeight    = flag.Int("min-height", 4, "Minimum sprite height")

	flagSentinel  = flag.String("sentinel", "#80c0ff", "Sentinel background colour (#rrggbb or 0xaarrggbb)")
	flagHighlight = flag.Bool("highlight", false, "Paint background-ambiguous pixels for review (exact mode)")
	flagHiColour  = flag.String("highlight-color", "#ff00ff", "Highlight colour for ambiguous pixels")
	flagDrawRegs  = flag.Bool("draw-regions", false, "Save cleared images with region frames instead of sprites")

	flagDedup    = flag.String("dedup", dedup.ModeExact, "Duplicate detection: exact, perceptual, or off")
	flagDistance = flag.Int("dedup-distance", dedup.DefaultDistance, "pHash distance threshold for perceptual dedup")
	flagVersion  = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Println(version.String())
		return
	}

	if *flagBG == "" || *flagDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -bg <background image> -dir <screenshot dir> [options]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	opts, err := buildOptions()
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Reading background texture: %s\n", *flagBG)
	bg, err := imaging.Load(*flagBG)
	if err != nil {
		fatal(fmt.Errorf("unable to read background texture: %w", err))
	}

	m, err := buildMatcher(bg, opts.Borders)
	if err != nil {
		fatal(err)
	}

	ex, err := extractor.New(m, opts)
	if err != nil {
		fatal(err)
	}

	files, err := imaging.ListImages(*flagDir)
	if err != nil {
		fatal(err)
	}
	if len(files) == 0 {
		fatal(fmt.Errorf("no image files found in directory: %s", *flagDir))
	}
	fmt.Printf("Found %d screenshot files\n", len(files))

	screenshots, sprites, err := buildRegistries()
	if err != nil {
		fatal(err)
	}

	if err := os.MkdirAll(*flagOut, 0755); err != nil {
		fatal(fmt.Errorf("unable to create output directory: %w", err))
	}

	for _, path := range files {
		processFile(ex, path, screenshots, sprites)
	}

	fmt.Println("Done")
}

// processFile runs the pipeline for one screenshot. Failures are reported
// and skipped; they never abort the batch.
func processFile(ex *extractor.Extractor, path string, screenshots, sprites dedup.Registry) {
	fmt.Printf("Reading image: %s\n", path)
	img, err := imaging.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read image %s: %v\n", path, err)
		return
	}

	if screenshots != nil {
		seen, err := screenshots.Seen(img)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error hashing image %s: %v\n", path, err)
		} else if seen {
			fmt.Println("Skipping duplicate input image")
			return
		}
	}

	result, err := ex.Process(img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to process image %s: %v\n", path, err)
		return
	}
	fmt.Printf("Found %d sprite regions (%d background colours cleared)\n",
		len(result.Regions), result.Stats.ClearedColours)
	if n := len(result.Stats.AmbiguousPixels); n > 0 {
		fmt.Printf("  %d background-ambiguous pixels\n", n)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if result.Framed != nil {
		outPath := filepath.Join(*flagOut, stem+"_regions.png")
		if err := imaging.Save(result.Framed, outPath); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to save image %s: %v\n", outPath, err)
		}
		return
	}

	fmt.Printf("Extracted %d sprites\n", len(result.Sprites))
	for i, sprite := range result.Sprites {
		if sprites != nil {
			seen, err := sprites.Seen(sprite)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error hashing sprite: %v\n", err)
			} else if seen {
				fmt.Println("Skipping duplicate sprite")
				continue
			}
		}

		outPath := filepath.Join(*flagOut, fmt.Sprintf("%s_%d.png", stem, i))
		if err := imaging.Save(sprite, outPath); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to save image %s: %v\n", outPath, err)
		}
	}
}

// buildOptions translates flags into validated extractor options.
func buildOptions() (extractor.Options, error) {
	opts := extractor.DefaultOptions()
	opts.Borders = extractor.Borders{
		Left:   *flagBorderLeft,
		Top:    *flagBorderTop,
		Right:  *flagBorderRight,
		Bottom: *flagBorderBottom,
	}
	opts.RegionWidth = *flagRegionWidth
	opts.RegionHeight = *flagRegionHeight
	opts.RegionOffsetX = *flagOffsetX
	opts.RegionOffsetY = *flagOffsetY
	opts.MinSpriteWidth = *flagMinWidth
	opts.MinSpriteHeight = *flagMinHeight
	opts.HighlightAmbiguous = *flagHighlight
	opts.DrawRegionFrames = *flagDrawRegs

	var err error
	if opts.Background, err = colorutil.ParseHex(*flagSentinel); err != nil {
		return opts, err
	}
	if opts.HighlightColour, err = colorutil.ParseHex(*flagHiColour); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}

// buildMatcher selects and constructs the pixel matcher. The background
// reference for the exact matcher is trimmed by the same margins as the
// screenshots so coordinates line up.
func buildMatcher(bg *imaging.Image, b extractor.Borders) (matcher.Matcher, error) {
	mode := *flagMode
	if mode == "" {
		if *flagStrictness == matcher.StrictnessDisabled {
			mode = "exact"
		} else {
			mode = "neighbourhood"
		}
	}

	switch mode {
	case "exact":
		fmt.Println("Using exact matcher")
		trimmed := bg.Trim(b.Left, b.Top, b.Right, b.Bottom)
		e, err := matcher.NewExact(trimmed, *flagStrictness)
		if err != nil {
			return nil, err
		}
		return e, nil
	case "neighbourhood":
		fmt.Println("Producing background model")
		n, err := matcher.NewNeighbourhood(bg, *flagStrictness)
		if err != nil {
			return nil, err
		}
		fmt.Printf("Pattern contains %d colours\n", n.Model().Colours())
		return n, nil
	default:
		return nil, fmt.Errorf("unknown matcher mode %q", mode)
	}
}

// buildRegistries creates the screenshot and sprite dedup registries, or
// nils when deduplication is off.
func buildRegistries() (dedup.Registry, dedup.Registry, error) {
	if *flagDedup == "off" {
		return nil, nil, nil
	}
	screenshots, err := dedup.New(*flagDedup, *flagDistance)
	if err != nil {
		return nil, nil, err
	}
	sprites, err := dedup.New(*flagDedup, *flagDistance)
	if err != nil {
		return nil, nil, err
	}
	return screenshots, sprites, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
