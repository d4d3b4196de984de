package extractor

import (
	"fmt"

	"sprite-extractor/internal/imaging"
	"sprite-extractor/internal/matcher"
	"sprite-extractor/pkg/geometry"
)

// Extractor runs the sprite extraction pipeline over single screenshots.
// It is configured once and carries no state between screenshots.
type Extractor struct {
	matcher matcher.Matcher
	opts    Options
}

// Result holds everything produced for one screenshot.
type Result struct {
	// Sprites in region-discovery order. Empty in frame-drawing mode.
	Sprites []*imaging.Image

	// Regions as discovered, before clamping.
	Regions []geometry.RectInt

	// Framed is the cleared image with region outlines drawn on it. Only
	// set when Options.DrawRegionFrames is enabled.
	Framed *imaging.Image

	Stats ClearStats
}

// New creates an Extractor. The options are validated up front so a bad
// configuration aborts before any screenshot is touched.
func New(m matcher.Matcher, opts Options) (*Extractor, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extractor options: %w", err)
	}
	return &Extractor{matcher: m, opts: opts}, nil
}

// Options returns the active configuration.
func (e *Extractor) Options() Options {
	return e.opts
}

// Process extracts all sprites from one screenshot: border trim, background
// clearing, region discovery, then cropping.
func (e *Extractor) Process(img *imaging.Image) (*Result, error) {
	b := e.opts.Borders
	trimmed := img.Trim(b.Left, b.Top, b.Right, b.Bottom)
	if trimmed.Width <= 0 || trimmed.Height <= 0 {
		return nil, fmt.Errorf("border margins leave no image: %dx%d minus %d,%d,%d,%d",
			img.Width, img.Height, b.Left, b.Top, b.Right, b.Bottom)
	}

	if v, ok := e.matcher.(matcher.Validator); ok {
		if err := v.Validate(trimmed); err != nil {
			return nil, err
		}
	}

	cleared, stats := e.clearBackground(trimmed)
	regions := e.discoverRegions(cleared)

	result := &Result{Regions: regions, Stats: stats}

	if e.opts.DrawRegionFrames {
		for _, r := range regions {
			cleared.DrawFrame(r, e.opts.FrameColour)
		}
		result.Framed = cleared
		return result, nil
	}

	result.Sprites = e.cropSprites(cleared, regions)
	return result, nil
}
