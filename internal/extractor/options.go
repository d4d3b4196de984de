// Package extractor turns background-matched screenshots into cropped
// sprite images.
//
// The pipeline for one screenshot is: trim ignored border margins, clear
// background pixels to a sentinel colour, discover fixed-size candidate
// regions around remaining pixels, then tight-crop each region to a sprite.
package extractor

import (
	"fmt"

	"sprite-extractor/pkg/colorutil"
)

// Borders are the ignored margins of an input image, in pixels.
type Borders struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Options configures the extraction pipeline.
type Options struct {
	Borders Borders

	// Fixed size of a candidate sprite region. Too small and sprites get
	// cut up; too large and several sprites share one image.
	RegionWidth  int
	RegionHeight int

	// Offset from the first discovered sprite pixel back to the region
	// origin. Tune together with the region size.
	RegionOffsetX int
	RegionOffsetY int

	// Sentinel colour written over cleared background pixels.
	Background uint32

	// Sprites smaller than this after cropping are discarded.
	MinSpriteWidth  int
	MinSpriteHeight int

	// HighlightAmbiguous paints pixels the matcher reports as
	// background-ambiguous with HighlightColour for manual review. The
	// mutation lands on the cleared image, so it is visible to region
	// discovery and cropping.
	HighlightAmbiguous bool
	HighlightColour    uint32

	// DrawRegionFrames switches Process into a debug mode: instead of
	// sprites it returns the cleared image with every discovered region
	// framed in FrameColour.
	DrawRegionFrames bool
	FrameColour      uint32
}

// DefaultOptions returns the extraction defaults.
func DefaultOptions() Options {
	return Options{
		RegionWidth:     192,
		RegionHeight:    192,
		RegionOffsetX:   64,
		RegionOffsetY:   64,
		Background:      colorutil.DefaultBackground,
		MinSpriteWidth:  4,
		MinSpriteHeight: 4,
		HighlightColour: colorutil.Magenta,
		FrameColour:     colorutil.Red,
	}
}

// Validate checks the configuration before any screenshot is processed.
func (o Options) Validate() error {
	if o.Borders.Left < 0 || o.Borders.Top < 0 || o.Borders.Right < 0 || o.Borders.Bottom < 0 {
		return fmt.Errorf("border margins must not be negative")
	}
	if o.RegionWidth < 1 || o.RegionHeight < 1 {
		return fmt.Errorf("region size must be at least 1x1, got %dx%d", o.RegionWidth, o.RegionHeight)
	}
	if o.RegionOffsetX < 0 || o.RegionOffsetY < 0 {
		return fmt.Errorf("region offsets must not be negative")
	}
	if o.MinSpriteWidth < 1 || o.MinSpriteHeight < 1 {
		return fmt.Errorf("minimum sprite size must be at least 1x1, got %dx%d", o.MinSpriteWidth, o.MinSpriteHeight)
	}
	if o.HighlightAmbiguous && o.HighlightColour == o.Background {
		return fmt.Errorf("highlight colour must differ from the background sentinel")
	}
	return nil
}
