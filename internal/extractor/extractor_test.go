package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprite-extractor/internal/imaging"
	"sprite-extractor/internal/matcher"
	"sprite-extractor/pkg/geometry"
)

const (
	bgColour     = 0xff336699
	spriteColour = 0xffdd2200
	sentinel     = 0xff80c0ff
)

func uniform(w, h int, argb uint32) *imaging.Image {
	im := imaging.New(w, h)
	for i := range im.Pix {
		im.Pix[i] = argb
	}
	return im
}

// block paints a w x h rectangle of colour at (x, y).
func block(im *imaging.Image, x, y, w, h int, argb uint32) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			im.SetARGB(x+dx, y+dy, argb)
		}
	}
}

// testOptions returns options scaled down for 10x10 test images.
func testOptions() Options {
	opts := DefaultOptions()
	opts.RegionWidth = 6
	opts.RegionHeight = 6
	opts.RegionOffsetX = 1
	opts.RegionOffsetY = 1
	opts.MinSpriteWidth = 2
	opts.MinSpriteHeight = 2
	opts.Background = sentinel
	return opts
}

func newExtractor(t *testing.T, bg *imaging.Image, opts Options) *Extractor {
	t.Helper()
	m, err := matcher.NewExact(bg, matcher.StrictnessDisabled)
	require.NoError(t, err)
	ex, err := New(m, opts)
	require.NoError(t, err)
	return ex
}

func TestAllBackgroundYieldsNoRegions(t *testing.T) {
	bg := uniform(10, 10, bgColour)
	ex := newExtractor(t, bg, testOptions())

	result, err := ex.Process(bg.Clone())
	require.NoError(t, err)
	assert.Empty(t, result.Regions)
	assert.Empty(t, result.Sprites)
	assert.Equal(t, 1, result.Stats.ClearedColours)
}

func TestSingleBlockYieldsOneSprite(t *testing.T) {
	bg := uniform(10, 10, bgColour)
	ex := newExtractor(t, bg, testOptions())

	subject := bg.Clone()
	block(subject, 4, 4, 2, 2, spriteColour)

	result, err := ex.Process(subject)
	require.NoError(t, err)
	require.Len(t, result.Regions, 1)
	assert.Equal(t, geometry.NewRectInt(3, 3, 6, 6), result.Regions[0])

	require.Len(t, result.Sprites, 1)
	sprite := result.Sprites[0]
	assert.Equal(t, 2, sprite.Width)
	assert.Equal(t, 2, sprite.Height)
	for _, p := range sprite.Pix {
		assert.Equal(t, uint32(spriteColour), p)
	}
}

func TestUndersizedSpriteDiscarded(t *testing.T) {
	bg := uniform(12, 12, bgColour)
	opts := testOptions()
	opts.MinSpriteWidth = 4
	opts.MinSpriteHeight = 2
	ex := newExtractor(t, bg, opts)

	// 3 wide after cropping, below the minimum width of 4.
	subject := bg.Clone()
	block(subject, 4, 4, 3, 5, spriteColour)

	result, err := ex.Process(subject)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Regions)
	assert.Empty(t, result.Sprites)
}

func TestRegionTriggersNeverOverlapEarlierRegions(t *testing.T) {
	bg := uniform(40, 40, bgColour)
	opts := testOptions()
	ex := newExtractor(t, bg, opts)

	subject := bg.Clone()
	block(subject, 3, 3, 2, 2, spriteColour)
	block(subject, 20, 5, 2, 2, spriteColour)
	block(subject, 10, 25, 3, 3, spriteColour)

	result, err := ex.Process(subject)
	require.NoError(t, err)
	require.Len(t, result.Regions, 3)

	// The pixel that triggered each region is its origin plus the anchor
	// offsets; it must not fall inside any earlier region.
	for i, r := range result.Regions {
		tx := r.X + opts.RegionOffsetX
		ty := r.Y + opts.RegionOffsetY
		for j := 0; j < i; j++ {
			assert.False(t, result.Regions[j].Contains(tx, ty),
				"region %d trigger inside region %d", i, j)
		}
	}
}

func TestAdjacentPixelsShareOneRegion(t *testing.T) {
	bg := uniform(20, 20, bgColour)
	ex := newExtractor(t, bg, testOptions())

	// A 4x4 sprite fits inside one 6x6 region; greedy first-touch must
	// not create a second region for its remaining pixels.
	subject := bg.Clone()
	block(subject, 5, 5, 4, 4, spriteColour)

	result, err := ex.Process(subject)
	require.NoError(t, err)
	assert.Len(t, result.Regions, 1)
	require.Len(t, result.Sprites, 1)
	assert.Equal(t, 4, result.Sprites[0].Width)
	assert.Equal(t, 4, result.Sprites[0].Height)
}

func TestOversizedSpriteIsSplit(t *testing.T) {
	bg := uniform(30, 30, bgColour)
	ex := newExtractor(t, bg, testOptions())

	// Wider than the 6x6 region: the greedy policy splits it. This is
	// accepted behaviour, tuned via region size, never merged here.
	subject := bg.Clone()
	block(subject, 5, 5, 14, 2, spriteColour)

	result, err := ex.Process(subject)
	require.NoError(t, err)
	assert.Greater(t, len(result.Regions), 1)
}

func TestBorderTrimming(t *testing.T) {
	bg := uniform(10, 10, bgColour)
	opts := testOptions()
	opts.Borders = Borders{Left: 2, Top: 1, Right: 1, Bottom: 2}
	ex := newExtractor(t, bg.Trim(2, 1, 1, 2), opts)

	// The sprite sits inside the margins; coordinates shift by the trim.
	subject := uniform(10, 10, bgColour)
	block(subject, 4, 4, 2, 2, spriteColour)

	result, err := ex.Process(subject)
	require.NoError(t, err)
	require.Len(t, result.Regions, 1)
	assert.Equal(t, geometry.NewRectInt(1, 2, 6, 6), result.Regions[0])
	require.Len(t, result.Sprites, 1)
}

func TestBordersLeavingNoImageFail(t *testing.T) {
	bg := uniform(10, 10, bgColour)
	opts := testOptions()
	opts.Borders = Borders{Left: 6, Right: 6}
	ex := newExtractor(t, bg, opts)

	_, err := ex.Process(uniform(10, 10, bgColour))
	assert.Error(t, err)
}

func TestDimensionMismatchSurfacesBeforeClearing(t *testing.T) {
	bg := uniform(8, 8, bgColour)
	ex := newExtractor(t, bg, testOptions())

	_, err := ex.Process(uniform(10, 10, bgColour))
	assert.ErrorIs(t, err, matcher.ErrDimensionMismatch)
}

func TestSourceImageStaysUntouched(t *testing.T) {
	bg := uniform(10, 10, bgColour)
	ex := newExtractor(t, bg, testOptions())

	subject := bg.Clone()
	before := append([]uint32(nil), subject.Pix...)

	_, err := ex.Process(subject)
	require.NoError(t, err)
	assert.Equal(t, before, subject.Pix)
}

func TestHighlightAmbiguousPixels(t *testing.T) {
	bg := uniform(10, 10, bgColour)
	m, err := matcher.NewExact(bg, 8)
	require.NoError(t, err)

	opts := testOptions()
	opts.HighlightAmbiguous = true
	opts.HighlightColour = 0xffff00ff
	ex, err := New(m, opts)
	require.NoError(t, err)

	// One foreign pixel makes its 8 neighbours ambiguous at strictness 8.
	subject := bg.Clone()
	subject.SetARGB(5, 5, spriteColour)

	result, err := ex.Process(subject)
	require.NoError(t, err)
	assert.Len(t, result.Stats.AmbiguousPixels, 8)

	// Highlighted pixels are visible to region discovery: the foreign
	// pixel plus its highlighted ring trigger a region.
	assert.NotEmpty(t, result.Regions)
	require.NotEmpty(t, result.Sprites)

	// The sprite carries the highlight colour, written before cropping.
	found := false
	for _, p := range result.Sprites[0].Pix {
		if p == opts.HighlightColour {
			found = true
			break
		}
	}
	assert.True(t, found)
}

func TestDrawRegionFramesMode(t *testing.T) {
	bg := uniform(20, 20, bgColour)
	opts := testOptions()
	opts.DrawRegionFrames = true
	ex := newExtractor(t, bg, opts)

	subject := bg.Clone()
	block(subject, 8, 8, 2, 2, spriteColour)

	result, err := ex.Process(subject)
	require.NoError(t, err)
	require.NotNil(t, result.Framed)
	assert.Empty(t, result.Sprites)

	r := result.Regions[0]
	assert.Equal(t, uint32(opts.FrameColour), result.Framed.ARGB(r.X, r.Y))
}

func TestTightCropIdempotent(t *testing.T) {
	im := imaging.New(5, 4)
	block(im, 0, 0, 5, 4, spriteColour)
	im.SetARGB(2, 2, 0xff00aa00)

	// No border row or column is background, so cropping changes nothing.
	cropped, ok := tightCrop(im, sentinel)
	require.True(t, ok)
	assert.Equal(t, im.Width, cropped.Width)
	assert.Equal(t, im.Height, cropped.Height)
	assert.Equal(t, im.Pix, cropped.Pix)

	again, ok := tightCrop(cropped, sentinel)
	require.True(t, ok)
	assert.Equal(t, cropped.Pix, again.Pix)
}

func TestTightCropDegenerate(t *testing.T) {
	im := uniform(6, 6, sentinel)
	_, ok := tightCrop(im, sentinel)
	assert.False(t, ok)
}

func TestTightCropFindsExtremes(t *testing.T) {
	im := uniform(10, 10, sentinel)
	im.SetARGB(2, 3, spriteColour)
	im.SetARGB(7, 6, spriteColour)

	cropped, ok := tightCrop(im, sentinel)
	require.True(t, ok)
	assert.Equal(t, 6, cropped.Width)
	assert.Equal(t, 4, cropped.Height)
	assert.Equal(t, uint32(spriteColour), cropped.ARGB(0, 0))
	assert.Equal(t, uint32(spriteColour), cropped.ARGB(5, 3))
}

func TestRegionClampedAtImageEdge(t *testing.T) {
	bg := uniform(10, 10, bgColour)
	ex := newExtractor(t, bg, testOptions())

	// Sprite near the bottom-right corner: the 6x6 region overhangs and
	// must shift back inside the image without resizing.
	subject := bg.Clone()
	block(subject, 7, 7, 2, 2, spriteColour)

	result, err := ex.Process(subject)
	require.NoError(t, err)
	require.Len(t, result.Regions, 1)
	require.Len(t, result.Sprites, 1)

	// The shifted region now touches the untouched 1-pixel border, whose
	// original colours count as sprite content, so the crop spans the
	// whole region. This mirrors the clearing pass never writing the
	// border.
	sprite := result.Sprites[0]
	assert.Equal(t, 6, sprite.Width)
	assert.Equal(t, 6, sprite.Height)

	found := false
	for _, p := range sprite.Pix {
		if p == uint32(spriteColour) {
			found = true
			break
		}
	}
	assert.True(t, found)
}

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	assert.NoError(t, opts.Validate())

	bad := opts
	bad.Borders.Left = -1
	assert.Error(t, bad.Validate())

	bad = opts
	bad.RegionWidth = 0
	assert.Error(t, bad.Validate())

	bad = opts
	bad.RegionOffsetX = -1
	assert.Error(t, bad.Validate())

	bad = opts
	bad.MinSpriteHeight = 0
	assert.Error(t, bad.Validate())

	bad = opts
	bad.HighlightAmbiguous = true
	bad.HighlightColour = bad.Background
	assert.Error(t, bad.Validate())
}
