// Package colorutil provides shared color utilities for the sprite extractor.
//
// Pixel colours are handled as packed 32-bit ARGB values so they can be used
// directly as map keys and compared for exact equality.
package colorutil

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Common colours used throughout the application (packed ARGB).
const (
	Red     = 0xffff0000
	Magenta = 0xffff00ff

	// DefaultBackground is the sentinel colour written over cleared
	// background pixels. A pale blue unlikely to appear in sprite art.
	DefaultBackground = 0xff80c0ff
)

// ARGB packs 8-bit colour components into a single ARGB value.
func ARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// FromColor converts an image/color value to packed ARGB.
// Premultiplied colours are converted through the NRGBA model so that the
// stored components match what a PNG round-trip produces.
func FromColor(c color.Color) uint32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

// ToNRGBA unpacks an ARGB value into an image/color NRGBA.
func ToNRGBA(argb uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
		A: uint8(argb >> 24),
	}
}

// Hex formats an ARGB value as "#rrggbb" when fully opaque, otherwise
// "#aarrggbb".
func Hex(argb uint32) string {
	if argb>>24 == 0xff {
		return fmt.Sprintf("#%06x", argb&0xffffff)
	}
	return fmt.Sprintf("#%08x", argb)
}

// ParseHex parses a colour given on the command line. Accepted forms are
// "#rrggbb" (alpha forced to full opacity) and "0xaarrggbb".
func ParseHex(s string) (uint32, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		return uint32(v), nil
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return ARGB(0xff, r, g, b), nil
}
