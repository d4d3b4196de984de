// Package dedup skips duplicate images. A Registry remembers every image it
// has been shown and reports whether a newly offered image was seen before.
//
// Two modes exist: exact (digest of the raw pixel data) and perceptual
// (pHash with a configurable distance threshold, which also catches
// re-encoded or slightly dithered duplicates).
package dedup

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"

	"sprite-extractor/internal/imaging"

	"github.com/corona10/goimagehash"
)

// Registry records images and detects duplicates in production order.
type Registry interface {
	// Seen returns true if an equivalent image was offered before.
	// Unseen images are recorded.
	Seen(img *imaging.Image) (bool, error)
}

// Mode names accepted by New.
const (
	ModeExact      = "exact"
	ModePerceptual = "perceptual"
)

// DefaultDistance is the pHash distance at or below which two images count
// as duplicates. 3 of 64 bits keeps only near-identical frames.
const DefaultDistance = 3

// New creates a registry for the given mode.
func New(mode string, distance int) (Registry, error) {
	switch mode {
	case ModeExact:
		return NewExact(), nil
	case ModePerceptual:
		if distance < 0 {
			return nil, fmt.Errorf("pHash distance must not be negative, got %d", distance)
		}
		return NewPerceptual(distance), nil
	default:
		return nil, fmt.Errorf("unknown dedup mode %q", mode)
	}
}

// Exact detects duplicates by digesting raw ARGB pixel data.
type Exact struct {
	digests map[[md5.Size]byte]struct{}
}

// NewExact creates an empty exact registry.
func NewExact() *Exact {
	return &Exact{digests: make(map[[md5.Size]byte]struct{})}
}

// Seen digests the pixel grid and checks it against earlier digests.
func (e *Exact) Seen(img *imaging.Image) (bool, error) {
	h := md5.New()

	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(img.Width))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(img.Height))
	h.Write(dims[:])

	var px [4]byte
	for _, p := range img.Pix {
		binary.LittleEndian.PutUint32(px[:], p)
		h.Write(px[:])
	}

	var digest [md5.Size]byte
	h.Sum(digest[:0])

	if _, ok := e.digests[digest]; ok {
		return true, nil
	}
	e.digests[digest] = struct{}{}
	return false, nil
}

// Perceptual detects duplicates by pHash distance.
type Perceptual struct {
	distance int
	hashes   []*goimagehash.ImageHash
}

// NewPerceptual creates an empty perceptual registry with the given
// duplicate distance threshold.
func NewPerceptual(distance int) *Perceptual {
	return &Perceptual{distance: distance}
}

// Seen hashes the image and compares against every recorded hash.
func (p *Perceptual) Seen(img *imaging.Image) (bool, error) {
	hash, err := goimagehash.PerceptionHash(img.ToNRGBA())
	if err != nil {
		return false, fmt.Errorf("failed to hash image: %w", err)
	}

	for _, prev := range p.hashes {
		d, err := hash.Distance(prev)
		if err != nil {
			return false, fmt.Errorf("failed to compare hashes: %w", err)
		}
		if d <= p.distance {
			return true, nil
		}
	}

	p.hashes = append(p.hashes, hash)
	return false, nil
}
