// Package sprite rasterises the embedded SVG glyphs used by the game.
package sprite

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/Garsondee/planetary-defense/internal/invaders"
)

var (
	//go:embed assets/rocket.svg
	rocketSVG []byte
	//go:embed assets/invader.svg
	invaderSVG []byte
	//go:embed assets/alien.svg
	alienSVG []byte
)

// Source returns the SVG document for g, or nil for GlyphNone.
func Source(g invaders.Glyph) []byte {
	switch g {
	case invaders.GlyphRocket:
		return rocketSVG
	case invaders.GlyphInvader:
		return invaderSVG
	case invaders.GlyphAlien:
		return alienSVG
	default:
		return nil
	}
}

// Rasterize renders an SVG document into a w x h RGBA image.
func Rasterize(svg []byte, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rasterize: bad size %dx%d", w, h)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

type key struct {
	g    invaders.Glyph
	size int
}

// Cache rasterises each glyph once per size.
type Cache struct {
	mu     sync.Mutex
	images map[key]*image.RGBA
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{images: make(map[key]*image.RGBA)}
}

// Glyph returns a size x size image of g.
func (c *Cache) Glyph(g invaders.Glyph, size int) (*image.RGBA, error) {
	k := key{g, size}
	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.images[k]; ok {
		return img, nil
	}
	src := Source(g)
	if src == nil {
		return nil, fmt.Errorf("glyph %s: no source", g)
	}
	img, err := Rasterize(src, size, size)
	if err != nil {
		return nil, fmt.Errorf("glyph %s: %w", g, err)
	}
	c.images[k] = img
	return img, nil
}
