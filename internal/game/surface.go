package game

import (
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/planetary-defense/internal/invaders"
	"github.com/Garsondee/planetary-defense/internal/sprite"
)

// glyphImages caches ebiten images built from rasterised sprites.
type glyphImages struct {
	cache  *sprite.Cache
	images map[glyphKey]*ebiten.Image
	logger *slog.Logger
	failed map[glyphKey]bool
}

type glyphKey struct {
	g    invaders.Glyph
	size int
}

func newGlyphImages(logger *slog.Logger) *glyphImages {
	return &glyphImages{
		cache:  sprite.NewCache(),
		images: make(map[glyphKey]*ebiten.Image),
		failed: make(map[glyphKey]bool),
		logger: logger,
	}
}

func (gi *glyphImages) get(g invaders.Glyph, size int) *ebiten.Image {
	k := glyphKey{g, size}
	if img, ok := gi.images[k]; ok {
		return img
	}
	if gi.failed[k] {
		return nil
	}
	rgba, err := gi.cache.Glyph(g, size)
	if err != nil {
		gi.failed[k] = true
		gi.logger.Warn("glyph unavailable", "glyph", g.String(), "size", size, "err", err)
		return nil
	}
	img := ebiten.NewImageFromImage(rgba)
	gi.images[k] = img
	return img
}

// screenSurface adapts an ebiten image to invaders.Surface.
type screenSurface struct {
	dst    *ebiten.Image
	glyphs *glyphImages
}

func (s screenSurface) Fill(c color.RGBA) {
	b := s.dst.Bounds()
	vector.FillRect(s.dst, 0, 0, float32(b.Dx()), float32(b.Dy()), c, false)
}

func (s screenSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	vector.FillRect(s.dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s screenSurface) DrawGlyph(g invaders.Glyph, x, y, size float64) {
	img := s.glyphs.get(g, int(size))
	if img == nil {
		// Placeholder box so the entity stays visible.
		vector.StrokeRect(s.dst, float32(x), float32(y), float32(size), float32(size), 1, color.RGBA{R: 255, G: 255, B: 255, A: 200}, false)
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	s.dst.DrawImage(img, op)
}
