package invaders

import "image/color"

// Surface is the drawing target a frontend hands to Render. Coordinates are
// viewport pixels; a frontend with a coarser grid does its own mapping.
type Surface interface {
	// Fill covers the whole surface with c (alpha-blended).
	Fill(c color.RGBA)
	// FillRect draws a solid rectangle.
	FillRect(x, y, w, h float64, c color.RGBA)
	// DrawGlyph draws a sprite with its top-left corner at (x, y).
	DrawGlyph(g Glyph, x, y, size float64)
}

var (
	// BackdropColor is the translucent dark fill laid down every frame.
	BackdropColor = color.RGBA{R: 0, G: 0, B: 0, A: 204}
	// LaserColor is the projectile colour.
	LaserColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

// Render draws the current state. It only reads the session. A nil surface
// means the frontend has nothing to draw on this frame and is skipped.
func (s *Session) Render(dst Surface) {
	if dst == nil {
		return
	}
	dst.Fill(BackdropColor)

	p := s.player
	dst.DrawGlyph(p.Glyph, p.X, p.Y, p.W)

	for _, l := range s.lasers {
		if !l.Active {
			continue
		}
		dst.FillRect(l.X, l.Y, l.W, l.H, LaserColor)
	}

	for _, inv := range s.invaders {
		if !inv.Active {
			continue
		}
		dst.DrawGlyph(inv.Glyph, inv.X, inv.Y, inv.W)
	}
}
