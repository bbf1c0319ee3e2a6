package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/planetary-defense/internal/invaders"
)

var glyphRunes = map[invaders.Glyph]rune{
	invaders.GlyphRocket:  '▲',
	invaders.GlyphInvader: 'W',
	invaders.GlyphAlien:   'M',
}

// rgb converts a palette colour to a tcell colour.
func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// cellSurface maps viewport pixels onto terminal cells. The playfield
// starts at row top so the HUD line stays clear.
type cellSurface struct {
	screen       tcell.Screen
	cellW, cellH float64
	top          int
	cols, rows   int
}

func (s cellSurface) cell(x, y float64) (int, int) {
	return int(math.Floor(x / s.cellW)), s.top + int(math.Floor(y/s.cellH))
}

func (s cellSurface) put(cx, cy int, r rune, st tcell.Style) {
	if cx < 0 || cx >= s.cols || cy < s.top || cy >= s.top+s.rows {
		return
	}
	s.screen.SetContent(cx, cy, r, nil, st)
}

func (s cellSurface) Fill(c color.RGBA) {
	st := tcell.StyleDefault.Background(rgb(c))
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			s.put(x, s.top+y, ' ', st)
		}
	}
}

func (s cellSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	x0, y0 := s.cell(x, y)
	x1, y1 := s.cell(x+w-1, y+h-1)
	st := tcell.StyleDefault.Foreground(rgb(c)).Background(tcell.ColorBlack)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			s.put(cx, cy, '|', st)
		}
	}
}

func (s cellSurface) DrawGlyph(g invaders.Glyph, x, y, size float64) {
	r, ok := glyphRunes[g]
	if !ok {
		r = '?'
	}
	fg := tcell.ColorWhite
	if g == invaders.GlyphRocket {
		fg = tcell.ColorGreen
	}
	cx, cy := s.cell(x+size/2, y+size/2)
	s.put(cx, cy, r, tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack))
}

// drawString writes s at (x, y), clipped to the screen width.
func drawString(screen tcell.Screen, x, y int, s string, st tcell.Style) {
	w, _ := screen.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		if x >= 0 {
			screen.SetContent(x, y, r, nil, st)
		}
		x++
	}
}

// drawCentered writes s centred on row y.
func drawCentered(screen tcell.Screen, y int, s string, st tcell.Style) {
	w, _ := screen.Size()
	n := len([]rune(s))
	drawString(screen, (w-n)/2, y, s, st)
}
