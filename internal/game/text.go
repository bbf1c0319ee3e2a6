package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var uiFace = text.NewGoXFace(basicfont.Face7x13)

// drawText draws s with its top-left corner at (x, y), scaled by scale.
func drawText(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = uiFace.Metrics().HAscent + uiFace.Metrics().HDescent + 2
	text.Draw(dst, s, uiFace, op)
}

// measureText returns the unscaled size of s.
func measureText(s string) (w, h float64) {
	return text.Measure(s, uiFace, uiFace.Metrics().HAscent+uiFace.Metrics().HDescent+2)
}

// drawTextCentered centres s horizontally on cx.
func drawTextCentered(dst *ebiten.Image, s string, cx, y, scale float64, clr color.Color) {
	w, _ := measureText(s)
	drawText(dst, s, cx-w*scale/2, y, scale, clr)
}
