package game

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/planetary-defense/internal/profile"
	"github.com/Garsondee/planetary-defense/internal/theme"
)

const (
	pageMargin      = 32
	headerHeight    = 150
	panelCollapsedH = 56
	panelGap        = 12
	detailLineH     = 18
	scrollStep      = 40
)

// panelRect is where a panel sits in page coordinates (before scrolling).
type panelRect struct {
	index int
	panel profile.Panel
	rect  image.Rectangle
}

// Page is the profile host: panels toggle the theme coordinator and the
// page scrolls unless an overlay holds the scroll lock.
type Page struct {
	profile profile.Profile
	coord   *theme.Coordinator
	logger  *slog.Logger
	scroll  int
	locks   int
	width   int
	height  int
}

// NewPage creates a page for p driven by coord.
func NewPage(p profile.Profile, coord *theme.Coordinator, logger *slog.Logger) *Page {
	if logger == nil {
		logger = slog.Default()
	}
	return &Page{profile: p, coord: coord, logger: logger}
}

// SetViewport records the window size used for layout and scroll limits.
func (p *Page) SetViewport(w, h int) {
	p.width, p.height = w, h
	p.clampScroll()
}

// Lock implements ScrollLock.
func (p *Page) Lock() func() {
	p.locks++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		p.locks--
	}
}

// Locked reports whether scrolling is suppressed.
func (p *Page) Locked() bool { return p.locks > 0 }

// ScrollOffset returns the current vertical scroll in pixels.
func (p *Page) ScrollOffset() int { return p.scroll }

// Scroll moves the page by dy pixels unless locked.
func (p *Page) Scroll(dy int) {
	if p.Locked() {
		return
	}
	p.scroll += dy
	p.clampScroll()
}

func (p *Page) clampScroll() {
	maxScroll := p.contentHeight() - p.height
	if p.scroll > maxScroll {
		p.scroll = maxScroll
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

// HandleKey applies page shortcuts: digits toggle panels, t toggles the
// TL;DR view, arrows scroll.
func (p *Page) HandleKey(name string) {
	switch {
	case name == "ArrowUp":
		p.Scroll(-scrollStep)
	case name == "ArrowDown":
		p.Scroll(scrollStep)
	case name == "t":
		on := p.coord.ToggleTLDR()
		p.logger.Debug("tldr toggled", "on", on)
		p.clampScroll()
	case len(name) == 1 && name[0] >= '1' && name[0] <= '9':
		p.toggle(int(name[0] - '1'))
	}
}

// Click toggles the panel under a window-space point.
func (p *Page) Click(x, y int) bool {
	pt := image.Pt(x, y+p.scroll)
	for _, pr := range p.layout() {
		if pt.In(pr.rect) {
			p.toggle(pr.index)
			return true
		}
	}
	return false
}

func (p *Page) toggle(n int) {
	ok, err := p.profile.Toggle(p.coord, p.coord.TLDR(), n)
	if err != nil {
		p.logger.Warn("panel toggle failed", "panel", n, "err", err)
		return
	}
	if ok {
		p.clampScroll()
	}
}

// layout positions the visible panels in page coordinates.
func (p *Page) layout() []panelRect {
	sel := p.coord.Selection()
	visible := p.profile.Visible(sel.TLDR)
	w := max(p.width-2*pageMargin, 200)

	out := make([]panelRect, 0, len(visible))
	y := headerHeight
	for i, panel := range visible {
		h := panelCollapsedH
		if sel.Expanded == panel.ID {
			h += detailLineH * len(panelDetail(panel))
		}
		out = append(out, panelRect{
			index: i,
			panel: panel,
			rect:  image.Rect(pageMargin, y, pageMargin+w, y+h),
		})
		y += h + panelGap
	}
	return out
}

func (p *Page) contentHeight() int {
	rects := p.layout()
	if len(rects) == 0 {
		return headerHeight
	}
	return rects[len(rects)-1].rect.Max.Y + pageMargin + consolePanelHeight
}

func panelDetail(panel profile.Panel) []string {
	lines := []string{panel.Description}
	if len(panel.Technologies) > 0 {
		lines = append(lines, "Technologies: "+strings.Join(panel.Technologies, ", "))
	}
	return lines
}

// Draw paints the page in the current theme's palette.
func (p *Page) Draw(screen *ebiten.Image) {
	sel := p.coord.Selection()
	pal := sel.Theme.Palette()
	screen.Fill(pal.Background)

	heading := func(s string) string {
		if pal.UppercaseHeaders {
			return strings.ToUpper(s)
		}
		return s
	}

	y := float64(pageMargin - p.scroll)
	drawText(screen, heading(p.profile.Name), pageMargin, y, 2.5, pal.Text)
	drawText(screen, p.profile.Title, pageMargin, y+40, 1.4, pal.Secondary)
	drawText(screen, p.profile.Location+"  |  "+p.profile.Email, pageMargin, y+66, 1, pal.Secondary)
	mode := "full"
	if sel.TLDR {
		mode = "TL;DR"
	}
	drawText(screen, fmt.Sprintf("[1-9] expand  [t] view: %s  [up/down/wheel] scroll", mode), pageMargin, y+88, 1, pal.Accent)

	for _, pr := range p.layout() {
		r := pr.rect.Add(image.Pt(0, -p.scroll))
		if r.Max.Y < 0 || r.Min.Y > p.height {
			continue
		}
		expanded := sel.Expanded == pr.panel.ID
		border := pal.Border
		if !expanded {
			border = color.RGBA{R: border.R, G: border.G, B: border.B, A: 110}
		}
		vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), pal.Card, false)
		vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, border, false)

		tx := float64(r.Min.X + 14)
		ty := float64(r.Min.Y + 10)
		drawText(screen, fmt.Sprintf("%d  %s", pr.index+1, heading(pr.panel.Heading)), tx, ty, 1.3, pal.Text)
		drawText(screen, pr.panel.Subheading+"  -  "+pr.panel.Period, tx+20, ty+22, 1, pal.Secondary)
		if expanded {
			for i, line := range panelDetail(pr.panel) {
				drawText(screen, line, tx+20, ty+float64(panelCollapsedH-6+i*detailLineH), 1, pal.Accent)
			}
		}
	}
}
