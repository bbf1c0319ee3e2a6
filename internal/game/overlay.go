package game

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/planetary-defense/internal/invaders"
)

// hudScale is the integer upscale factor applied to the HUD text.
const hudScale = 2

// ScrollLock suppresses page scrolling while held. The returned func
// releases the lock; calling it more than once is harmless.
type ScrollLock interface {
	Lock() (release func())
}

// Controls is the input sampled for one overlay frame. Left, Right and
// Fire are held state; the rest are edge-triggered.
type Controls struct {
	Left, Right, Fire bool

	Escape bool
	Enter  bool
	Copy   bool

	Click  bool
	ClickX int
	ClickY int
}

// OverlayConfig wires an overlay to its host.
type OverlayConfig struct {
	Width, Height int
	Rules         invaders.Rules
	Listener      invaders.Listener
	Lock          ScrollLock
	// OnClose runs once when the overlay unmounts, on every exit path.
	OnClose   func(invaders.OutcomeReason)
	Clipboard func(string) error
	Logger    *slog.Logger
	glyphs    *glyphImages
}

// Overlay mounts a game session over the page. It owns the session for
// its whole life and only ticks it while the status is playing.
type Overlay struct {
	session   *invaders.Session
	frames    int
	width     int
	height    int
	release   func()
	onClose   func(invaders.OutcomeReason)
	clipboard func(string) error
	logger    *slog.Logger
	glyphs    *glyphImages
	closed    bool
	notice    string
	hudBuf    *ebiten.Image
}

// NewOverlay starts a session sized to the window and takes the scroll lock.
func NewOverlay(cfg OverlayConfig) *Overlay {
	o := &Overlay{
		width:     cfg.Width,
		height:    cfg.Height,
		onClose:   cfg.OnClose,
		clipboard: cfg.Clipboard,
		logger:    cfg.Logger,
		glyphs:    cfg.glyphs,
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.clipboard == nil {
		o.clipboard = clipboard.WriteAll
	}
	if cfg.Lock != nil {
		o.release = cfg.Lock.Lock()
	}
	o.session = invaders.NewSession(float64(cfg.Width), float64(cfg.Height), cfg.Rules,
		invaders.WithListener(cfg.Listener))
	o.logger.Info("session started", "session", o.session.ID, "width", cfg.Width, "height", cfg.Height)
	return o
}

// Session exposes the running session for read-only use.
func (o *Overlay) Session() *invaders.Session { return o.session }

// Closed reports whether the overlay has unmounted.
func (o *Overlay) Closed() bool { return o.closed }

// Now is the session clock: frames elapsed while playing.
func (o *Overlay) Now() time.Duration {
	return time.Duration(o.frames) * invaders.FrameInterval
}

// Update runs one frame and reports whether the overlay has closed.
func (o *Overlay) Update(c Controls) bool {
	if o.closed {
		return true
	}
	if c.Escape {
		o.Close()
		return true
	}

	if o.session.Status() == invaders.StatusPlaying {
		if c.Click && image.Pt(c.ClickX, c.ClickY).In(o.abortButton()) {
			o.Close()
			return true
		}
		o.session.Tick(o.Now(), invaders.Input{Left: c.Left, Right: c.Right, Fire: c.Fire})
		o.frames++
		return false
	}

	if c.Enter || (c.Click && image.Pt(c.ClickX, c.ClickY).In(o.returnButton())) {
		o.Close()
		return true
	}
	if c.Copy {
		line := o.ResultLine()
		if err := o.clipboard(line); err != nil {
			o.logger.Warn("clipboard copy failed", "err", err)
			o.notice = "clipboard unavailable"
		} else {
			o.notice = "result copied to clipboard"
		}
	}
	return false
}

// Resize re-lays out the session for a new window size.
func (o *Overlay) Resize(w, h int) {
	if w == o.width && h == o.height {
		return
	}
	o.width, o.height = w, h
	o.session.Resize(float64(w), float64(h))
	o.hudBuf = nil
}

// Close unmounts the overlay: ticking stops, the scroll lock is released
// and OnClose runs. Only the first call has an effect.
func (o *Overlay) Close() {
	if o.closed {
		return
	}
	o.closed = true
	if o.release != nil {
		o.release()
	}
	reason := invaders.DetermineOutcome(o.session)
	o.logger.Info("session closed",
		"session", o.session.ID,
		"outcome", reason.Outcome.String(),
		"score", reason.Score,
		"frames", o.frames,
	)
	if o.onClose != nil {
		o.onClose(reason)
	}
}

// ResultLine is the shareable one-line summary.
func (o *Overlay) ResultLine() string {
	r := invaders.DetermineOutcome(o.session)
	return fmt.Sprintf("PLANETARY DEFENSE // %s // score %d // %d/%d invaders // accuracy %.0f%%",
		r.Outcome.Headline(), r.Score, r.Destroyed, r.Total, r.Stats.Accuracy()*100)
}

func (o *Overlay) abortButton() image.Rectangle {
	const w, h, margin = 180, 36, 16
	return image.Rect(o.width-w-margin, margin, o.width-margin, margin+h)
}

func (o *Overlay) modalRect() image.Rectangle {
	const w, h = 440, 220
	x := (o.width - w) / 2
	y := (o.height - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

func (o *Overlay) returnButton() image.Rectangle {
	m := o.modalRect()
	const w, h = 260, 40
	x := m.Min.X + (m.Dx()-w)/2
	y := m.Max.Y - h - 24
	return image.Rect(x, y, x+w, y+h)
}

var (
	hudGreen   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	hudRed     = color.RGBA{R: 220, G: 38, B: 38, A: 255}
	modalFill  = color.RGBA{R: 10, G: 12, B: 16, A: 240}
	buttonFill = color.RGBA{R: 22, G: 101, B: 52, A: 255}
)

// Draw renders the session, the HUD and, once over, the result modal.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.glyphs == nil {
		o.glyphs = newGlyphImages(o.logger)
	}
	o.session.Render(screenSurface{dst: screen, glyphs: o.glyphs})
	o.drawHUD(screen)

	if o.session.Status() == invaders.StatusPlaying {
		b := o.abortButton()
		vector.FillRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), hudRed, false)
		drawTextCentered(screen, "ABORT MISSION", float64(b.Min.X+b.Dx()/2), float64(b.Min.Y+10), 1.2, color.White)
		return
	}
	o.drawModal(screen)
}

func (o *Overlay) drawHUD(screen *ebiten.Image) {
	lines := []string{
		fmt.Sprintf("SCORE: %d", o.session.Score()),
		"<- -> move   SPACE fire   ESC exit",
	}

	// Render into hudBuf at 1x, then scale up.
	const lineH = 16
	const padX, padY = 6, 4
	if o.hudBuf == nil {
		o.hudBuf = ebiten.NewImage(max(1, o.width/hudScale), max(1, o.height/hudScale))
	}
	o.hudBuf.Clear()
	for i, line := range lines {
		ebitenutil.DebugPrintAt(o.hudBuf, line, padX, padY+i*lineH)
	}
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	opts.ColorScale.ScaleWithColor(hudGreen)
	screen.DrawImage(o.hudBuf, opts)
}

func (o *Overlay) drawModal(screen *ebiten.Image) {
	r := invaders.DetermineOutcome(o.session)
	m := o.modalRect()
	accent := hudGreen
	if r.Outcome == invaders.OutcomeBreached {
		accent = hudRed
	}

	vector.FillRect(screen, float32(m.Min.X), float32(m.Min.Y), float32(m.Dx()), float32(m.Dy()), modalFill, false)
	vector.StrokeRect(screen, float32(m.Min.X), float32(m.Min.Y), float32(m.Dx()), float32(m.Dy()), 2, accent, false)

	cx := float64(m.Min.X + m.Dx()/2)
	drawTextCentered(screen, r.Outcome.Headline(), cx, float64(m.Min.Y+28), 2.5, accent)
	drawTextCentered(screen, fmt.Sprintf("FINAL SCORE: %d", r.Score), cx, float64(m.Min.Y+78), 1.5, color.White)
	if o.notice != "" {
		drawTextCentered(screen, o.notice, cx, float64(m.Min.Y+108), 1, color.Gray{Y: 180})
	} else {
		drawTextCentered(screen, "C copies the result", cx, float64(m.Min.Y+108), 1, color.Gray{Y: 140})
	}

	b := o.returnButton()
	vector.FillRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), buttonFill, false)
	drawTextCentered(screen, "RETURN TO TERMINAL", float64(b.Min.X+b.Dx()/2), float64(b.Min.Y+12), 1.3, color.White)
}
