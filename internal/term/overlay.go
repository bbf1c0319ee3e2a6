package term

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/planetary-defense/internal/invaders"
)

// hudRows is the number of rows above the playfield.
const hudRows = 1

// DefaultHoldWindow is how long a key press counts as held.
const DefaultHoldWindow = 120 * time.Millisecond

// Overlay runs one session on a character grid. Terminals report key
// presses but not releases, so a press counts as held for HoldWindow.
type Overlay struct {
	session  *invaders.Session
	cellW    int
	cellH    int
	cols     int
	rows     int
	interval time.Duration
	hold     time.Duration
	frames   int

	leftUntil  time.Duration
	rightUntil time.Duration
	fireUntil  time.Duration

	closed bool
	logger *slog.Logger
}

// OverlayConfig sizes an Overlay.
type OverlayConfig struct {
	Cols, Rows   int
	CellW, CellH int
	FrameRate    int
	HoldWindow   time.Duration
	Rules        invaders.Rules
	Listener     invaders.Listener
	Logger       *slog.Logger
}

// NewOverlay starts a session sized to the grid.
func NewOverlay(cfg OverlayConfig) *Overlay {
	if cfg.CellW <= 0 {
		cfg.CellW = 8
	}
	if cfg.CellH <= 0 {
		cfg.CellH = 16
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 60
	}
	if cfg.HoldWindow <= 0 {
		cfg.HoldWindow = DefaultHoldWindow
	}
	if cfg.Rules == (invaders.Rules{}) {
		cfg.Rules = invaders.DefaultRules()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	o := &Overlay{
		cellW:    cfg.CellW,
		cellH:    cfg.CellH,
		interval: time.Second / time.Duration(cfg.FrameRate),
		hold:     cfg.HoldWindow,
		logger:   cfg.Logger,
	}
	o.cols, o.rows = cfg.Cols, playRows(cfg.Rows)
	w, h := o.viewport()
	o.session = invaders.NewSession(w, h, cfg.Rules, invaders.WithListener(cfg.Listener))
	o.logger.Info("terminal session started", "session", o.session.ID, "cols", o.cols, "rows", o.rows)
	return o
}

func playRows(rows int) int { return max(rows-hudRows, 1) }

func (o *Overlay) viewport() (float64, float64) {
	return float64(o.cols * o.cellW), float64(o.rows * o.cellH)
}

// Session exposes the running session.
func (o *Overlay) Session() *invaders.Session { return o.session }

// Interval is the frame period.
func (o *Overlay) Interval() time.Duration { return o.interval }

// Now is the session clock.
func (o *Overlay) Now() time.Duration { return time.Duration(o.frames) * o.interval }

// Closed reports whether the overlay has been dismissed.
func (o *Overlay) Closed() bool { return o.closed }

// Close dismisses the overlay. Only the first call has an effect.
func (o *Overlay) Close() {
	if o.closed {
		return
	}
	o.closed = true
	r := invaders.DetermineOutcome(o.session)
	o.logger.Info("terminal session closed", "session", o.session.ID, "outcome", r.Outcome.String(), "score", r.Score)
}

// Key handles a key press during play.
func (o *Overlay) Key(ev *tcell.EventKey) {
	now := o.Now()
	until := now + o.hold
	switch ev.Key() {
	case tcell.KeyEscape:
		o.Close()
	case tcell.KeyEnter:
		if o.session.Status().Terminal() {
			o.Close()
		}
	case tcell.KeyLeft:
		o.leftUntil = until
		o.rightUntil = 0
	case tcell.KeyRight:
		o.rightUntil = until
		o.leftUntil = 0
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			o.fireUntil = until
		case 'q', 'Q':
			o.Close()
		}
	}
}

// input reports the emulated held keys at now.
func (o *Overlay) input(now time.Duration) invaders.Input {
	return invaders.Input{
		Left:  now < o.leftUntil,
		Right: now < o.rightUntil,
		Fire:  now < o.fireUntil,
	}
}

// Frame ticks the session and reports whether play continues. It returns
// false once the overlay is closed or the session has finished.
func (o *Overlay) Frame(now time.Duration) bool {
	if o.closed || o.session.Status().Terminal() {
		return false
	}
	o.session.Tick(now, o.input(now))
	o.frames++
	return !o.session.Status().Terminal()
}

// Resize re-lays out the session for a new grid.
func (o *Overlay) Resize(cols, rows int) {
	rows = playRows(rows)
	if cols == o.cols && rows == o.rows {
		return
	}
	o.cols, o.rows = cols, rows
	w, h := o.viewport()
	o.session.Resize(w, h)
}

// Draw renders the HUD row, the playfield and the result box.
func (o *Overlay) Draw(screen tcell.Screen) {
	s := o.session
	o.session.Render(cellSurface{
		screen: screen,
		cellW:  float64(o.cellW),
		cellH:  float64(o.cellH),
		top:    hudRows,
		cols:   o.cols,
		rows:   o.rows,
	})

	hud := tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack)
	for x := 0; x < o.cols; x++ {
		screen.SetContent(x, 0, ' ', nil, hud)
	}
	drawString(screen, 0, 0, fmt.Sprintf(" SCORE: %d  ←/→ move  SPACE fire  ESC abort", s.Score()), hud)

	if !s.Status().Terminal() {
		return
	}
	r := invaders.DetermineOutcome(s)
	mid := hudRows + o.rows/2
	box := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkGreen)
	if r.Outcome == invaders.OutcomeBreached {
		box = box.Background(tcell.ColorDarkRed)
	}
	drawCentered(screen, mid-1, "  "+r.Outcome.Headline()+"  ", box.Bold(true))
	drawCentered(screen, mid, fmt.Sprintf("  FINAL SCORE: %d  ", r.Score), box)
	drawCentered(screen, mid+1, "  [ENTER] RETURN TO TERMINAL  ", box)
}
