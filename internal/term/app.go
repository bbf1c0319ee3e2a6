// Package term is the terminal host: a text rendition of the profile page
// with the same hidden code and defense game behind it.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/planetary-defense/internal/invaders"
	"github.com/Garsondee/planetary-defense/internal/konami"
	"github.com/Garsondee/planetary-defense/internal/loop"
	"github.com/Garsondee/planetary-defense/internal/profile"
	"github.com/Garsondee/planetary-defense/internal/sfx"
	"github.com/Garsondee/planetary-defense/internal/theme"
)

// Options configures an App.
type Options struct {
	Rules      invaders.Rules
	Code       []string
	Theme      theme.ID
	Sound      sfx.Player
	Logger     *slog.Logger
	CellW      int
	CellH      int
	FrameRate  int
	HoldWindow time.Duration
}

// App owns the screen and switches between the page and the overlay.
type App struct {
	screen   tcell.Screen
	opts     Options
	profile  profile.Profile
	coord    *theme.Coordinator
	detector *konami.Detector
	overlay  *Overlay
	stopPlay context.CancelFunc
	logger   *slog.Logger

	status string
	quit   bool

	events chan tcell.Event
	done   chan struct{}
}

// New prepares an App on an initialised screen.
func New(screen tcell.Screen, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Sound == nil {
		opts.Sound = sfx.Nop{}
	}
	if opts.Rules == (invaders.Rules{}) {
		opts.Rules = invaders.DefaultRules()
	}
	a := &App{
		screen:  screen,
		opts:    opts,
		profile: profile.Default(),
		coord:   theme.NewCoordinator(),
		logger:  opts.Logger,
		events:  make(chan tcell.Event, 32),
		done:    make(chan struct{}),
	}
	if opts.Theme != "" {
		if err := a.coord.SetTheme(opts.Theme); err != nil {
			a.logger.Warn("ignoring configured theme", "theme", opts.Theme, "err", err)
		}
	}
	detOpts := []konami.Option{
		konami.WithLogger(a.logger),
		konami.WithOnActivate(a.activate),
		konami.WithHintSink(func(msg string) { a.status = msg }),
	}
	if len(opts.Code) > 0 {
		detOpts = append(detOpts, konami.WithCode(opts.Code...))
	}
	a.detector = konami.New(detOpts...)
	a.detector.Mount()
	return a
}

// Overlay returns the running overlay, or nil.
func (a *App) Overlay() *Overlay { return a.overlay }

// Status is the line shown at the bottom of the page.
func (a *App) Status() string { return a.status }

// Quit reports whether the user asked to leave.
func (a *App) Quit() bool { return a.quit }

func (a *App) activate() {
	if a.overlay != nil {
		return
	}
	a.opts.Sound.Play(sfx.SoundActivate)
	cols, rows := a.screen.Size()
	a.overlay = NewOverlay(OverlayConfig{
		Cols:       cols,
		Rows:       rows,
		CellW:      a.opts.CellW,
		CellH:      a.opts.CellH,
		FrameRate:  a.opts.FrameRate,
		HoldWindow: a.opts.HoldWindow,
		Rules:      a.opts.Rules,
		Listener:   sfx.Listener(a.opts.Sound),
		Logger:     a.logger,
	})
}

func (a *App) finishOverlay() {
	if a.overlay == nil {
		return
	}
	a.overlay.Close()
	r := invaders.DetermineOutcome(a.overlay.Session())
	a.status = fmt.Sprintf("%s  score %d", r.Outcome.Headline(), r.Score)
	a.overlay = nil
	a.detector.Deactivate()
}

// Run pumps events until the user quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	defer close(a.done)
	go a.pollEvents()

	a.draw()
	for !a.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-a.events:
			if err := a.dispatch(ctx, ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// dispatch handles one event and redraws. A live session is played until
// it finishes or closes; a finished one stays on screen until dismissed.
func (a *App) dispatch(ctx context.Context, ev tcell.Event) error {
	a.HandleEvent(ev)
	if a.playing() {
		if err := a.play(ctx); err != nil {
			return err
		}
	}
	if a.overlay != nil && a.overlay.Closed() {
		a.finishOverlay()
	}
	a.draw()
	return nil
}

func (a *App) playing() bool {
	return !a.quit && a.overlay != nil && !a.overlay.Closed() &&
		a.overlay.Session().Status() == invaders.StatusPlaying
}

// play ticks the overlay until the session ends or the overlay closes.
// The returned error is non-nil only when the parent context ended.
func (a *App) play(ctx context.Context) error {
	playCtx, cancel := context.WithCancel(ctx)
	a.stopPlay = cancel
	defer func() {
		cancel()
		a.stopPlay = nil
	}()

	o := a.overlay
	ticks, stop := loop.Ticker(o.Interval())
	defer stop()

	_ = loop.Run(playCtx, ticks, o.Now, func(now time.Duration) bool {
		a.drainEvents(o)
		if a.quit || o.Closed() {
			return false
		}
		more := o.Frame(now)
		a.draw()
		return more
	})
	return ctx.Err()
}

// pollEvents reads events until the screen is finalised.
func (a *App) pollEvents() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.done:
			return
		}
	}
}

// drainEvents handles pending events without blocking. It stops once the
// overlay closes so later keys reach the page.
func (a *App) drainEvents(o *Overlay) {
	for !a.quit && !o.Closed() {
		select {
		case ev := <-a.events:
			a.HandleEvent(ev)
		default:
			return
		}
	}
}

// HandleEvent routes one event to the overlay or the page.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		if a.overlay != nil {
			cols, rows := ev.Size()
			a.overlay.Resize(cols, rows)
		}
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			a.quit = true
			a.cancelPlay()
			return
		}
		if a.overlay != nil {
			a.overlay.Key(ev)
			if a.overlay.Closed() {
				a.cancelPlay()
			}
			return
		}
		a.pageKey(ev)
	}
}

func (a *App) cancelPlay() {
	if a.stopPlay != nil {
		a.stopPlay()
	}
}

// keyName converts a tcell key to the detector's vocabulary.
func keyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return "ArrowUp", true
	case tcell.KeyDown:
		return "ArrowDown", true
	case tcell.KeyLeft:
		return "ArrowLeft", true
	case tcell.KeyRight:
		return "ArrowRight", true
	case tcell.KeyEnter:
		return "Enter", true
	case tcell.KeyEscape:
		return "Escape", true
	case tcell.KeyRune:
		return strings.ToLower(string(ev.Rune())), true
	}
	return "", false
}

func (a *App) pageKey(ev *tcell.EventKey) {
	name, ok := keyName(ev)
	if !ok {
		return
	}
	if a.detector.KeyDown(name) {
		return
	}
	switch {
	case name == "Escape" || name == "q":
		a.quit = true
	case name == "t":
		a.coord.ToggleTLDR()
	case len(name) == 1 && name[0] >= '1' && name[0] <= '9':
		if _, err := a.profile.Toggle(a.coord, a.coord.TLDR(), int(name[0]-'1')); err != nil {
			a.logger.Warn("panel toggle failed", "err", err)
		}
	}
}

func (a *App) draw() {
	a.screen.Clear()
	if a.overlay != nil {
		a.overlay.Draw(a.screen)
	} else {
		a.drawPage()
	}
	a.screen.Show()
}

func (a *App) drawPage() {
	sel := a.coord.Selection()
	pal := sel.Theme.Palette()
	base := tcell.StyleDefault.Foreground(rgb(pal.Text)).Background(rgb(pal.Background))
	dim := base.Foreground(rgb(pal.Secondary))
	accent := base.Foreground(rgb(pal.Accent))

	w, h := a.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a.screen.SetContent(x, y, ' ', nil, base)
		}
	}

	heading := func(s string) string {
		if pal.UppercaseHeaders {
			return strings.ToUpper(s)
		}
		return s
	}

	p := a.profile
	drawString(a.screen, 2, 1, heading(p.Name), base.Bold(true))
	drawString(a.screen, 2, 2, p.Title, dim)
	drawString(a.screen, 2, 3, p.Location+" | "+p.Email, dim)

	y := 5
	for i, panel := range p.Visible(sel.TLDR) {
		if y >= h-2 {
			break
		}
		marker := "+"
		if sel.Expanded == panel.ID {
			marker = "-"
		}
		drawString(a.screen, 2, y, fmt.Sprintf("[%d] %s %s  %s", i+1, marker, heading(panel.Heading), panel.Period), base)
		y++
		if sel.Expanded == panel.ID {
			drawString(a.screen, 8, y, panel.Subheading, dim)
			y++
			drawString(a.screen, 8, y, panel.Description, accent)
			y++
			if len(panel.Technologies) > 0 {
				drawString(a.screen, 8, y, strings.Join(panel.Technologies, ", "), dim)
				y++
			}
		}
	}

	drawString(a.screen, 2, h-2, "[1-9] expand  [t] TL;DR  [q] quit", dim)
	drawString(a.screen, 2, h-1, a.status, accent)
}
