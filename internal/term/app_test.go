package term

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/planetary-defense/internal/invaders"
	"github.com/Garsondee/planetary-defense/internal/konami"
	"github.com/Garsondee/planetary-defense/internal/theme"
)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 41)

	a := New(screen, Options{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		HoldWindow: 120 * time.Millisecond,
	})
	return a, screen
}

func codeEvents() []tcell.Event {
	evs := make([]tcell.Event, 0, len(konami.Code))
	for _, k := range konami.Code {
		switch k {
		case "ArrowUp":
			evs = append(evs, tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
		case "ArrowDown":
			evs = append(evs, tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
		case "ArrowLeft":
			evs = append(evs, tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
		case "ArrowRight":
			evs = append(evs, tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
		default:
			evs = append(evs, tcell.NewEventKey(tcell.KeyRune, rune(k[0]), tcell.ModNone))
		}
	}
	return evs
}

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestApp_HintShownOnStartup(t *testing.T) {
	a, _ := newTestApp(t)
	if a.Status() != konami.Hint {
		t.Errorf("expected hint in status line, got %q", a.Status())
	}
}

func TestApp_CodeStartsOverlay(t *testing.T) {
	a, _ := newTestApp(t)
	for _, ev := range codeEvents() {
		a.HandleEvent(ev)
	}
	o := a.Overlay()
	if o == nil {
		t.Fatal("overlay should start after the code")
	}
	w, h := o.Session().Viewport()
	if w != 800 || h != 640 {
		t.Errorf("100x41 cells at 8x16 minus the HUD row should be 800x640, got %.0fx%.0f", w, h)
	}
}

func TestApp_DigitsTogglePanels(t *testing.T) {
	a, screen := newTestApp(t)
	a.HandleEvent(runeKey('3'))
	if id, _ := a.coord.Expanded(); id != "oanda" {
		t.Errorf("expected oanda expanded, got %q", id)
	}
	if a.coord.Current() != theme.Oanda {
		t.Errorf("expected oanda theme, got %s", a.coord.Current())
	}

	a.draw()
	if !strings.Contains(rowText(screen, 1), "John Doe") {
		t.Errorf("name row missing: %q", rowText(screen, 1))
	}
}

func TestApp_QuitFromPage(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleEvent(runeKey('q'))
	if !a.Quit() {
		t.Error("q should quit from the page")
	}
}

func TestOverlay_HoldWindowEmulatesHeldKey(t *testing.T) {
	o := NewOverlay(OverlayConfig{
		Cols: 100, Rows: 41, CellW: 8, CellH: 16, FrameRate: 60,
		HoldWindow: 120 * time.Millisecond,
		Rules:      invaders.DefaultRules(),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	start := o.Session().Player().X

	o.Key(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	for i := 0; i < 20; i++ {
		o.Frame(o.Now())
	}
	// 120ms covers frames 0..7 at 60fps, 5px each.
	if got := o.Session().Player().X - start; got != 40 {
		t.Errorf("expected 40px of travel, got %.0f", got)
	}
}

func TestOverlay_DefaultHoldWindowMovesPlayer(t *testing.T) {
	o := NewOverlay(OverlayConfig{Cols: 100, Rows: 41})
	start := o.Session().Player().X

	o.Key(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	for i := 0; i < 20; i++ {
		o.Frame(o.Now())
	}
	if got := o.Session().Player().X - start; got != 40 {
		t.Errorf("expected 40px of travel with the default hold window, got %.0f", got)
	}
}

func TestOverlay_FrameStopsWhenSessionEnds(t *testing.T) {
	rules := invaders.DefaultRules()
	rules.Rows = 0
	o := NewOverlay(OverlayConfig{Cols: 100, Rows: 41, Rules: rules})

	if o.Frame(o.Now()) {
		t.Error("the frame that wins the session should stop the loop")
	}
	if o.Session().Status() != invaders.StatusWon {
		t.Fatalf("expected won, got %s", o.Session().Status())
	}
	at := o.Now()
	if o.Frame(at) {
		t.Error("a finished session keeps the loop stopped")
	}
	if o.Now() != at {
		t.Errorf("clock advanced after the session ended: %v -> %v", at, o.Now())
	}
	if o.Closed() {
		t.Error("the result box stays up until dismissed")
	}
}

func TestApp_FinishedSessionWaitsForDismissal(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 41)

	rules := invaders.DefaultRules()
	rules.Rows = 0
	a := New(screen, Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Rules:  rules,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, ev := range codeEvents() {
		if err := a.dispatch(ctx, ev); err != nil {
			t.Fatalf("dispatch: %v", err)
		}
	}

	o := a.Overlay()
	if o == nil {
		t.Fatal("overlay should stay mounted after the session ends")
	}
	if o.Session().Status() != invaders.StatusWon {
		t.Fatalf("expected won, got %s", o.Session().Status())
	}
	at := o.Now()
	if at != o.Interval() {
		t.Errorf("play should stop after the winning frame, clock at %v", at)
	}
	found := false
	for y := 0; y < 41; y++ {
		if strings.Contains(rowText(screen, y), "FINAL SCORE: 0") {
			found = true
			break
		}
	}
	if !found {
		t.Error("result box should be on screen")
	}

	if err := a.dispatch(ctx, runeKey('x')); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if a.Overlay() == nil || o.Now() != at {
		t.Error("other keys leave the finished session untouched")
	}

	if err := a.dispatch(ctx, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if a.Overlay() != nil {
		t.Error("enter should dismiss the result box")
	}
	if !strings.Contains(a.Status(), "SYSTEM DEFENDED") {
		t.Errorf("status should report the win, got %q", a.Status())
	}
	if a.detector.Active() {
		t.Error("detector should be re-armed")
	}
}

func TestOverlay_EnterOnlyClosesWhenFinished(t *testing.T) {
	rules := invaders.DefaultRules()
	rules.Rows = 0
	o := NewOverlay(OverlayConfig{Cols: 100, Rows: 41, Rules: rules})

	enter := tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	o.Key(enter)
	if o.Closed() {
		t.Fatal("enter while playing must not close")
	}
	o.Frame(o.Now())
	if o.Session().Status() != invaders.StatusWon {
		t.Fatalf("expected won, got %s", o.Session().Status())
	}
	o.Key(enter)
	if !o.Closed() {
		t.Error("enter on the result box should close")
	}
	if o.Frame(o.Now()) {
		t.Error("a closed overlay stops the loop")
	}
}

func TestOverlay_ResizeUpdatesViewport(t *testing.T) {
	o := NewOverlay(OverlayConfig{Cols: 100, Rows: 41, Rules: invaders.DefaultRules()})
	o.Resize(120, 51)
	w, h := o.Session().Viewport()
	if w != 960 || h != 800 {
		t.Errorf("expected 960x800, got %.0fx%.0f", w, h)
	}
}

func TestOverlay_DrawShowsScore(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(100, 41)

	o := NewOverlay(OverlayConfig{Cols: 100, Rows: 41, Rules: invaders.DefaultRules()})
	o.Draw(screen)
	if !strings.Contains(rowText(screen, 0), "SCORE: 0") {
		t.Errorf("HUD row should show the score, got %q", rowText(screen, 0))
	}
	// Player centre is at (400, 600) px -> cell (50, 1+37).
	if r, _, _, _ := screen.GetContent(50, 38); r != '▲' {
		t.Errorf("expected rocket at (50,38), got %q", r)
	}
}

func TestApp_RunPlaysAndReturnsToPage(t *testing.T) {
	a, _ := newTestApp(t)
	for _, ev := range codeEvents() {
		a.events <- ev
	}
	a.events <- tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	a.events <- runeKey('q')

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if a.Overlay() != nil {
		t.Error("overlay should be gone after escape")
	}
	if a.detector.Active() {
		t.Error("detector should be re-armed")
	}
	if !strings.Contains(a.Status(), "MISSION ABORTED") {
		t.Errorf("status should report the abort, got %q", a.Status())
	}
}
