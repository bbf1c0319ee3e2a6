package game

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Garsondee/planetary-defense/internal/invaders"
)

type countingLock struct {
	held  int
	taken int
}

func (l *countingLock) Lock() func() {
	l.held++
	l.taken++
	done := false
	return func() {
		if !done {
			done = true
			l.held--
		}
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// emptyRules yields a swarm with no invaders, so the first tick wins.
func emptyRules() invaders.Rules {
	r := invaders.DefaultRules()
	r.Rows = 0
	return r
}

type closeRecorder struct {
	calls   int
	reasons []invaders.OutcomeReason
}

func (c *closeRecorder) onClose(r invaders.OutcomeReason) {
	c.calls++
	c.reasons = append(c.reasons, r)
}

func newTestOverlay(rules invaders.Rules, lock ScrollLock, rec *closeRecorder) *Overlay {
	return NewOverlay(OverlayConfig{
		Width:     1000,
		Height:    800,
		Rules:     rules,
		Lock:      lock,
		OnClose:   rec.onClose,
		Clipboard: func(string) error { return nil },
		Logger:    quietLogger(),
	})
}

func TestOverlay_EscapeClosesAndReleasesLock(t *testing.T) {
	lock := &countingLock{}
	rec := &closeRecorder{}
	o := newTestOverlay(invaders.DefaultRules(), lock, rec)
	if lock.held != 1 {
		t.Fatalf("overlay should hold the scroll lock, held=%d", lock.held)
	}

	o.Update(Controls{Right: true})
	if !o.Update(Controls{Escape: true}) {
		t.Fatal("escape should report closed")
	}
	if !o.Closed() {
		t.Fatal("overlay should be closed")
	}
	if lock.held != 0 {
		t.Fatalf("lock should be released, held=%d", lock.held)
	}
	if rec.calls != 1 || rec.reasons[0].Outcome != invaders.OutcomeAborted {
		t.Fatalf("expected one aborted close, got %+v", rec.reasons)
	}

	o.Close()
	o.Update(Controls{Escape: true})
	if rec.calls != 1 {
		t.Fatalf("OnClose must run once, ran %d times", rec.calls)
	}
}

func TestOverlay_TicksOnlyWhilePlaying(t *testing.T) {
	rec := &closeRecorder{}
	o := newTestOverlay(emptyRules(), nil, rec)

	o.Update(Controls{})
	if o.Session().Status() != invaders.StatusWon {
		t.Fatalf("empty swarm should be won on the first tick, got %s", o.Session().Status())
	}
	if o.Now() != invaders.FrameInterval {
		t.Fatalf("clock should have advanced one frame, got %v", o.Now())
	}
	for i := 0; i < 10; i++ {
		o.Update(Controls{Left: true, Fire: true})
	}
	if o.Now() != invaders.FrameInterval {
		t.Fatalf("clock must stop once terminal, got %v", o.Now())
	}
	if o.Closed() {
		t.Fatal("a finished game waits for the player to return")
	}
}

func TestOverlay_EnterClosesWhenTerminal(t *testing.T) {
	rec := &closeRecorder{}
	o := newTestOverlay(emptyRules(), nil, rec)

	o.Update(Controls{Enter: true})
	if o.Closed() {
		t.Fatal("enter while playing does nothing")
	}
	o.Update(Controls{Enter: true})
	if !o.Closed() {
		t.Fatal("enter on the result screen should close")
	}
	if rec.reasons[0].Outcome != invaders.OutcomeDefended {
		t.Fatalf("expected defended, got %s", rec.reasons[0].Outcome)
	}
}

func TestOverlay_ReturnButtonClick(t *testing.T) {
	rec := &closeRecorder{}
	o := newTestOverlay(emptyRules(), nil, rec)
	o.Update(Controls{})

	o.Update(Controls{Click: true, ClickX: 10, ClickY: 10})
	if o.Closed() {
		t.Fatal("click outside the button should not close")
	}
	o.Update(Controls{Click: true, ClickX: 500, ClickY: 460})
	if !o.Closed() {
		t.Fatal("click on the return button should close")
	}
}

func TestOverlay_AbortButtonWhilePlaying(t *testing.T) {
	rec := &closeRecorder{}
	o := newTestOverlay(invaders.DefaultRules(), nil, rec)

	o.Update(Controls{Click: true, ClickX: 900, ClickY: 30})
	if !o.Closed() {
		t.Fatal("abort button should close the overlay")
	}
	if o.Now() != 0 {
		t.Fatalf("the aborting frame must not tick, clock=%v", o.Now())
	}
	if rec.reasons[0].Outcome != invaders.OutcomeAborted {
		t.Fatalf("expected aborted, got %s", rec.reasons[0].Outcome)
	}
}

func TestOverlay_CopyResult(t *testing.T) {
	var copied string
	o := NewOverlay(OverlayConfig{
		Width:     1000,
		Height:    800,
		Rules:     emptyRules(),
		Clipboard: func(s string) error { copied = s; return nil },
		Logger:    quietLogger(),
	})
	o.Update(Controls{Copy: true}) // still playing: ignored
	if copied != "" {
		t.Fatal("copy is only offered on the result screen")
	}
	o.Update(Controls{Copy: true})
	want := "PLANETARY DEFENSE // SYSTEM DEFENDED // score 0 // 0/0 invaders // accuracy 0%"
	if copied != want {
		t.Fatalf("copied %q, want %q", copied, want)
	}
	if o.notice == "" {
		t.Fatal("copy should set a notice")
	}
}

func TestOverlay_CopyFailureKeepsRunning(t *testing.T) {
	o := NewOverlay(OverlayConfig{
		Width:     1000,
		Height:    800,
		Rules:     emptyRules(),
		Clipboard: func(string) error { return errors.New("no display") },
		Logger:    quietLogger(),
	})
	o.Update(Controls{})
	o.Update(Controls{Copy: true})
	if o.Closed() {
		t.Fatal("a clipboard failure must not close the overlay")
	}
	if o.notice != "clipboard unavailable" {
		t.Fatalf("unexpected notice %q", o.notice)
	}
}

func TestOverlay_ResizeRelaysOutSession(t *testing.T) {
	rec := &closeRecorder{}
	o := newTestOverlay(invaders.DefaultRules(), nil, rec)
	o.Resize(800, 600)

	w, h := o.Session().Viewport()
	if w != 800 || h != 600 {
		t.Fatalf("session viewport should follow the window, got %.0fx%.0f", w, h)
	}
	if o.Session().Stats().Resizes != 1 {
		t.Fatalf("expected one resize, got %d", o.Session().Stats().Resizes)
	}
	o.Resize(800, 600)
	if o.Session().Stats().Resizes != 1 {
		t.Fatal("same size is a no-op")
	}
}
