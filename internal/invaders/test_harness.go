package invaders

import (
	"time"

	"github.com/google/uuid"
)

// FrameInterval is the nominal frame time at 60 frames per second.
const FrameInterval = time.Second / 60

// TestSession is a headless harness around Session for tests and the
// headless report. It owns a virtual clock that advances FrameInterval per
// tick and records every event in an EventLog.
type TestSession struct {
	Width   float64
	Height  float64
	Rules   Rules
	Session *Session
	Log     *EventLog

	step    time.Duration
	now     time.Duration
	extra   Listener
	fixedID uuid.UUID
}

// harnessOptionKind controls the pass in which an option is applied.
type harnessOptionKind int

const (
	harnessOptInfra  harnessOptionKind = iota // viewport, rules, clock, listeners
	harnessOptLayout                          // entity placement, after the session exists
)

// HarnessOption is a builder function applied to a TestSession during construction.
type HarnessOption struct {
	kind harnessOptionKind
	fn   func(*TestSession)
}

// WithViewport sets the viewport size.
func WithViewport(w, h float64) HarnessOption {
	return HarnessOption{harnessOptInfra, func(ts *TestSession) {
		ts.Width = w
		ts.Height = h
	}}
}

// WithRules replaces the rules.
func WithRules(r Rules) HarnessOption {
	return HarnessOption{harnessOptInfra, func(ts *TestSession) {
		ts.Rules = r
	}}
}

// WithStep sets the virtual clock step per tick.
func WithStep(d time.Duration) HarnessOption {
	return HarnessOption{harnessOptInfra, func(ts *TestSession) {
		ts.step = d
	}}
}

// WithExtraListener forwards events to l in addition to the harness log.
func WithExtraListener(l Listener) HarnessOption {
	return HarnessOption{harnessOptInfra, func(ts *TestSession) {
		ts.extra = l
	}}
}

// WithSessionID pins the session ID.
func WithSessionID(id uuid.UUID) HarnessOption {
	return HarnessOption{harnessOptInfra, func(ts *TestSession) {
		ts.fixedID = id
	}}
}

// WithPlayerAt moves the player's top-left corner.
func WithPlayerAt(x, y float64) HarnessOption {
	return HarnessOption{harnessOptLayout, func(ts *TestSession) {
		ts.Session.player.X = x
		ts.Session.player.Y = y
	}}
}

// WithNoInvaders empties the swarm. Combine with WithInvaderAt.
func WithNoInvaders() HarnessOption {
	return HarnessOption{harnessOptLayout, func(ts *TestSession) {
		ts.Session.invaders = ts.Session.invaders[:0]
	}}
}

// WithInvaderAt adds a live invader at (x, y).
func WithInvaderAt(x, y float64) HarnessOption {
	return HarnessOption{harnessOptLayout, func(ts *TestSession) {
		s := ts.Session
		size := s.rules.InvaderSize
		s.invaders = append(s.invaders, &Invader{
			Body:  Body{X: x, Y: y, W: size, H: size, Active: true},
			Row:   -1,
			Col:   len(s.invaders),
			Glyph: GlyphInvader,
		})
	}}
}

// WithSweep sets the swarm direction and speed.
func WithSweep(direction, speed float64) HarnessOption {
	return HarnessOption{harnessOptLayout, func(ts *TestSession) {
		ts.Session.direction = direction
		ts.Session.sweepSpeed = speed
	}}
}

// NewTestSession constructs a TestSession in two ordered passes:
//  1. Infrastructure (viewport, rules, clock, listeners), then the session is created
//  2. Layout overrides
func NewTestSession(opts ...HarnessOption) *TestSession {
	ts := &TestSession{
		Width:  1000,
		Height: 800,
		Rules:  DefaultRules(),
		Log:    NewEventLog(),
		step:   FrameInterval,
	}
	for _, o := range opts {
		if o.kind == harnessOptInfra {
			o.fn(ts)
		}
	}
	sessOpts := []Option{WithListener(Fanout(ts.Log.Record, ts.extra))}
	if ts.fixedID != uuid.Nil {
		sessOpts = append(sessOpts, WithID(ts.fixedID))
	}
	ts.Session = NewSession(ts.Width, ts.Height, ts.Rules, sessOpts...)
	for _, o := range opts {
		if o.kind == harnessOptLayout {
			o.fn(ts)
		}
	}
	return ts
}

// Now returns the virtual clock.
func (ts *TestSession) Now() time.Duration { return ts.now }

// Step runs one tick at the current virtual time and then advances the clock.
func (ts *TestSession) Step(in Input) {
	ts.Session.Tick(ts.now, in)
	ts.now += ts.step
}

// RunTicks advances n ticks with constant input.
func (ts *TestSession) RunTicks(n int, in Input) {
	for i := 0; i < n; i++ {
		ts.Step(in)
	}
}

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// It returns the number of ticks run when the predicate held, or -1.
func (ts *TestSession) RunUntil(predicate func(*Session) bool, maxTicks int, input func(*Session) Input) int {
	for i := 0; i < maxTicks; i++ {
		in := Input{}
		if input != nil {
			in = input(ts.Session)
		}
		ts.Step(in)
		if predicate(ts.Session) {
			return i + 1
		}
	}
	return -1
}

// Snapshot captures a lightweight state summary.
type Snapshot struct {
	Tick           int
	Status         Status
	Score          int
	PlayerX        float64
	Lasers         int
	ActiveInvaders int
	SweepSpeed     float64
}

// Snapshot returns the current state.
func (ts *TestSession) Snapshot() Snapshot {
	s := ts.Session
	return Snapshot{
		Tick:           s.stats.Ticks,
		Status:         s.status,
		Score:          s.score,
		PlayerX:        s.player.X,
		Lasers:         len(s.lasers),
		ActiveInvaders: s.ActiveInvaders(),
		SweepSpeed:     s.sweepSpeed,
	}
}
