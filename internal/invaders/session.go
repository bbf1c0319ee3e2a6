package invaders

import (
	"time"

	"github.com/google/uuid"
)

// Status is the session state machine: Playing is the only non-terminal state.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status can no longer change.
func (s Status) Terminal() bool { return s != StatusPlaying }

// Input is the held-key state sampled once per tick.
type Input struct {
	Left  bool
	Right bool
	Fire  bool
}

// Stats are running counters for one session.
type Stats struct {
	Ticks     int
	Shots     int
	Hits      int
	WallHits  int
	Resizes   int
	LastSpeed float64
}

// Accuracy returns hits per shot, or 0 before the first shot.
func (s Stats) Accuracy() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Shots)
}

// Session is one play-through: created on activation, mutated by Tick,
// terminal once Status leaves Playing. It is not safe for concurrent use;
// the owning overlay drives it from a single goroutine.
type Session struct {
	ID uuid.UUID

	rules  Rules
	width  float64
	height float64

	player   Player
	lasers   []*Laser
	invaders []*Invader

	direction  float64 // +1 right, -1 left
	sweepSpeed float64
	lastShot   time.Duration
	hasShot    bool

	score  int
	status Status
	stats  Stats

	listener Listener
}

// Option configures a Session at construction.
type Option func(*Session)

// WithListener installs the event listener.
func WithListener(l Listener) Option {
	return func(s *Session) { s.listener = l }
}

// WithID overrides the generated session ID.
func WithID(id uuid.UUID) Option {
	return func(s *Session) { s.ID = id }
}

// NewSession creates a fresh session sized to the viewport: player centred,
// full invader grid, status playing, score zero.
func NewSession(width, height float64, rules Rules, opts ...Option) *Session {
	s := &Session{
		ID:    uuid.New(),
		rules: rules,
	}
	for _, o := range opts {
		o(s)
	}
	s.layout(width, height)
	s.score = 0
	s.status = StatusPlaying
	return s
}

// layout rebuilds every viewport-relative position from scratch.
func (s *Session) layout(width, height float64) {
	r := s.rules
	s.width = width
	s.height = height

	s.player = Player{
		Body: Body{
			X:      width/2 - r.PlayerSize/2,
			Y:      height - r.PlayerBottomOffset,
			W:      r.PlayerSize,
			H:      r.PlayerSize,
			Active: true,
		},
		Speed: r.PlayerSpeed,
		Glyph: GlyphRocket,
	}

	cols := r.Columns(width)
	startX := (width - float64(cols)*r.SpacingX) / 2
	s.invaders = make([]*Invader, 0, r.Rows*cols)
	for row := 0; row < r.Rows; row++ {
		glyph := GlyphInvader
		if row%2 == 1 {
			glyph = GlyphAlien
		}
		for col := 0; col < cols; col++ {
			s.invaders = append(s.invaders, &Invader{
				Body: Body{
					X:      startX + float64(col)*r.SpacingX,
					Y:      r.GridTop + float64(row)*r.SpacingY,
					W:      r.InvaderSize,
					H:      r.InvaderSize,
					Active: true,
				},
				Row:   row,
				Col:   col,
				Glyph: glyph,
			})
		}
	}

	s.lasers = s.lasers[:0]
	s.direction = 1
	s.sweepSpeed = r.InitialSpeed
	s.hasShot = false
	s.lastShot = 0
	s.stats.LastSpeed = s.sweepSpeed
}

// Resize re-initialises the layout for a new viewport. A terminal session
// only records the new size; a playing session restarts its swarm and,
// unless the rules keep it, its score.
func (s *Session) Resize(width, height float64) {
	if width == s.width && height == s.height {
		return
	}
	if s.status.Terminal() {
		s.width, s.height = width, height
		return
	}
	s.layout(width, height)
	s.stats.Resizes++
	if !s.rules.KeepScoreOnResize {
		s.score = 0
	}
	s.emit(Event{Kind: EventReset, Score: s.score})
}

// Status returns the current state.
func (s *Session) Status() Status { return s.status }

// Score returns the cumulative score.
func (s *Session) Score() int { return s.score }

// Rules returns the session's tuning.
func (s *Session) Rules() Rules { return s.rules }

// Viewport returns the current viewport size.
func (s *Session) Viewport() (width, height float64) { return s.width, s.height }

// SweepSpeed returns the current horizontal swarm speed.
func (s *Session) SweepSpeed() float64 { return s.sweepSpeed }

// Direction returns +1 while the swarm moves right, -1 while it moves left.
func (s *Session) Direction() float64 { return s.direction }

// Stats returns a copy of the running counters.
func (s *Session) Stats() Stats { return s.stats }

// Player returns a copy of the player.
func (s *Session) Player() Player { return s.player }

// Lasers returns copies of the live lasers.
func (s *Session) Lasers() []Laser {
	out := make([]Laser, len(s.lasers))
	for i, l := range s.lasers {
		out[i] = *l
	}
	return out
}

// Invaders returns copies of every invader, destroyed ones included.
func (s *Session) Invaders() []Invader {
	out := make([]Invader, len(s.invaders))
	for i, inv := range s.invaders {
		out[i] = *inv
	}
	return out
}

// ActiveInvaders returns how many invaders are still alive.
func (s *Session) ActiveInvaders() int {
	n := 0
	for _, inv := range s.invaders {
		if inv.Active {
			n++
		}
	}
	return n
}

// Entities returns every live entity, player first. Handy for generic
// passes such as debug overlays.
func (s *Session) Entities() []Entity {
	out := make([]Entity, 0, 1+len(s.lasers)+len(s.invaders))
	p := s.player
	out = append(out, &p)
	for _, l := range s.lasers {
		if l.Active {
			lc := *l
			out = append(out, &lc)
		}
	}
	for _, inv := range s.invaders {
		if inv.Active {
			ic := *inv
			out = append(out, &ic)
		}
	}
	return out
}

func (s *Session) emit(ev Event) {
	if s.listener == nil {
		return
	}
	ev.Tick = s.stats.Ticks
	s.listener(ev)
}
