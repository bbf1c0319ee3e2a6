package sfx

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/planetary-defense/internal/invaders"
)

// Player plays effects. Play must not block.
type Player interface {
	Play(Sound)
}

// Nop discards every sound.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Sound) {}

// Mixer mixes effects into a single stream. Attach it to the speaker with
// Open, or pull from it directly in tests.
type Mixer struct {
	mu     sync.Mutex
	mixer  beep.Mixer
	rate   beep.SampleRate
	gain   float64
	played map[Sound]int
}

// NewMixer creates a mixer at the given sample rate. gain is linear.
func NewMixer(rate beep.SampleRate, gain float64) *Mixer {
	return &Mixer{rate: rate, gain: gain, played: make(map[Sound]int)}
}

// Play queues s.
func (m *Mixer) Play(s Sound) {
	st := Build(s, m.rate, m.gain)
	m.mu.Lock()
	m.mixer.Add(st)
	m.played[s]++
	m.mu.Unlock()
}

// Stream implements beep.Streamer.
func (m *Mixer) Stream(samples [][2]float64) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mixer.Stream(samples)
}

// Err implements beep.Streamer.
func (m *Mixer) Err() error { return nil }

// Active returns how many effects are still sounding.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mixer.Len()
}

// Played returns how many times s was queued.
func (m *Mixer) Played(s Sound) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played[s]
}

// Open initialises the speaker and starts streaming m. Call once per process.
func (m *Mixer) Open() error {
	if err := speaker.Init(m.rate, m.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m)
	return nil
}

// Close stops output and drops queued sounds.
func (m *Mixer) Close() {
	speaker.Clear()
	m.mu.Lock()
	m.mixer.Clear()
	m.mu.Unlock()
}

// New returns a speaker-backed mixer when enabled, otherwise Nop. A
// speaker that fails to open falls back to Nop with a warning.
func New(enabled bool, sampleRate int, gain float64, logger *slog.Logger) Player {
	if !enabled {
		return Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := NewMixer(beep.SampleRate(sampleRate), gain)
	if err := m.Open(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return Nop{}
	}
	return m
}

// Listener turns engine events into sounds.
func Listener(p Player) invaders.Listener {
	return func(ev invaders.Event) {
		switch ev.Kind {
		case invaders.EventFired:
			p.Play(SoundFire)
		case invaders.EventHit:
			p.Play(SoundHit)
		case invaders.EventWallHit:
			p.Play(SoundWall)
		case invaders.EventWon:
			p.Play(SoundWin)
		case invaders.EventLost:
			p.Play(SoundLose)
		}
	}
}
