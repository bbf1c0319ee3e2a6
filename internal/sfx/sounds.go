// Package sfx synthesises the arcade sound effects and plays them in
// response to engine events.
package sfx

import (
	"time"

	"github.com/gopxl/beep"
)

// Sound names an effect.
type Sound int

const (
	SoundFire Sound = iota
	SoundHit
	SoundWall
	SoundWin
	SoundLose
	SoundActivate
)

func (s Sound) String() string {
	switch s {
	case SoundFire:
		return "fire"
	case SoundHit:
		return "hit"
	case SoundWall:
		return "wall"
	case SoundWin:
		return "win"
	case SoundLose:
		return "lose"
	case SoundActivate:
		return "activate"
	default:
		return "unknown"
	}
}

// Build returns a fresh finite streamer for s. gain is linear, 1 is full scale.
func Build(s Sound, rate beep.SampleRate, gain float64) beep.Streamer {
	var st beep.Streamer
	switch s {
	case SoundFire:
		d := 90 * time.Millisecond
		st = Envelope(Glide(1400, 500, d, WaveSquare, rate), d, 2*time.Millisecond, 60*time.Millisecond, rate)
		gain *= 0.25
	case SoundHit:
		d := 140 * time.Millisecond
		st = Envelope(Tone(0, d, WaveNoise, rate), d, time.Millisecond, 120*time.Millisecond, rate)
		gain *= 0.4
	case SoundWall:
		d := 60 * time.Millisecond
		st = Envelope(Tone(110, d, WaveSaw, rate), d, 5*time.Millisecond, 40*time.Millisecond, rate)
		gain *= 0.3
	case SoundWin:
		st = beep.Seq(
			note(523.25, 120*time.Millisecond, rate),
			note(659.25, 120*time.Millisecond, rate),
			note(783.99, 240*time.Millisecond, rate),
		)
		gain *= 0.5
	case SoundLose:
		d := 700 * time.Millisecond
		st = Envelope(Glide(440, 80, d, WaveSaw, rate), d, 10*time.Millisecond, 300*time.Millisecond, rate)
		gain *= 0.5
	case SoundActivate:
		st = beep.Seq(
			note(392, 80*time.Millisecond, rate),
			note(784, 160*time.Millisecond, rate),
		)
		gain *= 0.4
	default:
		return beep.Silence(0)
	}
	return volume(st, gain)
}

func note(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return Envelope(Tone(freq, d, WaveSine, rate), d, 5*time.Millisecond, d/2, rate)
}
