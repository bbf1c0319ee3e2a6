package invaders

import (
	"fmt"
	"time"
)

// EventKind names something observable that happened during a tick.
type EventKind int

const (
	EventFired EventKind = iota
	EventHit
	EventWallHit
	EventWon
	EventLost
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventFired:
		return "fired"
	case EventHit:
		return "hit"
	case EventWallHit:
		return "wall_hit"
	case EventWon:
		return "won"
	case EventLost:
		return "lost"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is delivered to a session's listener. Score is the score after the
// event was applied; X/Y locate the event when it has a position.
type Event struct {
	Kind  EventKind
	Tick  int
	At    time.Duration
	Score int
	X, Y  float64
	Speed float64 // sweep speed, set on wall hits
}

// Listener receives events synchronously from inside Tick. It must not
// call back into the session's mutators.
type Listener func(Event)

// LogEntry is one recorded event.
type LogEntry struct {
	Tick  int
	Kind  EventKind
	Score int
	Value string
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] hit       score=30 (412,180)
func (e LogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-9s score=%d %s", e.Tick, e.Kind, e.Score, e.Value)
}

// EventLog collects events from a session. It is unbounded and meant for
// tests and headless reports; the on-screen console is a separate ring buffer.
type EventLog struct {
	entries []LogEntry
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Record appends an event. It has the Listener signature.
func (el *EventLog) Record(ev Event) {
	var value string
	switch ev.Kind {
	case EventFired, EventHit:
		value = fmt.Sprintf("(%.0f,%.0f)", ev.X, ev.Y)
	case EventWallHit:
		value = fmt.Sprintf("speed=%.1f", ev.Speed)
	}
	el.entries = append(el.entries, LogEntry{
		Tick:  ev.Tick,
		Kind:  ev.Kind,
		Score: ev.Score,
		Value: value,
	})
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []LogEntry {
	return el.entries
}

// Filter returns entries of the given kind.
func (el *EventLog) Filter(kind EventKind) []LogEntry {
	var out []LogEntry
	for _, e := range el.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries of the given kind were recorded.
func (el *EventLog) Count(kind EventKind) int {
	n := 0
	for _, e := range el.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (el *EventLog) FilterTickRange(fromTick, toTick int) []LogEntry {
	var out []LogEntry
	for _, e := range el.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// Fanout returns a listener that forwards each event to every non-nil listener.
func Fanout(ls ...Listener) Listener {
	return func(ev Event) {
		for _, l := range ls {
			if l != nil {
				l(ev)
			}
		}
	}
}
