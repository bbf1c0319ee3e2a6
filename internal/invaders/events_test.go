package invaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLog_FilterCountAndRange(t *testing.T) {
	log := NewEventLog()
	log.Record(Event{Kind: EventFired, Tick: 1, X: 498, Y: 730})
	log.Record(Event{Kind: EventHit, Tick: 11, Score: 10, X: 500, Y: 600})
	log.Record(Event{Kind: EventWallHit, Tick: 40, Score: 10, Speed: 1.2})
	log.Record(Event{Kind: EventFired, Tick: 41})

	assert.Len(t, log.Entries(), 4)
	assert.Equal(t, 2, log.Count(EventFired))
	assert.Len(t, log.Filter(EventHit), 1)
	assert.Empty(t, log.Filter(EventLost))

	mid := log.FilterTickRange(10, 40)
	require.Len(t, mid, 2)
	assert.Equal(t, EventHit, mid[0].Kind)
	assert.Equal(t, EventWallHit, mid[1].Kind)
}

func TestLogEntry_String(t *testing.T) {
	log := NewEventLog()
	log.Record(Event{Kind: EventHit, Tick: 42, Score: 30, X: 412, Y: 180})
	log.Record(Event{Kind: EventWallHit, Tick: 43, Score: 30, Speed: 1.4})

	entries := log.Entries()
	assert.Equal(t, "[T=0042] hit       score=30 (412,180)", entries[0].String())
	assert.Equal(t, "[T=0043] wall_hit  score=30 speed=1.4", entries[1].String())
}

func TestFanout_SkipsNilListeners(t *testing.T) {
	var a, b int
	l := Fanout(func(Event) { a++ }, nil, func(Event) { b++ })
	l(Event{})
	l(Event{})
	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)
}

func TestSession_EventsCarryTickAndScore(t *testing.T) {
	var got []Event
	ts := NewTestSession(
		WithExtraListener(func(ev Event) { got = append(got, ev) }),
		WithNoInvaders(),
		WithInvaderAt(485, 600),
		WithSweep(1, 0),
	)
	ts.RunUntil(func(s *Session) bool { return s.Status().Terminal() }, 100, func(*Session) Input { return Input{Fire: true} })

	require.Len(t, got, 3)
	assert.Equal(t, EventFired, got[0].Kind)
	assert.Equal(t, 1, got[0].Tick)
	assert.Equal(t, EventHit, got[1].Kind)
	assert.Equal(t, 10, got[1].Score)
	assert.Equal(t, EventWon, got[2].Kind)
	assert.Equal(t, got[1].Tick+1, got[2].Tick)
	assert.Equal(t, len(got), len(ts.Log.Entries()), "harness log sees the same events")
}
