package invaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutopilot_IdleWhenTerminal(t *testing.T) {
	ts := NewTestSession(WithNoInvaders())
	ts.Step(Input{})
	assert.Equal(t, Input{}, NewAutopilot(1, 0).Input(ts.Session))
}

func TestAutopilot_SteersTowardLowestInvader(t *testing.T) {
	ts := NewTestSession(
		WithNoInvaders(),
		WithInvaderAt(100, 300),
		WithInvaderAt(800, 100),
		WithSweep(1, 0),
	)
	in := NewAutopilot(1, 0).Input(ts.Session)
	assert.True(t, in.Left, "the lower invader is to the left")
	assert.False(t, in.Right)
	assert.False(t, in.Fire)
}

func TestAutopilot_FiresWhenAligned(t *testing.T) {
	ts := NewTestSession(
		WithNoInvaders(),
		WithInvaderAt(485, 300),
		WithSweep(1, 0),
	)
	in := NewAutopilot(1, 0).Input(ts.Session)
	assert.Equal(t, Input{Fire: true}, in)
}

func TestAutopilot_SameSeedSameRun(t *testing.T) {
	run := func() Snapshot {
		ts := NewTestSession(WithViewport(900, 700))
		pilot := NewAutopilot(7, 20)
		ts.RunUntil(func(s *Session) bool { return s.Status().Terminal() }, 5000, pilot.Input)
		return ts.Snapshot()
	}
	assert.Equal(t, run(), run())
}
