package invaders

import (
	"math"
	"math/rand"
)

// Autopilot steers the player for headless runs. It picks the lowest live
// invader closest to the player, leads the sweep by the laser's travel time,
// and fires once lined up. Jitter adds seeded aiming error so repeated runs
// differ.
type Autopilot struct {
	rng    *rand.Rand
	jitter float64
	aim    float64
	retarg int
}

// NewAutopilot creates a controller. jitter is the maximum aiming error in pixels.
func NewAutopilot(seed int64, jitter float64) *Autopilot {
	return &Autopilot{
		rng:    rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay only
		jitter: jitter,
	}
}

// Input computes the held keys for the next tick.
func (a *Autopilot) Input(s *Session) Input {
	if s.status.Terminal() {
		return Input{}
	}
	target := a.pickTarget(s)
	if target == nil {
		return Input{}
	}

	// Re-roll the aim error every 30 ticks so the pilot drifts a little.
	if a.retarg%30 == 0 && a.jitter > 0 {
		a.aim = (a.rng.Float64()*2 - 1) * a.jitter
	}
	a.retarg++

	r := s.rules
	p := s.player
	travel := 0.0
	if r.LaserSpeed > 0 {
		travel = (p.Y - target.Bottom()) / r.LaserSpeed
	}
	lead := s.direction * s.sweepSpeed * travel
	want := target.CenterX() + lead + a.aim
	dx := want - p.CenterX()

	in := Input{}
	tol := math.Max(p.Speed, target.W/3)
	switch {
	case dx < -tol:
		in.Left = true
	case dx > tol:
		in.Right = true
	}
	in.Fire = math.Abs(dx) <= target.W/2+p.Speed
	return in
}

func (a *Autopilot) pickTarget(s *Session) *Invader {
	var best *Invader
	bestScore := math.Inf(1)
	px := s.player.CenterX()
	for _, inv := range s.invaders {
		if !inv.Active {
			continue
		}
		// Prefer low invaders, then near ones.
		score := -inv.Y*4 + math.Abs(inv.CenterX()-px)
		if score < bestScore {
			bestScore = score
			best = inv
		}
	}
	return best
}
