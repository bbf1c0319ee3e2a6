package invaders

import "time"

// Tick advances the simulation by one frame. now is a monotonic timestamp
// (time since the session started is fine) used only for the fire cooldown.
// A terminal session ignores Tick.
//
// Order per frame:
//  1. win check (no movement on the winning frame)
//  2. player movement, clamped to the viewport
//  3. firing, rate-limited by the cooldown
//  4. laser movement and off-screen culling flags
//  5. swarm sweep, wall bounce, drop and loss check
//  6. laser/invader collisions
//  7. cleanup of dead lasers
func (s *Session) Tick(now time.Duration, in Input) {
	if s.status.Terminal() {
		return
	}
	s.stats.Ticks++

	if s.ActiveInvaders() == 0 {
		s.status = StatusWon
		s.emit(Event{Kind: EventWon, At: now, Score: s.score})
		return
	}

	s.movePlayer(in)
	if in.Fire {
		s.tryFire(now)
	}
	s.moveLasers()
	s.sweep(now)
	s.collide(now)
	s.cleanup()
}

func (s *Session) movePlayer(in Input) {
	p := &s.player
	maxX := s.width - p.W
	if maxX < 0 {
		maxX = 0
	}
	if in.Left && p.X > 0 {
		p.X -= p.Speed
		if p.X < 0 {
			p.X = 0
		}
	}
	if in.Right && p.X < maxX {
		p.X += p.Speed
		if p.X > maxX {
			p.X = maxX
		}
	}
}

// tryFire spawns a laser when the cooldown has elapsed. The first shot of a
// session is always allowed.
func (s *Session) tryFire(now time.Duration) {
	if s.hasShot && now-s.lastShot < s.rules.FireCooldown {
		return
	}
	r := s.rules
	p := s.player
	l := &Laser{
		Body: Body{
			X:      p.CenterX() - r.LaserWidth/2,
			Y:      p.Y - r.LaserMuzzle,
			W:      r.LaserWidth,
			H:      r.LaserHeight,
			Active: true,
		},
		Speed: r.LaserSpeed,
	}
	s.lasers = append(s.lasers, l)
	s.lastShot = now
	s.hasShot = true
	s.stats.Shots++
	s.emit(Event{Kind: EventFired, At: now, Score: s.score, X: l.X, Y: l.Y})
}

// moveLasers only flags lasers that left the screen; cleanup drops them
// after the collision pass so every pass in a tick sees the same set.
func (s *Session) moveLasers() {
	for _, l := range s.lasers {
		if !l.Active {
			continue
		}
		l.Y -= l.Speed
		if l.Y < s.rules.LaserCullY {
			l.Active = false
		}
	}
}

// sweep moves the swarm as one unit and handles the wall bounce.
func (s *Session) sweep(now time.Duration) {
	r := s.rules
	dx := s.direction * s.sweepSpeed
	hitWall := false
	for _, inv := range s.invaders {
		if !inv.Active {
			continue
		}
		inv.X += dx
		if inv.X <= r.WallMargin || inv.X >= s.width-inv.W-r.WallMargin {
			hitWall = true
		}
	}
	if !hitWall {
		return
	}

	s.direction = -s.direction
	lost := false
	for _, inv := range s.invaders {
		if !inv.Active {
			continue
		}
		inv.Y += r.DropStep
		if inv.Bottom() >= s.player.Y {
			lost = true
		}
	}
	s.sweepSpeed += r.SpeedIncrement
	s.stats.WallHits++
	s.stats.LastSpeed = s.sweepSpeed
	s.emit(Event{Kind: EventWallHit, At: now, Score: s.score, Speed: s.sweepSpeed})

	if lost {
		s.status = StatusLost
		s.emit(Event{Kind: EventLost, At: now, Score: s.score})
	}
}

// collide tests every live laser against every live invader. The grid is
// small (tens of invaders, a handful of lasers) so the quadratic pass is fine.
func (s *Session) collide(now time.Duration) {
	for _, l := range s.lasers {
		if !l.Active {
			continue
		}
		for _, inv := range s.invaders {
			if !inv.Active || !l.Overlaps(inv.Body) {
				continue
			}
			inv.Active = false
			l.Active = false
			s.score += s.rules.PointsPerHit
			s.stats.Hits++
			s.emit(Event{Kind: EventHit, At: now, Score: s.score, X: inv.CenterX(), Y: inv.Y})
			break
		}
	}
}

func (s *Session) cleanup() {
	kept := s.lasers[:0]
	for _, l := range s.lasers {
		if l.Active {
			kept = append(kept, l)
		}
	}
	for i := len(kept); i < len(s.lasers); i++ {
		s.lasers[i] = nil
	}
	s.lasers = kept
}
