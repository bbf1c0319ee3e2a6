package invaders

// Outcome classifies how a session ended, including sessions that were
// still playing when they were dismissed.
type Outcome int

const (
	OutcomeAborted Outcome = iota
	OutcomeDefended
	OutcomeBreached
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDefended:
		return "defended"
	case OutcomeBreached:
		return "breached"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Headline is the banner text shown for the outcome.
func (o Outcome) Headline() string {
	switch o {
	case OutcomeDefended:
		return "SYSTEM DEFENDED"
	case OutcomeBreached:
		return "SYSTEM BREACHED"
	default:
		return "MISSION ABORTED"
	}
}

// OutcomeReason summarises a session for end screens and reports.
type OutcomeReason struct {
	Outcome     Outcome
	Score       int
	Destroyed   int
	Total       int
	Stats       Stats
	DeepestRowY float64
	PlayerY     float64
	Description string
}

// DetermineOutcome inspects a session and explains its result.
func DetermineOutcome(s *Session) OutcomeReason {
	total := len(s.invaders)
	destroyed := 0
	deepest := 0.0
	for _, inv := range s.invaders {
		if !inv.Active {
			destroyed++
			continue
		}
		if inv.Bottom() > deepest {
			deepest = inv.Bottom()
		}
	}

	base := OutcomeReason{
		Score:       s.score,
		Destroyed:   destroyed,
		Total:       total,
		Stats:       s.stats,
		DeepestRowY: deepest,
		PlayerY:     s.player.Y,
	}

	switch s.status {
	case StatusWon:
		base.Outcome = OutcomeDefended
		if s.stats.Shots == s.stats.Hits && s.stats.Shots > 0 {
			base.Description = "flawless_every_shot_hit"
		} else {
			base.Description = "swarm_eliminated"
		}
	case StatusLost:
		base.Outcome = OutcomeBreached
		switch {
		case destroyed == 0:
			base.Description = "breached_no_kills"
		case destroyed*2 >= total:
			base.Description = "breached_after_heavy_losses"
		default:
			base.Description = "breached_swarm_intact"
		}
	default:
		base.Outcome = OutcomeAborted
		base.Description = "dismissed_while_playing"
	}
	return base
}
