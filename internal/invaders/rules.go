package invaders

import "time"

// Rules holds every tunable of a session. DefaultRules matches the classic
// easter-egg game; config files override individual fields.
type Rules struct {
	// Player.
	PlayerSize         float64
	PlayerSpeed        float64
	PlayerBottomOffset float64 // distance from viewport bottom to player top

	// Firing.
	FireCooldown time.Duration
	LaserWidth   float64
	LaserHeight  float64
	LaserSpeed   float64
	LaserMuzzle  float64 // laser spawns this far above the player top
	LaserCullY   float64 // lasers whose y drops below this are culled

	// Swarm layout.
	Rows        int
	MaxCols     int
	ColumnSlot  float64 // viewport pixels reserved per column when fitting
	SpacingX    float64
	SpacingY    float64
	InvaderSize float64
	GridTop     float64

	// Swarm motion.
	WallMargin     float64
	DropStep       float64
	InitialSpeed   float64
	SpeedIncrement float64

	PointsPerHit int

	// KeepScoreOnResize preserves the score across a viewport change.
	// The layout is always rebuilt.
	KeepScoreOnResize bool
}

// DefaultRules returns the stock tuning.
func DefaultRules() Rules {
	return Rules{
		PlayerSize:         40,
		PlayerSpeed:        5,
		PlayerBottomOffset: 60,

		FireCooldown: 300 * time.Millisecond,
		LaserWidth:   4,
		LaserHeight:  15,
		LaserSpeed:   10,
		LaserMuzzle:  10,
		LaserCullY:   -20,

		Rows:        4,
		MaxCols:     10,
		ColumnSlot:  80,
		SpacingX:    60,
		SpacingY:    50,
		InvaderSize: 30,
		GridTop:     80,

		WallMargin:     10,
		DropStep:       20,
		InitialSpeed:   1,
		SpeedIncrement: 0.2,

		PointsPerHit: 10,
	}
}

// Columns returns how many invader columns fit a viewport of the given width.
func (r Rules) Columns(width float64) int {
	if r.ColumnSlot <= 0 {
		return r.MaxCols
	}
	cols := int(width / r.ColumnSlot)
	if cols > r.MaxCols {
		cols = r.MaxCols
	}
	if cols < 0 {
		cols = 0
	}
	return cols
}
