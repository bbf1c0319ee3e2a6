package invaders

// Kind tags the concrete variant behind an Entity.
type Kind int

const (
	KindPlayer Kind = iota
	KindLaser
	KindInvader
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindLaser:
		return "laser"
	case KindInvader:
		return "invader"
	default:
		return "unknown"
	}
}

// Glyph selects the sprite drawn for an entity.
type Glyph int

const (
	GlyphNone Glyph = iota
	GlyphRocket
	GlyphInvader // even rows
	GlyphAlien   // odd rows
)

func (g Glyph) String() string {
	switch g {
	case GlyphRocket:
		return "rocket"
	case GlyphInvader:
		return "invader"
	case GlyphAlien:
		return "alien"
	default:
		return "none"
	}
}

// Body is the payload shared by every entity: an axis-aligned box in
// viewport pixels plus the alive flag.
type Body struct {
	X, Y   float64
	W, H   float64
	Active bool
}

// Right returns the x coordinate of the right edge.
func (b Body) Right() float64 { return b.X + b.W }

// Bottom returns the y coordinate of the lower edge.
func (b Body) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal centre.
func (b Body) CenterX() float64 { return b.X + b.W/2 }

// Overlaps reports strict AABB overlap. Touching edges do not overlap.
func (b Body) Overlaps(o Body) bool {
	return b.X < o.X+o.W &&
		b.X+b.W > o.X &&
		b.Y < o.Y+o.H &&
		b.Y+b.H > o.Y
}

// Entity is the closed set of simulated objects. Only this package can
// implement it, so a type switch over *Player, *Laser and *Invader is total.
type Entity interface {
	Kind() Kind
	Bounds() Body
	sealed()
}

// Player is the singleton ship at the bottom of the viewport.
type Player struct {
	Body
	Speed float64
	Glyph Glyph
}

func (*Player) Kind() Kind { return KindPlayer }
func (p *Player) Bounds() Body { return p.Body }
func (*Player) sealed() {}

// Laser is a projectile travelling straight up.
type Laser struct {
	Body
	Speed float64
}

func (*Laser) Kind() Kind { return KindLaser }
func (l *Laser) Bounds() Body { return l.Body }
func (*Laser) sealed() {}

// Invader is one cell of the swarm grid. Destroyed invaders stay in the
// grid with Active=false so Row/Col keep their meaning.
type Invader struct {
	Body
	Row, Col int
	Glyph    Glyph
}

func (*Invader) Kind() Kind { return KindInvader }
func (i *Invader) Bounds() Body { return i.Body }
func (*Invader) sealed() {}
