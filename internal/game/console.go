package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/planetary-defense/internal/invaders"
)

const (
	consolePanelHeight = 132
	consoleMaxEntries  = 60
	consoleLineHeight  = 14
)

// Source tags where a console line came from.
type Source int

const (
	SourceSystem Source = iota
	SourceDetector
	SourceGame
)

func (s Source) label() string {
	switch s {
	case SourceDetector:
		return "SIG"
	case SourceGame:
		return "DEF"
	default:
		return "SYS"
	}
}

// ConsoleEntry is a single line in the console.
type ConsoleEntry struct {
	Frame   int
	Source  Source
	Message string
}

// Console is a ring buffer of messages rendered along the bottom of the
// window. It stands in for the browser devtools console.
type Console struct {
	entries []ConsoleEntry
	head    int
	count   int
	frame   int
	visible bool
}

// NewConsole creates a console with a fixed capacity.
func NewConsole() *Console {
	return &Console{
		entries: make([]ConsoleEntry, consoleMaxEntries),
		visible: true,
	}
}

// SetFrame stamps subsequent entries with frame.
func (c *Console) SetFrame(frame int) { c.frame = frame }

// Add appends an entry, overwriting the oldest once full.
func (c *Console) Add(src Source, msg string) {
	c.entries[c.head] = ConsoleEntry{Frame: c.frame, Source: src, Message: msg}
	c.head = (c.head + 1) % consoleMaxEntries
	if c.count < consoleMaxEntries {
		c.count++
	}
}

// Addf is Add with formatting.
func (c *Console) Addf(src Source, format string, args ...any) {
	c.Add(src, fmt.Sprintf(format, args...))
}

// Recent returns entries in chronological order (oldest first).
func (c *Console) Recent() []ConsoleEntry {
	result := make([]ConsoleEntry, c.count)
	for i := 0; i < c.count; i++ {
		idx := (c.head - c.count + i + consoleMaxEntries) % consoleMaxEntries
		result[i] = c.entries[idx]
	}
	return result
}

// Toggle shows or hides the panel.
func (c *Console) Toggle() { c.visible = !c.visible }

// Visible reports whether the panel is drawn.
func (c *Console) Visible() bool { return c.visible }

// Listener logs the interesting engine events. Shots are too frequent to keep.
func (c *Console) Listener() invaders.Listener {
	return func(ev invaders.Event) {
		switch ev.Kind {
		case invaders.EventHit:
			c.Addf(SourceGame, "invader down at (%.0f,%.0f)  score %d", ev.X, ev.Y, ev.Score)
		case invaders.EventWallHit:
			c.Addf(SourceGame, "swarm advancing  speed %.1f", ev.Speed)
		case invaders.EventWon:
			c.Addf(SourceGame, "swarm eliminated  final score %d", ev.Score)
		case invaders.EventLost:
			c.Addf(SourceGame, "perimeter breached  final score %d", ev.Score)
		case invaders.EventReset:
			c.Addf(SourceGame, "viewport changed  swarm redeployed")
		}
	}
}

// Draw renders the panel across the bottom of the screen.
func (c *Console) Draw(screen *ebiten.Image, width, height int) {
	if !c.visible {
		return
	}
	panelY := float32(height - consolePanelHeight)
	w := float32(width)

	vector.FillRect(screen, 0, panelY, w, consolePanelHeight, color.RGBA{R: 8, G: 10, B: 14, A: 235}, false)
	vector.StrokeLine(screen, 0, panelY, w, panelY, 1.0, color.RGBA{R: 40, G: 200, B: 60, A: 200}, false)
	vector.FillRect(screen, 0, panelY, w, 16, color.RGBA{R: 16, G: 24, B: 18, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "CONSOLE  (` to hide)", 8, int(panelY)+1)

	entries := c.Recent()
	maxVisible := (consolePanelHeight - 20) / consoleLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := int(panelY) + 20
	for i, e := range entries {
		if i == len(entries)-1 {
			vector.FillRect(screen, 2, float32(y), w-4, consoleLineHeight, color.RGBA{R: 20, G: 40, B: 24, A: 160}, false)
		}
		dot := color.RGBA{R: 120, G: 120, B: 120, A: 255}
		switch e.Source {
		case SourceDetector:
			dot = color.RGBA{R: 0, G: 255, B: 0, A: 255}
		case SourceGame:
			dot = color.RGBA{R: 230, G: 180, B: 40, A: 255}
		}
		vector.FillRect(screen, 5, float32(y+4), 3, 5, dot, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d [%s] %s", e.Frame, e.Source.label(), e.Message), 12, y)
		y += consoleLineHeight
	}
}
