package game

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/planetary-defense/internal/invaders"
	"github.com/Garsondee/planetary-defense/internal/konami"
	"github.com/Garsondee/planetary-defense/internal/profile"
	"github.com/Garsondee/planetary-defense/internal/sfx"
	"github.com/Garsondee/planetary-defense/internal/theme"
)

// wheelStep converts one wheel notch into pixels.
const wheelStep = 40

// Options configures a Game.
type Options struct {
	Width, Height int
	Rules         invaders.Rules
	// Code overrides the activation sequence when non-empty.
	Code      []string
	Theme     theme.ID
	Sound     sfx.Player
	Clipboard func(string) error
	Logger    *slog.Logger
	Profile   *profile.Profile
}

// Game is the ebiten host: the profile page, the hidden detector and, once
// the code is entered, the defense overlay on top.
type Game struct {
	width  int
	height int
	frame  int

	page     *Page
	coord    *theme.Coordinator
	detector *konami.Detector
	console  *Console
	overlay  *Overlay

	rules     invaders.Rules
	sound     sfx.Player
	clipboard func(string) error
	logger    *slog.Logger
	glyphs    *glyphImages

	prevMouseLeft bool // for edge-triggered click detection
}

// frameInput is everything Update reads from ebiten in one frame.
type frameInput struct {
	Pressed []string // names of keys that went down this frame

	Left, Right, Fire bool

	Wheel  float64
	Click  bool
	ClickX int
	ClickY int
}

// New builds the host and emits the detector hint to the console.
func New(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Sound == nil {
		opts.Sound = sfx.Nop{}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1000, 800
	}
	if opts.Rules == (invaders.Rules{}) {
		opts.Rules = invaders.DefaultRules()
	}
	p := profile.Default()
	if opts.Profile != nil {
		p = *opts.Profile
	}

	g := &Game{
		width:     opts.Width,
		height:    opts.Height,
		coord:     theme.NewCoordinator(),
		console:   NewConsole(),
		rules:     opts.Rules,
		sound:     opts.Sound,
		clipboard: opts.Clipboard,
		logger:    opts.Logger,
		glyphs:    newGlyphImages(opts.Logger),
	}
	if opts.Theme != "" {
		if err := g.coord.SetTheme(opts.Theme); err != nil {
			g.logger.Warn("ignoring configured theme", "theme", opts.Theme, "err", err)
		}
	}
	g.coord.OnChange(func(sel theme.Selection) {
		g.logger.Debug("theme changed", "theme", string(sel.Theme), "expanded", string(sel.Expanded), "tldr", sel.TLDR)
	})
	g.page = NewPage(p, g.coord, g.logger)
	g.page.SetViewport(g.width, g.height)

	detOpts := []konami.Option{
		konami.WithLogger(g.logger),
		konami.WithOnActivate(g.activate),
		konami.WithHintSink(func(msg string) { g.console.Add(SourceDetector, msg) }),
	}
	if len(opts.Code) > 0 {
		detOpts = append(detOpts, konami.WithCode(opts.Code...))
	}
	g.detector = konami.New(detOpts...)

	g.console.Add(SourceSystem, "profile loaded  press ` to hide this console")
	g.detector.Mount()
	return g
}

// activate mounts the overlay. It runs from inside the detector when the
// sequence completes.
func (g *Game) activate() {
	if g.overlay != nil {
		return
	}
	g.sound.Play(sfx.SoundActivate)
	g.console.Add(SourceDetector, "code accepted  planetary defense online")
	g.overlay = NewOverlay(OverlayConfig{
		Width:     g.width,
		Height:    g.height,
		Rules:     g.rules,
		Listener:  invaders.Fanout(sfx.Listener(g.sound), g.console.Listener()),
		Lock:      g.page,
		OnClose:   g.overlayClosed,
		Clipboard: g.clipboard,
		Logger:    g.logger,
		glyphs:    g.glyphs,
	})
}

func (g *Game) overlayClosed(r invaders.OutcomeReason) {
	g.detector.Deactivate()
	g.console.Addf(SourceSystem, "defense offline: %s  score %d", r.Outcome.Headline(), r.Score)
	g.overlay = nil
}

// Overlay returns the mounted overlay, or nil.
func (g *Game) Overlay() *Overlay { return g.overlay }

// Page returns the host page.
func (g *Game) Page() *Page { return g.page }

// Detector returns the activation detector.
func (g *Game) Detector() *konami.Detector { return g.detector }

// Console returns the on-screen console.
func (g *Game) Console() *Console { return g.console }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.step(g.sampleInput())
	return nil
}

func (g *Game) sampleInput() frameInput {
	in := frameInput{
		Pressed: KeyNames(inpututil.AppendJustPressedKeys(nil)),
		Left:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Fire:    ebiten.IsKeyPressed(ebiten.KeySpace),
	}
	_, in.Wheel = ebiten.Wheel()

	mouseLeft := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if mouseLeft && !g.prevMouseLeft {
		in.Click = true
		in.ClickX, in.ClickY = ebiten.CursorPosition()
	}
	g.prevMouseLeft = mouseLeft
	return in
}

// step advances the host by one frame of input.
func (g *Game) step(in frameInput) {
	g.frame++
	g.console.SetFrame(g.frame)

	if g.overlay != nil {
		g.overlay.Update(overlayControls(in))
		return
	}

	for _, name := range in.Pressed {
		if name == "`" {
			g.console.Toggle()
			continue
		}
		if g.detector.KeyDown(name) {
			// The overlay owns the rest of this frame's input.
			return
		}
		g.page.HandleKey(name)
	}
	if in.Wheel != 0 {
		g.page.Scroll(int(-in.Wheel * wheelStep))
	}
	if in.Click {
		g.page.Click(in.ClickX, in.ClickY)
	}
}

func overlayControls(in frameInput) Controls {
	c := Controls{
		Left:   in.Left,
		Right:  in.Right,
		Fire:   in.Fire,
		Click:  in.Click,
		ClickX: in.ClickX,
		ClickY: in.ClickY,
	}
	for _, name := range in.Pressed {
		switch name {
		case "Escape":
			c.Escape = true
		case "Enter":
			c.Enter = true
		case "c":
			c.Copy = true
		}
	}
	return c
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.page.Draw(screen)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	g.console.Draw(screen, g.width, g.height)
}

// Layout implements ebiten.Game. The logical screen tracks the window so
// a resize re-lays out the page and any running session.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.page.SetViewport(g.width, g.height)
		if g.overlay != nil {
			g.overlay.Resize(g.width, g.height)
		}
	}
	return g.width, g.height
}
