package theme

import (
	"fmt"
	"slices"
	"sync"
)

// PanelID identifies a content panel, e.g. "education" or an experience key.
type PanelID string

// Selection is a snapshot of the coordinator state.
type Selection struct {
	Theme    ID
	Expanded PanelID // empty when nothing is expanded
	TLDR     bool
}

// Coordinator records at most one expanded panel and the active theme.
// A single slot holds the expanded panel, so expanding one implicitly
// collapses the previous one.
type Coordinator struct {
	mu        sync.Mutex
	sel       Selection
	listeners []func(Selection)
}

// NewCoordinator starts collapsed with the default theme.
func NewCoordinator() *Coordinator {
	return &Coordinator{sel: Selection{Theme: Default}}
}

// Current returns the active theme.
func (c *Coordinator) Current() ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Theme
}

// Expanded returns the expanded panel, if any.
func (c *Coordinator) Expanded() (PanelID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Expanded, c.sel.Expanded != ""
}

// Selection returns the full state.
func (c *Coordinator) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel
}

// SetExpanded overwrites the expanded slot. An empty id collapses.
func (c *Coordinator) SetExpanded(id PanelID) {
	c.update(func(s *Selection) { s.Expanded = id })
}

// Collapse clears the expanded slot and resets the theme to Default.
func (c *Coordinator) Collapse() {
	c.update(func(s *Selection) {
		s.Expanded = ""
		s.Theme = Default
	})
}

// SetTheme changes the active theme.
func (c *Coordinator) SetTheme(id ID) error {
	if !id.Valid() {
		return fmt.Errorf("set theme %q: %w", id, ErrUnknownTheme)
	}
	c.update(func(s *Selection) { s.Theme = id })
	return nil
}

// Toggle is the panel click handler. Clicking the expanded panel collapses
// it and restores the default theme; clicking any other panel expands it
// and applies its theme.
func (c *Coordinator) Toggle(panel PanelID, themeID ID) error {
	if !themeID.Valid() {
		return fmt.Errorf("toggle %q: %w", panel, ErrUnknownTheme)
	}
	c.update(func(s *Selection) {
		if s.Expanded == panel {
			s.Expanded = ""
			s.Theme = Default
			return
		}
		s.Expanded = panel
		s.Theme = themeID
	})
	return nil
}

// TLDR reports whether the condensed view is on.
func (c *Coordinator) TLDR() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.TLDR
}

// ToggleTLDR flips the condensed view and returns the new value.
func (c *Coordinator) ToggleTLDR() bool {
	var on bool
	c.update(func(s *Selection) {
		s.TLDR = !s.TLDR
		on = s.TLDR
	})
	return on
}

// OnChange subscribes fn to every state change. fn runs after the lock is
// released and may read the coordinator.
func (c *Coordinator) OnChange(fn func(Selection)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Coordinator) update(mut func(*Selection)) {
	c.mu.Lock()
	before := c.sel
	mut(&c.sel)
	after := c.sel
	ls := slices.Clone(c.listeners)
	c.mu.Unlock()

	if before == after {
		return
	}
	for _, fn := range ls {
		fn(after)
	}
}
