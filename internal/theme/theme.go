// Package theme holds the page-lifetime selection state: which panel is
// expanded and which colour theme is active.
package theme

import (
	"errors"
	"fmt"
	"image/color"
)

// ID names a theme.
type ID string

const (
	Default   ID = "default"
	UWaterloo ID = "uwaterloo"
	WindRiver ID = "windriver"
	HubHead   ID = "hubhead"
	Thomson   ID = "thomson"
	Escrypt   ID = "escrypt"
	Imagine   ID = "imagine"
	Oanda     ID = "oanda"
	Roblox    ID = "roblox"
)

// ErrUnknownTheme is returned for an ID outside the fixed set.
var ErrUnknownTheme = errors.New("unknown theme")

// Palette is the colour set a host paints the page with.
type Palette struct {
	Background color.RGBA
	Card       color.RGBA
	Text       color.RGBA
	Secondary  color.RGBA
	Accent     color.RGBA
	Border     color.RGBA
	// UppercaseHeaders renders section headers in capitals.
	UppercaseHeaders bool
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

var white = rgb(255, 255, 255)

var palettes = map[ID]Palette{
	Default: {
		Background: rgb(249, 250, 251),
		Card:       white,
		Text:       rgb(17, 24, 39),
		Secondary:  rgb(75, 85, 99),
		Accent:     rgb(29, 78, 216),
		Border:     rgb(96, 165, 250),
	},
	UWaterloo: {
		Background: rgb(250, 245, 255),
		Card:       white,
		Text:       rgb(88, 28, 135),
		Secondary:  rgb(126, 34, 206),
		Accent:     rgb(93, 0, 150),
		Border:     rgb(160, 93, 203),
	},
	WindRiver: {
		Background: rgb(240, 253, 250),
		Card:       white,
		Text:       rgb(19, 78, 74),
		Secondary:  rgb(15, 118, 110),
		Accent:     rgb(15, 118, 110),
		Border:     rgb(45, 212, 191),
	},
	HubHead: {
		Background: rgb(240, 253, 244),
		Card:       white,
		Text:       rgb(20, 83, 45),
		Secondary:  rgb(21, 128, 61),
		Accent:     rgb(21, 128, 61),
		Border:     rgb(74, 222, 128),
	},
	Thomson: {
		Background: rgb(255, 247, 237),
		Card:       white,
		Text:       rgb(124, 45, 18),
		Secondary:  rgb(194, 65, 12),
		Accent:     rgb(194, 65, 12),
		Border:     rgb(251, 146, 60),
	},
	Escrypt: {
		Background: rgb(250, 245, 255),
		Card:       white,
		Text:       rgb(88, 28, 135),
		Secondary:  rgb(126, 34, 206),
		Accent:     rgb(126, 34, 206),
		Border:     rgb(192, 132, 252),
	},
	Imagine: {
		Background: rgb(253, 242, 248),
		Card:       white,
		Text:       rgb(131, 24, 67),
		Secondary:  rgb(190, 24, 93),
		Accent:     rgb(190, 24, 93),
		Border:     rgb(244, 114, 182),
	},
	Oanda: {
		Background: rgb(238, 242, 255),
		Card:       white,
		Text:       rgb(49, 46, 129),
		Secondary:  rgb(67, 56, 202),
		Accent:     rgb(67, 56, 202),
		Border:     rgb(129, 140, 248),
	},
	Roblox: {
		Background: rgb(243, 244, 246),
		Card:       white,
		Text:       rgb(17, 24, 39),
		Secondary:  rgb(31, 41, 55),
		Accent:     rgb(0, 0, 0),
		Border:     rgb(156, 163, 175),

		UppercaseHeaders: true,
	},
}

// All lists every theme in display order.
func All() []ID {
	return []ID{Default, UWaterloo, WindRiver, HubHead, Thomson, Escrypt, Imagine, Oanda, Roblox}
}

// Valid reports whether id is one of the fixed themes.
func (id ID) Valid() bool {
	_, ok := palettes[id]
	return ok
}

// Palette returns the colours for id, falling back to Default.
func (id ID) Palette() Palette {
	if p, ok := palettes[id]; ok {
		return p
	}
	return palettes[Default]
}

// Parse converts a string to an ID.
func Parse(s string) (ID, error) {
	id := ID(s)
	if !id.Valid() {
		return Default, fmt.Errorf("parse %q: %w", s, ErrUnknownTheme)
	}
	return id, nil
}
