package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_StartsCollapsedWithDefault(t *testing.T) {
	c := NewCoordinator()
	assert.Equal(t, Default, c.Current())
	_, ok := c.Expanded()
	assert.False(t, ok)
	assert.False(t, c.TLDR())
}

func TestCoordinator_ExpandAThenBThenCollapseB(t *testing.T) {
	c := NewCoordinator()
	require.NoError(t, c.Toggle("education", UWaterloo))
	require.NoError(t, c.Toggle("oanda", Oanda))

	id, ok := c.Expanded()
	require.True(t, ok)
	assert.Equal(t, PanelID("oanda"), id, "only B is expanded")
	assert.Equal(t, Oanda, c.Current())

	require.NoError(t, c.Toggle("oanda", Oanda))
	_, ok = c.Expanded()
	assert.False(t, ok)
	assert.Equal(t, Default, c.Current())
}

func TestCoordinator_ExpandingAlwaysSetsPanelTheme(t *testing.T) {
	c := NewCoordinator()
	clicks := []struct {
		panel PanelID
		theme ID
	}{
		{"education", UWaterloo},
		{"roblox", Roblox},
		{"roblox", Roblox},
		{"windriver", WindRiver},
		{"education", UWaterloo},
		{"education", UWaterloo},
	}
	for _, click := range clicks {
		require.NoError(t, c.Toggle(click.panel, click.theme))
		if id, ok := c.Expanded(); ok {
			assert.Equal(t, click.panel, id)
			assert.Equal(t, click.theme, c.Current())
		} else {
			assert.Equal(t, Default, c.Current())
		}
	}
}

func TestCoordinator_SetThemeRejectsUnknown(t *testing.T) {
	c := NewCoordinator()
	err := c.SetTheme("vaporwave")
	assert.True(t, errors.Is(err, ErrUnknownTheme))
	assert.Equal(t, Default, c.Current())

	err = c.Toggle("x", "vaporwave")
	assert.ErrorIs(t, err, ErrUnknownTheme)
	_, ok := c.Expanded()
	assert.False(t, ok)

	require.NoError(t, c.SetTheme(Thomson))
	assert.Equal(t, Thomson, c.Current())
}

func TestCoordinator_SetExpandedAndCollapse(t *testing.T) {
	c := NewCoordinator()
	c.SetExpanded("hubhead")
	require.NoError(t, c.SetTheme(HubHead))
	id, ok := c.Expanded()
	assert.True(t, ok)
	assert.Equal(t, PanelID("hubhead"), id)

	c.Collapse()
	_, ok = c.Expanded()
	assert.False(t, ok)
	assert.Equal(t, Default, c.Current())
}

func TestCoordinator_OnChangeFiresOnRealChanges(t *testing.T) {
	c := NewCoordinator()
	var seen []Selection
	c.OnChange(func(s Selection) { seen = append(seen, s) })

	require.NoError(t, c.Toggle("imagine", Imagine))
	require.NoError(t, c.SetTheme(Imagine)) // no change
	assert.True(t, c.ToggleTLDR())
	c.Collapse()

	require.Len(t, seen, 3)
	assert.Equal(t, Selection{Theme: Imagine, Expanded: "imagine"}, seen[0])
	assert.Equal(t, Selection{Theme: Imagine, Expanded: "imagine", TLDR: true}, seen[1])
	assert.Equal(t, Selection{Theme: Default, TLDR: true}, seen[2])
}

func TestCoordinator_ListenerAddedDuringChangeWaitsForNext(t *testing.T) {
	c := NewCoordinator()
	var outer, inner int
	c.OnChange(func(Selection) {
		outer++
		if outer == 1 {
			c.OnChange(func(Selection) { inner++ })
		}
	})

	require.NoError(t, c.Toggle("uwaterloo", UWaterloo))
	assert.Equal(t, 1, outer)
	assert.Equal(t, 0, inner)

	c.Collapse()
	assert.Equal(t, 2, outer)
	assert.Equal(t, 1, inner)
}

func TestTheme_PalettesAndParse(t *testing.T) {
	for _, id := range All() {
		assert.True(t, id.Valid(), id)
		assert.Equal(t, uint8(255), id.Palette().Text.A, id)
	}
	assert.True(t, Roblox.Palette().UppercaseHeaders)
	assert.False(t, Default.Palette().UppercaseHeaders)
	assert.Equal(t, Default.Palette(), ID("nope").Palette())

	id, err := Parse("escrypt")
	require.NoError(t, err)
	assert.Equal(t, Escrypt, id)
	_, err = Parse("")
	assert.ErrorIs(t, err, ErrUnknownTheme)
}
