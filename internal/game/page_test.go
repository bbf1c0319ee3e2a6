package game

import (
	"testing"

	"github.com/Garsondee/planetary-defense/internal/profile"
	"github.com/Garsondee/planetary-defense/internal/theme"
)

func newTestPage() (*Page, *theme.Coordinator) {
	coord := theme.NewCoordinator()
	p := NewPage(profile.Default(), coord, nil)
	p.SetViewport(1000, 800)
	return p, coord
}

func TestPage_ScrollClampsToContent(t *testing.T) {
	p, _ := newTestPage()
	p.Scroll(-100)
	if p.ScrollOffset() != 0 {
		t.Fatalf("cannot scroll above the top, got %d", p.ScrollOffset())
	}
	p.Scroll(10000)
	// 8 collapsed panels end at 682; plus margin and console space = 846.
	if p.ScrollOffset() != 46 {
		t.Fatalf("expected max scroll 46, got %d", p.ScrollOffset())
	}
}

func TestPage_LockSuppressesScroll(t *testing.T) {
	p, _ := newTestPage()
	release := p.Lock()
	if !p.Locked() {
		t.Fatal("page should be locked")
	}
	p.Scroll(30)
	p.HandleKey("ArrowDown")
	if p.ScrollOffset() != 0 {
		t.Fatalf("scroll must not move while locked, got %d", p.ScrollOffset())
	}

	release()
	release() // a second release must not unbalance the count
	if p.Locked() {
		t.Fatal("page should be unlocked")
	}
	p.Scroll(30)
	if p.ScrollOffset() != 30 {
		t.Fatalf("expected 30 after unlock, got %d", p.ScrollOffset())
	}
}

func TestPage_NestedLocks(t *testing.T) {
	p, _ := newTestPage()
	r1 := p.Lock()
	r2 := p.Lock()
	r1()
	if !p.Locked() {
		t.Fatal("one outstanding lock keeps the page locked")
	}
	r2()
	if p.Locked() {
		t.Fatal("all locks released")
	}
}

func TestPage_DigitTogglesPanelTheme(t *testing.T) {
	p, coord := newTestPage()
	p.HandleKey("2")
	sel := coord.Selection()
	if sel.Expanded != "roblox" || sel.Theme != theme.Roblox {
		t.Fatalf("expected roblox expanded, got %+v", sel)
	}

	p.HandleKey("1")
	sel = coord.Selection()
	if sel.Expanded != "education" || sel.Theme != theme.UWaterloo {
		t.Fatalf("expanding another panel replaces the first, got %+v", sel)
	}

	p.HandleKey("1")
	sel = coord.Selection()
	if sel.Expanded != "" || sel.Theme != theme.Default {
		t.Fatalf("second press collapses and restores default, got %+v", sel)
	}
}

func TestPage_OutOfRangeDigitIgnored(t *testing.T) {
	p, coord := newTestPage()
	p.HandleKey("t") // TL;DR leaves three panels
	p.HandleKey("5")
	if _, ok := coord.Expanded(); ok {
		t.Fatal("digit beyond the visible panels must do nothing")
	}
	if !coord.TLDR() {
		t.Fatal("t should switch on TL;DR")
	}
}

func TestPage_ClickHitsPanel(t *testing.T) {
	p, coord := newTestPage()
	if !p.Click(100, 160) {
		t.Fatal("click inside the first panel should hit")
	}
	if id, _ := coord.Expanded(); id != "education" {
		t.Fatalf("expected education expanded, got %q", id)
	}
	if p.Click(5, 5) {
		t.Fatal("click in the margin should miss")
	}
}
