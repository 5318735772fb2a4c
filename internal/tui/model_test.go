package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/config"
	"github.com/javiermolinar/weekgrid/internal/db"
)

func TestNewModelDefaults(t *testing.T) {
	m := New(&recordingRepo{}, nil, nil)

	if !m.loading {
		t.Error("model without a state should wait for it to load")
	}
	if m.config == nil {
		t.Fatal("nil config should fall back to defaults")
	}
	if m.scroll != defaultScroll {
		t.Errorf("scroll = %d, want %d", m.scroll, defaultScroll)
	}
	if m.engine == nil || m.engine.Active() {
		t.Error("engine should exist and be idle")
	}
	if m.Init() == nil {
		t.Error("Init should load the state")
	}
}

func TestNewModelWithState(t *testing.T) {
	st := newTestState()
	m := New(nil, nil, config.Default(), WithState(st))

	if m.loading {
		t.Error("model with a state should not be loading")
	}
	if m.State() != st || m.Engine().State() != st {
		t.Error("model and engine should share the state")
	}
}

func TestNewModelUnknownThemeFallsBack(t *testing.T) {
	cfg := config.Default()
	cfg.UI.Theme = "no-such-theme"

	m := New(nil, nil, cfg)
	if m.theme == nil || m.theme.Name != "mocha" {
		t.Errorf("theme = %+v, want mocha", m.theme)
	}
}

func TestRecentWindowUsesClock(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := &recordingRepo{}
	w := db.NewWriter(8)
	t.Cleanup(w.Close)

	m := New(repo, w, config.Default(), WithState(block.NewState()), WithClock(func() time.Time { return now }))
	h := &harness{t: t, m: *m, repo: repo, writer: w}
	h.key("n")
	h.typeText("work")
	h.key("enter")
	h.send(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	h.m.scroll = 0

	h.press(0, 2, 4, false, false)
	h.release(0, 2, 4)
	id := h.m.engine.RecentBlockID()
	if id == "" {
		t.Fatal("created block should be recent")
	}

	now = now.Add(config.Default().RecentWindow() + time.Millisecond)
	if got := h.m.engine.RecentBlockID(); got != "" {
		t.Errorf("recent block should expire, got %q", got)
	}
}

func TestStatusLineExpires(t *testing.T) {
	var s statusLine
	s.set("saved", false, -time.Second)
	s.clearIfExpired()
	if s.text != "" {
		t.Errorf("expired status should clear, got %q", s.text)
	}

	s.set("saved", false, time.Hour)
	s.clearIfExpired()
	if s.text != "saved" {
		t.Error("live status should stay")
	}
}
