package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockblast/internal/core"
)

func newSession(t *testing.T) SessionModel {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}
	return NewSessionModel(openStore(t), cfg, Options{})
}

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestMenuListsModes(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("blast_timed", 420); err != nil {
		t.Fatalf("SaveScore() error: %v", err)
	}
	if err := store.WriteSave("blast", "2.0", []byte("{}")); err != nil {
		t.Fatalf("WriteSave() error: %v", err)
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	items := m.Items()
	if len(items) != 3 {
		t.Fatalf("menu has %d items, expected 3", len(items))
	}

	byID := make(map[string]MenuItem)
	for _, it := range items {
		byID[it.GameID] = it
	}
	if byID["blast_timed"].HighScore != 420 {
		t.Errorf("timed high score = %d, expected 420", byID["blast_timed"].HighScore)
	}
	if !byID["blast"].HasSave || byID["blast_challenge"].HasSave {
		t.Error("only classic should report a save")
	}

	view := m.View()
	for _, want := range []string{"B L O C K", "Block Blast (Timed)", "420"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view does not contain %q", want)
		}
	}
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := newSession(t)

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatal("enter should start the selected mode")
	}
	if !strings.Contains(m.View(), "Score") {
		t.Error("game view should show the HUD")
	}

	m = sendSession(t, m, runeKey('p'))
	m = sendSession(t, m, TickMsg(testStart))
	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatal("esc on a paused game should return to the menu")
	}
	if m.menu.Selected() != nil {
		t.Error("menu should be fresh after returning")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := newSession(t)

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view should have a title")
	}

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Error("esc should return to the menu")
	}

	m = sendSession(t, m, runeKey('q'))
	if !m.quitting {
		t.Error("q in the menu should quit")
	}
}
