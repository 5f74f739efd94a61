package tui

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockblast/internal/core"
	"github.com/vovakirdan/blockblast/internal/games/blast"
	"github.com/vovakirdan/blockblast/internal/storage"
)

var testStart = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "blast.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

type modelHarness struct {
	t     *testing.T
	m     GameModel
	game  *blast.Game
	clock time.Time
}

func newHarness(t *testing.T, store *storage.Store, opts Options) *modelHarness {
	t.Helper()
	game := blast.New()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7}
	m := NewGameModel(game, store, cfg, opts)
	m.Init()
	return &modelHarness{t: t, m: m, game: game, clock: testStart}
}

func (h *modelHarness) send(msg tea.Msg) {
	h.t.Helper()
	next, _ := h.m.Update(msg)
	m, ok := next.(GameModel)
	if !ok {
		h.t.Fatalf("Update returned %T", next)
	}
	h.m = m
}

func (h *modelHarness) press(r rune) { h.send(runeKey(r)) }

func (h *modelHarness) tick() {
	h.clock = h.clock.Add(33 * time.Millisecond)
	h.send(TickMsg(h.clock))
}

func (h *modelHarness) lastBanner() string {
	b := h.m.Effects().Banners()
	if len(b) == 0 {
		return ""
	}
	return b[len(b)-1].Text
}

func TestGameModelRoutesKeysToGame(t *testing.T) {
	h := newHarness(t, nil, Options{})

	h.press('2')
	h.tick()
	if h.game.Selected() != 1 {
		t.Errorf("Selected() = %d, expected 1", h.game.Selected())
	}

	start := h.game.Cursor()
	h.send(tea.KeyMsg{Type: tea.KeyLeft})
	h.tick()
	if got := h.game.Cursor(); got.X != start.X-1 || got.Y != start.Y {
		t.Errorf("Cursor() = %v, expected one step left of %v", got, start)
	}

	h.press('p')
	h.tick()
	if !h.m.gameState.Paused {
		t.Error("p should pause the game")
	}
}

func TestGameModelQuitAndBack(t *testing.T) {
	h := newHarness(t, nil, Options{})

	h.press('b')
	if h.m.BackToMenu() {
		t.Error("back should be ignored while playing")
	}

	h.press('p')
	h.tick()
	h.press('b')
	if !h.m.BackToMenu() {
		t.Error("back should leave a paused game")
	}

	h.press('q')
	if !h.m.IsQuitting() {
		t.Error("q should quit")
	}
	if h.m.View() != "" {
		t.Error("a quitting model renders nothing")
	}
}

func TestGameModelQuitOnBack(t *testing.T) {
	h := newHarness(t, nil, Options{QuitOnBack: true})
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if !h.m.IsQuitting() {
		t.Error("esc should quit a standalone game")
	}
}

func TestGameModelSaveAndLoad(t *testing.T) {
	store := openStore(t)
	h := newHarness(t, store, Options{})

	h.press('L')
	if got := h.lastBanner(); got != "NO SAVE" {
		t.Errorf("banner = %q, expected NO SAVE", got)
	}

	h.tick()
	h.press('S')
	if got := h.lastBanner(); got != "SAVED" {
		t.Fatalf("banner = %q, expected SAVED", got)
	}
	rec, err := store.LoadSave("blast")
	if err != nil {
		t.Fatalf("LoadSave() error: %v", err)
	}
	if rec.Version != blast.SaveVersion {
		t.Errorf("save version = %q, expected %q", rec.Version, blast.SaveVersion)
	}

	saved := h.game.Engine().Available()[0].ID()
	h.press('x')
	h.tick()
	h.press('L')
	if got := h.lastBanner(); got != "LOADED" {
		t.Fatalf("banner = %q, expected LOADED", got)
	}
	if got := h.game.Engine().Available()[0].Rotation(); got != 0 {
		t.Errorf("rotation after load = %d, expected 0", got)
	}
	if got := h.game.Engine().Available()[0].ID(); got != saved {
		t.Errorf("tray block = %s, expected %s", got, saved)
	}
}

func TestGameModelLoadRejectsBadSaves(t *testing.T) {
	tests := []struct {
		name    string
		version string
		data    []byte
		want    string
	}{
		{"other version", "1.0", []byte(`{}`), "SAVE VERSION MISMATCH"},
		{"garbage", blast.SaveVersion, []byte("not json"), "CORRUPT SAVE"},
		{"inner version", blast.SaveVersion, []byte(`{"version":"1.0"}`), "SAVE VERSION MISMATCH"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := openStore(t)
			if err := store.WriteSave("blast", tc.version, tc.data); err != nil {
				t.Fatalf("WriteSave() error: %v", err)
			}
			h := newHarness(t, store, Options{})
			before := h.game.Engine().Available()[0].ID()

			h.press('L')
			if got := h.lastBanner(); got != tc.want {
				t.Errorf("banner = %q, expected %q", got, tc.want)
			}
			if got := h.game.Engine().Available()[0].ID(); got != before {
				t.Error("a failed load must not change the session")
			}
		})
	}
}

func TestGameModelRecordsFinishedGame(t *testing.T) {
	store := openStore(t)
	h := newHarness(t, store, Options{})

	h.tick()
	h.game.Engine().End(false)
	h.tick()
	h.tick()

	sessions, err := store.RecentSessions("blast", 0)
	if err != nil {
		t.Fatalf("RecentSessions() error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("recorded %d sessions, expected 1", len(sessions))
	}
	if sessions[0].Completed {
		t.Error("session should not be completed")
	}

	data, found, err := store.LoadStatistics("blast")
	if err != nil || !found {
		t.Fatalf("LoadStatistics() = found %v, err %v", found, err)
	}
	var stats blast.Statistics
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("statistics are not JSON: %v", err)
	}
	if stats.GamesPlayed != 1 {
		t.Errorf("GamesPlayed = %d, expected 1", stats.GamesPlayed)
	}

	scores, err := store.TopScores("blast", 0)
	if err != nil {
		t.Fatalf("TopScores() error: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("a zero score should not be saved, got %v", scores)
	}

	// A new model for the same mode starts from the stored statistics.
	h2 := newHarness(t, store, Options{})
	if got := h2.game.Statistics().GamesPlayed; got != 1 {
		t.Errorf("GamesPlayed after reload = %d, expected 1", got)
	}
}

func TestGameModelsShareStatistics(t *testing.T) {
	store := openStore(t)
	a := newHarness(t, store, Options{})
	b := newHarness(t, store, Options{})

	for _, h := range []*modelHarness{a, b} {
		h.tick()
		h.game.Engine().End(false)
		h.tick()
	}

	sessions, err := store.RecentSessions("blast", 0)
	if err != nil {
		t.Fatalf("RecentSessions() error: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("recorded %d sessions, expected 2", len(sessions))
	}

	data, _, err := store.LoadStatistics("blast")
	if err != nil {
		t.Fatalf("LoadStatistics() error: %v", err)
	}
	var stats blast.Statistics
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("statistics are not JSON: %v", err)
	}
	if stats.GamesPlayed != 2 {
		t.Errorf("stored GamesPlayed = %d, expected 2", stats.GamesPlayed)
	}
	if got := b.game.Statistics().GamesPlayed; got != 2 {
		t.Errorf("second model sees GamesPlayed = %d, expected 2", got)
	}
}

func TestGameModelResizeKeepsSession(t *testing.T) {
	h := newHarness(t, nil, Options{})
	engine := h.game.Engine()

	h.send(tea.WindowSizeMsg{Width: 30, Height: 10})
	if !h.game.TooSmall() {
		t.Error("30x10 should be too small")
	}
	if !strings.Contains(h.m.View(), "Window too small") {
		t.Error("view should show the size warning")
	}

	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	if h.game.TooSmall() {
		t.Error("100x30 should fit")
	}
	if h.game.Engine() != engine {
		t.Error("resizing must not restart the session")
	}
}

func TestGameModelView(t *testing.T) {
	h := newHarness(t, nil, Options{})
	h.tick()

	view := h.m.View()
	for _, want := range []string{"Block Blast", "Score", "Next", "rotate", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view does not contain %q", want)
		}
	}
	if n := strings.Count(view, "\n"); n != 23 {
		t.Errorf("view has %d newlines, expected 23", n)
	}
}

func TestGameModelSoundRingsBell(t *testing.T) {
	h := newHarness(t, nil, Options{Sound: true})

	h.tick()
	if strings.Contains(h.m.View(), "\a") {
		t.Fatal("a quiet frame should not ring")
	}

	h.game.Engine().End(false)
	h.tick()
	if !strings.Contains(h.m.View(), "\a") {
		t.Error("game over should ring the bell in the next frame")
	}

	h.tick()
	if strings.Contains(h.m.View(), "\a") {
		t.Error("the bell should ring once")
	}
}

func TestGameModelSilentWithoutSound(t *testing.T) {
	h := newHarness(t, nil, Options{})
	h.tick()
	h.game.Engine().End(false)
	h.tick()
	if strings.Contains(h.m.View(), "\a") {
		t.Error("bell rang with sound disabled")
	}
}

func TestGameModelBackToBackRingsDiffer(t *testing.T) {
	h := newHarness(t, nil, Options{Sound: true})
	h.tick()

	h.m.audio.Play(CueError)
	h.tick()
	first := h.m.View()
	h.m.audio.Play(CueError)
	h.tick()
	second := h.m.View()

	if !strings.Contains(first, "\a") || !strings.Contains(second, "\a") {
		t.Fatal("both frames should ring")
	}
	if first == second {
		t.Error("consecutive ringing frames must differ to be written")
	}
}
