package blast

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/blockblast/internal/core"
	"github.com/vovakirdan/blockblast/internal/registry"
)

func newTestGame(t *testing.T, id string) *Game {
	t.Helper()
	rg, err := registry.Create(id)
	if err != nil {
		t.Fatalf("registry.Create(%q) failed: %v", id, err)
	}
	g, ok := rg.(*Game)
	if !ok {
		t.Fatalf("registry.Create(%q) returned %T", id, rg)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegisteredModes(t *testing.T) {
	tests := []struct {
		id   string
		mode Mode
	}{
		{"blast", ModeClassic},
		{"blast_timed", ModeTimed},
		{"blast_challenge", ModeChallenge},
	}
	for _, tc := range tests {
		g := newTestGame(t, tc.id)
		if g.ID() != tc.id || g.Mode() != tc.mode {
			t.Errorf("%s: ID() = %q, Mode() = %q", tc.id, g.ID(), g.Mode())
		}
		if m, ok := ModeFromGameID(tc.id); !ok || m != tc.mode {
			t.Errorf("ModeFromGameID(%q) = %q, %v", tc.id, m, ok)
		}
	}
	if _, ok := ModeFromGameID("snake"); ok {
		t.Error("ModeFromGameID should reject unknown ids")
	}
}

func TestStepSelectsAndMovesCursor(t *testing.T) {
	g := newTestGame(t, "blast")

	g.Step(frame(core.ActionSelect3))
	if g.Selected() != 2 {
		t.Errorf("Selected() = %d, expected 2", g.Selected())
	}
	g.Step(frame(core.ActionSelectNext))
	if g.Selected() != 0 {
		t.Errorf("Selected() after tab = %d, expected 0", g.Selected())
	}

	start := g.Cursor()
	g.Step(frame(core.ActionLeft, core.ActionDown))
	if want := core.Pos(start.X-1, start.Y+1); g.Cursor() != want {
		t.Errorf("Cursor() = %v, expected %v", g.Cursor(), want)
	}

	for i := 0; i < 20; i++ {
		g.Step(frame(core.ActionUp, core.ActionRight))
	}
	if want := core.Pos(9, 0); g.Cursor() != want {
		t.Errorf("cursor should clamp at %v, got %v", want, g.Cursor())
	}
}

func TestStepPlacesSelectedBlock(t *testing.T) {
	g := newTestGame(t, "blast")
	e := g.Engine()
	e.setTray(mustBlock(t, "a", "#"), mustBlock(t, "b", "##"), mustBlock(t, "c", "#"))

	g.Step(frame(core.ActionSelect2))
	for i := 0; i < 10; i++ {
		g.Step(frame(core.ActionUp, core.ActionLeft))
	}
	g.Step(frame(core.ActionConfirm))

	if !e.Grid().IsFilledAt(core.Pos(0, 0)) || !e.Grid().IsFilledAt(core.Pos(1, 0)) {
		t.Errorf("block not placed at origin:\n%s", e.Grid())
	}
	if g.Selected() != 2 {
		t.Errorf("selection should advance to the next unused slot, got %d", g.Selected())
	}
	if g.Select(1) {
		t.Error("a used slot must not be selectable")
	}
}

func TestStepPauseAndRestart(t *testing.T) {
	g := newTestGame(t, "blast_timed")
	full := g.Engine().TimeRemaining()

	g.Step(core.InputFrame{Actions: map[core.Action]bool{}, Delta: 2 * time.Second})
	if got := g.Engine().TimeRemaining(); got != full-2*time.Second {
		t.Errorf("TimeRemaining() = %v, expected %v", got, full-2*time.Second)
	}

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	paused := frame()
	paused.Delta = 5 * time.Second
	g.Step(paused)
	if got := g.Engine().TimeRemaining(); got != full-2*time.Second {
		t.Errorf("countdown ran while paused: %v", got)
	}
	g.Step(frame(core.ActionPause))

	g.Engine().End(false)
	if !g.State().GameOver {
		t.Fatal("game should be over")
	}
	g.Step(frame(core.ActionRestart))
	if g.State().GameOver || g.State().Score != 0 {
		t.Errorf("State() after restart = %+v", g.State())
	}
	if g.Statistics().GamesPlayed != 1 {
		t.Errorf("GamesPlayed = %d, expected 1", g.Statistics().GamesPlayed)
	}
}

func TestResetKeepsListenersAndStatistics(t *testing.T) {
	g := New()
	g.SetStatistics(Statistics{HighScore: 900, GamesPlayed: 4})
	log := &eventLog{}
	g.Subscribe(log)

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 3})
	if g.Statistics().HighScore != 900 {
		t.Errorf("HighScore = %d, expected 900", g.Statistics().HighScore)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 4})
	if g.Statistics().GamesPlayed != 4 {
		t.Errorf("GamesPlayed = %d, expected 4", g.Statistics().GamesPlayed)
	}

	isStart := func(ev Event) bool { _, ok := ev.(GameStartedEvent); return ok }
	if n := log.count(isStart); n != 2 {
		t.Errorf("start events = %d, expected 2", n)
	}
}

func TestSaveDataRoundTrip(t *testing.T) {
	g := newTestGame(t, "blast")
	g.Step(frame(core.ActionConfirm))
	data, err := g.SaveData()
	if err != nil {
		t.Fatalf("SaveData() failed: %v", err)
	}

	other := newTestGame(t, "blast")
	if err := other.LoadData(data); err != nil {
		t.Fatalf("LoadData() failed: %v", err)
	}
	if !other.Engine().Grid().Equal(g.Engine().Grid()) || other.State() != g.State() {
		t.Error("loaded game differs from saved game")
	}

	timed := newTestGame(t, "blast_timed")
	if err := timed.LoadData(data); err == nil {
		t.Error("loading a classic save into a timed game should fail")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, "blast_challenge")
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Block Blast (Challenge)", "Score", "Target", ">1<", "Next"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}

	g.Resize(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too small message missing")
	}
}

func TestCellScreenPos(t *testing.T) {
	g := newTestGame(t, "blast")
	x0, y0 := g.CellScreenPos(core.Pos(0, 0))
	x1, y1 := g.CellScreenPos(core.Pos(3, 2))
	if x1-x0 != 6 || y1-y0 != 2 {
		t.Errorf("cell offsets = (%d,%d), expected (6,2)", x1-x0, y1-y0)
	}
}
