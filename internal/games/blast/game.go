package blast

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockblast/internal/config"
	"github.com/vovakirdan/blockblast/internal/core"
	"github.com/vovakirdan/blockblast/internal/registry"
)

// Game adapts an Engine to the registry: it maps input actions to engine
// operations and keeps the cursor and the selected tray slot.
type Game struct {
	mode   Mode
	engine *Engine

	cursor   core.Position
	selected int

	listeners []Listener
	stats     *Statistics // applied on the next Reset

	screenW  int
	screenH  int
	tooSmall bool
}

var (
	// configPath stores the custom config path set via CLI
	configPath string

	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset = config.DifficultyNormal

	logger = log.New(io.Discard)
)

// SetConfigPath sets the config file used by games created afterwards.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// SetLogger sets the logger handed to every engine.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// New creates a classic mode game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewTimed creates a timed mode game.
func NewTimed() *Game {
	return &Game{mode: ModeTimed}
}

// NewChallenge creates a challenge mode game.
func NewChallenge() *Game {
	return &Game{mode: ModeChallenge}
}

func init() {
	registry.Register("blast", func() registry.Game {
		return New()
	})
	registry.Register("blast_timed", func() registry.Game {
		return NewTimed()
	})
	registry.Register("blast_challenge", func() registry.Game {
		return NewChallenge()
	})
}

// GameID returns the registry identifier of a mode.
func GameID(m Mode) string {
	switch m {
	case ModeTimed:
		return "blast_timed"
	case ModeChallenge:
		return "blast_challenge"
	default:
		return "blast"
	}
}

// ModeFromGameID is the inverse of GameID.
func ModeFromGameID(id string) (Mode, bool) {
	for _, m := range []Mode{ModeClassic, ModeTimed, ModeChallenge} {
		if GameID(m) == id {
			return m, true
		}
	}
	return "", false
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeTimed:
		return "Block Blast (Timed)"
	case ModeChallenge:
		return "Block Blast (Challenge)"
	default:
		return "Block Blast"
	}
}

// Reset starts a new session. Statistics carry over from the previous
// engine, or from SetStatistics if that was called since.
func (g *Game) Reset(rt core.RuntimeConfig) {
	seed := rt.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var stats Statistics
	switch {
	case g.stats != nil:
		stats = *g.stats
		g.stats = nil
	case g.engine != nil:
		stats = g.engine.Statistics()
	}

	opts := []Option{WithSeed(seed), WithLogger(logger), WithStatistics(stats)}
	for _, l := range g.listeners {
		opts = append(opts, WithListener(l))
	}

	engine, err := NewEngine(loadConfig(), g.mode, opts...)
	if err != nil {
		logger.Warn("invalid configuration, using defaults", "err", err)
		engine, err = NewEngine(config.DefaultBlastConfig(), g.mode, opts...)
		if err != nil {
			panic("blast: default configuration rejected: " + err.Error())
		}
	}
	g.engine = engine

	size := engine.Config().Grid.Size
	g.cursor = core.Pos(size/2, size/2)
	g.selected = 0
	g.Resize(rt.ScreenW, rt.ScreenH)
}

// loadConfig reads the configured file and applies the difficulty preset.
// A missing or broken file falls back to the defaults.
func loadConfig() config.BlastConfig {
	cfg, err := config.LoadBlast(configPath)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultBlastConfig()
	}
	return config.ApplyBlastPreset(cfg, difficultyPreset)
}

// Resize records new screen dimensions without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.engine.Update(in.Delta)

	if in.Has(core.ActionPause) {
		g.engine.TogglePause()
	}

	switch g.engine.Status() {
	case StatusGameOver:
		if in.Has(core.ActionRestart) {
			g.engine.Restart()
			g.selected = 0
		}
		return core.StepResult{State: g.State()}
	case StatusPaused:
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.engine.Restart()
		g.selected = 0
		return core.StepResult{State: g.State()}
	}

	for _, a := range []core.Action{core.ActionSelect1, core.ActionSelect2, core.ActionSelect3} {
		if i, ok := a.SelectIndex(); ok && in.Has(a) {
			g.Select(i)
		}
	}
	if in.Has(core.ActionSelectNext) {
		g.selectNext()
	}

	size := g.engine.Grid().Size()
	switch {
	case in.Has(core.ActionLeft):
		g.cursor.X--
	case in.Has(core.ActionRight):
		g.cursor.X++
	}
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y--
	case in.Has(core.ActionDown):
		g.cursor.Y++
	}
	g.cursor.X = core.Clamp(g.cursor.X, 0, size-1)
	g.cursor.Y = core.Clamp(g.cursor.Y, 0, size-1)

	if in.Has(core.ActionRotate) {
		g.engine.RotateAvailable(g.selected)
	}
	if in.Has(core.ActionRotateBack) {
		g.engine.RotateAvailableBack(g.selected)
	}

	if in.Has(core.ActionConfirm) && g.engine.PlaceAvailable(g.selected, g.cursor) {
		g.selectNext()
	}

	return core.StepResult{State: g.State()}
}

// Select makes the tray slot i current if it holds an unused block.
func (g *Game) Select(i int) bool {
	tray := g.engine.Available()
	if i < 0 || i >= len(tray) || tray[i].Used() {
		return false
	}
	g.selected = i
	return true
}

// selectNext moves the selection to the next unused slot, wrapping around.
func (g *Game) selectNext() {
	n := len(g.engine.Available())
	for step := 1; step <= n; step++ {
		if g.Select((g.selected + step) % n) {
			return
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:     g.engine.Score(),
		GameOver:  g.engine.Status() == StatusGameOver,
		Paused:    g.engine.Status() == StatusPaused,
		Completed: g.engine.Completed(),
	}
}

// Engine returns the running engine.
func (g *Game) Engine() *Engine { return g.engine }

// Mode returns the game mode.
func (g *Game) Mode() Mode { return g.mode }

// Cursor returns the grid position the selected block would be placed at.
func (g *Game) Cursor() core.Position { return g.cursor }

// TooSmall reports whether the screen cannot fit the board.
func (g *Game) TooSmall() bool { return g.tooSmall }

// Selected returns the current tray slot.
func (g *Game) Selected() int { return g.selected }

// Subscribe registers l with the current engine and every later one.
func (g *Game) Subscribe(l Listener) {
	g.listeners = append(g.listeners, l)
	if g.engine != nil {
		g.engine.Subscribe(l)
	}
}

// Statistics returns the accumulated statistics.
func (g *Game) Statistics() Statistics {
	if g.engine == nil {
		if g.stats != nil {
			return *g.stats
		}
		return Statistics{}
	}
	return g.engine.Statistics()
}

// SetStatistics seeds the statistics, typically from storage.
func (g *Game) SetStatistics(s Statistics) {
	if g.engine != nil {
		g.engine.SetStatistics(s)
		return
	}
	g.stats = &s
}

// SaveVersion returns the save format written by SaveData.
func (g *Game) SaveVersion() string { return SaveVersion }

// SaveData encodes the running session.
func (g *Game) SaveData() ([]byte, error) {
	return EncodeSave(g.engine.Save())
}

// LoadData restores a session encoded by SaveData. On error the running
// session is unchanged.
func (g *Game) LoadData(data []byte) error {
	if err := g.engine.Load(data); err != nil {
		return err
	}
	size := g.engine.Grid().Size()
	g.cursor = core.Pos(core.Clamp(g.cursor.X, 0, size-1), core.Clamp(g.cursor.Y, 0, size-1))
	g.selected = 0
	if g.engine.Available()[0].Used() {
		g.selectNext()
	}
	return nil
}
