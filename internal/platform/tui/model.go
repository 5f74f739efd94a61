package tui

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockblast/internal/core"
	"github.com/vovakirdan/blockblast/internal/games/blast"
	"github.com/vovakirdan/blockblast/internal/registry"
	"github.com/vovakirdan/blockblast/internal/storage"
)

// helpHeight is the number of rows reserved below the game for the help bar.
const helpHeight = 1

// Options configure a GameModel.
type Options struct {
	// Sound enables terminal bells for audio cues. Bells are sent as part
	// of the rendered frame.
	Sound bool

	// Logger receives storage and save warnings. Defaults to discarding.
	Logger *log.Logger

	// Renderer styles the output. Defaults to lipgloss.DefaultRenderer().
	Renderer *lipgloss.Renderer

	// QuitOnBack makes the back key end the program instead of
	// returning to a menu.
	QuitOnBack bool
}

// GameModel runs one game: it maps keys to actions, ticks the game with the
// measured frame time, draws effects and records finished sessions.
type GameModel struct {
	game       registry.Game
	blast      *blast.Game // nil for games without a blast engine
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	helpStyle  lipgloss.Style
	painter    *Painter
	effects    *Effects
	audio      *Audio
	logger     *log.Logger
	quitOnBack bool
	lastTick   time.Time
	quitting   bool
	backToMenu bool
	recorded   bool // finished session written to the store
	ringing    bool // the current frame carries a bell
	rings      int
}

// NewGameModel creates a model for game. store may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		helpStyle:  opts.Renderer.NewStyle().Foreground(lipgloss.Color("241")),
		painter:    NewPainter(opts.Renderer),
		effects:    NewEffects(),
		audio:      NewAudio(opts.Sound, opts.Logger),
		logger:     opts.Logger,
		quitOnBack: opts.QuitOnBack,
	}

	if bg, ok := game.(*blast.Game); ok {
		m.blast = bg
		bg.Subscribe(m.effects)
		bg.Subscribe(m.audio)
	}
	return m
}

// gameConfig is the runtime config handed to the game: the screen minus
// the help bar.
func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-helpHeight, 0)
	return cfg
}

// Init loads persisted statistics and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.loadStatistics()
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// loadStatistics restores lifetime statistics so they survive program runs.
func (m GameModel) loadStatistics() {
	if m.store == nil || m.blast == nil {
		return
	}
	data, found, err := m.store.LoadStatistics(m.game.ID())
	if err != nil {
		m.logger.Warn("cannot load statistics", "game", m.game.ID(), "err", err)
		return
	}
	if !found {
		return
	}
	var stats blast.Statistics
	if err := json.Unmarshal(data, &stats); err != nil {
		m.logger.Warn("discarding unreadable statistics", "game", m.game.ID(), "err", err)
		return
	}
	m.blast.SetStatistics(stats)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
	case core.ActionSave:
		m.save()
	case core.ActionLoad:
		m.load()
	case core.ActionBack:
		if m.quitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
		}
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize keeps the session when the game can follow the new size.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	cfg := m.gameConfig()
	m.screen.Resize(cfg.ScreenW, cfg.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(cfg.ScreenW, cfg.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(cfg)
	}
	return m, nil
}

// handleTick advances the game by the time since the previous tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.inputFrame.Delta = frameDelta(m.lastTick, now)
	m.lastTick = now

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.effects.Update(m.inputFrame.Delta)
	m.ringing = m.audio.TakeBells() > 0
	if m.ringing {
		m.rings++
	}

	if m.gameState.GameOver {
		if !m.recorded {
			m.record()
			m.recorded = true
		}
	} else {
		m.recorded = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// record writes the finished game to the store. Failures are logged;
// the game continues regardless.
func (m GameModel) record() {
	if m.store == nil {
		return
	}
	id := m.game.ID()

	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(id, m.gameState.Score); err != nil {
			m.logger.Warn("cannot save score", "game", id, "err", err)
		}
	}

	if m.blast == nil {
		return
	}
	engine := m.blast.Engine()
	if s, ok := engine.LastSession(); ok {
		err := m.store.SaveSession(storage.SessionRecord{
			ID:        s.ID,
			GameID:    id,
			Start:     s.Start,
			End:       s.End,
			Score:     s.FinalScore,
			Lines:     s.LinesCleared,
			Blocks:    s.BlocksPlaced,
			Duration:  s.Duration,
			Completed: s.Completed,
		})
		if err != nil {
			m.logger.Warn("cannot save session", "game", id, "err", err)
		}
		m.foldStatistics(s)
	}
}

// foldStatistics adds a finished session to the stored statistics of the
// mode and hands the merged result back to the game. Other sessions of the
// same mode may have written the row since this model loaded it.
func (m GameModel) foldStatistics(s blast.Session) {
	id := m.game.ID()
	var merged blast.Statistics
	err := m.store.UpdateStatistics(id, func(data []byte, found bool) ([]byte, error) {
		var stored blast.Statistics
		if found {
			if err := json.Unmarshal(data, &stored); err != nil {
				m.logger.Warn("discarding unreadable statistics", "game", id, "err", err)
				stored = blast.Statistics{}
			}
		}
		merged = stored.AddSession(s)
		return json.Marshal(merged)
	})
	if err != nil {
		m.logger.Warn("cannot save statistics", "game", id, "err", err)
		return
	}
	m.blast.SetStatistics(merged)
}

// save writes the session in progress to the save slot.
func (m GameModel) save() {
	p, ok := m.game.(registry.Persistent)
	if !ok || m.store == nil {
		m.effects.Notify("SAVE UNAVAILABLE", core.ColorGray)
		return
	}
	if m.gameState.GameOver {
		m.effects.Notify("NOTHING TO SAVE", core.ColorGray)
		return
	}
	data, err := p.SaveData()
	if err != nil {
		m.logger.Warn("cannot encode save", "game", m.game.ID(), "err", err)
		m.effects.Notify("SAVE FAILED", core.ColorBrightRed)
		return
	}
	if err := m.store.WriteSave(m.game.ID(), p.SaveVersion(), data); err != nil {
		m.logger.Warn("cannot write save", "game", m.game.ID(), "err", err)
		m.effects.Notify("SAVE FAILED", core.ColorBrightRed)
		return
	}
	m.effects.Notify("SAVED", core.ColorBrightGreen)
}

// load restores the save slot, telling apart a missing slot, a slot from
// another version and a corrupt slot.
func (m GameModel) load() {
	p, ok := m.game.(registry.Persistent)
	if !ok || m.store == nil {
		m.effects.Notify("LOAD UNAVAILABLE", core.ColorGray)
		return
	}
	rec, err := m.store.LoadSave(m.game.ID())
	switch {
	case errors.Is(err, storage.ErrNoSave):
		m.effects.Notify("NO SAVE", core.ColorGray)
		return
	case err != nil:
		m.logger.Warn("cannot read save", "game", m.game.ID(), "err", err)
		m.effects.Notify("LOAD FAILED", core.ColorBrightRed)
		return
	case rec.Version != p.SaveVersion():
		m.logger.Warn("save version mismatch", "game", m.game.ID(), "got", rec.Version, "want", p.SaveVersion())
		m.effects.Notify("SAVE VERSION MISMATCH", core.ColorBrightRed)
		return
	}

	if err := p.LoadData(rec.Data); err != nil {
		m.logger.Warn("cannot restore save", "game", m.game.ID(), "err", err)
		if errors.Is(err, blast.ErrVersionMismatch) {
			m.effects.Notify("SAVE VERSION MISMATCH", core.ColorBrightRed)
		} else {
			m.effects.Notify("CORRUPT SAVE", core.ColorBrightRed)
		}
		return
	}
	m.effects.Clear()
	m.effects.Notify("LOADED", core.ColorBrightGreen)
	m.gameState = m.game.State()
}

// View renders the game, its effects and the help bar.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.blast != nil && !m.blast.TooSmall() {
		m.effects.Draw(m.screen, m.blast)
	}
	bar := m.helpStyle.Render(m.help.View(m.keyMapper.Keys))
	if m.ringing {
		// Alternate ends so back-to-back rings still change the line and
		// the renderer writes it again.
		if m.rings%2 == 0 {
			bar = "\a" + bar
		} else {
			bar += "\a"
		}
	}
	return m.painter.Render(m.screen) + "\n" + bar
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Effects returns the effects layer.
func (m GameModel) Effects() *Effects { return m.effects }

// Run plays game in the terminal until the player quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	opts.QuitOnBack = true
	model := NewGameModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
