package blast

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/blockblast/internal/config"
	"github.com/vovakirdan/blockblast/internal/core"
)

// Status is the engine's top-level state.
type Status int

const (
	StatusActive Status = iota
	StatusPaused
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Engine runs one mode of the game: it owns the grid and the block tray,
// scores clears, tracks level and statistics, and decides when the session
// ends. The level follows the lines cleared over all sessions of the mode. It is single-threaded; time only advances through Update.
type Engine struct {
	cfg   config.BlastConfig
	mode  Mode
	rng   *rand.Rand
	gen   *Generator
	grid  *Grid
	clock func() time.Time

	available []*Block
	preview   []*Block

	status    Status
	completed bool

	// session counters
	sessionID      string
	startedAt      time.Time
	score          int
	level          int
	linesCleared   int
	blocksPlaced   int
	perfectClears  int
	perfectStreak  int
	maxCombo       int
	lastClear      LineClearResult
	lastClearScore int
	elapsed        time.Duration
	paused         time.Duration
	timeRemaining  time.Duration

	stats       Statistics
	lastSession *Session

	listeners []Listener
	logger    *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed seeds the engine's RNG.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithClock sets the wall clock used to timestamp sessions.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithListener subscribes l before the first session starts.
func WithListener(l Listener) Option {
	return func(e *Engine) { e.listeners = append(e.listeners, l) }
}

// WithStatistics carries statistics over from earlier sessions.
func WithStatistics(s Statistics) Option {
	return func(e *Engine) { e.stats = s }
}

// NewEngine validates cfg and starts a session in the given mode.
func NewEngine(cfg config.BlastConfig, mode Mode, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !mode.Valid() {
		return nil, &config.ConfigurationError{Field: "mode", Message: "unknown mode " + string(mode)}
	}

	e := &Engine{
		cfg:   cfg,
		mode:  mode,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	gen, err := NewGenerator(cfg, e.rng)
	if err != nil {
		return nil, err
	}
	e.gen = gen

	e.Start()
	return e, nil
}

// Subscribe adds a listener for engine events.
func (e *Engine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

func (e *Engine) emit(ev Event) {
	for _, l := range e.listeners {
		l.HandleEvent(ev)
	}
}

// Start begins a fresh session: new grid, new tray, session counters reset.
// Statistics are kept.
func (e *Engine) Start() {
	e.grid = NewGrid(e.cfg.Grid.Size)
	e.available = nil
	e.preview = nil
	e.refill()

	e.status = StatusActive
	e.completed = false
	e.sessionID = uuid.NewString()
	e.startedAt = e.clock()
	e.score = 0
	e.level = e.cfg.Rules.LevelFor(e.stats.LinesCleared)
	e.linesCleared = 0
	e.blocksPlaced = 0
	e.perfectClears = 0
	e.perfectStreak = 0
	e.maxCombo = 0
	e.lastClear = LineClearResult{}
	e.lastClearScore = 0
	e.elapsed = 0
	e.paused = 0
	e.timeRemaining = 0
	if e.mode == ModeTimed {
		e.timeRemaining = time.Duration(e.cfg.Modes.Timed.DurationSeconds) * time.Second
	}
	e.stats.Level = e.level
	e.stats.CurrentCombo = 0
	e.lastSession = nil

	e.logger.Debug("game started", "mode", e.mode, "session", e.sessionID)
	e.emit(GameStartedEvent{Mode: e.mode})
	e.checkNoMoves()
}

// Restart abandons the current session and starts a new one.
func (e *Engine) Restart() {
	e.Start()
}

// refill moves the next SetSize blocks from the preview queue into the tray
// and tops the queue back up.
func (e *Engine) refill() {
	setSize := e.cfg.Blocks.SetSize
	queue := e.preview
	if need := setSize - len(queue); need > 0 {
		queue = append(queue, e.gen.BlockSet(need)...)
	}
	e.available = queue[:setSize:setSize]
	rest := queue[setSize:]
	if need := e.cfg.Blocks.PreviewSize - len(rest); need > 0 {
		rest = append(rest, e.gen.BlockSet(need)...)
	}
	e.preview = append([]*Block(nil), rest...)
}

// TogglePause pauses an active game or resumes a paused one.
// It returns whether the game is now paused.
func (e *Engine) TogglePause() bool {
	switch e.status {
	case StatusActive:
		e.Pause()
	case StatusPaused:
		e.Resume()
	}
	return e.status == StatusPaused
}

// Pause freezes countdowns and placement.
func (e *Engine) Pause() {
	if e.status != StatusActive {
		return
	}
	e.status = StatusPaused
	e.emit(PauseEvent{Paused: true})
}

// Resume continues a paused game.
func (e *Engine) Resume() {
	if e.status != StatusPaused {
		return
	}
	e.status = StatusActive
	e.emit(PauseEvent{Paused: false})
}

// Update advances session time by dt. Paused time is accounted separately;
// in timed mode the countdown runs only while active and ends the game at zero.
func (e *Engine) Update(dt time.Duration) {
	if dt <= 0 || e.status == StatusGameOver {
		return
	}
	e.elapsed += dt
	if e.status == StatusPaused {
		e.paused += dt
		return
	}
	if e.mode == ModeTimed {
		e.timeRemaining -= dt
		if e.timeRemaining <= 0 {
			e.timeRemaining = 0
			e.End(true)
		}
	}
}

// PlaceAvailable places the tray block at index with its origin at target.
func (e *Engine) PlaceAvailable(index int, target core.Position) bool {
	if index < 0 || index >= len(e.available) {
		e.emit(PlacementRejectedEvent{Target: target})
		return false
	}
	return e.PlaceBlock(e.available[index], target)
}

// PlaceBlock places a tray block and runs everything that follows: clearing,
// scoring, perfect clear, tray refill, level and game-over checks.
// It returns false, changing nothing, if the game is not active, the block
// is not in the tray, or the block does not fit.
func (e *Engine) PlaceBlock(b *Block, target core.Position) bool {
	if e.status != StatusActive || !e.inTray(b) || !e.grid.PlaceBlock(b, target) {
		id := ""
		if b != nil {
			id = b.ID()
		}
		e.emit(PlacementRejectedEvent{BlockID: id, Target: target})
		return false
	}

	e.blocksPlaced++
	e.stats.BlocksPlaced++

	cells := b.FilledPositions()
	for i := range cells {
		cells[i] = cells[i].Add(target)
	}
	e.emit(BlockPlacedEvent{BlockID: b.ID(), Positions: cells, Color: b.Color()})

	res := e.grid.ClearCompletedLines()
	e.lastClear = res
	if res.LinesCleared > 0 {
		score := ScoreClear(e.cfg.Rules, res.LinesCleared, res.Combo, e.level, e.perfectStreak)
		e.score += score.Total
		e.lastClearScore = score.Total
		e.linesCleared += res.LinesCleared
		e.stats.LinesCleared += res.LinesCleared
		e.stats.CurrentCombo = res.Combo
		e.maxCombo = max(e.maxCombo, res.Combo)
		e.stats.MaxCombo = max(e.stats.MaxCombo, res.Combo)

		e.emit(LinesClearedEvent{
			Rows:      res.Rows,
			Columns:   res.Columns,
			Positions: res.Positions,
			Lines:     res.LinesCleared,
			Score:     score,
		})
		if res.Combo >= 2 {
			e.emit(ComboEvent{Multiplier: res.Combo})
		}
	} else {
		e.lastClearScore = 0
		e.stats.CurrentCombo = 0
	}

	if e.grid.IsEmpty() {
		bonus := e.cfg.Rules.PerfectClearBonus
		e.score += bonus
		e.perfectClears++
		e.stats.PerfectClears++
		e.perfectStreak++
		e.emit(PerfectClearEvent{Streak: e.perfectStreak, Bonus: bonus})
	} else {
		e.perfectStreak = 0
	}

	if e.allUsed() {
		e.refill()
		bonus := e.cfg.Rules.AllBlocksBonus
		e.score += bonus
		e.logger.Debug("tray refilled", "bonus", bonus)
		e.emit(BlocksRefilledEvent{Bonus: bonus})
	}

	if level := e.cfg.Rules.LevelFor(e.stats.LinesCleared); level != e.level {
		e.level = level
		e.stats.Level = level
		e.logger.Debug("level up", "level", level)
		e.emit(LevelUpEvent{Level: level})
	}

	if !e.checkNoMoves() && e.mode == ModeChallenge && e.score >= e.cfg.Modes.Challenge.TargetScore {
		e.End(true)
	}
	return true
}

// checkNoMoves ends the game when no tray block fits anywhere.
func (e *Engine) checkNoMoves() bool {
	if e.status == StatusGameOver || e.CanPlaceAnyAvailable() {
		return false
	}
	e.End(false)
	return true
}

// RotateAvailable rotates the tray block at index clockwise.
func (e *Engine) RotateAvailable(index int) bool {
	return e.rotate(index, (*Block).RotateClockwise)
}

// RotateAvailableBack rotates the tray block at index counterclockwise.
func (e *Engine) RotateAvailableBack(index int) bool {
	return e.rotate(index, (*Block).RotateCounterClockwise)
}

func (e *Engine) rotate(index int, turn func(*Block)) bool {
	if e.status != StatusActive || index < 0 || index >= len(e.available) || e.available[index].Used() {
		return false
	}
	b := e.available[index]
	turn(b)
	e.emit(BlockRotatedEvent{Index: index, Rotation: b.Rotation()})
	return true
}

// CanPlaceAnyAvailable reports whether any unused tray block fits.
func (e *Engine) CanPlaceAnyAvailable() bool {
	return CanPlaceAny(e.available, e.grid.Occupied(), e.grid.Size(), e.grid.Size())
}

func (e *Engine) inTray(b *Block) bool {
	for _, a := range e.available {
		if a == b && b != nil {
			return true
		}
	}
	return false
}

func (e *Engine) allUsed() bool {
	for _, b := range e.available {
		if !b.Used() {
			return false
		}
	}
	return true
}

// End finishes the session, folds it into the statistics and returns its
// record. Calling End on a finished game returns the existing record.
func (e *Engine) End(completed bool) Session {
	if e.status == StatusGameOver {
		if e.lastSession != nil {
			return *e.lastSession
		}
		return Session{}
	}
	e.status = StatusGameOver
	e.completed = completed

	s := Session{
		ID:            e.sessionID,
		Mode:          e.mode,
		Start:         e.startedAt,
		End:           e.clock(),
		FinalScore:    e.score,
		LinesCleared:  e.linesCleared,
		BlocksPlaced:  e.blocksPlaced,
		Duration:      e.SessionDuration(),
		Completed:     completed,
		PerfectClears: e.perfectClears,
		MaxCombo:      e.maxCombo,
	}
	e.lastSession = &s

	newHigh := e.score > e.stats.HighScore
	e.stats.GamesPlayed++
	e.stats.TimePlayedSeconds += s.Duration.Seconds()
	e.stats.TotalScore += e.score
	if newHigh {
		e.stats.HighScore = e.score
	}

	e.logger.Debug("game over", "mode", e.mode, "score", e.score, "completed", completed, "high", newHigh)
	e.emit(GameOverEvent{Score: e.score, Completed: completed, NewHigh: newHigh, Session: s})
	return s
}

// Mode returns the engine's mode.
func (e *Engine) Mode() Mode { return e.mode }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.BlastConfig { return e.cfg }

// Status returns the current state.
func (e *Engine) Status() Status { return e.status }

// Completed reports whether a finished game reached its goal.
func (e *Engine) Completed() bool { return e.completed }

// Score returns the session score.
func (e *Engine) Score() int { return e.score }

// HighScore returns the best score in this mode, including the live session.
func (e *Engine) HighScore() int { return max(e.stats.HighScore, e.score) }

// Level returns the current level.
func (e *Engine) Level() int { return e.level }

// LinesCleared returns lines cleared this session.
func (e *Engine) LinesCleared() int { return e.linesCleared }

// BlocksPlaced returns blocks placed this session.
func (e *Engine) BlocksPlaced() int { return e.blocksPlaced }

// PerfectStreak returns the number of consecutive perfect clears.
func (e *Engine) PerfectStreak() int { return e.perfectStreak }

// Grid exposes the board. Callers must treat it as read-only.
func (e *Engine) Grid() *Grid { return e.grid }

// Available returns the tray. Callers must treat the blocks as read-only.
func (e *Engine) Available() []*Block { return e.available }

// Preview returns the queued blocks.
func (e *Engine) Preview() []*Block { return e.preview }

// LastClear returns the result of the most recent clearing pass.
func (e *Engine) LastClear() LineClearResult { return e.lastClear }

// LastClearScore returns the points from the most recent placement's clear.
func (e *Engine) LastClearScore() int { return e.lastClearScore }

// TimeRemaining returns the timed-mode countdown, or 0 in other modes.
func (e *Engine) TimeRemaining() time.Duration { return e.timeRemaining }

// SessionDuration returns time spent unpaused in this session.
func (e *Engine) SessionDuration() time.Duration { return e.elapsed - e.paused }

// Statistics returns the accumulated statistics.
func (e *Engine) Statistics() Statistics { return e.stats }

// LastSession returns the record of the most recently finished session.
func (e *Engine) LastSession() (Session, bool) {
	if e.lastSession == nil {
		return Session{}, false
	}
	return *e.lastSession, true
}

// Summary returns a snapshot for renderers and reports.
func (e *Engine) Summary() Summary {
	s := Summary{
		Mode:            e.mode,
		Status:          e.status,
		Score:           e.score,
		HighScore:       e.HighScore(),
		Level:           e.level,
		LinesCleared:    e.linesCleared,
		LinesToNext:     e.cfg.Rules.LinesToNextLevel(e.stats.LinesCleared),
		BlocksPlaced:    e.blocksPlaced,
		Combo:           e.grid.Combo(),
		MaxCombo:        e.maxCombo,
		PerfectClears:   e.perfectClears,
		PerfectStreak:   e.perfectStreak,
		LastClearScore:  e.lastClearScore,
		TimeRemaining:   e.timeRemaining,
		SessionDuration: e.SessionDuration(),
		Statistics:      e.stats,
	}
	if e.mode == ModeChallenge {
		s.TargetScore = e.cfg.Modes.Challenge.TargetScore
	}
	return s
}

// SetStatistics replaces the accumulated statistics, for example with ones
// loaded from storage. Session counters are untouched; the level follows the
// lifetime lines cleared.
func (e *Engine) SetStatistics(s Statistics) {
	e.level = e.cfg.Rules.LevelFor(s.LinesCleared)
	s.Level = e.level
	s.CurrentCombo = e.grid.Combo()
	e.stats = s
}
