package blast

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/blockblast/internal/core"
)

// SaveVersion tags the save format.
const SaveVersion = "2.0"

var (
	// ErrVersionMismatch is wrapped by PersistenceError when a save was
	// written by another format version.
	ErrVersionMismatch = errors.New("save version mismatch")

	// ErrCorruptSave is wrapped by PersistenceError when a save is malformed.
	ErrCorruptSave = errors.New("corrupt save")
)

// PersistenceError reports a save that cannot be decoded or restored.
// The engine is left unchanged when one is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("blast: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func corrupt(format string, args ...any) error {
	return &PersistenceError{Op: "restore", Err: fmt.Errorf("%w: %s", ErrCorruptSave, fmt.Sprintf(format, args...))}
}

// SaveState is the plain-data form of an in-progress session.
type SaveState struct {
	Version        string       `json:"version"`
	Mode           Mode         `json:"mode"`
	Score          int          `json:"score"`
	Level          int          `json:"level"`
	LinesCleared   int          `json:"lines_cleared"`
	BlocksPlaced   int          `json:"blocks_placed"`
	PerfectClears  int          `json:"perfect_clears"`
	PerfectStreak  int          `json:"perfect_streak"`
	MaxCombo       int          `json:"max_combo"`
	LastClearScore int          `json:"last_clear_score"`
	Statistics     Statistics   `json:"statistics"`
	Grid           GridState    `json:"grid_data"`
	Available      []BlockState `json:"available_blocks"`
	Preview        []BlockState `json:"next_blocks"`
	Session        SessionState `json:"session_data"`
	GameOver       bool         `json:"game_over"`
	Completed      bool         `json:"completed"`
	Paused         bool         `json:"paused"`
	SavedAt        time.Time    `json:"save_time"`
}

// GridState is the plain-data form of a Grid. Cells are row-major.
type GridState struct {
	Size         int        `json:"size"`
	Cells        []CellData `json:"cells"`
	Combo        int        `json:"combo"`
	LinesCleared int        `json:"total_lines_cleared"`
}

// CellData is the plain-data form of a Cell.
type CellData struct {
	Filled  bool   `json:"filled"`
	Color   string `json:"color,omitempty"`
	BlockID string `json:"block_id,omitempty"`
}

// BlockState is the plain-data form of a Block.
type BlockState struct {
	ID       string  `json:"id"`
	Shape    [][]int `json:"shape"`
	Color    string  `json:"color"`
	Used     bool    `json:"used"`
	Rotation int     `json:"rotation"`
}

// SessionState holds the session identity and timers.
type SessionState struct {
	ID            string        `json:"session_id"`
	StartedAt     time.Time     `json:"start_time"`
	Elapsed       time.Duration `json:"elapsed"`
	Paused        time.Duration `json:"total_pause_time"`
	TimeRemaining time.Duration `json:"time_remaining"`
}

// Save captures the full session state.
func (e *Engine) Save() SaveState {
	s := SaveState{
		Version:        SaveVersion,
		Mode:           e.mode,
		Score:          e.score,
		Level:          e.level,
		LinesCleared:   e.linesCleared,
		BlocksPlaced:   e.blocksPlaced,
		PerfectClears:  e.perfectClears,
		PerfectStreak:  e.perfectStreak,
		MaxCombo:       e.maxCombo,
		LastClearScore: e.lastClearScore,
		Statistics:     e.stats,
		Grid:           saveGrid(e.grid),
		Available:      saveBlocks(e.available),
		Preview:        saveBlocks(e.preview),
		Session: SessionState{
			ID:            e.sessionID,
			StartedAt:     e.startedAt,
			Elapsed:       e.elapsed,
			Paused:        e.paused,
			TimeRemaining: e.timeRemaining,
		},
		GameOver:  e.status == StatusGameOver,
		Completed: e.completed,
		Paused:    e.status == StatusPaused,
		SavedAt:   e.clock(),
	}
	return s
}

func saveGrid(g *Grid) GridState {
	gs := GridState{
		Size:         g.size,
		Cells:        make([]CellData, 0, g.size*g.size),
		Combo:        g.combo,
		LinesCleared: g.totalLines,
	}
	for y := range g.cells {
		for _, c := range g.cells[y] {
			cs := CellData{Filled: c.Filled()}
			if cs.Filled {
				cs.Color = c.Color.String()
				cs.BlockID = c.BlockID
			}
			gs.Cells = append(gs.Cells, cs)
		}
	}
	return gs
}

func saveBlocks(blocks []*Block) []BlockState {
	out := make([]BlockState, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, BlockState{
			ID:       b.id,
			Shape:    b.Shape(),
			Color:    b.color.String(),
			Used:     b.used,
			Rotation: b.rotation,
		})
	}
	return out
}

// Restore replaces the session with s. Everything is validated before the
// engine is touched; on error the current session is unchanged.
// Listeners are kept and no events are emitted, except that an active save
// whose tray no longer fits ends right away.
func (e *Engine) Restore(s SaveState) error {
	if s.Version != SaveVersion {
		return &PersistenceError{Op: "restore", Err: fmt.Errorf("%w: got %q, want %q", ErrVersionMismatch, s.Version, SaveVersion)}
	}
	if s.Mode != e.mode {
		return corrupt("save is for mode %q, engine runs %q", s.Mode, e.mode)
	}
	if s.Level < 1 || s.Score < 0 || s.LinesCleared < 0 || s.BlocksPlaced < 0 {
		return corrupt("negative counters")
	}
	if s.GameOver && s.Paused {
		return corrupt("save is both paused and over")
	}

	grid, err := restoreGrid(s.Grid, e.cfg.Grid.Size)
	if err != nil {
		return err
	}
	available, err := restoreBlocks(s.Available)
	if err != nil {
		return err
	}
	if len(available) != e.cfg.Blocks.SetSize {
		return corrupt("tray has %d blocks, want %d", len(available), e.cfg.Blocks.SetSize)
	}
	preview, err := restoreBlocks(s.Preview)
	if err != nil {
		return err
	}

	e.grid = grid
	e.available = available
	e.preview = preview
	e.score = s.Score
	e.level = s.Level
	e.linesCleared = s.LinesCleared
	e.blocksPlaced = s.BlocksPlaced
	e.perfectClears = s.PerfectClears
	e.perfectStreak = s.PerfectStreak
	e.maxCombo = s.MaxCombo
	e.lastClearScore = s.LastClearScore
	e.lastClear = LineClearResult{Combo: grid.combo}
	e.stats = s.Statistics
	e.sessionID = s.Session.ID
	e.startedAt = s.Session.StartedAt
	e.elapsed = s.Session.Elapsed
	e.paused = s.Session.Paused
	e.timeRemaining = s.Session.TimeRemaining
	e.completed = s.Completed
	e.lastSession = nil
	switch {
	case s.GameOver:
		e.status = StatusGameOver
	case s.Paused:
		e.status = StatusPaused
	default:
		e.status = StatusActive
	}

	e.logger.Debug("session restored", "mode", e.mode, "score", e.score)
	if e.status == StatusActive {
		e.checkNoMoves()
	}
	return nil
}

func restoreGrid(gs GridState, size int) (*Grid, error) {
	if gs.Size != size {
		return nil, corrupt("grid size %d, want %d", gs.Size, size)
	}
	if len(gs.Cells) != size*size {
		return nil, corrupt("grid has %d cells, want %d", len(gs.Cells), size*size)
	}
	if gs.Combo < 0 || gs.LinesCleared < 0 {
		return nil, corrupt("negative grid counters")
	}
	g := NewGrid(size)
	for i, cs := range gs.Cells {
		if !cs.Filled {
			continue
		}
		color, ok := core.ParseColor(cs.Color)
		if !ok {
			return nil, corrupt("cell %d has unknown color %q", i, cs.Color)
		}
		g.cells[i/size][i%size] = Cell{State: CellFilled, Color: color, BlockID: cs.BlockID}
	}
	g.combo = gs.Combo
	g.totalLines = gs.LinesCleared
	return g, nil
}

func restoreBlocks(states []BlockState) ([]*Block, error) {
	out := make([]*Block, 0, len(states))
	for i, bs := range states {
		color, ok := core.ParseColor(bs.Color)
		if !ok {
			return nil, corrupt("block %d has unknown color %q", i, bs.Color)
		}
		b, err := NewBlock(bs.Shape, color, bs.ID)
		if err != nil {
			return nil, &PersistenceError{Op: "restore", Err: fmt.Errorf("%w: block %d: %w", ErrCorruptSave, i, err)}
		}
		switch bs.Rotation {
		case 0, 90, 180, 270:
		default:
			return nil, corrupt("block %d has rotation %d", i, bs.Rotation)
		}
		b.rotation = bs.Rotation
		b.used = bs.Used
		out = append(out, b)
	}
	return out, nil
}

// EncodeSave serializes a save to JSON.
func EncodeSave(s SaveState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, &PersistenceError{Op: "encode", Err: err}
	}
	return data, nil
}

// DecodeSave parses a JSON save. Structural validation happens in Restore.
func DecodeSave(data []byte) (SaveState, error) {
	var s SaveState
	if err := json.Unmarshal(data, &s); err != nil {
		return SaveState{}, &PersistenceError{Op: "decode", Err: fmt.Errorf("%w: %w", ErrCorruptSave, err)}
	}
	return s, nil
}

// Load decodes data and restores it.
func (e *Engine) Load(data []byte) error {
	s, err := DecodeSave(data)
	if err != nil {
		return err
	}
	return e.Restore(s)
}
