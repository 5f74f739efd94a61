package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockblast/internal/games/blast"
)

// Cue is a sound the game asks for.
type Cue int

const (
	CueNone Cue = iota
	CuePlace
	CueLineClear
	CueCombo
	CueLevelUp
	CuePerfect
	CueError
	CuePause
	CueUnpause
	CueGameOver
)

var cueNames = [...]string{
	CueNone:      "none",
	CuePlace:     "place",
	CueLineClear: "line_clear",
	CueCombo:     "combo",
	CueLevelUp:   "level_up",
	CuePerfect:   "perfect",
	CueError:     "error",
	CuePause:     "pause",
	CueUnpause:   "unpause",
	CueGameOver:  "game_over",
}

func (c Cue) String() string {
	if c >= 0 && int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}

// CueFor maps an engine event to its cue.
func CueFor(ev blast.Event) Cue {
	switch ev := ev.(type) {
	case blast.BlockPlacedEvent:
		return CuePlace
	case blast.LinesClearedEvent:
		return CueLineClear
	case blast.ComboEvent:
		return CueCombo
	case blast.LevelUpEvent:
		return CueLevelUp
	case blast.PerfectClearEvent:
		return CuePerfect
	case blast.PlacementRejectedEvent:
		return CueError
	case blast.PauseEvent:
		if ev.Paused {
			return CuePause
		}
		return CueUnpause
	case blast.GameOverEvent:
		return CueGameOver
	}
	return CueNone
}

// bell reports whether the cue rings the terminal bell.
// Placement and pause toggles are too frequent to ring.
func (c Cue) bell() bool {
	switch c {
	case CueLineClear, CueCombo, CueLevelUp, CuePerfect, CueError, CueGameOver:
		return true
	}
	return false
}

// Audio turns cues into terminal bells. It never writes to the terminal
// itself: the game model takes the pending bells each frame and sends them
// inside the rendered view. Every cue is logged at debug level whether or
// not sound is enabled.
type Audio struct {
	enabled bool
	logger  *log.Logger
	pending int
	played  int
}

// NewAudio creates an audio sink.
func NewAudio(enabled bool, logger *log.Logger) *Audio {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Audio{enabled: enabled, logger: logger}
}

// HandleEvent implements blast.Listener.
func (a *Audio) HandleEvent(ev blast.Event) {
	a.Play(CueFor(ev))
}

// Play emits one cue.
func (a *Audio) Play(c Cue) {
	if c == CueNone {
		return
	}
	a.logger.Debug("audio cue", "cue", c)
	if !a.enabled || !c.bell() {
		return
	}
	a.pending++
	a.played++
}

// TakeBells returns the number of bells rung since the previous call.
func (a *Audio) TakeBells() int {
	n := a.pending
	a.pending = 0
	return n
}

// Enabled reports whether cues ring the bell.
func (a *Audio) Enabled() bool { return a.enabled }

// Played returns how many bells were rung in total.
func (a *Audio) Played() int { return a.played }
