package blast

import "github.com/vovakirdan/blockblast/internal/core"

// Event is a notification emitted by the Engine after a state change.
// The set of events is closed; consumers type-switch on it.
type Event interface {
	blastEvent()
}

// GameStartedEvent is sent when a fresh session begins.
type GameStartedEvent struct {
	Mode Mode
}

// BlockPlacedEvent is sent after a block lands on the grid.
type BlockPlacedEvent struct {
	BlockID   string
	Positions []core.Position // absolute grid cells
	Color     core.Color
}

// BlockRotatedEvent is sent when a tray block is rotated.
type BlockRotatedEvent struct {
	Index    int
	Rotation int
}

// PlacementRejectedEvent is sent when a placement request is refused.
type PlacementRejectedEvent struct {
	BlockID string
	Target  core.Position
}

// LinesClearedEvent is sent when a placement completes rows or columns.
type LinesClearedEvent struct {
	Rows      []int
	Columns   []int
	Positions []core.Position
	Lines     int
	Score     ScoreBreakdown
}

// ComboEvent is sent when consecutive clearing placements reach a combo of two or more.
type ComboEvent struct {
	Multiplier int
}

// PerfectClearEvent is sent when a clear leaves the grid empty.
type PerfectClearEvent struct {
	Streak int
	Bonus  int
}

// BlocksRefilledEvent is sent when the tray is used up and replaced.
type BlocksRefilledEvent struct {
	Bonus int
}

// LevelUpEvent is sent when the level increases.
type LevelUpEvent struct {
	Level int
}

// PauseEvent is sent when the game is paused or resumed.
type PauseEvent struct {
	Paused bool
}

// GameOverEvent is sent once when a session ends.
type GameOverEvent struct {
	Score     int
	Completed bool
	NewHigh   bool
	Session   Session
}

func (GameStartedEvent) blastEvent()       {}
func (BlockPlacedEvent) blastEvent()       {}
func (BlockRotatedEvent) blastEvent()      {}
func (PlacementRejectedEvent) blastEvent() {}
func (LinesClearedEvent) blastEvent()      {}
func (ComboEvent) blastEvent()             {}
func (PerfectClearEvent) blastEvent()      {}
func (BlocksRefilledEvent) blastEvent()    {}
func (LevelUpEvent) blastEvent()           {}
func (PauseEvent) blastEvent()             {}
func (GameOverEvent) blastEvent()          {}

// Listener receives engine events. Listeners must not mutate the engine.
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// HandleEvent calls f(ev).
func (f ListenerFunc) HandleEvent(ev Event) { f(ev) }
