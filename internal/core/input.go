package core

import "time"

// Action is a decoded player intent, abstracted from physical key presses.
// Games only ever see these; the platform owns the key bindings.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // move cursor up
	ActionDown              // move cursor down
	ActionLeft              // move cursor left
	ActionRight             // move cursor right
	ActionSelect1           // select tray slot 1
	ActionSelect2           // select tray slot 2
	ActionSelect3           // select tray slot 3
	ActionSelectNext        // cycle to the next unused block
	ActionRotate            // rotate selected block clockwise
	ActionRotateBack        // rotate selected block counterclockwise
	ActionConfirm           // place selected block at the cursor
	ActionPause             // toggle pause
	ActionRestart           // start a new session
	ActionSave              // write the current session to the save slot
	ActionLoad              // restore the session from the save slot
	ActionBack              // leave to the menu
	ActionQuit              // exit
)

var actionNames = [...]string{
	ActionNone:       "None",
	ActionUp:         "Up",
	ActionDown:       "Down",
	ActionLeft:       "Left",
	ActionRight:      "Right",
	ActionSelect1:    "Select1",
	ActionSelect2:    "Select2",
	ActionSelect3:    "Select3",
	ActionSelectNext: "SelectNext",
	ActionRotate:     "Rotate",
	ActionRotateBack: "RotateBack",
	ActionConfirm:    "Confirm",
	ActionPause:      "Pause",
	ActionRestart:    "Restart",
	ActionSave:       "Save",
	ActionLoad:       "Load",
	ActionBack:       "Back",
	ActionQuit:       "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "Unknown"
}

// SelectIndex returns the tray slot for ActionSelect1..3.
func (a Action) SelectIndex() (int, bool) {
	switch a {
	case ActionSelect1:
		return 0, true
	case ActionSelect2:
		return 1, true
	case ActionSelect3:
		return 2, true
	}
	return 0, false
}

// InputFrame carries everything the platform hands a game for one frame:
// the intents triggered since the previous frame and the measured frame time.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Delta is the wall time elapsed since the previous frame.
	Delta time.Duration
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions and the delta for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Delta = 0
}
