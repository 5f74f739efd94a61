package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockblast/internal/core"
)

// GameKeyMap holds the in-game key bindings.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Select1    key.Binding
	Select2    key.Binding
	Select3    key.Binding
	SelectNext key.Binding
	Rotate     key.Binding
	RotateBack key.Binding
	Confirm    key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Save       key.Binding
	Load       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// DefaultGameKeyMap returns the default bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("arrows", "move"),
		),
		Down:  key.NewBinding(key.WithKeys("down", "s", "j")),
		Left:  key.NewBinding(key.WithKeys("left", "a", "h")),
		Right: key.NewBinding(key.WithKeys("right", "d", "l")),
		Select1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1-3", "pick"),
		),
		Select2: key.NewBinding(key.WithKeys("2")),
		Select3: key.NewBinding(key.WithKeys("3")),
		SelectNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x/z", "rotate"),
		),
		RotateBack: key.NewBinding(key.WithKeys("z")),
		Confirm: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "place"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Save: key.NewBinding(
			key.WithKeys("S", "ctrl+s"),
			key.WithHelp("S/L", "save"),
		),
		Load: key.NewBinding(key.WithKeys("L", "ctrl+l")),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select1, k.Rotate, k.Confirm, k.Pause, k.Save, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Select1, k.SelectNext, k.Rotate, k.Confirm},
		{k.Pause, k.Restart, k.Save, k.Back, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	Keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Keys: DefaultGameKeyMap()}
}

// bindings lists actions in match order.
func (km *KeyMapper) bindings() []struct {
	action  core.Action
	binding key.Binding
} {
	k := km.Keys
	return []struct {
		action  core.Action
		binding key.Binding
	}{
		{core.ActionUp, k.Up},
		{core.ActionDown, k.Down},
		{core.ActionLeft, k.Left},
		{core.ActionRight, k.Right},
		{core.ActionSelect1, k.Select1},
		{core.ActionSelect2, k.Select2},
		{core.ActionSelect3, k.Select3},
		{core.ActionSelectNext, k.SelectNext},
		{core.ActionRotate, k.Rotate},
		{core.ActionRotateBack, k.RotateBack},
		{core.ActionConfirm, k.Confirm},
		{core.ActionPause, k.Pause},
		{core.ActionRestart, k.Restart},
		{core.ActionSave, k.Save},
		{core.ActionLoad, k.Load},
		{core.ActionBack, k.Back},
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.Keys.Quit) {
		return core.ActionQuit, true
	}
	for _, b := range km.bindings() {
		if key.Matches(msg, b.binding) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
