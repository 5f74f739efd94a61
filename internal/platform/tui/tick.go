// Package tui provides the Bubble Tea integration for Block Blast.
// It handles the terminal UI loop, input mapping, effects, audio cues
// and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameDelta bounds the time a single frame can advance the game.
const maxFrameDelta = 250 * time.Millisecond

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the time between two ticks. The first tick and
// clock jumps backwards yield zero.
func frameDelta(prev, now time.Time) time.Duration {
	if prev.IsZero() {
		return 0
	}
	d := now.Sub(prev)
	if d < 0 {
		return 0
	}
	return min(d, maxFrameDelta)
}
