// Package tui provides the Bubble Tea integration for the tetris platform.
// It handles the terminal UI loop, input mapping and the menu, leaderboard
// and SSH session flows around a game.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameDelta caps the time fed into one step after a stall, so a
// suspended terminal does not turn into a burst of gravity.
const maxFrameDelta = 250 * time.Millisecond

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the wall time between two ticks. The first tick and any
// clock going backwards report zero, which the game replaces with its nominal
// frame duration.
func frameDelta(prev, now time.Time) time.Duration {
	if prev.IsZero() {
		return 0
	}
	dt := now.Sub(prev)
	if dt <= 0 {
		return 0
	}
	return min(dt, maxFrameDelta)
}
