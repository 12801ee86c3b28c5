// Package tui provides the Bubble Tea integration for the raycaster.
// It handles the terminal UI loop, input mapping and the map menu.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickRate is used when no rate is configured.
const DefaultTickRate = 30

// TickMsg is sent to trigger a session tick. Loop identifies the model
// that started the tick chain, so a chain left over from a previous
// session does not drive the next one.
type TickMsg struct {
	Time time.Time
	Loop uint64
}

var loops atomic.Uint64

func newLoop() uint64 {
	return loops.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}
