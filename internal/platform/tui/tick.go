// Package tui hosts game sessions in a terminal with Bubble Tea, locally or
// over SSH. It handles the tick loop, input mapping, menus and leaderboards.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg fires one scheduled session tick. Gen identifies the tick chain so
// that a restarted game ignores ticks left over from the previous run.
type TickMsg struct {
	Time time.Time
	Gen  int
}

var tickChains atomic.Int64

// newTickChain returns an identifier no other tick chain in the process uses.
func newTickChain() int {
	return int(tickChains.Add(1))
}

// tickCmd schedules the next tick of chain gen after interval.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
