// Package tui provides the Bubble Tea front end for Zapatico.
// It owns the beat clock, maps keys to engine calls and renders snapshots.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// BeatMsg asks the game screen to advance the engine by one beat.
// Gen identifies the beat loop that scheduled it; messages from an older
// loop are dropped.
type BeatMsg struct {
	Gen int
}

// pulseOffMsg ends the metronome flash of a beat.
type pulseOffMsg struct {
	gen  int
	beat int64
}

// beatNow fires the first beat of a loop without waiting.
func beatNow(gen int) tea.Cmd {
	return func() tea.Msg {
		return BeatMsg{Gen: gen}
	}
}

// beatCmd schedules the next beat of loop gen after interval.
func beatCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return BeatMsg{Gen: gen}
	})
}

// pulseOffCmd turns the metronome flash off after d.
func pulseOffCmd(d time.Duration, gen int, beat int64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return pulseOffMsg{gen: gen, beat: beat}
	})
}
