package zapatico

import (
	"github.com/vovakirdan/zapatico/internal/config"
	"github.com/vovakirdan/zapatico/internal/core"
)

// Phase is the coarse lifecycle position of a game.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseRunning  Phase = "running"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "game_over"
)

// State is the snapshot published after every transition.
// It is a value: holding on to one never observes later changes.
type State struct {
	Prompt       core.Foot // What the player sees; always equal to ExpectedFoot
	ExpectedFoot core.Foot // Foot that scores on the current beat
	ShowCambia   bool      // CAMBIA banner visible (trigger beat and announce window)
	InvertActive bool      // Prompt-to-input mapping is inverted

	Score     int
	BestScore int
	Lives     int
	LastScore int // Score of the most recently lost game

	Running         bool
	Paused          bool
	GameOver        bool
	GameOverEventID int // Incremented once per lost game

	Beat       int64 // Beats since the game started
	BaseBPM    int
	CurrentBPM int

	MetronomeEnabled bool
	Volume           float64
}

// Phase derives the lifecycle phase from the snapshot flags.
func (s State) Phase() Phase {
	switch {
	case s.GameOver:
		return PhaseGameOver
	case s.Running:
		return PhaseRunning
	case s.Paused:
		return PhasePaused
	default:
		return PhaseIdle
	}
}

// initialState returns the state of a freshly constructed engine.
func initialState(cfg config.GameConfig, settings core.Settings) State {
	bpm := settings.Difficulty.BPM()
	return State{
		Prompt:           core.FootLeft,
		ExpectedFoot:     core.FootLeft,
		Lives:            cfg.Gameplay.MaxLives,
		BaseBPM:          bpm,
		CurrentBPM:       bpm,
		MetronomeEnabled: settings.MetronomeEnabled,
		Volume:           settings.Volume,
	}
}
