package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game and menus to work with intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A, H - left foot / previous value
	ActionRight          // Right arrow, D, L - right foot / next value
	ActionUp             // Up arrow, W, K - menu navigation
	ActionDown           // Down arrow, S, J - menu navigation
	ActionConfirm        // Enter, Space - start game / select
	ActionBack           // B, Escape - back to home
	ActionRestart        // R - restart after game over
	ActionPause          // P - pause/resume
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Foot returns the foot a tap action stands for.
// ok is false for actions that are not taps.
func (a Action) Foot() (foot Foot, ok bool) {
	switch a {
	case ActionLeft:
		return FootLeft, true
	case ActionRight:
		return FootRight, true
	}
	return FootLeft, false
}
