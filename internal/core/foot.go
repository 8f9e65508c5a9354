// Package core provides fundamental types for the zapatico game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Foot identifies which input the player taps on a beat.
type Foot int

const (
	FootLeft Foot = iota
	FootRight
)

// Flipped returns the opposite foot.
func (f Foot) Flipped() Foot {
	if f == FootLeft {
		return FootRight
	}
	return FootLeft
}

// String returns a human-readable name for the foot.
func (f Foot) String() string {
	switch f {
	case FootLeft:
		return "Left"
	case FootRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// RandomSource is the randomness capability the engine draws from.
// *rand.Rand from math/rand satisfies it, so tests can inject a seeded source.
type RandomSource interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}
