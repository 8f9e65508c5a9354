package core

import "strings"

// Difficulty is a named tempo tier.
type Difficulty int

const (
	DifficultyKid Difficulty = iota
	DifficultyNormal
	DifficultyPro
)

// Difficulties lists all tiers in display order.
var Difficulties = []Difficulty{DifficultyKid, DifficultyNormal, DifficultyPro}

// BPM returns the base tempo for the tier.
func (d Difficulty) BPM() int {
	switch d {
	case DifficultyKid:
		return 70
	case DifficultyPro:
		return 120
	default:
		return 90
	}
}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	return d >= DifficultyKid && d <= DifficultyPro
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyKid:
		return "kid"
	case DifficultyNormal:
		return "normal"
	case DifficultyPro:
		return "pro"
	default:
		return "unknown"
	}
}

// Title returns the display name of the tier.
func (d Difficulty) Title() string {
	s := d.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// LookupDifficulty resolves a tier by name (case-insensitive).
func LookupDifficulty(name string) (Difficulty, bool) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(name), d.String()) {
			return d, true
		}
	}
	return DifficultyNormal, false
}

// ParseDifficulty is LookupDifficulty with unknown names falling back to
// DifficultyNormal.
func ParseDifficulty(name string) Difficulty {
	d, _ := LookupDifficulty(name)
	return d
}

// ChaosLevel scales how often CAMBIA events fire and how long they last.
type ChaosLevel int

const (
	ChaosOff ChaosLevel = iota
	ChaosLow
	ChaosNormal
	ChaosHigh
)

// ChaosLevels lists all chaos levels in display order.
var ChaosLevels = []ChaosLevel{ChaosOff, ChaosLow, ChaosNormal, ChaosHigh}

// ProbabilityMultiplier scales the base cambia trigger probability.
func (c ChaosLevel) ProbabilityMultiplier() float64 {
	switch c {
	case ChaosOff:
		return 0
	case ChaosLow:
		return 0.5
	case ChaosHigh:
		return 1.75
	default:
		return 1.0
	}
}

// DurationMultiplier scales the base cambia duration.
func (c ChaosLevel) DurationMultiplier() float64 {
	switch c {
	case ChaosLow:
		return 0.75
	case ChaosHigh:
		return 1.5
	default:
		return 1.0
	}
}

// Valid reports whether c is one of the known levels.
func (c ChaosLevel) Valid() bool {
	return c >= ChaosOff && c <= ChaosHigh
}

func (c ChaosLevel) String() string {
	switch c {
	case ChaosOff:
		return "off"
	case ChaosLow:
		return "low"
	case ChaosNormal:
		return "normal"
	case ChaosHigh:
		return "high"
	default:
		return "unknown"
	}
}

// LookupChaosLevel resolves a chaos level by name (case-insensitive).
func LookupChaosLevel(name string) (ChaosLevel, bool) {
	for _, c := range ChaosLevels {
		if strings.EqualFold(strings.TrimSpace(name), c.String()) {
			return c, true
		}
	}
	return ChaosNormal, false
}

// ParseChaosLevel is LookupChaosLevel with unknown names falling back to
// ChaosNormal.
func ParseChaosLevel(name string) ChaosLevel {
	c, _ := LookupChaosLevel(name)
	return c
}

// Default preference values.
const (
	DefaultVolume           = 0.7
	DefaultMetronomeEnabled = true
)

// Settings holds the user preferences pushed into the engine.
// It is a plain value: the engine never owns or mutates it.
type Settings struct {
	Difficulty       Difficulty
	MetronomeEnabled bool
	Volume           float64 // 0.0 (mute) to 1.0
	Chaos            ChaosLevel
}

// DefaultSettings returns the preferences used before anything is persisted.
func DefaultSettings() Settings {
	return Settings{
		Difficulty:       DifficultyNormal,
		MetronomeEnabled: DefaultMetronomeEnabled,
		Volume:           DefaultVolume,
		Chaos:            ChaosNormal,
	}
}

// Normalized returns a copy with out-of-range values clamped or replaced
// by defaults. Settings are never rejected.
func (s Settings) Normalized() Settings {
	if !s.Difficulty.Valid() {
		s.Difficulty = DifficultyNormal
	}
	if !s.Chaos.Valid() {
		s.Chaos = ChaosNormal
	}
	// NaN fails both comparisons below, so treat it explicitly.
	if s.Volume != s.Volume {
		s.Volume = DefaultVolume
	}
	s.Volume = ClampF(s.Volume, 0, 1)
	return s
}
