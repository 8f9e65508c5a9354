// Package config provides YAML-based tuning for the zapatico game:
// lives and scoring, tempo acceleration and CAMBIA behaviour.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/zapatico/internal/core"
)

// GameConfig contains all tunable constants of the game engine.
type GameConfig struct {
	Gameplay GameplayConfig `yaml:"gameplay"`
	Tempo    TempoConfig    `yaml:"tempo"`
	Cambia   CambiaConfig   `yaml:"cambia"`
}

// GameplayConfig defines lives and scoring.
type GameplayConfig struct {
	MaxLives     int `yaml:"max_lives"`
	PointsPerHit int `yaml:"points_per_hit"`
}

// TempoConfig defines how the tempo accelerates with score.
type TempoConfig struct {
	HitsPerStep  int `yaml:"hits_per_step"` // Correct hits needed for one BPM step
	BPMIncrement int `yaml:"bpm_increment"` // BPM added per step
	MaxBPM       int `yaml:"max_bpm"`
	MinLoopBPM   int `yaml:"min_loop_bpm"` // Floor used by the beat loop when computing intervals
}

// CambiaConfig defines the inversion events.
type CambiaConfig struct {
	BaseProbability float64 `yaml:"base_probability"` // Per-beat trigger chance at chaos multiplier 1.0
	MaxProbability  float64 `yaml:"max_probability"`
	BaseDuration    int     `yaml:"base_duration"` // Beats at chaos multiplier 1.0
	MinDuration     int     `yaml:"min_duration"`
	MaxDuration     int     `yaml:"max_duration"`
	AnnounceBeats   int     `yaml:"announce_beats"`    // Beats the CAMBIA banner stays up
	MinBeatsBetween int     `yaml:"min_beats_between"` // Quiet beats required before the next trigger
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects tunings the engine cannot honour.
func (c GameConfig) Validate() error {
	switch {
	case c.Gameplay.MaxLives <= 0:
		return fmt.Errorf("%w: gameplay.max_lives must be positive, got %d", ErrInvalidConfig, c.Gameplay.MaxLives)
	case c.Gameplay.PointsPerHit <= 0:
		return fmt.Errorf("%w: gameplay.points_per_hit must be positive, got %d", ErrInvalidConfig, c.Gameplay.PointsPerHit)
	case c.Tempo.HitsPerStep <= 0:
		return fmt.Errorf("%w: tempo.hits_per_step must be positive, got %d", ErrInvalidConfig, c.Tempo.HitsPerStep)
	case c.Tempo.BPMIncrement < 0:
		return fmt.Errorf("%w: tempo.bpm_increment must not be negative, got %d", ErrInvalidConfig, c.Tempo.BPMIncrement)
	case c.Tempo.MaxBPM < fastestBPM():
		return fmt.Errorf("%w: tempo.max_bpm must be at least %d, got %d", ErrInvalidConfig, fastestBPM(), c.Tempo.MaxBPM)
	case c.Tempo.MinLoopBPM <= 0:
		return fmt.Errorf("%w: tempo.min_loop_bpm must be positive, got %d", ErrInvalidConfig, c.Tempo.MinLoopBPM)
	case c.Cambia.BaseProbability < 0 || c.Cambia.BaseProbability > 1:
		return fmt.Errorf("%w: cambia.base_probability must be in [0, 1], got %g", ErrInvalidConfig, c.Cambia.BaseProbability)
	case c.Cambia.MaxProbability < 0 || c.Cambia.MaxProbability > 1:
		return fmt.Errorf("%w: cambia.max_probability must be in [0, 1], got %g", ErrInvalidConfig, c.Cambia.MaxProbability)
	case c.Cambia.MinDuration <= 0 || c.Cambia.MinDuration > c.Cambia.MaxDuration:
		return fmt.Errorf("%w: cambia duration bounds [%d, %d] are invalid", ErrInvalidConfig, c.Cambia.MinDuration, c.Cambia.MaxDuration)
	case c.Cambia.AnnounceBeats < 0:
		return fmt.Errorf("%w: cambia.announce_beats must not be negative, got %d", ErrInvalidConfig, c.Cambia.AnnounceBeats)
	case c.Cambia.MinBeatsBetween < 0:
		return fmt.Errorf("%w: cambia.min_beats_between must not be negative, got %d", ErrInvalidConfig, c.Cambia.MinBeatsBetween)
	}
	return nil
}

// fastestBPM returns the base tempo of the fastest difficulty tier.
// A max_bpm below it would let the base tempo exceed the cap.
func fastestBPM() int {
	fastest := 0
	for _, d := range core.Difficulties {
		fastest = max(fastest, d.BPM())
	}
	return fastest
}
