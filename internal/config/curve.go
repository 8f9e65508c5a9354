package config

import (
	"math"

	"github.com/vovakirdan/zapatico/internal/core"
)

// TempoCurve calculates the current tempo from the score.
// The tempo is a step function: it jumps by BPMIncrement every HitsPerStep
// correct hits and never moves smoothly in between.
type TempoCurve struct {
	pointsPerHit int
	cfg          TempoConfig
}

// NewTempoCurve creates a tempo curve for the given tuning.
func NewTempoCurve(cfg GameConfig) TempoCurve {
	return TempoCurve{
		pointsPerHit: cfg.Gameplay.PointsPerHit,
		cfg:          cfg.Tempo,
	}
}

// BPM returns the tempo for the given base tempo and score,
// capped at MaxBPM.
func (t TempoCurve) BPM(base, score int) int {
	if score <= 0 || t.pointsPerHit <= 0 || t.cfg.HitsPerStep <= 0 {
		return base
	}
	hits := score / t.pointsPerHit
	if hits <= 0 {
		return base
	}
	additional := (hits / t.cfg.HitsPerStep) * t.cfg.BPMIncrement
	return min(base+additional, t.cfg.MaxBPM)
}

// LoopBPM returns the tempo used to space beats, floored at MinLoopBPM.
func (t TempoCurve) LoopBPM(bpm int) int {
	return max(bpm, t.cfg.MinLoopBPM)
}

// CambiaCurve scales CAMBIA probability and duration by a chaos multiplier.
type CambiaCurve struct {
	cfg CambiaConfig
}

// NewCambiaCurve creates a cambia curve for the given tuning.
func NewCambiaCurve(cfg GameConfig) CambiaCurve {
	return CambiaCurve{cfg: cfg.Cambia}
}

// Probability returns the per-beat trigger probability, clamped to [0, MaxProbability].
func (c CambiaCurve) Probability(multiplier float64) float64 {
	return core.ClampF(c.cfg.BaseProbability*multiplier, 0, c.cfg.MaxProbability)
}

// DurationBeats returns how many beats an inversion lasts,
// rounded and clamped to [MinDuration, MaxDuration].
func (c CambiaCurve) DurationBeats(multiplier float64) int {
	scaled := int(math.Round(float64(c.cfg.BaseDuration) * multiplier))
	return core.Clamp(scaled, c.cfg.MinDuration, c.cfg.MaxDuration)
}

// AnnounceBeats returns how long the CAMBIA banner stays up after a trigger.
func (c CambiaCurve) AnnounceBeats() int {
	return c.cfg.AnnounceBeats
}

// MinBeatsBetween returns the quiet beats required before a new trigger.
func (c CambiaCurve) MinBeatsBetween() int {
	return c.cfg.MinBeatsBetween
}
