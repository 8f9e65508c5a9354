package config

import (
	_ "embed"
)

//go:embed defaults/zapatico.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default engine tuning.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Gameplay: GameplayConfig{
			MaxLives:     3,
			PointsPerHit: 10,
		},
		Tempo: TempoConfig{
			HitsPerStep:  6,
			BPMIncrement: 4,
			MaxBPM:       200,
			MinLoopBPM:   40,
		},
		Cambia: CambiaConfig{
			BaseProbability: 0.22,
			MaxProbability:  0.85,
			BaseDuration:    6,
			MinDuration:     3,
			MaxDuration:     10,
			AnnounceBeats:   2,
			MinBeatsBetween: 6,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGameYAML
}
