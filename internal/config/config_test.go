package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) failed: %v", err)
	}
	if cfg != DefaultGameConfig() {
		t.Errorf("embedded defaults %+v differ from DefaultGameConfig() %+v", cfg, DefaultGameConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultGameConfig().Validate(); err != nil {
		t.Errorf("DefaultGameConfig() should be valid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("gameplay:\n  max_lives: 5\ntempo:\n  max_bpm: 180\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Gameplay.MaxLives != 5 {
		t.Errorf("MaxLives = %d, expected 5", cfg.Gameplay.MaxLives)
	}
	if cfg.Tempo.MaxBPM != 180 {
		t.Errorf("MaxBPM = %d, expected 180", cfg.Tempo.MaxBPM)
	}
	// Unset keys keep defaults
	if cfg.Gameplay.PointsPerHit != 10 {
		t.Errorf("PointsPerHit = %d, expected default 10", cfg.Gameplay.PointsPerHit)
	}
	if cfg.Cambia.BaseProbability != 0.22 {
		t.Errorf("BaseProbability = %g, expected default 0.22", cfg.Cambia.BaseProbability)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("gameplay:\n  max_lives: 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"zero lives", func(c *GameConfig) { c.Gameplay.MaxLives = 0 }},
		{"zero points", func(c *GameConfig) { c.Gameplay.PointsPerHit = 0 }},
		{"zero hits per step", func(c *GameConfig) { c.Tempo.HitsPerStep = 0 }},
		{"negative increment", func(c *GameConfig) { c.Tempo.BPMIncrement = -1 }},
		{"max bpm below pro", func(c *GameConfig) { c.Tempo.MaxBPM = 100 }},
		{"probability above one", func(c *GameConfig) { c.Cambia.BaseProbability = 1.5 }},
		{"max probability negative", func(c *GameConfig) { c.Cambia.MaxProbability = -0.1 }},
		{"inverted duration", func(c *GameConfig) { c.Cambia.MinDuration = 12 }},
		{"negative announce", func(c *GameConfig) { c.Cambia.AnnounceBeats = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestTempoCurveSteps(t *testing.T) {
	curve := NewTempoCurve(DefaultGameConfig())

	tests := []struct {
		base, score, expected int
	}{
		{90, 0, 90},
		{90, 10, 90},
		{90, 50, 90},  // 5 hits, no step yet
		{90, 60, 94},  // 6 hits, first step
		{90, 110, 94}, // 11 hits, still first step
		{90, 120, 98},
		{70, 60, 74},
		{120, 10000, 200}, // capped
		{90, -10, 90},
	}

	for _, tc := range tests {
		if got := curve.BPM(tc.base, tc.score); got != tc.expected {
			t.Errorf("BPM(%d, %d) = %d, expected %d", tc.base, tc.score, got, tc.expected)
		}
	}
}

func TestTempoCurveLoopFloor(t *testing.T) {
	curve := NewTempoCurve(DefaultGameConfig())
	if curve.LoopBPM(10) != 40 {
		t.Errorf("LoopBPM(10) = %d, expected 40", curve.LoopBPM(10))
	}
	if curve.LoopBPM(90) != 90 {
		t.Errorf("LoopBPM(90) = %d, expected 90", curve.LoopBPM(90))
	}
}

func TestCambiaCurve(t *testing.T) {
	curve := NewCambiaCurve(DefaultGameConfig())

	probTests := []struct {
		multiplier, expected float64
	}{
		{0, 0},
		{1, 0.22},
		{10, 0.85}, // capped
		{-1, 0},
	}
	for _, tc := range probTests {
		if got := curve.Probability(tc.multiplier); got != tc.expected {
			t.Errorf("Probability(%g) = %g, expected %g", tc.multiplier, got, tc.expected)
		}
	}

	durTests := []struct {
		multiplier float64
		expected   int
	}{
		{1, 6},
		{0.75, 5}, // 4.5 rounds up
		{1.5, 9},
		{0.1, 3},  // floored at min
		{5.0, 10}, // capped at max
	}
	for _, tc := range durTests {
		if got := curve.DurationBeats(tc.multiplier); got != tc.expected {
			t.Errorf("DurationBeats(%g) = %d, expected %d", tc.multiplier, got, tc.expected)
		}
	}
}
