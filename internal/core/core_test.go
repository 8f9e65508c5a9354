package core

import (
	"math"
	"testing"
)

func TestFootFlipped(t *testing.T) {
	if FootLeft.Flipped() != FootRight {
		t.Error("Left.Flipped() should be Right")
	}
	if FootRight.Flipped() != FootLeft {
		t.Error("Right.Flipped() should be Left")
	}
	if FootLeft.Flipped().Flipped() != FootLeft {
		t.Error("Flipped twice should return the original foot")
	}
}

func TestDifficultyBPM(t *testing.T) {
	tests := []struct {
		d        Difficulty
		expected int
	}{
		{DifficultyKid, 70},
		{DifficultyNormal, 90},
		{DifficultyPro, 120},
	}

	for _, tc := range tests {
		if tc.d.BPM() != tc.expected {
			t.Errorf("%s.BPM() = %d, expected %d", tc.d, tc.d.BPM(), tc.expected)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		name     string
		expected Difficulty
	}{
		{"kid", DifficultyKid},
		{"Normal", DifficultyNormal},
		{" PRO ", DifficultyPro},
		{"", DifficultyNormal},
		{"nightmare", DifficultyNormal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseDifficulty(tc.name); got != tc.expected {
				t.Errorf("ParseDifficulty(%q) = %s, expected %s", tc.name, got, tc.expected)
			}
		})
	}
}

func TestParseChaosLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected ChaosLevel
	}{
		{"off", ChaosOff},
		{"LOW", ChaosLow},
		{"normal", ChaosNormal},
		{"high", ChaosHigh},
		{"extreme", ChaosNormal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseChaosLevel(tc.name); got != tc.expected {
				t.Errorf("ParseChaosLevel(%q) = %s, expected %s", tc.name, got, tc.expected)
			}
		})
	}
}

func TestChaosMultipliers(t *testing.T) {
	if ChaosOff.ProbabilityMultiplier() != 0 {
		t.Error("ChaosOff should never trigger a cambia")
	}
	if ChaosNormal.ProbabilityMultiplier() != 1 || ChaosNormal.DurationMultiplier() != 1 {
		t.Error("ChaosNormal multipliers should both be 1.0")
	}
	for i := 1; i < len(ChaosLevels); i++ {
		prev, cur := ChaosLevels[i-1], ChaosLevels[i]
		if cur.ProbabilityMultiplier() <= prev.ProbabilityMultiplier() {
			t.Errorf("%s probability multiplier should exceed %s", cur, prev)
		}
	}
}

func TestSettingsNormalized(t *testing.T) {
	tests := []struct {
		name     string
		in       Settings
		expected Settings
	}{
		{
			name:     "defaults unchanged",
			in:       DefaultSettings(),
			expected: DefaultSettings(),
		},
		{
			name:     "volume above range",
			in:       Settings{Difficulty: DifficultyPro, Volume: 3.5, Chaos: ChaosHigh},
			expected: Settings{Difficulty: DifficultyPro, Volume: 1, Chaos: ChaosHigh},
		},
		{
			name:     "volume below range",
			in:       Settings{Difficulty: DifficultyKid, Volume: -1, Chaos: ChaosOff, MetronomeEnabled: true},
			expected: Settings{Difficulty: DifficultyKid, Volume: 0, Chaos: ChaosOff, MetronomeEnabled: true},
		},
		{
			name:     "unknown enums",
			in:       Settings{Difficulty: Difficulty(42), Volume: 0.5, Chaos: ChaosLevel(-3)},
			expected: Settings{Difficulty: DifficultyNormal, Volume: 0.5, Chaos: ChaosNormal},
		},
		{
			name:     "NaN volume",
			in:       Settings{Difficulty: DifficultyNormal, Volume: math.NaN(), Chaos: ChaosNormal},
			expected: Settings{Difficulty: DifficultyNormal, Volume: DefaultVolume, Chaos: ChaosNormal},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalized()
			if got != tc.expected {
				t.Errorf("Normalized() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestActionFoot(t *testing.T) {
	if f, ok := ActionLeft.Foot(); !ok || f != FootLeft {
		t.Errorf("ActionLeft.Foot() = %s, %v", f, ok)
	}
	if f, ok := ActionRight.Foot(); !ok || f != FootRight {
		t.Errorf("ActionRight.Foot() = %s, %v", f, ok)
	}
	if _, ok := ActionPause.Foot(); ok {
		t.Error("ActionPause should not map to a foot")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestLookupRejectsUnknownNames(t *testing.T) {
	if d, ok := LookupDifficulty(" PRO "); !ok || d != DifficultyPro {
		t.Errorf("LookupDifficulty(PRO) = %v, %v", d, ok)
	}
	if _, ok := LookupDifficulty("insane"); ok {
		t.Error("LookupDifficulty(insane) should fail")
	}
	if c, ok := LookupChaosLevel("off"); !ok || c != ChaosOff {
		t.Errorf("LookupChaosLevel(off) = %v, %v", c, ok)
	}
	if _, ok := LookupChaosLevel("total"); ok {
		t.Error("LookupChaosLevel(total) should fail")
	}
}

func TestDifficultyTitle(t *testing.T) {
	expected := map[Difficulty]string{
		DifficultyKid:    "Kid",
		DifficultyNormal: "Normal",
		DifficultyPro:    "Pro",
	}
	for d, title := range expected {
		if got := d.Title(); got != title {
			t.Errorf("%v.Title() = %q, expected %q", d, got, title)
		}
	}
}
