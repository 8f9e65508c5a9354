package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/zapatico/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func difficultyPtr(d core.Difficulty) *core.Difficulty {
	return &d
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore(core.DifficultyNormal, score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore(core.DifficultyPro, 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores(difficultyPtr(core.DifficultyNormal), 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	for _, s := range scores {
		if s.Difficulty != core.DifficultyNormal {
			t.Errorf("Score %d has difficulty %s, expected normal", s.Score, s.Difficulty)
		}
	}

	proScores, err := store.TopScores(difficultyPtr(core.DifficultyPro), 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(proScores) != 1 {
		t.Errorf("Expected 1 pro score, got %d", len(proScores))
	}

	all, err := store.TopScores(nil, 10)
	if err != nil {
		t.Fatalf("TopScores(nil) failed: %v", err)
	}
	if len(all) != 4 || all[0].Score != 500 {
		t.Errorf("TopScores(nil) = %v, expected 4 scores led by 500", all)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(core.DifficultyKid, (i+1)*100)
	}

	scores, err := store.TopScores(difficultyPtr(core.DifficultyKid), 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScoreOnlyIncreases(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for a new store, got %d", high)
	}

	tests := []struct {
		update   int
		expected int
	}{
		{100, 100},
		{300, 300},
		{200, 300}, // lower scores never overwrite
		{90, 300},
		{1000, 1000},
	}

	for _, tc := range tests {
		if err := store.UpdateHighScore(tc.update); err != nil {
			t.Fatalf("UpdateHighScore(%d) failed: %v", tc.update, err)
		}
		high, err := store.HighScore()
		if err != nil {
			t.Fatalf("HighScore() failed: %v", err)
		}
		if high != tc.expected {
			t.Errorf("after UpdateHighScore(%d): HighScore() = %d, expected %d", tc.update, high, tc.expected)
		}
	}
}

func TestStoreClearScoresKeepsBest(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(core.DifficultyNormal, 100)
	store.SaveScore(core.DifficultyPro, 200)
	store.UpdateHighScore(200)

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(nil, 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if high, _ := store.HighScore(); high != 200 {
		t.Errorf("ClearScores() should keep the best score, got %d", high)
	}
}

func TestStoreSettingsDefaults(t *testing.T) {
	store := openTestStore(t)

	settings, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if settings != core.DefaultSettings() {
		t.Errorf("LoadSettings() on empty store = %+v, expected defaults", settings)
	}
}

func TestStoreSettingsRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "prefs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	want := core.Settings{
		Difficulty:       core.DifficultyPro,
		MetronomeEnabled: false,
		Volume:           0.25,
		Chaos:            core.ChaosHigh,
	}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	store.Close()

	// Settings survive reopening
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	got, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadSettings() = %+v, expected %+v", got, want)
	}
}

func TestStoreSettingsClampsVolume(t *testing.T) {
	store := openTestStore(t)

	settings := core.DefaultSettings()
	settings.Volume = 4
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	got, _ := store.LoadSettings()
	if got.Volume != 1 {
		t.Errorf("Volume = %g, expected 1", got.Volume)
	}
}

func TestStoreSettingsIgnoresGarbage(t *testing.T) {
	store := openTestStore(t)

	for key, value := range map[string]string{
		keyDifficulty: "impossible",
		keyVolume:     "loud",
		keyMetronome:  "maybe",
		keyChaos:      "total",
	} {
		if _, err := store.db.Exec("INSERT INTO preferences (key, value) VALUES (?, ?)", key, value); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	got, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if got != core.DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, expected defaults for unreadable values", got)
	}
}

func TestStoreSettingsDoNotTouchHighScore(t *testing.T) {
	store := openTestStore(t)

	store.UpdateHighScore(70)
	store.SaveSettings(core.DefaultSettings())

	if high, _ := store.HighScore(); high != 70 {
		t.Errorf("HighScore() = %d after saving settings, expected 70", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats(core.DifficultyKid)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty tier = %+v", empty)
	}

	store.SaveScore(core.DifficultyKid, 10)
	store.SaveScore(core.DifficultyKid, 30)
	store.SaveScore(core.DifficultyPro, 500)

	stats, err := store.Stats(core.DifficultyKid)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, expected 2", stats.GamesCount)
	}
	if stats.HighScore != 30 {
		t.Errorf("HighScore = %d, expected 30", stats.HighScore)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %g, expected 20", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	// Add many scores
	for i := 0; i < 20; i++ {
		store.SaveScore(core.Difficulties[i%len(core.Difficulties)], i*10)
	}

	scores, err := store.AllScores()
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Fatalf("Expected 20 scores, got %d", len(scores))
	}

	// Most recent first
	if scores[0].Score != 190 || scores[19].Score != 0 {
		t.Errorf("AllScores() order: first %d, last %d", scores[0].Score, scores[19].Score)
	}
}
