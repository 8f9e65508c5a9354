package scorekeeper

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zapatico/internal/core"
	"github.com/vovakirdan/zapatico/internal/games/zapatico"
	"github.com/vovakirdan/zapatico/internal/storage"
)

var _ zapatico.ScoreRecorder = (*Recorder)(nil)

type savedScore struct {
	difficulty core.Difficulty
	score      int
}

type fakeSink struct {
	mu     sync.Mutex
	best   []int
	saved  []savedScore
	err    error
	gate   chan struct{} // when set, every call waits for it to close
	called chan struct{} // when set, receives one value per call
}

func (s *fakeSink) wait() {
	if s.called != nil {
		s.called <- struct{}{}
	}
	if s.gate != nil {
		<-s.gate
	}
}

func (s *fakeSink) UpdateHighScore(score int) error {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.best = append(s.best, score)
	return nil
}

func (s *fakeSink) SaveScore(d core.Difficulty, score int) (int64, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.saved = append(s.saved, savedScore{d, score})
	return int64(len(s.saved)), nil
}

func TestRecorderDrainsOnClose(t *testing.T) {
	sink := &fakeSink{}
	r := New(sink, nil)

	for i := 1; i <= 10; i++ {
		r.PersistBestScore(i * 10)
	}
	r.PersistFinalScore(100)
	r.Close()

	// Ten best scores, then the final score offered as a best score
	if len(sink.best) != 11 {
		t.Fatalf("best updates = %d, expected 11", len(sink.best))
	}
	for i, score := range sink.best {
		if score != min((i+1)*10, 100) {
			t.Errorf("best[%d] = %d, expected jobs in order", i, score)
		}
	}
	if len(sink.saved) != 1 || sink.saved[0].score != 100 {
		t.Errorf("saved = %v, expected one score of 100", sink.saved)
	}
}

func TestRecorderTagsDifficulty(t *testing.T) {
	sink := &fakeSink{}
	r := New(sink, nil, WithDifficulty(core.DifficultyKid))

	r.PersistFinalScore(10)
	r.SetDifficulty(core.DifficultyPro)
	r.PersistFinalScore(20)
	r.Close()

	expected := []savedScore{
		{core.DifficultyKid, 10},
		{core.DifficultyPro, 20},
	}
	if len(sink.saved) != len(expected) {
		t.Fatalf("saved = %v, expected %v", sink.saved, expected)
	}
	for i := range expected {
		if sink.saved[i] != expected[i] {
			t.Errorf("saved[%d] = %v, expected %v", i, sink.saved[i], expected[i])
		}
	}
}

func TestRecorderLogsSinkErrors(t *testing.T) {
	var buf bytes.Buffer
	sink := &fakeSink{err: errors.New("disk full")}
	r := New(sink, log.New(&buf))

	r.PersistBestScore(50)
	r.PersistFinalScore(50)
	r.Close()

	out := buf.String()
	if !strings.Contains(out, "disk full") {
		t.Errorf("expected sink error in log, got %q", out)
	}
	if !strings.Contains(out, "cannot save score") || !strings.Contains(out, "cannot persist best score") {
		t.Errorf("expected both failures logged, got %q", out)
	}
}

func TestRecorderIgnoresCallsAfterClose(t *testing.T) {
	sink := &fakeSink{}
	r := New(sink, nil)
	r.Close()

	// Must neither panic on the closed channel nor reach the sink
	r.PersistBestScore(10)
	r.PersistFinalScore(10)
	r.Close()

	if len(sink.best) != 0 || len(sink.saved) != 0 {
		t.Errorf("sink reached after Close: best=%v saved=%v", sink.best, sink.saved)
	}
}

func TestRecorderDropsWhenQueueFull(t *testing.T) {
	var buf bytes.Buffer
	sink := &fakeSink{
		gate:   make(chan struct{}),
		called: make(chan struct{}, 8),
	}
	r := New(sink, log.New(&buf), WithQueueSize(1))

	r.PersistBestScore(10)
	<-sink.called // worker is now blocked inside the sink

	r.PersistBestScore(20) // fills the queue
	r.PersistBestScore(30) // dropped

	close(sink.gate)
	r.Close()

	if len(sink.best) != 2 || sink.best[0] != 10 || sink.best[1] != 20 {
		t.Errorf("best = %v, expected [10 20]", sink.best)
	}
	if !strings.Contains(buf.String(), "score queue full") {
		t.Errorf("expected drop warning, got %q", buf.String())
	}
}

func TestRecorderWithEngine(t *testing.T) {
	sink := &fakeSink{}
	r := New(sink, nil, WithDifficulty(core.DifficultyNormal))

	engine, err := zapatico.New(zapatico.WithSeed(7), zapatico.WithRecorder(r))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	engine.Start()
	engine.OnBeat()
	expected := engine.Snapshot().ExpectedFoot
	engine.OnFootPressed(expected) // 10 points, new best

	for !engine.Snapshot().GameOver {
		engine.OnFootPressed(engine.Snapshot().ExpectedFoot.Flipped())
	}
	r.Close()

	if len(sink.best) != 2 || sink.best[0] != 10 || sink.best[1] != 10 {
		t.Errorf("best = %v, expected [10 10]", sink.best)
	}
	if len(sink.saved) != 1 || sink.saved[0] != (savedScore{core.DifficultyNormal, 10}) {
		t.Errorf("saved = %v, expected one normal score of 10", sink.saved)
	}
}

func TestRecorderFinalScoreRaisesHighScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	// No best score job reaches the store, only the final score.
	r := New(store, nil, WithDifficulty(core.DifficultyPro))
	r.PersistFinalScore(50)
	r.Close()

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 50 {
		t.Errorf("HighScore() = %d, expected 50", high)
	}

	pro := core.DifficultyPro
	scores, err := store.TopScores(&pro, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 50 {
		t.Errorf("TopScores() = %v, expected one score of 50", scores)
	}
}

func TestRecorderFinalScoreKeepsHigherBest(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	r := New(store, nil)
	r.PersistBestScore(80)
	r.PersistFinalScore(30)
	r.Close()

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 80 {
		t.Errorf("HighScore() = %d, expected 80", high)
	}
}
