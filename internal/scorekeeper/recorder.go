// Package scorekeeper persists engine scores off the game goroutine.
// The engine calls the recorder inline after each transition; the recorder
// only queues the work and a single background worker talks to the sink.
package scorekeeper

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zapatico/internal/core"
)

// DefaultQueueSize is the number of pending jobs held before new ones are dropped.
const DefaultQueueSize = 32

// Sink is where scores end up. *storage.Store satisfies it.
type Sink interface {
	UpdateHighScore(score int) error
	SaveScore(difficulty core.Difficulty, score int) (int64, error)
}

// job is a unit of work for the worker.
type job interface{ isJob() }

type bestScoreJob struct {
	score int
}

type finalScoreJob struct {
	difficulty core.Difficulty
	score      int
}

func (bestScoreJob) isJob()  {}
func (finalScoreJob) isJob() {}

// Option configures a Recorder.
type Option func(*Recorder)

// WithQueueSize overrides DefaultQueueSize.
func WithQueueSize(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.queueSize = n
		}
	}
}

// WithDifficulty sets the tier the first final scores are filed under.
func WithDifficulty(d core.Difficulty) Option {
	return func(r *Recorder) { r.difficulty = d }
}

// Recorder is a fire-and-forget score recorder.
// Safe for concurrent use.
type Recorder struct {
	sink      Sink
	logger    *log.Logger
	queueSize int

	mu         sync.Mutex
	difficulty core.Difficulty
	closed     bool

	jobs chan job
	wg   sync.WaitGroup
}

// New starts a recorder writing to sink.
func New(sink Sink, logger *log.Logger, opts ...Option) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Recorder{
		sink:       sink,
		logger:     logger,
		queueSize:  DefaultQueueSize,
		difficulty: core.DifficultyNormal,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.jobs = make(chan job, r.queueSize)

	r.wg.Add(1)
	go r.run()
	return r
}

// SetDifficulty tags the final scores recorded from now on.
func (r *Recorder) SetDifficulty(d core.Difficulty) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.difficulty = d
}

// PersistBestScore queues a best score update.
func (r *Recorder) PersistBestScore(score int) {
	r.enqueue(bestScoreJob{score: score})
}

// PersistFinalScore queues a finished game under the current difficulty.
func (r *Recorder) PersistFinalScore(score int) {
	r.mu.Lock()
	d := r.difficulty
	r.mu.Unlock()
	r.enqueue(finalScoreJob{difficulty: d, score: score})
}

// Close stops accepting jobs and waits until the queued ones are written.
// Safe to call multiple times.
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.jobs)
	r.mu.Unlock()

	r.wg.Wait()
}

// enqueue never blocks. The lock keeps sends and close from racing.
func (r *Recorder) enqueue(j job) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	select {
	case r.jobs <- j:
	default:
		r.logger.Warn("score queue full, dropping job", "job", describe(j))
	}
}

func (r *Recorder) run() {
	defer r.wg.Done()
	for j := range r.jobs {
		r.handle(j)
	}
}

func (r *Recorder) handle(j job) {
	switch j := j.(type) {
	case bestScoreJob:
		if err := r.sink.UpdateHighScore(j.score); err != nil {
			r.logger.Error("cannot persist best score", "score", j.score, "err", err)
		}
	case finalScoreJob:
		// A final score also counts as a best score candidate.
		if err := r.sink.UpdateHighScore(j.score); err != nil {
			r.logger.Error("cannot persist best score", "score", j.score, "err", err)
		}
		id, err := r.sink.SaveScore(j.difficulty, j.score)
		if err != nil {
			r.logger.Error("cannot save score", "difficulty", j.difficulty, "score", j.score, "err", err)
			return
		}
		r.logger.Info("score saved", "id", id, "difficulty", j.difficulty, "score", j.score)
	}
}

func describe(j job) string {
	switch j.(type) {
	case bestScoreJob:
		return "best"
	case finalScoreJob:
		return "final"
	}
	return "unknown"
}
