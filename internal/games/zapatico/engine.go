// Package zapatico implements the beat/prompt state machine of the
// Zapatico rhythm game. On every beat the engine picks the foot the player
// must tap, decides whether a CAMBIA inversion starts or ends and
// accelerates the tempo with the score. Taps are scored against lives.
//
// The engine has no clock of its own: the presentation layer drives it by
// calling OnBeat every 60000/CurrentBPM milliseconds and OnFootPressed on
// input. Calls made in a phase where they make no sense (tapping while
// paused, beating after game over) are no-ops by contract, not errors.
package zapatico

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zapatico/internal/config"
	"github.com/vovakirdan/zapatico/internal/core"
)

// ScoreRecorder receives scores worth persisting.
// Implementations must return promptly: the engine calls them inline
// after each transition and never looks at the outcome.
type ScoreRecorder interface {
	// PersistBestScore is called whenever a new best score is reached.
	PersistBestScore(score int)
	// PersistFinalScore is called once per lost game with its final score.
	PersistFinalScore(score int)
}

type nopRecorder struct{}

func (nopRecorder) PersistBestScore(int)  {}
func (nopRecorder) PersistFinalScore(int) {}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the engine tuning. Defaults to config.DefaultGameConfig().
func WithConfig(cfg config.GameConfig) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithRandom injects the random source used for feet and cambia draws.
func WithRandom(rng core.RandomSource) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithSeed seeds the default random source. 0 means time based.
// Ignored when WithRandom supplies a source.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithRecorder sets the persistence collaborator.
func WithRecorder(r ScoreRecorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithSettings sets the initial preferences.
func WithSettings(s core.Settings) Option {
	return func(e *Engine) { e.settings = s.Normalized() }
}

// WithLogger sets the logger for transition diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

type listener struct {
	id int
	fn func(State)
}

// Engine owns the game state and every transition on it.
// All methods are safe for concurrent use; mutations are serialized.
type Engine struct {
	mu       sync.Mutex
	state    State
	settings core.Settings

	cfg      config.GameConfig
	tempo    config.TempoCurve
	cambia   config.CambiaCurve
	rng      core.RandomSource
	seed     int64
	recorder ScoreRecorder
	logger   *log.Logger

	beatsSinceLastCambia int
	invertBeatsRemaining int
	cambiaAnnounceBeats  int

	listeners    []listener
	nextListener int
}

// New creates an engine in the idle phase.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:      config.DefaultGameConfig(),
		settings: core.DefaultSettings(),
		recorder: nopRecorder{},
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("zapatico: %w", err)
	}

	if e.rng == nil {
		seed := e.seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed))
	}

	e.tempo = config.NewTempoCurve(e.cfg)
	e.cambia = config.NewCambiaCurve(e.cfg)
	e.state = initialState(e.cfg, e.settings)
	return e, nil
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Settings returns the preferences last applied.
func (e *Engine) Settings() core.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// Config returns the tuning the engine runs with.
func (e *Engine) Config() config.GameConfig {
	return e.cfg
}

// Subscribe registers fn to receive every new snapshot.
// fn runs on the goroutine that caused the change, after the engine lock
// is released, so it may call back into the engine.
// The returned function removes the subscription.
func (e *Engine) Subscribe(fn func(State)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextListener++
	id := e.nextListener
	e.listeners = append(e.listeners, listener{id: id, fn: fn})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// BeatInterval returns the delay before the beat after one played at bpm.
func (e *Engine) BeatInterval(bpm int) time.Duration {
	return time.Minute / time.Duration(e.tempo.LoopBPM(bpm))
}

// LoadBestScore merges a persisted best score into the state.
// The best score never decreases.
func (e *Engine) LoadBestScore(score int) {
	e.update(func(s *State) (bool, effects) {
		if score <= s.BestScore {
			return false, effects{}
		}
		s.BestScore = score
		return true, effects{}
	})
}

// ApplySettings pushes new preferences. Out-of-range values are clamped.
// Score, lives and beat are untouched; the tempo falls back to the new base
// only when no game is running.
func (e *Engine) ApplySettings(settings core.Settings) {
	settings = settings.Normalized()
	e.update(func(s *State) (bool, effects) {
		e.settings = settings
		s.BaseBPM = settings.Difficulty.BPM()
		if s.Running {
			s.CurrentBPM = max(s.BaseBPM, min(s.CurrentBPM, e.cfg.Tempo.MaxBPM))
		} else {
			s.CurrentBPM = s.BaseBPM
		}
		s.MetronomeEnabled = settings.MetronomeEnabled
		s.Volume = settings.Volume
		return true, effects{}
	})
}

// Start begins a new game from any phase.
// The best score and the game-over counter survive.
func (e *Engine) Start() {
	e.update(func(s *State) (bool, effects) {
		e.restart(s)
		s.Running = true
		return true, effects{}
	})
}

// Reset returns to the idle phase with a fresh game that is not running.
func (e *Engine) Reset() {
	e.update(func(s *State) (bool, effects) {
		e.restart(s)
		return true, effects{}
	})
}

// Stop pauses a running game. Everything but the running flag is kept.
func (e *Engine) Stop() {
	e.update(func(s *State) (bool, effects) {
		if !s.Running {
			return false, effects{}
		}
		s.Running = false
		s.Paused = true
		return true, effects{}
	})
}

// Resume continues a stopped game from the same beat. No-op after game over.
func (e *Engine) Resume() {
	e.update(func(s *State) (bool, effects) {
		if s.GameOver || s.Running {
			return false, effects{}
		}
		s.Running = true
		s.Paused = false
		return true, effects{}
	})
}

// OnBeat advances the game by one beat.
func (e *Engine) OnBeat() {
	e.update(func(s *State) (bool, effects) {
		if !s.Running || s.GameOver {
			return false, effects{}
		}

		s.Beat++

		invert := s.InvertActive
		triggered := e.shouldTriggerCambia()
		if triggered {
			invert = !invert
			e.invertBeatsRemaining = e.cambia.DurationBeats(e.settings.Chaos.DurationMultiplier()) + 1
			e.cambiaAnnounceBeats = e.cambia.AnnounceBeats()
			e.beatsSinceLastCambia = 0
			e.logger.Debug("cambia", "beat", s.Beat, "beats", e.invertBeatsRemaining-1)
		} else {
			e.beatsSinceLastCambia++
		}

		if e.invertBeatsRemaining > 0 {
			e.invertBeatsRemaining--
			if e.invertBeatsRemaining == 0 {
				invert = false
			}
		}

		s.ShowCambia = triggered || e.cambiaAnnounceBeats > 0

		base := core.FootLeft
		if e.rng.Intn(2) == 1 {
			base = core.FootRight
		}
		expected := base
		if invert {
			expected = base.Flipped()
		}
		s.InvertActive = invert
		s.ExpectedFoot = expected
		s.Prompt = expected

		if e.cambiaAnnounceBeats > 0 {
			e.cambiaAnnounceBeats--
		}

		s.CurrentBPM = e.tempo.BPM(e.settings.Difficulty.BPM(), s.Score)
		return true, effects{}
	})
}

// OnFootPressed scores a tap against the expected foot.
// A tap never changes the prompt; only beats do.
func (e *Engine) OnFootPressed(foot core.Foot) {
	e.update(func(s *State) (bool, effects) {
		if !s.Running || s.GameOver {
			return false, effects{}
		}

		var fx effects
		if foot == s.ExpectedFoot {
			s.Score += e.cfg.Gameplay.PointsPerHit
			if s.Score > s.BestScore {
				s.BestScore = s.Score
				fx.best = s.Score
				fx.hasBest = true
			}
			s.CurrentBPM = e.tempo.BPM(e.settings.Difficulty.BPM(), s.Score)
			return true, fx
		}

		s.Lives--
		if s.Lives > 0 {
			return true, fx
		}

		s.Lives = 0
		s.LastScore = s.Score
		s.Running = false
		s.Paused = false
		s.GameOver = true
		s.GameOverEventID++
		fx.final = s.Score
		fx.hasFinal = true
		e.logger.Debug("game over", "score", s.Score, "beat", s.Beat, "event", s.GameOverEventID)
		return true, fx
	})
}

// shouldTriggerCambia decides whether a CAMBIA starts on this beat.
// It only draws from the random source when a trigger is possible.
func (e *Engine) shouldTriggerCambia() bool {
	if e.invertBeatsRemaining > 0 {
		return false
	}
	if e.beatsSinceLastCambia < e.cambia.MinBeatsBetween() {
		return false
	}
	probability := e.cambia.Probability(e.settings.Chaos.ProbabilityMultiplier())
	if probability <= 0 {
		return false
	}
	return e.rng.Float64() < probability
}

// restart puts the game fields back to their starting values.
// Caller must hold e.mu.
func (e *Engine) restart(s *State) {
	e.beatsSinceLastCambia = 0
	e.invertBeatsRemaining = 0
	e.cambiaAnnounceBeats = 0

	s.Prompt = core.FootLeft
	s.ExpectedFoot = core.FootLeft
	s.ShowCambia = false
	s.InvertActive = false
	s.Score = 0
	s.Lives = e.cfg.Gameplay.MaxLives
	s.Running = false
	s.Paused = false
	s.GameOver = false
	s.Beat = 0
	s.BaseBPM = e.settings.Difficulty.BPM()
	s.CurrentBPM = s.BaseBPM
}

// effects are the collaborator calls a transition asks for.
type effects struct {
	best     int
	hasBest  bool
	final    int
	hasFinal bool
}

// update runs fn under the lock, then performs recorder calls and
// notifies listeners outside of it.
func (e *Engine) update(fn func(s *State) (changed bool, fx effects)) {
	e.mu.Lock()
	changed, fx := fn(&e.state)
	snap := e.state
	var fns []func(State)
	if changed {
		fns = make([]func(State), len(e.listeners))
		for i, l := range e.listeners {
			fns[i] = l.fn
		}
	}
	recorder := e.recorder
	e.mu.Unlock()

	if fx.hasBest {
		recorder.PersistBestScore(fx.best)
	}
	if fx.hasFinal {
		recorder.PersistFinalScore(fx.final)
	}
	for _, fn := range fns {
		fn(snap)
	}
}
