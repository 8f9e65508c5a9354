package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zapatico/internal/config"
	"github.com/vovakirdan/zapatico/internal/core"
	"github.com/vovakirdan/zapatico/internal/games/zapatico"
	"github.com/vovakirdan/zapatico/internal/scorekeeper"
	"github.com/vovakirdan/zapatico/internal/storage"
)

// SessionOptions configures a play session.
type SessionOptions struct {
	// Store persists scores and preferences. nil disables persistence.
	Store *storage.Store

	// Game is the engine tuning.
	Game config.GameConfig

	// Settings, when set, replaces the stored preferences.
	Settings *core.Settings

	Runtime  core.RuntimeConfig
	Logger   *log.Logger
	Username string
}

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenSettings
	screenScores
)

// SessionModel manages the full session flow: home -> game/settings/scores -> home.
// It is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	store    *storage.Store
	engine   *zapatico.Engine
	recorder *scorekeeper.Recorder
	logger   *log.Logger

	screen   screen
	menu     MenuModel
	game     GameModel
	settings SettingsModel
	scores   ScoreboardModel

	width    int
	height   int
	quitting bool
}

// NewSession builds the engine and its recorder and opens on the home menu.
// Close must be called once the program exits.
func NewSession(opts SessionOptions) (SessionModel, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Username != "" {
		logger = logger.With("user", opts.Username)
	}

	settings := core.DefaultSettings()
	best := 0
	if opts.Store != nil {
		loaded, err := opts.Store.LoadSettings()
		if err != nil {
			logger.Warn("could not load settings", "error", err)
		} else {
			settings = loaded
		}
		if best, err = opts.Store.HighScore(); err != nil {
			logger.Warn("could not load best score", "error", err)
		}
	}
	if opts.Settings != nil {
		settings = opts.Settings.Normalized()
	}

	engineOpts := []zapatico.Option{
		zapatico.WithConfig(opts.Game),
		zapatico.WithSettings(settings),
		zapatico.WithSeed(opts.Runtime.Seed),
		zapatico.WithLogger(logger),
	}

	var recorder *scorekeeper.Recorder
	if opts.Store != nil {
		recorder = scorekeeper.New(opts.Store, logger, scorekeeper.WithDifficulty(settings.Difficulty))
		engineOpts = append(engineOpts, zapatico.WithRecorder(recorder))
	}

	engine, err := zapatico.New(engineOpts...)
	if err != nil {
		if recorder != nil {
			recorder.Close()
		}
		return SessionModel{}, fmt.Errorf("tui: cannot create engine: %w", err)
	}
	engine.LoadBestScore(best)

	w, h := opts.Runtime.ScreenW, opts.Runtime.ScreenH
	return SessionModel{
		store:    opts.Store,
		engine:   engine,
		recorder: recorder,
		logger:   logger,
		menu:     NewMenuModel(best, settings, w, h),
		game:     NewGameModel(engine, logger, w, h),
		width:    w,
		height:   h,
	}, nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Keep the idle game screen sized.
		if m.screen != screenGame {
			m, _ = m.forwardToGame(msg)
		}

	case SettingsChangedMsg:
		m.applySettings(msg.Settings)
		return m, nil

	case BeatMsg, pulseOffMsg:
		// Beats belong to the game screen.
		return m.forwardToGame(msg)
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenSettings:
		return m.updateSettings(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// forwardToGame delivers msg to the game screen whatever screen is shown.
func (m SessionModel) forwardToGame(msg tea.Msg) (SessionModel, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}
	return m, cmd
}

// applySettings persists new preferences and pushes them into the engine.
func (m *SessionModel) applySettings(s core.Settings) {
	m.engine.ApplySettings(s)
	if m.recorder != nil {
		m.recorder.SetDifficulty(s.Difficulty)
	}
	if m.store != nil {
		if err := m.store.SaveSettings(s); err != nil {
			m.logger.Warn("could not save settings", "error", err)
		}
	}
	m.logger.Debug("settings applied", "difficulty", s.Difficulty, "chaos", s.Chaos,
		"metronome", s.MetronomeEnabled, "volume", s.Volume)
}

// updateMenu handles updates when on the home screen.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Selected() {
	case MenuQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuPlay:
		m.screen = screenGame
		var start tea.Cmd
		m.game, start = m.game.Start()
		return m, start

	case MenuSettings:
		m.screen = screenSettings
		m.settings = NewSettingsModel(m.engine.Settings(), m.width, m.height)
		return m, m.settings.Init()

	case MenuScores:
		m.screen = screenScores
		var reader ScoreReader
		if m.store != nil {
			reader = m.store
		}
		m.scores = NewScoreboardModel(reader, m.engine.Settings().Difficulty, m.width, m.height)
		return m, m.scores.Init()
	}

	return m, cmd
}

// updateGame handles updates when on the game screen.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		return m.home()
	}

	return m, cmd
}

// updateSettings handles updates when on the settings screen.
func (m SessionModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.settings.Update(msg)
	if settingsModel, ok := newModel.(SettingsModel); ok {
		m.settings = settingsModel
	}

	if m.settings.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.settings.Done() {
		model, homeCmd := m.home()
		return model, tea.Batch(cmd, homeCmd)
	}

	return m, cmd
}

// updateScores handles updates when on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scoreModel, ok := newModel.(ScoreboardModel); ok {
		m.scores = scoreModel
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.home()
	}

	return m, cmd
}

// home returns to a fresh home menu.
func (m SessionModel) home() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.engine.Snapshot().BestScore, m.engine.Settings(), m.width, m.height)
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenSettings:
		return m.settings.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Engine returns the session's engine.
func (m SessionModel) Engine() *zapatico.Engine {
	return m.engine
}

// Close stops the game and flushes pending score writes.
func (m SessionModel) Close() {
	m.engine.Stop()
	if m.recorder != nil {
		m.recorder.Close()
	}
}

// Run starts an interactive session on the local terminal.
func Run(opts SessionOptions) error {
	model, err := NewSession(opts)
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
