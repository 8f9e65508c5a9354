package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zapatico/internal/core"
	"github.com/vovakirdan/zapatico/internal/games/zapatico"
)

// GameModel is the Bubble Tea model of the play screen.
// It drives the engine clock: one BeatMsg per beat, rescheduled from the
// tempo the engine reports after each beat.
type GameModel struct {
	engine *zapatico.Engine
	state  zapatico.State
	logger *log.Logger
	keys   KeyMap
	help   help.Model

	gen        int  // Current beat loop; bumped to cancel the running one
	pulse      bool // Metronome flash for the latest beat
	lastOverID int  // GameOverEventID already reacted to
	finalScore int  // Score shown on the game over overlay
	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewGameModel creates the play screen for engine.
func NewGameModel(engine *zapatico.Engine, logger *log.Logger, width, height int) GameModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	state := engine.Snapshot()
	return GameModel{
		engine:     engine,
		state:      state,
		logger:     logger,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		lastOverID: state.GameOverEventID,
		width:      width,
		height:     height,
	}
}

// Init implements tea.Model. The game waits for Start.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Start begins a new game and its beat loop.
func (m GameModel) Start() (GameModel, tea.Cmd) {
	m.engine.Start()
	m.backToMenu = false
	return m.startLoop()
}

// startLoop invalidates any pending beat and fires the first one now.
func (m GameModel) startLoop() (GameModel, tea.Cmd) {
	m.gen++
	m.pulse = false
	m.state = m.engine.Snapshot()
	return m, beatNow(m.gen)
}

// resumeLoop opens a new loop that waits a full beat, so the prompt on
// screen stays playable.
func (m GameModel) resumeLoop() (GameModel, tea.Cmd) {
	m.gen++
	m.pulse = false
	m.state = m.engine.Snapshot()
	return m, beatCmd(m.engine.BeatInterval(m.state.CurrentBPM), m.gen)
}

// stopLoop makes every pending beat stale.
func (m GameModel) stopLoop() GameModel {
	m.gen++
	m.pulse = false
	return m
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case BeatMsg:
		return m.handleBeat(msg)
	case pulseOffMsg:
		if msg.gen == m.gen && msg.beat == m.state.Beat {
			m.pulse = false
		}
		return m, nil
	}
	return m, nil
}

// handleBeat advances the engine and schedules the next beat.
func (m GameModel) handleBeat(msg BeatMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}

	m.engine.OnBeat()
	m.state = m.engine.Snapshot()
	if !m.state.Running {
		return m, nil
	}

	interval := m.engine.BeatInterval(m.state.CurrentBPM)
	m.pulse = true
	return m, tea.Batch(
		beatCmd(interval, m.gen),
		pulseOffCmd(interval/4, m.gen, m.state.Beat),
	)
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	if foot, ok := action.Foot(); ok {
		m.engine.OnFootPressed(foot)
		m.state = m.engine.Snapshot()
		return m.checkGameOver(), nil
	}

	switch action {
	case core.ActionQuit:
		m.engine.Stop()
		m.quitting = true
		return m.stopLoop(), tea.Quit

	case core.ActionBack:
		m.engine.Stop()
		m.engine.Reset()
		m = m.stopLoop()
		m.state = m.engine.Snapshot()
		m.backToMenu = true
		return m, nil

	case core.ActionPause:
		switch m.state.Phase() {
		case zapatico.PhaseRunning:
			m.engine.Stop()
			m = m.stopLoop()
			m.state = m.engine.Snapshot()
			return m, nil
		case zapatico.PhasePaused:
			m.engine.Resume()
			return m.resumeLoop()
		}

	case core.ActionConfirm:
		switch m.state.Phase() {
		case zapatico.PhaseIdle, zapatico.PhaseGameOver:
			return m.Start()
		case zapatico.PhasePaused:
			m.engine.Resume()
			return m.resumeLoop()
		}

	case core.ActionRestart:
		if m.state.GameOver {
			return m.Start()
		}
	}

	return m, nil
}

// checkGameOver reacts once per lost game.
func (m GameModel) checkGameOver() GameModel {
	if m.state.GameOverEventID == m.lastOverID {
		return m
	}
	m.lastOverID = m.state.GameOverEventID
	m.finalScore = m.state.LastScore
	m.logger.Info("game over", "score", m.finalScore, "best", m.state.BestScore, "beats", m.state.Beat)
	return m.stopLoop()
}

// View renders the play screen.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	s := m.state
	maxLives := m.engine.Config().Gameplay.MaxLives

	badge := theme.BPMBadge.Render(fmt.Sprintf("♩ %d BPM", s.CurrentBPM))
	if s.InvertActive {
		badge += "  " + theme.InvertTag.Render("⇄ inverted")
	}

	banner := " "
	if s.ShowCambia {
		banner = theme.CambiaBanner.Render("¡CAMBIA!")
	}

	var center string
	switch s.Phase() {
	case zapatico.PhaseIdle:
		center = renderOverlay("Ready?",
			"Tap the foot shown on each beat.",
			"When CAMBIA appears, feet swap.",
			"",
			"Press Enter to start")
	case zapatico.PhasePaused:
		center = renderOverlay("Paused", "p or Enter to resume", "esc for home")
	case zapatico.PhaseGameOver:
		lines := []string{fmt.Sprintf("Score: %d", m.finalScore)}
		if m.finalScore > 0 && m.finalScore >= s.BestScore {
			lines = append(lines, "New best!")
		}
		lines = append(lines, "", "r to play again  ·  esc for home")
		center = renderOverlay("Game Over", lines...)
	default:
		center = renderPrompt(s)
	}

	parts := []string{
		renderHUD(s, maxLives),
		"",
		badge,
		"",
		banner,
		"",
		center,
		"",
		renderMetronome(s, m.pulse),
		"",
		theme.Help.Render(m.help.View(m.keys.GameHelp())),
	}
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return place(m.width, m.height, strings.TrimRight(content, "\n"))
}

// State returns the last snapshot the screen rendered.
func (m GameModel) State() zapatico.State {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
