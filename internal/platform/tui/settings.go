package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/zapatico/internal/core"
)

// volumeStep is how much one left/right press changes the volume.
const volumeStep = 0.1

// SettingsChangedMsg carries preferences edited on the settings screen.
type SettingsChangedMsg struct {
	Settings core.Settings
}

type settingsRow int

const (
	rowDifficulty settingsRow = iota
	rowChaos
	rowMetronome
	rowVolume
	rowCount
)

// SettingsModel is the Bubble Tea model for the preferences screen.
type SettingsModel struct {
	settings core.Settings
	cursor   settingsRow
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	done     bool
	quitting bool
}

// NewSettingsModel creates the settings screen showing settings.
func NewSettingsModel(settings core.Settings, width, height int) SettingsModel {
	return SettingsModel{
		settings: settings.Normalized(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
}

// Init initializes the model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, nil
	case core.ActionBack:
		m.done = true
		return m, nil
	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case core.ActionDown:
		if m.cursor < rowCount-1 {
			m.cursor++
		}
		return m, nil
	case core.ActionLeft:
		return m.change(-1)
	case core.ActionRight, core.ActionConfirm:
		return m.change(1)
	}
	return m, nil
}

// change moves the value of the selected row by delta steps.
func (m SettingsModel) change(delta int) (tea.Model, tea.Cmd) {
	s := m.settings
	switch m.cursor {
	case rowDifficulty:
		s.Difficulty = core.Difficulties[cycle(int(s.Difficulty), delta, len(core.Difficulties))]
	case rowChaos:
		s.Chaos = core.ChaosLevels[cycle(int(s.Chaos), delta, len(core.ChaosLevels))]
	case rowMetronome:
		s.MetronomeEnabled = !s.MetronomeEnabled
	case rowVolume:
		// Snap to tenths.
		s.Volume = math.Round((s.Volume+float64(delta)*volumeStep)*10) / 10
	}
	s = s.Normalized()
	if s == m.settings {
		return m, nil
	}
	m.settings = s
	return m, func() tea.Msg { return SettingsChangedMsg{Settings: s} }
}

// cycle steps i by delta within [0, n), wrapping around.
func cycle(i, delta, n int) int {
	return ((i+delta)%n + n) % n
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(theme.MenuTitle.Render("SETTINGS"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
		hint  string
	}{
		{"Difficulty", fmt.Sprintf("%s (%d BPM)", m.settings.Difficulty.Title(), m.settings.Difficulty.BPM()), "starting tempo"},
		{"CAMBIA chaos", m.settings.Chaos.String(), "how often and how long feet swap"},
		{"Metronome", onOff(m.settings.MetronomeEnabled), "visual beat pulse"},
		{"Volume", volumeBar(m.settings.Volume), "metronome click level"},
	}

	for i, row := range rows {
		line := fmt.Sprintf("%-14s ◀ %s ▶", row.label, row.value)
		if settingsRow(i) == m.cursor {
			b.WriteString(theme.MenuItemActive.Render("> " + line))
			b.WriteString(theme.MenuDescription.Render("  " + row.hint))
		} else {
			b.WriteString(theme.MenuItemNormal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Help.Render(m.help.View(m.keys.SettingsHelp())))

	return place(m.width, m.height, b.String())
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func volumeBar(v float64) string {
	filled := int(math.Round(v * 10))
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled) + fmt.Sprintf(" %3d%%", int(math.Round(v*100)))
}

// Settings returns the preferences currently shown.
func (m SettingsModel) Settings() core.Settings {
	return m.settings
}

// Done returns true once the user leaves the screen.
func (m SettingsModel) Done() bool {
	return m.done
}

// IsQuitting returns true if user requested to quit entirely.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}
