package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/zapatico/internal/core"
)

// MenuChoice is an entry of the home menu.
type MenuChoice int

const (
	MenuNone MenuChoice = iota
	MenuPlay
	MenuSettings
	MenuScores
	MenuQuit
)

// menuItem represents a selectable entry in the home menu.
type menuItem struct {
	choice      MenuChoice
	title       string
	description string
}

var menuItems = []menuItem{
	{MenuPlay, "Play", "Tap along to the beat"},
	{MenuSettings, "Settings", "Difficulty, CAMBIA chaos, metronome"},
	{MenuScores, "Scores", "Top scores per difficulty"},
	{MenuQuit, "Quit", ""},
}

// MenuModel is the Bubble Tea model for the home screen.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	keys      KeyMap
	help      help.Model
	bestScore int
	settings  core.Settings
	selected  MenuChoice
}

// NewMenuModel creates a new home menu.
func NewMenuModel(bestScore int, settings core.Settings, width, height int) MenuModel {
	return MenuModel{
		width:     width,
		height:    height,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		bestScore: bestScore,
		settings:  settings,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.selected = MenuQuit
	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case core.ActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case core.ActionConfirm:
		m.selected = menuItems[m.cursor].choice
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString(theme.MenuTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(theme.MenuDescription.Render(fmt.Sprintf("Best %d  ·  %s  ·  chaos %s",
		m.bestScore, m.settings.Difficulty.Title(), m.settings.Chaos)))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.cursor {
			b.WriteString(theme.MenuItemActive.Render("> " + item.title))
			if item.description != "" {
				b.WriteString(theme.MenuDescription.Render("  " + item.description))
			}
		} else {
			b.WriteString(theme.MenuItemNormal.Render("  " + item.title))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Help.Render(m.help.View(m.keys.MenuHelp())))

	return place(m.width, m.height, b.String())
}

// Selected returns the confirmed choice, MenuNone until one is made.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}
