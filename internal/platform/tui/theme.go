package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains all visual styles for the session screens.
type Theme struct {
	// HUD styles
	HUDTitle     lipgloss.Style
	HUDLabel     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	LifeFull     lipgloss.Style
	LifeLost     lipgloss.Style
	BPMBadge     lipgloss.Style

	// Prompt styles
	PromptLeft   lipgloss.Style
	PromptRight  lipgloss.Style
	PromptIdle   lipgloss.Style
	CambiaBanner lipgloss.Style
	InvertTag    lipgloss.Style

	// Metronome
	PulseOn  lipgloss.Style
	PulseOff lipgloss.Style

	// Overlay styles
	OverlayBox   lipgloss.Style
	OverlayTitle lipgloss.Style
	OverlayText  lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	Help            lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	promptBox := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		Bold(true).
		Padding(1, 4).
		Align(lipgloss.Center).
		Width(24)

	return Theme{
		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		HUDLabel:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		LifeFull:     lipgloss.NewStyle().Foreground(lipgloss.Color("197")), // Red heart
		LifeLost:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		BPMBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("130")).
			Padding(0, 1),

		PromptLeft:  promptBox.BorderForeground(lipgloss.Color("45")).Foreground(lipgloss.Color("45")),   // Cyan
		PromptRight: promptBox.BorderForeground(lipgloss.Color("213")).Foreground(lipgloss.Color("213")), // Pink
		PromptIdle:  promptBox.BorderForeground(lipgloss.Color("240")).Foreground(lipgloss.Color("245")),
		CambiaBanner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("226")).
			Bold(true).
			Padding(0, 2),
		InvertTag: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Italic(true),

		PulseOn:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		PulseOff: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

		OverlayBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("255")).
			Padding(1, 3).
			Align(lipgloss.Center),
		OverlayTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		OverlayText:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Help:            lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

var theme = DefaultTheme()
