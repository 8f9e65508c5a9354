package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/zapatico/internal/core"
	"github.com/vovakirdan/zapatico/internal/games/zapatico"
)

const title = "Z A P A T I C O"

// renderLives draws one heart per life, lost lives dimmed.
func renderLives(lives, maxLives int) string {
	var b strings.Builder
	for i := 0; i < maxLives; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		if i < lives {
			b.WriteString(theme.LifeFull.Render("♥"))
		} else {
			b.WriteString(theme.LifeLost.Render("♡"))
		}
	}
	return b.String()
}

// renderHUD draws the top line: lives, score and best score.
func renderHUD(s zapatico.State, maxLives int) string {
	sep := theme.HUDSeparator.Render("  │  ")
	field := func(label string, value int) string {
		return theme.HUDLabel.Render(label+" ") + theme.HUDValue.Render(fmt.Sprintf("%d", value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		theme.HUDTitle.Render(title),
		sep,
		renderLives(s.Lives, maxLives),
		sep,
		field("Score", s.Score),
		sep,
		field("Best", s.BestScore),
	)
}

// renderPrompt draws the big foot indicator.
func renderPrompt(s zapatico.State) string {
	if s.Beat == 0 {
		return theme.PromptIdle.Render("· · ·")
	}
	switch s.Prompt {
	case core.FootRight:
		return theme.PromptRight.Render("RIGHT  ▶")
	default:
		return theme.PromptLeft.Render("◀  LEFT")
	}
}

// renderMetronome draws the visual beat indicator.
func renderMetronome(s zapatico.State, pulse bool) string {
	if !s.MetronomeEnabled {
		return ""
	}
	dots := make([]string, 4)
	current := -1
	if s.Beat > 0 {
		current = int((s.Beat - 1) % 4)
	}
	for i := range dots {
		if pulse && i == current {
			dots[i] = theme.PulseOn.Render("●")
		} else {
			dots[i] = theme.PulseOff.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

// renderOverlay draws a boxed message.
func renderOverlay(heading string, lines ...string) string {
	var b strings.Builder
	b.WriteString(theme.OverlayTitle.Render(heading))
	for _, line := range lines {
		b.WriteString("\n")
		b.WriteString(theme.OverlayText.Render(line))
	}
	return theme.OverlayBox.Render(b.String())
}

// place centers content in the window when its size is known.
func place(width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
