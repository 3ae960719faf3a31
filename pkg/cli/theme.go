package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/harrisonrobin/studyboard/pkg/model"
)

// Theme colors terminal output with ANSI 256-color codes. Output that is
// not a terminal is rendered without escapes.
type Theme struct {
	FaintText        lipgloss.Color
	HeaderForeground lipgloss.Color

	PriorityCritical lipgloss.Color
	PriorityHigh     lipgloss.Color
	PriorityMedium   lipgloss.Color
	PriorityLow      lipgloss.Color

	StatusPending   lipgloss.Color
	StatusOverdue   lipgloss.Color
	StatusCompleted lipgloss.Color
}

var DefaultTheme = Theme{
	FaintText:        lipgloss.Color("245"),
	HeaderForeground: lipgloss.Color("255"),

	PriorityCritical: lipgloss.Color("196"), // bright red
	PriorityHigh:     lipgloss.Color("208"), // orange
	PriorityMedium:   lipgloss.Color("75"),  // blue
	PriorityLow:      lipgloss.Color("245"), // gray

	StatusPending:   lipgloss.Color("220"), // amber
	StatusOverdue:   lipgloss.Color("196"),
	StatusCompleted: lipgloss.Color("114"), // green
}

func (theme Theme) PriorityColor(p model.Priority) lipgloss.Color {
	switch p {
	case model.PriorityCritical:
		return theme.PriorityCritical
	case model.PriorityHigh:
		return theme.PriorityHigh
	case model.PriorityMedium:
		return theme.PriorityMedium
	default:
		return theme.PriorityLow
	}
}

func (theme Theme) StatusColor(s model.Status) lipgloss.Color {
	switch s {
	case model.StatusOverdue:
		return theme.StatusOverdue
	case model.StatusCompleted:
		return theme.StatusCompleted
	default:
		return theme.StatusPending
	}
}

func (theme Theme) header(text string) string {
	return lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true).Render(text)
}

func (theme Theme) faint(text string) string {
	return lipgloss.NewStyle().Foreground(theme.FaintText).Render(text)
}

func (theme Theme) priority(p model.Priority) string {
	return lipgloss.NewStyle().
		Foreground(theme.PriorityColor(p)).
		Bold(p == model.PriorityCritical).
		Render(string(p))
}

func (theme Theme) status(s model.Status) string {
	return lipgloss.NewStyle().Foreground(theme.StatusColor(s)).Render(string(s))
}
