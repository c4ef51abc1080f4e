package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mlasch/tend/internal/schedule"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Styles
var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	urgencyOverdue  = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	urgencyToday    = lipgloss.NewStyle().Bold(true).Foreground(colorWarning)
	urgencyThisWeek = lipgloss.NewStyle().Foreground(colorHighlight)
	urgencyUpcoming = lipgloss.NewStyle().Foreground(colorMuted)
)

func urgencyStyle(u schedule.Urgency) lipgloss.Style {
	switch u {
	case schedule.UrgencyOverdue:
		return urgencyOverdue
	case schedule.UrgencyToday:
		return urgencyToday
	case schedule.UrgencyThisWeek:
		return urgencyThisWeek
	}
	return urgencyUpcoming
}
