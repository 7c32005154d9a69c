package ui

import (
	"github.com/abelbrown/gamewatch/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorWarning   = lipgloss.Color("214") // Orange
	colorDanger    = lipgloss.Color("196") // Red
)

// statusColors give each release status its own badge color.
var statusColors = map[model.Status]lipgloss.Color{
	model.StatusAnnouncedDate:   colorSuccess,
	model.StatusAnnouncedWindow: lipgloss.Color("115"),
	model.StatusRecurringDaily:  lipgloss.Color("81"),
	model.StatusRecurringWeekly: lipgloss.Color("75"),
	model.StatusTBA:             colorSecondary,
	model.StatusReleased:        colorMuted,
	model.StatusCancelled:       colorDanger,
	model.StatusDelayed:         colorWarning,
}

// SelectedRow style for the currently highlighted game.
var SelectedRow = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalRow style for unselected games.
var NormalRow = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// PassedRow style for games whose date has already gone by.
var PassedRow = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// CountdownDigits style for the big remaining-time readout.
var CountdownDigits = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// MetaText style for release meta labels ("Resets daily at 09:00 UTC").
var MetaText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// StatusBadge base style; the foreground comes from statusColors.
var StatusBadge = lipgloss.NewStyle().
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// HeaderStyle for the title bar.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorDanger).
	Bold(true).
	Padding(0, 1)

// StaleStyle flags a document served from the offline cache.
var StaleStyle = lipgloss.NewStyle().
	Foreground(colorWarning).
	Bold(true)

// FilterBar style for the active filter summary line.
var FilterBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// FilterBarPrompt style for the "/" prompt.
var FilterBarPrompt = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// FilterBarCount style for the filtered count.
var FilterBarCount = lipgloss.NewStyle().
	Foreground(colorSecondary)

// DetailTitle style for the detail view heading.
var DetailTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// DetailLabel style for field names in the detail view.
var DetailLabel = lipgloss.NewStyle().
	Foreground(colorMuted)

func statusColor(s model.Status) lipgloss.Color {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return colorSecondary
}
