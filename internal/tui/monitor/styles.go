package monitor

import (
	"github.com/charmbracelet/lipgloss"

	"homeroom/internal/engine"
)

var (
	mutedColor   = lipgloss.Color("241")
	successColor = lipgloss.Color("42")
	warningColor = lipgloss.Color("214")
	errorColor   = lipgloss.Color("196")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	labelStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	numberStyle = lipgloss.NewStyle().Bold(true)

	statusStyles = map[engine.Status]lipgloss.Style{
		engine.StatusIdle:          lipgloss.NewStyle().Foreground(successColor).Bold(true),
		engine.StatusSyncing:       lipgloss.NewStyle().Foreground(warningColor).Bold(true),
		engine.StatusError:         lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		engine.StatusNotConfigured: lipgloss.NewStyle().Foreground(mutedColor).Bold(true),
	}
)
