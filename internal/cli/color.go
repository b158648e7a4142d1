package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Flyrell/physiotrack/internal/adherence"
)

var (
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CFCF"))
	silentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

func Primary(text string) string { return primaryStyle.Render(text) }
func Success(text string) string { return successStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Info(text string) string    { return infoStyle.Render(text) }
func Silent(text string) string  { return silentStyle.Render(text) }

// StatusColor colors a calendar cell: green when done, red when missed.
func StatusColor(s adherence.Status, text string) string {
	switch s {
	case adherence.Done:
		return Success(text)
	case adherence.Missed:
		return Error(text)
	default:
		return Silent(text)
	}
}
