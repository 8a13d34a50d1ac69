package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFBA08"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("202"))
	frameStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63"))

	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func banner() string {
	return frameStyle.Padding(0, 2).Render(
		titleStyle.Render("Synapse") + "\n" +
			faintStyle.Render("AI-assisted scaffolding for ASP.NET Core MVC projects"),
	)
}
