package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	folderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#bb9af7"))
	subStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")).Strikethrough(true)
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	locationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")).Underline(true)
)

func checkbox(status string) string {
	if status == "completed" {
		return doneStyle.Render("[x]")
	}
	return "[ ]"
}
