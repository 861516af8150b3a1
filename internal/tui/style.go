package tui

import "github.com/charmbracelet/lipgloss"

var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7"))
	knownTagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")).Bold(true)
	unknownTagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")).Underline(true)
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1a1b26")).Background(lipgloss.Color("#e0af68"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b4261"))
)
