package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorPanel  = lipgloss.Color("236")
	colorAccent = lipgloss.Color("208") // Hacker News orange
	colorMuted  = lipgloss.Color("241")
)

// DebugPanel frames the debug overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorAccent).
	Background(colorPanel).
	Padding(1, 2)

// DebugHeaderStyle titles a section of the debug overlay.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorAccent)

var DebugMutedStyle = lipgloss.NewStyle().
	Foreground(colorMuted)

// HelpBar holds the key hints under the story view.
var HelpBar = lipgloss.NewStyle().
	Padding(0, 1)
