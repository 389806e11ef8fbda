package view

import "github.com/charmbracelet/lipgloss"

// Colors used by the view.
var (
	colorOrange    = lipgloss.Color("208") // HN orange
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorBar       = lipgloss.Color("236")
)

// TitleStyle renders the clickable "Hacker News" title.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorOrange).
	Padding(0, 1)

// HeaderStyle is the header bar background.
var HeaderStyle = lipgloss.NewStyle().
	Background(colorBar)

// UpdatingStyle for the "updating N stories" indicator.
var UpdatingStyle = lipgloss.NewStyle().
	Foreground(colorHighlight)

// NoticeStyle for threshold notifications.
var NoticeStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("78")).
	Bold(true)

// InfoButtonStyle for the info button in the header.
var InfoButtonStyle = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// TabStyle for inactive tab buttons.
var TabStyle = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// ActiveTabStyle for the tab button of the active tab.
var ActiveTabStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// SelectedRow style for the story under the cursor.
var SelectedRow = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary)

// NormalRow style for unread stories.
var NormalRow = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255"))

// ReadRow style for stories that have been read.
var ReadRow = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ScoreStyle for the score column.
var ScoreStyle = lipgloss.NewStyle().
	Foreground(colorOrange).
	Bold(true)

// FavoriteMark for the star shown on favorites.
var FavoriteMark = lipgloss.NewStyle().
	Foreground(lipgloss.Color("220"))

// MetaStyle for author, age and comment count.
var MetaStyle = lipgloss.NewStyle().
	Foreground(colorMuted)

// EmptyStyle for empty list placeholders.
var EmptyStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// InfoStyle wraps the info panel.
var InfoStyle = lipgloss.NewStyle().
	Padding(1, 2)

// InfoLeadStyle for the first paragraph of the info panel.
var InfoLeadStyle = lipgloss.NewStyle().
	Bold(true)

// LinkStyle for external links.
var LinkStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("39")).
	Underline(true)

// SelectedLinkStyle for the link under the cursor.
var SelectedLinkStyle = LinkStyle.
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary)

// FooterStyle is the footer bar background.
var FooterStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorBar)

// ButtonStyle for footer buttons.
var ButtonStyle = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true).
	Padding(0, 1)

// ErrorStyle for collaborator errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)
