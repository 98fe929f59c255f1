package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Primary   = lipgloss.Color("#FF6B9D")
	Secondary = lipgloss.Color("#C792EA")
	Success   = lipgloss.Color("#C3E88D")
	Warning   = lipgloss.Color("#FFCB6B")
	Error     = lipgloss.Color("#F07178")
	Info      = lipgloss.Color("#82AAFF")
	Muted     = lipgloss.Color("#546E7A")
	
	// Border styles
	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

// Base styles
var (
	// Title style for headings
	TitleStyle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		MarginBottom(1)
	
	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
		Foreground(Secondary).
		Italic(true)
	
	// Muted/dimmed text
	MutedStyle = lipgloss.NewStyle().
		Foreground(Muted)
	
	// Selected item
	SelectedStyle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		BorderStyle(RoundedBorder).
		BorderForeground(Primary).
		Padding(0, 1)
	
	// Card style
	CardStyle = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(Secondary).
		Padding(1, 2).
		MarginBottom(1)
	
	// Active/focused card
	ActiveCardStyle = lipgloss.NewStyle().
		Border(ThickBorder).
		BorderForeground(Primary).
		Padding(1, 2).
		MarginBottom(1)
	
	// Status styles
	StatusAvailable = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	StatusLoaned = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	StatusSuccess = lipgloss.NewStyle().
		Foreground(Success)

	StatusError = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	StatusInfo = lipgloss.NewStyle().
		Foreground(Info)

	// Form label
	LabelStyle = lipgloss.NewStyle().
		Foreground(Secondary).
		Width(16)

	// Tab styles
	ActiveTabStyle = lipgloss.NewStyle().
		Foreground(Primary).
		Background(lipgloss.Color("#37474F")).
		Padding(0, 2).
		Bold(true)
	
	InactiveTabStyle = lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 2)
	
	// Help text
	HelpStyle = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true).
		MarginTop(1)
	
	// Loan summary bar
	ProgressBarStyle = lipgloss.NewStyle().
		Foreground(Warning)

	// Input field
	InputStyle = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(Secondary).
		Padding(0, 1)
	
	// Focused input
	FocusedInputStyle = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(Primary).
		Padding(0, 1)
)

// StatusStyle picks the color for a book's loan status.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "Available":
		return StatusAvailable
	case "Loaned":
		return StatusLoaned
	default:
		return MutedStyle
	}
}
