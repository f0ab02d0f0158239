package cli

import "github.com/charmbracelet/lipgloss"

// Status marks
const (
	DoneMark = "✓"
	FailMark = "✗"
)

var (
	ColorAccent  = lipgloss.Color("#48CAE4")
	ColorPink    = lipgloss.Color("#F72585")
	ColorSuccess = lipgloss.Color("#50fa7b")
	ColorError   = lipgloss.Color("#ff5555")
	ColorSubtext = lipgloss.Color("#6272a4")

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	URLStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext).
			Italic(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorPink)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext)

	AppStyle = lipgloss.NewStyle().
			Padding(1, 2)
)
