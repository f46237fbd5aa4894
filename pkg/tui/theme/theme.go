package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Screen ScreenTheme
	Help   HelpTheme
}

// ScreenTheme groups styles for the transcript and the input line.
type ScreenTheme struct {
	Banner  lipgloss.Style
	Prompt  lipgloss.Style
	Command lipgloss.Style
	Text    lipgloss.Style
	Error   lipgloss.Style
	Ghost   lipgloss.Style
}

// HelpTheme styles the command reference panel.
type HelpTheme struct {
	Frame   lipgloss.Style
	Title   lipgloss.Style
	Section lipgloss.Style
	Entry   lipgloss.Style
}

// Default returns the built-in green-on-black terminal theme.
func Default() Theme {
	green := lipgloss.Color("46")
	dimGreen := lipgloss.Color("40")

	return Theme{
		Screen: ScreenTheme{
			Banner:  lipgloss.NewStyle().Foreground(green).Bold(true),
			Prompt:  lipgloss.NewStyle().Foreground(green).Bold(true),
			Command: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
			Text:    lipgloss.NewStyle().Foreground(dimGreen),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			Ghost:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		Help: HelpTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(green).
				Padding(0, 2),
			Title:   lipgloss.NewStyle().Foreground(green).Bold(true),
			Section: lipgloss.NewStyle().Foreground(green).Bold(true),
			Entry:   lipgloss.NewStyle().Foreground(dimGreen),
		},
	}
}
