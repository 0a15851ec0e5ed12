package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Title    lipgloss.Style
	Count    lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Guide    lipgloss.Style
	Leaf     lipgloss.Style
	Empty    lipgloss.Style
	Footer   FooterTheme
}

// FooterTheme groups styles used by the bottom status and input line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Prompt lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	selected := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)

	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Underline(true),
		Count:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Row:      lipgloss.NewStyle(),
		Selected: selected.Reverse(true),
		Guide:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Leaf:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Prompt: selected,
		},
	}
}
