package render

import "github.com/charmbracelet/lipgloss"

// Theme defines the styles used by the terminal renderer.
type Theme struct {
	Name   string
	Header lipgloss.Style
	Suite  lipgloss.Style
	Number lipgloss.Style
	Slower lipgloss.Style // percent spread above the warn threshold
	Steady lipgloss.Style // percent spread at or below the threshold
	Muted  lipgloss.Style
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:   "default",
		Header: lipgloss.NewStyle().Bold(true),
		Suite:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")), // blue
		Number: lipgloss.NewStyle(),
		Slower: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Steady: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
	}
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme() Theme {
	return Theme{
		Name:   "orca",
		Header: lipgloss.NewStyle().Bold(true),
		Suite:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")), // pale blue
		Number: lipgloss.NewStyle(),
		Slower: lipgloss.NewStyle().Foreground(lipgloss.Color("179")), // muted gold
		Steady: lipgloss.NewStyle().Foreground(lipgloss.Color("108")), // sage green
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // lighter gray
	}
}

// MonoTheme returns a theme without any styling, safe for pipes and NO_COLOR.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:   "mono",
		Header: plain,
		Suite:  plain,
		Number: plain,
		Slower: plain,
		Steady: plain,
		Muted:  plain,
	}
}

// ThemeNames lists the built-in themes.
var ThemeNames = []string{"default", "orca", "mono"}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}
