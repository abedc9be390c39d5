package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Body    lipgloss.Color
	Flame   lipgloss.Color
	Intake  lipgloss.Color
	Hot     lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

// Available themes
var (
	ThemeNeon = Theme{
		Name:    "neon",
		Body:    lipgloss.Color("#b0b0b0"),
		Flame:   lipgloss.Color("#ff7df2"),
		Intake:  lipgloss.Color("#68e0ff"),
		Hot:     lipgloss.Color("#ffd080"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Warning: lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Body:    lipgloss.Color("#00cc00"),
		Flame:   lipgloss.Color("#88ff88"),
		Intake:  lipgloss.Color("#005500"),
		Hot:     lipgloss.Color("#ffff00"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Body:    lipgloss.Color("#cccccc"),
		Flame:   lipgloss.Color("#ffffff"),
		Intake:  lipgloss.Color("#888888"),
		Hot:     lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Warning: lipgloss.Color("#ffaa00"),
	}
)

var themes = []Theme{ThemeNeon, ThemeRetroGreen, ThemeMinimal}

func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNeon
}

// NextTheme cycles to the theme after t.
func NextTheme(t Theme) Theme {
	for i, th := range themes {
		if th.Name == t.Name {
			return themes[(i+1)%len(themes)]
		}
	}
	return ThemeNeon
}

func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// InkColor is the theme color for an ink.
func (t Theme) InkColor(i Ink) lipgloss.Color {
	switch i {
	case InkBody:
		return t.Body
	case InkFlame:
		return t.Flame
	case InkIntake:
		return t.Intake
	case InkHot:
		return t.Hot
	case InkHUD:
		return t.Text
	}
	return t.Muted
}

// inkStyles maps canvas inks onto the theme.
func (t Theme) inkStyles() [numInks]lipgloss.Style {
	var s [numInks]lipgloss.Style
	s[InkDim] = lipgloss.NewStyle().Foreground(t.Muted)
	s[InkBody] = lipgloss.NewStyle().Foreground(t.Body)
	s[InkFlame] = lipgloss.NewStyle().Foreground(t.Flame)
	s[InkIntake] = lipgloss.NewStyle().Foreground(t.Intake)
	s[InkHot] = lipgloss.NewStyle().Foreground(t.Hot).Bold(true)
	s[InkHUD] = lipgloss.NewStyle().Foreground(t.Text)
	return s
}
