package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the overlay. Tint is blended into the particle palette by
// TintAmount so the field picks up the theme's mood.
type Theme struct {
	Name       string
	Title      lipgloss.Color
	Border     lipgloss.Color
	Label      lipgloss.Color
	Value      lipgloss.Color
	Running    lipgloss.Color
	Idle       lipgloss.Color
	Graph      lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Tint       string
	TintAmount float64
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Title:      lipgloss.Color("#ff00ff"), // Magenta
		Border:     lipgloss.Color("#444466"),
		Label:      lipgloss.Color("#888899"),
		Value:      lipgloss.Color("#00ffff"), // Cyan
		Running:    lipgloss.Color("#00ff88"),
		Idle:       lipgloss.Color("#ffaa00"),
		Graph:      lipgloss.Color("#ffff00"),
		Muted:      lipgloss.Color("#666666"),
		Error:      lipgloss.Color("#ff0000"),
		Tint:       "#ff00ff",
		TintAmount: 0.15,
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Title:      lipgloss.Color("#00ff00"), // Green phosphor
		Border:     lipgloss.Color("#005500"),
		Label:      lipgloss.Color("#00cc00"),
		Value:      lipgloss.Color("#88ff88"),
		Running:    lipgloss.Color("#88ff88"),
		Idle:       lipgloss.Color("#ffff00"),
		Graph:      lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Error:      lipgloss.Color("#ff0000"),
		Tint:       "#00ff00",
		TintAmount: 0.6,
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Title:   lipgloss.Color("#ffffff"),
		Border:  lipgloss.Color("#888888"),
		Label:   lipgloss.Color("#888888"),
		Value:   lipgloss.Color("#ffffff"),
		Running: lipgloss.Color("#0088ff"),
		Idle:    lipgloss.Color("#cccccc"),
		Graph:   lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#888888"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Title:      lipgloss.Color("#0077be"), // Ocean blue
		Border:     lipgloss.Color("#4488aa"),
		Label:      lipgloss.Color("#4488aa"),
		Value:      lipgloss.Color("#e0f0ff"),
		Running:    lipgloss.Color("#00ff88"),
		Idle:       lipgloss.Color("#ffcc00"),
		Graph:      lipgloss.Color("#00a8cc"),
		Muted:      lipgloss.Color("#4488aa"),
		Error:      lipgloss.Color("#ff4444"),
		Tint:       "#0077be",
		TintAmount: 0.3,
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Title:      lipgloss.Color("#ff6b6b"), // Coral
		Border:     lipgloss.Color("#8b6b8c"),
		Label:      lipgloss.Color("#8b6b8c"),
		Value:      lipgloss.Color("#fff5f5"),
		Running:    lipgloss.Color("#5fd068"),
		Idle:       lipgloss.Color("#ffc048"),
		Graph:      lipgloss.Color("#ff9ff3"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Error:      lipgloss.Color("#ff4757"),
		Tint:       "#ff6b6b",
		TintAmount: 0.25,
	}

	// All available themes
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// next returns the name after current in names, wrapping around. Unknown
// names restart at the first entry.
func next(names []string, current string) string {
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
