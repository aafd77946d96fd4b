package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/restfield/internal/palette"
)

const (
	panelWidth = 40
	labelWidth = 12
)

type styles struct {
	panel   lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	running lipgloss.Style
	idle    lipgloss.Style
	graph   lipgloss.Style
	hint    lipgloss.Style
	err     lipgloss.Style
	// bands color the canvas, coolest first.
	bands []lipgloss.Style
}

func newStyles(t Theme, g palette.Gradient) styles {
	s := styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(0, 1).
			Width(panelWidth - 1),
		title:   lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Label).Width(labelWidth),
		value:   lipgloss.NewStyle().Foreground(t.Value),
		running: lipgloss.NewStyle().Foreground(t.Running).Bold(true),
		idle:    lipgloss.NewStyle().Foreground(t.Idle).Bold(true),
		graph:   lipgloss.NewStyle().Foreground(t.Graph).Padding(1, 0),
		hint:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		err:     lipgloss.NewStyle().Foreground(t.Error),
		bands:   make([]lipgloss.Style, len(g)),
	}
	for i, c := range g {
		s.bands[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	}
	return s
}

// tinted returns the named gradient blended toward the theme tint.
func tinted(name string, t Theme) palette.Gradient {
	g := palette.Named(name)
	if t.Tint == "" || t.TintAmount <= 0 {
		return g
	}
	tint, err := colorful.Hex(t.Tint)
	if err != nil {
		return g
	}
	return g.Blend(tint, t.TintAmount)
}

// DebugLine formats the overlay status line, e.g. "{isRunning: T, x: 12, y: 40}".
func DebugLine(running bool, x, y float64) string {
	flag := "F"
	if running {
		flag = "T"
	}
	return fmt.Sprintf("{isRunning: %s, x: %.0f, y: %.0f}", flag, x, y)
}

func (s styles) row(label, value string) string {
	return s.label.Render(label) + s.value.Render(value) + "\n"
}
