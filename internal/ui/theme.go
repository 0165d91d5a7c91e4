package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/nissyi-gh/momentum/internal/config"
	"github.com/nissyi-gh/momentum/internal/model"
)

// Theme is a set of styles the view is drawn with.
type Theme struct {
	Name string

	Text     lipgloss.Color
	Accent   lipgloss.Color
	Muted    lipgloss.Color
	Quote    lipgloss.Color
	Overdue  lipgloss.Color
	Done     lipgloss.Color
	SubDone  lipgloss.Color
	Priority map[model.Priority]lipgloss.Color
}

var priorityColors = map[model.Priority]lipgloss.Color{
	model.PriorityHigh:   lipgloss.Color("#e74c3c"),
	model.PriorityMedium: lipgloss.Color("#f39c12"),
	model.PriorityLow:    lipgloss.Color("#27ae60"),
}

var themes = map[string]Theme{
	config.ThemeLight: {
		Name:     config.ThemeLight,
		Text:     lipgloss.Color("#111111"),
		Accent:   lipgloss.Color("#407BFF"),
		Muted:    lipgloss.Color("#888888"),
		Quote:    lipgloss.Color("#8888AA"),
		Overdue:  lipgloss.Color("#aa0000"),
		Done:     lipgloss.Color("#999999"),
		SubDone:  lipgloss.Color("#25a625"),
		Priority: priorityColors,
	},
	config.ThemeDark: {
		Name:     config.ThemeDark,
		Text:     lipgloss.Color("#F3F3F3"),
		Accent:   lipgloss.Color("#50A7FF"),
		Muted:    lipgloss.Color("#888888"),
		Quote:    lipgloss.Color("#bbbbcc"),
		Overdue:  lipgloss.Color("#cc3333"),
		Done:     lipgloss.Color("#999999"),
		SubDone:  lipgloss.Color("#25a625"),
		Priority: priorityColors,
	},
	config.ThemeHighContrast: {
		Name:    config.ThemeHighContrast,
		Text:    lipgloss.Color("#FFFFFF"),
		Accent:  lipgloss.Color("#FFFF00"),
		Muted:   lipgloss.Color("#FFFFFF"),
		Quote:   lipgloss.Color("#FFFF00"),
		Overdue: lipgloss.Color("#FFFF00"),
		Done:    lipgloss.Color("#FFFFFF"),
		SubDone: lipgloss.Color("#FFFF00"),
		Priority: map[model.Priority]lipgloss.Color{
			model.PriorityHigh:   lipgloss.Color("#FFFF00"),
			model.PriorityMedium: lipgloss.Color("#FFFFFF"),
			model.PriorityLow:    lipgloss.Color("#FFFFFF"),
		},
	},
}

// ThemeByName returns the named theme, falling back to Light.
func ThemeByName(name string) Theme {
	if n, ok := config.NormalizeTheme(name); ok {
		return themes[n]
	}
	return themes[config.ThemeLight]
}

// Next cycles Light → Dark → High Contrast.
func (t Theme) Next() Theme {
	for i, n := range config.Themes {
		if n == t.Name {
			return themes[config.Themes[(i+1)%len(config.Themes)]]
		}
	}
	return themes[config.ThemeLight]
}

// ToggleContrast switches between High Contrast and Light.
func (t Theme) ToggleContrast() Theme {
	if t.Name == config.ThemeHighContrast {
		return themes[config.ThemeLight]
	}
	return themes[config.ThemeHighContrast]
}

func (t Theme) title() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
}

func (t Theme) status() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}

func (t Theme) text() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Text)
}

func (t Theme) quote() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Quote).Italic(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
}

func (t Theme) confirm() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
}

func (t Theme) priority(p model.Priority) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Priority[p]).Bold(true)
}

func (t Theme) detail() lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Muted)
}

func (t Theme) box() lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted)
}

func (t Theme) delegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetHeight(1)
	d.SetSpacing(0)
	d.Styles.NormalTitle = lipgloss.NewStyle().Foreground(t.Text).Padding(0, 0, 0, 2)
	d.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Accent).
		Foreground(t.Accent).
		Padding(0, 0, 0, 1)
	return d
}
