package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header     lipgloss.Style
	welcome    lipgloss.Style
	suggestion lipgloss.Style
	user       lipgloss.Style
	ai         lipgloss.Style
	errorText  lipgloss.Style
	input      lipgloss.Style
	modal      lipgloss.Style
	panel      lipgloss.Style
	help       lipgloss.Style
}

func newStyles(dark bool) styles {
	fg, bg, muted, border := lipgloss.Color("#111827"), lipgloss.Color("#F9FAFB"), lipgloss.Color("#6B7280"), lipgloss.Color("#D1D5DB")
	if dark {
		fg, bg, muted, border = lipgloss.Color("#F4F4F5"), lipgloss.Color("#09090B"), lipgloss.Color("#A1A1AA"), lipgloss.Color("#3F3F46")
	}

	base := lipgloss.NewStyle().Foreground(fg).Background(bg)
	return styles{
		header:     base.Bold(true).Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(border),
		welcome:    base.Padding(1, 2).Border(lipgloss.RoundedBorder()).BorderForeground(border),
		suggestion: base.Padding(0, 1),
		user:       base.Bold(true),
		ai:         base,
		errorText:  lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true),
		input:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border),
		modal:      base.Padding(1, 2).Border(lipgloss.DoubleBorder()).BorderForeground(border),
		panel:      base.Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(border),
		help:       lipgloss.NewStyle().Foreground(muted),
	}
}
