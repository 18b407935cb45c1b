package ui

import (
	"hoteldesk/internal/render"

	"github.com/charmbracelet/lipgloss"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	descStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("160")).
			Foreground(lipgloss.Color("160")).
			Padding(0, 1)

	ackStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("35")).
			Foreground(lipgloss.Color("35")).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("240"))
)

var tagColors = map[render.Color]lipgloss.Color{
	render.Green:  lipgloss.Color("35"),
	render.Red:    lipgloss.Color("160"),
	render.Yellow: lipgloss.Color("178"),
	render.Blue:   lipgloss.Color("33"),
	render.Purple: lipgloss.Color("135"),
	render.Gray:   lipgloss.Color("245"),
}

func tagStyle(c render.Color) lipgloss.Style {
	if col, ok := tagColors[c]; ok {
		return lipgloss.NewStyle().Foreground(col).Bold(true)
	}
	return lipgloss.NewStyle()
}
