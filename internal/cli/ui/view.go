package ui

import (
	"hoteldesk/internal/render"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const noData = "No data found."

// RenderView paints a result view for the terminal.
func RenderView(v render.View) string {
	switch {
	case v.Panel != nil:
		return ackStyle.Render(v.Panel.Message)
	case v.Table != nil:
		return renderTable(v.Table)
	default:
		return descStyle.Render(noData)
	}
}

func RenderError(msg string) string {
	return errorStyle.Render(msg)
}

func renderTable(t *render.Table) string {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = cellText(c)
		}
		rows[i] = cells
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(t.Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
				return style.Bold(true).Foreground(lipgloss.Color("230"))
			}
			cell := t.Rows[row][col]
			if cell.Units != nil {
				return style.Foreground(lipgloss.Color("178"))
			}
			return style.Inherit(tagStyle(cell.Tag))
		}).
		String()
}

func cellText(c render.Cell) string {
	if c.Units != nil {
		return c.Units.Bar("★", "☆") + " " + c.Text
	}
	return c.Text
}
