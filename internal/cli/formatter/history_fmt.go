package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dkalonji/tasbih/internal/domain"
)

// FormatHistory renders the recent session log as an aligned table.
func FormatHistory(sessions []domain.Session) string {
	if len(sessions) == 0 {
		return Dim("No completed recitations yet") + "\n"
	}

	headers := []string{"DATE", "SCHEDULED", "COMPLETED", "TAPS"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			StyleFg.Render(s.Date),
			Bold(s.Scheduled.String()),
			StyleGreen.Render(s.Actual.String()),
			StyleFg.Render(fmt.Sprintf("%d", s.Taps)),
		})
	}
	return RenderTable(headers, rows)
}

// RenderTable renders a simple aligned table. Column widths account for
// ANSI escapes by measuring visible width.
func RenderTable(headers []string, rows [][]string) string {
	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2
	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			rendered := cell
			if style != nil {
				rendered = style(cell)
			}
			b.WriteString(rendered)
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+colGap))
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}
