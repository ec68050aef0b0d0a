package common

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable draws rows as a bordered text table keeping at most limit
// rows; limit <= 0 keeps all of them. Dropped rows are counted in a footer.
func RenderTable(headers []string, rows [][]string, limit int) string {
	dropped := 0
	if limit > 0 && len(rows) > limit {
		dropped = len(rows) - limit
		rows = rows[:limit]
	}

	out := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()

	if dropped > 0 {
		out += fmt.Sprintf("\n... and %d more", dropped)
	}
	return out
}
