package services

import (
	"strings"

	"github.com/Shamanth-8/drones/internal/models/entities"
)

// TableReader is the read side of the record store.
type TableReader interface {
	GetTable(name string) (entities.Table, error)
}

// normalize lower-cases and trims a value for comparison.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// containsNormalized reports whether needle appears anywhere in haystack
// after both are normalized. This is a substring test, not set membership.
func containsNormalized(haystack, needle string) bool {
	return strings.Contains(normalize(haystack), normalize(needle))
}

// splitList splits a comma-delimited field and trims each item.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// findRow returns the first row whose col equals id exactly.
func findRow(t entities.Table, col, id string) (entities.Row, error) {
	for _, row := range t.Rows {
		v, err := row.Text(col)
		if err != nil {
			return nil, err
		}
		if v == id {
			return row, nil
		}
	}
	return nil, nil
}

func limitRows(rows []entities.Row, limit int) []entities.Row {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
