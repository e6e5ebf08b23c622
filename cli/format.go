package cli

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format(time.RFC3339)
}

func formatDetails(details map[string]string) string {
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var sb strings.Builder
	for i, key := range keys {
		if i != 0 {
			sb.WriteRune(',')
		}
		sb.WriteString(key)
		sb.WriteRune('=')
		sb.WriteString(details[key])
	}
	return sb.String()
}

func newTable(headers []string) table {
	return table{rows: [][]string{headers, make([]string, len(headers))}}
}

type table struct {
	rows [][]string
}

func (t *table) addRow(row []string) {
	t.rows = append(t.rows, row)
}

func (t *table) format() string {
	widths := make([]int, len(t.rows[0]))
	for _, row := range t.rows {
		for j, value := range row {
			if l := utf8.RuneCountInString(value); l > widths[j] {
				widths[j] = l
			}
		}
	}

	var sb strings.Builder
	for _, row := range t.rows {
		for j, value := range row {
			if j != 0 {
				sb.WriteString("   ")
			}

			sb.WriteString(value)
			sb.WriteString(strings.Repeat(" ", widths[j]-utf8.RuneCountInString(value)))
		}
		sb.WriteRune('\n')
	}

	return sb.String()
}
