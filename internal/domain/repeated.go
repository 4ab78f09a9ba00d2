package domain

import "strings"

// ParseRepeated reads the flat "source, target, source, target" import
// format. Empty tokens are dropped and an odd trailing token becomes a
// source-only row. Embedded commas cannot be escaped.
func ParseRepeated(text string) [][]string {
	var entries []string
	for _, token := range strings.Split(text, ",") {
		if token = strings.TrimSpace(token); token != "" {
			entries = append(entries, token)
		}
	}

	rows := make([][]string, 0, (len(entries)+1)/2)
	for i := 0; i < len(entries); i += 2 {
		target := ""
		if i+1 < len(entries) {
			target = entries[i+1]
		}
		rows = append(rows, []string{entries[i], target})
	}
	return rows
}

// FormatRepeated writes the first two cells of every row that is not
// fully empty in the flat import format
func FormatRepeated(rows [][]string) string {
	var entries []string
	for _, row := range rows {
		source, target := cellAt(row, 0), cellAt(row, 1)
		if source == "" && target == "" {
			continue
		}
		entries = append(entries, source, target)
	}
	return strings.Join(entries, ", ")
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
