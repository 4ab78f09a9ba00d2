package domain

import (
	"html"
	"strings"
)

// HTML renders the table markup sent with the unload snapshot
func (t *Table) HTML() string {
	var sb strings.Builder
	sb.WriteString(`<table id="wordTable"><tbody><tr>`)
	for _, label := range t.Header {
		sb.WriteString("<th>")
		sb.WriteString(html.EscapeString(label))
		sb.WriteString("</th>")
	}
	sb.WriteString("</tr>")

	for r, row := range t.Rows {
		sb.WriteString("<tr>")
		for c, cell := range row {
			coord := Coordinate{Row: r + 1, Col: c + 1}
			sb.WriteString(`<td contenteditable="true" data-coord="`)
			sb.WriteString(coord.String())
			sb.WriteString(`">`)
			sb.WriteString(html.EscapeString(cell))
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>")
	}

	sb.WriteString("</tbody></table>")
	return sb.String()
}
