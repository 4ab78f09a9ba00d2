package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wordreader/internal/domain"
	"wordreader/internal/playback"
	"wordreader/internal/speech"
)

const minCellWidth = 8

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("27")).
			Padding(0, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("244")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	// the cell being spoken
	activeStyle = cellStyle.Copy().
			Bold(true).
			Background(lipgloss.Color("226")).
			Foreground(lipgloss.Color("232"))

	cursorStyle = cellStyle.Copy().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15"))

	editStyle = cellStyle.Copy().
			Background(lipgloss.Color("63")).
			Foreground(lipgloss.Color("15"))

	// row-number gutter
	gutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Align(lipgloss.Right).
			Width(4).
			PaddingRight(1)

	statusStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("234"))

	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true).Padding(0, 1)
)

const keyHelp = "←↑↓→ move · enter edit · a row · c column · p play · space pause · x stop · y copy · : command · q quit"

func (m Model) View() string {
	var content strings.Builder

	title := "WordReader"
	if name := m.ws.TableName(); name != "" {
		title += " · " + name
	}
	content.WriteString(titleStyle.Render(title) + "\n\n")

	content.WriteString(m.renderTable() + "\n\n")

	statusBar := statusStyle.Render(m.statusLine())
	if m.width > 0 {
		statusBar = statusStyle.Copy().Width(m.width).Render(m.statusLine())
	}
	content.WriteString(statusBar + "\n")

	switch {
	case m.mode == modeCommand:
		content.WriteString(noticeStyle.Render(":"+m.input+"▏") + "\n")
	case m.statusIsError:
		content.WriteString(errorStyle.Render(m.status) + "\n")
	default:
		content.WriteString(noticeStyle.Render(m.status) + "\n")
	}
	content.WriteString(helpStyle.Render(keyHelp))

	return content.String()
}

// renderTable draws the header, then every row with its gutter label at
// the height of the row
func (m Model) renderTable() string {
	t := m.ws.Table()
	active := m.ws.Active()
	widths := columnWidths(t)

	header := []string{gutterStyle.Render("#")}
	for c, label := range t.Header {
		header = append(header, headerStyle.Copy().Width(widths[c]).Render(label))
	}
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Bottom, header...)}

	if t.RowCount() == 0 {
		lines = append(lines, helpStyle.Render("Empty table. Press a to add a row or :import a,b,c,d"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	numbers := t.RowNumbers()
	for r, row := range t.Rows {
		cells := make([]string, len(row))
		height := 1
		for c, text := range row {
			coord := domain.Coordinate{Row: r + 1, Col: c + 1}
			style := cellStyle
			switch {
			case m.mode == modeEdit && coord == m.cursor:
				style = editStyle
				text = m.input + "▏"
			case coord == active:
				style = activeStyle
			case coord == m.cursor:
				style = cursorStyle
			}
			cells[c] = style.Copy().Width(widths[c]).Render(text)
			if h := lipgloss.Height(cells[c]); h > height {
				height = h
			}
		}
		gutter := gutterStyle.Copy().Height(height).Render(numbers[r])
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, append([]string{gutter}, cells...)...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// columnWidths sizes every column to its widest line plus padding
func columnWidths(t *domain.Table) []int {
	widths := make([]int, t.Width())
	for c, label := range t.Header {
		widths[c] = max(minCellWidth, lipgloss.Width(label)+2)
	}
	for _, row := range t.Rows {
		for c, text := range row {
			if w := lipgloss.Width(text) + 2; w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

func (m Model) statusLine() string {
	parts := []string{
		m.ws.Timer(),
		"Speed: " + speech.FormatRate(m.ws.Driver().Rate()),
		fmt.Sprintf("Repeat: %d", m.ws.Repeat()),
	}

	st := m.ws.Status()
	switch {
	case m.ws.Paused():
		parts = append(parts, "⏸ paused")
	case st.State != playback.StateIdle:
		parts = append(parts, fmt.Sprintf("▶ %s %s", st.State, st.Coord))
	}

	if user := m.ws.CurrentUser(); user != "" {
		parts = append(parts, user)
	}
	if err := m.ws.LastError(); err != nil {
		parts = append(parts, "last pass failed: "+err.Error())
	}
	return strings.Join(parts, " | ")
}
