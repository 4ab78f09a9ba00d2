package domain

import (
	"fmt"
	"strings"
)

// DefaultColumnLabel is the header given to columns added without a label
const DefaultColumnLabel = "New Column"

// DefaultHeader is the header of a fresh word table
var DefaultHeader = []string{"Spanish", "English"}

// Table is an editable word table. Header is row 0; Rows holds the data
// rows, each with exactly len(Header) cells.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// NewTable creates an empty table with the given header (DefaultHeader when empty)
func NewTable(header ...string) *Table {
	if len(header) == 0 {
		header = DefaultHeader
	}
	return &Table{
		Header: append([]string(nil), header...),
		Rows:   [][]string{},
	}
}

// Width returns the number of columns
func (t *Table) Width() int {
	return len(t.Header)
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// AddRow appends an empty data row and returns its coordinate row
func (t *Table) AddRow() int {
	t.Rows = append(t.Rows, make([]string, t.Width()))
	return len(t.Rows)
}

// AddColumn appends a column with an empty cell in every data row
func (t *Table) AddColumn(label string) {
	if strings.TrimSpace(label) == "" {
		label = DefaultColumnLabel
	}
	t.Header = append(t.Header, label)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
}

// Cell returns the text at c
func (t *Table) Cell(c Coordinate) (string, bool) {
	if !t.contains(c) {
		return "", false
	}
	return t.Rows[c.Row-1][c.Col-1], true
}

// SetCell replaces the text at c
func (t *Table) SetCell(c Coordinate, text string) error {
	if !t.contains(c) {
		return fmt.Errorf("%w: %s", ErrCellOutOfRange, c)
	}
	t.Rows[c.Row-1][c.Col-1] = text
	return nil
}

func (t *Table) contains(c Coordinate) bool {
	return c.Row >= 1 && c.Row <= len(t.Rows) && c.Col >= 1 && c.Col <= len(t.Rows[c.Row-1])
}

// Coordinates lists every data cell coordinate in row-major order
func (t *Table) Coordinates() []Coordinate {
	var coords []Coordinate
	for r, row := range t.Rows {
		for c := range row {
			coords = append(coords, Coordinate{Row: r + 1, Col: c + 1})
		}
	}
	return coords
}

// RowNumbers returns the labels of the row-number gutter
func (t *Table) RowNumbers() []string {
	numbers := make([]string, len(t.Rows))
	for i := range t.Rows {
		numbers[i] = fmt.Sprintf("%d", i+1)
	}
	return numbers
}

// Snapshot returns the data rows with every cell trimmed
func (t *Table) Snapshot() [][]string {
	data := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		data[i] = cells
	}
	return data
}

// Replace drops all data rows and rebuilds the table from stored data.
// The header grows with "Column N" labels until it is as wide as the
// widest stored row; shorter rows are padded.
func (t *Table) Replace(data [][]string) {
	t.Rows = [][]string{}
	for _, row := range data {
		t.appendRow(row)
	}
}

// Import appends rows parsed from the flat comma-delimited format and
// returns how many rows were added
func (t *Table) Import(text string) int {
	rows := ParseRepeated(text)
	for _, row := range rows {
		t.appendRow(row)
	}
	return len(rows)
}

// Export renders the first two columns in the flat comma-delimited format
func (t *Table) Export() string {
	return FormatRepeated(t.Rows)
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	clone := &Table{
		Header: append([]string(nil), t.Header...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		clone.Rows[i] = append([]string(nil), row...)
	}
	return clone
}

func (t *Table) appendRow(cells []string) {
	t.ensureWidth(len(cells))
	row := make([]string, t.Width())
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

func (t *Table) ensureWidth(width int) {
	for t.Width() < width {
		t.Header = append(t.Header, fmt.Sprintf("Column %d", t.Width()))
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], "")
		}
	}
}
