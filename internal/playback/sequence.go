package playback

import (
	"strings"

	"wordreader/internal/domain"
)

// Request is one cell to speak
type Request struct {
	Coord domain.Coordinate
	Text  string
	Lang  string
	// Pass is the 1-based repeat of the row this request belongs to
	Pass int
}

type cell struct {
	col  int
	text string
}

// Sequence walks a table snapshot cell by cell, repeating each row's
// populated cells before moving to the next row. It is finite and can be
// restarted with Reset.
type Sequence struct {
	rows    [][]string
	repeat  int
	locales domain.Locales

	row   int
	cell  int
	count int
	// populated cells of the current row
	current []cell
	loaded  bool
}

// NewSequence creates a sequence over rows. A repeat below 1 means 1.
func NewSequence(rows [][]string, repeat int, locales domain.Locales) *Sequence {
	if repeat < 1 {
		repeat = 1
	}
	return &Sequence{rows: rows, repeat: repeat, locales: locales}
}

// Next returns the next request, or false once every row is done
func (s *Sequence) Next() (Request, bool) {
	for s.row < len(s.rows) {
		if !s.loaded {
			s.current = populated(s.rows[s.row])
			s.loaded = true
		}
		if len(s.current) == 0 {
			s.advanceRow()
			continue
		}

		if s.cell < len(s.current) {
			c := s.current[s.cell]
			s.cell++
			return Request{
				Coord: domain.Coordinate{Row: s.row + 1, Col: c.col},
				Text:  c.text,
				Lang:  s.locales.ForColumn(c.col),
				Pass:  s.count + 1,
			}, true
		}

		s.cell = 0
		s.count++
		if s.count >= s.repeat {
			s.advanceRow()
		}
	}
	return Request{}, false
}

// Reset rewinds to the first row
func (s *Sequence) Reset() {
	s.row, s.cell, s.count = 0, 0, 0
	s.current, s.loaded = nil, false
}

// Repeat returns the number of times each row is spoken
func (s *Sequence) Repeat() int {
	return s.repeat
}

func (s *Sequence) advanceRow() {
	s.row++
	s.cell, s.count = 0, 0
	s.current, s.loaded = nil, false
}

func populated(row []string) []cell {
	var cells []cell
	for i, text := range row {
		if text = strings.TrimSpace(text); text != "" {
			cells = append(cells, cell{col: i + 1, text: text})
		}
	}
	return cells
}
