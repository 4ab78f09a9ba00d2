package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate locates a data cell. Row 0 is the header, so data rows start
// at 1; columns also start at 1. The zero value means "no cell".
type Coordinate struct {
	Row int
	Col int
}

// String encodes the coordinate as "row,col"
func (c Coordinate) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// IsZero reports whether c points at no cell
func (c Coordinate) IsZero() bool {
	return c.Row == 0 && c.Col == 0
}

// ParseCoordinate decodes a "row,col" string
func ParseCoordinate(s string) (Coordinate, error) {
	rowStr, colStr, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q", s)
	}

	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid coordinate row %q: %w", rowStr, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid coordinate column %q: %w", colStr, err)
	}
	if row < 1 || col < 1 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q", s)
	}

	return Coordinate{Row: row, Col: col}, nil
}
