package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
)

const BoardSize = 3

type Mark string

const (
	EmptyCell Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

// ParseMark - accepts only the two player marks.
func ParseMark(value string) (Mark, error) {
	switch mark := Mark(value); mark {
	case MarkX, MarkO:
		return mark, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, value)
	}
}

func (that Mark) IsValid() bool {
	return that == MarkX || that == MarkO
}

func (that Mark) Opposite() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return EmptyCell
	}
}

// WinLines lists the 3 rows, 3 columns and 2 diagonals as (row, col) triples.
var WinLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 grid of marks indexed as [row][col].
type Board [BoardSize][BoardSize]Mark

func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// PlaceMark - sets an empty cell. Turn legality is the caller's concern.
func (that *Board) PlaceMark(row, col int, mark Mark) error {
	if !InBounds(row, col) {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, row, col)
	}

	if !mark.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if that.IsOccupied(row, col) {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrCellOccupied, row, col)
	}

	that[row][col] = mark

	return nil
}

// IsOccupied - false for cells outside the board.
func (that *Board) IsOccupied(row, col int) bool {
	if !InBounds(row, col) {
		return false
	}

	return that[row][col] != EmptyCell
}

// HasLine - reports whether any of the 8 lines is fully held by mark.
func (that *Board) HasLine(mark Mark) bool {
	if !mark.IsValid() {
		return false
	}

	for _, line := range WinLines {
		complete := true
		for _, cell := range line {
			if that[cell[0]][cell[1]] != mark {
				complete = false
				break
			}
		}

		if complete {
			return true
		}
	}

	return false
}

func (that *Board) IsFull() bool {
	for row := range that {
		for col := range that[row] {
			if that[row][col] == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Board) IsEmpty() bool {
	for row := range that {
		for col := range that[row] {
			if that[row][col] != EmptyCell {
				return false
			}
		}
	}

	return true
}
