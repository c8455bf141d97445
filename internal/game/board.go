package game

import (
	"errors"
	"fmt"

	"github.com/playtronix/ticline-backend/internal/apperror"
)

// Mark - the owner of a single cell.
type Mark byte

const (
	Empty Mark = iota
	X
	O
)

var ErrMalformedBoard = errors.New("malformed board string")

// WinLines - the eight winning lines, checked in fixed order:
// rows top to bottom, then columns left to right, then both diagonals.
var WinLines = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board - a tic-tac-toe grid in row-major order. The zero value is an empty board.
type Board [9]Mark

// Index - maps column x and row y to the flat cell index.
func Index(x, y int) int {
	return y*3 + x
}

// String - renders the board as the nine-digit wire form: 0 empty, 1 X, 2 O.
func (that Board) String() string {
	buf := make([]byte, len(that))
	for i, mark := range that {
		buf[i] = byte('0' + mark)
	}

	return string(buf)
}

// ParseBoard - reads a board back from its nine-digit wire form.
func ParseBoard(s string) (Board, error) {
	var board Board

	if len(s) != len(board) {
		return board, fmt.Errorf("%w: %q", ErrMalformedBoard, s)
	}

	for i := range board {
		mark := Mark(s[i] - '0')
		if mark != Empty && mark != X && mark != O {
			return Board{}, fmt.Errorf("%w: %q", ErrMalformedBoard, s)
		}
		board[i] = mark
	}

	return board, nil
}

// Apply - returns a copy of the board with the cell marked.
// The receiver is never modified.
func (that Board) Apply(cell int, mark Mark) (Board, error) {
	if cell < 0 || cell >= len(that) {
		return that, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that[cell] != Empty {
		return that, fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that[cell] = mark

	return that, nil
}

// Winner - reports the owner of the first complete line, if any.
func (that Board) Winner() (Mark, bool) {
	for _, line := range WinLines {
		a, b, c := that[line[0]], that[line[1]], that[line[2]]
		if a != Empty && a == b && b == c {
			return a, true
		}
	}

	return Empty, false
}

// IsFull - reports whether no empty cell remains.
func (that Board) IsFull() bool {
	for _, mark := range that {
		if mark == Empty {
			return false
		}
	}

	return true
}

// IsEmpty - reports whether no cell has been marked yet.
func (that Board) IsEmpty() bool {
	for _, mark := range that {
		if mark != Empty {
			return false
		}
	}

	return true
}
