package tictactoe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const Size = 3

// Mark is the content of a single cell. X and O double as the two players.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

// Board is a 3x3 grid. It is an array, so every assignment is a copy and a
// board handed to another function can never be changed behind the caller's back.
type Board [Size][Size]Mark

// Action identifies a cell on a specific board.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

var winLines = [8][3]Action{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{2, 0}, {1, 1}, {0, 2}},
}

func (that Mark) String() string {
	switch that {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other player. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Mark) IsValid() bool {
	return that == Empty || that == X || that == O
}

func (that Mark) MarshalText() ([]byte, error) {
	if !that.IsValid() {
		return nil, fmt.Errorf("%w: unknown mark %d", apperror.ErrMalformedBoard, uint8(that))
	}

	return []byte(that.String()), nil
}

func (that *Mark) UnmarshalText(text []byte) error {
	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*that = mark

	return nil
}

// ParseMark accepts "X", "O" and "" (case-insensitive, surrounding spaces ignored).
func ParseMark(s string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return Empty, nil
	case "X":
		return X, nil
	case "O":
		return O, nil
	default:
		return Empty, fmt.Errorf("%w: unknown mark %q", apperror.ErrMalformedBoard, s)
	}
}

// UnmarshalJSON accepts exactly Size rows of Size cells.
func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Mark
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}

	if len(rows) != Size {
		return fmt.Errorf("%w: %d rows", apperror.ErrMalformedBoard, len(rows))
	}

	var board Board
	for i, row := range rows {
		if len(row) != Size {
			return fmt.Errorf("%w: row %d has %d cells", apperror.ErrMalformedBoard, i, len(row))
		}
		copy(board[i][:], row)
	}

	*that = board

	return nil
}

func (that Action) InBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Action) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// String renders the board as three rows, "." standing for an empty cell.
func (that Board) String() string {
	var sb strings.Builder

	for i, row := range that {
		if i > 0 {
			sb.WriteByte('\n')
		}

		for _, cell := range row {
			if cell == Empty {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(cell.String())
		}
	}

	return sb.String()
}

// Count returns how many cells hold the given mark.
func Count(board Board, mark Mark) int {
	n := 0
	for _, row := range board {
		for _, cell := range row {
			if cell == mark {
				n++
			}
		}
	}

	return n
}

// Validate reports boards that cannot be reached from the initial state by
// alternating moves with X first.
func Validate(board Board) error {
	for i, row := range board {
		for j, cell := range row {
			if !cell.IsValid() {
				return fmt.Errorf("%w: cell (%d,%d) holds %d", apperror.ErrMalformedBoard, i, j, uint8(cell))
			}
		}
	}

	xCount, oCount := Count(board, X), Count(board, O)
	if xCount != oCount && xCount != oCount+1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrMalformedBoard, xCount, oCount)
	}

	xWins, oWins := hasLine(board, X), hasLine(board, O)
	switch {
	case xWins && oWins:
		return fmt.Errorf("%w: both players own a line", apperror.ErrMalformedBoard)
	case xWins && xCount != oCount+1:
		return fmt.Errorf("%w: O moved after X won", apperror.ErrMalformedBoard)
	case oWins && xCount != oCount:
		return fmt.Errorf("%w: X moved after O won", apperror.ErrMalformedBoard)
	}

	return nil
}

func hasLine(board Board, mark Mark) bool {
	for _, line := range winLines {
		if board[line[0].Row][line[0].Col] == mark &&
			board[line[1].Row][line[1].Col] == mark &&
			board[line[2].Row][line[2].Col] == mark {
			return true
		}
	}

	return false
}
