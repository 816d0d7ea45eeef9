package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

// InitialState returns an empty board.
func InitialState() Board {
	return Board{}
}

// CurrentPlayer returns the player to move. X always starts, so O is on turn
// exactly when X has placed more marks.
func CurrentPlayer(board Board) Mark {
	if Count(board, X) > Count(board, O) {
		return O
	}

	return X
}

// AvailableActions returns every empty cell. Callers must treat the result as
// a set and not depend on its order.
func AvailableActions(board Board) []Action {
	actions := make([]Action, 0, Size*Size)
	for i, row := range board {
		for j, cell := range row {
			if cell == Empty {
				actions = append(actions, Action{Row: i, Col: j})
			}
		}
	}

	return actions
}

// ApplyAction returns the board after the current player marks the given cell.
// The input board is left untouched.
func ApplyAction(board Board, action Action) (Board, error) {
	if !action.InBounds() {
		return board, fmt.Errorf("%w: cell %s is outside the board", apperror.ErrInvalidAction, action)
	}

	if board[action.Row][action.Col] != Empty {
		return board, fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidAction, action)
	}

	board[action.Row][action.Col] = CurrentPlayer(board)

	return board, nil
}

// Winner returns the mark owning a complete line, or Empty.
func Winner(board Board) Mark {
	if board == (Board{}) {
		return Empty
	}

	for _, line := range winLines {
		a := board[line[0].Row][line[0].Col]
		b := board[line[1].Row][line[1].Col]
		c := board[line[2].Row][line[2].Col]

		if a != Empty && a == b && b == c {
			return a
		}
	}

	return Empty
}

// IsTerminal reports whether the game is over.
func IsTerminal(board Board) bool {
	if Winner(board) != Empty {
		return true
	}

	for _, row := range board {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

// Utility is 1 when X has won, -1 when O has won and 0 otherwise.
// Only meaningful for terminal boards.
func Utility(board Board) int {
	switch Winner(board) {
	case X:
		return 1
	case O:
		return -1
	default:
		return 0
	}
}
