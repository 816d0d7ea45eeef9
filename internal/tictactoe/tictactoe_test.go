package tictactoe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const E = Empty

func TestInitialState(t *testing.T) {
	// When: creating the initial state
	board := InitialState()

	// Then: all nine cells are empty and X is on turn
	assert.Equal(t, 9, Count(board, Empty))
	assert.Len(t, AvailableActions(board), 9)
	assert.Equal(t, X, CurrentPlayer(board))
	assert.Equal(t, Empty, Winner(board))
	assert.False(t, IsTerminal(board))
}

func TestCurrentPlayer(t *testing.T) {
	t.Run("O moves after X", func(t *testing.T) {
		// Given: a board with one X mark
		board := Board{{X, E, E}, {E, E, E}, {E, E, E}}

		// Then: O is on turn
		assert.Equal(t, O, CurrentPlayer(board))
	})

	t.Run("X moves when counts are equal", func(t *testing.T) {
		// Given: a board with one mark of each kind
		board := Board{{X, E, E}, {E, O, E}, {E, E, E}}

		// Then: X is on turn
		assert.Equal(t, X, CurrentPlayer(board))
	})
}

func TestApplyAction(t *testing.T) {
	t.Run("Places the current player's mark", func(t *testing.T) {
		// Given: a board where O is on turn
		board := Board{{X, E, E}, {E, E, E}, {E, E, E}}

		// When: applying an action on an empty cell
		next, err := ApplyAction(board, Action{Row: 1, Col: 1})

		// Then: the cell holds O and every other cell is unchanged
		require.NoError(t, err)
		assert.Equal(t, Board{{X, E, E}, {E, O, E}, {E, E, E}}, next)
	})

	t.Run("Does not mutate the input board", func(t *testing.T) {
		// Given: a board and a copy taken before the move
		board := Board{{X, E, E}, {E, O, E}, {E, E, E}}
		before := board

		// When: applying an action
		_, err := ApplyAction(board, Action{Row: 2, Col: 2})
		require.NoError(t, err)

		// Then: the original board is unchanged
		assert.Equal(t, before, board)
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		// Given: a board where (0,0) is taken
		board := Board{{X, E, E}, {E, E, E}, {E, E, E}}

		// When: applying an action on the occupied cell
		_, err := ApplyAction(board, Action{Row: 0, Col: 0})

		// Then: ErrInvalidAction is returned
		require.ErrorIs(t, err, apperror.ErrInvalidAction)
	})

	t.Run("Error on every cell of a full board", func(t *testing.T) {
		// Given: a full board
		board := Board{{X, O, X}, {X, O, O}, {O, X, X}}

		for i := 0; i < Size; i++ {
			for j := 0; j < Size; j++ {
				// When: applying any action
				_, err := ApplyAction(board, Action{Row: i, Col: j})

				// Then: ErrInvalidAction is returned
				assert.ErrorIs(t, err, apperror.ErrInvalidAction)
			}
		}
	})

	t.Run("Error on coordinates outside the board", func(t *testing.T) {
		board := InitialState()

		for _, action := range []Action{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {20, 20}} {
			_, err := ApplyAction(board, action)
			assert.ErrorIs(t, err, apperror.ErrInvalidAction, "action %s", action)
		}
	})
}

func TestWinner(t *testing.T) {
	t.Run("No winner on the initial board", func(t *testing.T) {
		assert.Equal(t, Empty, Winner(InitialState()))
	})

	t.Run("No winner without a completed line", func(t *testing.T) {
		// Given: a board in progress
		board := Board{{X, O, E}, {E, X, E}, {E, E, O}}

		// Then: there is no winner
		assert.Equal(t, Empty, Winner(board))
	})

	t.Run("Detects every line", func(t *testing.T) {
		for _, line := range winLines {
			// Given: a board where O owns exactly one line
			var board Board
			for _, cell := range line {
				board[cell.Row][cell.Col] = O
			}

			// Then: O is the winner
			assert.Equal(t, O, Winner(board), "line %v", line)
		}
	})
}

func TestScenarios(t *testing.T) {
	t.Run("Top row win", func(t *testing.T) {
		// Given: X has completed the top row
		board := Board{{X, X, X}, {O, O, E}, {E, E, E}}

		// Then: X wins, the game is over and the utility is 1
		assert.Equal(t, X, Winner(board))
		assert.True(t, IsTerminal(board))
		assert.Equal(t, 1, Utility(board))
	})

	t.Run("Played out top row win", func(t *testing.T) {
		// Given: the initial state
		board := InitialState()

		// When: playing X(0,0) O(1,1) X(0,1) O(2,2) X(0,2)
		var err error
		for _, action := range []Action{{0, 0}, {1, 1}, {0, 1}, {2, 2}, {0, 2}} {
			board, err = ApplyAction(board, action)
			require.NoError(t, err)
		}

		// Then: X has won by the top row
		assert.Equal(t, X, Winner(board))
		assert.True(t, IsTerminal(board))
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a full board without three in a row
		board := Board{{X, O, X}, {X, O, O}, {O, X, X}}

		// Then: no winner, the game is over and the utility is 0
		assert.Equal(t, Empty, Winner(board))
		assert.True(t, IsTerminal(board))
		assert.Equal(t, 0, Utility(board))
	})

	t.Run("O wins", func(t *testing.T) {
		board := Board{{O, X, X}, {X, O, E}, {X, E, O}}

		assert.Equal(t, O, Winner(board))
		assert.True(t, IsTerminal(board))
		assert.Equal(t, -1, Utility(board))
	})
}

// Walks every board reachable from the initial state.
func TestReachableBoards(t *testing.T) {
	seen := make(map[Board]struct{})

	var walk func(board Board)
	walk = func(board Board) {
		if _, ok := seen[board]; ok {
			return
		}
		seen[board] = struct{}{}

		actions := AvailableActions(board)
		filled := Size*Size - Count(board, Empty)

		require.Equal(t, Size*Size, len(actions)+filled)
		require.NoError(t, Validate(board))

		winner := Winner(board)
		require.Equal(t, winner != Empty || len(actions) == 0, IsTerminal(board))

		switch winner {
		case X:
			require.Equal(t, 1, Utility(board))
		case O:
			require.Equal(t, -1, Utility(board))
		default:
			require.Equal(t, 0, Utility(board))
		}

		if IsTerminal(board) {
			return
		}

		for _, action := range actions {
			next, err := ApplyAction(board, action)
			require.NoError(t, err)
			walk(next)
		}
	}

	walk(InitialState())

	assert.Len(t, seen, 5478)
}

func TestValidate(t *testing.T) {
	t.Run("Accepts a reachable board", func(t *testing.T) {
		assert.NoError(t, Validate(Board{{X, O, E}, {E, X, E}, {E, E, E}}))
	})

	t.Run("Rejects O moving first", func(t *testing.T) {
		err := Validate(Board{{O, E, E}, {E, E, E}, {E, E, E}})
		assert.ErrorIs(t, err, apperror.ErrMalformedBoard)
	})

	t.Run("Rejects X moving twice", func(t *testing.T) {
		err := Validate(Board{{X, X, E}, {E, E, E}, {E, E, E}})
		assert.ErrorIs(t, err, apperror.ErrMalformedBoard)
	})

	t.Run("Rejects unknown cell values", func(t *testing.T) {
		err := Validate(Board{{Mark(7), E, E}, {E, E, E}, {E, E, E}})
		assert.ErrorIs(t, err, apperror.ErrMalformedBoard)
	})

	t.Run("Accepts X completing two lines at once", func(t *testing.T) {
		assert.NoError(t, Validate(Board{{X, X, X}, {O, X, O}, {X, O, O}}))
	})

	t.Run("Rejects both players owning a line", func(t *testing.T) {
		err := Validate(Board{{X, X, X}, {O, O, O}, {X, E, O}})
		assert.ErrorIs(t, err, apperror.ErrMalformedBoard)
	})

	t.Run("Rejects O moving after X won", func(t *testing.T) {
		err := Validate(Board{{X, X, X}, {O, O, E}, {O, E, E}})
		assert.ErrorIs(t, err, apperror.ErrMalformedBoard)
	})

	t.Run("Rejects X moving after O won", func(t *testing.T) {
		err := Validate(Board{{O, O, O}, {X, X, E}, {X, X, E}})
		assert.ErrorIs(t, err, apperror.ErrMalformedBoard)
	})
}

func TestBoardJSON(t *testing.T) {
	t.Run("Encodes marks as text", func(t *testing.T) {
		// Given: a board with both marks
		board := Board{{X, E, E}, {E, O, E}, {E, E, E}}

		// When: encoding it
		data, err := json.Marshal(board)
		require.NoError(t, err)

		// Then: cells are strings
		assert.JSONEq(t, `[["X","",""],["","O",""],["","",""]]`, string(data))
	})

	t.Run("Decodes lower-case marks", func(t *testing.T) {
		var board Board
		err := json.Unmarshal([]byte(`[["x","",""],["","o",""],["","",""]]`), &board)

		require.NoError(t, err)
		assert.Equal(t, Board{{X, E, E}, {E, O, E}, {E, E, E}}, board)
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		var board Board
		err := json.Unmarshal([]byte(`[["Z","",""],["","",""],["","",""]]`), &board)

		assert.ErrorIs(t, err, apperror.ErrMalformedBoard)
	})

	t.Run("Rejects boards of the wrong shape", func(t *testing.T) {
		for _, data := range []string{
			`[["X"]]`,
			`[["X","",""],["","O",""]]`,
			`[["X","O","X","O","X"],["","",""],["","",""]]`,
			`[["X","",""],["","O",""],["","",""],["O","O","O"]]`,
			`[]`,
		} {
			// Given: an untouched destination board
			board := Board{{X, E, E}, {E, E, E}, {E, E, E}}

			// When: decoding a board that is not 3x3
			err := json.Unmarshal([]byte(data), &board)

			// Then: it is rejected and the destination is left alone
			assert.ErrorIs(t, err, apperror.ErrMalformedBoard, data)
			assert.Equal(t, Board{{X, E, E}, {E, E, E}, {E, E, E}}, board, data)
		}
	})
}

func TestBoard_String(t *testing.T) {
	board := Board{{X, E, E}, {E, O, E}, {E, E, X}}

	assert.Equal(t, "X..\n.O.\n..X", board.String())
}
