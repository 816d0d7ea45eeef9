package tictactoe

// Minimax returns the move the current player should make, searching the whole
// remaining game tree.
//
// The first action proven to win is returned at once. Failing that, the last
// action found to draw is returned. When every action loses, or the board is
// terminal, ok is false: the search does not fall back to the least bad move.
func Minimax(board Board) (Action, bool) {
	if IsTerminal(board) {
		return Action{}, false
	}

	var (
		tie   Action
		found bool
	)

	player := CurrentPlayer(board)

	for _, action := range AvailableActions(board) {
		next := mustApply(board, action)

		if player == X {
			switch minValue(next) {
			case 1:
				return action, true
			case 0:
				tie, found = action, true
			}

			continue
		}

		switch maxValue(next) {
		case -1:
			return action, true
		case 0:
			tie, found = action, true
		}
	}

	return tie, found
}

// SelfPlay lets the engine play both sides from the given board until the game
// ends. It returns the final board and the actions taken. Play stops early if
// Minimax gives up on a lost position.
func SelfPlay(board Board) (Board, []Action) {
	var line []Action

	for !IsTerminal(board) {
		action, ok := Minimax(board)
		if !ok {
			break
		}

		board = mustApply(board, action)
		line = append(line, action)
	}

	return board, line
}

func maxValue(board Board) int {
	if IsTerminal(board) {
		return Utility(board)
	}

	v := -2
	for _, action := range AvailableActions(board) {
		v = max(v, minValue(mustApply(board, action)))
	}

	return v
}

func minValue(board Board) int {
	if IsTerminal(board) {
		return Utility(board)
	}

	v := 2
	for _, action := range AvailableActions(board) {
		v = min(v, maxValue(mustApply(board, action)))
	}

	return v
}

// mustApply is only called with actions taken from AvailableActions.
func mustApply(board Board, action Action) Board {
	next, err := ApplyAction(board, action)
	if err != nil {
		panic(err)
	}

	return next
}
