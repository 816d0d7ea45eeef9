package entity

import "github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"

const (
	OutcomeXWins = "x_wins"
	OutcomeOWins = "o_wins"
	OutcomeDraw  = "draw"
)

// Analysis describes a board as the engine sees it.
type Analysis struct {
	Board    tictactoe.Board    `json:"board"`
	Player   tictactoe.Mark     `json:"player"`
	Winner   tictactoe.Mark     `json:"winner"`
	Terminal bool               `json:"terminal"`
	Utility  int                `json:"utility"`
	BestMove *tictactoe.Action  `json:"best_move,omitempty"`
	Line     []tictactoe.Action `json:"line"`
	Outcome  string             `json:"outcome"`
}

// OutcomeFor names the result of a game won by winner, Empty meaning a draw.
func OutcomeFor(winner tictactoe.Mark) string {
	switch winner {
	case tictactoe.X:
		return OutcomeXWins
	case tictactoe.O:
		return OutcomeOWins
	default:
		return OutcomeDraw
	}
}
