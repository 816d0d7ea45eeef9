package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is a session between a human and the engine. Whose turn it is always
// follows from the board and is never stored.
type Game struct {
	ID        string             `json:"id"`
	Board     tictactoe.Board    `json:"board"`
	HumanMark tictactoe.Mark     `json:"human_mark"`
	BotMark   tictactoe.Mark     `json:"bot_mark"`
	Winner    tictactoe.Mark     `json:"winner"`
	Status    string             `json:"status"`
	Moves     []tictactoe.Action `json:"moves"`
	CreatedAt time.Time          `json:"created_at"`
}

func NewGame(id string, humanMark tictactoe.Mark) *Game {
	return &Game{
		ID:        id,
		Board:     tictactoe.InitialState(),
		HumanMark: humanMark,
		BotMark:   humanMark.Opponent(),
		Winner:    tictactoe.Empty,
		Status:    StatusOngoing,
		Moves:     []tictactoe.Action{},
		CreatedAt: time.Now().UTC(),
	}
}

// Turn returns the mark to move, or Empty once the game is over.
func (that *Game) Turn() tictactoe.Mark {
	if that.IsFinished() {
		return tictactoe.Empty
	}

	return tictactoe.CurrentPlayer(that.Board)
}

func (that *Game) UpdateGameState() {
	if !tictactoe.IsTerminal(that.Board) {
		that.Status = StatusOngoing
		return
	}

	that.Winner = tictactoe.Winner(that.Board)
	that.Status = StatusFinished
}

func (that *Game) MakeTurn(mark tictactoe.Mark, action tictactoe.Action) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if tictactoe.CurrentPlayer(that.Board) != mark {
		return apperror.ErrNotYourTurn
	}

	board, err := tictactoe.ApplyAction(that.Board, action)
	if err != nil {
		return fmt.Errorf("failed to apply action: %w", err)
	}

	that.Board = board
	that.Moves = append(that.Moves, action)
	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsDraw() bool {
	return that.IsFinished() && that.Winner == tictactoe.Empty
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
