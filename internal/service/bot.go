package service

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type BotService interface {
	MakeTurn(game *entity.Game) (tictactoe.Action, error)
}

type botService struct {
	logger *slog.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewBotService returns a bot that plays the minimax move. rnd is only used when
// the search gives up on a lost position.
func NewBotService(logger *slog.Logger, rnd *rand.Rand) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		rnd:    rnd,
	}
}

func (that *botService) MakeTurn(game *entity.Game) (tictactoe.Action, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	availableActions := tictactoe.AvailableActions(game.Board)
	if len(availableActions) == 0 {
		return tictactoe.Action{}, apperror.ErrNoAvailableMoves
	}

	action, ok := tictactoe.Minimax(game.Board)
	if !ok {
		action = that.randomAction(availableActions)
		log.Debug("every move loses, playing a random cell", "action", action.String())
	}

	if err := game.MakeTurn(game.BotMark, action); err != nil {
		return tictactoe.Action{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("bot made turn", "action", action.String(), "board", game.Board.String())

	return action, nil
}

func (that *botService) randomAction(actions []tictactoe.Action) tictactoe.Action {
	that.mu.Lock()
	defer that.mu.Unlock()

	return actions[that.rnd.Intn(len(actions))] //nolint: gosec // it's ok
}
