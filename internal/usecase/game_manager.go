package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	UpdateByID(ctx context.Context, id string, update func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(game *entity.Game) (tictactoe.Action, error)
}

type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	botService botService
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, botService botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		botService: botService,
	}
}

// CreateGame starts a game for a human playing humanMark. When the bot holds X
// it has already made the opening move in the returned game.
func (that *GameManager) CreateGame(ctx context.Context, humanMark tictactoe.Mark) (*entity.Game, error) {
	if humanMark != tictactoe.X && humanMark != tictactoe.O {
		return nil, fmt.Errorf("%w: got %q", apperror.ErrInvalidMark, humanMark.String())
	}

	game := entity.NewGame(uuid.NewString(), humanMark)

	if game.BotMark == tictactoe.X {
		if _, err := that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "humanMark", humanMark.String())

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn plays the human's action and, unless that ended the game, the bot's
// reply. Both moves are stored together, and a turn that raced another one on
// the same game is replayed against the newer state.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, action tictactoe.Action) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	game, err := that.gameRepo.UpdateByID(ctx, gameID, func(game *entity.Game) error {
		if err := game.ConfirmOngoingState(); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		if err := game.MakeTurn(game.HumanMark, action); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		if game.IsFinished() {
			return nil
		}

		if _, err := that.botService.MakeTurn(game); err != nil {
			return fmt.Errorf("bot failed to make turn: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner.String(), "moves", len(game.Moves))
	}

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// Analyze evaluates an arbitrary position: the side to move, the engine's
// move and the line both sides would play from there.
func (that *GameManager) Analyze(_ context.Context, board tictactoe.Board) (*entity.Analysis, error) {
	if err := tictactoe.Validate(board); err != nil {
		return nil, fmt.Errorf("failed to analyze board: %w", err)
	}

	analysis := &entity.Analysis{
		Board:    board,
		Player:   tictactoe.CurrentPlayer(board),
		Winner:   tictactoe.Winner(board),
		Terminal: tictactoe.IsTerminal(board),
		Utility:  tictactoe.Utility(board),
		Line:     []tictactoe.Action{},
	}

	if action, ok := tictactoe.Minimax(board); ok {
		analysis.BestMove = &action
	}

	final, line := tictactoe.SelfPlay(board)
	analysis.Line = append(analysis.Line, line...)

	if tictactoe.IsTerminal(final) {
		analysis.Outcome = entity.OutcomeFor(tictactoe.Winner(final))
	} else {
		// the side to move gave up: every move loses
		analysis.Outcome = entity.OutcomeFor(tictactoe.CurrentPlayer(final).Opponent())
	}

	if analysis.Terminal {
		analysis.Player = tictactoe.Empty
	}

	return analysis, nil
}
