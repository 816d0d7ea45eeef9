package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var errBadRequest = errors.New("bad request")

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	DeleteGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
	Analyze(w http.ResponseWriter, r *http.Request)
}

type gameUseCase interface {
	CreateGame(ctx context.Context, humanMark tictactoe.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, action tictactoe.Action) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
	Analyze(ctx context.Context, board tictactoe.Board) (*entity.Analysis, error)
}

type handlers struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func NewHandlers(logger *slog.Logger, gameUseCase gameUseCase) Handlers {
	return &handlers{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

type createGameRequest struct {
	Mark tictactoe.Mark `json:"mark"`
}

type analyzeRequest struct {
	Board tictactoe.Board `json:"board"`
}

// gameView adds the derived turn to the stored game.
type gameView struct {
	*entity.Game
	Turn tictactoe.Mark `json:"turn"`
}

func newGameView(game *entity.Game) gameView {
	return gameView{Game: game, Turn: game.Turn()}
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decodeJSON(r, &req); err != nil {
		that.respondError(w, "CreateGame", err)
		return
	}

	game, err := that.gameUseCase.CreateGame(r.Context(), req.Mark)
	if err != nil {
		that.respondError(w, "CreateGame", err)
		return
	}

	respondJSON(w, http.StatusCreated, newGameView(game))
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.respondError(w, "GetGame", err)
		return
	}

	respondJSON(w, http.StatusOK, newGameView(game))
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.DeleteGame(r.Context(), mux.Vars(r)["id"]); err != nil {
		that.respondError(w, "DeleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var action tictactoe.Action
	if err := decodeJSON(r, &action); err != nil {
		that.respondError(w, "MakeTurn", err)
		return
	}

	game, err := that.gameUseCase.MakeTurn(r.Context(), mux.Vars(r)["id"], action)
	if err != nil {
		that.respondError(w, "MakeTurn", err)
		return
	}

	respondJSON(w, http.StatusOK, newGameView(game))
}

func (that *handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		that.respondError(w, "Analyze", err)
		return
	}

	analysis, err := that.gameUseCase.Analyze(r.Context(), req.Board)
	if err != nil {
		that.respondError(w, "Analyze", err)
		return
	}

	respondJSON(w, http.StatusOK, analysis)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// keep the domain error when a mark failed to parse
		if errors.Is(err, apperror.ErrMalformedBoard) {
			return err
		}
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}

	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidAction),
		errors.Is(err, apperror.ErrMalformedBoard),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) respondError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		respondJSON(w, status, map[string]string{"error": http.StatusText(status)})
		return
	}

	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
