package apperror

import "errors"

var (
	ErrInvalidAction    = errors.New("invalid action")
	ErrMalformedBoard   = errors.New("malformed board")
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrGameNotFound     = errors.New("game not found")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrInvalidMark      = errors.New("mark must be X or O")
	ErrConcurrentUpdate = errors.New("game was changed concurrently, retry")
)
