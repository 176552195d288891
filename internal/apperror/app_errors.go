package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrUnknownPlayer    = errors.New("unknown player")

	ErrInvalidMark         = errors.New("invalid mark")
	ErrMarkConflict        = errors.New("players must use different marks")
	ErrPlayerAlreadyJoined = errors.New("player already joined")
	ErrPlayerOneMissing    = errors.New("player 1 has not joined yet")

	ErrInconsistentLog = errors.New("move log is inconsistent")
)
