package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
)

type Status string

const (
	StatusNotStarted        Status = "not_started"
	StatusWaitingForPlayer2 Status = "waiting_for_player2"
	StatusInProgress        Status = "in_progress"
	StatusWon               Status = "won"
	StatusDrawn             Status = "drawn"
)

const NoWinner = 0

type MoveOutcome int

const (
	InvalidMove MoveOutcome = iota
	ValidMoveContinue
	ValidMoveGameWon
	ValidMoveGameDrawn
)

func (that MoveOutcome) String() string {
	switch that {
	case ValidMoveContinue:
		return "VALID_MOVE_CONTINUE"
	case ValidMoveGameWon:
		return "VALID_MOVE_GAME_WON"
	case ValidMoveGameDrawn:
		return "VALID_MOVE_GAME_DRAWN"
	default:
		return "INVALID_MOVE"
	}
}

// IsAccepted - true for every outcome that must be appended to the move log.
func (that MoveOutcome) IsAccepted() bool {
	return that != InvalidMove
}

// Game is the authoritative turn-based state machine for a single match.
type Game struct {
	Player1 *Player `json:"p1"`
	Player2 *Player `json:"p2"`
	Started bool    `json:"gameStarted"`
	Turn    int     `json:"turn"`
	Board   Board   `json:"boardState"`
	Winner  int     `json:"winner"`
	IsDraw  bool    `json:"isDraw"`
}

func NewGame() *Game {
	return &Game{
		Turn:   PlayerOneID,
		Winner: NoWinner,
	}
}

func (that *Game) Status() Status {
	switch {
	case that.Winner != NoWinner:
		return StatusWon
	case that.IsDraw:
		return StatusDrawn
	case that.Started:
		return StatusInProgress
	case that.Player1 != nil:
		return StatusWaitingForPlayer2
	default:
		return StatusNotStarted
	}
}

func (that *Game) IsFinished() bool {
	return that.Winner != NoWinner || that.IsDraw
}

// RegisterPlayer1 - assigns id 1 with the chosen mark. Does not start the game.
func (that *Game) RegisterPlayer1(mark Mark) (Player, error) {
	if !mark.IsValid() {
		return Player{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if that.Player1 != nil {
		return Player{}, fmt.Errorf("%w: player %d", apperror.ErrPlayerAlreadyJoined, PlayerOneID)
	}

	player := Player{ID: PlayerOneID, Mark: mark}
	that.Player1 = &player

	return player, nil
}

// RegisterPlayer2 - assigns id 2 with the mark opposite to player 1 and starts the game.
func (that *Game) RegisterPlayer2() (Player, error) {
	if that.Player1 == nil {
		return Player{}, apperror.ErrPlayerOneMissing
	}

	return that.RestorePlayer2(that.Player1.Mark.Opposite())
}

// RestorePlayer2 - registers player 2 with a persisted mark, which must differ from player 1's.
func (that *Game) RestorePlayer2(mark Mark) (Player, error) {
	if that.Player1 == nil {
		return Player{}, apperror.ErrPlayerOneMissing
	}

	if that.Player2 != nil {
		return Player{}, fmt.Errorf("%w: player %d", apperror.ErrPlayerAlreadyJoined, PlayerTwoID)
	}

	if !mark.IsValid() {
		return Player{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if mark == that.Player1.Mark {
		return Player{}, fmt.Errorf("%w: both players use %q", apperror.ErrMarkConflict, mark)
	}

	player := Player{ID: PlayerTwoID, Mark: mark}
	that.Player2 = &player
	that.Started = true
	that.Turn = PlayerOneID

	return player, nil
}

// SubmitMove - validates and applies a move. A non-nil error always comes with InvalidMove
// and names the rejection reason; the game is left untouched in that case.
func (that *Game) SubmitMove(move Move) (MoveOutcome, error) {
	if !InBounds(move.Row, move.Col) {
		return InvalidMove, fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, move.Row, move.Col)
	}

	if !IsPlayerID(move.PlayerID) {
		return InvalidMove, fmt.Errorf("%w: %d", apperror.ErrUnknownPlayer, move.PlayerID)
	}

	if err := that.confirmStarted(); err != nil {
		return InvalidMove, err
	}

	if that.Turn != move.PlayerID {
		return InvalidMove, apperror.ErrNotYourTurn
	}

	if that.Board.IsOccupied(move.Row, move.Col) {
		return InvalidMove, fmt.Errorf("%w: row %d col %d", apperror.ErrCellOccupied, move.Row, move.Col)
	}

	mover := that.playerByID(move.PlayerID)
	if err := that.Board.PlaceMark(move.Row, move.Col, mover.Mark); err != nil {
		return InvalidMove, fmt.Errorf("failed to place mark: %w", err)
	}

	that.Turn = OtherPlayerID(move.PlayerID)

	// only the mover can have completed a line
	if that.Board.HasLine(mover.Mark) {
		that.Winner = mover.ID
		that.Started = false
		return ValidMoveGameWon, nil
	}

	if that.Board.IsFull() {
		that.IsDraw = true
		that.Started = false
		return ValidMoveGameDrawn, nil
	}

	return ValidMoveContinue, nil
}

// PlayerWonGame - true iff one of the 8 lines is fully held by the player's mark.
func (that *Game) PlayerWonGame(player *Player) bool {
	if player == nil {
		return false
	}

	return that.Board.HasLine(player.Mark)
}

// IsGameDraw - no winner, a full board, and a game that was actually played.
func (that *Game) IsGameDraw() bool {
	if that.IsDraw {
		return true
	}

	return that.Winner == NoWinner && that.Started && that.Board.IsFull()
}

// Clone - deep copy; players are copied so the clone shares no pointers.
func (that *Game) Clone() *Game {
	clone := *that

	if that.Player1 != nil {
		player := *that.Player1
		clone.Player1 = &player
	}

	if that.Player2 != nil {
		player := *that.Player2
		clone.Player2 = &player
	}

	return &clone
}

func (that *Game) confirmStarted() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case !that.Started:
		return apperror.ErrGameIsNotStarted
	default:
		return nil
	}
}

func (that *Game) playerByID(id int) *Player {
	switch id {
	case PlayerOneID:
		return that.Player1
	case PlayerTwoID:
		return that.Player2
	default:
		return nil
	}
}
