package repository

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

// MoveLog is the durable, append-only record a Game can be rebuilt from.
// Appends return only once the record is durable; a record is either fully visible or absent.
type MoveLog interface {
	AppendPlayer(ctx context.Context, player entity.Player) error
	AppendMove(ctx context.Context, move entity.Move) error
	// ReadAllPlayers returns players ordered by id.
	ReadAllPlayers(ctx context.Context) ([]entity.Player, error)
	// ReadAllMoves returns moves in acceptance order.
	ReadAllMoves(ctx context.Context) ([]entity.Move, error)
	// Reset drops players and moves as one unit.
	Reset(ctx context.Context) error
}
