package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

type memoryMoveLog struct {
	mu      sync.RWMutex
	players []entity.Player
	moves   []entity.Move
}

// NewMemoryMoveLog - non-durable log for development and tests.
func NewMemoryMoveLog() MoveLog {
	return &memoryMoveLog{}
}

func (that *memoryMoveLog) AppendPlayer(ctx context.Context, player entity.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	for _, existing := range that.players {
		if existing.ID == player.ID {
			return fmt.Errorf("%w: player %d", apperror.ErrPlayerAlreadyJoined, player.ID)
		}
	}

	that.players = append(that.players, player)

	return nil
}

func (that *memoryMoveLog) AppendMove(ctx context.Context, move entity.Move) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.moves = append(that.moves, move)

	return nil
}

func (that *memoryMoveLog) ReadAllPlayers(ctx context.Context) ([]entity.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	players := slices.Clone(that.players)
	slices.SortFunc(players, func(a, b entity.Player) int { return a.ID - b.ID })

	return players, nil
}

func (that *memoryMoveLog) ReadAllMoves(ctx context.Context) ([]entity.Move, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	return slices.Clone(that.moves), nil
}

func (that *memoryMoveLog) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.players = nil
	that.moves = nil

	return nil
}
