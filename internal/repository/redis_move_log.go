package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

type redisMoveLog struct {
	client     *redis.Client
	playersKey string
	movesKey   string
}

// NewRedisMoveLog keeps players in the hash "<prefix>players" and moves in the list "<prefix>moves".
func NewRedisMoveLog(client *redis.Client, keyPrefix string) MoveLog {
	return &redisMoveLog{
		client:     client,
		playersKey: keyPrefix + "players",
		movesKey:   keyPrefix + "moves",
	}
}

func (that *redisMoveLog) AppendPlayer(ctx context.Context, player entity.Player) error {
	added, err := that.client.HSetNX(ctx, that.playersKey, strconv.Itoa(player.ID), string(player.Mark)).Result()
	if err != nil {
		return fmt.Errorf("failed to set player: %w", err)
	}

	if !added {
		return fmt.Errorf("%w: player %d", apperror.ErrPlayerAlreadyJoined, player.ID)
	}

	return nil
}

func (that *redisMoveLog) AppendMove(ctx context.Context, move entity.Move) error {
	moveJSON, err := json.Marshal(move)
	if err != nil {
		return fmt.Errorf("failed to marshal move: %w", err)
	}

	if err = that.client.RPush(ctx, that.movesKey, moveJSON).Err(); err != nil {
		return fmt.Errorf("failed to push move: %w", err)
	}

	return nil
}

func (that *redisMoveLog) ReadAllPlayers(ctx context.Context) ([]entity.Player, error) {
	response, err := that.client.HGetAll(ctx, that.playersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	players := make([]entity.Player, 0, len(response))
	for field, mark := range response {
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%w: player id %q", apperror.ErrInconsistentLog, field)
		}

		players = append(players, entity.Player{ID: id, Mark: entity.Mark(mark)})
	}

	slices.SortFunc(players, func(a, b entity.Player) int { return a.ID - b.ID })

	return players, nil
}

func (that *redisMoveLog) ReadAllMoves(ctx context.Context) ([]entity.Move, error) {
	response, err := that.client.LRange(ctx, that.movesKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}

	moves := make([]entity.Move, 0, len(response))
	for _, raw := range response {
		var move entity.Move
		if err = json.Unmarshal([]byte(raw), &move); err != nil {
			return nil, fmt.Errorf("failed to unmarshal move: %w", err)
		}

		moves = append(moves, move)
	}

	return moves, nil
}

func (that *redisMoveLog) Reset(ctx context.Context) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, that.playersKey, that.movesKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reset move log: %w", err)
	}

	return nil
}
