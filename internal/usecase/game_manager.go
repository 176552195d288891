package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

type moveLog interface {
	AppendPlayer(ctx context.Context, player entity.Player) error
	AppendMove(ctx context.Context, move entity.Move) error
	Reset(ctx context.Context) error
}

type notifier interface {
	Broadcast(game *entity.Game)
}

// GameManager owns the single live Game. Every mutation runs on a clone under the write lock
// and replaces the live Game only after the move log accepted the matching record, so the
// in-memory state never runs ahead of the log. Observers are notified before the lock is
// released, so they receive snapshots in commit order.
type GameManager struct {
	logger *slog.Logger

	mu   sync.RWMutex
	game *entity.Game

	moveLog  moveLog
	notifier notifier
}

func NewGameManager(logger *slog.Logger, moveLog moveLog, notifier notifier, game *entity.Game) *GameManager {
	if game == nil {
		game = entity.NewGame()
	}

	return &GameManager{
		logger: logger.With("component", "game_manager"),

		game: game,

		moveLog:  moveLog,
		notifier: notifier,
	}
}

// StartNewGame truncates the move log, then discards the live game.
func (that *GameManager) StartNewGame(ctx context.Context) error {
	log := that.logger.With("method", "StartNewGame")

	_, err := that.mutate(func(_ *entity.Game) (*entity.Game, error) {
		if err := that.moveLog.Reset(ctx); err != nil {
			return nil, fmt.Errorf("failed to reset move log: %w", err)
		}

		return entity.NewGame(), nil
	})
	if err != nil {
		log.Error("failed to start new game", "error", err)
		return err
	}

	log.Info("new game started")

	return nil
}

func (that *GameManager) JoinAsPlayer1(ctx context.Context, mark entity.Mark) (*entity.Game, error) {
	log := that.logger.With("method", "JoinAsPlayer1")

	snapshot, err := that.mutate(func(next *entity.Game) (*entity.Game, error) {
		player, err := next.RegisterPlayer1(mark)
		if err != nil {
			return nil, err
		}

		if err = that.moveLog.AppendPlayer(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to append player: %w", err)
		}

		return next, nil
	})
	if err != nil {
		log.Warn("player 1 could not join", "mark", mark, "error", err)
		return nil, err
	}

	log.Info("player 1 joined", "mark", mark)

	return snapshot, nil
}

func (that *GameManager) JoinAsPlayer2(ctx context.Context) (*entity.Game, error) {
	log := that.logger.With("method", "JoinAsPlayer2")

	snapshot, err := that.mutate(func(next *entity.Game) (*entity.Game, error) {
		player, err := next.RegisterPlayer2()
		if err != nil {
			return nil, err
		}

		if err = that.moveLog.AppendPlayer(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to append player: %w", err)
		}

		return next, nil
	})
	if err != nil {
		log.Warn("player 2 could not join", "error", err)
		return nil, err
	}

	log.Info("player 2 joined, game started", "mark", snapshot.Player2.Mark)

	return snapshot, nil
}

// SubmitMove - rejected moves yield the invalid-move Message and a nil error; a non-nil error
// means the accepted move could not be persisted and the game was left as it was.
func (that *GameManager) SubmitMove(ctx context.Context, playerID, row, col int) (entity.Message, error) {
	log := that.logger.With("method", "SubmitMove", "player_id", playerID, "row", row, "col", col)

	move := entity.NewMove(playerID, row, col)

	var (
		outcome   entity.MoveOutcome
		rejection error
	)

	_, err := that.mutate(func(next *entity.Game) (*entity.Game, error) {
		outcome, rejection = next.SubmitMove(move)
		if rejection != nil {
			return nil, rejection
		}

		if err := that.moveLog.AppendMove(ctx, move); err != nil {
			return nil, fmt.Errorf("failed to append move: %w", err)
		}

		return next, nil
	})

	if rejection != nil {
		log.Debug("move rejected", "reason", rejection)
		return entity.InvalidMoveMessage(), nil
	}

	if err != nil {
		log.Error("move accepted but not persisted", "error", err)
		return entity.Message{}, err
	}

	log.Debug("move accepted", "outcome", outcome)

	return entity.NewMessage(outcome), nil
}

// Snapshot returns a deep copy safe to read or encode without holding the lock.
func (that *GameManager) Snapshot() *entity.Game {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.game.Clone()
}

// mutate runs fn on a clone of the live game, installs fn's result only when fn succeeds and
// broadcasts it while still holding the lock. The notifier must not block.
func (that *GameManager) mutate(fn func(next *entity.Game) (*entity.Game, error)) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	next, err := fn(that.game.Clone())
	if err != nil {
		return nil, err
	}

	that.game = next

	if that.notifier != nil {
		that.notifier.Broadcast(next.Clone())
	}

	return next.Clone(), nil
}
