package recovery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

// Reader is the read side of the move log.
type Reader interface {
	ReadAllPlayers(ctx context.Context) ([]entity.Player, error)
	ReadAllMoves(ctx context.Context) ([]entity.Move, error)
}

type Result struct {
	Game     *entity.Game `json:"game"`
	Applied  int          `json:"applied"`
	Rejected int          `json:"rejected"`
}

// Replay rebuilds a Game from logged records. Players keep their persisted marks; moves go
// through Game.SubmitMove in log order, and moves the replayed game refuses are counted as rejected.
func Replay(players []entity.Player, moves []entity.Move) (*Result, error) {
	game := entity.NewGame()

	player1, player2, err := splitPlayers(players)
	if err != nil {
		return nil, err
	}

	if player1 != nil {
		if _, err = game.RegisterPlayer1(player1.Mark); err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrInconsistentLog, err)
		}
	}

	if player2 != nil {
		if _, err = game.RestorePlayer2(player2.Mark); err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrInconsistentLog, err)
		}
	}

	result := &Result{Game: game}
	for _, move := range moves {
		if _, err = game.SubmitMove(move); err != nil {
			result.Rejected++
			continue
		}

		result.Applied++
	}

	return result, nil
}

// Load reads the whole log and replays it.
func Load(ctx context.Context, reader Reader) (*Result, error) {
	players, err := reader.ReadAllPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read players: %w", err)
	}

	moves, err := reader.ReadAllMoves(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read moves: %w", err)
	}

	return Replay(players, moves)
}

// Restore never fails: an unreadable or inconsistent log yields a fresh game.
func Restore(ctx context.Context, logger *slog.Logger, reader Reader) *entity.Game {
	log := logger.With("method", "Restore")

	result, err := Load(ctx, reader)
	if err != nil {
		log.Error("failed to replay move log, starting a fresh game", "error", err)
		return entity.NewGame()
	}

	if result.Rejected > 0 {
		log.Warn("move log contains moves rejected on replay", "rejected", result.Rejected)
	}

	log.Info("game restored from move log",
		"status", result.Game.Status(),
		"applied", result.Applied,
		"rejected", result.Rejected,
	)

	return result.Game
}

func splitPlayers(players []entity.Player) (*entity.Player, *entity.Player, error) {
	var player1, player2 *entity.Player

	for i := range players {
		player := &players[i]

		switch player.ID {
		case entity.PlayerOneID:
			if player1 != nil {
				return nil, nil, fmt.Errorf("%w: duplicate player %d", apperror.ErrInconsistentLog, player.ID)
			}
			player1 = player
		case entity.PlayerTwoID:
			if player2 != nil {
				return nil, nil, fmt.Errorf("%w: duplicate player %d", apperror.ErrInconsistentLog, player.ID)
			}
			player2 = player
		default:
			return nil, nil, fmt.Errorf("%w: unknown player id %d", apperror.ErrInconsistentLog, player.ID)
		}
	}

	if player2 != nil && player1 == nil {
		return nil, nil, fmt.Errorf("%w: player 2 without player 1", apperror.ErrInconsistentLog)
	}

	return player1, player2, nil
}
