package recovery

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-server/internal/repository"
	"github.com/rocketscienceinc/tictactoe-server/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	playersXO = []entity.Player{
		{ID: entity.PlayerOneID, Mark: entity.MarkX},
		{ID: entity.PlayerTwoID, Mark: entity.MarkO},
	}
	threeMoves = []entity.Move{
		entity.NewMove(entity.PlayerOneID, 0, 0),
		entity.NewMove(entity.PlayerTwoID, 1, 1),
		entity.NewMove(entity.PlayerOneID, 2, 2),
	}
)

type failingReader struct{}

func (failingReader) ReadAllPlayers(context.Context) ([]entity.Player, error) {
	return nil, errors.New("disk on fire")
}

func (failingReader) ReadAllMoves(context.Context) ([]entity.Move, error) {
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func liveGame(t *testing.T, players []entity.Player, moves []entity.Move) *entity.Game {
	t.Helper()

	game := entity.NewGame()
	_, err := game.RegisterPlayer1(players[0].Mark)
	require.NoError(t, err)
	_, err = game.RegisterPlayer2()
	require.NoError(t, err)

	for _, move := range moves {
		_, err = game.SubmitMove(move)
		require.NoError(t, err)
	}

	return game
}

func TestReplay(t *testing.T) {
	t.Run("Empty log yields a fresh game", func(t *testing.T) {
		result, err := Replay(nil, nil)

		require.NoError(t, err)
		assert.Equal(t, entity.NewGame(), result.Game)
		assert.Zero(t, result.Applied)
	})

	t.Run("Player 1 only waits for player 2", func(t *testing.T) {
		result, err := Replay(playersXO[:1], nil)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusWaitingForPlayer2, result.Game.Status())
		assert.Equal(t, entity.MarkX, result.Game.Player1.Mark)
	})

	t.Run("Rebuilds the exact pre-crash state", func(t *testing.T) {
		// Given: the game as it was in memory before the crash
		before := liveGame(t, playersXO, threeMoves)

		// When: replaying the same records
		result, err := Replay(playersXO, threeMoves)

		// Then: marks, turn and board match
		require.NoError(t, err)
		assert.Equal(t, before, result.Game)
		assert.Equal(t, entity.PlayerTwoID, result.Game.Turn)
		assert.Equal(t, 3, result.Applied)
		assert.Zero(t, result.Rejected)
	})

	t.Run("Persisted marks are restored, not re-derived", func(t *testing.T) {
		players := []entity.Player{
			{ID: entity.PlayerOneID, Mark: entity.MarkO},
			{ID: entity.PlayerTwoID, Mark: entity.MarkX},
		}

		result, err := Replay(players, nil)

		require.NoError(t, err)
		assert.Equal(t, players[0], *result.Game.Player1)
		assert.Equal(t, players[1], *result.Game.Player2)
		assert.True(t, result.Game.Started)
	})

	t.Run("Is idempotent", func(t *testing.T) {
		first, err := Replay(playersXO, threeMoves)
		require.NoError(t, err)

		second, err := Replay(playersXO, threeMoves)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Trailing moves after a win are rejected, not fatal", func(t *testing.T) {
		// Given: a winning sequence followed by a stray move
		moves := []entity.Move{
			entity.NewMove(entity.PlayerOneID, 0, 0), entity.NewMove(entity.PlayerTwoID, 0, 1),
			entity.NewMove(entity.PlayerOneID, 1, 0), entity.NewMove(entity.PlayerTwoID, 1, 1),
			entity.NewMove(entity.PlayerOneID, 2, 0),
			entity.NewMove(entity.PlayerTwoID, 2, 2),
		}

		// When: replaying
		result, err := Replay(playersXO, moves)

		// Then: the win stands and the trailing move is counted
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerOneID, result.Game.Winner)
		assert.Equal(t, 5, result.Applied)
		assert.Equal(t, 1, result.Rejected)
		assert.Equal(t, entity.EmptyCell, result.Game.Board[2][2])
	})

	t.Run("Moves without players are rejected", func(t *testing.T) {
		result, err := Replay(nil, threeMoves)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Rejected)
		assert.True(t, result.Game.Board.IsEmpty())
	})
}

func TestReplay_InconsistentPlayers(t *testing.T) {
	tests := []struct {
		name    string
		players []entity.Player
	}{
		{"player 2 without player 1", []entity.Player{{ID: entity.PlayerTwoID, Mark: entity.MarkO}}},
		{"same mark twice", []entity.Player{
			{ID: entity.PlayerOneID, Mark: entity.MarkX},
			{ID: entity.PlayerTwoID, Mark: entity.MarkX},
		}},
		{"unknown id", []entity.Player{{ID: 7, Mark: entity.MarkX}}},
		{"duplicate id", []entity.Player{
			{ID: entity.PlayerOneID, Mark: entity.MarkX},
			{ID: entity.PlayerOneID, Mark: entity.MarkO},
		}},
		{"invalid mark", []entity.Player{{ID: entity.PlayerOneID, Mark: entity.Mark("?")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Replay(tt.players, nil)

			assert.ErrorIs(t, err, apperror.ErrInconsistentLog)
		})
	}
}

func TestRestore(t *testing.T) {
	t.Run("Falls back to a fresh game on read failure", func(t *testing.T) {
		game := Restore(context.Background(), testLogger(), failingReader{})

		assert.Equal(t, entity.NewGame(), game)
	})

	t.Run("Falls back to a fresh game on inconsistent players", func(t *testing.T) {
		// Given: a log holding player 2 only
		ctx := context.Background()
		moveLog := repository.NewMemoryMoveLog()
		require.NoError(t, moveLog.AppendPlayer(ctx, entity.Player{ID: entity.PlayerTwoID, Mark: entity.MarkO}))

		// When: restoring
		game := Restore(ctx, testLogger(), moveLog)

		// Then: the server starts clean
		assert.Equal(t, entity.StatusNotStarted, game.Status())
	})

	t.Run("Rebuilds the game after a simulated crash", func(t *testing.T) {
		// Given: a sqlite log written by the previous process
		ctx, st := suite.NewSQLite(t)
		moveLog := repository.NewSQLiteMoveLog(st.Storage)
		for _, player := range playersXO {
			require.NoError(t, moveLog.AppendPlayer(ctx, player))
		}
		for _, move := range threeMoves {
			require.NoError(t, moveLog.AppendMove(ctx, move))
		}
		before := liveGame(t, playersXO, threeMoves)

		// When: a new process reopens the file and restores
		reopened := repository.NewSQLiteMoveLog(suite.OpenSQLite(ctx, t, st.Path))
		game := Restore(ctx, st.Logger, reopened)

		// Then: the state is identical
		assert.Equal(t, before, game)
	})
}
