package application

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-server/internal/config"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		LogLevel: "info",
		HTTPPort: "0",
		Storage: config.Storage{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "tictactoe.db"),
		},
	}
}

func TestOpenMoveLog(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		moveLog, closeLog, err := OpenMoveLog(ctx, &config.Config{Storage: config.Storage{Driver: config.DriverMemory}})

		require.NoError(t, err)
		require.NotNil(t, moveLog)
		assert.NoError(t, closeLog())
	})

	t.Run("Unknown driver", func(t *testing.T) {
		_, _, err := OpenMoveLog(ctx, &config.Config{Storage: config.Storage{Driver: "tape"}})

		assert.ErrorIs(t, err, config.ErrUnknownStorageDriver)
	})

	t.Run("Redis without address", func(t *testing.T) {
		_, _, err := OpenMoveLog(ctx, &config.Config{Storage: config.Storage{Driver: config.DriverRedis}})

		assert.ErrorIs(t, err, ErrAddrNotFound)
	})
}

func TestRunReplay(t *testing.T) {
	// Given: a sqlite log left behind by a previous process
	ctx := context.Background()
	conf := sqliteConfig(t)

	moveLog, closeLog, err := OpenMoveLog(ctx, conf)
	require.NoError(t, err)
	require.NoError(t, moveLog.AppendPlayer(ctx, entity.Player{ID: 1, Mark: entity.MarkO}))
	require.NoError(t, moveLog.AppendPlayer(ctx, entity.Player{ID: 2, Mark: entity.MarkX}))
	require.NoError(t, moveLog.AppendMove(ctx, entity.NewMove(1, 0, 0)))
	require.NoError(t, moveLog.AppendMove(ctx, entity.NewMove(2, 2, 2)))
	require.NoError(t, closeLog())

	// When: replaying it offline
	var out bytes.Buffer
	require.NoError(t, RunReplay(ctx, conf, &out))

	// Then: the report reflects the logged game
	var report ReplayReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))

	assert.Equal(t, entity.StatusInProgress, report.Status)
	assert.Equal(t, 2, report.Applied)
	assert.Zero(t, report.Rejected)
	assert.Equal(t, entity.MarkO, report.Game.Board[0][0])
	assert.Equal(t, entity.MarkX, report.Game.Board[2][2])
	assert.Equal(t, entity.PlayerOneID, report.Game.Turn)
}

func TestRunApp_StopsOnCancel(t *testing.T) {
	// Given: an app on an ephemeral port
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- RunApp(ctx, logger, sqliteConfig(t))
	}()

	// When: the context is cancelled
	time.Sleep(100 * time.Millisecond)
	cancel()

	// Then: it shuts down cleanly
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop")
	}
}
