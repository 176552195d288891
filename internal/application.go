package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-server/internal/config"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-server/internal/recovery"
	"github.com/rocketscienceinc/tictactoe-server/internal/repository"
	"github.com/rocketscienceinc/tictactoe-server/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-server/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-server/transport/rest"
	"github.com/rocketscienceinc/tictactoe-server/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// ReplayReport is what the replay command prints.
type ReplayReport struct {
	Status   entity.Status `json:"status"`
	Game     *entity.Game  `json:"game"`
	Applied  int           `json:"applied"`
	Rejected int           `json:"rejected"`
}

// RunApp - restores the game from the move log, then serves HTTP until ctx is cancelled or a
// termination signal arrives.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	moveLog, closeLog, err := OpenMoveLog(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not open move log: %w", err)
	}

	defer func() {
		if err = closeLog(); err != nil {
			log.Error("could not close move log", "error", err)
		}
	}()

	// the game must be rebuilt before any endpoint is reachable
	game := recovery.Restore(ctx, logger, moveLog)

	hub := websocket.NewHub(logger)
	defer hub.Close()

	manager := usecase.NewGameManager(logger, moveLog, hub, game)
	server := rest.NewServer(logger, manager, hub, conf.StaticDir)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage.Driver)
	if err = server.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// RunReplay - replays the configured move log offline and writes the report as JSON.
func RunReplay(ctx context.Context, conf *config.Config, out io.Writer) error {
	moveLog, closeLog, err := OpenMoveLog(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not open move log: %w", err)
	}
	defer func() { _ = closeLog() }()

	result, err := recovery.Load(ctx, moveLog)
	if err != nil {
		return fmt.Errorf("could not replay move log: %w", err)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	return encoder.Encode(ReplayReport{
		Status:   result.Game.Status(),
		Game:     result.Game,
		Applied:  result.Applied,
		Rejected: result.Rejected,
	})
}

// OpenMoveLog - builds the move log selected by conf.Storage.Driver. The returned func releases
// the underlying connection.
func OpenMoveLog(ctx context.Context, conf *config.Config) (repository.MoveLog, func() error, error) {
	switch conf.Storage.Driver {
	case config.DriverSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteMoveLog(sqliteStorage.Connection), sqliteStorage.Close, nil

	case config.DriverRedis:
		if conf.Redis.Host == "" || conf.Redis.Port == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.Host, conf.Redis.Port)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisMoveLog(redisStorage.Connection, conf.Redis.KeyPrefix), redisStorage.Close, nil

	case config.DriverMemory:
		return repository.NewMemoryMoveLog(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, conf.Storage.Driver)
	}
}
