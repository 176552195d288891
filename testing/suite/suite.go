package suite

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-server/internal/repository/storage"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

type SQLiteSuite struct {
	*testing.T
	Logger *slog.Logger

	Path    string
	Storage *sql.DB
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func newContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	return ctx
}

// New starts a throwaway Redis container. The test is skipped when docker is unreachable.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx := newContext(t)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not reachable: %v", err)
	}

	// pulls an image, creates a container based on it and runs it
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
		Env:        []string{},
	}, func(config *docker.HostConfig) {
		// set AutoRemove to true so that stopped container goes away by itself
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start resource: %v", err)
	}

	// never returns error
	_ = resource.Expire(expireDuration) // Tell docker to hard kill the container in 120 seconds

	redisHost := resource.GetHostPort(redisPort)

	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
	pool.MaxWait = maxWaitDuration

	var redisClient *redis.Client
	if err = pool.Retry(func() error {
		redisClient = redis.NewClient(&redis.Options{
			Addr: redisHost,
		})
		return redisClient.Ping(ctx).Err()
	}); err != nil {
		if err = pool.Purge(resource); err != nil {
			t.Fatalf("could not purge resource: %v", err)
		}

		t.Fatalf("could not connect to redis: %v", err)
	}

	if err = redisClient.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	t.Cleanup(func() {
		t.Helper()

		_ = redisClient.Close()

		if err = pool.Purge(resource); err != nil {
			t.Fatalf("could not purge resource: %v", err)
		}
	})

	return ctx, &Suite{
		T:       t,
		Logger:  newLogger(),
		Storage: redisClient,
	}
}

// NewSQLite opens an initialised database file inside t.TempDir().
func NewSQLite(t *testing.T) (context.Context, *SQLiteSuite) {
	t.Helper()

	ctx := newContext(t)
	path := filepath.Join(t.TempDir(), "tictactoe.db")

	db := OpenSQLite(ctx, t, path)

	return ctx, &SQLiteSuite{
		T:       t,
		Logger:  newLogger(),
		Path:    path,
		Storage: db,
	}
}

// OpenSQLite opens (or reopens) the database at path; used to simulate a process restart.
func OpenSQLite(ctx context.Context, t *testing.T, path string) *sql.DB {
	t.Helper()

	st, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("could not open sqlite: %v", err)
	}

	if err = st.Init(ctx); err != nil {
		t.Fatalf("could not init sqlite: %v", err)
	}

	t.Cleanup(func() {
		_ = st.Close()
	})

	return st.Connection
}
