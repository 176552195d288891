package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	// registers the pure-Go "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// every committed append must survive a process crash, hence synchronous(FULL).
const sqlitePragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)"

type Storage struct {
	Connection *sql.DB
}

func NewSQLiteStorage(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("can't open database: empty path")
	}

	conn, err := sql.Open("sqlite", filepath.Clean(path)+sqlitePragmas)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	// single writer; also keeps in-memory databases on one connection
	conn.SetMaxOpenConns(1)

	if err = conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

func (that *Storage) Init(ctx context.Context) error {
	_, err := that.Connection.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("can't create tables: %w", err)
	}

	return nil
}

func (that *Storage) Close() error {
	return that.Connection.Close()
}
