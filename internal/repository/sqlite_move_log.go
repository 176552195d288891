package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

type sqliteMoveLog struct {
	db *sql.DB
}

// NewSQLiteMoveLog expects the players and moves tables to exist (see storage.Storage.Init).
func NewSQLiteMoveLog(db *sql.DB) MoveLog {
	return &sqliteMoveLog{db: db}
}

func (that *sqliteMoveLog) AppendPlayer(ctx context.Context, player entity.Player) error {
	query := `INSERT INTO players (player_id, mark) VALUES (?, ?)`

	_, err := that.db.ExecContext(ctx, query, player.ID, string(player.Mark))
	if isPrimaryKeyViolation(err) {
		return fmt.Errorf("%w: player %d", apperror.ErrPlayerAlreadyJoined, player.ID)
	}

	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}

	return nil
}

func (that *sqliteMoveLog) AppendMove(ctx context.Context, move entity.Move) error {
	query := `INSERT INTO moves (player_id, move_row, move_col) VALUES (?, ?, ?)`

	if _, err := that.db.ExecContext(ctx, query, move.PlayerID, move.Row, move.Col); err != nil {
		return fmt.Errorf("failed to insert move: %w", err)
	}

	return nil
}

func (that *sqliteMoveLog) ReadAllPlayers(ctx context.Context) ([]entity.Player, error) {
	query := `SELECT player_id, mark FROM players ORDER BY player_id`

	rows, err := that.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []entity.Player
	for rows.Next() {
		var (
			player entity.Player
			mark   string
		)

		if err = rows.Scan(&player.ID, &mark); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}

		player.Mark = entity.Mark(mark)
		players = append(players, player)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}

	return players, nil
}

func (that *sqliteMoveLog) ReadAllMoves(ctx context.Context) ([]entity.Move, error) {
	query := `SELECT player_id, move_row, move_col FROM moves ORDER BY seq`

	rows, err := that.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves: %w", err)
	}
	defer rows.Close()

	var moves []entity.Move
	for rows.Next() {
		var move entity.Move
		if err = rows.Scan(&move.PlayerID, &move.Row, &move.Col); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}

		moves = append(moves, move)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate moves: %w", err)
	}

	return moves, nil
}

func (that *sqliteMoveLog) Reset(ctx context.Context) error {
	tx, err := that.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, query := range []string{`DELETE FROM moves`, `DELETE FROM players`} {
		if _, err = tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to reset move log: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}

	return nil
}

func isPrimaryKeyViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	default:
		return false
	}
}
