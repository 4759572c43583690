package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS game_record (
	game_record_id	TEXT	PRIMARY KEY,
	player			TEXT	NOT NULL,
	width			INTEGER	NOT NULL,
	height			INTEGER	NOT NULL,
	mine_count		INTEGER	NOT NULL,
	won				INTEGER	NOT NULL,
	started_at		INTEGER	NOT NULL,
	ended_at		INTEGER	NOT NULL,
	playtime_ms		INTEGER	NOT NULL
);
CREATE INDEX IF NOT EXISTS game_record_params_idx
	ON game_record (width, height, mine_count, playtime_ms);`

// SQLite keeps records in a local file. Times are stored as unix
// milliseconds.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create directory for %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to create schema: %w", err)
	}
	return &SQLite{db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Save(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO game_record (
			game_record_id, player, width, height, mine_count,
			won, started_at, ended_at, playtime_ms
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		r.ID.String(), r.Player, r.Width, r.Height, r.MineCount,
		r.Won, r.StartedAt.UnixMilli(), r.EndedAt.UnixMilli(), r.Playtime().Milliseconds(),
	)
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %s", ErrDuplicate, r.ID)
	}
	return err
}

func (s *SQLite) Highscores(ctx context.Context, f Filter) ([]Highscore, error) {
	conds := f.conditions()
	clauses := make([]string, len(conds))
	args := make([]any, 0, len(conds)+1)
	for i, c := range conds {
		clauses[i] = c.column + " = ?"
		args = append(args, c.value)
	}
	args = append(args, f.limit())

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT
			game_record_id, player, width, height, mine_count,
			playtime_ms, ended_at
		FROM game_record
		WHERE `+strings.Join(clauses, " AND ")+`
		ORDER BY playtime_ms, ended_at
		LIMIT ?;`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []Highscore
	for rows.Next() {
		var (
			h       Highscore
			endedAt int64
		)
		if err := rows.Scan(
			&h.ID, &h.Player, &h.Width, &h.Height, &h.MineCount,
			&h.PlaytimeMs, &endedAt,
		); err != nil {
			return nil, err
		}
		h.EndedAt = time.UnixMilli(endedAt)
		scores = append(scores, h)
	}
	return scores, rows.Err()
}
