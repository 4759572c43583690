package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres expects the schema from the database migrations to be applied.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(ctx context.Context, dbURL string) (*Postgres, error) {
	dbconfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, err
	}

	db, err := pgxpool.NewWithConfig(ctx, dbconfig)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &Postgres{db}, nil
}

func (pg *Postgres) Close() error {
	pg.db.Close()
	return nil
}

func (pg *Postgres) Save(ctx context.Context, r Record) error {
	_, err := pg.db.Exec(
		ctx,
		`INSERT INTO game_record (
			game_record_id, player, width, height, mine_count,
			won, started_at, ended_at, playtime_ms
		)
		VALUES (
			@id, @player, @width, @height, @mine_count,
			@won, @started_at, @ended_at, @playtime_ms
		);`,
		pgx.NamedArgs{
			"id":          r.ID.String(),
			"player":      r.Player,
			"width":       r.Width,
			"height":      r.Height,
			"mine_count":  r.MineCount,
			"won":         r.Won,
			"started_at":  r.StartedAt,
			"ended_at":    r.EndedAt,
			"playtime_ms": r.Playtime().Milliseconds(),
		},
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return fmt.Errorf("%w: %s", ErrDuplicate, r.ID)
	}
	return err
}

func (f Filter) WhereClause() (string, pgx.NamedArgs) {
	conds := f.conditions()
	clauses := make([]string, len(conds))
	args := pgx.NamedArgs{}
	for i, c := range conds {
		clauses[i] = c.column + " = @" + c.column
		args[c.column] = c.value
	}
	return strings.Join(clauses, " AND "), args
}

func (pg *Postgres) Highscores(ctx context.Context, f Filter) ([]Highscore, error) {
	where, args := f.WhereClause()
	args["limit"] = f.limit()

	rows, err := pg.db.Query(
		ctx,
		`SELECT
			game_record_id::text AS game_record_id,
			player,
			width,
			height,
			mine_count,
			playtime_ms,
			ended_at
		FROM game_record
		WHERE `+where+`
		ORDER BY playtime_ms, ended_at
		LIMIT @limit;`,
		args,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
