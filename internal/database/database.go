package database

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-cli/internal/config"
	"github.com/vancomm/minesweeper-cli/internal/repository"
)

//go:embed migrations/*.sql
var migrations embed.FS

func Migrate(url string) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("unable to create migrations iofs: %w", err)
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return fmt.Errorf("unable to create migrator: %w", err)
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Open connects to Postgres when a database URL is configured and to the
// local SQLite file at sqlitePath otherwise. An empty sqlitePath uses
// config.RecordsPath.
func Open(ctx context.Context, logger *logrus.Logger, sqlitePath string) (repository.Store, error) {
	dbURL, ok, err := config.DatabaseURL()
	if err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	if ok {
		if err := Migrate(dbURL); err != nil {
			return nil, err
		}
		store, err := repository.NewPostgres(ctx, dbURL)
		if err != nil {
			return nil, err
		}
		logger.Debug("connected to postgres")
		return store, nil
	}

	if sqlitePath == "" {
		sqlitePath = config.RecordsPath()
	}
	store, err := repository.NewSQLite(sqlitePath)
	if err != nil {
		return nil, err
	}
	logger.WithField("path", sqlitePath).Debug("opened sqlite records")
	return store, nil
}
