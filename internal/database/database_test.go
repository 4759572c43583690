package database

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-cli/internal/mines"
	"github.com/vancomm/minesweeper-cli/internal/repository"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func roundTrip(t *testing.T, store repository.Store) {
	ctx := context.Background()
	start := time.Now().Add(-time.Minute).Truncate(time.Millisecond)
	r := repository.Record{
		ID:        uuid.New(),
		Player:    "dave-" + uuid.NewString()[:8],
		Width:     9,
		Height:    9,
		MineCount: 10,
		Won:       true,
		StartedAt: start,
		EndedAt:   start.Add(42 * time.Second),
	}
	require.NoError(t, store.Save(ctx, r))

	scores, err := store.Highscores(ctx, repository.Filter{
		Player: &r.Player,
		Config: &mines.Config{Width: 9, Height: 9, MineCount: 10},
	})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, r.ID.String(), scores[0].ID)
	assert.Equal(t, int64(42000), scores[0].PlaytimeMs)
}

func TestOpenSQLite(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	t.Setenv("POSTGRES_HOST", "")
	os.Unsetenv("POSTGRES_HOST")

	path := filepath.Join(t.TempDir(), "records.db")
	store, err := Open(context.Background(), quietLogger(), path)
	require.NoError(t, err)
	defer store.Close()

	_, isSQLite := store.(*repository.SQLite)
	assert.True(t, isSQLite)
	roundTrip(t, store)
}

func TestOpenPostgres(t *testing.T) {
	dbURL, ok := os.LookupEnv("TEST_DATABASE_URL")
	if !ok || testing.Short() {
		t.Skip("TEST_DATABASE_URL not set")
	}
	t.Setenv("DATABASE_URL", dbURL)

	store, err := Open(context.Background(), quietLogger(), "")
	require.NoError(t, err)
	defer store.Close()

	_, isPostgres := store.(*repository.Postgres)
	assert.True(t, isPostgres)
	roundTrip(t, store)
}
