package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-cli/internal/config"
	"github.com/vancomm/minesweeper-cli/internal/mines"
	"github.com/vancomm/minesweeper-cli/internal/repository"
)

type fakeStore struct {
	filter repository.Filter
	scores []repository.Highscore
	err    error
}

func (s *fakeStore) Save(context.Context, repository.Record) error { return nil }
func (s *fakeStore) Close() error                                  { return nil }

func (s *fakeStore) Highscores(_ context.Context, f repository.Filter) ([]repository.Highscore, error) {
	s.filter = f
	return s.scores, s.err
}

func testPresets() *config.Presets {
	return &config.Presets{
		Default: "beginner",
		Presets: map[string]mines.Config{
			"beginner": {Width: 9, Height: 9, MineCount: 10},
		},
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func intp(v int) *int { return &v }

func TestHighscoreQueryFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   HighscoreQuery
		want    *mines.Config
		player  string
		limit   int
		wantErr bool
	}{
		{name: "empty", query: HighscoreQuery{}},
		{
			name:   "player and limit",
			query:  HighscoreQuery{Player: "alice", Limit: 5},
			player: "alice",
			limit:  5,
		},
		{
			name:  "limit capped",
			query: HighscoreQuery{Limit: 1000},
			limit: maxHighscoreLimit,
		},
		{
			name:  "preset",
			query: HighscoreQuery{Preset: "Beginner"},
			want:  &mines.Config{Width: 9, Height: 9, MineCount: 10},
		},
		{
			name:  "dimensions",
			query: HighscoreQuery{Width: intp(16), Height: intp(16), MineCount: intp(40)},
			want:  &mines.Config{Width: 16, Height: 16, MineCount: 40},
		},
		{
			name:  "no mines",
			query: HighscoreQuery{Width: intp(4), Height: intp(4), MineCount: intp(0)},
			want:  &mines.Config{Width: 4, Height: 4, MineCount: 0},
		},
		{name: "unknown preset", query: HighscoreQuery{Preset: "insane"}, wantErr: true},
		{name: "partial", query: HighscoreQuery{Width: intp(16)}, wantErr: true},
		{name: "zero width", query: HighscoreQuery{Width: intp(0), Height: intp(4), MineCount: intp(0)}, wantErr: true},
		{name: "too many mines", query: HighscoreQuery{Width: intp(2), Height: intp(2), MineCount: intp(4)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f, err := tt.query.Filter(testPresets())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Config)
			assert.Equal(t, tt.limit, f.Limit)
			if tt.player == "" {
				assert.Nil(t, f.Player)
			} else {
				require.NotNil(t, f.Player)
				assert.Equal(t, tt.player, *f.Player)
			}
		})
	}
}

func TestFetchHighscores(t *testing.T) {
	store := &fakeStore{scores: []repository.Highscore{
		{ID: "a", Player: "alice", Width: 9, Height: 9, MineCount: 10, PlaytimeMs: 1234},
	}}
	h := NewHighscoreHandler(quietLogger(), store, testPresets())

	req := httptest.NewRequest(http.MethodGet, "/highscores?preset=beginner&player=alice&limit=3", nil)
	rec := httptest.NewRecorder()
	h.Fetch(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0]["player"])
	assert.EqualValues(t, 1234, got[0]["playtime_ms"])

	require.NotNil(t, store.filter.Config)
	assert.Equal(t, 9, store.filter.Config.Width)
	assert.Equal(t, 3, store.filter.Limit)
}

func TestFetchHighscoresZeroMines(t *testing.T) {
	store := &fakeStore{}
	h := NewHighscoreHandler(quietLogger(), store, testPresets())

	rec := httptest.NewRecorder()
	h.Fetch(rec, httptest.NewRequest(http.MethodGet, "/highscores?width=5&height=4&mine_count=0", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, store.filter.Config)
	assert.Equal(t, mines.Config{Width: 5, Height: 4, MineCount: 0}, *store.filter.Config)
}

func TestFetchHighscoresEmpty(t *testing.T) {
	h := NewHighscoreHandler(quietLogger(), &fakeStore{}, testPresets())

	rec := httptest.NewRecorder()
	h.Fetch(rec, httptest.NewRequest(http.MethodGet, "/highscores", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestFetchHighscoresErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		code   int
	}{
		{"bad number", "/highscores?width=abc", nil, http.StatusBadRequest},
		{"partial", "/highscores?width=9", nil, http.StatusBadRequest},
		{"store failure", "/highscores", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHighscoreHandler(quietLogger(), &fakeStore{err: tt.err}, testPresets())
			rec := httptest.NewRecorder()
			h.Fetch(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.code, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			assert.NotContains(t, body["error"], "boom")
		})
	}
}
