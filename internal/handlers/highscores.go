package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-cli/internal/config"
	"github.com/vancomm/minesweeper-cli/internal/mines"
	"github.com/vancomm/minesweeper-cli/internal/repository"
)

const maxHighscoreLimit = 100

var ErrPartialConfig = errors.New("width, height and mine_count must be given together")

type HighscoreQuery struct {
	Player    string `schema:"player"`
	Preset    string `schema:"preset"`
	Width     *int   `schema:"width"`
	Height    *int   `schema:"height"`
	MineCount *int   `schema:"mine_count"`
	Limit     int    `schema:"limit"`
}

func ParseHighscoreQuery(src map[string][]string) (HighscoreQuery, error) {
	var q HighscoreQuery
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&q, src)
	return q, err
}

// Filter resolves the query into a store filter. A preset name takes
// precedence over explicit dimensions.
func (q HighscoreQuery) Filter(presets *config.Presets) (repository.Filter, error) {
	f := repository.Filter{Limit: min(q.Limit, maxHighscoreLimit)}
	if q.Player != "" {
		f.Player = &q.Player
	}

	switch {
	case q.Preset != "":
		cfg, err := presets.Get(q.Preset)
		if err != nil {
			return f, err
		}
		f.Config = &cfg
	case q.Width != nil || q.Height != nil || q.MineCount != nil:
		if q.Width == nil || q.Height == nil || q.MineCount == nil {
			return f, ErrPartialConfig
		}
		cfg := mines.Config{Width: *q.Width, Height: *q.Height, MineCount: *q.MineCount}
		if err := cfg.Validate(); err != nil {
			return f, err
		}
		f.Config = &cfg
	}
	return f, nil
}

type HighscoreHandler struct {
	logger  logrus.FieldLogger
	store   repository.Store
	presets *config.Presets
}

func NewHighscoreHandler(
	logger logrus.FieldLogger,
	store repository.Store,
	presets *config.Presets,
) *HighscoreHandler {
	return &HighscoreHandler{
		logger:  logger,
		store:   store,
		presets: presets,
	}
}

func (h HighscoreHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	q, err := ParseHighscoreQuery(r.URL.Query())
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	filter, err := q.Filter(h.presets)
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	scores, err := h.store.Highscores(r.Context(), filter)
	if err != nil {
		h.logger.WithError(err).WithField("query", q).Error("failed to fetch highscores")
		sendError(w, h.logger, http.StatusInternalServerError, errors.New("failed to fetch highscores"))
		return
	}
	if scores == nil {
		scores = []repository.Highscore{}
	}

	sendJSONOrLog(w, h.logger, scores)
}
