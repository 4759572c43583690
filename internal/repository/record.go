package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

var ErrDuplicate = errors.New("record already exists")

// Record is the outcome of a finished game. The board itself is not kept.
type Record struct {
	ID        uuid.UUID
	Player    string
	Width     int
	Height    int
	MineCount int
	Won       bool
	StartedAt time.Time
	EndedAt   time.Time
}

func NewRecord(g *mines.Game, player string) (Record, error) {
	if !g.State().Over() {
		return Record{}, fmt.Errorf("game is %s, not over", g.State())
	}
	cfg := g.Config()
	return Record{
		ID:        uuid.New(),
		Player:    player,
		Width:     cfg.Width,
		Height:    cfg.Height,
		MineCount: cfg.MineCount,
		Won:       g.State() == mines.Won,
		StartedAt: g.StartedAt(),
		EndedAt:   g.EndedAt(),
	}, nil
}

func (r Record) Playtime() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

type Highscore struct {
	ID         string    `json:"game_record_id" db:"game_record_id"`
	Player     string    `json:"player" db:"player"`
	Width      int       `json:"width" db:"width"`
	Height     int       `json:"height" db:"height"`
	MineCount  int       `json:"mine_count" db:"mine_count"`
	PlaytimeMs int64     `json:"playtime_ms" db:"playtime_ms"`
	EndedAt    time.Time `json:"ended_at" db:"ended_at"`
}

type Filter struct {
	Player *string
	Config *mines.Config
	Limit  int
}

type condition struct {
	column string
	value  any
}

func (f Filter) conditions() []condition {
	conds := []condition{{"won", true}}
	if f.Player != nil {
		conds = append(conds, condition{"player", *f.Player})
	}
	if f.Config != nil {
		conds = append(conds,
			condition{"width", f.Config.Width},
			condition{"height", f.Config.Height},
			condition{"mine_count", f.Config.MineCount},
		)
	}
	return conds
}

func (f Filter) limit() int {
	if f.Limit <= 0 {
		return 10
	}
	return f.Limit
}

type Store interface {
	Save(ctx context.Context, r Record) error
	Highscores(ctx context.Context, f Filter) ([]Highscore, error)
	Close() error
}
