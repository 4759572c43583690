package mines

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Config struct {
	Width     int `json:"width" yaml:"width"`
	Height    int `json:"height" yaml:"height"`
	MineCount int `json:"mine_count" yaml:"mines"`
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.MineCount < 0 || c.MineCount >= c.Width*c.Height {
		return fmt.Errorf(
			"%w: %d mines on a %dx%d grid",
			ErrInvalidConfiguration, c.MineCount, c.Width, c.Height,
		)
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("%dx%d(%d)", c.Width, c.Height, c.MineCount)
}

type State int

const (
	AwaitingFirstMove State = iota
	InProgress
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case AwaitingFirstMove:
		return "awaiting first move"
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

func (s State) Over() bool {
	return s == Won || s == Lost
}

type Outcome int

const (
	Continue Outcome = iota
	Victory
	Defeat
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Victory:
		return "won"
	case Defeat:
		return "lost"
	default:
		return "unknown"
	}
}

// Status is reported after every action. Detonated is only meaningful
// when Outcome is [Defeat].
type Status struct {
	Outcome   Outcome
	Detonated Point
}

type ActionKind int

const (
	Reveal ActionKind = iota
	ToggleFlag
	Unflag
)

func (k ActionKind) String() string {
	switch k {
	case Reveal:
		return "reveal"
	case ToggleFlag:
		return "flag"
	case Unflag:
		return "unflag"
	default:
		return "unknown"
	}
}

type Action struct {
	Kind ActionKind
	Row  int
	Col  int
}

func (a Action) Point() Point {
	return Point{Row: a.Row, Col: a.Col}
}

type Option func(*Game) error

// WithRand makes mine placement reproducible.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) error {
		g.rnd = r
		return nil
	}
}

// WithLayout fixes mine positions instead of placing them at random on the
// first reveal. The layout must hold exactly the configured mine count.
func WithLayout(mines []Point) Option {
	return func(g *Game) error {
		if len(mines) != g.mineCount {
			return fmt.Errorf(
				"%w: layout has %d mines, want %d",
				ErrInvalidConfiguration, len(mines), g.mineCount,
			)
		}
		g.layout = append([]Point(nil), mines...)
		return nil
	}
}

// Game is a single minesweeper session. It is not safe for concurrent use.
type Game struct {
	grid      Grid
	field     *MineField
	cells     *RevealState
	mineCount int
	state     State
	status    Status

	correctFlags int

	rnd    *rand.Rand
	layout []Point

	startedAt, endedAt time.Time
	now                func() time.Time
}

func NewGame(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	g := &Game{
		grid:      grid,
		field:     NewMineField(grid),
		cells:     NewRevealState(grid),
		mineCount: cfg.MineCount,
		now:       time.Now,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	if g.rnd == nil && g.layout == nil {
		g.rnd = newRand()
	}
	return g, nil
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (g *Game) Grid() Grid { return g.grid }
func (g *Game) State() State { return g.state }
func (g *Game) Status() Status { return g.status }
func (g *Game) MineCount() int { return g.mineCount }
func (g *Game) Flags() int { return g.cells.Flagged() }
func (g *Game) Hidden() int { return g.cells.Hidden() }
func (g *Game) Config() Config {
	return Config{Width: g.grid.Width(), Height: g.grid.Height(), MineCount: g.mineCount}
}

// StartedAt is the time of the first reveal; zero before it.
func (g *Game) StartedAt() time.Time { return g.startedAt }

// EndedAt is the time the game was won or lost; zero while it goes on.
func (g *Game) EndedAt() time.Time { return g.endedAt }

func (g *Game) Apply(a Action) (Status, error) {
	switch a.Kind {
	case Reveal:
		return g.Reveal(a.Point())
	case ToggleFlag:
		return g.ToggleFlag(a.Point())
	case Unflag:
		return g.Unflag(a.Point())
	default:
		return g.status, fmt.Errorf("unknown action kind %d", a.Kind)
	}
}

func (g *Game) check(p Point) error {
	if g.state.Over() {
		return ErrGameOver
	}
	if !g.grid.InBounds(p) {
		return fmt.Errorf("%w: %v on %v grid", ErrOutOfBounds, p, g.grid)
	}
	return nil
}

func (g *Game) Reveal(p Point) (Status, error) {
	if err := g.check(p); err != nil {
		return g.status, err
	}

	if g.state == AwaitingFirstMove {
		var err error
		if g.layout != nil {
			err = g.field.Plant(g.layout)
		} else {
			err = g.field.PlaceMines(p, g.mineCount, g.rnd)
		}
		if err != nil {
			return g.status, err
		}
		g.state = InProgress
		g.startedAt = g.now()
	}

	exploded, _ := g.cells.Reveal(p, g.field)
	if exploded {
		g.finish(Lost, Status{Outcome: Defeat, Detonated: p})
		return g.status, nil
	}
	g.evaluate()
	return g.status, nil
}

func (g *Game) ToggleFlag(p Point) (Status, error) {
	if err := g.check(p); err != nil {
		return g.status, err
	}
	if g.state == AwaitingFirstMove {
		return g.status, ErrNotStarted
	}

	if g.cells.ToggleFlag(p) && g.field.IsMine(p) {
		if g.cells.At(p) == Flagged {
			g.correctFlags++
		} else {
			g.correctFlags--
		}
	}
	g.evaluate()
	return g.status, nil
}

// Unflag removes a flag from p and leaves any other cell alone.
func (g *Game) Unflag(p Point) (Status, error) {
	if err := g.check(p); err != nil {
		return g.status, err
	}
	if g.state == AwaitingFirstMove {
		return g.status, ErrNotStarted
	}
	if g.cells.At(p) != Flagged {
		return g.status, nil
	}
	return g.ToggleFlag(p)
}

// evaluate checks both win conditions: every mine flagged, or as many
// cells left hidden as there are mines still unflagged. The second one
// lets a player win without flagging anything.
func (g *Game) evaluate() {
	if g.correctFlags == g.mineCount ||
		g.cells.Hidden() == g.mineCount-g.correctFlags {
		g.finish(Won, Status{Outcome: Victory})
	}
}

func (g *Game) finish(state State, status Status) {
	g.state = state
	g.status = status
	g.endedAt = g.now()
	Log.WithFields(logrus.Fields{
		"config":   g.Config().String(),
		"state":    state.String(),
		"revealed": g.cells.Revealed(),
		"flags":    g.cells.Flagged(),
	}).Debug("game over")
}

// View reports p the way a player may see it. Once the game is over the
// remaining mines and flags are exposed. Points off the grid are Unknown.
func (g *Game) View(p Point) CellView {
	if !g.grid.InBounds(p) {
		return Unknown
	}
	i := g.grid.index(p)
	mined := g.field.placed && g.field.mines[i]
	switch g.cells.cells[i] {
	case Revealed:
		return CellView(g.field.counts[i])
	case Flagged:
		if !g.state.Over() {
			return Flag
		}
		if mined {
			return CorrectFlag
		}
		return WrongFlag
	}
	if g.state.Over() && mined {
		if g.state == Lost && p == g.status.Detonated {
			return ExplodedMine
		}
		return UnflaggedMine
	}
	return Unknown
}

// Views returns every cell in row-major order.
func (g *Game) Views() Views {
	vs := make(Views, g.grid.Size())
	for i := range vs {
		vs[i] = g.View(g.grid.point(i))
	}
	return vs
}

// Mines is empty until the first reveal.
func (g *Game) Mines() []Point {
	return g.field.Mines()
}
