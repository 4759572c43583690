// Package solver plays minesweeper games on its own, the way a careful
// player would: it only uses what the game shows and guesses when no
// safe move can be deduced.
package solver

import (
	"errors"
	"math/rand/v2"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

var Log = logrus.New()

var ErrStuck = errors.New("no covered cell left to try")

type Solver struct {
	game    *mines.Game
	rnd     *rand.Rand
	pending deque.Deque[mines.Action]
	guesses int
}

func New(g *mines.Game, r *rand.Rand) *Solver {
	return &Solver{game: g, rnd: r}
}

// Guesses is the number of moves that were not deduced.
func (s *Solver) Guesses() int { return s.guesses }

// Play makes moves until the game is over.
func (s *Solver) Play() (mines.Status, error) {
	for !s.game.State().Over() {
		if _, err := s.Step(); err != nil {
			return s.game.Status(), err
		}
	}
	return s.game.Status(), nil
}

// firstMove opens in the centre unless the mines only fit around a corner,
// whose safe zone is the smallest.
func firstMove(grid mines.Grid, mineCount int) mines.Point {
	center := mines.Point{Row: grid.Height() / 2, Col: grid.Width() / 2}
	if mines.Capacity(grid, center) >= mineCount {
		return center
	}
	return mines.Point{}
}

// Step makes a single move.
func (s *Solver) Step() (mines.Status, error) {
	if s.game.State() == mines.AwaitingFirstMove {
		return s.game.Reveal(firstMove(s.game.Grid(), s.game.MineCount()))
	}

	for {
		if s.pending.Len() == 0 && !s.deduce() {
			break
		}
		a := s.pending.PopFront()
		if s.game.View(a.Point()) != mines.Unknown {
			continue // stale
		}
		return s.game.Apply(a)
	}

	a, ok := s.guess()
	if !ok {
		return s.game.Status(), ErrStuck
	}
	s.guesses++
	Log.WithFields(logrus.Fields{
		"row": a.Row,
		"col": a.Col,
	}).Debug("guessing")
	return s.game.Apply(a)
}

// deduce queues every move that follows from a single numbered cell and
// reports whether it found any.
func (s *Solver) deduce() bool {
	grid := s.game.Grid()
	views := s.game.Views()
	found := false

	for i, v := range views {
		count, ok := v.Count()
		if !ok || count == 0 {
			continue
		}
		p := mines.Point{Row: i / grid.Width(), Col: i % grid.Width()}

		var flagged int
		var covered []mines.Point
		for _, n := range grid.Neighbors(p) {
			switch s.game.View(n) {
			case mines.Flag:
				flagged++
			case mines.Unknown:
				covered = append(covered, n)
			}
		}
		if len(covered) == 0 {
			continue
		}

		var kind mines.ActionKind
		switch {
		case count == flagged:
			kind = mines.Reveal
		case count == flagged+len(covered):
			kind = mines.ToggleFlag
		default:
			continue
		}
		for _, n := range covered {
			s.pending.PushBack(mines.Action{Kind: kind, Row: n.Row, Col: n.Col})
		}
		found = true
	}
	return found
}

func (s *Solver) guess() (mines.Action, bool) {
	grid := s.game.Grid()
	var covered []mines.Point
	for i, v := range s.game.Views() {
		if v == mines.Unknown {
			covered = append(covered, mines.Point{Row: i / grid.Width(), Col: i % grid.Width()})
		}
	}
	if len(covered) == 0 {
		return mines.Action{}, false
	}
	p := covered[s.rnd.IntN(len(covered))]
	return mines.Action{Kind: mines.Reveal, Row: p.Row, Col: p.Col}, true
}
