package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// MineField holds the ground truth of a game. It stays empty until the
// first reveal and is frozen once populated.
type MineField struct {
	grid   Grid
	mines  []bool
	counts []int8
	list   []Point
	placed bool
}

func NewMineField(g Grid) *MineField {
	return &MineField{
		grid:   g,
		mines:  make([]bool, g.Size()),
		counts: make([]int8, g.Size()),
	}
}

// Capacity is the number of mines that can be placed when safe and its
// neighbours must stay clear.
func Capacity(g Grid, safe Point) int {
	return g.Size() - 1 - len(g.Neighbors(safe))
}

// PlaceMines picks mineCount cells uniformly at random, none of which is
// safe or adjacent to it.
func (f *MineField) PlaceMines(safe Point, mineCount int, r *rand.Rand) error {
	if f.placed {
		return ErrMinesPlaced
	}
	if !f.grid.InBounds(safe) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, safe)
	}
	if capacity := Capacity(f.grid, safe); mineCount < 0 || mineCount > capacity {
		return fmt.Errorf(
			"%w: %d mines do not fit %v with safe zone at %v (capacity %d)",
			ErrInvalidConfiguration, mineCount, f.grid, safe, capacity,
		)
	}

	candidates := make([]int, 0, f.grid.Size())
	for i := range f.grid.Size() {
		p := f.grid.point(i)
		if absDiff(p.Row, safe.Row) > 1 || absDiff(p.Col, safe.Col) > 1 {
			candidates = append(candidates, i)
		}
	}

	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		f.mines[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	f.freeze()
	Log.WithFields(logrus.Fields{
		"grid":  f.grid.String(),
		"safe":  safe.String(),
		"mines": mineCount,
	}).Debug("mines placed")
	return nil
}

// Plant places mines exactly at the given points. Unlike [MineField.PlaceMines]
// it does not keep any safe zone clear.
func (f *MineField) Plant(mines []Point) error {
	if f.placed {
		return ErrMinesPlaced
	}
	if len(mines) >= f.grid.Size() {
		return fmt.Errorf(
			"%w: %d mines on %v leave no safe cell",
			ErrInvalidConfiguration, len(mines), f.grid,
		)
	}
	layout := make([]bool, f.grid.Size())
	for _, p := range mines {
		if !f.grid.InBounds(p) {
			return fmt.Errorf("%w: mine at %v is outside %v", ErrInvalidConfiguration, p, f.grid)
		}
		i := f.grid.index(p)
		if layout[i] {
			return fmt.Errorf("%w: duplicate mine at %v", ErrInvalidConfiguration, p)
		}
		layout[i] = true
	}
	f.mines = layout
	f.freeze()
	Log.WithFields(logrus.Fields{
		"grid":  f.grid.String(),
		"mines": len(mines),
	}).Debug("mines planted")
	return nil
}

func (f *MineField) freeze() {
	f.list = f.list[:0]
	for i, mined := range f.mines {
		if mined {
			f.list = append(f.list, f.grid.point(i))
		}
	}
	f.computeCounts()
	f.placed = true
}

// computeCounts must run exactly once per placement; a second pass would
// double every count.
func (f *MineField) computeCounts() {
	for _, p := range f.list {
		for _, j := range f.grid.neighborIndexes(f.grid.index(p)) {
			if !f.mines[j] {
				f.counts[j]++
			}
		}
	}
}

func (f *MineField) Placed() bool { return f.placed }

func (f *MineField) MineCount() int { return len(f.list) }

// Mines returns a copy of the mine list in row-major order.
func (f *MineField) Mines() []Point {
	return append([]Point(nil), f.list...)
}

func (f *MineField) IsMine(p Point) bool {
	return f.grid.InBounds(p) && f.mines[f.grid.index(p)]
}

// CountAt is the number of mined neighbours of p, or 0 if p is a mine.
func (f *MineField) CountAt(p Point) int {
	if !f.grid.InBounds(p) {
		return 0
	}
	return int(f.counts[f.grid.index(p)])
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
