package mines

import "github.com/gammazero/deque"

type CellState int8

const (
	Hidden CellState = iota
	Revealed
	Flagged
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "unknown"
	}
}

// RevealState is the player's knowledge of the board.
type RevealState struct {
	grid            Grid
	cells           []CellState
	hidden, flagged int
}

func NewRevealState(g Grid) *RevealState {
	return &RevealState{
		grid:   g,
		cells:  make([]CellState, g.Size()),
		hidden: g.Size(),
	}
}

func (s *RevealState) At(p Point) CellState {
	return s.cells[s.grid.index(p)]
}

// Hidden counts cells that are neither revealed nor flagged.
func (s *RevealState) Hidden() int { return s.hidden }

func (s *RevealState) Flagged() int { return s.flagged }

func (s *RevealState) Revealed() int {
	return s.grid.Size() - s.hidden - s.flagged
}

// Reveal opens p. Landing on a mine reports exploded and leaves the state
// untouched. Opening a cell with no mined neighbours floods outwards
// through hidden cells until it reaches numbered ones.
func (s *RevealState) Reveal(p Point, f *MineField) (exploded bool, opened int) {
	start := s.grid.index(p)
	if s.cells[start] != Hidden {
		return false, 0
	}
	if f.mines[start] {
		return true, 0
	}

	var todo deque.Deque[int]
	s.open(start)
	opened++
	if f.counts[start] == 0 {
		todo.PushBack(start)
	}

	for todo.Len() > 0 {
		i := todo.PopFront()
		for _, j := range s.grid.neighborIndexes(i) {
			if s.cells[j] != Hidden || f.mines[j] {
				continue
			}
			s.open(j)
			opened++
			if f.counts[j] == 0 {
				todo.PushBack(j)
			}
		}
	}

	if opened > 1 {
		Log.WithField("opened", opened).Debug("flood reveal")
	}
	return false, opened
}

func (s *RevealState) open(i int) {
	s.cells[i] = Revealed
	s.hidden--
}

// ToggleFlag flips p between hidden and flagged. Revealed cells are left
// alone and false is returned.
func (s *RevealState) ToggleFlag(p Point) bool {
	i := s.grid.index(p)
	switch s.cells[i] {
	case Hidden:
		s.cells[i] = Flagged
		s.hidden--
		s.flagged++
	case Flagged:
		s.cells[i] = Hidden
		s.hidden++
		s.flagged--
	default:
		return false
	}
	return true
}
