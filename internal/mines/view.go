package mines

import (
	"strconv"
	"strings"
)

// CellView is what a renderer may know about a cell.
//
//   - 0 to 8 mean the cell is open and has that many mined neighbours.
//   - Unknown and Flag are the in-game covered states.
//   - The values from 64 up only appear once the game is over.
type CellView int8

const (
	Unknown       CellView = -2
	Flag          CellView = -1
	CorrectFlag   CellView = 64
	ExplodedMine  CellView = 65
	WrongFlag     CellView = 66
	UnflaggedMine CellView = 67
)

func (v CellView) Count() (int, bool) {
	if 0 <= v && v <= 8 {
		return int(v), true
	}
	return 0, false
}

func (v CellView) Covered() bool {
	return v == Unknown || v == Flag
}

func (v CellView) String() string {
	switch v {
	case Unknown:
		return "."
	case Flag, CorrectFlag:
		return "F"
	case ExplodedMine:
		return "X"
	case WrongFlag:
		return "x"
	case UnflaggedMine:
		return "*"
	case 0, 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(v))
	default:
		return "!"
	}
}

type Views []CellView

func (vs Views) ToString(width int) string {
	var b strings.Builder
	for i, v := range vs {
		b.WriteString(v.String())
		if (i+1)%width == 0 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
