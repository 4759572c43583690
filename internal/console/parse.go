package console

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

var (
	ErrSyntax        = errors.New("expected: <action> <row> <col>")
	ErrUnknownAction = errors.New("unknown action")
	ErrQuit          = errors.New("quit")
)

var actionRe = regexp.MustCompile(`^(\S+)\s+(-?\d+)\s+(-?\d+)$`)

var actionKinds = map[string]mines.ActionKind{
	"r": mines.Reveal,
	"c": mines.Reveal,
	"d": mines.Reveal,
	"f": mines.ToggleFlag,
	".": mines.Unflag,
}

// ParseAction reads one command line. Coordinates are checked against
// grid so the player can be re-prompted before the game sees the move.
func ParseAction(line string, grid mines.Grid) (mines.Action, error) {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "q" || line == "quit" {
		return mines.Action{}, ErrQuit
	}

	m := actionRe.FindStringSubmatch(line)
	if m == nil {
		return mines.Action{}, ErrSyntax
	}
	kind, ok := actionKinds[m[1]]
	if !ok {
		return mines.Action{}, fmt.Errorf("%w %q", ErrUnknownAction, m[1])
	}
	row, err := strconv.Atoi(m[2])
	if err != nil {
		return mines.Action{}, ErrSyntax
	}
	col, err := strconv.Atoi(m[3])
	if err != nil {
		return mines.Action{}, ErrSyntax
	}

	a := mines.Action{Kind: kind, Row: row, Col: col}
	if !grid.InBounds(a.Point()) {
		return mines.Action{}, fmt.Errorf(
			"%w: row must be 0-%d and column 0-%d",
			mines.ErrOutOfBounds, grid.Height()-1, grid.Width()-1,
		)
	}
	return a, nil
}
