package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

func TestParseAction(t *testing.T) {
	grid, err := mines.NewGrid(10, 5)
	require.NoError(t, err)

	tests := []struct {
		line string
		want mines.Action
		err  error
	}{
		{line: "r 0 0", want: mines.Action{Kind: mines.Reveal, Row: 0, Col: 0}},
		{line: "c 4 9", want: mines.Action{Kind: mines.Reveal, Row: 4, Col: 9}},
		{line: "  D   2\t3 ", want: mines.Action{Kind: mines.Reveal, Row: 2, Col: 3}},
		{line: "f 1 7", want: mines.Action{Kind: mines.ToggleFlag, Row: 1, Col: 7}},
		{line: ". 1 7", want: mines.Action{Kind: mines.Unflag, Row: 1, Col: 7}},
		{line: "q", err: ErrQuit},
		{line: "QUIT", err: ErrQuit},
		{line: "", err: ErrSyntax},
		{line: "r 1", err: ErrSyntax},
		{line: "r a b", err: ErrSyntax},
		{line: "r 1 2 3", err: ErrSyntax},
		{line: "x 1 2", err: ErrUnknownAction},
		{line: "r 5 0", err: mines.ErrOutOfBounds},
		{line: "f 0 10", err: mines.ErrOutOfBounds},
		{line: "r -1 0", err: mines.ErrOutOfBounds},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			got, err := ParseAction(test.line, grid)
			if test.err != nil {
				assert.ErrorIs(t, err, test.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}
