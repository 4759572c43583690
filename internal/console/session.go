package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

const (
	firstPrompt = "first cell (r <row> <col>): "
	prompt      = "action (r = reveal, f = flag, . = unflag, q = quit) <row> <col>: "
)

// Session runs the read-apply-render loop of a single game.
type Session struct {
	Game     *mines.Game
	Renderer *Renderer
	Log      *logrus.Logger
}

func NewSession(g *mines.Game, r *Renderer, log *logrus.Logger) *Session {
	return &Session{Game: g, Renderer: r, Log: log}
}

// Run plays until the game ends, the player quits, in is exhausted or ctx
// is cancelled. Only the last two are reported as errors.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) (mines.Status, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if err := s.Renderer.Render(out, s.Game); err != nil {
			return s.Game.Status(), err
		}
		if s.Game.State().Over() {
			fmt.Fprintln(out, s.Renderer.Message(s.Game.Status()))
			return s.Game.Status(), nil
		}

		if s.Game.State() == mines.AwaitingFirstMove {
			fmt.Fprint(out, firstPrompt)
		} else {
			fmt.Fprint(out, prompt)
		}

		var line string
		select {
		case <-ctx.Done():
			return s.Game.Status(), ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				err := <-readErr
				switch {
				case err == nil:
					return s.Game.Status(), io.ErrUnexpectedEOF
				case errors.Is(err, ctx.Err()):
					return s.Game.Status(), err
				default:
					return s.Game.Status(), fmt.Errorf("unable to read input: %w", err)
				}
			}
			line = l
		}

		if err := s.apply(line); errors.Is(err, ErrQuit) {
			return s.Game.Status(), nil
		} else if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
		}
	}
}

func (s *Session) apply(line string) error {
	action, err := ParseAction(line, s.Game.Grid())
	if err != nil {
		return err
	}
	status, err := s.Game.Apply(action)
	if err != nil {
		return err
	}
	s.Log.WithFields(logrus.Fields{
		"action":  action.Kind.String(),
		"row":     action.Row,
		"col":     action.Col,
		"outcome": status.Outcome.String(),
	}).Debug("move")
	return nil
}
