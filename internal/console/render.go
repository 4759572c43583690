package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

// Renderer draws a game as a framed text grid with row and column labels.
type Renderer struct {
	styles map[mines.CellView]lipgloss.Style
	frame  lipgloss.Style
	win    lipgloss.Style
	loss   lipgloss.Style
	color  bool
}

func NewRenderer(color bool) *Renderer {
	r := &Renderer{color: color}
	if !color {
		return r
	}
	bold := lipgloss.NewStyle().Bold(true)
	r.styles = map[mines.CellView]lipgloss.Style{
		mines.Unknown:       lipgloss.NewStyle().Faint(true),
		mines.Flag:          bold.Foreground(lipgloss.Color("10")),
		mines.CorrectFlag:   bold.Foreground(lipgloss.Color("10")),
		mines.WrongFlag:     bold.Foreground(lipgloss.Color("11")),
		mines.ExplodedMine:  bold.Foreground(lipgloss.Color("9")),
		mines.UnflaggedMine: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		1:                   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		2:                   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		3:                   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		4:                   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		5:                   lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		6:                   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		7:                   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		8:                   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
	r.frame = lipgloss.NewStyle().Faint(true)
	r.win = bold.Foreground(lipgloss.Color("10"))
	r.loss = bold.Foreground(lipgloss.Color("9"))
	return r
}

func (r *Renderer) paint(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) cell(v mines.CellView) string {
	style, ok := r.styles[v]
	if !ok {
		return v.String()
	}
	return r.paint(style, v.String())
}

// Render writes the board followed by a line with the flag counter.
func (r *Renderer) Render(w io.Writer, g *mines.Game) error {
	var (
		grid   = g.Grid()
		width  = grid.Width()
		labelW = len(strconv.Itoa(grid.Height() - 1))
		pad    = strings.Repeat(" ", labelW+3)
		b      strings.Builder
	)

	if width > 10 {
		b.WriteString(pad)
		for col := range width {
			if col < 10 {
				b.WriteString("  ")
			} else {
				fmt.Fprintf(&b, "%d ", (col/10)%10)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(pad)
	for col := range width {
		fmt.Fprintf(&b, "%d ", col%10)
	}
	b.WriteString("\n")

	border := strings.Repeat(" ", labelW+1) + r.paint(r.frame, "+"+strings.Repeat("-", 2*width+1)+"+")
	b.WriteString(border + "\n")

	views := g.Views()
	for row := range grid.Height() {
		fmt.Fprintf(&b, "%*d %s ", labelW, row, r.paint(r.frame, "|"))
		for col := range width {
			b.WriteString(r.cell(views[row*width+col]))
			b.WriteString(" ")
		}
		b.WriteString(r.paint(r.frame, "|") + "\n")
	}
	b.WriteString(border + "\n")

	fmt.Fprintf(&b, "mines: %d  flags: %d\n", g.MineCount(), g.Flags())

	_, err := io.WriteString(w, b.String())
	return err
}

// Message is the closing line for a finished game, empty while it goes on.
func (r *Renderer) Message(status mines.Status) string {
	switch status.Outcome {
	case mines.Victory:
		return r.paint(r.win, "Well done! You cleared the field.")
	case mines.Defeat:
		return r.paint(r.loss, fmt.Sprintf("BOOM! You hit a mine at %v.", status.Detonated))
	default:
		return ""
	}
}
