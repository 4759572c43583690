package mines

import "fmt"

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Grid is the fixed-shape surface every other layer addresses. Cells are
// stored row-major, so a point maps to Row*Width + Col.
type Grid struct {
	width, height int
}

func NewGrid(width, height int) (Grid, error) {
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return Grid{width: width, height: height}, nil
}

func (g Grid) Width() int { return g.width }
func (g Grid) Height() int { return g.height }
func (g Grid) Size() int { return g.width * g.height }

func (g Grid) InBounds(p Point) bool {
	return 0 <= p.Row && p.Row < g.height && 0 <= p.Col && p.Col < g.width
}

func (g Grid) index(p Point) int {
	return p.Row*g.width + p.Col
}

func (g Grid) point(i int) Point {
	return Point{Row: i / g.width, Col: i % g.width}
}

// Neighbors returns the in-bounds cells of the 3x3 block around p, p
// excluded, in row-major order.
func (g Grid) Neighbors(p Point) []Point {
	ns := make([]Point, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Point{Row: p.Row + dr, Col: p.Col + dc}
			if g.InBounds(n) {
				ns = append(ns, n)
			}
		}
	}
	return ns
}

func (g Grid) neighborIndexes(i int) []int {
	ns := g.Neighbors(g.point(i))
	is := make([]int, len(ns))
	for k, n := range ns {
		is[k] = g.index(n)
	}
	return is
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d", g.width, g.height)
}
