package sim

import "math"

// Coverage marks square floor cells the robot center has passed over.
type Coverage struct {
	cell    float64
	cols    int
	rows    int
	visited []bool
	count   int
}

// NewCoverage divides room into cells of the given size.
func NewCoverage(room Room, cell float64) *Coverage {
	if cell <= 0 {
		cell = 0.1
	}
	cols := int(math.Ceil(room.Width / cell))
	rows := int(math.Ceil(room.Height / cell))
	return &Coverage{
		cell:    cell,
		cols:    cols,
		rows:    rows,
		visited: make([]bool, cols*rows),
	}
}

// Visit marks the cell containing (x, y).
func (c *Coverage) Visit(x, y float64) {
	col := int(x / c.cell)
	row := int(y / c.cell)
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	i := row*c.cols + col
	if !c.visited[i] {
		c.visited[i] = true
		c.count++
	}
}

// Visited returns the number of distinct cells visited.
func (c *Coverage) Visited() int { return c.count }

// Fraction is the share of cells visited, in [0, 1].
func (c *Coverage) Fraction() float64 {
	if len(c.visited) == 0 {
		return 0
	}
	return float64(c.count) / float64(len(c.visited))
}
