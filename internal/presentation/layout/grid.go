package layout

import (
	"math"

	"github.com/penwyp/go-eld-log/internal/core/model"
)

// Cell is one character position of the duty grid.
type Cell int

const (
	CellEmpty Cell = iota
	CellLine
	CellRiser
)

// Grid rasterizes a duty status path into RowCount rows of equal columns.
type Grid struct {
	Columns int
	Cells   [model.RowCount][]Cell
}

// Rasterize assigns every column to the row whose horizontal segments
// cover most of it, then draws risers where the line changes row.
func Rasterize(path []model.Segment, columns int) Grid {
	if columns < 1 {
		columns = 1
	}
	g := Grid{Columns: columns}
	for r := range g.Cells {
		g.Cells[r] = make([]Cell, columns)
	}

	width := 1.0 / float64(columns)
	for c := 0; c < columns; c++ {
		lo, hi := float64(c)*width, float64(c+1)*width

		var cover [model.RowCount]float64
		for _, seg := range path {
			if !seg.IsHorizontal() {
				continue
			}
			overlap := math.Min(hi, seg.XEnd) - math.Max(lo, seg.XStart)
			if overlap > 0 {
				cover[seg.Row.Row()] += overlap
			}
		}

		best := -1
		for r, v := range cover {
			if v > 0 && (best < 0 || v > cover[best]) {
				best = r
			}
		}
		if best >= 0 {
			g.Cells[best][c] = CellLine
		}
	}

	for _, seg := range path {
		if seg.IsHorizontal() || seg.RowFrom == seg.RowTo {
			continue
		}
		c := g.Column(seg.X)
		top, bottom := seg.RowFrom.Row(), seg.RowTo.Row()
		if top > bottom {
			top, bottom = bottom, top
		}
		for r := top + 1; r < bottom; r++ {
			if g.Cells[r][c] == CellEmpty {
				g.Cells[r][c] = CellRiser
			}
		}
	}
	return g
}

// Column maps a day-fraction to its column index. Fractions that land on a
// column boundary within rounding error belong to the later column.
func (g Grid) Column(x float64) int {
	c := int(x*float64(g.Columns) + 1e-9)
	if c >= g.Columns {
		c = g.Columns - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}
