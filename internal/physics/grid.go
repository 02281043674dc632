package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase overlap queries inside a
// bounded play area. Boxes are inserted by index into every cell they cover;
// boxes outside the area are clamped into the border cells.
type SpatialGrid struct {
	origin      Rect
	invCellSize float64 // 1 / cellSize
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of boxes touching a cell.
// The slice is reused between passes (reset to [:0]).
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a grid covering area with square cells of cellSize.
func NewSpatialGrid(area Rect, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(math.Ceil(float64(area.W) / cellSize))
	rows := int(math.Ceil(float64(area.H) / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		origin:      area,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items without releasing cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds index to every cell covered by r.
func (g *SpatialGrid) Insert(r Rect, index int) {
	c0, r0, c1, r1 := g.cellRange(r)
	for row := r0; row <= r1; row++ {
		offset := row * g.cols
		for col := c0; col <= c1; col++ {
			cell := &g.cells[offset+col]
			cell.items = append(cell.items, index)
		}
	}
}

// QueryRect calls fn for each index stored in the cells covered by r.
// An index spanning several cells can be reported more than once; callers
// dedupe. Iteration stops early when fn returns true.
func (g *SpatialGrid) QueryRect(r Rect, fn func(index int) bool) {
	c0, r0, c1, r1 := g.cellRange(r)
	for row := r0; row <= r1; row++ {
		offset := row * g.cols
		for col := c0; col <= c1; col++ {
			for _, idx := range g.cells[offset+col].items {
				if fn(idx) {
					return
				}
			}
		}
	}
}

// cellRange returns the inclusive cell span covered by r, clamped to the grid.
func (g *SpatialGrid) cellRange(r Rect) (c0, r0, c1, r1 int) {
	c0 = g.clampCol(r.Left())
	c1 = g.clampCol(r.Right() - 1)
	r0 = g.clampRow(r.Top())
	r1 = g.clampRow(r.Bottom() - 1)
	if c1 < c0 {
		c1 = c0
	}
	if r1 < r0 {
		r1 = r0
	}
	return c0, r0, c1, r1
}

func (g *SpatialGrid) clampCol(x int) int {
	col := int(math.Floor(float64(x-g.origin.X) * g.invCellSize))
	if col < 0 {
		return 0
	}
	if col >= g.cols {
		return g.cols - 1
	}
	return col
}

func (g *SpatialGrid) clampRow(y int) int {
	row := int(math.Floor(float64(y-g.origin.Y) * g.invCellSize))
	if row < 0 {
		return 0
	}
	if row >= g.rows {
		return g.rows - 1
	}
	return row
}
