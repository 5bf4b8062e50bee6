package tetris

const (
	Rows = 20
	Cols = 10
)

// Board is the fixed Rows×Cols playfield. Row 0 is the top.
type Board struct {
	cells [Rows][Cols]Cell
}

func NewBoard() *Board {
	return &Board{}
}

// Reset empties every cell.
func (b *Board) Reset() {
	b.cells = [Rows][Cols]Cell{}
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// At returns the cell at column x, row y. Coordinates outside the board read as empty.
func (b *Board) At(x, y int) Cell {
	if !inBounds(x, y) {
		return Empty()
	}
	return b.cells[y][x]
}

// Set writes a cell. Coordinates outside the board are ignored.
func (b *Board) Set(x, y int, c Cell) {
	if !inBounds(x, y) {
		return
	}
	b.cells[y][x] = c
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Cols && y >= 0 && y < Rows
}

// Collides reports whether p, shifted by (dx, dy) and optionally using matrix m
// in place of its own, would leave the playfield sideways, pass the floor, or
// overlap an occupied cell. Cells above the top edge are only checked against
// the side walls.
func (b *Board) Collides(p *Piece, dx, dy int, m *Matrix) bool {
	matrix := p.Matrix
	if m != nil {
		matrix = *m
	}
	ox, oy := p.X+dx, p.Y+dy

	for cx, cy := range matrix.Occupied() {
		x, y := ox+cx, oy+cy

		if x < 0 || x >= Cols || y >= Rows {
			return true
		}
		if y >= 0 && b.cells[y][x].filled {
			return true
		}
	}
	return false
}

// Merge writes p's color into every cell it covers. Cells above the visible
// field are dropped; their count is returned so the caller can detect a lock-out.
func (b *Board) Merge(p *Piece) (hidden int) {
	for x, y := range p.Cells() {
		if y < 0 {
			hidden++
			continue
		}
		b.Set(x, y, Occupied(p.Color))
	}
	return hidden
}

// ClearFullLines removes every full row, shifting the rows above it down and
// inserting empty rows at the top. It returns the number of rows removed.
func (b *Board) ClearFullLines() int {
	cleared := 0
	for y := Rows - 1; y >= 0; {
		if !b.RowFull(y) {
			y--
			continue
		}
		copy(b.cells[1:y+1], b.cells[0:y])
		b.cells[0] = [Cols]Cell{}
		cleared++
		// the row above slid into y, scan it again
	}
	return cleared
}

func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= Rows {
		return false
	}
	for _, c := range b.cells[y] {
		if !c.filled {
			return false
		}
	}
	return true
}

func (b *Board) RowEmpty(y int) bool {
	if y < 0 || y >= Rows {
		return true
	}
	for _, c := range b.cells[y] {
		if c.filled {
			return false
		}
	}
	return true
}

// ColumnHeight is the distance from the floor to the highest block in column x.
func (b *Board) ColumnHeight(x int) int {
	if x < 0 || x >= Cols {
		return 0
	}
	for y := range Rows {
		if b.cells[y][x].filled {
			return Rows - y
		}
	}
	return 0
}

// Height is the distance from the floor to the highest block on the board.
func (b *Board) Height() int {
	for y := range Rows {
		if !b.RowEmpty(y) {
			return Rows - y
		}
	}
	return 0
}

// Filled counts occupied cells.
func (b *Board) Filled() int {
	n := 0
	for y := range Rows {
		for x := range Cols {
			if b.cells[y][x].filled {
				n++
			}
		}
	}
	return n
}
