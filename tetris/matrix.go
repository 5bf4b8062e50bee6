package tetris

import "iter"

// MaxShapeSize is the largest square a tetromino occupies.
const MaxShapeSize = 4

// Matrix is a square occupancy bitmap. Only the top-left Size×Size region is used.
type Matrix struct {
	Cells [MaxShapeSize][MaxShapeSize]bool
	Size  int
}

// At reports whether the cell at column x, row y is occupied.
func (m Matrix) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Size || y >= m.Size {
		return false
	}
	return m.Cells[y][x]
}

// RotateCW returns the matrix turned 90° clockwise.
func (m Matrix) RotateCW() Matrix {
	n := m.Size
	out := Matrix{Size: n}
	for y := range n {
		for x := range n {
			out.Cells[x][n-1-y] = m.Cells[y][x]
		}
	}
	return out
}

// Occupied yields the (x, y) offsets of every occupied cell, row by row.
func (m Matrix) Occupied() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for y := range m.Size {
			for x := range m.Size {
				if m.Cells[y][x] && !yield(x, y) {
					return
				}
			}
		}
	}
}

func (m Matrix) String() string {
	buf := make([]byte, 0, m.Size*(m.Size+1))
	for y := range m.Size {
		for x := range m.Size {
			if m.Cells[y][x] {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
