package tetris

import "image/color"

// Cell is a single board square: either empty or occupied by a colored block.
// The zero value is an empty cell.
type Cell struct {
	color  color.RGBA
	filled bool
}

// Empty returns an unoccupied cell.
func Empty() Cell {
	return Cell{}
}

// Occupied returns a cell holding a block of the given color.
func Occupied(c color.RGBA) Cell {
	return Cell{color: c, filled: true}
}

func (c Cell) Filled() bool {
	return c.filled
}

// Color returns the block color and true, or false for an empty cell.
func (c Cell) Color() (color.RGBA, bool) {
	return c.color, c.filled
}
