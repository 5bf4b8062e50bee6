package autoplay

import "github.com/plus3/tetromino/tetris"

// Features summarises a board's shape.
type Features struct {
	AggregateHeight int
	// Holes are empty cells with a block somewhere above them in the same column.
	Holes     int
	Bumpiness int
	MaxHeight int
}

func Measure(b *tetris.Board) Features {
	var f Features
	prev := -1
	for x := range tetris.Cols {
		h := b.ColumnHeight(x)
		f.AggregateHeight += h
		f.MaxHeight = max(f.MaxHeight, h)
		if prev >= 0 {
			f.Bumpiness += abs(h - prev)
		}
		prev = h

		for y := tetris.Rows - h; y < tetris.Rows; y++ {
			if !b.At(x, y).Filled() {
				f.Holes++
			}
		}
	}
	return f
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
