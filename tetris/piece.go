package tetris

import (
	"image/color"
	"iter"
)

// SpawnRow is the row new pieces start on. It is above the visible field so
// tall shapes slide in from the top.
const SpawnRow = -2

// Piece is the falling tetromino. X and Y locate the top-left corner of its
// matrix on the board; Y may be negative while the piece is entering.
type Piece struct {
	Kind     Kind
	Matrix   Matrix
	Color    color.RGBA
	X, Y     int
	Rotation int
}

// SpawnPiece creates a piece of the given kind centered horizontally at SpawnRow.
func SpawnPiece(kind Kind) *Piece {
	m := ShapeOf(kind)
	return &Piece{
		Kind:   kind,
		Matrix: m,
		Color:  ColorOf(kind),
		X:      (Cols - m.Size) / 2,
		Y:      SpawnRow,
	}
}

// Cells yields the board coordinates of every block in the piece.
func (p *Piece) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for cx, cy := range p.Matrix.Occupied() {
			if !yield(p.X+cx, p.Y+cy) {
				return
			}
		}
	}
}

// kickOffsets are the horizontal shifts tried, in order, after a rotation.
var kickOffsets = [...]int{0, -1, 1, -2, 2}

// rotate turns p clockwise on board b, trying each kick offset. It returns
// false and leaves p untouched when every offset collides.
func (p *Piece) rotate(b *Board) bool {
	rotated := p.Matrix.RotateCW()
	for _, k := range kickOffsets {
		if b.Collides(p, k, 0, &rotated) {
			continue
		}
		p.Matrix = rotated
		p.X += k
		p.Rotation = (p.Rotation + 1) % 4
		return true
	}
	return false
}

// shift moves p by (dx, dy) when the destination is free.
func (p *Piece) shift(b *Board, dx, dy int) bool {
	if b.Collides(p, dx, dy, nil) {
		return false
	}
	p.X += dx
	p.Y += dy
	return true
}

// dropDistance is the number of rows p can fall before it rests.
func (p *Piece) dropDistance(b *Board) int {
	d := 0
	for !b.Collides(p, 0, d+1, nil) {
		d++
	}
	return d
}
