package tetris

import "image/color"

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// Kinds lists every tetromino in catalog order.
var Kinds = [...]Kind{I, O, T, S, Z, J, L}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

var kindNames = [...]string{"I", "O", "T", "S", "Z", "J", "L"}

func matrixOf(rows ...string) Matrix {
	m := Matrix{Size: len(rows)}
	for y, row := range rows {
		for x, c := range row {
			m.Cells[y][x] = c == '#'
		}
	}
	return m
}

var shapes = [...]Matrix{
	I: matrixOf(
		"....",
		"####",
		"....",
		"....",
	),
	O: matrixOf(
		"##",
		"##",
	),
	T: matrixOf(
		".#.",
		"###",
		"...",
	),
	S: matrixOf(
		".##",
		"##.",
		"...",
	),
	Z: matrixOf(
		"##.",
		".##",
		"...",
	),
	J: matrixOf(
		"#..",
		"###",
		"...",
	),
	L: matrixOf(
		"..#",
		"###",
		"...",
	),
}

var colors = [...]color.RGBA{
	I: {0x22, 0xc5, 0x5e, 0xff},
	O: {0xf5, 0x9e, 0x0b, 0xff},
	T: {0xa8, 0x55, 0xf7, 0xff},
	S: {0x06, 0xb6, 0xd4, 0xff},
	Z: {0xef, 0x44, 0x44, 0xff},
	J: {0x3b, 0x82, 0xf6, 0xff},
	L: {0xf9, 0x73, 0x16, 0xff},
}

// ShapeOf returns the spawn orientation of kind. Unknown kinds yield an empty matrix.
func ShapeOf(kind Kind) Matrix {
	if int(kind) >= len(shapes) {
		return Matrix{}
	}
	return shapes[kind]
}

// ColorOf returns the display color of kind.
func ColorOf(kind Kind) color.RGBA {
	if int(kind) >= len(colors) {
		return color.RGBA{}
	}
	return colors[kind]
}
