// Package autoplay drives a tetris.Game with a greedy placement heuristic.
// It only uses the game's public commands, so anything it does a player
// could do from the keyboard.
package autoplay

import (
	"math"

	"github.com/plus3/tetromino/tetris"
)

// Weights scale each board feature when scoring a placement. Higher
// scores are better; penalties should be positive.
type Weights struct {
	Height    float64
	Holes     float64
	Bumpiness float64
	Lines     float64
}

// DefaultWeights are the coefficients from Yiyuan Lee's genetic search.
var DefaultWeights = Weights{
	Height:    0.510066,
	Holes:     0.35663,
	Bumpiness: 0.184483,
	Lines:     0.760666,
}

// lockOutPenalty rules out placements that leave cells above the field.
const lockOutPenalty = 1e6

type Bot struct {
	Weights Weights
}

func New() *Bot {
	return &Bot{Weights: DefaultWeights}
}

// Placement is a target for the current piece.
type Placement struct {
	Rotation int
	X        int
	Score    float64
}

// Best evaluates every rotation and column for the current piece. ok is
// false when no placement fits.
func (b *Bot) Best(g *tetris.Game) (best Placement, ok bool) {
	cur := g.Current()
	board := g.Board()
	best.Score = math.Inf(-1)

	m := cur.Matrix
	for rot := range 4 {
		for x := -tetris.MaxShapeSize + 1; x < tetris.Cols; x++ {
			p := cur
			p.Matrix = m
			p.X = x
			if board.Collides(&p, 0, 0, nil) {
				continue
			}
			for !board.Collides(&p, 0, 1, nil) {
				p.Y++
			}

			score := b.evaluate(board, &p)
			if score > best.Score {
				best = Placement{Rotation: rot, X: x, Score: score}
				ok = true
			}
		}
		m = m.RotateCW()
	}
	return best, ok
}

func (b *Bot) evaluate(board *tetris.Board, p *tetris.Piece) float64 {
	sim := board.Clone()
	hidden := sim.Merge(p)
	lines := sim.ClearFullLines()

	f := Measure(sim)
	score := b.Weights.Lines*float64(lines) -
		b.Weights.Height*float64(f.AggregateHeight) -
		b.Weights.Holes*float64(f.Holes) -
		b.Weights.Bumpiness*float64(f.Bumpiness)
	if hidden > 0 {
		score -= lockOutPenalty
	}
	return score
}

// Step plays exactly one piece: it rotates and shifts toward the best
// placement, then hard drops. It reports false when the game is not
// playing.
func (b *Bot) Step(g *tetris.Game) bool {
	if g.State() != tetris.Playing {
		return false
	}

	target, ok := b.Best(g)
	if ok {
		for range target.Rotation {
			if !g.Rotate() {
				break
			}
		}
		for g.Current().X > target.X {
			if !g.MoveLeft() {
				break
			}
		}
		for g.Current().X < target.X {
			if !g.MoveRight() {
				break
			}
		}
	}
	return g.HardDrop()
}

// Play runs Step until the game ends or maxPieces pieces have been played.
// maxPieces <= 0 means no limit. It returns the number of pieces played.
func (b *Bot) Play(g *tetris.Game, maxPieces int) int {
	played := 0
	for maxPieces <= 0 || played < maxPieces {
		if !b.Step(g) {
			break
		}
		played++
	}
	return played
}
