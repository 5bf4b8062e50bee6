package tetris

import (
	"math/rand/v2"
	"time"
)

// State is the phase of the game state machine.
type State uint8

const (
	Playing State = iota
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

const (
	baseDropInterval = 650 * time.Millisecond
	dropIntervalStep = 55 * time.Millisecond
	minDropInterval  = 100 * time.Millisecond
	linesPerLevel    = 10
)

// DropInterval is the gravity period at the given level.
func DropInterval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	d := baseDropInterval - time.Duration(level-1)*dropIntervalStep
	return max(d, minDropInterval)
}

var lineScores = [...]int{0, 100, 300, 500, 800}

// LineScore is the base award for clearing n rows with one lock, before the level multiplier.
func LineScore(n int) int {
	if n < 0 {
		return 0
	}
	if n < len(lineScores) {
		return lineScores[n]
	}
	return n * 100
}

// Game owns the complete state of one session and applies every transition.
// It is not safe for concurrent use; callers drive it from a single goroutine.
type Game struct {
	board   *Board
	current *Piece
	next    *Piece

	score int
	lines int
	level int
	state State

	fallAcc time.Duration

	random Randomizer
	seed   uint64
	seeded bool
	events *EventBus
	stats  *Stats
}

type Option func(*Game)

// WithRandomizer sets the piece source. It takes precedence over WithSeed.
func WithRandomizer(r Randomizer) Option {
	return func(g *Game) {
		g.random = r
	}
}

// WithSeed makes the default uniform randomizer reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.seed = seed
		g.seeded = true
	}
}

// WithListener subscribes fn to every event.
func WithListener(fn Listener) Option {
	return func(g *Game) {
		g.events.SubscribeAll(fn)
	}
}

// New creates a game ready to play.
func New(opts ...Option) *Game {
	g := &Game{
		board:  NewBoard(),
		events: NewEventBus(),
		stats:  newStats(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.random == nil {
		if !g.seeded {
			g.seed = rand.Uint64()
		}
		g.random = NewUniform(g.seed)
	}
	g.Reset()
	return g
}

// Reset returns the game to its initial state: empty board, fresh pieces,
// zero score and lines, level 1, playing.
func (g *Game) Reset() {
	g.board.Reset()
	g.stats.reset()
	g.current = g.spawn()
	g.next = g.spawn()
	g.score = 0
	g.lines = 0
	g.level = 1
	g.state = Playing
	g.fallAcc = 0
}

func (g *Game) spawn() *Piece {
	k := g.random.Next()
	g.stats.spawned(k)
	return SpawnPiece(k)
}

func (g *Game) emit(t EventType, count int) {
	g.events.Emit(Event{Type: t, Count: count, Level: g.level, Score: g.score})
}

// Restart is the restart command. It is accepted in every state.
func (g *Game) Restart() bool {
	g.Reset()
	g.emit(EventRestart, 0)
	return true
}

// TogglePause switches between Playing and Paused. It does nothing after game over.
func (g *Game) TogglePause() bool {
	switch g.state {
	case Playing:
		g.state = Paused
		g.emit(EventPause, 0)
	case Paused:
		g.state = Playing
		g.emit(EventResume, 0)
	default:
		return false
	}
	return true
}

func (g *Game) MoveLeft() bool {
	return g.move(-1)
}

func (g *Game) MoveRight() bool {
	return g.move(1)
}

func (g *Game) move(dx int) bool {
	if g.state != Playing || !g.current.shift(g.board, dx, 0) {
		return false
	}
	g.emit(EventMove, 0)
	return true
}

// Rotate turns the current piece clockwise, applying wall kicks.
func (g *Game) Rotate() bool {
	if g.state != Playing || !g.current.rotate(g.board) {
		return false
	}
	g.emit(EventRotate, 0)
	return true
}

// SoftDrop moves the current piece down one row, awarding a point, or locks
// it when it cannot descend.
func (g *Game) SoftDrop() bool {
	if g.state != Playing {
		return false
	}
	if g.current.shift(g.board, 0, 1) {
		g.score++
		g.stats.SoftDropped++
		return true
	}
	g.lock()
	return true
}

// HardDrop drops the current piece to its resting row, awarding a point per
// row, and locks it.
func (g *Game) HardDrop() bool {
	if g.state != Playing {
		return false
	}
	d := g.current.dropDistance(g.board)
	g.current.Y += d
	g.score += d
	g.stats.HardDrops++
	g.emit(EventHardDrop, d)
	g.lock()
	return true
}

// Update advances gravity by elapsed wall time. Long frames apply several
// steps so the fall rate does not depend on frame rate.
func (g *Game) Update(elapsed time.Duration) {
	if g.state != Playing || elapsed <= 0 {
		return
	}
	g.fallAcc += elapsed
	interval := DropInterval(g.level)
	for g.fallAcc >= interval {
		g.fallAcc -= interval
		g.gravity()
		if g.state == GameOver {
			return
		}
	}
}

// gravity is the automatic one-row fall; it scores nothing.
func (g *Game) gravity() {
	if g.current.shift(g.board, 0, 1) {
		return
	}
	g.lock()
}

func (g *Game) lock() {
	hidden := g.board.Merge(g.current)
	g.stats.Locks++
	g.emit(EventLock, 0)

	if cleared := g.board.ClearFullLines(); cleared > 0 {
		g.stats.cleared(cleared)
		g.score += LineScore(cleared) * g.level
		g.lines += cleared
		g.emit(EventLineClear, cleared)

		if level := g.lines/linesPerLevel + 1; level > g.level {
			g.level = level
			g.emit(EventLevelUp, 0)
		}
	}

	g.current = g.next
	g.next = g.spawn()

	if hidden > 0 || g.board.Collides(g.current, 0, 0, nil) {
		g.state = GameOver
		g.emit(EventGameOver, 0)
	}
}

// Board returns the playfield. Callers must treat it as read-only.
func (g *Game) Board() *Board {
	return g.board
}

// Current returns a copy of the falling piece.
func (g *Game) Current() Piece {
	return *g.current
}

// Next returns a copy of the lookahead piece.
func (g *Game) Next() Piece {
	return *g.next
}

func (g *Game) Score() int   { return g.score }
func (g *Game) Lines() int   { return g.lines }
func (g *Game) Level() int   { return g.level }
func (g *Game) State() State { return g.state }
func (g *Game) Paused() bool { return g.state == Paused }
func (g *Game) Over() bool   { return g.state == GameOver }

// Stats returns the per-game counters. They are reset by Reset.
func (g *Game) Stats() *Stats {
	return g.stats
}

// Events returns the bus used to notify collaborators.
func (g *Game) Events() *EventBus {
	return g.events
}

// DropDistance is how many rows the current piece can fall before resting.
func (g *Game) DropDistance() int {
	return g.current.dropDistance(g.board)
}

// Snapshot is a value copy of everything a renderer or status display reads.
type Snapshot struct {
	Board   Board
	Current Piece
	Next    Piece
	GhostY  int
	Score   int
	Lines   int
	Level   int
	State   State
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:   *g.board,
		Current: *g.current,
		Next:    *g.next,
		GhostY:  g.current.Y + g.DropDistance(),
		Score:   g.score,
		Lines:   g.lines,
		Level:   g.level,
		State:   g.state,
	}
}
