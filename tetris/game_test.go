package tetris

import (
	"image/color"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence deals kinds in a fixed cycle.
type sequence struct {
	kinds []Kind
	i     int
}

func (s *sequence) Next() Kind {
	k := s.kinds[s.i%len(s.kinds)]
	s.i++
	return k
}

func newTestGame(t *testing.T, kinds ...Kind) (*Game, *[]Event) {
	t.Helper()
	var events []Event
	g := New(
		WithRandomizer(&sequence{kinds: kinds}),
		WithListener(func(e Event) { events = append(events, e) }),
	)
	return g, &events
}

var filler = color.RGBA{0x40, 0x40, 0x40, 0xff}

func fill(b *Board, y int, xs ...int) {
	for _, x := range xs {
		b.Set(x, y, Occupied(filler))
	}
}

func span(from, to int) []int {
	var xs []int
	for x := from; x <= to; x++ {
		xs = append(xs, x)
	}
	return xs
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

func TestNewGame(t *testing.T) {
	g, _ := newTestGame(t, T, O)

	assert.Equal(t, Playing, g.State())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, 0, g.Lines())
	assert.Equal(t, 1, g.Level())
	assert.Equal(t, T, g.Current().Kind)
	assert.Equal(t, O, g.Next().Kind)
	assert.Equal(t, 3, g.Current().X)
	assert.Equal(t, SpawnRow, g.Current().Y)
	assert.Equal(t, 0, g.Board().Filled())
	assert.Equal(t, 2, g.Stats().TotalSpawned())
}

func TestNewGameWithSeedIsReproducible(t *testing.T) {
	a := New(WithSeed(5))
	b := New(WithSeed(5))
	for range 20 {
		assert.Equal(t, a.Current().Kind, b.Current().Kind)
		a.HardDrop()
		b.HardDrop()
	}
}

func TestFreshSpawnNeverCollides(t *testing.T) {
	for _, k := range Kinds {
		g, _ := newTestGame(t, k)
		assert.False(t, g.Board().Collides(g.current, 0, 0, nil), "kind %s", k)
	}
}

func TestDropInterval(t *testing.T) {
	tests := []struct {
		level int
		want  time.Duration
	}{
		{0, 650 * time.Millisecond},
		{1, 650 * time.Millisecond},
		{2, 595 * time.Millisecond},
		{10, 155 * time.Millisecond},
		{11, 100 * time.Millisecond},
		{30, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DropInterval(tt.level), "level %d", tt.level)
	}

	for level := 1; DropInterval(level) > minDropInterval; level++ {
		assert.Greater(t, DropInterval(level), DropInterval(level+1))
	}
}

func TestLineScore(t *testing.T) {
	assert.Equal(t, 0, LineScore(0))
	assert.Equal(t, 100, LineScore(1))
	assert.Equal(t, 300, LineScore(2))
	assert.Equal(t, 500, LineScore(3))
	assert.Equal(t, 800, LineScore(4))
	assert.Equal(t, 500, LineScore(5))
}

func TestMove(t *testing.T) {
	g, events := newTestGame(t, O)

	for range 4 {
		require.True(t, g.MoveLeft())
	}
	assert.Equal(t, 0, g.Current().X)
	assert.False(t, g.MoveLeft())
	assert.Equal(t, 0, g.Current().X)

	for range 8 {
		require.True(t, g.MoveRight())
	}
	assert.False(t, g.MoveRight())
	assert.Equal(t, Cols-2, g.Current().X)

	assert.Len(t, *events, 12)
}

func TestRotate(t *testing.T) {
	g, events := newTestGame(t, T)
	start := g.Current()

	for range 4 {
		require.True(t, g.Rotate())
	}
	assert.Equal(t, start.Matrix, g.Current().Matrix)
	assert.Equal(t, start.X, g.Current().X)
	assert.Equal(t, 0, g.Current().Rotation)
	assert.Equal(t, []EventType{EventRotate, EventRotate, EventRotate, EventRotate}, eventTypes(*events))
}

func TestRotateWallKick(t *testing.T) {
	g, _ := newTestGame(t, I)
	g.current.Matrix = ShapeOf(I).RotateCW()
	g.current.Rotation = 1
	g.current.X = -2
	g.current.Y = 5
	require.False(t, g.Board().Collides(g.current, 0, 0, nil))

	require.True(t, g.Rotate())
	assert.Equal(t, 0, g.Current().X)
	assert.Equal(t, 2, g.Current().Rotation)
	assert.Equal(t, ShapeOf(I).RotateCW().RotateCW(), g.Current().Matrix)
}

func TestRotateRejectedWhenEveryKickCollides(t *testing.T) {
	g, events := newTestGame(t, I)
	g.current.Matrix = ShapeOf(I).RotateCW()
	g.current.Rotation = 1
	g.current.X = -2
	g.current.Y = 5
	fill(g.board, 7, span(1, 9)...)
	before := g.Current()

	assert.False(t, g.Rotate())
	assert.Equal(t, before, g.Current())
	assert.Empty(t, *events)
}

func TestSoftDrop(t *testing.T) {
	g, _ := newTestGame(t, T, O)

	require.True(t, g.SoftDrop())
	assert.Equal(t, SpawnRow+1, g.Current().Y)
	assert.Equal(t, 1, g.Score())
	assert.Equal(t, 1, g.Stats().SoftDropped)
}

func TestSoftDropLocksWhenBlocked(t *testing.T) {
	g, events := newTestGame(t, T, O)
	g.current.Y = Rows - 2

	require.True(t, g.SoftDrop())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, 4, g.Board().Filled())
	assert.Equal(t, O, g.Current().Kind)
	assert.Equal(t, T, g.Next().Kind)
	assert.Equal(t, []EventType{EventLock}, eventTypes(*events))
}

func TestHardDrop(t *testing.T) {
	g, events := newTestGame(t, T, O)

	require.True(t, g.HardDrop())
	assert.Equal(t, 20, g.Score())
	assert.Equal(t, 4, g.Board().Filled())
	assert.True(t, g.Board().At(4, 18).Filled())
	assert.True(t, g.Board().At(3, 19).Filled())
	assert.Equal(t, O, g.Current().Kind)
	assert.Equal(t, 1, g.Stats().HardDrops)
	require.Len(t, *events, 2)
	assert.Equal(t, Event{Type: EventHardDrop, Count: 20, Level: 1, Score: 20}, (*events)[0])
	assert.Equal(t, EventLock, (*events)[1].Type)
}

func TestLockClearsTwoLinesWithOPiece(t *testing.T) {
	g, events := newTestGame(t, O, T)
	fill(g.board, Rows-2, span(2, 9)...)
	fill(g.board, Rows-1, span(2, 9)...)
	g.current.X = 0
	g.current.Y = Rows - 2

	require.True(t, g.SoftDrop())

	assert.Equal(t, 300, g.Score())
	assert.Equal(t, 2, g.Lines())
	assert.Equal(t, 1, g.Level())
	assert.Equal(t, 0, g.Board().Filled())
	assert.Equal(t, 1, g.Stats().Clears[2])
	assert.Equal(t, []EventType{EventLock, EventLineClear}, eventTypes(*events))
	assert.Equal(t, 2, (*events)[1].Count)
}

func TestTetrisScoreUsesCurrentLevel(t *testing.T) {
	g, _ := newTestGame(t, I)
	g.level = 3
	g.lines = 20
	for y := Rows - 4; y < Rows; y++ {
		fill(g.board, y, span(1, 9)...)
	}
	g.current.Matrix = ShapeOf(I).RotateCW()
	g.current.X = -2
	g.current.Y = Rows - 4

	g.SoftDrop()

	assert.Equal(t, 800*3, g.Score())
	assert.Equal(t, 24, g.Lines())
	assert.Equal(t, 3, g.Level())
	assert.Equal(t, 1, g.Stats().Clears[4])
}

func TestLevelUpAfterTenLines(t *testing.T) {
	g, events := newTestGame(t, I)
	g.lines = 9
	fill(g.board, Rows-1, span(4, 9)...)
	g.current.X = 0
	g.current.Y = Rows - 2
	require.Equal(t, 650*time.Millisecond, DropInterval(g.Level()))

	g.SoftDrop()

	assert.Equal(t, 10, g.Lines())
	assert.Equal(t, 2, g.Level())
	assert.Equal(t, 100, g.Score())
	assert.Equal(t, 595*time.Millisecond, DropInterval(g.Level()))
	assert.Equal(t, []EventType{EventLock, EventLineClear, EventLevelUp}, eventTypes(*events))
	assert.Equal(t, 2, (*events)[2].Level)
}

func TestLockOutEndsGame(t *testing.T) {
	g, events := newTestGame(t, T)
	for y := range Rows {
		fill(g.board, y, span(0, 8)...)
	}

	require.True(t, g.HardDrop())
	assert.Equal(t, GameOver, g.State())
	assert.True(t, g.Over())
	assert.Equal(t, EventGameOver, (*events)[len(*events)-1].Type)

	snap := g.Snapshot()
	assert.False(t, g.MoveLeft())
	assert.False(t, g.MoveRight())
	assert.False(t, g.Rotate())
	assert.False(t, g.SoftDrop())
	assert.False(t, g.HardDrop())
	assert.False(t, g.TogglePause())
	g.Update(10 * time.Second)
	assert.Equal(t, snap, g.Snapshot())

	require.True(t, g.Restart())
	assert.Equal(t, Playing, g.State())
	assert.Equal(t, 0, g.Board().Filled())
	assert.Equal(t, 0, g.Score())
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	g, _ := newTestGame(t, O, T)
	g.next.Y = 0
	fill(g.board, 1, 4)
	g.current.X = 0
	g.current.Y = Rows - 2

	g.SoftDrop()

	assert.Equal(t, GameOver, g.State())
}

func TestGravityLockOutEndsGame(t *testing.T) {
	g, events := newTestGame(t, O, T)
	for y := range Rows {
		fill(g.board, y, 4, 5)
	}

	g.Update(5 * time.Second)

	assert.True(t, g.Over())
	assert.Equal(t, 1, g.Stats().Locks)
	assert.Equal(t, []EventType{EventLock, EventGameOver}, eventTypes(*events))
}

func TestPause(t *testing.T) {
	g, events := newTestGame(t, T)

	require.True(t, g.TogglePause())
	assert.True(t, g.Paused())
	before := g.Current()

	assert.False(t, g.MoveLeft())
	assert.False(t, g.Rotate())
	assert.False(t, g.SoftDrop())
	assert.False(t, g.HardDrop())
	g.Update(5 * time.Second)
	assert.Equal(t, before, g.Current())

	require.True(t, g.TogglePause())
	assert.Equal(t, Playing, g.State())
	assert.Equal(t, []EventType{EventPause, EventResume}, eventTypes(*events))
}

func TestUpdateCatchesUp(t *testing.T) {
	g, _ := newTestGame(t, T)

	g.Update(3*650*time.Millisecond + 10*time.Millisecond)
	assert.Equal(t, SpawnRow+3, g.Current().Y)
	assert.Equal(t, 10*time.Millisecond, g.fallAcc)
	assert.Equal(t, 0, g.Score(), "gravity does not score")

	g.Update(640 * time.Millisecond)
	assert.Equal(t, SpawnRow+4, g.Current().Y)
	assert.Equal(t, time.Duration(0), g.fallAcc)

	g.Update(0)
	g.Update(-time.Second)
	assert.Equal(t, SpawnRow+4, g.Current().Y)
}

func TestUpdateLocksAtFloor(t *testing.T) {
	g, _ := newTestGame(t, T, O)

	// 20 rows to the floor plus one step to lock
	g.Update(21 * 650 * time.Millisecond)

	assert.Equal(t, 4, g.Board().Filled())
	assert.Equal(t, O, g.Current().Kind)
	assert.Equal(t, 1, g.Stats().Locks)
}

func TestSnapshotGhost(t *testing.T) {
	g, _ := newTestGame(t, O)
	snap := g.Snapshot()
	assert.Equal(t, Rows-2, snap.GhostY)
	assert.Equal(t, Rows-2-SpawnRow, g.DropDistance())
}

func TestStatsResetWithGame(t *testing.T) {
	g, _ := newTestGame(t, T, O, I)
	g.HardDrop()
	g.HardDrop()
	require.Equal(t, 2, g.Stats().Locks)
	require.Equal(t, 4, g.Stats().TotalSpawned())

	g.Reset()
	assert.Equal(t, 0, g.Stats().Locks)
	assert.Equal(t, 2, g.Stats().TotalSpawned())
}

// Random command streams must keep the derived counters consistent and never
// leave a full row on the board.
func TestRandomPlayInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	g := New(WithRandomizer(NewBag(3)))
	prevLines := 0

	for i := range 5000 {
		switch rng.IntN(6) {
		case 0:
			g.MoveLeft()
		case 1:
			g.MoveRight()
		case 2:
			g.Rotate()
		case 3:
			g.SoftDrop()
		case 4:
			g.HardDrop()
		case 5:
			g.Update(time.Duration(rng.IntN(800)) * time.Millisecond)
		}

		require.Equal(t, g.Lines()/10+1, g.Level(), "step %d", i)
		require.GreaterOrEqual(t, g.Lines(), prevLines)
		for y := range Rows {
			require.False(t, g.Board().RowFull(y), "step %d row %d", i, y)
		}
		if g.State() == Playing {
			require.False(t, g.Board().Collides(g.current, 0, 0, nil), "step %d", i)
		}
		prevLines = g.Lines()

		if g.Over() {
			g.Restart()
			prevLines = 0
		}
	}
}
