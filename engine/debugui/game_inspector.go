package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetromino/tetris"
)

var clearNames = [...]string{"", "Single", "Double", "Triple", "Tetris"}

// GameInspector shows the live state of a game.
type GameInspector struct {
	Game      *tetris.Game
	ShowBoard bool
}

func (gi *GameInspector) Render() {
	if !imgui.BeginV("Game Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	g := gi.Game

	imgui.Text(fmt.Sprintf("State: %s", g.State()))
	imgui.Text(fmt.Sprintf("Score: %d  Lines: %d  Level: %d", g.Score(), g.Lines(), g.Level()))
	imgui.Text(fmt.Sprintf("Drop interval: %s", tetris.DropInterval(g.Level())))

	cur, next := g.Current(), g.Next()
	imgui.Text(fmt.Sprintf("Current: %s at (%d,%d) rot %d, drop %d", cur.Kind, cur.X, cur.Y, cur.Rotation, g.DropDistance()))
	imgui.Text(fmt.Sprintf("Next: %s", next.Kind))

	board := g.Board()
	imgui.Text(fmt.Sprintf("Board: %d filled, height %d", board.Filled(), board.Height()))

	stats := g.Stats()
	imgui.Separator()
	if imgui.TreeNodeStr("Spawns") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SpawnTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Kind")
			imgui.TableSetupColumn("Count")
			imgui.TableHeadersRow()
			for _, k := range tetris.Kinds {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(k.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", stats.Spawned(k)))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Clears") {
		for n := 1; n < len(stats.Clears); n++ {
			imgui.BulletText(fmt.Sprintf("%s: %d", clearNames[n], stats.Clears[n]))
		}
		imgui.BulletText(fmt.Sprintf("Locks: %d  Hard drops: %d  Soft rows: %d", stats.Locks, stats.HardDrops, stats.SoftDropped))
		imgui.TreePop()
	}

	if gi.ShowBoard && imgui.TreeNodeStr("Board") {
		imgui.Text(BoardText(board, cur))
		imgui.TreePop()
	}

	imgui.End()
}

// BoardText draws the board as text: '#' locked, '@' falling, '.' empty.
func BoardText(b *tetris.Board, cur tetris.Piece) string {
	var rows [tetris.Rows][tetris.Cols]byte
	for y := range tetris.Rows {
		for x := range tetris.Cols {
			rows[y][x] = '.'
			if b.At(x, y).Filled() {
				rows[y][x] = '#'
			}
		}
	}
	for x, y := range cur.Cells() {
		if y >= 0 && y < tetris.Rows && x >= 0 && x < tetris.Cols {
			rows[y][x] = '@'
		}
	}

	var sb strings.Builder
	for y := range rows {
		sb.Write(rows[y][:])
		sb.WriteByte('\n')
	}
	return sb.String()
}
