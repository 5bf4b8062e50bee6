package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tetromino/engine"
	"github.com/plus3/tetromino/tetris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	CellSize     = 30
	PanelWidth   = 180
	ScreenWidth  = tetris.Cols*CellSize + PanelWidth
	ScreenHeight = tetris.Rows * CellSize
	previewCell  = 20
)

var (
	backgroundColor = color.RGBA{15, 23, 42, 255}
	gridColor       = color.RGBA{30, 41, 59, 255}
	panelColor      = color.RGBA{2, 6, 23, 255}
	ghostAlpha      = uint8(70)
)

// Canvas is the image the draw scheduler renders into this frame.
type Canvas struct {
	Screen *ebiten.Image
}

// RenderSystem draws the playfield, ghost, falling piece and next preview.
type RenderSystem struct {
	Session engine.Singleton[Session]
	Canvas  engine.Singleton[Canvas]
}

func (s *RenderSystem) Execute(frame *engine.UpdateFrame) {
	session, canvas := s.Session.Get(), s.Canvas.Get()
	if session == nil || canvas == nil || canvas.Screen == nil {
		return
	}
	screen := canvas.Screen
	snap := session.Game.Snapshot()

	vector.DrawFilledRect(screen, 0, 0, tetris.Cols*CellSize, tetris.Rows*CellSize, backgroundColor, false)
	vector.DrawFilledRect(screen, tetris.Cols*CellSize, 0, PanelWidth, ScreenHeight, panelColor, false)
	for x := range tetris.Cols {
		for y := range tetris.Rows {
			vector.StrokeRect(screen, float32(x*CellSize), float32(y*CellSize), CellSize, CellSize, 1, gridColor, false)
		}
	}

	for y := range tetris.Rows {
		for x := range tetris.Cols {
			if c, ok := snap.Board.At(x, y).Color(); ok {
				drawCell(screen, x, y, c)
			}
		}
	}

	if snap.State != tetris.GameOver {
		ghost := snap.Current
		ghost.Y = snap.GhostY
		faded := color.NRGBA{R: ghost.Color.R, G: ghost.Color.G, B: ghost.Color.B, A: ghostAlpha}
		drawPiece(screen, &ghost, faded)
		drawPiece(screen, &snap.Current, snap.Current.Color)
	}

	s.drawPreview(screen, &snap.Next)
}

func (s *RenderSystem) drawPreview(screen *ebiten.Image, next *tetris.Piece) {
	ox := float32(tetris.Cols*CellSize + 20)
	oy := float32(40)
	for cx, cy := range next.Matrix.Occupied() {
		x := ox + float32(cx*previewCell)
		y := oy + float32(cy*previewCell)
		vector.DrawFilledRect(screen, x, y, previewCell-1, previewCell-1, next.Color, false)
	}
}

// drawPiece draws the visible cells of p; rows above the field are skipped.
func drawPiece(screen *ebiten.Image, p *tetris.Piece, c color.Color) {
	for x, y := range p.Cells() {
		if y < 0 {
			continue
		}
		drawCell(screen, x, y, c)
	}
}

func drawCell(screen *ebiten.Image, x, y int, c color.Color) {
	vector.DrawFilledRect(screen, float32(x*CellSize+1), float32(y*CellSize+1), CellSize-2, CellSize-2, c, false)
}

// HUDSystem prints the score panel and status line.
type HUDSystem struct {
	Session engine.Singleton[Session]
	Canvas  engine.Singleton[Canvas]
	printer *message.Printer
}

func (s *HUDSystem) Execute(frame *engine.UpdateFrame) {
	session, canvas := s.Session.Get(), s.Canvas.Get()
	if session == nil || canvas == nil || canvas.Screen == nil {
		return
	}
	if s.printer == nil {
		s.printer = message.NewPrinter(language.English)
	}

	snap := session.Game.Snapshot()
	x := tetris.Cols*CellSize + 20
	ebitenutil.DebugPrintAt(canvas.Screen, "NEXT", x, 16)
	for i, line := range hudLines(s.printer, snap) {
		ebitenutil.DebugPrintAt(canvas.Screen, line, x, 140+i*20)
	}
	if status := statusLine(snap.State); status != "" {
		ebitenutil.DebugPrintAt(canvas.Screen, status, 20, ScreenHeight/2)
	}
}

func hudLines(p *message.Printer, snap tetris.Snapshot) []string {
	return []string{
		p.Sprintf("Score: %d", snap.Score),
		p.Sprintf("Lines: %d", snap.Lines),
		p.Sprintf("Level: %d", snap.Level),
	}
}

func statusLine(state tetris.State) string {
	switch state {
	case tetris.Paused:
		return "Paused"
	case tetris.GameOver:
		return "Game Over - press R to restart"
	default:
		return ""
	}
}
