package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tetromino/engine"
	debugui_ebiten "github.com/plus3/tetromino/engine/debugui/ebiten"
)

// App implements ebiten.Game with one scheduler for updates and one for drawing.
type App struct {
	resources *engine.Resources
	updates   *engine.Scheduler
	draws     *engine.Scheduler
	frameTime func(time.Duration)
	last      time.Time

	// imgui is nil unless the debug overlay is enabled.
	imgui *debugui_ebiten.ImguiBackend
}

func (a *App) Update() error {
	now := time.Now()
	if a.frameTime != nil && !a.last.IsZero() {
		a.frameTime(now.Sub(a.last))
	}
	a.last = now

	dt := time.Second / time.Duration(ebiten.TPS())
	if a.imgui == nil {
		a.updates.Once(dt)
		return nil
	}
	a.imgui.Frame(func() { a.updates.Once(dt) })
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	var canvas *Canvas
	if a.resources.Read(&canvas) {
		canvas.Screen = screen
	}
	a.draws.Once(0)
	if a.imgui != nil {
		a.imgui.Overlay(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.imgui != nil {
		a.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return ScreenWidth, ScreenHeight
}
