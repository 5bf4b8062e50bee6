// Package debugui provides a Dear ImGui overlay for engine applications.
// Panels are registered on an Overlay resource and rendered by ImguiSystem.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetromino/engine"
)

// ImguiItem holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// Overlay is the resource listing every panel to draw each frame.
type Overlay struct {
	Items   []ImguiItem
	Visible bool
}

// Add appends a render function to the overlay.
func (o *Overlay) Add(render func()) {
	o.Items = append(o.Items, ImguiItem{Render: render})
}

// ImguiInputState tracks Dear ImGui's input capture state as a resource.
// Input systems consult it so keys typed into a panel do not reach the game.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates ImguiInputState and defers every overlay render
// function to the end of the frame.
type ImguiSystem struct {
	Overlay    engine.Singleton[Overlay]
	InputState engine.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *engine.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	overlay := i.Overlay.Get()
	if overlay == nil || !overlay.Visible {
		return
	}
	for _, item := range overlay.Items {
		frame.Commands.Defer(item.Render)
	}
}
