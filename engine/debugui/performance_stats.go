package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetromino/engine"
)

// FrameHistory is a fixed-size ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
	count   int
}

func NewFrameHistory(frames int) *FrameHistory {
	if frames < 1 {
		frames = 1
	}
	return &FrameHistory{samples: make([]float32, frames)}
}

// Push records a frame duration.
func (h *FrameHistory) Push(d time.Duration) {
	h.samples[h.index] = float32(d.Seconds() * 1000.0)
	h.index = (h.index + 1) % len(h.samples)
	if h.count < len(h.samples) {
		h.count++
	}
}

// Average is the mean of recorded samples in milliseconds, 0 when empty.
func (h *FrameHistory) Average() float32 {
	if h.count == 0 {
		return 0
	}
	var total float32
	for i := range h.count {
		total += h.samples[i]
	}
	return total / float32(h.count)
}

// NamedScheduler labels a scheduler in the stats panel.
type NamedScheduler struct {
	Name      string
	Scheduler *engine.Scheduler
}

// PerformanceStats renders frame timing and per-system scheduler timings.
type PerformanceStats struct {
	History    *FrameHistory
	Schedulers []NamedScheduler
	Resources  *engine.Resources
}

func NewPerformanceStats(historyFrames int, resources *engine.Resources, schedulers ...NamedScheduler) *PerformanceStats {
	return &PerformanceStats{
		History:    NewFrameHistory(historyFrames),
		Schedulers: schedulers,
		Resources:  resources,
	}
}

func (ps *PerformanceStats) Render() {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := ps.History.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.History.samples[0], int32(len(ps.History.samples)))

	for _, named := range ps.Schedulers {
		name := named.Name
		if !imgui.TreeNodeStr(name + " systems") {
			continue
		}
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV(name+"SystemTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, timing := range named.Scheduler.Timings() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(timing.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", timing.Runs))
				imgui.TableNextColumn()
				imgui.Text(timing.Avg().Round(time.Microsecond).String())
				imgui.TableNextColumn()
				imgui.Text(timing.Max.Round(time.Microsecond).String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if ps.Resources != nil && imgui.TreeNodeStr("Resources") {
		for _, t := range ps.Resources.Stats().Types {
			imgui.BulletText(t)
		}
		imgui.TreePop()
	}

	imgui.End()
}
