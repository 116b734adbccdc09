package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spacedrift/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Tick      int64
	Time      float64
	Speed     float64
	Paused    bool
	Zoom      float64
	Entities  int
	Particles int
	Stars     int
	FPS       int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Entities: %d | Particles: %d | Stars: %d", data.Entities, data.Particles, data.Stars),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Time: %.1fs | Speed: %.2fx | Zoom: %.1f | FPS: %d",
			data.Tick, data.Time, data.Speed, data.Zoom, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-stage timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	phases := telemetry.Phases()
	height := r.Theme.Padding*2 + r.Theme.LineHeight*int32(len(phases)+3)
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	inner := p.width - 2*r.Theme.Padding

	y = r.DrawSectionHeader(x, y, "Stages")
	y = r.DrawLabelValue(x, y, "tick", fmt.Sprintf("%s (%.0f/s)",
		stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond))
	for _, phase := range phases {
		y = r.DrawPercentBar(x, y, phase, stats.PhasePct[phase], inner)
	}
}

// SpeedSlider is a raygui slider for the simulation speed.
type SpeedSlider struct {
	Bounds   rl.Rectangle
	Min, Max float32
}

// NewSpeedSlider creates a slider at bounds covering [-2, 4].
func NewSpeedSlider(bounds rl.Rectangle) *SpeedSlider {
	return &SpeedSlider{Bounds: bounds, Min: -2, Max: 4}
}

// Draw renders the slider and returns the selected speed and whether the
// user changed it this frame.
func (s *SpeedSlider) Draw(speed float64) (float64, bool) {
	rl.DrawText("Speed", int32(s.Bounds.X), int32(s.Bounds.Y)-16, 14, rl.Gray)
	cur := float32(speed)
	next := gui.SliderBar(s.Bounds, fmt.Sprintf("%.0f", s.Min), fmt.Sprintf("%.0f", s.Max), cur, s.Min, s.Max)
	if next == cur {
		return speed, false
	}
	return float64(next), true
}
