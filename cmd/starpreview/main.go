// Starfield preview tool - inspect parallax planes with sliders.
//
// Usage: go run ./cmd/starpreview
package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacedrift/parallax"
	"github.com/pthm-cable/spacedrift/renderer"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 600
	panelWidth   = windowWidth - previewSize - 30
	panSpeed     = 200 // pixels per second
)

// previewParams holds the slider state.
type previewParams struct {
	Plane          int // -1 shows all planes
	Zoom           float32
	SectorSize     float32
	StarsPerSector int
	StepsPerPlane  int
	Salt           uint64
	ShowSectors    bool
}

func defaultParams() previewParams {
	cfg := parallax.DefaultConfig()
	return previewParams{
		Plane:          -1,
		Zoom:           float32(cfg.DefaultZoom),
		SectorSize:     float32(cfg.SectorSize),
		StarsPerSector: cfg.StarsPerSector,
		StepsPerPlane:  cfg.ZoomStepsPerPlane,
	}
}

func (p previewParams) config() parallax.Config {
	cfg := parallax.DefaultConfig()
	cfg.SectorSize = float64(p.SectorSize)
	cfg.StarsPerSector = p.StarsPerSector
	cfg.ZoomStepsPerPlane = p.StepsPerPlane
	return cfg
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Starfield Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	center := r2.Vec{}
	stars := renderer.NewStarRenderer()

	var gen *parallax.Generator
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			g, err := parallax.NewGenerator(params.config(), parallax.HashSeeds{Salt: params.Salt})
			if err != nil {
				slog.Error("invalid starfield settings", "error", err)
				os.Exit(1)
			}
			gen = g
			needsRegen = false
		}

		// Pan in screen pixels so speed feels the same at every zoom.
		step := float64(panSpeed*rl.GetFrameTime()) / float64(params.Zoom)
		if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
			center.X -= step
		}
		if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
			center.X += step
		}
		if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
			center.Y -= step
		}
		if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
			center.Y += step
		}

		view := parallax.View{Center: center, Zoom: float64(params.Zoom), Width: previewSize, Height: previewSize}
		layers, err := gen.Layers(view)
		if err != nil {
			slog.Warn("layers failed", "error", err)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Preview
		rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Black)
		rl.BeginScissorMode(10, 10, previewSize, previewSize)
		drawn, skipped := 0, 0
		for _, l := range layers {
			if params.Plane >= 0 && l.Plane != params.Plane {
				continue
			}
			if l.Skipped {
				skipped++
				continue
			}
			if params.ShowSectors {
				drawSectorGrid(l, float64(params.SectorSize))
			}
			draws := layerDraws(l, gen.StarScreenRadius())
			stars.Draw(draws)
			drawn += len(draws)
		}
		rl.EndScissorMode()
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Stats
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Center: (%.1f, %.1f)  Stars: %d  Skipped planes: %d", center.X, center.Y, drawn, skipped), 15, statsY, 16, rl.DarkGray)
		statsY += 20
		for _, l := range layers {
			rl.DrawText(fmt.Sprintf("plane %d: zoom %.3f, %d sectors", l.Plane, l.Zoom, l.Sectors), 15, statsY, 14, rl.Gray)
			statsY += 16
		}

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)
		sliderW := float32(panelWidth - 80)
		valueX := int32(panelX + float32(panelWidth-70))

		rl.DrawText("Starfield Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Plane (-1 = all)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newPlane := gui.SliderBar(rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 20},
			"-1", fmt.Sprint(parallax.DefaultConfig().Planes-1),
			float32(params.Plane), -1, float32(parallax.DefaultConfig().Planes-1))
		rl.DrawText(fmt.Sprintf("%d", params.Plane), valueX, int32(panelY+2), 16, rl.DarkGray)
		params.Plane = int(math.Round(float64(newPlane)))
		panelY += 35

		rl.DrawText("Camera zoom (pixels per unit)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.Zoom = gui.SliderBar(rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 20},
			"0.5", "100", params.Zoom, 0.5, 100)
		rl.DrawText(fmt.Sprintf("%.1f", params.Zoom), valueX, int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Sector size", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSize := gui.SliderBar(rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 20},
			"10", "500", params.SectorSize, 10, 500)
		rl.DrawText(fmt.Sprintf("%.0f", params.SectorSize), valueX, int32(panelY+2), 16, rl.DarkGray)
		if newSize != params.SectorSize {
			params.SectorSize = newSize
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Stars per sector", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newStars := gui.SliderBar(rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 20},
			"0", "50", float32(params.StarsPerSector), 0, 50)
		rl.DrawText(fmt.Sprintf("%d", params.StarsPerSector), valueX, int32(panelY+2), 16, rl.DarkGray)
		if int(newStars) != params.StarsPerSector {
			params.StarsPerSector = int(newStars)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Zoom steps per plane", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSteps := gui.SliderBar(rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 20},
			"0", "30", float32(params.StepsPerPlane), 0, 30)
		rl.DrawText(fmt.Sprintf("%d", params.StepsPerPlane), valueX, int32(panelY+2), 16, rl.DarkGray)
		if int(newSteps) != params.StepsPerPlane {
			params.StepsPerPlane = int(newSteps)
			needsRegen = true
		}
		panelY += 45

		params.ShowSectors = gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20}, "Sector grid", params.ShowSectors)
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Salt") {
			params.Salt = uint64(rl.GetRandomValue(0, math.MaxInt32))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			center = r2.Vec{}
			needsRegen = true
		}
		panelY += 45
		rl.DrawText(fmt.Sprintf("Salt: %d", params.Salt), int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 30

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yaml := configYAML(params)
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Arrows/WASD: pan | C: copy YAML", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// layerDraws places a layer's stars inside the preview rectangle.
func layerDraws(l parallax.Layer, radius float64) []parallax.Draw {
	out := make([]parallax.Draw, 0, len(l.Stars))
	offset := r2.Vec{X: 10, Y: 10}
	for _, s := range l.Stars {
		out = append(out, parallax.Draw{
			Screen: r2.Add(offset, l.Transform.Apply(s.Position)),
			Radius: radius,
			Color:  s.Color,
		})
	}
	return out
}

// drawSectorGrid outlines the sectors visible on a layer.
func drawSectorGrid(l parallax.Layer, size float64) {
	color := rl.Color{R: 60, G: 60, B: 90, A: 255}
	x0 := math.Floor(l.Bounds.Min.X/size) * size
	y0 := math.Floor(l.Bounds.Min.Y/size) * size
	for x := x0; x <= l.Bounds.Max.X; x += size {
		a := l.Transform.Apply(r2.Vec{X: x, Y: l.Bounds.Min.Y})
		b := l.Transform.Apply(r2.Vec{X: x, Y: l.Bounds.Max.Y})
		rl.DrawLine(int32(a.X)+10, int32(a.Y)+10, int32(b.X)+10, int32(b.Y)+10, color)
	}
	for y := y0; y <= l.Bounds.Max.Y; y += size {
		a := l.Transform.Apply(r2.Vec{X: l.Bounds.Min.X, Y: y})
		b := l.Transform.Apply(r2.Vec{X: l.Bounds.Max.X, Y: y})
		rl.DrawLine(int32(a.X)+10, int32(a.Y)+10, int32(b.X)+10, int32(b.Y)+10, color)
	}
}

func configYAML(p previewParams) string {
	return fmt.Sprintf(`parallax:
  zoom_steps_per_plane: %d
  sector_size: %.0f
  stars_per_sector: %d
  salt: %d`,
		p.StepsPerPlane, p.SectorSize, p.StarsPerSector, p.Salt)
}
