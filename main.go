package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spacedrift/config"
	"github.com/pthm-cable/spacedrift/game"
	"github.com/pthm-cable/spacedrift/input"
	"github.com/pthm-cable/spacedrift/renderer"
	"github.com/pthm-cable/spacedrift/scene"
	"github.com/pthm-cable/spacedrift/shape"
	"github.com/pthm-cable/spacedrift/ui"
)

const controlsLegend = "WASD/Arrows: thrust | Mouse: aim | Click: spawn | Wheel: zoom | Space: pause | C: clear | P: perf | L: log"

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	particleSprite := flag.String("particle-sprite", "", "Image file for particle sprites (empty = built-in)")
	runDB := flag.String("run-db", "", "SQLite database collecting window stats across runs")
	seed := flag.Uint64("seed", 0, "Particle RNG seed (0 = use config)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Seed
	}

	opts := game.Options{
		Config:    cfg,
		Seed:      rngSeed,
		Headless:  *headless,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		RunStore:  *runDB,
		Logger:    logger,
	}

	if *headless {
		if err := runHeadless(opts, *maxTicks); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Spacedrift")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	if err := runWindow(opts, *maxTicks, *particleSprite); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the simulation with the configured fixed delta and
// no window. Without -max-ticks it runs until killed.
func runHeadless(opts game.Options, maxTicks int64) error {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"fixed_dt", opts.Config.Clock.FixedDT,
		"max_ticks", maxTicks,
	)

	for maxTicks <= 0 || g.Tick() < maxTicks {
		if err := g.UpdateHeadless(); err != nil {
			return err
		}
	}
	slog.Info("max ticks reached", "tick", g.Tick(), "sim_time", g.Time())
	g.LogWorldState()
	return nil
}

// runWindow drives the simulation from the raylib frame loop.
func runWindow(opts game.Options, maxTicks int64, spritePath string) error {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	shapes := renderer.NewShapeRenderer()
	defer shapes.Unload()
	shapes.GenerateParticleSprite(64)
	if spritePath != "" {
		if err := shapes.LoadSprite(shape.ParticleSprite, spritePath); err != nil {
			slog.Warn("using built-in particle sprite", "error", err)
		}
	}
	stars := renderer.NewStarRenderer()

	hud := ui.NewHUD()
	perfPanel := ui.NewPerfPanel(10, 100, 300)
	showPerf := false
	slider := ui.NewSpeedSlider(rl.Rectangle{X: 10, Y: 0, Width: 200, Height: 16})

	for !rl.WindowShouldClose() {
		screenW, screenH := rl.GetScreenWidth(), rl.GetScreenHeight()
		if rl.IsWindowResized() {
			g.Resize(float64(screenW), float64(screenH))
		}
		slider.Bounds.Y = float32(screenH) - 60

		feedInput(g, slider.Bounds)

		switch {
		case rl.IsKeyPressed(rl.KeySpace):
			g.TogglePause()
		case rl.IsKeyPressed(rl.KeyC):
			n := g.ClearParticles()
			slog.Info("clearing particles", "count", n)
		case rl.IsKeyPressed(rl.KeyP):
			showPerf = !showPerf
		case rl.IsKeyPressed(rl.KeyL):
			g.LogWorldState()
		}

		dt := float64(rl.GetFrameTime())
		if err := g.Update(dt, dt > 0); err != nil {
			return err
		}

		starDraws, err := g.Stars()
		if err != nil {
			slog.Warn("starfield skipped", "error", err)
		}
		player, hasPlayer := g.Player()
		isPlayer := func(it scene.Item) bool { return hasPlayer && it.Entity == player }

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		stars.Draw(starDraws)
		shapes.Draw(g.Scene(), isPlayer)

		status := g.HUD()
		hud.Draw(ui.HUDData{
			Title:     "Spacedrift",
			Tick:      status.Tick,
			Time:      status.Time,
			Speed:     status.Speed,
			Paused:    status.Paused,
			Zoom:      status.Zoom,
			Entities:  status.Entities,
			Particles: status.Particles,
			Stars:     len(starDraws),
			FPS:       rl.GetFPS(),
		})
		if showPerf {
			perfPanel.Draw(status.Perf)
		}
		if speed, changed := slider.Draw(status.Speed); changed {
			g.SetSpeed(speed)
		}
		hud.DrawControls(int32(screenH), controlsLegend)

		rl.EndDrawing()
		g.RecordFrame()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
	return nil
}

// feedInput copies the raylib keyboard and mouse state into the game.
// Clicks on the speed slider do not spawn particles.
func feedInput(g *game.Game, sliderBounds rl.Rectangle) {
	g.HandleKey(input.KeyLeft, rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA))
	g.HandleKey(input.KeyRight, rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD))
	g.HandleKey(input.KeyUp, rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW))
	g.HandleKey(input.KeyDown, rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS))

	mouse := rl.GetMousePosition()
	g.HandleMouseMove(float64(mouse.X), float64(mouse.Y))
	overSlider := rl.CheckCollisionPointRec(mouse, sliderBounds)
	g.HandleMouseLeft(!overSlider && rl.IsMouseButtonDown(rl.MouseButtonLeft))

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.HandleScroll(float64(wheel))
	}
}
