// Package game ties the simulation together: it owns the store, the
// per-session singletons and the scheduler, and advances them one tick at a
// time for the window loop or a headless run.
package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pthm-cable/spacedrift/camera"
	"github.com/pthm-cable/spacedrift/clock"
	"github.com/pthm-cable/spacedrift/config"
	"github.com/pthm-cable/spacedrift/input"
	"github.com/pthm-cable/spacedrift/parallax"
	"github.com/pthm-cable/spacedrift/scene"
	"github.com/pthm-cable/spacedrift/systems"
	"github.com/pthm-cable/spacedrift/telemetry"
	"github.com/pthm-cable/spacedrift/world"
)

// Game holds the complete simulation state.
type Game struct {
	cfg    *config.Config
	logger *slog.Logger

	clock    *clock.Clock
	camera   *camera.Camera
	input    *input.State
	store    *world.Store
	commands *world.Commands
	ctx      *systems.Context

	scheduler *systems.Scheduler
	scene     *scene.Builder
	stars     *parallax.Generator

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	sinks         []telemetry.Sink // closed windows go to every sink
	logStats      bool

	tick       int64
	pausedAt   float64 // speed to restore on resume
	paused     bool
	lastResult world.ApplyResult
}

// NewGameWithOptions builds a game from opts. The player is created when
// the config asks for it.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g := &Game{
		cfg:           cfg,
		logger:        logger,
		clock:         clock.NewWithSpeed(cfg.Clock.SimulationSpeed),
		camera:        camera.New(cfg.Derived.ScreenW, cfg.Derived.ScreenH, cfg.Camera.DefaultZoom),
		input:         &input.State{},
		store:         world.NewStore(),
		commands:      world.NewCommands(logger),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		logStats:      opts.LogStats,
	}

	g.ctx = &systems.Context{
		Clock:    g.clock,
		Camera:   g.camera,
		Input:    g.input,
		Store:    g.store,
		Commands: g.commands,
		Rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Tuning:   tuning(cfg),
		Logger:   logger,
	}

	var err error
	g.scheduler, err = systems.NewDefaultScheduler(g.store, logger, g.perfCollector)
	if err != nil {
		return nil, err
	}
	g.scene = scene.NewBuilder(g.store)

	g.stars, err = parallax.NewGenerator(starfield(cfg), g.seedSource())
	if err != nil {
		return nil, fmt.Errorf("building starfield: %w", err)
	}

	if cfg.Player.Spawn {
		if _, err := g.CreatePlayer(); err != nil {
			return nil, err
		}
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, err
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		g.sinks = append(g.sinks, om)
	}
	if opts.RunStore != "" {
		rs, err := telemetry.OpenRunStore(opts.RunStore, seed, opts.Headless)
		if err != nil {
			g.Unload()
			return nil, err
		}
		g.sinks = append(g.sinks, rs)
		logger.Info("recording run", "db", opts.RunStore, "run_id", rs.RunID())
	}

	logger.Info("game created",
		"seed", seed,
		"headless", opts.Headless,
		"seed_mode", cfg.Parallax.SeedMode,
		"stages", len(g.scheduler.Stages()),
	)
	return g, nil
}

func (g *Game) seedSource() parallax.SeedSource {
	if g.cfg.Parallax.SeedMode == config.SeedModeSession {
		now := uint64(time.Now().UnixNano())
		return parallax.NewSessionSeeds(rand.New(rand.NewPCG(now, g.cfg.Parallax.Salt)))
	}
	return parallax.HashSeeds{Salt: g.cfg.Parallax.Salt}
}

// Update advances the simulation by one tick. ok=false (or a non-positive
// rawDT) means no time passed: stages still run but nothing integrates.
func (g *Game) Update(rawDT float64, ok bool) error {
	g.clock.Advance(rawDT, ok)
	if _, has := g.clock.DT(); !has {
		g.collector.RecordIdleTick()
	}

	res, err := g.scheduler.Run(g.ctx)
	g.input.EndTick()
	g.tick++
	if err != nil {
		return fmt.Errorf("tick %d: %w", g.tick, err)
	}

	g.lastResult = res
	g.collector.RecordMaintain(len(res.Spawned), res.Despawned, res.Dropped)
	g.flushTelemetry()
	return nil
}

// UpdateHeadless advances one tick of the configured fixed length.
func (g *Game) UpdateHeadless() error {
	return g.Update(g.cfg.Clock.FixedDT, true)
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int64 {
	return g.tick
}

// Time returns the accumulated simulation time.
func (g *Game) Time() float64 {
	return g.clock.Time()
}

// Speed returns the simulation speed multiplier.
func (g *Game) Speed() float64 {
	return g.clock.Speed()
}

// SetSpeed sets the simulation speed. Zero freezes time, negative values
// run it backwards.
func (g *Game) SetSpeed(speed float64) {
	g.clock.SetSpeed(speed)
	g.paused = false
}

// TogglePause freezes time, or restores the speed it was frozen at.
func (g *Game) TogglePause() {
	if g.paused {
		g.clock.SetSpeed(g.pausedAt)
		g.paused = false
		return
	}
	g.pausedAt = g.clock.Speed()
	g.clock.SetSpeed(0)
	g.paused = true
}

// Paused reports whether TogglePause froze time.
func (g *Game) Paused() bool {
	return g.paused
}

// Camera returns the camera.
func (g *Game) Camera() *camera.Camera {
	return g.camera
}

// Store returns the component store.
func (g *Game) Store() *world.Store {
	return g.store
}

// Player returns the tracked entity, if any.
func (g *Game) Player() (world.Entity, bool) {
	return g.ctx.Tracked()
}

// Resize propagates a new window size.
func (g *Game) Resize(w, h float64) {
	g.camera.Resize(w, h)
}

// LastResult returns what the previous maintain step applied.
func (g *Game) LastResult() world.ApplyResult {
	return g.lastResult
}

// Unload flushes and closes output files. Calling it again is a no-op.
func (g *Game) Unload() {
	for _, sink := range g.sinks {
		if err := sink.Close(); err != nil {
			g.logger.Error("failed to close output", "error", err)
		}
	}
	g.sinks = nil
}
