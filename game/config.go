package game

import (
	"log/slog"

	"github.com/pthm-cable/spacedrift/config"
	"github.com/pthm-cable/spacedrift/parallax"
	"github.com/pthm-cable/spacedrift/systems"
)

// Options holds configuration for game initialization.
type Options struct {
	Config    *config.Config // nil uses config.Cfg()
	Seed      uint64         // particle RNG seed
	Headless  bool
	LogStats  bool
	OutputDir string // CSV output, empty disables
	RunStore  string // SQLite run database, empty disables
	Logger    *slog.Logger
}

// tuning maps the config onto the stage constants.
func tuning(cfg *config.Config) systems.Tuning {
	return systems.Tuning{
		BaseAcceleration:   cfg.Player.BaseAcceleration,
		ZoomFactor:         cfg.Camera.ZoomFactor,
		MaxVelocity:        cfg.Particles.MaxVelocity,
		MaxAngularVelocity: cfg.Particles.MaxAngularVelocity,
		ShapeSize:          cfg.Particles.ShapeSize,
		MaxShapeDepth:      cfg.Particles.MaxShapeDepth,
		SpawnAtCursor:      cfg.Particles.SpawnAtCursor,
	}
}

// starfield maps the config onto the parallax settings.
func starfield(cfg *config.Config) parallax.Config {
	return parallax.Config{
		Planes:             cfg.Parallax.Planes,
		ZoomStepsPerPlane:  cfg.Parallax.ZoomStepsPerPlane,
		ZoomFactor:         cfg.Camera.ZoomFactor,
		SectorSize:         cfg.Parallax.SectorSize,
		StarsPerSector:     cfg.Parallax.StarsPerSector,
		StarRadius:         cfg.Parallax.StarRadius,
		DefaultZoom:        cfg.Camera.DefaultZoom,
		MaxSectorsPerPlane: cfg.Parallax.MaxSectorsPerPlane,
	}
}
