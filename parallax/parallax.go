// Package parallax generates the star backdrop.
//
// The plane is cut into square sectors. Each sector's stars are drawn from
// a random stream seeded only by (plane, sector), so the sky can be
// regenerated on demand and never needs to be stored. Several depth planes
// are drawn back to front, each at a smaller effective zoom than the one in
// front of it.
package parallax

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacedrift/camera"
	"github.com/pthm-cable/spacedrift/transform"
)

// ErrInvalidConfig is returned by NewGenerator for unusable settings.
var ErrInvalidConfig = errors.New("parallax: invalid config")

// Config controls the starfield.
type Config struct {
	Planes             int     // number of depth planes, plane 0 is nearest
	ZoomStepsPerPlane  int     // zoom steps between neighbouring planes
	ZoomFactor         float64 // zoom multiplier per step
	SectorSize         float64 // sector edge in plane units
	StarsPerSector     int
	StarRadius         float64 // in world units at DefaultZoom
	DefaultZoom        float64
	MaxSectorsPerPlane int // planes needing more sectors are skipped
}

// DefaultConfig returns the built-in starfield settings.
func DefaultConfig() Config {
	return Config{
		Planes:             4,
		ZoomStepsPerPlane:  10,
		ZoomFactor:         1.1,
		SectorSize:         100,
		StarsPerSector:     6,
		StarRadius:         0.05,
		DefaultZoom:        20,
		MaxSectorsPerPlane: 4096,
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Planes < 1:
		return fmt.Errorf("planes %d: %w", c.Planes, ErrInvalidConfig)
	case c.ZoomStepsPerPlane < 0:
		return fmt.Errorf("zoom_steps_per_plane %d: %w", c.ZoomStepsPerPlane, ErrInvalidConfig)
	case !(c.ZoomFactor > 0):
		return fmt.Errorf("zoom_factor %v: %w", c.ZoomFactor, ErrInvalidConfig)
	case !(c.SectorSize > 0):
		return fmt.Errorf("sector_size %v: %w", c.SectorSize, ErrInvalidConfig)
	case c.StarsPerSector < 0:
		return fmt.Errorf("stars_per_sector %d: %w", c.StarsPerSector, ErrInvalidConfig)
	case c.MaxSectorsPerPlane < 1:
		return fmt.Errorf("max_sectors_per_plane %d: %w", c.MaxSectorsPerPlane, ErrInvalidConfig)
	}
	return nil
}

// Color is a linear RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Star is one generated star in plane coordinates.
type Star struct {
	Position r2.Vec
	Color    Color
}

// Generator produces stars for sectors and views.
type Generator struct {
	cfg   Config
	seeds SeedSource
}

// NewGenerator validates cfg. A nil seeds uses HashSeeds{}.
func NewGenerator(cfg Config, seeds SeedSource) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if seeds == nil {
		seeds = HashSeeds{}
	}
	return &Generator{cfg: cfg, seeds: seeds}, nil
}

// Config returns the generator settings.
func (g *Generator) Config() Config {
	return g.cfg
}

// Sector returns the stars of one sector. The result depends only on the
// seed source and (plane, sx, sy).
func (g *Generator) Sector(plane int, sx, sy int64) []Star {
	seed := g.seeds.Seed(plane, sx, sy)
	src := rand.NewPCG(
		binary.LittleEndian.Uint64(seed[0:]),
		binary.LittleEndian.Uint64(seed[8:]),
	)

	size := g.cfg.SectorSize
	origin := r2.Vec{X: float64(sx) * size, Y: float64(sy) * size}

	stars := make([]Star, g.cfg.StarsPerSector)
	for i := range stars {
		pos := r2.Vec{X: unit(src) * size, Y: unit(src) * size}
		c := math.Sqrt(unit(src)) * 0.9
		stars[i] = Star{
			Position: r2.Add(origin, pos),
			Color: Color{
				R: c + unit(src)*0.1,
				G: c + unit(src)*0.1,
				B: c + unit(src)*0.1,
				A: 1,
			},
		}
	}
	return stars
}

// unit maps the next 53 bits of src onto [0, 1).
func unit(src *rand.PCG) float64 {
	return float64(src.Uint64()>>11) * 0x1p-53
}

// PlaneZoom returns the effective zoom of plane for a camera zoom.
func (g *Generator) PlaneZoom(plane int, zoom float64) float64 {
	return zoom / math.Pow(g.cfg.ZoomFactor, float64(plane*g.cfg.ZoomStepsPerPlane))
}

// StarScreenRadius is the on-screen star radius, identical on every plane.
func (g *Generator) StarScreenRadius() float64 {
	return g.cfg.StarRadius * g.cfg.DefaultZoom
}

// View is what the render boundary knows about the current frame.
type View struct {
	Center        r2.Vec
	Zoom          float64
	Width, Height float64 // viewport in pixels
}

// ViewFromCamera captures the camera state.
func ViewFromCamera(c *camera.Camera) View {
	return View{
		Center: c.CenterPoint(),
		Zoom:   c.Zoom(),
		Width:  c.ViewportW,
		Height: c.ViewportH,
	}
}

// Layer holds the stars of one plane and the transform that places them
// on screen.
type Layer struct {
	Plane     int
	Zoom      float64
	Transform transform.Affine
	Bounds    r2.Box // visible rectangle in plane coordinates
	Sectors   int  // visible sectors, saturating at math.MaxInt
	Skipped   bool // more than MaxSectorsPerPlane sectors were visible
	Stars     []Star
}

// Layers returns one Layer per plane, farthest first.
func (g *Generator) Layers(v View) ([]Layer, error) {
	layers := make([]Layer, 0, g.cfg.Planes)
	screenCenter := r2.Vec{X: v.Width / 2, Y: v.Height / 2}

	for plane := g.cfg.Planes - 1; plane >= 0; plane-- {
		zoom := g.PlaneZoom(plane, v.Zoom)
		tr := transform.Identity().
			TransVec(screenCenter).
			Zoom(zoom).
			TransVec(r2.Scale(-1, v.Center))

		bounds, err := tr.VisibleBounds(v.Width, v.Height)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", plane, err)
		}

		layer := Layer{Plane: plane, Zoom: zoom, Transform: tr, Bounds: bounds}
		x0, y0, x1, y1, n, ok := g.sectorRange(bounds)
		layer.Sectors = n
		if !ok {
			layer.Skipped = true
			layers = append(layers, layer)
			continue
		}

		layer.Stars = make([]Star, 0, n*g.cfg.StarsPerSector)
		for sy := y0; sy <= y1; sy++ {
			for sx := x0; sx <= x1; sx++ {
				layer.Stars = append(layer.Stars, g.Sector(plane, sx, sy)...)
			}
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

// sectorRange returns the inclusive sector indices overlapping b and how
// many sectors that is, saturating at math.MaxInt. ok is false when either
// axis alone spans more than MaxSectorsPerPlane sectors, when the total
// does, or when the indices do not fit in an int64.
func (g *Generator) sectorRange(b r2.Box) (x0, y0, x1, y1 int64, n int, ok bool) {
	size := g.cfg.SectorSize
	limit := float64(g.cfg.MaxSectorsPerPlane)
	fx0, fx1 := math.Floor(b.Min.X/size), math.Floor(b.Max.X/size)
	fy0, fy1 := math.Floor(b.Min.Y/size), math.Floor(b.Max.Y/size)

	nx, ny := fx1-fx0+1, fy1-fy0+1
	total := nx * ny
	switch {
	case total >= math.MaxInt:
		n = math.MaxInt
	case total > 0:
		n = int(total)
	}
	for _, f := range []float64{fx0, fx1, fy0, fy1} {
		if !(math.Abs(f) < 1<<62) {
			return 0, 0, 0, 0, n, false
		}
	}
	// Per-axis limits keep the int64 loop bounds small.
	if !(nx >= 1 && nx <= limit) || !(ny >= 1 && ny <= limit) || total > limit {
		return 0, 0, 0, 0, n, false
	}
	return int64(fx0), int64(fy0), int64(fx1), int64(fy1), n, true
}

// Draw is one star to put on screen.
type Draw struct {
	Screen r2.Vec
	Radius float64
	Color  Color
}

// Draws flattens Layers into screen-space draw calls, farthest plane
// first. Stars outside the viewport are dropped.
func (g *Generator) Draws(v View) ([]Draw, error) {
	layers, err := g.Layers(v)
	if err != nil {
		return nil, err
	}
	radius := g.StarScreenRadius()
	var out []Draw
	for _, l := range layers {
		for _, s := range l.Stars {
			p := l.Transform.Apply(s.Position)
			if p.X < -radius || p.Y < -radius || p.X > v.Width+radius || p.Y > v.Height+radius {
				continue
			}
			out = append(out, Draw{Screen: p, Radius: radius, Color: s.Color})
		}
	}
	return out, nil
}
