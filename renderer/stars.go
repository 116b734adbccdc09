package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spacedrift/parallax"
)

// StarRenderer draws the parallax backdrop.
type StarRenderer struct {
	// MinRadius keeps far-zoomed stars visible.
	MinRadius float32
}

// NewStarRenderer creates a star renderer.
func NewStarRenderer() *StarRenderer {
	return &StarRenderer{MinRadius: 0.5}
}

// Draw renders stars in order, so the farthest plane comes first.
func (r *StarRenderer) Draw(stars []parallax.Draw) {
	for i := range stars {
		s := &stars[i]
		radius := float32(s.Radius)
		if radius < r.MinRadius {
			radius = r.MinRadius
		}
		rl.DrawCircleV(vec(s.Screen), radius, Color(s.Color))
	}
}

// Color converts a normalized star color.
func Color(c parallax.Color) rl.Color {
	return rl.Color{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
