// Package camera provides a 2D camera system for viewport control.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacedrift/transform"
)

// Camera controls the viewport into the simulation world.
// Zoom is the number of screen pixels per world unit and is always > 0.
type Camera struct {
	center r2.Vec
	zoom   float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	defaultZoom float64
}

// New creates a camera centered on the world origin.
// A non-positive zoom falls back to 1.
func New(viewportW, viewportH, zoom float64) *Camera {
	if !(zoom > 0) {
		zoom = 1
	}
	return &Camera{
		zoom:        zoom,
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		defaultZoom: zoom,
	}
}

// CenterAt moves the camera so p is in the middle of the viewport.
func (c *Camera) CenterAt(p r2.Vec) {
	c.center = p
}

// AdjustZoom multiplies the zoom by m. Multipliers that are not positive
// finite numbers are ignored so zoom stays strictly positive.
func (c *Camera) AdjustZoom(m float64) {
	if !(m > 0) || math.IsInf(m, 0) {
		return
	}
	z := c.zoom * m
	if !(z > 0) || math.IsInf(z, 0) {
		return
	}
	c.zoom = z
}

// ScrollZoom applies base^steps. Scrolling s1 then s2 gives the same zoom
// as scrolling s1+s2 at once.
func (c *Camera) ScrollZoom(base, steps float64) {
	if steps == 0 {
		return
	}
	c.AdjustZoom(math.Pow(base, steps))
}

// CenterPoint returns the world point shown at the viewport center.
func (c *Camera) CenterPoint() r2.Vec {
	return c.center
}

// Zoom returns the current zoom.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// ScreenCenter returns the middle of the viewport in screen coordinates.
func (c *Camera) ScreenCenter() r2.Vec {
	return r2.Vec{X: c.ViewportW / 2, Y: c.ViewportH / 2}
}

// Transform returns the world-to-screen transform:
// translate(viewport center) → scale(zoom) → translate(-center).
func (c *Camera) Transform() transform.Affine {
	return transform.Identity().
		TransVec(c.ScreenCenter()).
		Zoom(c.zoom).
		TransVec(r2.Scale(-1, c.center))
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(w r2.Vec) r2.Vec {
	return r2.Add(c.ScreenCenter(), r2.Scale(c.zoom, r2.Sub(w, c.center)))
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(s r2.Vec) r2.Vec {
	return r2.Add(c.center, r2.Scale(1/c.zoom, r2.Sub(s, c.ScreenCenter())))
}

// IsVisible returns true if a circle at w with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(w r2.Vec, radius float64) bool {
	d := r2.Sub(w, c.center)

	// Half-extents of the visible area in world coords, plus margin for radius
	halfW := c.ViewportW/(2*c.zoom) + radius
	halfH := c.ViewportH/(2*c.zoom) + radius

	return math.Abs(d.X) <= halfW && math.Abs(d.Y) <= halfH
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() r2.Box {
	half := r2.Vec{X: c.ViewportW / (2 * c.zoom), Y: c.ViewportH / (2 * c.zoom)}
	return r2.Box{Min: r2.Sub(c.center, half), Max: r2.Add(c.center, half)}
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Reset returns the camera to the origin and its initial zoom.
func (c *Camera) Reset() {
	c.center = r2.Vec{}
	c.zoom = c.defaultZoom
}
