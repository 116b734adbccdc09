package game

import "github.com/pthm-cable/spacedrift/input"

// The window layer feeds input through these handlers between ticks. Held
// state persists until changed; scroll adds up until the next Update.

// HandleMouseMove records the cursor position in screen pixels.
func (g *Game) HandleMouseMove(x, y float64) {
	g.input.MoveMouse(x, y)
}

// HandleMouseLeft records whether the left button is held.
func (g *Game) HandleMouseLeft(held bool) {
	g.input.MouseLeft = held
}

// HandleScroll adds wheel movement.
func (g *Game) HandleScroll(dy float64) {
	g.input.Scroll(0, dy)
}

// HandleKey records a directional key.
func (g *Game) HandleKey(k input.Key, held bool) {
	g.input.SetKey(k, held)
}
