// Package clock tracks simulation time and the scaled per-frame delta.
package clock

import "math"

// Clock advances simulation time once per frame.
//
// The delta reported by DT is the raw wall-clock delta scaled by Speed.
// A frame in which no time passed reports no delta at all, which is
// different from a zero delta produced by a paused (Speed == 0) clock.
type Clock struct {
	delta    float64
	hasDelta bool

	time float64

	// 0 = paused, 1 = real-time, negative runs time backwards
	speed float64
}

// New returns a real-time clock with no delta.
func New() *Clock {
	return &Clock{speed: 1}
}

// NewWithSpeed returns a clock running at the given simulation speed.
func NewWithSpeed(speed float64) *Clock {
	return &Clock{speed: speed}
}

// Advance moves the clock forward by rawDT seconds of wall time.
// When ok is false, or rawDT is not a positive finite number, the frame
// carries no delta and total time is left untouched.
func (c *Clock) Advance(rawDT float64, ok bool) {
	if !ok || !(rawDT > 0) || math.IsInf(rawDT, 0) {
		c.delta = 0
		c.hasDelta = false
		return
	}
	d := rawDT * c.speed
	c.time += d
	c.delta = d
	c.hasDelta = true
}

// DT returns the scaled delta of the current frame.
func (c *Clock) DT() (float64, bool) {
	return c.delta, c.hasDelta
}

// Time returns the accumulated simulation time in seconds.
func (c *Clock) Time() float64 {
	return c.time
}

// Speed returns the simulation speed multiplier.
func (c *Clock) Speed() float64 {
	return c.speed
}

// SetSpeed changes the multiplier applied to subsequent frames.
// Negative values are accepted and reverse the flow of time.
func (c *Clock) SetSpeed(speed float64) {
	c.speed = speed
}
