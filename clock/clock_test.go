package clock

import (
	"math"
	"testing"
)

func TestNewHasNoDelta(t *testing.T) {
	c := New()
	if _, ok := c.DT(); ok {
		t.Error("fresh clock should report no delta")
	}
	if c.Speed() != 1 {
		t.Errorf("expected speed 1, got %f", c.Speed())
	}
}

func TestAdvanceScalesBySpeed(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		raw   float64
		want  float64
	}{
		{"real-time", 1, 0.5, 0.5},
		{"slow motion", 0.25, 0.4, 0.1},
		{"paused", 0, 0.5, 0},
		{"rewind", -1, 0.5, -0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewWithSpeed(tc.speed)
			c.Advance(tc.raw, true)
			dt, ok := c.DT()
			if !ok {
				t.Fatal("expected a delta")
			}
			if math.Abs(dt-tc.want) > 1e-12 {
				t.Errorf("expected dt %f, got %f", tc.want, dt)
			}
			if math.Abs(c.Time()-tc.want) > 1e-12 {
				t.Errorf("expected time %f, got %f", tc.want, c.Time())
			}
		})
	}
}

func TestAdvanceAccumulates(t *testing.T) {
	c := New()
	for i := 0; i < 4; i++ {
		c.Advance(0.25, true)
	}
	if math.Abs(c.Time()-1.0) > 1e-12 {
		t.Errorf("expected total time 1.0, got %f", c.Time())
	}
}

func TestAdvanceWithoutDelta(t *testing.T) {
	c := New()
	c.Advance(0.5, true)
	before := c.Time()

	c.Advance(0, false)
	if _, ok := c.DT(); ok {
		t.Error("expected no delta after an empty frame")
	}
	if c.Time() != before {
		t.Errorf("total time changed on empty frame: %f -> %f", before, c.Time())
	}
}

func TestDegenerateRawDeltaIsNoDelta(t *testing.T) {
	for _, raw := range []float64{0, -0.1, math.NaN(), math.Inf(1)} {
		c := New()
		c.Advance(raw, true)
		if _, ok := c.DT(); ok {
			t.Errorf("raw dt %v should not produce a delta", raw)
		}
		if c.Time() != 0 {
			t.Errorf("raw dt %v moved time to %f", raw, c.Time())
		}
	}
}

func TestTimeMonotonicForNonNegativeSpeed(t *testing.T) {
	c := NewWithSpeed(0.5)
	last := c.Time()
	for _, raw := range []float64{0.1, 0, 0.3, -1, 0.016} {
		c.Advance(raw, true)
		if c.Time() < last {
			t.Fatalf("time went backwards: %f -> %f", last, c.Time())
		}
		last = c.Time()
	}
}
