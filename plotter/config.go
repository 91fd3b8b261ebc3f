package plotter

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Config holds the physical parameters of the pointer and the target
// screen. Durations are in ticks.
type Config struct {
	// Screen bounds, inclusive.
	MinX float64 `toml:"min_x"`
	MinY float64 `toml:"min_y"`
	MaxX float64 `toml:"max_x"`
	MaxY float64 `toml:"max_y"`
	// SpeedCap is the largest movement per axis in one tick.
	SpeedCap float64 `toml:"speed_cap"`
	// Settle is the wait after lowering the pen before the surface
	// registers contact.
	Settle int `toml:"settle"`
	// LiftWait is the wait after raising the pen before moving.
	LiftWait int `toml:"lift_wait"`
	// PrepareWait is the wait after raising the pen before a mask run.
	PrepareWait int `toml:"prepare_wait"`
	// ClickHold is how long a click holds the button.
	ClickHold int `toml:"click_hold"`
	// Offset translates mask coordinates into screen coordinates.
	OffsetX int `toml:"offset_x"`
	OffsetY int `toml:"offset_y"`
	// Diagonal lets the target scan step diagonally.
	Diagonal bool `toml:"diagonal"`
}

// DefaultConfig returns the parameters of the Mario Paint canvas driven
// by the SNES mouse.
func DefaultConfig() Config {
	return Config{
		MinX:        0,
		MinY:        0,
		MaxX:        255,
		MaxY:        223,
		SpeedCap:    10,
		Settle:      8,
		LiftWait:    1,
		PrepareWait: 10,
		ClickHold:   7,
	}
}

// Bounds returns the screen rectangle.
func (c Config) Bounds() orb.Bound {
	return orb.Bound{
		Min: orb.Point{c.MinX, c.MinY},
		Max: orb.Point{c.MaxX, c.MaxY},
	}
}

func (c Config) Validate() error {
	switch {
	case c.MinX > c.MaxX || c.MinY > c.MaxY:
		return fmt.Errorf("plotter: empty screen bounds %v", c.Bounds())
	case c.SpeedCap <= 0:
		return fmt.Errorf("plotter: speed cap %v must be positive", c.SpeedCap)
	case c.Settle < 0 || c.LiftWait < 0 || c.PrepareWait < 0 || c.ClickHold < 0:
		return fmt.Errorf("plotter: negative delay")
	}
	return nil
}
