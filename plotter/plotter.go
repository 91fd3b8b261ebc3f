// Package plotter drives a rate-limited pointer over a bounded screen,
// emitting one movement instruction per tick.
package plotter

import (
	"math"

	"github.com/paulmach/orb"
)

// Tick is the pointer input of a single frame.
type Tick struct {
	DX, DY int
	// Contact is the primary button, the pen touching the surface.
	Contact bool
	// Secondary is the secondary button.
	Secondary bool
}

// Sink consumes ticks. Tick may flush on its own once its buffer is
// full; Flush with force set empties the buffer unconditionally.
type Sink interface {
	Tick(t Tick) error
	Flush(force bool) error
}

// Plotter tracks the pointer and turns movement requests into ticks.
//
// Errors from the sink are sticky: after the first failure no more
// ticks are emitted and every operation returns that error.
type Plotter struct {
	cfg    Config
	bounds orb.Bound
	sink   Sink

	x, y       float64
	offX, offY int
	down       bool
	right      bool

	ticks int
	err   error
}

// State is a snapshot of the pointer.
type State struct {
	X, Y             float64
	OffsetX, OffsetY int
	Down             bool
	RightDown        bool
	Ticks            int
}

func New(cfg Config, sink Sink) *Plotter {
	p := &Plotter{
		cfg:    cfg,
		bounds: cfg.Bounds(),
		sink:   sink,
		offX:   cfg.OffsetX,
		offY:   cfg.OffsetY,
	}
	p.x, p.y = p.Clamp(0, 0)
	return p
}

func (p *Plotter) State() State {
	return State{
		X:         p.x,
		Y:         p.y,
		OffsetX:   p.offX,
		OffsetY:   p.offY,
		Down:      p.down,
		RightDown: p.right,
		Ticks:     p.ticks,
	}
}

// Err returns the first sink error.
func (p *Plotter) Err() error {
	return p.err
}

// Clamp moves (x, y) inside the screen bounds.
func (p *Plotter) Clamp(x, y float64) (float64, float64) {
	b := p.bounds
	return clamp(x, b.Min.X(), b.Max.X()), clamp(y, b.Min.Y(), b.Max.Y())
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// MaxDelta returns the largest single-tick movement from current
// towards target.
func (p *Plotter) MaxDelta(current, target float64) float64 {
	d := math.Min(math.Abs(target-current), p.cfg.SpeedCap)
	if target < current {
		d = -d
	}
	return d
}

// step returns the next coordinate from current towards target. The
// last step lands on target exactly.
func (p *Plotter) step(current, target float64) float64 {
	if math.Abs(target-current) <= p.cfg.SpeedCap {
		return target
	}
	return current + p.MaxDelta(current, target)
}

// Jump sets the pointer position without moving it, for example to
// resynchronize with the screen.
func (p *Plotter) Jump(x, y float64) {
	p.x, p.y = p.Clamp(x, y)
}

// SetOffsets sets the translation from mask to screen coordinates.
func (p *Plotter) SetOffsets(x, y int) {
	p.offX, p.offY = x, y
}

func (p *Plotter) PenDown()   { p.down = true }
func (p *Plotter) PenUp()     { p.down = false }
func (p *Plotter) RightDown() { p.right = true }
func (p *Plotter) RightUp()   { p.right = false }

// PlotRelative moves the pointer by (dx, dy).
func (p *Plotter) PlotRelative(dx, dy float64) error {
	return p.PlotAbsolute(p.x+dx, p.y+dy)
}

// PlotAbsolute moves the pointer to (x, y) as fast as the speed cap
// allows, one tick per step. Both axes move in the same tick until each
// has arrived.
func (p *Plotter) PlotAbsolute(x, y float64) error {
	tx, ty := p.Clamp(x, y)
	for p.err == nil && (p.x != tx || p.y != ty) {
		nx, ny := p.step(p.x, tx), p.step(p.y, ty)
		p.emit(nx-p.x, ny-p.y)
		p.x, p.y = nx, ny
	}
	return p.flush(false)
}

// Wait emits n ticks without movement.
func (p *Plotter) Wait(n int) error {
	for i := 0; i < n; i++ {
		p.emit(0, 0)
	}
	return p.err
}

// Click presses and releases the primary button.
func (p *Plotter) Click() error {
	p.PenUp()
	p.Wait(1)
	p.PenDown()
	p.Wait(p.cfg.ClickHold)
	p.PenUp()
	return p.Wait(1)
}

// RightClick presses and releases the secondary button.
func (p *Plotter) RightClick() error {
	p.RightUp()
	p.Wait(1)
	p.RightDown()
	p.Wait(p.cfg.ClickHold)
	p.RightUp()
	return p.Wait(1)
}

// Flush forces the sink to output everything buffered.
func (p *Plotter) Flush() error {
	return p.flush(true)
}

func (p *Plotter) flush(force bool) error {
	if p.err == nil {
		p.err = p.sink.Flush(force)
	}
	return p.err
}

func (p *Plotter) emit(dx, dy float64) {
	if p.err != nil {
		return
	}
	p.ticks++
	p.err = p.sink.Tick(Tick{
		DX:        int(dx),
		DY:        int(dy),
		Contact:   p.down,
		Secondary: p.right,
	})
}

type tee []Sink

// Tee returns a sink that forwards every call to each of sinks in order.
// The first error stops the forwarding.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

func (t tee) Tick(tick Tick) error {
	for _, s := range t {
		if err := s.Tick(tick); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) Flush(force bool) error {
	for _, s := range t {
		if err := s.Flush(force); err != nil {
			return err
		}
	}
	return nil
}
