package plotter

import (
	"math"

	log "github.com/sirupsen/logrus"
	"tasplot.dev/grid"
)

// Mask is a bi-level image. Dark pixels are drawn, everything else is
// left alone.
type Mask interface {
	Width() int
	Height() int
	Dark(x, y int) bool
}

// Report summarizes a mask run.
type Report struct {
	// Targets is the number of dark pixels.
	Targets int
	// Visited is the number of targets drawn.
	Visited int
	// Lifts counts pen lifts between strokes.
	Lifts int
	// Ticks is the number of ticks emitted.
	Ticks int
}

// Mask draws every dark pixel of m exactly once, translated by the
// offsets. Each next pixel is the nearest remaining one by grid hops
// from the previous. The pen stays down between pixels the pointer can
// reach in a single tick, and is lifted for anything farther.
//
// The pen is up when Mask returns.
func (p *Plotter) Mask(m Mask) (Report, error) {
	var r Report
	startTicks := p.ticks
	if p.down {
		// Raise and wait so the lift is registered before moving.
		p.PenUp()
		p.Wait(p.cfg.PrepareWait)
	}
	w, h := m.Width(), m.Height()
	g := grid.New(w, h, true, p.cfg.Diagonal)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if m.Dark(x, y) {
				g.SetTarget(x, y)
			}
		}
	}
	r.Targets = g.Targets()
	logger := Logger().WithFields(log.Fields{
		"width":   w,
		"height":  h,
		"targets": r.Targets,
	})
	logger.Info("mask: start")

	lastX, lastY := p.x-float64(p.offX), p.y-float64(p.offY)
	for p.err == nil {
		found, x, y := g.FindClosestTarget(lastX, lastY, true)
		if !found {
			break
		}
		sx, sy := float64(x+p.offX), float64(y+p.offY)
		switch {
		case !p.down:
			p.PlotAbsolute(sx, sy)
			p.Wait(p.cfg.LiftWait)
			p.PenDown()
			p.Wait(p.cfg.Settle)
		case p.adjacent(float64(x)-lastX, float64(y)-lastY):
			p.PlotAbsolute(sx, sy)
		default:
			r.Lifts++
			p.PenUp()
			p.Wait(p.cfg.LiftWait)
			p.PlotAbsolute(sx, sy)
			p.PenDown()
			p.Wait(p.cfg.Settle)
		}
		r.Visited++
		if logger.Logger.IsLevelEnabled(log.DebugLevel) {
			logger.WithFields(log.Fields{"x": x, "y": y, "left": r.Targets - r.Visited}).Debug("mask: target")
		}
		lastX, lastY = float64(x), float64(y)
	}
	p.PenUp()
	r.Ticks = p.ticks - startTicks
	logger.WithFields(log.Fields{
		"visited": r.Visited,
		"lifts":   r.Lifts,
		"ticks":   r.Ticks,
	}).Info("mask: done")
	return r, p.err
}

// adjacent reports whether a target (dx, dy) away is reachable in a
// single tick, so the pen can stay down on the way.
func (p *Plotter) adjacent(dx, dy float64) bool {
	limit := p.cfg.SpeedCap
	return math.Abs(dx) <= limit && math.Abs(dy) <= limit
}
