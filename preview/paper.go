// Package preview replays plotter ticks on simulated paper, renders the
// result and compares it with the mask it was meant to draw.
package preview

import (
	"image"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"tasplot.dev/bresenham"
	"tasplot.dev/plotter"
)

// Paper is a plotter sink that records what the pen draws. A tick with
// the pen down inks every pixel between the previous and the new
// position.
type Paper struct {
	pos     image.Point
	down    bool
	ticks   int
	lifts   int
	travel  float64
	strokes []orb.LineString
	segs    []Segment
	ink     map[image.Point]bool
}

// Segment is the movement of a single tick with the pen down.
type Segment struct {
	From, To image.Point
	Tick     int
}

// Stats summarizes a replay.
type Stats struct {
	Ticks   int
	Strokes int
	Lifts   int
	// Pixels is the number of distinct inked pixels.
	Pixels int
	// Ink is the distance moved with the pen down.
	Ink float64
	// Travel is the distance moved with the pen up.
	Travel float64
}

// NewPaper returns blank paper with the pointer at start.
func NewPaper(start image.Point) *Paper {
	return &Paper{
		pos: start,
		ink: make(map[image.Point]bool),
	}
}

// Jump moves the pointer without drawing, mirroring plotter.Jump.
func (p *Paper) Jump(pos image.Point) {
	p.pos = pos
	p.down = false
}

func (p *Paper) Tick(t plotter.Tick) error {
	from := p.pos
	to := from.Add(image.Pt(t.DX, t.DY))
	p.pos = to
	idx := p.ticks
	p.ticks++
	if !t.Contact {
		if p.down {
			p.lifts++
		}
		p.down = false
		p.travel += planar.Distance(point(from), point(to))
		return nil
	}
	if !p.down {
		p.strokes = append(p.strokes, orb.LineString{point(from)})
		p.down = true
	}
	s := &p.strokes[len(p.strokes)-1]
	if to != from {
		*s = append(*s, point(to))
	}
	p.segs = append(p.segs, Segment{From: from, To: to, Tick: idx})
	for px := range bresenham.Points(from, to) {
		p.ink[px] = true
	}
	return nil
}

func (p *Paper) Flush(force bool) error {
	return nil
}

// Inked reports whether the pen touched px.
func (p *Paper) Inked(px image.Point) bool {
	return p.ink[px]
}

// Strokes returns the pen down paths.
func (p *Paper) Strokes() []orb.LineString {
	return p.strokes
}

func (p *Paper) Stats() Stats {
	s := Stats{
		Ticks:   p.ticks,
		Strokes: len(p.strokes),
		Lifts:   p.lifts,
		Pixels:  len(p.ink),
		Travel:  p.travel,
	}
	for _, l := range p.strokes {
		s.Ink += planar.Length(l)
	}
	return s
}

func point(p image.Point) orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}
