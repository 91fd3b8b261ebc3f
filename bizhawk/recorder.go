package bizhawk

import (
	"fmt"

	"tasplot.dev/plotter"
)

// LineSink consumes log lines in batches.
type LineSink interface {
	Append(line string) error
	Flush(force bool) error
}

// Recorder turns plotter ticks into mouse input, one frame per tick.
// Every frame is added to the piano roll and, if set, to the line sink.
type Recorder struct {
	ctrl  *Controller
	x, y  *Analog
	left  *Button
	right *Button
	roll  PianoRoll
	out   LineSink
}

// NewRecorder returns a recorder for a mouse in the first port of the
// MarioPaint layout.
func NewRecorder(out LineSink) *Recorder {
	c := MarioPaint()
	return &Recorder{
		ctrl:  c,
		x:     c.Analog("P1 Mouse X"),
		y:     c.Analog("P1 Mouse Y"),
		left:  c.Button("P1 Mouse Left"),
		right: c.Button("P1 Mouse Right"),
		out:   out,
	}
}

func (r *Recorder) Tick(t plotter.Tick) error {
	r.x.Press(float64(t.DX))
	r.y.Press(float64(t.DY))
	r.left.Set(t.Contact)
	r.right.Set(t.Secondary)
	line := r.ctrl.String()
	r.ctrl.Update()
	r.roll.AddFrame(line)
	if r.out == nil {
		return nil
	}
	return r.out.Append(line)
}

func (r *Recorder) Flush(force bool) error {
	if r.out == nil {
		return nil
	}
	return r.out.Flush(force)
}

// Roll returns the frames recorded so far.
func (r *Recorder) Roll() *PianoRoll {
	return &r.roll
}

// Controller returns the recorded controller layout.
func (r *Recorder) Controller() *Controller {
	return r.ctrl
}

// FormatMouseLine returns the log line of a single tick.
func FormatMouseLine(t plotter.Tick) string {
	r := NewRecorder(nil)
	r.Tick(t)
	return r.roll.Frames[0].Input
}

// ParseMouseLine returns the tick logged by line.
func ParseMouseLine(line string) (plotter.Tick, error) {
	c := MarioPaint()
	if err := c.Parse(line); err != nil {
		return plotter.Tick{}, err
	}
	t := plotter.Tick{
		DX:        int(c.Analog("P1 Mouse X").Current),
		DY:        int(c.Analog("P1 Mouse Y").Current),
		Contact:   c.Button("P1 Mouse Left").Pressed,
		Secondary: c.Button("P1 Mouse Right").Pressed,
	}
	if t.DX < -127 || t.DX > 127 || t.DY < -127 || t.DY > 127 {
		return t, fmt.Errorf("bizhawk: mouse delta (%d,%d) out of range", t.DX, t.DY)
	}
	return t, nil
}
