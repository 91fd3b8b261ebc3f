package bizhawk

import (
	"fmt"
	"strings"
)

// Port is a group of inputs logged together, such as a gamepad plugged
// into a controller port.
type Port struct {
	Name   string
	Inputs []Input
}

// Controller is the full set of inputs of a console, in log order.
type Controller struct {
	Ports []Port
}

// Console returns the console buttons.
func Console() Port {
	return Port{
		Name: "Console",
		Inputs: []Input{
			NewButton("Reset", "r"),
			NewButton("Power", "P"),
		},
	}
}

// SNESMouse returns a mouse for the given controller port.
func SNESMouse(port int) Port {
	p := fmt.Sprintf("P%d ", port)
	return Port{
		Name: p + "Mouse",
		Inputs: []Input{
			NewAnalog(p+"Mouse X", -127, 127, 0),
			NewAnalog(p+"Mouse Y", -127, 127, 0),
			NewButton(p+"Mouse Left", "l"),
			NewButton(p+"Mouse Right", "r"),
		},
	}
}

// SNESPad returns a gamepad for the given controller port.
func SNESPad(port int) Port {
	p := fmt.Sprintf("P%d ", port)
	var inputs []Input
	for _, b := range []struct{ name, on string }{
		{"Up", "U"}, {"Down", "D"}, {"Left", "L"}, {"Right", "R"},
		{"Select", "s"}, {"Start", "S"},
		{"Y", "Y"}, {"B", "B"}, {"X", "X"}, {"A", "A"},
		{"L", "l"}, {"R", "r"},
	} {
		inputs = append(inputs, NewButton(p+b.name, b.on))
	}
	return Port{Name: p + "Pad", Inputs: inputs}
}

// MarioPaint returns the controller layout of a SNES with a mouse in
// the first port and a gamepad in the second.
func MarioPaint() *Controller {
	return &Controller{
		Ports: []Port{Console(), SNESMouse(1), SNESPad(2)},
	}
}

// Button returns the named button, or nil.
func (c *Controller) Button(name string) *Button {
	b, _ := c.lookup(name).(*Button)
	return b
}

// Analog returns the named axis, or nil.
func (c *Controller) Analog(name string) *Analog {
	a, _ := c.lookup(name).(*Analog)
	return a
}

func (c *Controller) lookup(name string) Input {
	for _, p := range c.Ports {
		for _, in := range p.Inputs {
			if in.label() == name {
				return in
			}
		}
	}
	return nil
}

// Update advances every input by one frame.
func (c *Controller) Update() {
	for _, p := range c.Ports {
		for _, in := range p.Inputs {
			in.Update()
		}
	}
}

// Release releases every input.
func (c *Controller) Release() {
	for _, p := range c.Ports {
		for _, in := range p.Inputs {
			in.Release()
		}
	}
}

// AppendLog appends the log line of the current state, without line
// terminator.
func (c *Controller) AppendLog(b []byte) []byte {
	b = append(b, '|')
	for _, p := range c.Ports {
		for _, in := range p.Inputs {
			b = in.appendLog(b)
		}
		b = append(b, '|')
	}
	return b
}

func (c *Controller) String() string {
	return string(c.AppendLog(nil))
}

// Parse sets the inputs from a log line.
func (c *Controller) Parse(line string) error {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "|")
	if !ok {
		return fmt.Errorf("bizhawk: line %q does not start with |", line)
	}
	for _, p := range c.Ports {
		field, tail, ok := strings.Cut(rest, "|")
		if !ok {
			return fmt.Errorf("bizhawk: %s: missing from %q", p.Name, line)
		}
		for _, in := range p.Inputs {
			var err error
			field, err = in.parseLog(field)
			if err != nil {
				return err
			}
		}
		if field != "" {
			return fmt.Errorf("bizhawk: %s: trailing %q", p.Name, field)
		}
		rest = tail
	}
	if rest != "" {
		return fmt.Errorf("bizhawk: trailing %q", rest)
	}
	return nil
}

// LogKey returns the header line naming the logged inputs.
func (c *Controller) LogKey() string {
	var b strings.Builder
	b.WriteString("LogKey:")
	for _, p := range c.Ports {
		b.WriteByte('#')
		for _, in := range p.Inputs {
			b.WriteString(in.label())
			b.WriteByte('|')
		}
	}
	return b.String()
}
