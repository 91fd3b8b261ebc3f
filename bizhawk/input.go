// Package bizhawk models emulator controllers and serializes their state
// into the emulator's textual input log, one line per frame.
package bizhawk

import (
	"fmt"
	"strconv"
	"strings"
)

// Input is a button or an analog axis of a controller.
type Input interface {
	// Update advances the input by one frame.
	Update()
	Release()
	appendLog(b []byte) []byte
	parseLog(s string) (string, error)
	label() string
}

// Button is a digital input. A pressed button stays pressed for one
// frame; a held button until released.
type Button struct {
	Name    string
	On, Off string
	Pressed bool
	Held    bool
}

// NewButton returns a button logged as on when pressed and "." when
// not.
func NewButton(name, on string) *Button {
	return &Button{Name: name, On: on, Off: "."}
}

func (b *Button) Update() {
	if b.Pressed && !b.Held {
		b.Pressed = false
	}
}

func (b *Button) Press() {
	b.Pressed = true
}

func (b *Button) Hold() {
	b.Pressed = true
	b.Held = true
}

func (b *Button) Release() {
	b.Pressed = false
	b.Held = false
}

// Set presses or releases the button.
func (b *Button) Set(pressed bool) {
	if pressed {
		b.Press()
	} else {
		b.Release()
	}
}

func (b *Button) String() string {
	if b.Pressed {
		return b.On
	}
	return b.Off
}

func (b *Button) label() string { return b.Name }

func (b *Button) appendLog(buf []byte) []byte {
	return append(buf, b.String()...)
}

func (b *Button) parseLog(s string) (string, error) {
	switch {
	case strings.HasPrefix(s, b.On):
		b.Pressed = true
		return s[len(b.On):], nil
	case strings.HasPrefix(s, b.Off):
		b.Pressed = false
		return s[len(b.Off):], nil
	}
	return s, fmt.Errorf("bizhawk: %s: unexpected %q", b.Name, s)
}

// Analog is an axis with a value in [Min, Max] that springs back to
// Center unless held.
type Analog struct {
	Name     string
	Min, Max float64
	Center   float64
	Current  float64
	Held     bool
}

func NewAnalog(name string, min, max, center float64) *Analog {
	return &Analog{
		Name:    name,
		Min:     min,
		Max:     max,
		Center:  center,
		Current: center,
	}
}

func (a *Analog) Update() {
	if !a.Held {
		a.Current = a.Center
	}
}

// Press moves the axis to v, clamped to its range.
func (a *Analog) Press(v float64) {
	a.Current = max(a.Min, min(v, a.Max))
}

func (a *Analog) Hold() {
	a.Held = true
}

func (a *Analog) Release() {
	a.Held = false
}

func (a *Analog) String() string {
	return strconv.FormatFloat(a.Current, 'f', -1, 64)
}

func (a *Analog) label() string { return a.Name }

// appendLog appends the integer part of the axis right aligned in five
// columns and a separator.
func (a *Analog) appendLog(buf []byte) []byte {
	return fmt.Appendf(buf, "%5d,", int(a.Current))
}

func (a *Analog) parseLog(s string) (string, error) {
	field, rest, ok := strings.Cut(s, ",")
	if !ok {
		return s, fmt.Errorf("bizhawk: %s: missing separator in %q", a.Name, s)
	}
	v, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return s, fmt.Errorf("bizhawk: %s: %w", a.Name, err)
	}
	a.Current = float64(v)
	return rest, nil
}
