package main

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"tasplot.dev/mask"
)

// shell is the interactive command loop.
type shell struct {
	*session
	in  *bufio.Reader
	out io.Writer
}

var errArgs = errors.New("wrong number of arguments")

const help = `click          - click mouse
down           - put pen down
exit           - exit this program
help           - print basic help text
jump   x y     - set internal location to x, y
mask   file    - plot black dots in mask
move   x y     - move pen by x, y
moveto x y     - move pen to x, y
offset x y     - adjust offset for plotting from image
qr     text    - plot text as a QR code
rightclick     - click right mouse button
rightdown      - push right button down
rightup        - release right button
save   file    - write the input log recorded so far
status         - give status of pen
up             - put pen up
wait   n       - wait n frames
`

func (s *shell) run() error {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	fmt.Fprintln(s.out, "Welcome to the Mario Paint plotter!")
	fmt.Fprintln(s.out, "~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	fmt.Fprintln(s.out)
	s.status()
	fmt.Fprintln(s.out)
	for {
		fmt.Fprint(s.out, "COM? > ")
		line, err := s.in.ReadString('\n')
		if line == "" && err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		quit, err := s.exec(line)
		if err != nil {
			if !errors.Is(err, errUsage) {
				return err
			}
			fmt.Fprintln(s.out, err)
		}
		if quit {
			return nil
		}
		if s.buf.Len() > 0 {
			if err := s.p.Flush(); err != nil {
				return err
			}
		}
		fmt.Fprintln(s.out)
	}
}

// errUsage marks errors caused by operator input. They are reported
// without ending the shell.
var errUsage = errors.New("usage")

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func (s *shell) exec(line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Not sure what you entered but it's not a command.")
		return false, nil
	}
	cmd := strings.ToLower(args[0])
	args = args[1:]
	switch cmd {
	case "click":
		return false, s.p.Click()
	case "rightclick":
		return false, s.p.RightClick()
	case "down":
		s.p.PenDown()
	case "up":
		s.p.PenUp()
	case "rightdown":
		s.p.RightDown()
	case "rightup":
		s.p.RightUp()
	case "exit":
		return true, nil
	case "help":
		fmt.Fprint(s.out, help)
	case "status":
		s.status()
	case "jump", "move", "moveto", "offset":
		x, y, err := coords(args)
		if err != nil {
			return false, usage("%s: %v", cmd, err)
		}
		switch cmd {
		case "jump":
			s.jump(x, y)
		case "move":
			return false, s.p.PlotRelative(float64(x), float64(y))
		case "moveto":
			return false, s.p.PlotAbsolute(float64(x), float64(y))
		case "offset":
			s.p.SetOffsets(x, y)
		}
	case "wait":
		if len(args) != 1 {
			return false, usage("wait: %v", errArgs)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return false, usage("wait: invalid frame count %q", args[0])
		}
		return false, s.p.Wait(n)
	case "mask":
		if len(args) != 1 {
			return false, usage("mask: %v", errArgs)
		}
		m, err := mask.Load(args[0])
		if err != nil {
			return false, usage("%v", err)
		}
		s.loaded(args[0], m)
		return false, s.plot(m)
	case "qr":
		if len(args) == 0 {
			return false, usage("qr: %v", errArgs)
		}
		m, err := mask.QR(strings.Join(args, " "), s.qrLevel, s.qrScale)
		if err != nil {
			return false, usage("%v", err)
		}
		s.loaded("qr", m)
		return false, s.plot(m)
	case "save":
		if len(args) != 1 {
			return false, usage("save: %v", errArgs)
		}
		if err := s.saveInputLog(args[0]); err != nil {
			return false, usage("%v", err)
		}
	default:
		fmt.Fprintln(s.out, "Not sure what you entered but it's not a command.")
	}
	return false, nil
}

func coords(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, errArgs
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (s *shell) status() {
	st := s.p.State()
	fmt.Fprintln(s.out, "Status:")
	fmt.Fprintf(s.out, "x    : %v\n", st.X)
	fmt.Fprintf(s.out, "offX : %d\n", st.OffsetX)
	fmt.Fprintf(s.out, "y    : %v\n", st.Y)
	fmt.Fprintf(s.out, "offY : %d\n", st.OffsetY)
	fmt.Fprintf(s.out, "lmb  : %v\n", st.Down)
	fmt.Fprintf(s.out, "rmb  : %v\n", st.RightDown)
	fmt.Fprintf(s.out, "buf  : %d\n", s.buf.Len())
}

func (s *session) saveInputLog(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.rec.Roll().WriteInputLog(f, s.rec.Controller()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// jump moves the pointer without output, keeping the preview in sync.
func (s *session) jump(x, y int) {
	s.p.Jump(float64(x), float64(y))
	st := s.p.State()
	s.paper.Jump(image.Pt(int(st.X), int(st.Y)))
}
