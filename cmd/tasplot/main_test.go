package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"tasplot.dev/bizhawk"
	"tasplot.dev/scrollback"
)

func newTestShell(script string) (*shell, *bytes.Buffer, *bytes.Buffer) {
	log := new(bytes.Buffer)
	term := new(bytes.Buffer)
	cfg := defaultConfig()
	s := newSession(cfg, log, scrollback.None)
	return &shell{
		session: s,
		in:      bufio.NewReader(strings.NewReader(script)),
		out:     term,
	}, log, term
}

func TestShell(t *testing.T) {
	sh, out, term := newTestShell("moveto 25 0\nclick\nbogus\nmove x 1\n\nstatus\nexit\nmoveto 0 0\n")
	if err := sh.run(); err != nil {
		t.Fatal(err)
	}
	var ticks int
	for _, l := range strings.Split(out.String(), "\n") {
		if l == "" {
			continue
		}
		if _, err := bizhawk.ParseMouseLine(l); err != nil {
			t.Errorf("invalid output line %q: %v", l, err)
		}
		ticks++
	}
	// Three moves and a nine frame click.
	if ticks != 12 {
		t.Errorf("%d frames written, want 12", ticks)
	}
	st := sh.p.State()
	if st.X != 25 || st.Y != 0 {
		t.Errorf("pointer at (%v,%v) after exit", st.X, st.Y)
	}
	for _, want := range []string{
		"Welcome to the Mario Paint plotter!",
		"Not sure what you entered but it's not a command.",
		"move: strconv.Atoi",
		"x    : 25",
		"buf  : 0",
	} {
		if !strings.Contains(term.String(), want) {
			t.Errorf("terminal output lacks %q", want)
		}
	}
}

func TestShellEOF(t *testing.T) {
	sh, _, _ := newTestShell("down\nwait 3")
	if err := sh.run(); err != nil {
		t.Fatal(err)
	}
	if n := len(sh.rec.Roll().Frames); n != 3 {
		t.Errorf("%d frames recorded, want 3", n)
	}
}

func TestShellJump(t *testing.T) {
	sh, _, _ := newTestShell("jump 100 50\ndown\nmove 2 0\nexit\n")
	if err := sh.run(); err != nil {
		t.Fatal(err)
	}
	if stats := sh.paper.Stats(); stats.Ink != 2 || stats.Strokes != 1 {
		t.Errorf("preview stats %+v after jump", stats)
	}
}

func TestShellQR(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "input.log")
	sh, _, term := newTestShell("offset 20 20\nqr tasplot\nsave " + logPath + "\nexit\n")
	logs := new(bytes.Buffer)
	sh.log = log.New()
	sh.log.SetOutput(logs)
	if err := sh.run(); err != nil {
		t.Fatal(err)
	}
	if out := logs.String(); !strings.Contains(out, `msg="mask loaded"`) || !strings.Contains(out, "source=qr") || strings.Contains(out, "dark=0 ") {
		t.Errorf("mask load not logged with its dark pixel count:\n%s", out)
	}
	if strings.Contains(term.String(), "usage") {
		t.Fatalf("shell reported an error:\n%s", term.String())
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "[Input]" || lines[len(lines)-1] != "[/Input]" {
		t.Errorf("input log is not framed: %q, %q", lines[0], lines[len(lines)-1])
	}
	if n := len(lines) - 3; n != len(sh.rec.Roll().Frames) {
		t.Errorf("input log has %d frames, recorded %d", n, len(sh.rec.Roll().Frames))
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	err := os.WriteFile(good, []byte(`
scrollback = 100

[plotter]
speed_cap = 4
offset_x = 12
diagonal = true
`), 0o600)
	if err != nil {
		t.Fatal(err)
	}
	c, err := loadConfig(good)
	if err != nil {
		t.Fatal(err)
	}
	if c.Scrollback != 100 || c.Plotter.SpeedCap != 4 || c.Plotter.OffsetX != 12 || !c.Plotter.Diagonal {
		t.Errorf("loaded %+v", c)
	}
	if c.Plotter.MaxX != 255 || c.Plotter.Settle != 8 {
		t.Errorf("defaults lost: %+v", c.Plotter)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[plotter]\nspeed = 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(bad); err == nil {
		t.Error("accepted unknown key")
	}

	invalid := filepath.Join(dir, "invalid.toml")
	if err := os.WriteFile(invalid, []byte("[plotter]\nspeed_cap = 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(invalid); err == nil {
		t.Error("accepted zero speed cap")
	}
}
