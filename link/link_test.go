package link

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"tasplot.dev/scrollback"
)

func TestEndToEnd(t *testing.T) {
	s := NewSimulator()
	defer s.Close()

	l := New(s)
	b := scrollback.New(l, 2, l)
	for i := 0; i < 5; i++ {
		if err := b.Append(fmt.Sprint(i)); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.Flush(true); err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"0", "1"}, {"2", "3"}, {"4"}}
	if !slices.EqualFunc(s.Batches, want, slices.Equal[[]string]) {
		t.Errorf("batches %q, want %q", s.Batches, want)
	}
}

func TestRejected(t *testing.T) {
	s := NewSimulator()
	defer s.Close()
	s.Reject = 2

	l := New(s)
	b := scrollback.New(l, 1, l)
	if err := b.Append("a"); err != nil {
		t.Fatal(err)
	}
	if err := b.Append("b"); !errors.Is(err, ErrRejected) {
		t.Errorf("second batch returned %v, want rejection", err)
	}
}

func TestReadWithoutBatch(t *testing.T) {
	s := NewSimulator()
	defer s.Close()

	buf := make([]byte, 1)
	if _, err := s.Read(buf); err == nil {
		t.Error("simulator replied without a batch")
	}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		dev, goos string
		want      []string
	}{
		{"/dev/ttyS1", "linux", []string{"/dev/ttyS1"}},
		{"COM7", "windows", []string{"COM7"}},
		{"", "windows", []string{"COM3"}},
		{"", "linux", []string{"/dev/ttyUSB0", "/dev/ttyACM0"}},
		{"", "darwin", nil},
	}
	for _, test := range tests {
		if got := candidates(test.dev, test.goos); !slices.Equal(got, test.want) {
			t.Errorf("candidates(%q, %q) = %q, want %q", test.dev, test.goos, got, test.want)
		}
	}
}

func TestOpenMissingDevice(t *testing.T) {
	const dev = "/nonexistent/tasplot-tty"
	_, err := Open(dev)
	if err == nil {
		t.Fatal("opened a missing device")
	}
	if msg := err.Error(); !strings.HasPrefix(msg, "link: ") || !strings.Contains(msg, dev) {
		t.Errorf("error %q does not name the device", msg)
	}
}
