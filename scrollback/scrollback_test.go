package scrollback

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

type counter struct {
	acks int
	err  error
}

func (c *counter) Ack() error {
	c.acks++
	return c.err
}

func TestThreshold(t *testing.T) {
	out := new(bytes.Buffer)
	ack := new(counter)
	b := New(out, 3, ack)
	for _, l := range []string{"a", "b"} {
		if err := b.Append(l); err != nil {
			t.Fatal(err)
		}
	}
	if out.Len() != 0 || ack.acks != 0 {
		t.Fatalf("flushed before the buffer was full: %q", out.String())
	}
	if err := b.Append("c"); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "\na\nb\nc\n\n"; got != want {
		t.Errorf("batch %q, want %q", got, want)
	}
	if ack.acks != 1 || b.Len() != 0 || b.Batches() != 1 {
		t.Errorf("acks %d, buffered %d, batches %d", ack.acks, b.Len(), b.Batches())
	}
}

func TestOrderAcrossBatches(t *testing.T) {
	out := new(bytes.Buffer)
	b := New(out, 4, nil)
	var want []string
	for i := 0; i < 10; i++ {
		l := fmt.Sprintf("line %d", i)
		want = append(want, l)
		if err := b.Append(l); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.Flush(true); err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, l := range strings.Split(out.String(), "\n") {
		if l != "" {
			got = append(got, l)
		}
	}
	if !slices.Equal(got, want) {
		t.Errorf("lines %q, want %q", got, want)
	}
	if b.Batches() != 3 {
		t.Errorf("%d batches, want 3", b.Batches())
	}
}

func TestForcedEmptyFlush(t *testing.T) {
	out := new(bytes.Buffer)
	ack := new(counter)
	b := New(out, 10, ack)
	if err := b.Flush(false); err != nil {
		t.Fatal(err)
	}
	if ack.acks != 0 {
		t.Fatal("unforced flush of a partial buffer acknowledged")
	}
	if err := b.Flush(true); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\n\n" || ack.acks != 1 {
		t.Errorf("output %q, acks %d", out.String(), ack.acks)
	}
}

func TestAckError(t *testing.T) {
	errNak := errors.New("nak")
	b := New(new(bytes.Buffer), 1, &counter{err: errNak})
	if err := b.Append("a"); !errors.Is(err, errNak) {
		t.Errorf("Append returned %v", err)
	}
}

func TestPrompt(t *testing.T) {
	out := new(bytes.Buffer)
	p := NewPrompt(strings.NewReader("\nok\n"), out)
	for i := 0; i < 2; i++ {
		if err := p.Ack(); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.Ack(); !errors.Is(err, ErrClosed) {
		t.Errorf("Ack on closed input returned %v", err)
	}
	if got, want := out.String(), strings.Repeat(PromptText, 3); got != want {
		t.Errorf("prompted %q", got)
	}
}

func TestAppendAfterAckError(t *testing.T) {
	errNak := errors.New("nak")
	out := new(bytes.Buffer)
	ack := &counter{err: errNak}
	b := New(out, 2, ack)
	for i := 0; i < 7; i++ {
		err := b.Append(fmt.Sprintf("%d", i))
		if full := i%2 == 1; full != errors.Is(err, errNak) {
			t.Fatalf("Append %d returned %v", i, err)
		}
		if b.Len() > 2 {
			t.Fatalf("buffer holds %d lines, depth is 2", b.Len())
		}
	}
	if b.Len() != 1 || ack.acks != 3 {
		t.Errorf("buffered %d, acks %d", b.Len(), ack.acks)
	}
	if got, want := out.String(), "\n0\n1\n\n\n2\n3\n\n\n4\n5\n\n"; got != want {
		t.Errorf("output %q, want %q", got, want)
	}
}
