// Package scrollback batches instruction lines for a consumer with a
// bounded view, such as a terminal scrollback or a device with a small
// input buffer. Every batch ends with a blocking acknowledgement.
package scrollback

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// DefaultDepth is the number of lines in a batch.
const DefaultDepth = 5000

// PromptText is the message printed while waiting for the operator.
const PromptText = "< Input enter to continue script. >"

// Acknowledger blocks until the consumer has taken a batch.
type Acknowledger interface {
	Ack() error
}

// Buffer accumulates lines and writes them out in batches.
type Buffer struct {
	out     *bufio.Writer
	lines   []string
	depth   int
	ack     Acknowledger
	batches int
}

// New returns a buffer writing batches of at most depth lines to w. A nil
// ack never blocks.
func New(w io.Writer, depth int, ack Acknowledger) *Buffer {
	if depth < 1 {
		panic("scrollback: depth must be positive")
	}
	if ack == nil {
		ack = None
	}
	return &Buffer{
		out:   bufio.NewWriter(w),
		lines: make([]string, 0, depth),
		depth: depth,
		ack:   ack,
	}
}

// Append adds a line, and flushes the buffer when it is full.
func (b *Buffer) Append(line string) error {
	b.lines = append(b.lines, line)
	return b.Flush(false)
}

// Len returns the number of buffered lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Batches returns the number of batches written.
func (b *Buffer) Batches() int {
	return b.batches
}

// Flush writes the buffered lines if the buffer is full or force is set.
// The lines are framed by blank lines and written oldest first, after
// which Flush waits for the acknowledgement. A forced flush of an empty
// buffer still waits.
func (b *Buffer) Flush(force bool) error {
	if !force && len(b.lines) < b.depth {
		return nil
	}
	b.out.WriteByte('\n')
	for _, l := range b.lines {
		b.out.WriteString(l)
		b.out.WriteByte('\n')
	}
	b.out.WriteByte('\n')
	clear(b.lines)
	b.lines = b.lines[:0]
	if err := b.out.Flush(); err != nil {
		return fmt.Errorf("scrollback: %w", err)
	}
	b.batches++
	return b.ack.Ack()
}

// Prompt acknowledges a batch when the operator enters a line.
type Prompt struct {
	out io.Writer
	in  *bufio.Reader
}

// NewPrompt returns a prompt reading from in. Pass a *bufio.Reader to
// share the input with other readers.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &Prompt{
		out: out,
		in:  br,
	}
}

func (p *Prompt) Ack() error {
	if _, err := io.WriteString(p.out, PromptText); err != nil {
		return fmt.Errorf("scrollback: prompt: %w", err)
	}
	_, err := p.in.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF):
		return ErrClosed
	case err != nil:
		return fmt.Errorf("scrollback: prompt: %w", err)
	}
	return nil
}

// ErrClosed is returned by Prompt when its input is closed.
var ErrClosed = errors.New("scrollback: acknowledgement input closed")

type none struct{}

func (none) Ack() error { return nil }

// None acknowledges every batch immediately.
var None Acknowledger = none{}
