package link

import (
	"errors"
)

// Simulator is an in-memory device. It collects the lines of every batch
// and acknowledges them, or rejects the batch numbered Reject when that
// is positive.
type Simulator struct {
	Batches [][]string
	Reject  int

	line    []byte
	batch   []string
	replies []byte
	close   chan struct{}
	in      chan ioRequest
	out     chan ioResult
}

type ioRequest struct {
	write bool
	data  []byte
}

type ioResult struct {
	bytes int
	err   error
}

func NewSimulator() *Simulator {
	sim := &Simulator{
		close: make(chan struct{}),
		in:    make(chan ioRequest),
		out:   make(chan ioResult),
	}
	go sim.run()
	return sim
}

func (s *Simulator) run() {
	for {
		select {
		case <-s.close:
			s.close <- struct{}{}
			return
		case r := <-s.in:
			var n int
			var err error
			if r.write {
				n, err = s.doWrite(r.data)
			} else {
				n, err = s.doRead(r.data)
			}
			s.out <- ioResult{n, err}
		}
	}
}

func (s *Simulator) doRead(data []byte) (int, error) {
	if len(s.replies) == 0 {
		return 0, errors.New("read without pending reply")
	}
	n := copy(data, s.replies)
	s.replies = s.replies[n:]
	return n, nil
}

func (s *Simulator) doWrite(data []byte) (int, error) {
	for _, b := range data {
		switch b {
		case batchEnd:
			if len(s.line) > 0 {
				return 0, errors.New("batch ends mid-line")
			}
			s.Batches = append(s.Batches, s.batch)
			s.batch = nil
			if len(s.Batches) == s.Reject {
				s.replies = append(s.replies, nak)
			} else {
				s.replies = append(s.replies, ack)
			}
		case '\n':
			if len(s.line) > 0 {
				s.batch = append(s.batch, string(s.line))
			}
			s.line = s.line[:0]
		default:
			s.line = append(s.line, b)
		}
	}
	return len(data), nil
}

func (s *Simulator) Read(data []byte) (int, error) {
	s.in <- ioRequest{false, data}
	r := <-s.out
	return r.bytes, r.err
}

func (s *Simulator) Write(data []byte) (int, error) {
	s.in <- ioRequest{true, data}
	r := <-s.out
	return r.bytes, r.err
}

func (s *Simulator) Close() error {
	s.close <- struct{}{}
	<-s.close
	return nil
}
