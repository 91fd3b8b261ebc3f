package bizhawk

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Entry is the input of a single frame.
type Entry struct {
	_     struct{} `cbor:",toarray"`
	Input string
	Frame int
}

// PianoRoll is an append-only log of frames.
type PianoRoll struct {
	Frames  []Entry
	Current int
}

// AddFrame records input as the current frame and advances the frame
// counter.
func (r *PianoRoll) AddFrame(input string) {
	r.Frames = append(r.Frames, Entry{Input: input, Frame: r.Current})
	r.Current++
}

type rollFile struct {
	_       struct{} `cbor:",toarray"`
	Version int
	Frames  []Entry
}

const rollVersion = 1

// Save writes the roll in CBOR.
func (r *PianoRoll) Save(w io.Writer) error {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	f := rollFile{Version: rollVersion, Frames: r.Frames}
	if err := enc.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("bizhawk: failed to encode piano roll: %w", err)
	}
	return nil
}

// Load reads a roll written by Save.
func Load(r io.Reader) (*PianoRoll, error) {
	mode, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("bizhawk: failed to initialize decoder: %w", err)
	}
	var f rollFile
	if err := mode.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("bizhawk: failed to decode piano roll: %w", err)
	}
	if f.Version != rollVersion {
		return nil, fmt.Errorf("bizhawk: unsupported piano roll version %d", f.Version)
	}
	roll := &PianoRoll{Frames: f.Frames}
	for i, e := range f.Frames {
		if e.Frame != i {
			return nil, fmt.Errorf("bizhawk: frame %d out of sequence at entry %d", e.Frame, i)
		}
	}
	roll.Current = len(f.Frames)
	return roll, nil
}

// WriteInputLog writes the roll as an input log of the controller
// layout c, ready to be placed in a movie archive.
func (r *PianoRoll) WriteInputLog(w io.Writer, c *Controller) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "[Input]")
	fmt.Fprintln(bw, c.LogKey())
	for _, e := range r.Frames {
		fmt.Fprintln(bw, e.Input)
	}
	fmt.Fprintln(bw, "[/Input]")
	return bw.Flush()
}
