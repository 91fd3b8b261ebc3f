// Package golden compares text output with files under testdata.
package golden

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Compare compares got with the contents of the file at path. If update
// is set the file is overwritten instead.
func Compare(path string, update bool, got []byte) error {
	if update {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return err
		}
		return os.WriteFile(path, got, 0o640)
	}
	want, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// Tolerate checkouts that convert line endings.
	want = bytes.ReplaceAll(want, []byte("\r\n"), []byte("\n"))
	gotLines := bytes.Split(got, []byte("\n"))
	wantLines := bytes.Split(want, []byte("\n"))
	mismatches := 0
	first := -1
	for i := range min(len(gotLines), len(wantLines)) {
		if !bytes.Equal(gotLines[i], wantLines[i]) {
			if first == -1 {
				first = i
			}
			mismatches++
		}
	}
	if mismatches > 0 {
		return fmt.Errorf("%s: %d/%d line mismatches, first at line %d\ngot:  %q\nwant: %q",
			path, mismatches, len(wantLines), first+1, gotLines[first], wantLines[first])
	}
	if len(gotLines) != len(wantLines) {
		return fmt.Errorf("%s: %d lines, want %d", path, len(gotLines), len(wantLines))
	}
	return nil
}
