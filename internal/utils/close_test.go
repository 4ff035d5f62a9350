package utils

import (
	"errors"
	"testing"
)

type failingCloser struct {
	closed bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return errors.New("close failed")
}

func TestCloseIgnoresError(t *testing.T) {
	fc := &failingCloser{}

	// Must not panic and must still invoke Close on the target.
	Close(fc)

	if !fc.closed {
		t.Error("Close() did not call the underlying Close")
	}
}
